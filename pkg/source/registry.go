// Package source provides the read-only registry of configured content sources.
package source

import (
	"errors"
	"fmt"

	"github.com/hanstudy/ingest/pkg/domain"
)

// ErrNotFound is returned for keys that are not configured or not enabled
var ErrNotFound = errors.New("source not found")

// Registry holds source definitions in configuration order
type Registry struct {
	sources []domain.SourceDefinition
	byKey   map[string]int
}

// NewRegistry makes registry from source definitions, keys must be unique
func NewRegistry(defs []domain.SourceDefinition) (*Registry, error) {
	r := &Registry{
		sources: make([]domain.SourceDefinition, 0, len(defs)),
		byKey:   make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.Key == "" {
			return nil, fmt.Errorf("source without key")
		}
		if _, dup := r.byKey[d.Key]; dup {
			return nil, fmt.Errorf("duplicate source key %s", d.Key)
		}
		if err := d.Type.Validate(); err != nil {
			return nil, fmt.Errorf("source %s: %w", d.Key, err)
		}
		r.byKey[d.Key] = len(r.sources)
		r.sources = append(r.sources, d)
	}
	return r, nil
}

// All returns all configured sources, enabled or not
func (r *Registry) All() []domain.SourceDefinition {
	res := make([]domain.SourceDefinition, len(r.sources))
	copy(res, r.sources)
	return res
}

// Enabled returns enabled sources only
func (r *Registry) Enabled() []domain.SourceDefinition {
	res := make([]domain.SourceDefinition, 0, len(r.sources))
	for _, s := range r.sources {
		if s.Enabled {
			res = append(res, s)
		}
	}
	return res
}

// Get returns source by key, enabled or not
func (r *Registry) Get(key string) (domain.SourceDefinition, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return domain.SourceDefinition{}, false
	}
	return r.sources[idx], true
}

// Resolve returns enabled source by key, ErrNotFound for unknown or disabled keys
func (r *Registry) Resolve(key string) (domain.SourceDefinition, error) {
	src, ok := r.Get(key)
	if !ok {
		return domain.SourceDefinition{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if !src.Enabled {
		return domain.SourceDefinition{}, fmt.Errorf("%w: %q is disabled", ErrNotFound, key)
	}
	return src, nil
}
