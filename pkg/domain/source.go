package domain

import (
	"fmt"
	"time"
)

// SourceType selects the puller adapter for a source
type SourceType string

// enum of supported source types
const (
	SourceTypeRSS    SourceType = "rss"
	SourceTypeSearch SourceType = "search"
	SourceTypeWiki   SourceType = "wiki"
)

// Validate checks if the source type is one of the known types
func (t SourceType) Validate() error {
	switch t {
	case SourceTypeRSS, SourceTypeSearch, SourceTypeWiki:
		return nil
	default:
		return fmt.Errorf("unknown source type %q", string(t))
	}
}

// SourceDefinition describes one external content origin. Loaded once, never mutated.
type SourceDefinition struct {
	Key         string     `yaml:"key" json:"key" jsonschema:"required,description=Unique source key"`
	Name        string     `yaml:"name" json:"name" jsonschema:"description=Display name"`
	Type        SourceType `yaml:"type" json:"type" jsonschema:"required,enum=rss,enum=search,enum=wiki,description=Provider type"`
	Endpoint    string     `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=Feed URL or provider API endpoint"`
	PollMinutes int        `yaml:"poll_minutes" json:"poll_minutes" jsonschema:"default=60,minimum=1,description=Poll cadence in minutes"`
	Enabled     bool       `yaml:"enabled" json:"enabled" jsonschema:"description=Enable polling for this source"`

	Section    string   `yaml:"section,omitempty" json:"section,omitempty" jsonschema:"description=Fallback section for items without a category"`
	Queries    []string `yaml:"queries,omitempty" json:"queries,omitempty" jsonschema:"description=Search queries (search sources only)"`
	Category   string   `yaml:"category,omitempty" json:"category,omitempty" jsonschema:"description=Category title to sample from (wiki sources only)"`
	SampleSize int      `yaml:"sample_size,omitempty" json:"sample_size,omitempty" jsonschema:"description=Pages sampled per day (wiki sources only)"`
}

// PollInterval returns poll cadence as duration
func (s SourceDefinition) PollInterval() time.Duration {
	return time.Duration(s.PollMinutes) * time.Minute
}

// DisplayName returns the name if set, key otherwise
func (s SourceDefinition) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Key
}
