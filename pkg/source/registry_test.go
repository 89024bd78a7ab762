package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanstudy/ingest/pkg/domain"
)

func testDefs() []domain.SourceDefinition {
	return []domain.SourceDefinition{
		{Key: "a", Name: "A", Type: domain.SourceTypeRSS, Endpoint: "https://a.example.com/rss", PollMinutes: 10, Enabled: true},
		{Key: "b", Name: "B", Type: domain.SourceTypeSearch, Endpoint: "https://b.example.com/search", PollMinutes: 30},
		{Key: "c", Name: "C", Type: domain.SourceTypeWiki, Endpoint: "https://c.example.com/api.php", PollMinutes: 60, Enabled: true},
	}
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry(testDefs())
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Key, all[1].Key, all[2].Key})

	enabled := r.Enabled()
	require.Len(t, enabled, 2)
	assert.Equal(t, "a", enabled[0].Key)
	assert.Equal(t, "c", enabled[1].Key)

	// returned slices are copies
	all[0].Key = "changed"
	src, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", src.Name)
}

func TestNewRegistry_Errors(t *testing.T) {
	defs := testDefs()
	defs[1].Key = "a"
	_, err := NewRegistry(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate source key a")

	_, err = NewRegistry([]domain.SourceDefinition{{Type: domain.SourceTypeRSS}})
	require.Error(t, err)

	_, err = NewRegistry([]domain.SourceDefinition{{Key: "x", Type: "bad"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source type")
}

func TestRegistry_Resolve(t *testing.T) {
	r, err := NewRegistry(testDefs())
	require.NoError(t, err)

	src, err := r.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceTypeRSS, src.Type)

	_, err = r.Resolve("b")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "disabled")

	_, err = r.Resolve("unknown")
	require.ErrorIs(t, err, ErrNotFound)

	_, ok := r.Get("b")
	assert.True(t, ok, "get returns disabled sources")
}
