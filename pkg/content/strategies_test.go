package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longText makes usable text of several sentences
func longText(prefix string) string {
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		sb.WriteString(prefix)
		sb.WriteString(" sentence number is long enough to count towards the usable text limit. ")
	}
	return strings.TrimSpace(sb.String())
}

func newTestExtractor(t *testing.T, readability bool) *Extractor {
	t.Helper()
	e, err := NewExtractor(Config{
		MaxBodyChars:       12000,
		MinBodyChars:       80,
		UsableMinChars:     180,
		UsableMinSentences: 2,
		MarkerBefore:       1500,
		MarkerAfter:        32000,
		Readability:        readability,
		HostMarkers:        []HostMarker{{Host: "marker.example.com", Pattern: `id="story-body"`}},
	})
	require.NoError(t, err)
	return e
}

func TestExtractBodyText_JSONLDWins(t *testing.T) {
	e := newTestExtractor(t, true)
	ldBody := longText("JSON-LD")
	ld, err := json.Marshal(map[string]any{"@context": "https://schema.org", "@type": "NewsArticle", "articleBody": ldBody})
	require.NoError(t, err)

	page := `<html><head><script type="application/ld+json">` + string(ld) + `</script></head>
		<body><article><p>` + longText("Article tag") + `</p></article>
		<main><p>` + longText("Main tag") + `</p></main></body></html>`

	got := e.ExtractBodyText(page, "https://www.example.com/news/1")
	assert.Equal(t, ldBody, got)
}

func TestExtractBodyText_ChainOrder(t *testing.T) {
	e := newTestExtractor(t, false)

	t.Run("host marker before article", func(t *testing.T) {
		page := `<html><body><nav>Menu</nav><div id="story-body"><p>` + longText("Marker") + `</p></div>
			<article><p>` + longText("Article tag") + `</p></article></body></html>`
		got := e.ExtractBodyText(page, "https://marker.example.com/a/1")
		assert.True(t, strings.HasPrefix(got, "Menu Marker sentence"), got)
	})

	t.Run("marker host mismatch goes to article", func(t *testing.T) {
		page := `<html><body><div id="story-body"><p>short</p></div>
			<article><p>` + longText("Article tag") + `</p></article></body></html>`
		got := e.ExtractBodyText(page, "https://other.example.com/a/1")
		assert.Equal(t, longText("Article tag"), got)
	})

	t.Run("short article falls to main", func(t *testing.T) {
		page := `<html><body><article><p>Too short article body that is over the block minimum but not usable text at all, ok.</p></article>
			<main><p>` + longText("Main tag") + `</p></main></body></html>`
		got := e.ExtractBodyText(page, "https://www.example.com/a")
		assert.Equal(t, longText("Main tag"), got)
	})

	t.Run("whole page fallback", func(t *testing.T) {
		page := `<html><body><div><p>Only a tiny bit of text.</p></div><script>var x = 1;</script></body></html>`
		got := e.ExtractBodyText(page, "https://www.example.com/a")
		assert.Equal(t, "Only a tiny bit of text.", got)
	})

	t.Run("broken json-ld ignored", func(t *testing.T) {
		page := `<html><head><script type="application/ld+json">{not json</script></head>
			<body><article>` + longText("Article tag") + `</article></body></html>`
		got := e.ExtractBodyText(page, "https://www.example.com/a")
		assert.Equal(t, longText("Article tag"), got)
	})
}

func TestJSONLDStrategy(t *testing.T) {
	e := newTestExtractor(t, false)

	t.Run("graph with article text field", func(t *testing.T) {
		page := `<script type="application/ld+json">{"@graph":[{"@type":"WebPage","text":"not an article"},
			{"@type":["Thing","BlogArticle"],"text":"Article &amp; text field."}]}</script>`
		assert.Equal(t, "Article & text field.", e.jsonLDStrategy(NewPage(page, "")))
	})

	t.Run("longest of several blocks", func(t *testing.T) {
		page := `<script type="application/ld+json">{"articleBody":"short body."}</script>
			<script type="application/ld+json">[{"articleBody":"a much longer article body."}]</script>`
		assert.Equal(t, "a much longer article body.", e.jsonLDStrategy(NewPage(page, "")))
	})

	t.Run("no ld+json", func(t *testing.T) {
		assert.Empty(t, e.jsonLDStrategy(NewPage("<p>text</p>", "")))
	})
}

func TestFindArticleBodies_DepthLimit(t *testing.T) {
	var node any = map[string]any{"articleBody": "deep body"}
	for i := 0; i < 7; i++ {
		node = map[string]any{"child": node}
	}
	assert.Equal(t, []string{"deep body"}, findArticleBodies(node, 0), "depth 7 found")

	for i := 0; i < 3; i++ {
		node = map[string]any{"child": node}
	}
	assert.Empty(t, findArticleBodies(node, 0), "depth 10 ignored")
}

func TestHostMarkerStrategy_Window(t *testing.T) {
	e := newTestExtractor(t, false)
	e.markerBefore, e.markerAfter = 10, 40

	page := strings.Repeat("x", 100) + `<div id="story-body">` + strings.Repeat("가", 100)
	got := e.hostMarkerStrategy(NewPage(page, "https://sub.marker.example.com/1"))
	// window is 10 runes before the match and 40 from it, the div tag itself is stripped
	assert.Equal(t, strings.Repeat("x", 5)+" "+strings.Repeat("가", 24), got)

	assert.Empty(t, e.hostMarkerStrategy(NewPage(page, "")), "no host")
	assert.Empty(t, e.hostMarkerStrategy(NewPage("<p>no marker</p>", "https://marker.example.com/1")))
}

func TestRuneWindow(t *testing.T) {
	s := "가나다라마바사"
	at := strings.Index(s, "라")
	assert.Equal(t, "나다라마", runeWindow(s, at, 2, 2))
	assert.Equal(t, "가나다라마바사", runeWindow(s, at, 10, 10))
}

func TestBlockStrategy_Largest(t *testing.T) {
	e := newTestExtractor(t, false)
	small := "<article><p>" + strings.Repeat("small ", 30) + "</p></article>"
	big := "<article><p>" + strings.Repeat("big ", 60) + "</p></article>"
	tiny := "<article>tiny</article>"

	got := e.blockStrategy("article")(NewPage(tiny+small+big, ""))
	assert.True(t, strings.HasPrefix(got, "big big"))

	assert.Empty(t, e.blockStrategy("article")(NewPage(tiny, "")), "blocks below minimum ignored")
	assert.Empty(t, e.blockStrategy("main")(NewPage(big, "")))
}

func TestNewExtractor_BadMarker(t *testing.T) {
	_, err := NewExtractor(Config{HostMarkers: []HostMarker{{Host: "a.com", Pattern: "(["}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile marker for a.com")
}
