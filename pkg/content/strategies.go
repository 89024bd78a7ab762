package content

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
)

const (
	maxJSONLDDepth = 8
	minBlockChars  = 120
)

// Page is a fetched html document handed to extraction strategies.
// The goquery document is parsed lazily and shared between strategies.
type Page struct {
	HTML string
	URL  *url.URL // nil if page url is unknown or invalid

	once sync.Once
	doc  *goquery.Document
}

// NewPage makes a page from raw html and its url
func NewPage(rawHTML, pageURL string) *Page {
	p := &Page{HTML: rawHTML}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		p.URL = u
	}
	return p
}

// Host returns lowercased page host without port, empty if unknown
func (p *Page) Host() string {
	if p.URL == nil {
		return ""
	}
	return strings.ToLower(p.URL.Hostname())
}

// Doc returns parsed document, nil if html can't be parsed
func (p *Page) Doc() *goquery.Document {
	p.once.Do(func() {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
		if err != nil {
			lgr.Printf("[DEBUG] can't parse html of %s: %v", p.Host(), err)
			return
		}
		p.doc = doc
	})
	return p.doc
}

// Strategy is one stage of the extraction chain. Extract returns cleaned candidate text or empty string.
type Strategy struct {
	Name    string
	Extract func(p *Page) string
}

// HostMarker points to the article container of a known host
type HostMarker struct {
	Host    string
	Pattern string
}

type hostMarker struct {
	host string
	re   *regexp.Regexp
}

// defaultHostMarkers covers hosts frequently seen in configured feeds
var defaultHostMarkers = []HostMarker{
	{Host: "n.news.naver.com", Pattern: `id=["'](?:dic_area|newsct_article)["']`},
	{Host: "news.naver.com", Pattern: `id=["'](?:dic_area|articleBodyContents)["']`},
	{Host: "yna.co.kr", Pattern: `class=["'][^"']*\bstory-news\b`},
	{Host: "hani.co.kr", Pattern: `class=["'][^"']*\barticle-text\b`},
	{Host: "khan.co.kr", Pattern: `id=["']articleBody["']`},
	{Host: "bbc.com", Pattern: `data-component=["']text-block["']`},
}

// matches reports if host equals marker host or is its subdomain
func (m hostMarker) matches(host string) bool {
	return host == m.host || strings.HasSuffix(host, "."+m.host)
}

// jsonLDStrategy picks the longest articleBody (or article text) found in ld+json blocks
func (e *Extractor) jsonLDStrategy(p *Page) string {
	doc := p.Doc()
	if doc == nil {
		return ""
	}
	best, bestLen := "", 0
	doc.Find(`script[type*="ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return // broken ld+json is common, skip the block
		}
		for _, candidate := range findArticleBodies(data, 0) {
			text := CleanText(candidate, e.maxChars)
			if l := utf8.RuneCountInString(text); l > bestLen {
				best, bestLen = text, l
			}
		}
	})
	return best
}

// findArticleBodies walks parsed json looking for articleBody strings and text of article nodes
func findArticleBodies(v any, depth int) []string {
	if depth > maxJSONLDDepth {
		return nil
	}
	var res []string
	switch node := v.(type) {
	case map[string]any:
		if body, ok := node["articleBody"].(string); ok && strings.TrimSpace(body) != "" {
			res = append(res, body)
		}
		if isArticleType(node["@type"]) {
			if text, ok := node["text"].(string); ok && strings.TrimSpace(text) != "" {
				res = append(res, text)
			}
		}
		for _, child := range node {
			switch child.(type) {
			case map[string]any, []any:
				res = append(res, findArticleBodies(child, depth+1)...)
			}
		}
	case []any:
		for _, child := range node {
			res = append(res, findArticleBodies(child, depth+1)...)
		}
	}
	return res
}

// isArticleType checks @type value, string or list, for "article" substring
func isArticleType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.Contains(strings.ToLower(v), "article")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), "article") {
				return true
			}
		}
	}
	return false
}

// hostMarkerStrategy takes a fixed window around the first host marker match
func (e *Extractor) hostMarkerStrategy(p *Page) string {
	host := p.Host()
	if host == "" {
		return ""
	}
	for _, m := range e.markers {
		if !m.matches(host) {
			continue
		}
		loc := m.re.FindStringIndex(p.HTML)
		if loc == nil {
			continue
		}
		window := runeWindow(p.HTML, loc[0], e.markerBefore, e.markerAfter)
		// drop a tag cut in half at the start of the window
		if gt, lt := strings.IndexByte(window, '>'), strings.IndexByte(window, '<'); gt >= 0 && (lt < 0 || gt < lt) {
			window = window[gt+1:]
		}
		return CleanText(window, e.maxChars)
	}
	return ""
}

// runeWindow returns up to before runes preceding byte offset at and up to after runes from it
func runeWindow(s string, at, before, after int) string {
	start := at
	for i := 0; i < before && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:start])
		start -= size
	}
	end := at
	for i := 0; i < after && end < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return s[start:end]
}

// blockStrategy makes a strategy taking the largest element with given tag name
func (e *Extractor) blockStrategy(tag string) func(p *Page) string {
	return func(p *Page) string {
		doc := p.Doc()
		if doc == nil {
			return ""
		}
		best, bestLen := "", 0
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			block, err := goquery.OuterHtml(s)
			if err != nil {
				return
			}
			if l := utf8.RuneCountInString(block); l >= minBlockChars && l > bestLen {
				best, bestLen = block, l
			}
		})
		if best == "" {
			return ""
		}
		return CleanText(best, e.maxChars)
	}
}

// readabilityStrategy runs trafilatura over the whole document
func (e *Extractor) readabilityStrategy(p *Page) string {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     p.URL,
	}
	result, err := trafilatura.Extract(strings.NewReader(p.HTML), opts)
	if err != nil || result == nil {
		return ""
	}
	return CleanText(result.ContentText, e.maxChars)
}

// wholePage strips all tags from the entire document
func (e *Extractor) wholePage(p *Page) string {
	return CleanText(p.HTML, e.maxChars)
}
