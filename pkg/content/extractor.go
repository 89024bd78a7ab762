package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html/charset"
)

// maxPageBytes limits how much of an article page is read
const maxPageBytes = 5 << 20

// Config holds extractor policy
type Config struct {
	Timeout            time.Duration // per page fetch
	UserAgent          string
	MaxBodyChars       int // cap of extracted text
	MinBodyChars       int // shorter results fall back to caller text
	UsableMinChars     int
	UsableMinSentences int
	MarkerBefore       int // runes taken before host marker
	MarkerAfter        int // runes taken after host marker
	Readability        bool
	HostMarkers        []HostMarker // appended to default markers
	Client             *http.Client // optional, default client used if nil
}

// Extractor recovers full article text from article pages using an ordered chain of strategies
type Extractor struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	maxChars     int
	minChars     int
	usability    Usability
	markerBefore int
	markerAfter  int
	markers      []hostMarker
	chain        []Strategy
}

// NewExtractor creates a new extractor. Returns error if a host marker pattern doesn't compile.
func NewExtractor(cfg Config) (*Extractor, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; Ingest/1.0)"
	}

	e := &Extractor{
		client:       cfg.Client,
		timeout:      cfg.Timeout,
		userAgent:    cfg.UserAgent,
		maxChars:     cfg.MaxBodyChars,
		minChars:     cfg.MinBodyChars,
		usability:    Usability{MinChars: cfg.UsableMinChars, MinSentences: cfg.UsableMinSentences},
		markerBefore: cfg.MarkerBefore,
		markerAfter:  cfg.MarkerAfter,
	}

	for _, m := range append(append([]HostMarker{}, defaultHostMarkers...), cfg.HostMarkers...) {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile marker for %s: %w", m.Host, err)
		}
		e.markers = append(e.markers, hostMarker{host: m.Host, re: re})
	}

	e.chain = []Strategy{
		{Name: "json-ld", Extract: e.jsonLDStrategy},
		{Name: "host-marker", Extract: e.hostMarkerStrategy},
		{Name: "article", Extract: e.blockStrategy("article")},
		{Name: "main", Extract: e.blockStrategy("main")},
	}
	if cfg.Readability {
		e.chain = append(e.chain, Strategy{Name: "readability", Extract: e.readabilityStrategy})
	}

	return e, nil
}

// FetchArticleBody fetches the article page and returns the best body text found.
// It never fails: fetch errors, timeouts and too short results return fallback.
func (e *Extractor) FetchArticleBody(ctx context.Context, articleURL, fallback string) string {
	text, err := e.fetchAndExtract(ctx, articleURL)
	if err != nil {
		lgr.Printf("[DEBUG] body extraction for %s failed, using fallback: %v", articleURL, err)
		return fallback
	}
	if utf8.RuneCountInString(text) < e.minChars {
		lgr.Printf("[DEBUG] body of %s too short (%d chars), using fallback", articleURL, utf8.RuneCountInString(text))
		return fallback
	}
	return text
}

// ExtractBodyText runs the strategy chain over html and returns the first usable result.
// If no strategy produces usable text the whole page text is returned as is.
func (e *Extractor) ExtractBodyText(rawHTML, pageURL string) string {
	page := NewPage(rawHTML, pageURL)
	for _, s := range e.chain {
		text := s.Extract(page)
		if e.usability.Usable(text) {
			lgr.Printf("[DEBUG] extracted %d chars from %s with %s", utf8.RuneCountInString(text), pageURL, s.Name)
			return text
		}
	}
	return e.wholePage(page)
}

// Usable reports if text passes the usability test of this extractor
func (e *Extractor) Usable(text string) bool {
	return e.usability.Usable(text)
}

// MaxChars returns the body length cap
func (e *Extractor) MaxChars() int {
	return e.maxChars
}

// fetchAndExtract retrieves the page with timeout and runs extraction over it
func (e *Extractor) fetchAndExtract(ctx context.Context, articleURL string) (string, error) {
	parsedURL, err := url.Parse(articleURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", articleURL)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, articleURL)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode charset: %w", err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return e.ExtractBodyText(string(data), articleURL), nil
}
