package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/hanstudy/ingest/pkg/content"
	"github.com/hanstudy/ingest/pkg/domain"
)

// SearchAdapter pulls recent results of keyword queries from the news search API.
// Without both credentials it pulls nothing.
type SearchAdapter struct {
	getter         getter
	Bodies         BodyFetcher
	ClientID       string
	ClientSecret   string
	Display        int      // results per query, 10 if not set
	DefaultQueries []string // used when source has no queries
	Workers        int
}

// searchResponse is the provider payload
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// Pull runs every query of the source and merges results by url
func (a *SearchAdapter) Pull(ctx context.Context, src domain.SourceDefinition) ([]domain.Article, error) {
	if a.ClientID == "" || a.ClientSecret == "" {
		lgr.Printf("[DEBUG] search credentials not set, skip %s", src.Key)
		return nil, nil
	}

	queries := src.Queries
	if len(queries) == 0 {
		queries = a.DefaultQueries
	}

	var articles []domain.Article
	seen := map[string]bool{}
	failed := 0
	var lastErr error
	for _, q := range queries {
		items, err := a.query(ctx, src.Endpoint, q)
		if err != nil {
			lgr.Printf("[WARN] search query %q of %s failed: %v", q, src.Key, err)
			failed++
			lastErr = err
			continue
		}
		for _, item := range items {
			article, ok := a.normalize(item, src)
			if !ok || seen[article.SourceURL] {
				continue
			}
			seen[article.SourceURL] = true
			articles = append(articles, article)
		}
	}
	if len(queries) > 0 && failed == len(queries) {
		return nil, fmt.Errorf("all %d search queries failed: %w", failed, lastErr)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workersOrDefault(a.Workers))
	for i := range articles {
		g.Go(func() error {
			articles[i].BodyText = a.Bodies.FetchArticleBody(gctx, articles[i].SourceURL, bodyFallback(articles[i].Summary, articles[i].Title))
			return nil
		})
	}
	_ = g.Wait()

	lgr.Printf("[DEBUG] pulled %d search results for %s from %d queries", len(articles), src.Key, len(queries))
	return articles, nil
}

// query requests one page of date-sorted results for q
func (a *SearchAdapter) query(ctx context.Context, endpoint, q string) ([]searchItem, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	display := a.Display
	if display <= 0 {
		display = 10
	}
	params := u.Query()
	params.Set("query", q)
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", "date")
	u.RawQuery = params.Encode()

	headers := http.Header{}
	headers.Set("X-Naver-Client-Id", a.ClientID)
	headers.Set("X-Naver-Client-Secret", a.ClientSecret)

	data, err := a.getter.get(ctx, u.String(), acceptJSON, headers)
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, parseError(err, endpoint)
	}
	return resp.Items, nil
}

// normalize maps a search item to article without body, false if it has no usable url or title
func (a *SearchAdapter) normalize(item searchItem, src domain.SourceDefinition) (domain.Article, bool) {
	link := strings.TrimSpace(item.Link)
	resolved := strings.TrimSpace(item.OriginalLink)
	if resolved == "" {
		resolved = link
	}
	title := content.StripHTML(item.Title)
	if !isAbsHTTP(resolved) || title == "" {
		return domain.Article{}, false
	}

	article := domain.Article{
		SourceURL: resolved,
		Title:     title,
		Summary:   content.StripHTML(item.Description),
		Section:   src.Section,
	}
	if link != "" && link != resolved && isAbsHTTP(link) {
		article.CanonicalURL = link
	}
	if ts, err := time.Parse(time.RFC1123Z, strings.TrimSpace(item.PubDate)); err == nil {
		article.PublishedAt = ts.UnixMilli()
	}
	return article, true
}
