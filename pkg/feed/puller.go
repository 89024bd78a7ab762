package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hanstudy/ingest/pkg/content"
	"github.com/hanstudy/ingest/pkg/domain"
)

//go:generate moq -out mocks/body_fetcher.go -pkg mocks -skip-ensure -fmt goimports . BodyFetcher

// BodyFetcher recovers the full article body of a page, returning fallback if it can't
type BodyFetcher interface {
	FetchArticleBody(ctx context.Context, url, fallback string) string
}

// Adapter pulls normalized articles from one provider type
type Adapter interface {
	Pull(ctx context.Context, src domain.SourceDefinition) ([]domain.Article, error)
}

// Puller dispatches a source to the adapter registered for its type
type Puller struct {
	adapters map[domain.SourceType]Adapter
}

// NewPuller creates a puller with given adapters
func NewPuller(adapters map[domain.SourceType]Adapter) *Puller {
	return &Puller{adapters: adapters}
}

// Options configures the default set of adapters made by New
type Options struct {
	Client          *http.Client // provider client, default used if nil
	Bodies          BodyFetcher
	ProviderTimeout time.Duration
	UserAgent       string
	RSSItemLimit    int
	BodyWorkers     int
	SearchDisplay   int
	SearchQueries   []string // default queries for search sources without their own
	ClientID        string
	ClientSecret    string
	WikiSampleSize  int
	WikiMemberLimit int
	Usability       content.Usability
	MaxBodyChars    int
	Now             func() time.Time // clock for the wiki daily sample, time.Now if nil
}

// New creates a puller with rss, search and wiki adapters
func New(opts Options) *Puller {
	g := newGetter(opts.Client, opts.ProviderTimeout, opts.UserAgent)
	return NewPuller(map[domain.SourceType]Adapter{
		domain.SourceTypeRSS: &RSSAdapter{getter: g, Bodies: opts.Bodies, ItemLimit: opts.RSSItemLimit, Workers: opts.BodyWorkers},
		domain.SourceTypeSearch: &SearchAdapter{getter: g, Bodies: opts.Bodies, ClientID: opts.ClientID, ClientSecret: opts.ClientSecret,
			Display: opts.SearchDisplay, DefaultQueries: opts.SearchQueries, Workers: opts.BodyWorkers},
		domain.SourceTypeWiki: &WikiAdapter{getter: g, SampleSize: opts.WikiSampleSize, MemberLimit: opts.WikiMemberLimit,
			Usability: opts.Usability, MaxChars: opts.MaxBodyChars, Now: opts.Now},
	})
}

// Pull returns normalized articles of the source
func (p *Puller) Pull(ctx context.Context, src domain.SourceDefinition) ([]domain.Article, error) {
	adapter, ok := p.adapters[src.Type]
	if !ok {
		return nil, fmt.Errorf("no adapter for source type %q of %s", src.Type, src.Key)
	}
	return adapter.Pull(ctx, src)
}

// isAbsHTTP reports if u is an absolute http(s) url
func isAbsHTTP(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// bodyFallback returns summary, or title when summary is empty
func bodyFallback(summary, title string) string {
	if summary != "" {
		return summary
	}
	return title
}
