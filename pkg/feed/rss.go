package feed

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/hanstudy/ingest/pkg/content"
	"github.com/hanstudy/ingest/pkg/domain"
)

// RSSAdapter pulls items of an RSS/Atom feed and recovers their bodies
type RSSAdapter struct {
	getter    getter
	Bodies    BodyFetcher
	ItemLimit int // items taken from the head of the feed, 25 if not set
	Workers   int // concurrent body fetches, 5 if not set
}

// Pull fetches and parses the feed at src.Endpoint
func (a *RSSAdapter) Pull(ctx context.Context, src domain.SourceDefinition) ([]domain.Article, error) {
	data, err := a.getter.get(ctx, src.Endpoint, acceptFeed, nil)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, parseError(err, src.Endpoint)
	}

	limit := a.ItemLimit
	if limit <= 0 {
		limit = 25
	}
	items := feed.Items
	if len(items) > limit {
		items = items[:limit]
	}

	// one slot per item keeps feed order, discarded items stay nil
	res := make([]*domain.Article, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workersOrDefault(a.Workers))
	for i, item := range items {
		article, ok := a.normalize(item, src)
		if !ok {
			lgr.Printf("[DEBUG] skip item without link or title in %s", src.Key)
			continue
		}
		g.Go(func() error {
			article.BodyText = a.Bodies.FetchArticleBody(gctx, article.SourceURL, bodyFallback(article.Summary, article.Title))
			res[i] = &article
			return nil
		})
	}
	_ = g.Wait() // body fetches never fail

	articles := make([]domain.Article, 0, len(res))
	for _, art := range res {
		if art != nil {
			articles = append(articles, *art)
		}
	}
	lgr.Printf("[DEBUG] pulled %d of %d items from %s", len(articles), len(feed.Items), src.Key)
	return articles, nil
}

// normalize maps a feed item to article without body, false if item has no link or title
func (a *RSSAdapter) normalize(item *gofeed.Item, src domain.SourceDefinition) (domain.Article, bool) {
	link := strings.TrimSpace(item.Link)
	title := content.StripHTML(item.Title)
	if link == "" || title == "" {
		return domain.Article{}, false
	}

	summary := content.StripHTML(item.Description)
	if summary == "" {
		summary = content.StripHTML(item.Content)
	}

	article := domain.Article{
		SourceGUID: strings.TrimSpace(item.GUID),
		SourceURL:  link,
		Title:      title,
		Summary:    summary,
		BodyHTML:   item.Content,
		Section:    itemSection(item, src.Section, link),
	}

	for _, c := range item.Categories {
		if c = content.StripHTML(c); c != "" {
			article.Tags = append(article.Tags, c)
		}
	}

	switch {
	case item.Author != nil && item.Author.Name != "":
		article.Author = item.Author.Name
	case len(item.Authors) > 0 && item.Authors[0] != nil:
		article.Author = item.Authors[0].Name
	}

	if item.PublishedParsed != nil {
		article.PublishedAt = item.PublishedParsed.UnixMilli()
	} else if item.UpdatedParsed != nil {
		article.PublishedAt = item.UpdatedParsed.UnixMilli()
	}

	return article, true
}

// itemSection picks item category, then the source section hint, then the first path segment of the link
func itemSection(item *gofeed.Item, hint, link string) string {
	for _, c := range item.Categories {
		if c = content.StripHTML(c); c != "" {
			return c
		}
	}
	if hint != "" {
		return hint
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	// a single segment path is the article itself, not a section
	segment, _, found := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if !found {
		return ""
	}
	return segment
}

func workersOrDefault(n int) int {
	if n <= 0 {
		return 5
	}
	return n
}
