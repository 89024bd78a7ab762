package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/hanstudy/ingest/pkg/content"
	"github.com/hanstudy/ingest/pkg/domain"
)

const (
	defaultWikiCategory = "분류:알찬 글"
	summaryChars        = 300
)

// genericCategoryMarkers are substrings of maintenance and self-referential category labels
var genericCategoryMarkers = []string{
	"maintenance", "stub", "articles", "pages", "wikipedia", "featured", "good article", "cs1",
	"유지보수", "토막글", "문서", "위키백과", "알찬 글", "좋은 글", "인용 오류",
}

// WikiAdapter pulls a deterministic daily sample of pages of a category from a MediaWiki API
type WikiAdapter struct {
	getter      getter
	SampleSize  int // pages per day when source doesn't set one, 1 if not set
	MemberLimit int // category members listed, 200 if not set
	Usability   content.Usability
	MaxChars    int
	Now         func() time.Time
}

type wikiMembersResponse struct {
	Query struct {
		CategoryMembers []struct {
			PageID int64  `json:"pageid"`
			Title  string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

type wikiPage struct {
	PageID       int64  `json:"pageid"`
	Title        string `json:"title"`
	Missing      bool   `json:"missing"`
	Extract      string `json:"extract"`
	FullURL      string `json:"fullurl"`
	CanonicalURL string `json:"canonicalurl"`
	Touched      string `json:"touched"`
	Categories   []struct {
		Title string `json:"title"`
	} `json:"categories"`
}

type wikiPagesResponse struct {
	Query struct {
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
}

// Pull lists category members, samples today's titles and fetches their pages
func (a *WikiAdapter) Pull(ctx context.Context, src domain.SourceDefinition) ([]domain.Article, error) {
	category := src.Category
	if category == "" {
		category = defaultWikiCategory
	}
	titles, err := a.members(ctx, src.Endpoint, category)
	if err != nil {
		return nil, fmt.Errorf("list members of %s: %w", category, err)
	}

	size := src.SampleSize
	if size <= 0 {
		size = a.SampleSize
	}
	if size <= 0 {
		size = 1
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	picks := SampleDaily(titles, size, now())
	lgr.Printf("[DEBUG] wiki %s sampled %v of %d members", src.Key, picks, len(titles))

	var articles []domain.Article
	for _, title := range picks {
		page, err := a.page(ctx, src.Endpoint, title)
		if err != nil {
			lgr.Printf("[WARN] wiki page %q of %s failed: %v", title, src.Key, err)
			continue
		}
		article, ok := a.normalize(page, category)
		if !ok {
			lgr.Printf("[DEBUG] wiki page %q of %s is not usable, skipped", title, src.Key)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// members returns titles of main namespace pages of the category
func (a *WikiAdapter) members(ctx context.Context, endpoint, category string) ([]string, error) {
	limit := a.MemberLimit
	if limit <= 0 {
		limit = 200
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("list", "categorymembers")
	params.Set("cmtitle", category)
	params.Set("cmnamespace", "0")
	params.Set("cmtype", "page")
	params.Set("cmlimit", strconv.Itoa(limit))

	var resp wikiMembersResponse
	if err := a.call(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(resp.Query.CategoryMembers))
	for _, m := range resp.Query.CategoryMembers {
		if m.Title != "" {
			titles = append(titles, m.Title)
		}
	}
	slices.Sort(titles) // stable order for the daily sample
	return titles, nil
}

// page fetches plain text extract, categories and urls of one page
func (a *WikiAdapter) page(ctx context.Context, endpoint, title string) (wikiPage, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("prop", "extracts|categories|info")
	params.Set("explaintext", "1")
	params.Set("inprop", "url")
	params.Set("cllimit", "max")
	params.Set("clshow", "!hidden")
	params.Set("redirects", "1")
	params.Set("titles", title)

	var resp wikiPagesResponse
	if err := a.call(ctx, endpoint, params, &resp); err != nil {
		return wikiPage{}, err
	}
	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return wikiPage{}, fmt.Errorf("page %q not found", title)
	}
	return resp.Query.Pages[0], nil
}

func (a *WikiAdapter) call(ctx context.Context, endpoint string, params url.Values, v any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	for k, vv := range params {
		q[k] = vv
	}
	u.RawQuery = q.Encode()

	data, err := a.getter.get(ctx, u.String(), acceptJSON, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return parseError(err, endpoint)
	}
	return nil
}

// normalize maps a page to article, false if page has no url or title or its text is not usable
func (a *WikiAdapter) normalize(page wikiPage, category string) (domain.Article, bool) {
	pageURL := page.FullURL
	if pageURL == "" {
		pageURL = page.CanonicalURL
	}
	title := strings.TrimSpace(page.Title)
	if !isAbsHTTP(pageURL) || title == "" {
		return domain.Article{}, false
	}

	maxChars := a.MaxChars
	if maxChars <= 0 {
		maxChars = 12000
	}
	body := content.CleanText(page.Extract, maxChars)
	if !a.Usability.Usable(body) {
		return domain.Article{}, false
	}

	firstParagraph, _, _ := strings.Cut(strings.TrimSpace(page.Extract), "\n")
	article := domain.Article{
		SourceGUID: "wiki:" + strconv.FormatInt(page.PageID, 10),
		SourceURL:  pageURL,
		Title:      title,
		Summary:    content.CleanText(firstParagraph, summaryChars),
		BodyText:   body,
		Tags:       topicCategories(page, category),
	}
	if page.CanonicalURL != "" && page.CanonicalURL != pageURL {
		article.CanonicalURL = page.CanonicalURL
	}
	if len(article.Tags) > 0 {
		article.Section = article.Tags[0]
	}
	if ts, err := time.Parse(time.RFC3339, page.Touched); err == nil {
		article.PublishedAt = ts.UnixMilli()
	}
	return article, true
}

// topicCategories returns page categories without namespace prefix, minus generic
// and self-referential labels
func topicCategories(page wikiPage, sampled string) []string {
	sampledName := stripNamespace(sampled)
	var res []string
	for _, c := range page.Categories {
		name := stripNamespace(c.Title)
		if name == "" || name == sampledName || isGenericCategory(name) || slices.Contains(res, name) {
			continue
		}
		res = append(res, name)
	}
	return res
}

func stripNamespace(title string) string {
	if _, name, found := strings.Cut(title, ":"); found {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(title)
}

func isGenericCategory(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range genericCategoryMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
