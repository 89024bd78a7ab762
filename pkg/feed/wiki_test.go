package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanstudy/ingest/pkg/content"
	"github.com/hanstudy/ingest/pkg/domain"
)

func usableExtract(topic string) string {
	return "첫 문단은 " + topic + "에 대한 소개입니다.\n" +
		strings.Repeat(topic+"에 관한 자세한 설명이 이어지는 문장입니다. ", 10)
}

type wikiFake struct {
	members []string
	pages   map[string]wikiPage

	mu      sync.Mutex
	cmtitle string
}

func (f *wikiFake) category() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cmtitle
}

func (f *wikiFake) server(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "2", q.Get("formatversion"))
		w.Header().Set("Content-Type", "application/json")
		if q.Get("list") == "categorymembers" {
			f.mu.Lock()
			f.cmtitle = q.Get("cmtitle")
			f.mu.Unlock()
			assert.Equal(t, "0", q.Get("cmnamespace"))
			var resp wikiMembersResponse
			for i, title := range f.members {
				resp.Query.CategoryMembers = append(resp.Query.CategoryMembers, struct {
					PageID int64  `json:"pageid"`
					Title  string `json:"title"`
				}{PageID: int64(i + 1), Title: title})
			}
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		assert.Equal(t, "extracts|categories|info", q.Get("prop"))
		assert.Equal(t, "url", q.Get("inprop"))
		var resp wikiPagesResponse
		page, ok := f.pages[q.Get("titles")]
		if !ok {
			page = wikiPage{Title: q.Get("titles"), Missing: true}
		}
		resp.Query.Pages = []wikiPage{page}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func makePage(id int64, title string, categories ...string) wikiPage {
	p := wikiPage{PageID: id, Title: title, Extract: usableExtract(title), FullURL: "https://ko.wikipedia.org/wiki/" + title,
		CanonicalURL: "https://ko.wikipedia.org/wiki/" + title, Touched: "2024-03-01T10:00:00Z"}
	for _, c := range categories {
		p.Categories = append(p.Categories, struct {
			Title string `json:"title"`
		}{Title: c})
	}
	return p
}

func TestWikiAdapter_Pull(t *testing.T) {
	fake := &wikiFake{
		members: []string{"다", "가", "나"},
		pages: map[string]wikiPage{
			"가": makePage(11, "가", "분류:알찬 글", "분류:한국의 역사", "분류:CS1 errors", "분류:토막글", "분류:조선의 왕", "분류:한국의 역사"),
			"나": makePage(12, "나", "분류:한국어"),
			"다": makePage(13, "다"),
		},
	}
	ts := fake.server(t)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := &WikiAdapter{getter: newGetter(nil, time.Second, ""), Usability: content.Usability{MinChars: 180, MinSentences: 2},
		MaxChars: 12000, Now: func() time.Time { return now }}

	res, err := a.Pull(context.Background(), domain.SourceDefinition{Key: "wiki", Type: domain.SourceTypeWiki, Endpoint: ts.URL, SampleSize: 3})
	require.NoError(t, err)
	assert.Equal(t, defaultWikiCategory, fake.category())
	require.Len(t, res, 3)

	expected := SampleDaily([]string{"가", "나", "다"}, 3, now)
	for i, art := range res {
		assert.Equal(t, expected[i], art.Title, "sorted members sampled in order")
	}

	var ga domain.Article
	for _, art := range res {
		if art.Title == "가" {
			ga = art
		}
	}
	assert.Equal(t, "wiki:11", ga.SourceGUID)
	assert.Equal(t, "https://ko.wikipedia.org/wiki/가", ga.SourceURL)
	assert.Empty(t, ga.CanonicalURL, "same as full url")
	assert.Equal(t, []string{"한국의 역사", "조선의 왕"}, ga.Tags)
	assert.Equal(t, "한국의 역사", ga.Section)
	assert.Equal(t, "첫 문단은 가에 대한 소개입니다.", ga.Summary)
	assert.True(t, strings.HasPrefix(ga.BodyText, "첫 문단은 가에 대한 소개입니다. 가에 관한"))
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).UnixMilli(), ga.PublishedAt)
}

func TestWikiAdapter_SameDaySamePick(t *testing.T) {
	fake := &wikiFake{members: []string{"가", "나", "다", "라", "마"}, pages: map[string]wikiPage{}}
	for i, title := range fake.members {
		fake.pages[title] = makePage(int64(i), title)
	}
	ts := fake.server(t)

	clock := time.Date(2024, 5, 10, 1, 0, 0, 0, time.UTC)
	a := &WikiAdapter{getter: newGetter(nil, time.Second, ""), SampleSize: 1, Usability: content.Usability{MinChars: 180, MinSentences: 2},
		Now: func() time.Time { return clock }}
	src := domain.SourceDefinition{Key: "wiki", Endpoint: ts.URL, Category: "분류:좋은 글"}

	first, err := a.Pull(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "분류:좋은 글", fake.category())

	clock = clock.Add(10 * time.Hour) // still the same day at UTC+9
	second, err := a.Pull(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Title, second[0].Title)

	clock = clock.Add(24 * time.Hour)
	third, err := a.Pull(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.NotEqual(t, first[0].Title, third[0].Title, "next day moves the window")
}

func TestWikiAdapter_DiscardsUnusable(t *testing.T) {
	short := makePage(1, "가")
	short.Extract = "너무 짧은 문서입니다."
	noURL := makePage(2, "나")
	noURL.FullURL, noURL.CanonicalURL = "", ""
	fake := &wikiFake{members: []string{"가", "나", "다", "라"}, pages: map[string]wikiPage{"가": short, "나": noURL, "라": makePage(4, "라")}}
	ts := fake.server(t)

	a := &WikiAdapter{getter: newGetter(nil, time.Second, ""), Usability: content.Usability{MinChars: 180, MinSentences: 2},
		Now: func() time.Time { return time.Unix(0, 0) }}
	res, err := a.Pull(context.Background(), domain.SourceDefinition{Key: "wiki", Endpoint: ts.URL, SampleSize: 4})
	require.NoError(t, err)
	require.Len(t, res, 1, "short, url-less and missing pages dropped")
	assert.Equal(t, "라", res[0].Title)
}

func TestWikiAdapter_CapsBody(t *testing.T) {
	long := makePage(1, "가")
	long.Extract = strings.Repeat("아주 긴 백과사전 문장입니다. ", 3000)
	fake := &wikiFake{members: []string{"가"}, pages: map[string]wikiPage{"가": long}}
	ts := fake.server(t)

	a := &WikiAdapter{getter: newGetter(nil, time.Second, ""), Usability: content.Usability{MinChars: 180, MinSentences: 2}}
	res, err := a.Pull(context.Background(), domain.SourceDefinition{Key: "wiki", Endpoint: ts.URL})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.LessOrEqual(t, len([]rune(res[0].BodyText)), 12000)
	assert.Greater(t, len([]rune(res[0].BodyText)), 11990)
}

func TestWikiAdapter_MembersError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{broken"))
	}))
	defer ts.Close()

	a := &WikiAdapter{getter: newGetter(nil, time.Second, "")}
	_, err := a.Pull(context.Background(), domain.SourceDefinition{Key: "wiki", Endpoint: ts.URL})
	require.Error(t, err)
	assert.Equal(t, KindParse, ErrorKindOf(err))
	assert.Contains(t, err.Error(), "list members of 분류:알찬 글")
}

func TestTopicCategories(t *testing.T) {
	page := makePage(1, "x", "Category:Featured articles", "Category:Korean history", "Category:Wikipedia pages",
		"Category:Articles with short description", "Category:Joseon", "분류:위키백과 유지보수", "Category:Good articles")
	assert.Equal(t, []string{"Korean history", "Joseon"}, topicCategories(page, "Category:Joseon dynasty"))
	assert.Equal(t, []string{"Korean history"}, topicCategories(page, "Category:Joseon"), "sampled category is self-referential")
}
