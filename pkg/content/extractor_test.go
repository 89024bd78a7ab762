package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_FetchArticleBody(t *testing.T) {
	articlePage := `<!DOCTYPE html>
		<html>
		<head><title>Test Article</title></head>
		<body>
			<nav>Home News Sports</nav>
			<article>
				<h1>Test Article Title</h1>
				<p>` + longText("Body") + `</p>
			</article>
		</body>
		</html>`

	tests := []struct {
		name       string
		html       string
		statusCode int
		want       string
	}{
		{
			name:       "successful extraction",
			html:       articlePage,
			statusCode: http.StatusOK,
			want:       "Test Article Title " + longText("Body"),
		},
		{
			name:       "short text falls back",
			html:       `<html><body><p>Short content.</p></body></html>`,
			statusCode: http.StatusOK,
			want:       "feed summary",
		},
		{
			name:       "server error falls back",
			html:       "error",
			statusCode: http.StatusInternalServerError,
			want:       "feed summary",
		},
		{
			name:       "not found falls back",
			html:       "not found",
			statusCode: http.StatusNotFound,
			want:       "feed summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NotEmpty(t, r.Header.Get("User-Agent"))
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.html))
			}))
			defer ts.Close()

			e := newTestExtractor(t, false)
			got := e.FetchArticleBody(context.Background(), ts.URL+"/article", "feed summary")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_FetchArticleBody_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte("<html><body><article>" + longText("Late") + "</article></body></html>"))
	}))
	defer ts.Close()

	e, err := NewExtractor(Config{Timeout: 50 * time.Millisecond, MinBodyChars: 80, UsableMinChars: 180, UsableMinSentences: 2})
	require.NoError(t, err)

	start := time.Now()
	got := e.FetchArticleBody(context.Background(), ts.URL, "fallback text")
	assert.Equal(t, "fallback text", got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestExtractor_FetchArticleBody_InvalidURL(t *testing.T) {
	e := newTestExtractor(t, false)
	for _, u := range []string{"", "not-a-url", "ftp://example.com/file", "/relative/path", "http://"} {
		t.Run(u, func(t *testing.T) {
			assert.Equal(t, "fb", e.FetchArticleBody(context.Background(), u, "fb"))
		})
	}
}

func TestExtractor_FetchArticleBody_ContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><article>" + longText("Body") + "</article></body></html>"))
	}))
	defer ts.Close()

	e := newTestExtractor(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, "fb", e.FetchArticleBody(ctx, ts.URL, "fb"))
}

// roundTripFunc lets tests stub the transport of the extractor client
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestExtractor_FetchArticleBody_TransportError(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}
	e, err := NewExtractor(Config{Client: client, MinBodyChars: 80})
	require.NoError(t, err)
	assert.Equal(t, "summary", e.FetchArticleBody(context.Background(), "https://example.com/a", "summary"))
}

func TestExtractor_FetchArticleBody_Capped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := strings.Repeat("이것은 아주 긴 기사 본문 문장입니다. ", 2000)
		_, _ = w.Write([]byte("<html><body><article><p>" + body + "</p></article></body></html>"))
	}))
	defer ts.Close()

	e := newTestExtractor(t, false)
	got := e.FetchArticleBody(context.Background(), ts.URL, "fb")
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 12000)
	assert.Greater(t, utf8.RuneCountInString(got), 11990)
	assert.True(t, strings.HasPrefix(got, "이것은 아주 긴 기사"))
}

func TestExtractor_Accessors(t *testing.T) {
	e := newTestExtractor(t, false)
	assert.Equal(t, 12000, e.MaxChars())
	assert.False(t, e.Usable("short."))
	assert.True(t, e.Usable(longText("x")))
}
