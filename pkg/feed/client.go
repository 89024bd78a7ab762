package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes limits provider payload size
const maxResponseBytes = 10 << 20

// getter performs provider GET requests with timeout, browser-like headers and error classification
type getter struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// newGetter makes a getter, default client used if client is nil
func newGetter(client *http.Client, timeout time.Duration, userAgent string) getter {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return getter{client: client, timeout: timeout, userAgent: userAgent}
}

// get fetches url and returns the response body. Extra headers are added after the browser ones.
func (g getter) get(ctx context.Context, url, accept string, extra http.Header) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	addBrowserHeaders(req, accept)
	for k, vv := range extra {
		for _, v := range vv {
			req.Header.Set(k, v)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, networkError(err, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, networkError(fmt.Errorf("read body: %w", err), url)
	}
	return data, nil
}
