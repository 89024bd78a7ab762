package content

import (
	"math/rand"
	"net/http"
)

// acceptLanguages contains common browser Accept-Language values, korean first as most sources are korean
var acceptLanguages = []string{
	"ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
	"ko-KR,ko;q=0.9",
	"ko,en-US;q=0.9,en;q=0.8",
	"en-US,en;q=0.9,ko;q=0.8",
	"ja-JP,ja;q=0.9,ko;q=0.8,en;q=0.7",
	"zh-CN,zh;q=0.9,ko;q=0.8,en;q=0.7",
	"vi-VN,vi;q=0.9,ko;q=0.8,en;q=0.7",
}

// addBrowserHeaders adds common browser headers to article page requests with some randomization.
// Accept-Encoding is left to the transport so compressed responses are decoded transparently.
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	// randomized language
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation

	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}

	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
}
