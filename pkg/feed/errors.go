package feed

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies provider fetch failures
type ErrorKind string

// enum of fetch failure kinds
const (
	KindNetwork ErrorKind = "network"
	KindStatus  ErrorKind = "status"
	KindParse   ErrorKind = "parse"
)

// FetchError is a classified provider failure. Its message ends up as the source's last error.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	URL        string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetch %s: HTTP %d %s for %s", e.Kind, e.StatusCode, http.StatusText(e.StatusCode), e.URL)
	}
	return fmt.Sprintf("fetch %s: %v for %s", e.Kind, e.Cause, e.URL)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// statusError makes a FetchError for a non-2xx response
func statusError(code int, url string) *FetchError {
	return &FetchError{Kind: KindStatus, StatusCode: code, URL: url, Cause: fmt.Errorf("HTTP %d", code)}
}

// networkError makes a FetchError for transport level failures, dns, timeouts and resets
func networkError(cause error, url string) *FetchError {
	return &FetchError{Kind: KindNetwork, URL: url, Cause: cause}
}

// parseError makes a FetchError for payloads that can't be decoded
func parseError(cause error, url string) *FetchError {
	return &FetchError{Kind: KindParse, URL: url, Cause: cause}
}

// ErrorKindOf returns the kind of a FetchError in err chain, empty if there is none
func ErrorKindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
