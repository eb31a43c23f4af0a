// Package fetch defines the article fetching boundary of the summarization
// workflow: the ArticleFetcher interface and the sentinel errors its
// implementations return.
package fetch

import (
	"context"
	"errors"
	"fmt"
)

// ArticleFetcher fetches a Medium article page and extracts its readable text.
// Implementations extract clean article text from web pages using various
// extraction strategies (DOM traversal, Mozilla Readability).
//
// Security considerations:
//   - Implementations MUST prevent Server-Side Request Forgery (SSRF) attacks
//   - Implementations MUST enforce size limits to prevent memory exhaustion
//   - Implementations MUST enforce timeouts to prevent resource starvation
//   - Implementations MUST validate redirect targets
type ArticleFetcher interface {
	// FetchContent fetches and extracts article content from the given URL.
	//
	// The implementation should:
	// 1. Validate the URL for security (prevent SSRF)
	// 2. Fetch the HTML content via HTTP/HTTPS
	// 3. Extract the article body text without markup or navigation chrome
	//
	// Errors:
	//   - ErrInvalidURL: URL format is invalid or uses unsupported scheme
	//   - ErrPrivateIP: URL resolves to a private IP address (SSRF prevention)
	//   - ErrTooManyRedirects: Redirect chain exceeds configured maximum
	//   - ErrBodyTooLarge: Response body exceeds size limit
	//   - ErrTimeout: Request timed out
	//   - ErrNoArticleFound: No recognizable article markup in the page
	//   - ErrContentTooShort: Extracted text is too short to be an article
	//   - *HTTPStatusError: Upstream returned a non-2xx status
	//   - gobreaker.ErrOpenState: Circuit breaker is open (too many failures)
	FetchContent(ctx context.Context, url string) (string, error)
}

// Sentinel errors for article fetching operations. These let callers
// distinguish failure modes when mapping to HTTP responses.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an
	// unsupported scheme. Only http:// and https:// are supported.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private IP address.
	// Blocked ranges include loopback, RFC 1918, link-local, and their
	// IPv6 equivalents.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the
	// configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrNoArticleFound indicates the page contained no recognizable
	// article markup (no article tag and no known article container).
	ErrNoArticleFound = errors.New("no article content found")

	// ErrContentTooShort indicates the extracted text was too short to be
	// a real article. Paywalled or member-only pages often trigger this.
	ErrContentTooShort = errors.New("extracted content too short")
)

// HTTPStatusError reports a non-2xx response from the article host.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}
