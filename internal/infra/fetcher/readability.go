package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"medium-digest/internal/resilience/circuitbreaker"
	"medium-digest/internal/usecase/fetch"
	"medium-digest/internal/utils/text"

	"github.com/go-shiori/go-readability"
)

// ReadabilityFetcher implements fetch.ArticleFetcher using the Mozilla
// Readability algorithm. Unlike MediumFetcher it makes no assumptions about
// the page structure, at the cost of losing heading markers in the output.
// Selected with FETCHER=readability.
//
// Thread safety: ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ContentFetchConfig
}

// NewReadabilityFetcher creates a ReadabilityFetcher with the given configuration.
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	return &ReadabilityFetcher{
		client:         newHTTPClient(config),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ArticleFetchConfig()),
		config:         config,
	}
}

// FetchContent fetches the page and extracts the article text using
// Readability. See fetch.ArticleFetcher for the error contract.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	htmlBytes, finalURL, err := fetchHTML(ctx, f.client, f.config, urlStr)
	if err != nil {
		return "", err
	}

	htmlReader := io.NopCloser(bytes.NewReader(htmlBytes))
	article, err := readability.FromReader(htmlReader, finalURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fetch.ErrNoArticleFound, err)
	}

	content := article.TextContent
	if content == "" {
		if article.Content == "" {
			return "", fmt.Errorf("%w: no readable content found", fetch.ErrNoArticleFound)
		}
		slog.Debug("using article Content instead of TextContent",
			slog.String("url", urlStr),
			slog.Int("content_length", len(article.Content)))
		content = article.Content
	}

	if n := text.CountRunes(content); n <= minArticleLength {
		return "", fmt.Errorf("%w: got %d characters", fetch.ErrContentTooShort, n)
	}

	return content, nil
}
