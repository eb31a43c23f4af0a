package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"medium-digest/internal/usecase/fetch"
)

// newHTTPClient builds the HTTP client shared by the fetcher implementations.
// Each redirect target is re-validated for SSRF before it is followed.
func newHTTPClient(config ContentFetchConfig) *http.Client {
	return &http.Client{
		Timeout: config.ClientTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", fetch.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
}

// requestURL returns the URL to actually request. When a scraping proxy is
// configured, the article URL is passed to the proxy as a query parameter.
func requestURL(config ContentFetchConfig, articleURL string) string {
	if config.ProxyAPIKey == "" {
		return articleURL
	}
	q := url.Values{}
	q.Set("api_key", config.ProxyAPIKey)
	q.Set("url", articleURL)
	return config.ProxyEndpoint + "?" + q.Encode()
}

// fetchHTML performs the HTTP GET and returns the raw HTML with the final
// URL after redirects. Size and timeout limits from config are enforced.
func fetchHTML(ctx context.Context, client *http.Client, config ContentFetchConfig, articleURL string) ([]byte, *url.URL, error) {
	reqCtx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, requestURL(config, articleURL), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to create request: %v", fetch.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, nil, fmt.Errorf("%w: request exceeded %v", fetch.ErrTimeout, config.Timeout)
		}
		// Surface redirect validation errors without the url.Error wrapper.
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return nil, nil, urlErr.Err
		}
		return nil, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &fetch.HTTPStatusError{StatusCode: resp.StatusCode, URL: articleURL}
	}

	limitedReader := io.LimitReader(resp.Body, config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(htmlBytes)) > config.MaxBodySize {
		return nil, nil, fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			fetch.ErrBodyTooLarge, len(htmlBytes), config.MaxBodySize)
	}

	finalURL, _ := url.Parse(articleURL)
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return htmlBytes, finalURL, nil
}
