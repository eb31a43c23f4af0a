package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// requiredDomain is the substring every submitted URL must contain.
// The match is case-insensitive; all other URLs are rejected before any
// network call is made.
const requiredDomain = "medium.com"

// ValidateArticleURL validates a URL submitted for summarization.
// It checks that the URL is well-formed, uses an HTTP/HTTPS scheme, has a
// host, and satisfies the domain predicate (contains "medium.com",
// case-insensitive). Returns a ValidationError describing the first failed
// check.
func ValidateArticleURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "url is not well-formed"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	if !strings.Contains(strings.ToLower(rawURL), requiredDomain) {
		return &ValidationError{Field: "url", Message: "URL must be a medium.com article"}
	}

	return nil
}
