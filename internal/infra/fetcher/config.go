package fetcher

import (
	"fmt"
	"time"

	"medium-digest/pkg/config"
)

// ContentFetchConfig holds the configuration for article fetching operations.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF attacks by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type ContentFetchConfig struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 15s
	Timeout time.Duration

	// ClientTimeout is the overall HTTP client timeout covering the full
	// request including redirects. Default: 30s
	ClientTimeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced during response reading, not based on the Content-Length
	// header. Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated for SSRF. Default: 5
	MaxRedirects int

	// DenyPrivateIPs controls whether to block access to private IP
	// addresses. Should always be true in production. Default: true
	DenyPrivateIPs bool

	// UserAgent is sent with each request. Medium serves the full article
	// markup to ordinary browser user agents, so the default mimics one.
	UserAgent string

	// ProxyAPIKey, when set, routes article fetches through a scraping
	// proxy service. Medium rate-limits and paywalls direct requests from
	// datacenter IPs; the proxy works around that. Optional.
	ProxyAPIKey string

	// ProxyEndpoint is the scraping proxy base URL. Used only when
	// ProxyAPIKey is set.
	ProxyEndpoint string
}

// DefaultConfig returns the default configuration for article fetching.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Timeout:        15 * time.Second,
		ClientTimeout:  30 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "Mozilla/5.0 (compatible; MediumDigestBot/1.0)",
	}
}

// LoadConfigFromEnv builds a ContentFetchConfig from environment variables,
// falling back to defaults for anything unset.
//
// Environment Variables:
//   - FETCH_TIMEOUT: per-request timeout (e.g. "15s")
//   - FETCH_CLIENT_TIMEOUT: overall client timeout (e.g. "30s")
//   - FETCH_MAX_BODY_SIZE: response size limit in bytes
//   - FETCH_MAX_REDIRECTS: redirect limit
//   - FETCH_DENY_PRIVATE_IPS: SSRF protection toggle
//   - FETCH_USER_AGENT: User-Agent header value
//   - SCRAPE_PROXY_API_KEY: scraping proxy credential (optional)
//   - SCRAPE_PROXY_ENDPOINT: scraping proxy base URL
func LoadConfigFromEnv() ContentFetchConfig {
	def := DefaultConfig()
	return ContentFetchConfig{
		Timeout:        config.GetEnvDuration("FETCH_TIMEOUT", def.Timeout),
		ClientTimeout:  config.GetEnvDuration("FETCH_CLIENT_TIMEOUT", def.ClientTimeout),
		MaxBodySize:    int64(config.GetEnvInt("FETCH_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects:   config.GetEnvInt("FETCH_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs: config.GetEnvBool("FETCH_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
		UserAgent:      config.GetEnvString("FETCH_USER_AGENT", def.UserAgent),
		ProxyAPIKey:    config.GetEnvString("SCRAPE_PROXY_API_KEY", ""),
		ProxyEndpoint:  config.GetEnvString("SCRAPE_PROXY_ENDPOINT", "https://app.scrapingbee.com/api/v1/"),
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *ContentFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.ClientTimeout < c.Timeout {
		return fmt.Errorf("client timeout %v must be >= request timeout %v", c.ClientTimeout, c.Timeout)
	}
	if c.MaxBodySize < 1024 || c.MaxBodySize > 100*1024*1024 {
		return fmt.Errorf("max body size must be between 1KB and 100MB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	if c.ProxyAPIKey != "" && c.ProxyEndpoint == "" {
		return fmt.Errorf("proxy endpoint required when proxy API key is set")
	}
	return nil
}
