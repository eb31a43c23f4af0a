package middleware

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"medium-digest/pkg/config"
)

// LoadCORSConfig builds a CORSConfig from environment variables.
//
// Environment Variables:
//   - CORS_ALLOWED_ORIGINS: Comma-separated list of allowed origins (required)
//   - CORS_ALLOWED_METHODS: Comma-separated list of allowed HTTP methods (optional)
//   - CORS_ALLOWED_HEADERS: Comma-separated list of allowed request headers (optional)
//   - CORS_MAX_AGE: Preflight cache duration in seconds (optional, default 86400)
//
// CORS_ALLOWED_ORIGINS must be set; the middleware fails closed rather than
// defaulting to a wildcard.
func LoadCORSConfig() (*CORSConfig, error) {
	origins, err := loadOrigins()
	if err != nil {
		return nil, err
	}

	methods := config.GetEnvStringList("CORS_ALLOWED_METHODS",
		[]string{"GET", "POST", "DELETE", "OPTIONS"})
	headers := config.GetEnvStringList("CORS_ALLOWED_HEADERS",
		[]string{"Content-Type", "Authorization", "X-Request-ID"})
	maxAge := config.GetEnvInt("CORS_MAX_AGE", 86400)

	return &CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: true,
		MaxAge:           maxAge,
	}, nil
}

// loadOrigins parses and validates CORS_ALLOWED_ORIGINS. Each origin must be
// a bare http(s) origin: no path, query, fragment, or trailing slash.
func loadOrigins() ([]string, error) {
	originsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if originsStr == "" {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS environment variable is required")
	}

	originList := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(originList))

	for _, originStr := range originList {
		originStr = strings.TrimSpace(originStr)
		if originStr == "" {
			continue
		}

		u, err := url.Parse(originStr)
		if err != nil {
			return nil, fmt.Errorf("invalid origin URL '%s': %w", originStr, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("origin must use http or https scheme: %s", originStr)
		}
		if u.Path != "" && u.Path != "/" {
			return nil, fmt.Errorf("origin must not include path: %s", originStr)
		}
		if u.RawQuery != "" {
			return nil, fmt.Errorf("origin must not include query string: %s", originStr)
		}
		if u.Fragment != "" {
			return nil, fmt.Errorf("origin must not include fragment: %s", originStr)
		}
		if strings.HasSuffix(originStr, "/") {
			return nil, fmt.Errorf("origin must not have trailing slash: %s", originStr)
		}

		origins = append(origins, originStr)
	}

	if len(origins) == 0 {
		return nil, fmt.Errorf("at least one valid origin must be configured in CORS_ALLOWED_ORIGINS")
	}

	return origins, nil
}
