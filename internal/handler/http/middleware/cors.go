// Package middleware provides HTTP middleware shared across handlers,
// currently CORS handling for browser clients of the summarization API.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the policy applied by the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	// Example: ["http://localhost:3000", "https://example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	AllowedHeaders []string

	// AllowCredentials indicates whether credentials are supported.
	AllowCredentials bool

	// MaxAge specifies how long preflight results can be cached, in seconds.
	MaxAge int

	// Logger receives CORS policy violations. Optional.
	Logger *slog.Logger
}

// isAllowed reports whether the origin is in the whitelist.
// Comparison is case-insensitive per RFC 6454 host rules.
func (c CORSConfig) isAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - If the Origin header is empty, this is a same-origin request and CORS
//     processing is skipped.
//   - If the Origin is not whitelisted, a warning is logged and the request
//     proceeds without CORS headers; the browser blocks the response.
//   - Preflight OPTIONS requests for allowed origins get the full header set
//     and a 204 without reaching the next handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowMethods := strings.Join(config.AllowedMethods, ", ")
	allowHeaders := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.isAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("remote_addr", r.RemoteAddr))
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo back the request origin (required for credentials).
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", allowMethods)
				w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
