package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization so normalization stays cheap on the hot path.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/delete/\d+$`), Template: "/api/delete/:id"},
	{Pattern: regexp.MustCompile(`^/api/summaries/\d+$`), Template: "/api/summaries/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. It converts paths with IDs (e.g., /api/delete/123)
// to template format (e.g., /api/delete/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/api/delete/123")       // "/api/delete/:id"
//	NormalizePath("/api/summarize")        // "/api/summarize" (unchanged)
//	NormalizePath("/health")               // "/health" (unchanged)
//	NormalizePath("/api/delete/123?x=1")   // "/api/delete/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Static paths like /health and /metrics pass through unchanged.
	return path
}
