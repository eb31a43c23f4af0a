// Package fetcher provides article fetching implementations for the
// summarization workflow.
package fetcher

import (
	"fmt"
	"net"
	"net/url"

	"medium-digest/internal/usecase/fetch"
)

// validateURL validates a URL for security before making an HTTP request.
// It prevents Server-Side Request Forgery (SSRF) attacks by:
//   - Checking URL scheme (only http/https allowed)
//   - Resolving DNS to check for private IP addresses
//   - Blocking access to loopback, private, and link-local addresses
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", fetch.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", fetch.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", fetch.ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	// DNS resolution catches URLs pointing at the internal network.
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", fetch.ErrInvalidURL, hostname, err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", fetch.ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP checks if an IP address is in a private, loopback, or
// link-local range. Supports both IPv4 and IPv6.
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return true
	}
	if ip.IsPrivate() {
		return true
	}
	if ip.IsLinkLocalUnicast() {
		return true
	}
	return false
}
