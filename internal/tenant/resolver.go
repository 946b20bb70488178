// Package tenant resolves which school the console is serving and owns
// that tenant's profile and settings for the lifetime of the page.
package tenant

import (
	"net/url"
	"strings"
)

// DefaultReservedSubdomains are hostname labels that never name a tenant.
var DefaultReservedSubdomains = []string{"www", "api", "admin", "app"}

// ResolveSlug derives the tenant slug from the page URL.
//
//  1. An empty URL (no browsing context) resolves to nothing.
//  2. A loopback/development host takes the slug from the "tenant" query
//     parameter when present.
//  3. A hostname with at least three labels uses its first label, unless
//     that label is reserved.
//  4. Any other shape is the main marketing domain: no tenant.
func ResolveSlug(pageURL string, reserved []string) (string, bool) {
	if pageURL == "" {
		return "", false
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	host := parsed.Hostname()
	if host == "" {
		return "", false
	}

	if isLoopback(host) {
		if slug := parsed.Query().Get("tenant"); slug != "" {
			return slug, true
		}
		return "", false
	}

	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return "", false
	}

	candidate := strings.ToLower(labels[0])
	if candidate == "" {
		return "", false
	}
	if reserved == nil {
		reserved = DefaultReservedSubdomains
	}
	for _, r := range reserved {
		if candidate == strings.ToLower(r) {
			return "", false
		}
	}
	return candidate, true
}

func isLoopback(host string) bool {
	host = strings.ToLower(host)
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return strings.HasSuffix(host, ".localhost")
}
