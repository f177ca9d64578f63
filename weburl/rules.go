// Package weburl validates and normalizes article URLs.
package weburl

import (
	"net/url"
	"strings"

	"github.com/gaurav-prasanna/pagebrief/core"
)

// Validate checks that rawURL is an absolute http(s) URL with a host.
// It fails with core.InvalidInput otherwise.
func Validate(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, &core.Error{Kind: core.InvalidInput, URL: trimmed, Cause: err}
	}
	if !isHTTPScheme(parsed) || parsed.Host == "" || parsed.Hostname() == "" {
		return nil, &core.Error{Kind: core.InvalidInput, URL: trimmed}
	}
	return parsed, nil
}

// Host returns the hostname of rawURL without a "www." prefix.
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// Normalize strips fragments and trailing slashes for deduplication.
func Normalize(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	// Remove fragment.
	parsed.Fragment = ""
	parsed.Host = strings.ToLower(parsed.Host)

	// Remove trailing slash (but keep root "/").
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}

func isHTTPScheme(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
