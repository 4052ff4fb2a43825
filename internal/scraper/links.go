package scraper

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkPolicy decides which discovered links belong to the documentation
// site being scraped.
type LinkPolicy struct {
	host              string
	includeSubdomains bool
	pathPrefix        string
}

// NewLinkPolicy derives a policy from the run's start URL. When
// includeSubdomains is set, hosts under the start host are accepted too.
// A non-empty pathPrefix restricts accepted pages to that path subtree.
func NewLinkPolicy(startURL string, includeSubdomains bool, pathPrefix string) (*LinkPolicy, error) {
	u, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("parse start url %q: %w", startURL, err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, fmt.Errorf("start url %q has no host", startURL)
	}
	if pathPrefix != "" && !strings.HasPrefix(pathPrefix, "/") {
		pathPrefix = "/" + pathPrefix
	}
	return &LinkPolicy{
		host:              host,
		includeSubdomains: includeSubdomains,
		pathPrefix:        strings.TrimSuffix(pathPrefix, "/"),
	}, nil
}

// Allows reports whether the already-normalized URL is in scope.
func (p *LinkPolicy) Allows(normalized string) bool {
	u, err := url.Parse(normalized)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	switch {
	case host == p.host:
	case p.includeSubdomains && strings.HasSuffix(host, "."+p.host):
	default:
		return false
	}
	if p.pathPrefix != "" {
		if u.Path != p.pathPrefix && !strings.HasPrefix(u.Path, p.pathPrefix+"/") {
			return false
		}
	}
	return true
}

// Filter normalizes raw links and returns the in-scope ones, deduplicated,
// in first-seen order. Relative links are resolved against base.
func (p *LinkPolicy) Filter(base string, raw []string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		baseURL = nil
	}

	var out []string
	seen := make(map[string]struct{}, len(raw))
	for _, link := range raw {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		ref, err := url.Parse(link)
		if err != nil {
			continue
		}
		if baseURL != nil {
			ref = baseURL.ResolveReference(ref)
		}
		normalized, err := NormalizeURL(ref.String())
		if err != nil {
			continue
		}
		if !p.Allows(normalized) {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// NormalizeURL canonicalizes a page URL so that variants of the same page
// dedupe to one frontier entry: the scheme and host are lowercased, default
// ports and fragments are dropped, query parameters are sorted, and a
// trailing slash is trimmed from non-root paths.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	switch {
	case port == "", u.Scheme == "http" && port == "80", u.Scheme == "https" && port == "443":
		u.Host = host
	default:
		u.Host = host + ":" + port
	}

	u.Fragment = ""
	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String(), nil
}
