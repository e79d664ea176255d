package urlnorm

import (
	"net/url"
	"strings"
)

// Clean repairs listing hrefs and canonicalizes path separators.
//
// Some Getro boards emit scheme-relative hrefs ("//jobs/...") that get glued
// onto a scheme, so the URL reads back with "jobs" as its hostname
// ("https://jobs/acme/123"). When that exact malformation is detected the
// real host is spliced in from sourceURL. Independently, doubled path
// separators after the scheme delimiter are collapsed. The result is stable
// under re-cleaning, and query strings and fragments are never touched.
func Clean(raw, sourceURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if u.Host == "jobs" {
		if ref, rerr := url.Parse(sourceURL); rerr == nil && ref.Host != "" {
			u.Path = "/jobs" + u.Path
			u.Host = ref.Host
		}
	}

	for strings.Contains(u.Path, "//") {
		u.Path = strings.ReplaceAll(u.Path, "//", "/")
	}

	return u.String()
}
