package scrape

import (
	"strings"

	"github.com/wiltodelta/find-my-next-job/internal/config"
	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

// ShouldKeepListing applies the interest filters: the title must hit at
// least one configured keyword, and the location must pass the location
// keywords. Filters run before any state is touched.
func ShouldKeepListing(cfg config.Config, l domain.Listing) (keep bool, reason string) {
	if !MatchesTitleKeywords(cfg, l.Title) {
		return false, "no_title_keyword"
	}
	if !MatchesLocationKeywords(cfg, l.Location) {
		return false, "location"
	}
	return true, ""
}

func MatchesTitleKeywords(cfg config.Config, title string) bool {
	if len(cfg.Filters.TitleKeywords) == 0 {
		return true
	}
	lower := strings.ToLower(title)
	for _, kw := range cfg.Filters.TitleKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MatchesLocationKeywords passes listings with no location info (staleness
// on location can't be proven, so include) and, when the keyword list is
// empty, everything.
func MatchesLocationKeywords(cfg config.Config, location string) bool {
	if location == "" || len(cfg.Filters.LocationKeywords) == 0 {
		return true
	}
	lower := strings.ToLower(location)
	for _, kw := range cfg.Filters.LocationKeywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
