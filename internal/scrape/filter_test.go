package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiltodelta/find-my-next-job/internal/config"
	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

func filterConfig() config.Config {
	cfg := config.Default()
	cfg.Filters.TitleKeywords = []string{"Engineering Manager", "head of engineering"}
	cfg.Filters.LocationKeywords = []string{"san francisco", "remote"}
	return cfg
}

func TestShouldKeepListing(t *testing.T) {
	cfg := filterConfig()

	tests := []struct {
		name     string
		title    string
		location string
		keep     bool
		reason   string
	}{
		{"title and location match", "Senior Engineering Manager", "San Francisco, CA", true, ""},
		{"keyword match is case-insensitive", "HEAD OF ENGINEERING", "Remote (US)", true, ""},
		{"no title keyword", "Staff Accountant", "San Francisco, CA", false, "no_title_keyword"},
		{"wrong location", "Engineering Manager", "London, UK", false, "location"},
		{"missing location passes", "Engineering Manager", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, reason := ShouldKeepListing(cfg, domain.Listing{Title: tt.title, Location: tt.location})
			assert.Equal(t, tt.keep, keep)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestEmptyKeywordListsPassEverything(t *testing.T) {
	cfg := config.Default()
	keep, _ := ShouldKeepListing(cfg, domain.Listing{Title: "Anything", Location: "Anywhere"})
	assert.True(t, keep)
}
