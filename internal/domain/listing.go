package domain

import (
	"strings"
	"time"
)

// Listing is one observed job posting after URL/date normalization.
// Immutable once duplicate annotation has run; listings are only ever
// appended to output batches, never updated in place.
type Listing struct {
	Title    string `json:"title"`
	Company  string `json:"company,omitempty"`
	SourceID string `json:"source_id"`
	URL      string `json:"url"`
	Location string `json:"location,omitempty"`

	// PostedDate is the calendar date (YYYY-MM-DD) the listing went up,
	// empty when the source exposed no usable date.
	PostedDate string `json:"posted_date,omitempty"`

	// DaysAgo is derived from PostedDate relative to ObservedAt and is
	// never persisted; nil means unknown freshness, not zero.
	DaysAgo *int `json:"-"`

	ObservedAt time.Time `json:"scraped_at"`

	// PotentialDuplicate is advisory: the listing is still emitted.
	PotentialDuplicate bool `json:"potential_duplicate,omitempty"`
}

// FingerprintKey returns the normalized company|title key used for
// cross-batch duplicate detection, or "" when the listing cannot be
// fingerprinted (no company or no title).
func (l Listing) FingerprintKey() string {
	company := strings.ToLower(strings.TrimSpace(l.Company))
	title := strings.ToLower(strings.TrimSpace(l.Title))
	if company == "" || title == "" {
		return ""
	}
	return company + "|" + title
}

// RawListing is what a fetcher hands back before normalization. Title and
// URL are required; everything else is best-effort extraction.
type RawListing struct {
	Title       string
	Company     string
	URL         string
	Location    string
	RawDateText string
}
