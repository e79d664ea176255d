package recon

import (
	"time"

	"github.com/wiltodelta/find-my-next-job/internal/dates"
	"github.com/wiltodelta/find-my-next-job/internal/domain"
	"github.com/wiltodelta/find-my-next-job/internal/state"
)

// FindNew returns the listings that count as new against each source's
// pre-run state.
//
// A known URL is never new, whatever its date: URL identity is the stronger,
// order-independent signal. The date rule only admits first-seen listings on
// date-bearing sources where URL churn is possible, and it compares calendar
// dates, so a listing posted on the watermark day is still new. Listings
// with no date and an unknown URL default to new; staleness can't be proven
// and silently dropping undateable listings is worse than a false positive.
func FindNew(listings []domain.Listing, states map[string]state.SourceState) []domain.Listing {
	var out []domain.Listing

	for _, l := range listings {
		st, ok := states[l.SourceID]
		if !ok {
			// cold start: everything on a source's first run is new
			out = append(out, l)
			continue
		}

		if st.Knows(l.URL) {
			continue
		}

		if l.PostedDate != "" {
			posted, err := time.Parse(dates.ISODate, l.PostedDate)
			if err != nil {
				// undateable after all; fall through to inclusion
				out = append(out, l)
				continue
			}
			if dates.DaysBetween(posted, st.LastScraped) <= 0 {
				out = append(out, l)
			}
			continue
		}

		out = append(out, l)
	}

	return out
}
