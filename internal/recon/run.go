// Package recon implements one reconciliation run: ingest raw listings,
// normalize, filter, split new from already-seen, annotate duplicates, and
// persist the output batch plus merged per-source state.
package recon

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/wiltodelta/find-my-next-job/internal/config"
	"github.com/wiltodelta/find-my-next-job/internal/dates"
	"github.com/wiltodelta/find-my-next-job/internal/domain"
	"github.com/wiltodelta/find-my-next-job/internal/scrape"
	"github.com/wiltodelta/find-my-next-job/internal/state"
	"github.com/wiltodelta/find-my-next-job/internal/store"
	"github.com/wiltodelta/find-my-next-job/internal/urlnorm"
)

const defaultFetchTimeout = 2 * time.Minute

type Runner struct {
	Cfg        config.Config
	Sources    []config.Source
	NewFetcher func(src config.Source) scrape.Fetcher
	StateStore *state.Store
	BatchDir   string

	// Archive is the optional sqlite mirror of emitted listings; nil
	// disables archiving. Archive failures never fail a run.
	Archive *store.DB

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time

	FetchTimeout time.Duration
}

// Summary is what one run produced, for logging and the status API.
type Summary struct {
	RunAt         time.Time         `json:"run_at"`
	TotalFetched  int               `json:"total_fetched"`
	Filtered      int               `json:"filtered"`
	NewListings   []domain.Listing  `json:"-"`
	NewCount      int               `json:"new"`
	Duplicates    int               `json:"potential_duplicates"`
	DroppedItems  int               `json:"dropped_items"`
	FailedSources []string          `json:"failed_sources,omitempty"`
	BatchPath     string            `json:"batch_path,omitempty"`
}

// Run executes one reconciliation pass with day threshold days.
//
// Sources are processed one at a time; a fetch failure skips that source
// only, and because state is written once at the very end, aborting mid-run
// leaves every watermark untouched. Persistence failure is fatal: the
// watermark is never reported advanced unless the write landed.
func (r *Runner) Run(ctx context.Context, days int) (Summary, error) {
	runAt := r.now()
	sum := Summary{RunAt: runAt}

	states := r.StateStore.Load()

	var kept []domain.Listing
	for _, src := range r.Sources {
		f := r.NewFetcher(src)
		if f == nil {
			log.Printf("[run] unknown parser kind %q for source %s, skipping", src.Parser, src.ID)
			continue
		}

		fctx, cancel := context.WithTimeout(ctx, r.fetchTimeout())
		raws, err := f.Fetch(fctx, days)
		cancel()
		if err != nil {
			log.Printf("[run] source %s failed: %v", src.ID, err)
			sum.FailedSources = append(sum.FailedSources, src.ID)
			continue
		}
		sum.TotalFetched += len(raws)

		listings, dropped := r.ingest(src, raws, runAt)
		sum.DroppedItems += dropped

		// interest filters run before any state is touched
		for _, l := range listings {
			keep, why := scrape.ShouldKeepListing(r.Cfg, l)
			if !keep {
				log.Printf("[run] skipped (%s) source=%s title=%q loc=%q", why, src.ID, l.Title, l.Location)
				continue
			}
			kept = append(kept, l)
		}
	}

	kept = dedupeByURL(kept)

	// day threshold: unknown freshness always passes
	filtered := make([]domain.Listing, 0, len(kept))
	for _, l := range kept {
		if l.DaysAgo != nil && *l.DaysAgo > days {
			continue
		}
		filtered = append(filtered, l)
	}
	sum.Filtered = len(filtered)

	newListings := FindNew(filtered, states)

	if len(newListings) > 0 {
		hist := LoadRecentFingerprints(r.BatchDir, r.Cfg.Run.LookbackDays, runAt)
		newListings = MarkPotentialDuplicates(newListings, hist)
	}
	for _, l := range newListings {
		if l.PotentialDuplicate {
			sum.Duplicates++
		}
	}
	sum.NewListings = newListings
	sum.NewCount = len(newListings)

	// pre-merge watermarks for batch metadata
	prevScrapes := make(map[string]string)
	newSourceIDs := sourceIDs(newListings)
	for _, id := range newSourceIDs {
		if st, ok := states[id]; ok {
			prevScrapes[id] = st.LastScraped.Format(time.RFC3339)
		}
	}

	// merge: every source that produced a filtered listing advances its
	// watermark and unions its URLs, so history never shrinks
	bySource := make(map[string][]string)
	for _, l := range filtered {
		bySource[l.SourceID] = append(bySource[l.SourceID], l.URL)
	}
	for id, urls := range bySource {
		state.Merge(states, id, urls, runAt)
	}

	// batch lands before state: if the batch write fails no watermark has
	// advanced; if the state write fails the next run re-emits at worst,
	// never silently loses listings
	if len(newListings) > 0 {
		path := BatchPath(r.BatchDir, runAt)
		meta := Batch{SourcesWithNewJobs: newSourceIDs, PreviousScrapeTimes: prevScrapes}
		if err := WriteBatch(path, newListings, runAt, meta); err != nil {
			return sum, err
		}
		sum.BatchPath = path
	}

	if err := r.StateStore.Save(states, runAt); err != nil {
		return sum, err
	}

	if r.Archive != nil {
		r.archive(ctx, newListings)
	}

	return sum, nil
}

// ingest normalizes raw listings into the canonical model. Malformed
// records are dropped at this boundary with a count-only warning instead of
// propagating partial records downstream.
func (r *Runner) ingest(src config.Source, raws []domain.RawListing, runAt time.Time) (out []domain.Listing, dropped int) {
	for _, raw := range raws {
		title := raw.Title
		u := urlnorm.Clean(raw.URL, src.URL)
		if title == "" || u == "" {
			dropped++
			continue
		}

		l := domain.Listing{
			Title:      title,
			Company:    raw.Company,
			SourceID:   src.ID,
			URL:        u,
			Location:   raw.Location,
			ObservedAt: runAt,
		}

		if raw.RawDateText != "" {
			if daysAgo, ok := dates.ParseRelative(raw.RawDateText); ok {
				l.DaysAgo = &daysAgo
				l.PostedDate = dates.DateDaysAgo(daysAgo, runAt)
			} else if posted, daysAgo, ok := dates.ParseAbsolute(raw.RawDateText, runAt); ok {
				l.DaysAgo = &daysAgo
				l.PostedDate = posted
			}
			// neither form matched: unknown freshness, listing stays undated
		}

		out = append(out, l)
	}

	if dropped > 0 {
		log.Printf("[run] source %s: dropped %d malformed listings", src.ID, dropped)
	}
	return out, dropped
}

// dedupeByURL collapses exact URL collisions across sources. Last seen wins,
// replacing the earlier listing in place so encounter order stays stable.
func dedupeByURL(in []domain.Listing) []domain.Listing {
	idx := make(map[string]int, len(in))
	out := make([]domain.Listing, 0, len(in))
	for _, l := range in {
		if i, ok := idx[l.URL]; ok {
			out[i] = l
			continue
		}
		idx[l.URL] = len(out)
		out = append(out, l)
	}
	return out
}

func sourceIDs(listings []domain.Listing) []string {
	seen := map[string]bool{}
	var ids []string
	for _, l := range listings {
		if !seen[l.SourceID] {
			seen[l.SourceID] = true
			ids = append(ids, l.SourceID)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r *Runner) archive(ctx context.Context, listings []domain.Listing) {
	added := 0
	for _, l := range listings {
		ok, err := r.Archive.InsertIfNew(ctx, l)
		if err != nil {
			log.Printf("[archive] insert error url=%q: %v", l.URL, err)
			continue
		}
		if ok {
			added++
		}
	}
	if added > 0 {
		log.Printf("[archive] stored %d listings", added)
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) fetchTimeout() time.Duration {
	if r.FetchTimeout > 0 {
		return r.FetchTimeout
	}
	return defaultFetchTimeout
}
