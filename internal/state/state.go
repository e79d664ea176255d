package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"time"
)

// SourceState is the per-source reconciliation watermark: the last scrape
// time plus every listing URL ever seen for that source. KnownURLs only
// grows and LastScraped only moves forward; state for sources that disappear
// from the config is kept as-is, never pruned.
type SourceState struct {
	LastScraped time.Time
	KnownURLs   map[string]struct{}
}

// NewSourceState allocates a fresh URL set per instance.
func NewSourceState(lastScraped time.Time) SourceState {
	return SourceState{
		LastScraped: lastScraped,
		KnownURLs:   make(map[string]struct{}),
	}
}

// Knows reports whether url has been recorded for this source.
func (s SourceState) Knows(url string) bool {
	_, ok := s.KnownURLs[url]
	return ok
}

// Merge folds one run's filtered listing URLs for a source into states.
// Union semantics: prior URLs are never dropped even when the current run
// saw fewer listings, and the watermark never moves backwards.
func Merge(states map[string]SourceState, sourceID string, urls []string, runAt time.Time) {
	st, ok := states[sourceID]
	if !ok {
		st = NewSourceState(runAt)
	}
	if runAt.After(st.LastScraped) {
		st.LastScraped = runAt
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		st.KnownURLs[u] = struct{}{}
	}
	states[sourceID] = st
}

type stateFile struct {
	LastUpdated string                     `json:"last_updated"`
	Sources     map[string]sourceStateJSON `json:"sources"`
}

type sourceStateJSON struct {
	LastScraped string   `json:"last_scraped"`
	KnownURLs   []string `json:"known_job_urls"`
}

// Store reads and writes the keyed state file. One run owns the whole
// lifecycle: load at start, mutate in memory, save once at the end.
type Store struct {
	Path string
}

// Load returns the persisted state. A missing file is an empty first run;
// malformed content degrades to empty state with a warning rather than
// killing the run.
func (s *Store) Load() map[string]SourceState {
	out := make(map[string]SourceState)

	b, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[state] could not read %s: %v", s.Path, err)
		}
		return out
	}

	var sf stateFile
	if err := json.Unmarshal(b, &sf); err != nil {
		log.Printf("[state] could not parse %s, starting empty: %v", s.Path, err)
		return out
	}

	for id, raw := range sf.Sources {
		last, err := time.Parse(time.RFC3339, raw.LastScraped)
		if err != nil {
			log.Printf("[state] bad last_scraped for source %q, skipping entry: %v", id, err)
			continue
		}
		st := NewSourceState(last)
		for _, u := range raw.KnownURLs {
			if u != "" {
				st.KnownURLs[u] = struct{}{}
			}
		}
		out[id] = st
	}
	return out
}

// Save persists all source states in one atomic write. Either the whole file
// lands or the previous file stays intact; a partial write is never durable.
func (s *Store) Save(states map[string]SourceState, now time.Time) error {
	sf := stateFile{
		LastUpdated: now.Format(time.RFC3339),
		Sources:     make(map[string]sourceStateJSON, len(states)),
	}
	for id, st := range states {
		urls := make([]string, 0, len(st.KnownURLs))
		for u := range st.KnownURLs {
			urls = append(urls, u)
		}
		sort.Strings(urls)
		sf.Sources[id] = sourceStateJSON{
			LastScraped: st.LastScraped.Format(time.RFC3339),
			KnownURLs:   urls,
		}
	}

	b, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	b = append(b, '\n')

	if err := writeFileAtomic(s.Path, b); err != nil {
		return fmt.Errorf("save state %s: %w", s.Path, err)
	}
	return nil
}
