package recon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

const (
	batchFilePrefix      = "new_jobs_"
	batchTimestampLayout = "2006-01-02_15-04-05"
)

// Batch is one persisted file of new listings for a single run. Immutable
// once written; later runs only read it back for duplicate detection.
type Batch struct {
	ScrapedAt           string            `json:"scraped_at"`
	TotalJobs           int               `json:"total_jobs"`
	Jobs                []domain.Listing  `json:"jobs"`
	SourcesWithNewJobs  []string          `json:"sources_with_new_jobs,omitempty"`
	PreviousScrapeTimes map[string]string `json:"previous_scrape_times,omitempty"`
}

// BatchPath returns the deterministic file name for a run timestamp.
func BatchPath(batchDir string, runAt time.Time) string {
	return filepath.Join(batchDir, batchFilePrefix+runAt.Format(batchTimestampLayout)+".json")
}

// WriteBatch persists new listings sorted newest first by posted date, with
// undated listings last; ties keep their encounter order. Transient fields
// and false-valued flags are omitted by the Listing JSON tags.
func WriteBatch(path string, listings []domain.Listing, runAt time.Time, meta Batch) error {
	sorted := make([]domain.Listing, len(listings))
	copy(sorted, listings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PostedDate > sorted[j].PostedDate
	})

	batch := Batch{
		ScrapedAt:           runAt.Format(time.RFC3339),
		TotalJobs:           len(sorted),
		Jobs:                sorted,
		SourcesWithNewJobs:  meta.SourcesWithNewJobs,
		PreviousScrapeTimes: meta.PreviousScrapeTimes,
	}

	b, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create batch dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write batch %s: %w", path, err)
	}
	return nil
}
