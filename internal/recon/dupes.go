package recon

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

// LoadRecentFingerprints collects company|title fingerprints from every
// output batch whose filename timestamp falls within lookbackDays of now.
// Unreadable or oddly-named files are skipped with a warning; duplicate
// detection is advisory and must never block a run.
func LoadRecentFingerprints(batchDir string, lookbackDays int, now time.Time) map[string]struct{} {
	keys := make(map[string]struct{})
	cutoff := now.AddDate(0, 0, -lookbackDays)

	entries, err := os.ReadDir(batchDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[dupes] could not read batch dir %s: %v", batchDir, err)
		}
		return keys
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, batchFilePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		stampPart := strings.TrimSuffix(strings.TrimPrefix(name, batchFilePrefix), ".json")
		stamp, err := time.Parse(batchTimestampLayout, stampPart)
		if err != nil {
			log.Printf("[dupes] skipping %s: unparseable timestamp", name)
			continue
		}
		if stamp.Before(cutoff) {
			continue
		}

		b, err := os.ReadFile(filepath.Join(batchDir, name))
		if err != nil {
			log.Printf("[dupes] skipping %s: %v", name, err)
			continue
		}
		var batch Batch
		if err := json.Unmarshal(b, &batch); err != nil {
			log.Printf("[dupes] skipping %s: %v", name, err)
			continue
		}

		for _, j := range batch.Jobs {
			if k := j.FingerprintKey(); k != "" {
				keys[k] = struct{}{}
			}
		}
	}

	return keys
}

// MarkPotentialDuplicates flags listings whose fingerprint was seen in
// recent batches or earlier in this same batch, in the listings' given
// order: the first in-batch occurrence stays unflagged, repeats get flagged.
// Listings without a fingerprint (no company) are never flagged.
func MarkPotentialDuplicates(listings []domain.Listing, historical map[string]struct{}) []domain.Listing {
	seenInBatch := make(map[string]struct{})

	for i := range listings {
		key := listings[i].FingerprintKey()
		if key == "" {
			continue
		}
		_, inHistory := historical[key]
		_, inBatch := seenInBatch[key]
		if inHistory || inBatch {
			listings[i].PotentialDuplicate = true
		}
		seenInBatch[key] = struct{}{}
	}

	return listings
}
