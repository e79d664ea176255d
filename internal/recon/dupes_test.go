package recon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

func TestMarkPotentialDuplicatesWithinBatch(t *testing.T) {
	in := []domain.Listing{
		listing("a16z", "https://a/1", ""),
		listing("seq", "https://s/1", ""), // same company+title, different board
		{Title: "Head of Engineering", Company: "Other", SourceID: "a16z", URL: "https://a/2"},
	}
	got := MarkPotentialDuplicates(in, map[string]struct{}{})

	assert.False(t, got[0].PotentialDuplicate)
	assert.True(t, got[1].PotentialDuplicate)
	assert.False(t, got[2].PotentialDuplicate)
}

func TestMarkPotentialDuplicatesAgainstHistory(t *testing.T) {
	hist := map[string]struct{}{"acme|engineering manager": {}}
	got := MarkPotentialDuplicates([]domain.Listing{listing("a16z", "https://a/1", "")}, hist)
	assert.True(t, got[0].PotentialDuplicate)
}

func TestMarkPotentialDuplicatesSkipsFingerprintlessListings(t *testing.T) {
	in := []domain.Listing{
		{Title: "Engineering Manager", SourceID: "alerts", URL: "https://e/1"},
		{Title: "Engineering Manager", SourceID: "alerts", URL: "https://e/2"},
	}
	got := MarkPotentialDuplicates(in, map[string]struct{}{})
	assert.False(t, got[0].PotentialDuplicate)
	assert.False(t, got[1].PotentialDuplicate)
}

func TestLoadRecentFingerprintsHonorsLookback(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)

	writeBatchAt(t, dir, now.AddDate(0, 0, -2), listing("a16z", "https://a/1", ""))
	writeBatchAt(t, dir, now.AddDate(0, 0, -30),
		domain.Listing{Title: "Head of Engineering", Company: "Stale", SourceID: "seq", URL: "https://s/1"})

	// junk that must be skipped without blocking the scan
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new_jobs_not-a-stamp.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(BatchPath(dir, now.AddDate(0, 0, -1)), []byte("{broken"), 0o644))

	keys := LoadRecentFingerprints(dir, 7, now)
	assert.Contains(t, keys, "acme|engineering manager")
	assert.NotContains(t, keys, "stale|head of engineering")
}

func TestLoadRecentFingerprintsMissingDir(t *testing.T) {
	keys := LoadRecentFingerprints(filepath.Join(t.TempDir(), "nope"), 7, time.Now())
	assert.Empty(t, keys)
}

func writeBatchAt(t *testing.T, dir string, runAt time.Time, jobs ...domain.Listing) {
	t.Helper()
	require.NoError(t, WriteBatch(BatchPath(dir, runAt), jobs, runAt, Batch{}))
}
