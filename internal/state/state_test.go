package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmptyFirstRun(t *testing.T) {
	s := &Store{Path: filepath.Join(t.TempDir(), "state.json")}
	states := s.Load()
	assert.Empty(t, states)
}

func TestLoadMalformedFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := &Store{Path: path}
	assert.Empty(t, s.Load())
}

func TestLoadSkipsEntryWithBadTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	raw := `{
  "last_updated": "2025-12-24T09:00:00Z",
  "sources": {
    "good": {"last_scraped": "2025-12-23T08:00:00Z", "known_job_urls": ["https://a/1"]},
    "bad": {"last_scraped": "yesterday-ish", "known_job_urls": ["https://b/1"]}
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	states := (&Store{Path: path}).Load()
	require.Len(t, states, 1)
	assert.True(t, states["good"].Knows("https://a/1"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := &Store{Path: path}

	runAt := time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)
	states := map[string]SourceState{}
	Merge(states, "a16z", []string{"https://a/1", "https://a/2"}, runAt)

	require.NoError(t, s.Save(states, runAt))

	got := s.Load()
	require.Len(t, got, 1)
	assert.True(t, got["a16z"].LastScraped.Equal(runAt))
	assert.True(t, got["a16z"].Knows("https://a/1"))
	assert.True(t, got["a16z"].Knows("https://a/2"))
	assert.False(t, got["a16z"].Knows("https://a/3"))
}

func TestMergeUnionsAndKeepsWatermarkMonotonic(t *testing.T) {
	t1 := time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)

	states := map[string]SourceState{}
	Merge(states, "seq", []string{"https://s/1", "https://s/2"}, t2)

	// A later run that saw fewer listings must not shrink the set,
	// and an older run timestamp must not rewind the watermark.
	Merge(states, "seq", []string{"https://s/3"}, t1)

	st := states["seq"]
	assert.True(t, st.LastScraped.Equal(t2))
	assert.True(t, st.Knows("https://s/1"))
	assert.True(t, st.Knows("https://s/2"))
	assert.True(t, st.Knows("https://s/3"))
}

func TestMergeIgnoresEmptyURLs(t *testing.T) {
	runAt := time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)
	states := map[string]SourceState{}
	Merge(states, "seq", []string{"", "https://s/1"}, runAt)
	assert.Len(t, states["seq"].KnownURLs, 1)
}
