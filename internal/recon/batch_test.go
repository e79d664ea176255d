package recon

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

func TestWriteBatchSortsNewestFirstUndatedLast(t *testing.T) {
	dir := t.TempDir()
	runAt := time.Date(2025, 12, 24, 9, 30, 15, 0, time.UTC)

	in := []domain.Listing{
		listing("a16z", "https://a/1", "2025-12-20"),
		listing("a16z", "https://a/2", ""),
		listing("a16z", "https://a/3", "2025-12-23"),
		listing("a16z", "https://a/4", ""),
	}
	path := BatchPath(dir, runAt)
	require.NoError(t, WriteBatch(path, in, runAt, Batch{
		SourcesWithNewJobs:  []string{"a16z"},
		PreviousScrapeTimes: map[string]string{"a16z": "2025-12-20T09:00:00Z"},
	}))

	assert.Equal(t, dir+"/new_jobs_2025-12-24_09-30-15.json", path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var batch Batch
	require.NoError(t, json.Unmarshal(b, &batch))

	assert.Equal(t, 4, batch.TotalJobs)
	require.Len(t, batch.Jobs, 4)
	assert.Equal(t, "https://a/3", batch.Jobs[0].URL)
	assert.Equal(t, "https://a/1", batch.Jobs[1].URL)
	// undated listings sort last, keeping their encounter order
	assert.Equal(t, "https://a/2", batch.Jobs[2].URL)
	assert.Equal(t, "https://a/4", batch.Jobs[3].URL)

	assert.Equal(t, []string{"a16z"}, batch.SourcesWithNewJobs)
	assert.Equal(t, "2025-12-20T09:00:00Z", batch.PreviousScrapeTimes["a16z"])
}

func TestWriteBatchDoesNotMutateInput(t *testing.T) {
	runAt := time.Date(2025, 12, 24, 9, 30, 15, 0, time.UTC)
	in := []domain.Listing{
		listing("a16z", "https://a/1", ""),
		listing("a16z", "https://a/2", "2025-12-23"),
	}
	require.NoError(t, WriteBatch(BatchPath(t.TempDir(), runAt), in, runAt, Batch{}))
	assert.Equal(t, "https://a/1", in[0].URL)
}
