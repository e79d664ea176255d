package scrape

import (
	"context"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

// Fetcher pulls raw listings from one source. Fetch is the run's only
// suspension point: it may block, time out, or fail, and the driver treats
// any error as zero listings from that source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, daysThreshold int) ([]domain.RawListing, error)
}
