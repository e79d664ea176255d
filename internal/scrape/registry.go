package scrape

import (
	"github.com/wiltodelta/find-my-next-job/internal/config"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/boards"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/email"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/util"
)

// NewFetcher routes a source's parser kind to its fetcher. Returns nil for
// unknown kinds; callers log a warning and skip the source.
func NewFetcher(src config.Source, cfg config.Config, lim *util.HostLimiter) Fetcher {
	switch src.Parser {
	case "consider":
		return boards.NewConsider(src.ID, src.URL, lim)
	case "getro":
		return boards.NewGetro(src.ID, src.URL, lim)
	case "index":
		return boards.NewIndex(src.ID, src.URL, lim)
	case "yc":
		return boards.NewYC(src.ID, src.URL, lim)
	case "email":
		return email.New(src.ID, cfg)
	default:
		return nil
	}
}
