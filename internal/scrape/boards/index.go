package boards

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wiltodelta/find-my-next-job/internal/dates"
	"github.com/wiltodelta/find-my-next-job/internal/domain"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/util"
)

// Index paginates the Index Ventures startup jobs board. Each li.result card
// has h3.result__title, h4.result__company, a.result__link and a long-form
// date ("Tue, December 23, 2025"). Pagination stops at the first page with
// no listing inside the day threshold, since pages are ordered newest first.
const indexPageCap = 20

type Index struct {
	sourceID string
	baseURL  string
	hc       *http.Client
	lim      *util.HostLimiter
}

func NewIndex(sourceID, url string, lim *util.HostLimiter) *Index {
	return &Index{sourceID: sourceID, baseURL: url, hc: newHTTPClient(), lim: lim}
}

func (ix *Index) Name() string { return ix.sourceID }

func (ix *Index) Fetch(ctx context.Context, daysThreshold int) ([]domain.RawListing, error) {
	now := time.Now()
	seen := map[string]bool{}
	var out []domain.RawListing

	for page := 1; page <= indexPageCap; page++ {
		doc, err := fetchDoc(ctx, ix.hc, ix.lim, ix.pageURL(page), nil)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Printf("[%s] page %d failed, keeping %d listings: %v", ix.sourceID, page, len(out), err)
			break
		}

		fresh := 0
		doc.Find("li.result").Each(func(_ int, card *goquery.Selection) {
			href, _ := card.Find("a.result__link").First().Attr("href")
			href = strings.TrimSpace(href)
			if href == "" || seen[href] {
				return
			}

			title := util.CleanText(card.Find("h3.result__title").First().Text())
			if title == "" {
				return
			}

			dateText := util.CleanText(card.Find("ul.result__category-list__date span").First().Text())
			if _, daysAgo, ok := dates.ParseAbsolute(dateText, now); ok && daysAgo > daysThreshold {
				return
			}

			seen[href] = true
			fresh++

			out = append(out, domain.RawListing{
				Title:       title,
				Company:     util.CleanText(card.Find("h4.result__company").First().Text()),
				URL:         absoluteURL(ix.baseURL, href),
				Location:    util.CleanText(card.Find("ul.result__category-list__locations span").First().Text()),
				RawDateText: dateText,
			})
		})

		if fresh == 0 {
			break
		}
	}

	return out, nil
}

func (ix *Index) pageURL(page int) string {
	switch {
	case strings.HasSuffix(ix.baseURL, "/1"):
		return strings.TrimSuffix(ix.baseURL, "/1") + fmt.Sprintf("/%d", page)
	case strings.HasSuffix(ix.baseURL, "/"):
		return fmt.Sprintf("%s%d", ix.baseURL, page)
	default:
		return fmt.Sprintf("%s/%d", ix.baseURL, page)
	}
}
