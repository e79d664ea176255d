package boards

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/util"
	"github.com/wiltodelta/find-my-next-job/internal/secrets"
)

// YC fetches Y Combinator's Work at a Startup. The board requires a logged
// in session; the cookie header saved by the login flow is replayed on every
// request. Without a saved session the fetch fails and the driver skips the
// source, so state for it never advances.
//
// Card layout (list-compact): a[href*="/jobs/"].font-medium carries title
// and URL, span.company-name the company, and the company link text a
// parenthesized relative date ("(3 days ago)").
type YC struct {
	sourceID string
	url      string
	hc       *http.Client
	lim      *util.HostLimiter
}

var reYCDate = regexp.MustCompile(`(?i)\((\d+\s+days?\s+ago|about\s+\d+\s+hours?\s+ago|today|yesterday)\)`)

func NewYC(sourceID, url string, lim *util.HostLimiter) *YC {
	return &YC{sourceID: sourceID, url: url, hc: newHTTPClient(), lim: lim}
}

func (y *YC) Name() string { return y.sourceID }

func (y *YC) Fetch(ctx context.Context, daysThreshold int) ([]domain.RawListing, error) {
	cookie, err := secrets.GetYCSession()
	if err != nil {
		return nil, fmt.Errorf("no saved session for %s (run --login): %w", y.sourceID, err)
	}

	hdr := http.Header{}
	hdr.Set("Cookie", cookie)

	doc, err := fetchDoc(ctx, y.hc, y.lim, y.url, hdr)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []domain.RawListing

	doc.Find(`a.font-medium[href*="/jobs/"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		title := util.CleanText(link.Text())
		if href == "" || title == "" || seen[href] {
			return
		}

		card := climbTo(link, 10, func(s *goquery.Selection) bool {
			return s.Find("span.company-name").Length() > 0
		})
		if card == nil {
			return
		}
		seen[href] = true

		var dateText string
		if m := reYCDate.FindStringSubmatch(card.Find(`a[href*="/companies/"]`).First().Text()); m != nil {
			dateText = m[1]
		}

		var location string
		if meta := link.Closest(".job-name").Next(); meta.Length() > 0 {
			location = util.CleanText(meta.Find("span").First().Text())
		}

		out = append(out, domain.RawListing{
			Title:       title,
			Company:     util.CleanText(card.Find("span.company-name").First().Text()),
			URL:         absoluteURL(y.url, href),
			Location:    location,
			RawDateText: dateText,
		})
	})

	return out, nil
}
