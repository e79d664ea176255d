package boards

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/util"
)

// Consider fetches Consider.co platform boards (a16z, Sequoia, Battery...).
//
// Standard view: div.job-list-job cards with h2/h3.job-list-job-title links,
// a.job-list-job-company-link, .job-list-badge-locations and
// .job-list-badge-posted ("Posted less than 1 day ago"). Grouped view
// (Sequoia) nests cards under div.grouped-job-result whose company logo alt
// text carries the name ("Harvey logo").
type Consider struct {
	sourceID string
	url      string
	hc       *http.Client
	lim      *util.HostLimiter
}

func NewConsider(sourceID, url string, lim *util.HostLimiter) *Consider {
	return &Consider{sourceID: sourceID, url: url, hc: newHTTPClient(), lim: lim}
}

func (c *Consider) Name() string { return c.sourceID }

func (c *Consider) Fetch(ctx context.Context, daysThreshold int) ([]domain.RawListing, error) {
	doc, err := fetchDoc(ctx, c.hc, c.lim, c.url, nil)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []domain.RawListing

	doc.Find("div.job-list-job").Each(func(_ int, card *goquery.Selection) {
		titleEl := card.Find("h2.job-list-job-title a, h3.job-list-job-title a").First()
		title := util.CleanText(titleEl.Text())
		href, _ := titleEl.Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" || seen[href] {
			return
		}
		seen[href] = true

		company := util.CleanText(card.Find("a.job-list-job-company-link").First().Text())
		if company == "" {
			company = groupedCompany(card)
		}

		out = append(out, domain.RawListing{
			Title:       title,
			Company:     company,
			URL:         absoluteURL(c.url, href),
			Location:    util.CleanText(card.Find(".job-list-badge-locations").First().Text()),
			RawDateText: util.CleanText(card.Find(".job-list-badge-posted").First().Text()),
		})
	})

	return out, nil
}

func groupedCompany(card *goquery.Selection) string {
	group := card.Closest("div.grouped-job-result")
	if group.Length() == 0 {
		return ""
	}
	alt, ok := group.Find(`img[alt*="logo"]`).First().Attr("alt")
	if !ok {
		return ""
	}
	alt = util.CleanText(alt)
	if strings.HasSuffix(strings.ToLower(alt), " logo") {
		alt = util.CleanText(alt[:len(alt)-len(" logo")])
	}
	return alt
}
