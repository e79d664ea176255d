package boards

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/util"
)

// Getro fetches Getro-powered portfolio boards (Khosla, Antler, General
// Catalyst...). Cards carry schema.org microdata: div[itemprop=title],
// meta[itemprop=name] for the company, meta[itemprop=datePosted] with an ISO
// date, and the job link under a[data-testid=job-title-link].
type Getro struct {
	sourceID string
	url      string
	hc       *http.Client
	lim      *util.HostLimiter
}

func NewGetro(sourceID, url string, lim *util.HostLimiter) *Getro {
	return &Getro{sourceID: sourceID, url: url, hc: newHTTPClient(), lim: lim}
}

func (g *Getro) Name() string { return g.sourceID }

func (g *Getro) Fetch(ctx context.Context, daysThreshold int) ([]domain.RawListing, error) {
	doc, err := fetchDoc(ctx, g.hc, g.lim, g.url, nil)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []domain.RawListing

	doc.Find(`a[data-testid="job-title-link"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || seen[href] {
			return
		}

		card := climbTo(link, 8, func(s *goquery.Selection) bool {
			return s.Find(`[itemprop="address"]`).Length() > 0 ||
				s.Find(`[itemprop="datePosted"]`).Length() > 0
		})
		if card == nil {
			card = link.Closest(".job-info")
			if card.Length() == 0 {
				return
			}
		}

		title := util.CleanText(card.Find(`[itemprop="title"]`).First().Text())
		if title == "" {
			title = util.CleanText(link.Text())
		}
		if title == "" {
			return
		}
		seen[href] = true

		company, ok := card.Find(`meta[itemprop="name"]`).First().Attr("content")
		if !ok || util.CleanText(company) == "" {
			company = card.Find(`a[data-testid="link"]`).First().Text()
		}

		location, _ := card.Find(`div[itemprop="jobLocation"] meta[itemprop="addressLocality"]`).First().Attr("content")
		datePosted, _ := card.Find(`meta[itemprop="datePosted"]`).First().Attr("content")

		out = append(out, domain.RawListing{
			Title:       title,
			Company:     util.CleanText(company),
			URL:         absoluteURL(g.url, href),
			Location:    util.CleanText(location),
			RawDateText: util.CleanText(datePosted),
		})
	})

	return out, nil
}
