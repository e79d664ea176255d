// Package boards implements static-HTML fetchers for the supported job
// board platforms. Each fetcher is tolerant per card: a listing that fails
// extraction is skipped, never fails the whole board.
package boards

import (
	"context"
	"fmt"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wiltodelta/find-my-next-job/internal/scrape/util"
)

// Boards render for real browsers; some of them shape content by UA.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func fetchDoc(ctx context.Context, hc *http.Client, lim *util.HostLimiter, pageURL string, extra http.Header) (*goquery.Document, error) {
	if lim != nil {
		if err := lim.WaitURL(ctx, pageURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", pageURL, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("get %s: status %d", pageURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// absoluteURL resolves a card's href against the board page URL. Hrefs that
// fail to parse are returned untouched for the driver to reject.
func absoluteURL(base, href string) string {
	bu, err := neturl.Parse(base)
	if err != nil {
		return href
	}
	hu, err := neturl.Parse(href)
	if err != nil {
		return href
	}
	return bu.ResolveReference(hu).String()
}

// climbTo walks up to maxHops parents until pred matches, mirroring how the
// boards nest a card's metadata a few levels above the title link.
func climbTo(sel *goquery.Selection, maxHops int, pred func(*goquery.Selection) bool) *goquery.Selection {
	cur := sel
	for i := 0; i < maxHops && cur.Length() > 0; i++ {
		if pred(cur) {
			return cur
		}
		cur = cur.Parent()
	}
	return nil
}
