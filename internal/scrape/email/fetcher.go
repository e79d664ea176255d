// Package email treats a job-alert inbox as one more listing source: links
// in alert mails become raw listings with the anchor text as title and the
// mail's date as the posting date.
package email

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/wiltodelta/find-my-next-job/internal/config"
	"github.com/wiltodelta/find-my-next-job/internal/dates"
	"github.com/wiltodelta/find-my-next-job/internal/domain"
	"github.com/wiltodelta/find-my-next-job/internal/secrets"
)

const maxMessages = 50

var (
	reHref = regexp.MustCompile(`(?is)<a[^>]+href=["']([^"'#]+)["'][^>]*>(.*?)</a>`)
	reTags = regexp.MustCompile(`(?is)<[^>]+>`)
)

type Fetcher struct {
	sourceID string
	cfg      config.Config
}

func New(sourceID string, cfg config.Config) *Fetcher {
	return &Fetcher{sourceID: sourceID, cfg: cfg}
}

func (f *Fetcher) Name() string { return f.sourceID }

func (f *Fetcher) Fetch(ctx context.Context, daysThreshold int) ([]domain.RawListing, error) {
	em := f.cfg.Email
	account := secrets.IMAPAccount(em.Username, em.IMAPHost)
	password, err := secrets.GetIMAPPassword(account)
	if err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s:%d", em.IMAPHost, em.IMAPPort)
	c, err := dialAndLogin(ctx, addr, em.Username, password)
	if err != nil {
		return nil, err
	}
	defer logoutAndClose(c)

	cutoff := time.Now().AddDate(0, 0, -(daysThreshold + 1))
	msgs, err := fetchSince(ctx, c, em.Mailbox, cutoff, maxMessages)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []domain.RawListing
	for _, m := range msgs {
		for link, text := range extractLinks(string(m.Raw)) {
			if seen[link] || isJunkLink(link) || text == "" {
				continue
			}
			seen[link] = true
			out = append(out, domain.RawListing{
				Title:       text,
				URL:         link,
				RawDateText: m.Date.Format(dates.ISODate),
			})
		}
	}
	return out, nil
}

// extractLinks maps each anchor href in an HTML-ish mail body to its best
// (longest) anchor text.
func extractLinks(body string) map[string]string {
	links := make(map[string]string)
	for _, m := range reHref.FindAllStringSubmatch(body, -1) {
		href := strings.TrimSpace(html.UnescapeString(m[1]))
		if href == "" || !strings.HasPrefix(strings.ToLower(href), "http") {
			continue
		}
		text := strings.TrimSpace(reTags.ReplaceAllString(m[2], " "))
		text = strings.Join(strings.Fields(html.UnescapeString(text)), " ")
		if len(text) > len(links[href]) {
			links[href] = text
		}
	}
	return links
}

func isJunkLink(u string) bool {
	lu := strings.ToLower(u)
	junks := []string{
		"unsubscribe",
		"preferences",
		"manage-preferences",
		"email-preferences",
		"privacy",
		"terms",
		"view-in-browser",
		"viewaswebpage",
		"tracking",
		"pixel",
		"beacon",
		"/alerts",
		"/settings",
		"/help",
		"/legal",
	}
	for _, j := range junks {
		if strings.Contains(lu, j) {
			return true
		}
	}
	return false
}
