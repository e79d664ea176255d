package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the wire format for posted dates.
const ISODate = "2006-01-02"

// longForm matches dates like "Tue, December 23, 2025" as printed by the
// Index Ventures board.
const longForm = "Mon, January 2, 2006"

var (
	reLessThan = regexp.MustCompile(`less than\s*(\d+)\s*days?`)
	reHours    = regexp.MustCompile(`(\d+)\s*hours?(?:\s*ago)?`)
	rePlusDays = regexp.MustCompile(`(\d+)\+\s*days?(?:\s*ago)?`)
	reDays     = regexp.MustCompile(`(\d+)\s*days?(?:\s*ago)?`)
	reWeeks    = regexp.MustCompile(`(\d+)\s*weeks?(?:\s*ago)?`)
	reMonths   = regexp.MustCompile(`(\d+)\s*months?(?:\s*ago)?`)
)

// ParseRelative converts a human relative-date expression ("3 days ago",
// "about 7 hours ago", "30+ days ago") into a days-ago count. ok is false
// when nothing matched; callers must treat that as unknown freshness, never
// as zero. "N+ days" is read as exactly N, a conservative lower bound.
// Months use a fixed 30-day approximation.
func ParseRelative(text string) (daysAgo int, ok bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, false
	}

	if strings.Contains(text, "just now") || strings.Contains(text, "today") {
		return 0, true
	}
	if strings.Contains(text, "yesterday") {
		return 1, true
	}
	if m := reLessThan.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 1 {
			n = 1
		}
		return n - 1, true
	}
	if reHours.MatchString(text) {
		return 0, true
	}
	if m := rePlusDays.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	if m := reDays.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	if m := reWeeks.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * 7, true
	}
	if m := reMonths.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * 30, true
	}
	return 0, false
}

// ParseAbsolute parses an ISO (YYYY-MM-DD) or long-form weekday date string
// and returns the posted date plus whole calendar days between it and
// observedAt. Future-dated listings come back negative, unclamped; callers
// decide whether that is invalid.
func ParseAbsolute(text string, observedAt time.Time) (postedDate string, daysAgo int, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0, false
	}

	posted, err := time.Parse(ISODate, text)
	if err != nil {
		posted, err = time.Parse(longForm, text)
	}
	if err != nil {
		return "", 0, false
	}

	return posted.Format(ISODate), DaysBetween(posted, observedAt), true
}

// DaysBetween compares by calendar date, discarding time of day.
func DaysBetween(from, to time.Time) int {
	fd := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}

// DateDaysAgo returns the ISO date daysAgo days before observedAt, used to
// back-fill a posted date from a relative expression.
func DateDaysAgo(daysAgo int, observedAt time.Time) string {
	return observedAt.AddDate(0, 0, -daysAgo).Format(ISODate)
}
