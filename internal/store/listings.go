package store

import (
	"context"
	"errors"
	"time"

	"github.com/wiltodelta/find-my-next-job/internal/domain"
)

// InsertIfNew archives a listing, deduping on URL. Returns true when a row
// was actually inserted.
func (d *DB) InsertIfNew(ctx context.Context, l domain.Listing) (bool, error) {
	if l.URL == "" {
		return false, errors.New("missing url")
	}
	if l.ObservedAt.IsZero() {
		l.ObservedAt = time.Now().UTC()
	}

	dup := 0
	if l.PotentialDuplicate {
		dup = 1
	}

	res, err := d.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO listings(title, company, source_id, url, location, posted_date, observed_at, potential_duplicate)
VALUES(?,?,?,?,?,?,?,?);`,
		l.Title,
		l.Company,
		l.SourceID,
		l.URL,
		l.Location,
		l.PostedDate,
		l.ObservedAt.Format(time.RFC3339),
		dup,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Recent returns the newest archived listings, up to limit.
func (d *DB) Recent(ctx context.Context, limit int) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := d.Pool.QueryContext(ctx, `
SELECT title, company, source_id, url, location, posted_date, observed_at, potential_duplicate
FROM listings
ORDER BY observed_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		var l domain.Listing
		var observed string
		var dup int
		if err := rows.Scan(&l.Title, &l.Company, &l.SourceID, &l.URL, &l.Location, &l.PostedDate, &observed, &dup); err != nil {
			return nil, err
		}
		l.ObservedAt, _ = time.Parse(time.RFC3339, observed)
		l.PotentialDuplicate = dup != 0
		out = append(out, l)
	}
	return out, rows.Err()
}
