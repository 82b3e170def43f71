package db

import (
	"context"
	"database/sql"
	"strings"
)

type Queries struct {
	db *sql.DB
}

func New(database *sql.DB) *Queries {
	return &Queries{db: database}
}

type LookupRow struct {
	Title          string
	Year           int
	Rating         float64
	Certificate    string
	RuntimeMinutes int
	Genres         []string
	FetchedAt      int64
}

const getLookup = `
SELECT rating, certificate, runtime_minutes, genres, fetched_at
FROM lookup_cache
WHERE title = ? AND year = ?
`

// GetLookup returns the cached lookup for (title, year), or
// sql.ErrNoRows when the pair was never fetched.
func (q *Queries) GetLookup(ctx context.Context, title string, year int) (LookupRow, error) {
	row := q.db.QueryRowContext(ctx, getLookup, title, year)

	out := LookupRow{Title: title, Year: year}
	var genres string
	err := row.Scan(&out.Rating, &out.Certificate, &out.RuntimeMinutes, &genres, &out.FetchedAt)
	if err != nil {
		return LookupRow{}, err
	}
	if genres != "" {
		out.Genres = strings.Split(genres, "\n")
	}
	return out, nil
}

const upsertLookup = `
INSERT INTO lookup_cache (title, year, rating, certificate, runtime_minutes, genres, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (title, year) DO UPDATE SET
    rating = excluded.rating,
    certificate = excluded.certificate,
    runtime_minutes = excluded.runtime_minutes,
    genres = excluded.genres,
    fetched_at = excluded.fetched_at
`

func (q *Queries) UpsertLookup(ctx context.Context, row LookupRow) error {
	_, err := q.db.ExecContext(
		ctx, upsertLookup,
		row.Title, row.Year,
		row.Rating, row.Certificate, row.RuntimeMinutes,
		strings.Join(row.Genres, "\n"),
		row.FetchedAt,
	)
	return err
}
