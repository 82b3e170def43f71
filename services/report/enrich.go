package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"filmreport/lib/scrapers/imdb"
	"filmreport/lib/textutil"
	"filmreport/services/report/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Lookup is the search interface rows are enriched from, satisfied by
// *imdb.Client.
type Lookup interface {
	SearchTitle(ctx context.Context, titleToken string, year int) ([]imdb.SearchResult, error)
}

type RowFailure struct {
	Rank  int
	Title string
	Err   error
}

// EnrichOutcome separates rows that enriched cleanly from rows that
// failed, so one bad lookup doesn't abort the batch.
type EnrichOutcome struct {
	Records  []FilmRecord
	Failures []RowFailure
}

// Enrich fills rating, certificate, runtime and genres for every row,
// strictly sequentially. Lookups go through the cache first, live
// results are written back to it.
func (s *Service) Enrich(ctx context.Context, records []FilmRecord) EnrichOutcome {
	ctx, span := tracer.Start(ctx, "Enrich")
	defer span.End()
	span.SetAttributes(attribute.Int("rows", len(records)))

	var out EnrichOutcome
	for _, record := range records {
		enriched, err := s.enrichRow(ctx, record)
		if err != nil {
			slog.WarnContext(
				ctx, "row enrichment failed",
				"rank", record.Rank,
				"title", record.Title,
				"err", err,
			)
			out.Failures = append(out.Failures, RowFailure{
				Rank:  record.Rank,
				Title: record.Title,
				Err:   err,
			})
			continue
		}
		out.Records = append(out.Records, enriched)
	}

	if len(out.Failures) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d rows failed", len(out.Failures)))
	}
	return out
}

func (s *Service) enrichRow(ctx context.Context, record FilmRecord) (FilmRecord, error) {
	key := lookupKey(record.Title, record.Year)
	record.QueryToken = textutil.QueryToken(key.Title)

	if s.qry != nil {
		cached, err := s.qry.GetLookup(ctx, key.Title, key.Year)
		if err == nil {
			record.Rating = cached.Rating
			record.Certificate = cached.Certificate
			record.RuntimeMinutes = cached.RuntimeMinutes
			record.Genres = cached.Genres
			return record, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			slog.WarnContext(ctx, "lookup cache read failed", "title", key.Title, "err", err)
		}
	}

	results, err := s.lookup.SearchTitle(ctx, record.QueryToken, key.Year)
	if err != nil {
		return FilmRecord{}, err
	}

	match, err := matchResult(key.Title, results)
	if err != nil {
		return FilmRecord{}, err
	}
	if match.Rating == 0 {
		return FilmRecord{}, fmt.Errorf("listing for %q carries no rating score", match.Title)
	}
	if match.Rating < 1 || match.Rating > 10 {
		return FilmRecord{}, fmt.Errorf("listing for %q has rating %v outside the 1-10 scale", match.Title, match.Rating)
	}
	if match.RuntimeMinutes == 0 {
		return FilmRecord{}, fmt.Errorf("listing for %q carries no runtime", match.Title)
	}
	if len(match.Genres) == 0 {
		return FilmRecord{}, fmt.Errorf("listing for %q carries no genre tags", match.Title)
	}

	record.Rating = match.Rating
	record.RuntimeMinutes = match.RuntimeMinutes
	record.Genres = match.Genres
	record.Certificate = match.Certificate
	if record.Certificate == "" {
		record.Certificate = SentinelCertificate
	}

	if s.qry != nil {
		err := s.qry.UpsertLookup(ctx, db.LookupRow{
			Title:          key.Title,
			Year:           key.Year,
			Rating:         record.Rating,
			Certificate:    record.Certificate,
			RuntimeMinutes: record.RuntimeMinutes,
			Genres:         record.Genres,
			FetchedAt:      time.Now().Unix(),
		})
		if err != nil {
			slog.WarnContext(ctx, "lookup cache write failed", "title", key.Title, "err", err)
		}
	}

	return record, nil
}
