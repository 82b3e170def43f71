package report

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"filmreport/lib/scrapers/wikipedia"
	"filmreport/services/report/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/report")

// Source provides the ranking table, satisfied by *wikipedia.Client.
type Source interface {
	FetchRankingTable(ctx context.Context, pageUrl string) ([]wikipedia.Film, error)
}

type Options struct {
	// page holding the ranking table
	SourcePageUrl string
	// genre tag the runtime comparison splits on
	SplitGenre string
	// confidence level for the mean-difference interval, e.g. 0.95
	Confidence float64
}

type Service struct {
	source Source
	lookup Lookup
	qry    *db.Queries
	opts   Options
}

// NewService wires the pipeline. `database` may be nil to run without
// a lookup cache.
func NewService(source Source, lookup Lookup, database *sql.DB, opts Options) *Service {
	if opts.SplitGenre == "" {
		opts.SplitGenre = "Drama"
	}
	if opts.Confidence == 0 {
		opts.Confidence = 0.95
	}

	s := &Service{
		source: source,
		lookup: lookup,
		opts:   opts,
	}
	if database != nil {
		s.qry = db.New(database)
	}
	return s
}

type RunResult struct {
	Records  []FilmRecord
	Failures []RowFailure
	Analysis Analysis
}

// Acquire fetches the ranking table and cleans its numeric columns.
func (s *Service) Acquire(ctx context.Context) ([]FilmRecord, error) {
	ctx, span := tracer.Start(ctx, "Acquire")
	defer span.End()

	films, err := s.source.FetchRankingTable(ctx, s.opts.SourcePageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch ranking table")
		return nil, err
	}

	records, err := CleanFilms(films)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to clean table")
		return nil, err
	}
	err = CheckRankPermutation(records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rank invariant violated")
		return nil, err
	}

	slog.InfoContext(ctx, "acquired ranking table", "rows", len(records))
	return records, nil
}

// Run executes the whole pipeline: acquire, clean, enrich, normalize,
// analyze. Enrichment failures don't abort the run, they are carried
// in the result so the report can present partial data honestly.
func (s *Service) Run(ctx context.Context) (RunResult, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	records, err := s.Acquire(ctx)
	if err != nil {
		return RunResult{}, err
	}

	outcome := s.Enrich(ctx, records)
	if len(outcome.Records) == 0 {
		err := fmt.Errorf("every one of %d rows failed enrichment", len(records))
		span.RecordError(err)
		span.SetStatus(codes.Error, "enrichment produced nothing")
		return RunResult{}, err
	}
	if len(outcome.Failures) > 0 {
		slog.WarnContext(
			ctx, "continuing with partial enrichment",
			"ok", len(outcome.Records),
			"failed", len(outcome.Failures),
		)
	}

	err = NormalizeCertificates(outcome.Records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "certificate normalization failed")
		return RunResult{}, err
	}
	err = CheckEnriched(outcome.Records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enrichment invariant violated")
		return RunResult{}, err
	}

	SortByRank(outcome.Records)

	analysis, err := Analyze(outcome.Records, s.opts.SplitGenre, s.opts.Confidence)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		return RunResult{}, err
	}

	return RunResult{
		Records:  outcome.Records,
		Failures: outcome.Failures,
		Analysis: analysis,
	}, nil
}
