package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"filmreport/lib/configutil"
	"filmreport/lib/restyutil"
	"filmreport/lib/scrapers/imdb"
	"filmreport/lib/scrapers/wikipedia"
	"filmreport/lib/telemetry"
	"filmreport/services/report"
	reportdb "filmreport/services/report/db"

	_ "modernc.org/sqlite"
)

type Config struct {
	// page holding the ranking table
	SourcePageUrl string `json:"source_page_url"`
	// base url of the movie database search interface
	LookupBaseUrl string `json:"lookup_base_url"`
	// genre tag the runtime comparison splits on, defaults to Drama
	SplitGenre string `json:"split_genre"`
	// confidence level for the mean-difference interval, defaults to 0.95
	Confidence float64 `json:"confidence"`
	// sqlite file caching lookups, empty disables the cache
	CacheDatabase string `json:"cache_database"`
	// directory the rendered report is written into
	OutputDir string `json:"output_dir"`
	// when set, raw HTTP transcripts of every lookup request are
	// dumped here, useful when the target's markup shifts
	TranscriptDir string `json:"transcript_dir"`

	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

// setup reads config, wires telemetry and constructs the pipeline
// service. The returned cleanup flushes telemetry.
func setup(ctx context.Context) (*report.Service, Config, func()) {
	telemetry.InitSlog(flagDebug)

	tel, err := telemetry.SetupFromEnv(ctx, "filmreport")
	if err != nil {
		fatal("failed to setup telemetry", err)
	}
	cleanup := func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shut down telemetry", "err", err)
		}
	}

	config, err := configutil.ReadConfig[Config](flagConfig)
	if err != nil {
		fatal(fmt.Sprintf("failed to read config %q", flagConfig), err)
	}
	if config.SourcePageUrl == "" || config.LookupBaseUrl == "" {
		fatal("incomplete config", fmt.Errorf("source_page_url and lookup_base_url are required"))
	}
	if config.OutputDir == "" {
		config.OutputDir = "out"
	}

	timeout := time.Duration(config.RequestTimeoutSeconds) * time.Second

	source := wikipedia.NewClient(wikipedia.ClientOptions{
		Timeout: timeout,
	})

	var transcripts restyutil.Output
	if config.TranscriptDir != "" {
		transcripts = restyutil.NewFilesystemOutput(config.TranscriptDir)
	}
	lookup, err := imdb.NewClient(imdb.ClientOptions{
		BaseUrl:     config.LookupBaseUrl,
		Timeout:     timeout,
		Transcripts: transcripts,
	})
	if err != nil {
		fatal("failed to create lookup client", err)
	}

	var cache *sql.DB
	if config.CacheDatabase != "" {
		cache, err = openCache(config.CacheDatabase)
		if err != nil {
			fatal("failed to open lookup cache", err)
		}
	}

	service := report.NewService(source, lookup, cache, report.Options{
		SourcePageUrl: config.SourcePageUrl,
		SplitGenre:    config.SplitGenre,
		Confidence:    config.Confidence,
	})
	return service, config, cleanup
}

func openCache(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(reportdb.Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, err
	}
	return database, nil
}
