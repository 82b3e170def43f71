package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"filmreport/lib/telemetry"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

var setupOnce sync.Once

// SetupService wires slog/telemetry for a test and opens an sqlite
// database loaded with the given schema.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	setupOnce.Do(func() {
		telemetry.InitSlog(true)
	})

	tel, err := telemetry.SetupFromEnv(context.Background(), fmt.Sprintf("test:%s", params.Name))
	if err != nil {
		t.Fatal(err)
	}
	cleanup := func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}

	if params.DbSchema == "" {
		return ServiceResult{}, cleanup
	}

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = ":memory:"
	}
	sqlite, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = sqlite.Exec(params.DbSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return ServiceResult{DB: sqlite}, cleanup
}
