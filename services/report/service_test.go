package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filmreport/lib/scrapers/imdb"
	"filmreport/lib/scrapers/wikipedia"
	"filmreport/lib/testutil"
	"filmreport/services/report/db"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	films []wikipedia.Film
}

func (s fakeSource) FetchRankingTable(ctx context.Context, pageUrl string) ([]wikipedia.Film, error) {
	return s.films, nil
}

type fakeLookup struct {
	listings map[string][]imdb.SearchResult
	calls    int
}

func lookupCallKey(token string, year int) string {
	return fmt.Sprintf("%s|%d", token, year)
}

func (l *fakeLookup) SearchTitle(ctx context.Context, titleToken string, year int) ([]imdb.SearchResult, error) {
	l.calls++
	return l.listings[lookupCallKey(titleToken, year)], nil
}

type failingLookup struct {
	calls int
}

func (l *failingLookup) SearchTitle(ctx context.Context, titleToken string, year int) ([]imdb.SearchResult, error) {
	l.calls++
	return nil, fmt.Errorf("lookup target unreachable")
}

func testFilms() []wikipedia.Film {
	return []wikipedia.Film{
		{Rank: 1, Title: "Gone with the Wind", Year: 1939, TicketsSold: "202,044,600", AdjustedGross: "$1,895,421,694"},
		{Rank: 2, Title: "Star Wars", Year: 1977, TicketsSold: "178,119,600", AdjustedGross: "$1,668,979,715 (plus 1997 reissue)"},
		{Rank: 3, Title: "The Sound of Music", Year: 1965, TicketsSold: "142,415,400", AdjustedGross: "$1,335,086,324"},
		{Rank: 4, Title: "E.T. the Extra-Terrestrial", Year: 1982, TicketsSold: "141,854,300", AdjustedGross: "$1,329,174,791"},
		{Rank: 5, Title: "Titanic", Year: 1997, TicketsSold: "135,549,800", AdjustedGross: "$1,270,101,626"},
		{Rank: 6, Title: "Jaws", Year: 1975, TicketsSold: "128,078,800", AdjustedGross: "$1,200,098,356"},
		{Rank: 7, Title: "The Empire Strikes Back", Year: 1980, TicketsSold: "98,180,600", AdjustedGross: "$919,903,746"},
		{Rank: 8, Title: "Return of the Jedi", Year: 1983, TicketsSold: "94,218,500", AdjustedGross: "$882,781,415"},
		{Rank: 9, Title: "Snow White and the Seven Dwarfs", Year: 1937, TicketsSold: "109,000,000", AdjustedGross: "$1,021,330,000"},
		{Rank: 10, Title: "101 Dalmatians", Year: 1961, TicketsSold: "99,917,300", AdjustedGross: "$936,225,111"},
		{Rank: 11, Title: "9 to 5", Year: 1980, TicketsSold: "53,267,000", AdjustedGross: "$499,107,794"},
		{Rank: 12, Title: "Doomed Film", Year: 1950, TicketsSold: "100,000,000", AdjustedGross: "$900,000,000"},
	}
}

func testListings() map[string][]imdb.SearchResult {
	return map[string][]imdb.SearchResult{
		lookupCallKey("Gone%20with%20the%20Wind", 1939): {
			{Title: "Gone with the Wind", Rating: 8.2, Certificate: "G", RuntimeMinutes: 238, Genres: []string{"Drama", "Romance"}},
		},
		lookupCallKey("Star%20Wars:%20Episode%20IV%20-%20A%20New%20Hope", 1977): {
			{Title: "Star Wars: Episode IV - A New Hope", Rating: 8.6, Certificate: "PG", RuntimeMinutes: 121, Genres: []string{"Action", "Adventure", "Fantasy"}},
		},
		lookupCallKey("The%20Sound%20of%20Music", 1965): {
			// no certificate in the listing, the sentinel applies
			{Title: "The Sound of Music", Rating: 8.1, RuntimeMinutes: 172, Genres: []string{"Biography", "Drama", "Family"}},
		},
		lookupCallKey("E.T.%20the%20Extra-Terrestrial", 1982): {
			{Title: "E.T. the Extra-Terrestrial", Rating: 7.9, Certificate: "PG", RuntimeMinutes: 115, Genres: []string{"Family", "Sci-Fi"}},
		},
		lookupCallKey("Titanic", 1997): {
			{Title: "Titanic", Rating: 7.9, Certificate: "PG-13", RuntimeMinutes: 194, Genres: []string{"Drama", "Romance"}},
		},
		lookupCallKey("Jaws", 1975): {
			{Title: "Jaws", Rating: 8.1, Certificate: "PG", RuntimeMinutes: 124, Genres: []string{"Adventure", "Thriller"}},
		},
		lookupCallKey("Star%20Wars:%20Episode%20V%20-%20The%20Empire%20Strikes%20Back", 1980): {
			{Title: "Star Wars: Episode V - The Empire Strikes Back", Rating: 8.7, Certificate: "PG", RuntimeMinutes: 124, Genres: []string{"Action", "Adventure", "Fantasy"}},
		},
		lookupCallKey("Star%20Wars:%20Episode%20VI%20-%20Return%20of%20the%20Jedi", 1983): {
			{Title: "Star Wars: Episode VI - Return of the Jedi", Rating: 8.3, Certificate: "PG", RuntimeMinutes: 131, Genres: []string{"Action", "Adventure", "Fantasy"}},
		},
		// the correction table dates this film a year later than the
		// source page does
		lookupCallKey("Snow%20White%20and%20the%20Seven%20Dwarfs", 1938): {
			{Title: "Snow White and the Seven Dwarfs", Rating: 7.6, Certificate: "APPROVED", RuntimeMinutes: 83, Genres: []string{"Animation", "Family", "Fantasy"}},
		},
		lookupCallKey("One%20Hundred%20and%20One%20Dalmatians", 1961): {
			{Title: "One Hundred and One Dalmatians", Rating: 7.2, Certificate: "G", RuntimeMinutes: 79, Genres: []string{"Animation", "Adventure", "Comedy"}},
		},
		lookupCallKey("Nine%20to%20Five", 1980): {
			{Title: "Nine to Five", Rating: 6.9, Certificate: "PG", RuntimeMinutes: 109, Genres: []string{"Comedy"}},
		},
		// "Doomed Film" deliberately has no listing
	}
}

func TestRun(t *testing.T) {
	svc, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "report",
		DbSchema: db.Schema,
	})
	defer cleanup()

	lookup := &fakeLookup{listings: testListings()}
	service := NewService(fakeSource{films: testFilms()}, lookup, svc.DB, Options{
		SplitGenre: "Drama",
		Confidence: 0.95,
	})

	result, err := service.Run(context.Background())
	require.NoError(t, err)

	// every correction-table title resolved, only the unlisted row failed
	require.Len(t, result.Records, 11)
	require.Len(t, result.Failures, 1)
	require.Equal(t, "Doomed Film", result.Failures[0].Title)

	for _, r := range result.Records {
		require.NotEmpty(t, r.Genres, "record %q", r.Title)
		require.NotEqual(t, SentinelCertificate, r.Certificate, "record %q", r.Title)
		require.GreaterOrEqual(t, r.TicketsSold, int64(0))
		require.GreaterOrEqual(t, r.AdjustedGross, float64(0))
	}

	// the missing certificate went sentinel -> PG
	require.Equal(t, "PG", result.Records[2].Certificate)
	// records come back rank ordered
	for i, r := range result.Records {
		require.Equal(t, i+1, r.Rank)
	}

	require.Equal(t, 3, result.Analysis.InGenreCount)
	require.Equal(t, 8, result.Analysis.OutGenreCount)
	// drama-tagged films run longer in this fixture
	require.Greater(t, result.Analysis.RuntimeTest.T, 0.0)
	require.Greater(t, result.Analysis.RuntimeTest.MeanDiff, 0.0)
	require.NotEmpty(t, result.Analysis.GenreCounts)
	require.Equal(t, "Adventure", result.Analysis.GenreCounts[0].Genre)
	require.Equal(t, 5, result.Analysis.GenreCounts[0].Count)
}

func TestRunServedFromCache(t *testing.T) {
	svc, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "report-cache",
		DbSchema: db.Schema,
	})
	defer cleanup()

	lookup := &fakeLookup{listings: testListings()}
	service := NewService(fakeSource{films: testFilms()}, lookup, svc.DB, Options{})
	_, err := service.Run(context.Background())
	require.NoError(t, err)
	firstCalls := lookup.calls

	// a second run against the same database must not need the live
	// lookup for anything that already resolved
	failing := &failingLookup{}
	cachedService := NewService(fakeSource{films: testFilms()}, failing, svc.DB, Options{})
	result, err := cachedService.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Records, 11)
	require.Equal(t, 12, firstCalls)
	// only the row that never resolved hits the lookup again
	require.Equal(t, 1, failing.calls)
}

func TestEnrichRejectsOutOfRangeRating(t *testing.T) {
	lookup := &fakeLookup{listings: map[string][]imdb.SearchResult{
		lookupCallKey("Jaws", 1975): {
			{Title: "Jaws", Rating: 86.0, Certificate: "PG", RuntimeMinutes: 124, Genres: []string{"Thriller"}},
		},
	}}
	service := NewService(fakeSource{}, lookup, nil, Options{})

	outcome := service.Enrich(context.Background(), []FilmRecord{
		{Rank: 1, Title: "Jaws", Year: 1975},
	})
	require.Empty(t, outcome.Records)
	require.Len(t, outcome.Failures, 1)
	require.Contains(t, outcome.Failures[0].Err.Error(), "1-10 scale")
}

func TestWriteReport(t *testing.T) {
	svc, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "report-render",
		DbSchema: db.Schema,
	})
	defer cleanup()

	lookup := &fakeLookup{listings: testListings()}
	service := NewService(fakeSource{films: testFilms()}, lookup, svc.DB, Options{})
	result, err := service.Run(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	reportPath, err := WriteReport(dir, result)
	require.NoError(t, err)

	document, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(document), "Welch")
	require.Contains(t, string(document), "Drama")
	require.Contains(t, string(document), "Doomed Film")

	chartsDoc, err := os.ReadFile(filepath.Join(dir, "charts.html"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(chartsDoc), "echarts"))
}
