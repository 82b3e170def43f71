package report

import (
	"testing"

	"filmreport/lib/scrapers/wikipedia"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCleanFilms(t *testing.T) {
	films := []wikipedia.Film{
		{
			Rank:          1,
			Title:         "Gone with the Wind",
			Year:          1939,
			TicketsSold:   "202,044,600",
			AdjustedGross: "$1,895,421,694",
		},
		{
			Rank:          2,
			Title:         "Star Wars",
			Year:          1977,
			TicketsSold:   "178,119,600",
			AdjustedGross: "$1,668,979,715 (plus 1997 reissue)",
		},
		{
			Rank:          3,
			Title:         "The Sound of Music",
			Year:          1965,
			TicketsSold:   "142,415,400[b]",
			AdjustedGross: "$1,335,086,324",
		},
	}

	records, err := CleanFilms(films)
	require.NoError(t, err)

	expected := []FilmRecord{
		{
			Rank:          1,
			Title:         "Gone with the Wind",
			Year:          1939,
			TicketsSold:   202044600,
			AdjustedGross: 1895421694,
			QueryToken:    "Gone%20with%20the%20Wind",
		},
		{
			Rank:          2,
			Title:         "Star Wars",
			Year:          1977,
			TicketsSold:   178119600,
			AdjustedGross: 1668979715,
			QueryToken:    "Star%20Wars",
		},
		{
			Rank:          3,
			Title:         "The Sound of Music",
			Year:          1965,
			TicketsSold:   142415400,
			AdjustedGross: 1335086324,
			QueryToken:    "The%20Sound%20of%20Music",
		},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("cleaned records mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanFilmsBadCell(t *testing.T) {
	_, err := CleanFilms([]wikipedia.Film{
		{Rank: 1, Title: "Jaws", Year: 1975, TicketsSold: "n/a", AdjustedGross: "$1"},
	})
	require.Error(t, err)
}

func TestCleanFilmsAnnotationOnlySplitsListedTitles(t *testing.T) {
	// an embedded annotation on an unlisted title should fail loudly
	// instead of being silently split
	_, err := CleanFilms([]wikipedia.Film{
		{Rank: 1, Title: "Jaws", Year: 1975, TicketsSold: "128,078,800 (estimate)", AdjustedGross: "$1,200"},
	})
	require.Error(t, err)
}
