package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckRankPermutation(t *testing.T) {
	records := []FilmRecord{
		{Rank: 2, Title: "b"},
		{Rank: 1, Title: "a"},
		{Rank: 3, Title: "c"},
	}
	require.NoError(t, CheckRankPermutation(records))

	require.Error(t, CheckRankPermutation([]FilmRecord{
		{Rank: 1, Title: "a"},
		{Rank: 1, Title: "b"},
	}))
	require.Error(t, CheckRankPermutation([]FilmRecord{
		{Rank: 1, Title: "a"},
		{Rank: 5, Title: "b"},
	}))
}

func TestCheckEnriched(t *testing.T) {
	require.NoError(t, CheckEnriched([]FilmRecord{
		{Title: "a", Certificate: "PG", Genres: []string{"Drama"}},
	}))
	require.Error(t, CheckEnriched([]FilmRecord{
		{Title: "a", Certificate: "PG"},
	}))
	require.Error(t, CheckEnriched([]FilmRecord{
		{Title: "a", Certificate: "UNKNOWN", Genres: []string{"Drama"}},
	}))
}

func TestSortByRank(t *testing.T) {
	records := []FilmRecord{{Rank: 3}, {Rank: 1}, {Rank: 2}}
	SortByRank(records)
	require.Equal(t, []FilmRecord{{Rank: 1}, {Rank: 2}, {Rank: 3}}, records)
}
