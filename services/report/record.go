package report

import (
	"fmt"
	"sort"
)

// FilmRecord is one row of the analysis table. It is built up in
// stages: acquisition fills the first five fields, enrichment the
// rest.
type FilmRecord struct {
	Rank           int
	Title          string
	Year           int
	TicketsSold    int64
	AdjustedGross  float64
	QueryToken     string
	Rating         float64
	Certificate    string
	RuntimeMinutes int
	Genres         []string
}

// CheckRankPermutation verifies ranks form a dense permutation of
// 1..len(records).
func CheckRankPermutation(records []FilmRecord) error {
	seen := make(map[int]string, len(records))
	for _, r := range records {
		if r.Rank < 1 || r.Rank > len(records) {
			return fmt.Errorf("rank %d of %q out of range 1..%d", r.Rank, r.Title, len(records))
		}
		if prev, ok := seen[r.Rank]; ok {
			return fmt.Errorf("duplicate rank %d: %q and %q", r.Rank, prev, r.Title)
		}
		seen[r.Rank] = r.Title
	}
	return nil
}

// CheckEnriched verifies post-enrichment invariants: every record has
// at least one genre tag and a certificate from the closed set.
func CheckEnriched(records []FilmRecord) error {
	for _, r := range records {
		if len(r.Genres) == 0 {
			return fmt.Errorf("%q (%d) has no genre tags", r.Title, r.Year)
		}
		if !validCertificates[r.Certificate] {
			return fmt.Errorf("%q (%d) has certificate %q outside the closed set", r.Title, r.Year, r.Certificate)
		}
	}
	return nil
}

// SortByRank orders records in place by ascending rank.
func SortByRank(records []FilmRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Rank < records[j].Rank
	})
}

// HasGenre reports whether the record carries the given tag.
func (r FilmRecord) HasGenre(genre string) bool {
	for _, g := range r.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
