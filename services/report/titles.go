package report

import (
	"fmt"

	"filmreport/lib/scrapers/imdb"
	"filmreport/lib/textutil"

	"github.com/antzucaro/matchr"
)

type titleKey struct {
	Title string
	Year  int
}

// titleCorrections patches naming (and in one case dating) divergence
// between the source page and the lookup target. Titles not listed
// here fall back to similarity matching below.
var titleCorrections = map[titleKey]titleKey{
	{"Star Wars", 1977}:                       {"Star Wars: Episode IV - A New Hope", 1977},
	{"The Empire Strikes Back", 1980}:         {"Star Wars: Episode V - The Empire Strikes Back", 1980},
	{"Return of the Jedi", 1983}:              {"Star Wars: Episode VI - Return of the Jedi", 1983},
	{"Snow White and the Seven Dwarfs", 1937}: {"Snow White and the Seven Dwarfs", 1938},
	{"101 Dalmatians", 1961}:                  {"One Hundred and One Dalmatians", 1961},
	{"9 to 5", 1980}:                          {"Nine to Five", 1980},
}

// lookupKey resolves the (title, year) pair to query the lookup
// target with, applying the correction table when the source page
// names a film differently.
func lookupKey(title string, year int) titleKey {
	if corrected, ok := titleCorrections[titleKey{title, year}]; ok {
		return corrected
	}
	return titleKey{title, year}
}

// minimum Jaro-Winkler similarity to accept a result title that
// doesn't match the queried title outright
const matchThreshold = 0.85

// matchResult picks the search result whose title matches `wanted`.
// Exact matches (after whitespace/case normalization) win, otherwise
// the most similar title above the confidence threshold is accepted.
// Below the threshold the row is left for manual review instead of
// silently taking a wrong film.
func matchResult(wanted string, results []imdb.SearchResult) (imdb.SearchResult, error) {
	if len(results) == 0 {
		return imdb.SearchResult{}, fmt.Errorf("no search results for %q", wanted)
	}

	normalized := textutil.NormalizeName(wanted)
	for _, r := range results {
		if textutil.NormalizeName(r.Title) == normalized {
			return r, nil
		}
	}

	var best imdb.SearchResult
	var bestSimilarity float64
	for _, r := range results {
		similarity := matchr.JaroWinkler(wanted, r.Title, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = r
		}
	}

	if bestSimilarity < matchThreshold {
		return imdb.SearchResult{}, fmt.Errorf(
			"no result for %q is confident enough (best %q at %.2f), needs manual review",
			wanted, best.Title, bestSimilarity,
		)
	}
	return best, nil
}
