package report

import "sort"

type GenreCount struct {
	Genre string
	Count int
}

// GenreFrequency tabulates how many films carry each genre tag,
// ordered by descending count (ties alphabetical). Tags are
// de-duplicated within a film first so a repeated tag in one film's
// list cannot inflate its genre's count.
func GenreFrequency(records []FilmRecord) []GenreCount {
	counts := map[string]int{}
	for _, r := range records {
		seen := map[string]struct{}{}
		for _, g := range r.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			counts[g]++
		}
	}

	out := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}
