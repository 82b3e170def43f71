package report

import (
	"fmt"

	"filmreport/lib/stats"
)

// Analysis is everything the rendered document presents beyond the
// table itself.
type Analysis struct {
	// runtime comparison between films tagged SplitGenre and the rest
	SplitGenre      string
	InGenreCount    int
	OutGenreCount   int
	RuntimeTest     stats.WelchResult
	RatingRankTrend stats.Line
	RuntimeBins     []stats.Bin
	GenreCounts     []GenreCount
}

const runtimeHistogramBins = 12

// Analyze runs the statistical stage over the enriched table: the
// Welch runtime test across the genre split, the rating-vs-rank
// trend, the runtime histogram and the genre frequency table.
func Analyze(records []FilmRecord, splitGenre string, confidence float64) (Analysis, error) {
	if len(records) == 0 {
		return Analysis{}, fmt.Errorf("no records to analyze")
	}

	var inGenre, outGenre []float64
	for _, r := range records {
		if r.HasGenre(splitGenre) {
			inGenre = append(inGenre, float64(r.RuntimeMinutes))
		} else {
			outGenre = append(outGenre, float64(r.RuntimeMinutes))
		}
	}

	runtimeTest, err := stats.WelchTTest(inGenre, outGenre, confidence)
	if err != nil {
		return Analysis{}, fmt.Errorf("runtime test on genre %q: %w", splitGenre, err)
	}

	ranks := make([]float64, len(records))
	ratings := make([]float64, len(records))
	runtimes := make([]float64, len(records))
	for i, r := range records {
		ranks[i] = float64(r.Rank)
		ratings[i] = r.Rating
		runtimes[i] = float64(r.RuntimeMinutes)
	}

	trend, err := stats.Fit(ranks, ratings)
	if err != nil {
		return Analysis{}, fmt.Errorf("rating vs rank fit: %w", err)
	}

	return Analysis{
		SplitGenre:      splitGenre,
		InGenreCount:    len(inGenre),
		OutGenreCount:   len(outGenre),
		RuntimeTest:     runtimeTest,
		RatingRankTrend: trend,
		RuntimeBins:     stats.Histogram(runtimes, runtimeHistogramBins),
		GenreCounts:     GenreFrequency(records),
	}, nil
}
