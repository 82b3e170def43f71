package stats

import (
	"fmt"
	"math"
)

type WelchResult struct {
	T          float64
	DF         float64
	P          float64
	MeanDiff   float64
	CILow      float64
	CIHigh     float64
	Confidence float64
}

// WelchTTest runs a two-sample t-test for difference of means without
// assuming equal population variances. The returned interval is a
// `confidence` (e.g. 0.95) interval for mean(a) - mean(b).
func WelchTTest(a, b []float64, confidence float64) (WelchResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return WelchResult{}, fmt.Errorf(
			"each sample needs at least 2 values, got %d and %d",
			len(a), len(b),
		)
	}
	if confidence <= 0 || confidence >= 1 {
		return WelchResult{}, fmt.Errorf("confidence must lie in (0, 1), got %v", confidence)
	}

	na := float64(len(a))
	nb := float64(len(b))
	sea := Variance(a) / na
	seb := Variance(b) / nb

	se := math.Sqrt(sea + seb)
	if se == 0 {
		return WelchResult{}, fmt.Errorf("both samples have zero variance")
	}

	diff := Mean(a) - Mean(b)
	t := diff / se

	// Welch–Satterthwaite approximation
	df := (sea + seb) * (sea + seb) /
		(sea*sea/(na-1) + seb*seb/(nb-1))

	p := 2 * (1 - StudentTCDF(math.Abs(t), df))
	tcrit := StudentTQuantile(1-(1-confidence)/2, df)

	return WelchResult{
		T:          t,
		DF:         df,
		P:          p,
		MeanDiff:   diff,
		CILow:      diff - tcrit*se,
		CIHigh:     diff + tcrit*se,
		Confidence: confidence,
	}, nil
}
