package stats

import "gonum.org/v1/gonum/stat/distuv"

// StudentTCDF returns P(T <= t) for a Student-t distribution with `df`
// degrees of freedom.
func StudentTCDF(t, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(t)
}

// StudentTQuantile returns the t with StudentTCDF(t, df) == p, `p`
// must lie in (0, 1).
func StudentTQuantile(p, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}
