package report

import "fmt"

// SentinelCertificate marks rows where the lookup listing carried no
// certificate at all.
const SentinelCertificate = "UNKNOWN"

// validCertificates is the closed set a finished table may contain.
// The members were discovered organically from the dataset rather
// than taken from any rating-system reference.
var validCertificates = map[string]bool{
	"G":        true,
	"PG":       true,
	"PG-13":    true,
	"R":        true,
	"APPROVED": true,
	"UNRATED":  true,
}

// certificateEquivalence maps certificates outside the closed set to
// members of it. UNKNOWN -> PG is a dataset-specific historical rule:
// the films missing a certificate here predate 1970 and carried the
// M or GP ratings, both of which became PG.
var certificateEquivalence = map[string]string{
	SentinelCertificate: "PG",
	"M":                 "PG",
	"GP":                "PG",
	"M/PG":              "PG",
	"NOT RATED":         "UNRATED",
	"PASSED":            "APPROVED",
}

// NormalizeCertificates rewrites every certificate into the closed
// set, erroring on values it has no rule for. No sentinel survives
// this pass.
func NormalizeCertificates(records []FilmRecord) error {
	for i, r := range records {
		cert := r.Certificate
		if mapped, ok := certificateEquivalence[cert]; ok {
			cert = mapped
		}
		if !validCertificates[cert] {
			return fmt.Errorf("%q (%d): no normalization rule for certificate %q", r.Title, r.Year, r.Certificate)
		}
		records[i].Certificate = cert
	}
	return nil
}
