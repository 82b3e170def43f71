package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCertificates(t *testing.T) {
	records := []FilmRecord{
		{Title: "a", Certificate: "UNKNOWN"},
		{Title: "b", Certificate: "M"},
		{Title: "c", Certificate: "GP"},
		{Title: "d", Certificate: "PASSED"},
		{Title: "e", Certificate: "NOT RATED"},
		{Title: "f", Certificate: "R"},
		{Title: "g", Certificate: "PG-13"},
	}
	require.NoError(t, NormalizeCertificates(records))

	expected := []string{"PG", "PG", "PG", "APPROVED", "UNRATED", "R", "PG-13"}
	for i, r := range records {
		require.Equal(t, expected[i], r.Certificate, "record %q", r.Title)
	}
}

func TestNormalizeCertificatesUnknownValue(t *testing.T) {
	err := NormalizeCertificates([]FilmRecord{{Title: "x", Certificate: "X"}})
	require.Error(t, err)
}

func TestNoSentinelSurvives(t *testing.T) {
	records := []FilmRecord{{Title: "a", Certificate: SentinelCertificate, Genres: []string{"Drama"}}}
	require.NoError(t, NormalizeCertificates(records))
	require.NoError(t, CheckEnriched(records))
	require.NotEqual(t, SentinelCertificate, records[0].Certificate)
}
