package wikipedia

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/ranking.html
var rankingFixture []byte

func TestParseRankingTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(rankingFixture))
	require.NoError(t, err)

	films, err := ParseRankingTable(context.Background(), doc)
	require.NoError(t, err)

	expected := []Film{
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
			AdjustedGross: "$1,668,979,715[a]",
		},
		{
			Rank:          3,
			Title:         "The Sound of Music",
			Year:          1965,
			TicketsSold:   "142,415,400",
			AdjustedGross: "$1,335,086,324",
		},
	}
	if diff := cmp.Diff(expected, films); diff != "" {
		t.Fatalf("parsed films mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchRankingTable(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write(rankingFixture)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{})
	films, err := client.FetchRankingTable(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, films, 3)

	// a browser user-agent is sent even when none is configured
	require.Contains(t, gotUserAgent, "Mozilla")
}

func TestParseRankingTableNoMarker(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(
		`<html><body><p>no tables here</p></body></html>`,
	))
	require.NoError(t, err)

	_, err = ParseRankingTable(context.Background(), doc)
	require.Error(t, err)
}

func TestParseRankingTableMalformedRow(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(
		`<table class="wikitable"><tr><td>not-a-rank</td><td>x</td><td>1999</td><td>1</td><td>2</td></tr></table>`,
	))
	require.NoError(t, err)

	_, err = ParseRankingTable(context.Background(), doc)
	require.Error(t, err)
}
