package report

import (
	"fmt"
	"strconv"
	"strings"

	"filmreport/lib/scrapers/wikipedia"
	"filmreport/lib/textutil"
)

// annotatedCells lists rows whose money cell carries an inline
// annotation after the amount ("$1,668,979,715 (plus 1997 reissue)").
// For these the cell is split on whitespace and only the leading
// token is parsed. This is a fixed patch for a fixed dataset, not a
// general parser.
var annotatedCells = map[string]struct{}{
	"Star Wars": {},
}

func cleanNumericCell(title, cell string) string {
	cell = textutil.StripFootnotes(cell)
	cell = strings.Trim(cell, " \t\n")
	if _, ok := annotatedCells[title]; ok {
		if idx := strings.IndexAny(cell, " \t"); idx > 0 {
			cell = cell[:idx]
		}
	}
	return cell
}

func parseTickets(title, cell string) (int64, error) {
	cleaned := cleanNumericCell(title, cell)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("tickets sold %q: %w", cell, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("tickets sold %q: negative value", cell)
	}
	return n, nil
}

func parseGross(title, cell string) (float64, error) {
	cleaned := cleanNumericCell(title, cell)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("adjusted gross %q: %w", cell, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("adjusted gross %q: negative value", cell)
	}
	return v, nil
}

// CleanFilms coerces the two raw numeric columns and attaches the
// query token for each title.
func CleanFilms(films []wikipedia.Film) ([]FilmRecord, error) {
	records := make([]FilmRecord, 0, len(films))
	for _, f := range films {
		tickets, err := parseTickets(f.Title, f.TicketsSold)
		if err != nil {
			return nil, fmt.Errorf("%q (rank %d): %w", f.Title, f.Rank, err)
		}
		gross, err := parseGross(f.Title, f.AdjustedGross)
		if err != nil {
			return nil, fmt.Errorf("%q (rank %d): %w", f.Title, f.Rank, err)
		}

		records = append(records, FilmRecord{
			Rank:          f.Rank,
			Title:         f.Title,
			Year:          f.Year,
			TicketsSold:   tickets,
			AdjustedGross: gross,
			QueryToken:    textutil.QueryToken(f.Title),
		})
	}
	return records, nil
}
