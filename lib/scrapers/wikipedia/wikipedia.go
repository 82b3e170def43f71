package wikipedia

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"filmreport/lib/htmlutil"
	"filmreport/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/wikipedia")

// Film is one row of the ranking table. The two money-ish columns are
// kept as raw cell text, cleaning them up is the caller's concern.
type Film struct {
	Rank          int
	Title         string
	Year          int
	TicketsSold   string
	AdjustedGross string
}

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	UserAgent string
	Timeout   time.Duration
}

func NewClient(opts ClientOptions) *Client {
	client := resty.New()

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/wikipedia/http")

	return &Client{http: client}
}

// FetchRankingTable fetches the page and parses the first wikitable on
// it into film rows. Expected columns: rank, title, year, tickets
// sold, adjusted gross.
func (c *Client) FetchRankingTable(ctx context.Context, pageUrl string) ([]Film, error) {
	ctx, span := tracer.Start(ctx, "FetchRankingTable")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageUrl))

	res, err := c.http.R().
		SetContext(ctx).
		Get(pageUrl)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, err
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("unexpected status %d fetching %s", res.StatusCode(), pageUrl)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	return ParseRankingTable(ctx, doc)
}

// ParseRankingTable extracts rows from the first `table.wikitable` in
// the document.
func ParseRankingTable(ctx context.Context, doc *goquery.Document) ([]Film, error) {
	ctx, span := tracer.Start(ctx, "ParseRankingTable")
	defer span.End()

	table := doc.Find("table.wikitable").First()
	if table.Length() == 0 {
		err := fmt.Errorf("no table matching `table.wikitable` found, page structure may have changed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "marker not found")
		return nil, err
	}

	var films []Film
	var rowErr error
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		// header rows carry th cells only
		if row.Find("td").Length() == 0 {
			return true
		}

		cells := htmlutil.CellTexts(row)
		if len(cells) < 5 {
			rowErr = fmt.Errorf("row %d: expected 5 cells, got %d", i, len(cells))
			return false
		}

		rank, err := strconv.Atoi(cells[0])
		if err != nil {
			rowErr = fmt.Errorf("row %d: bad rank %q: %w", i, cells[0], err)
			return false
		}
		year, err := strconv.Atoi(cells[2])
		if err != nil {
			rowErr = fmt.Errorf("row %d: bad year %q: %w", i, cells[2], err)
			return false
		}

		films = append(films, Film{
			Rank:          rank,
			Title:         cells[1],
			Year:          year,
			TicketsSold:   cells[3],
			AdjustedGross: cells[4],
		})
		return true
	})
	if rowErr != nil {
		span.RecordError(rowErr)
		span.SetStatus(codes.Error, "malformed table row")
		return nil, rowErr
	}

	slog.DebugContext(ctx, "parsed ranking table", "rows", len(films))
	return films, nil
}
