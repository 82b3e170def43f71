package imdb

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"filmreport/lib/htmlutil"
	"filmreport/lib/restyutil"
	"filmreport/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/imdb")

// SearchResult is one entry of a title search listing. Fields that the
// listing omits are left at their zero value, it is the caller's job
// to decide whether that's fatal.
type SearchResult struct {
	Title          string
	Rating         float64
	Certificate    string
	RuntimeMinutes int
	Genres         []string
}

type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// optional transcript sink for debugging live markup
	Transcripts restyutil.Output
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

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

	telemetry.InstrumentResty(client, "scrapers/imdb/http")
	restyutil.DumpTranscripts(client, opts.Transcripts)

	return &Client{Http: client}, nil
}

// SearchTitle queries the title search endpoint with an
// already-encoded title token, bounded to a year range around the
// release year (the lookup target dates some films a year off from
// the source page).
func (c *Client) SearchTitle(ctx context.Context, titleToken string, year int) ([]SearchResult, error) {
	ctx, span := tracer.Start(ctx, "SearchTitle")
	defer span.End()
	span.SetAttributes(
		attribute.String("title", titleToken),
		attribute.Int("year", year),
	)

	// titleToken is pre-encoded, splicing it through SetQueryParam
	// would encode it a second time
	path := fmt.Sprintf(
		"/search/title/?title=%s&release_date=%d-01-01,%d-12-31",
		titleToken, year-1, year+1,
	)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch search listing")
		return nil, err
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("unexpected status %d searching for %q", res.StatusCode(), titleToken)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	return ParseSearchListing(doc), nil
}

// ParseSearchListing extracts results from search listing markup by
// the listing's structural class markers.
func ParseSearchListing(doc *goquery.Document) []SearchResult {
	var results []SearchResult

	doc.Find("div.lister-item-content").Each(func(_ int, item *goquery.Selection) {
		result := SearchResult{
			Title:       htmlutil.CleanText(item.Find("h3.lister-item-header a").First()),
			Certificate: htmlutil.CleanText(item.Find("span.certificate").First()),
		}

		ratingText := htmlutil.CleanText(item.Find(".ratings-imdb-rating strong").First())
		if ratingText != "" {
			rating, err := strconv.ParseFloat(ratingText, 64)
			if err == nil {
				result.Rating = rating
			}
		}

		runtimeText := htmlutil.CleanText(item.Find("span.runtime").First())
		runtimeText = strings.TrimSuffix(runtimeText, " min")
		if runtimeText != "" {
			minutes, err := strconv.Atoi(runtimeText)
			if err == nil {
				result.RuntimeMinutes = minutes
			}
		}

		genreText := htmlutil.CleanText(item.Find("span.genre").First())
		if genreText != "" {
			for _, g := range strings.Split(genreText, ",") {
				g = strings.Trim(g, " \t\n")
				if g != "" {
					result.Genres = append(result.Genres, g)
				}
			}
		}

		results = append(results, result)
	})

	return results
}
