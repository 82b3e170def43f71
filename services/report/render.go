package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteReport renders the analysis into `dir`: charts.html holds the
// two interactive scatter plots, report.html is the narrative
// document embedding them. Returns the path of the document.
func WriteReport(dir string, result RunResult) (string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}

	chartsPath := filepath.Join(dir, "charts.html")
	f, err := os.Create(chartsPath)
	if err != nil {
		return "", err
	}
	err = buildCharts(result).Render(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("render charts: %w", err)
	}

	reportPath := filepath.Join(dir, "report.html")
	f, err = os.Create(reportPath)
	if err != nil {
		return "", err
	}
	err = reportTemplate.Execute(f, newReportData(result))
	f.Close()
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}

	return reportPath, nil
}

func buildCharts(result RunResult) *components.Page {
	ratingTickets := charts.NewScatter()
	ratingTickets.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Rating vs tickets sold"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item", Formatter: "{b}"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Rating", Type: "value", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Tickets sold", Type: "value", Scale: true}),
	)
	var ticketData []opts.ScatterData
	for _, r := range result.Records {
		ticketData = append(ticketData, opts.ScatterData{
			Name:  fmt.Sprintf("%s (%d)", r.Title, r.Year),
			Value: []interface{}{r.Rating, r.TicketsSold},
		})
	}
	ratingTickets.AddSeries("films", ticketData)

	ratingRank := charts.NewScatter()
	ratingRank.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Rating vs rank"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item", Formatter: "{b}"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Rank", Type: "value", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Rating", Type: "value", Scale: true}),
	)
	var rankData []opts.ScatterData
	for _, r := range result.Records {
		rankData = append(rankData, opts.ScatterData{
			Name:  fmt.Sprintf("%s (%d)", r.Title, r.Year),
			Value: []interface{}{r.Rank, r.Rating},
		})
	}
	ratingRank.AddSeries("films", rankData)

	if len(result.Records) >= 2 {
		trend := result.Analysis.RatingRankTrend
		first := float64(result.Records[0].Rank)
		last := float64(result.Records[len(result.Records)-1].Rank)

		line := charts.NewLine()
		line.AddSeries("trend", []opts.LineData{
			{Value: []interface{}{first, trend.At(first)}},
			{Value: []interface{}{last, trend.At(last)}},
		})
		ratingRank.Overlap(line)
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(ratingTickets, ratingRank)
	return page
}

type histogramBar struct {
	X      int
	Y      int
	Width  int
	Height int
	Label  string
	Count  int
}

type reportData struct {
	RowCount      int
	FailureCount  int
	Failures      []RowFailure
	Genres        []GenreCount
	Analysis      Analysis
	ConfidencePct int
	Bars          []histogramBar
	SvgWidth      int
	SvgHeight     int
}

const (
	histBarWidth  = 56
	histBarGap    = 6
	histMaxHeight = 220
	histBase      = 250
)

func newReportData(result RunResult) reportData {
	data := reportData{
		RowCount:      len(result.Records),
		FailureCount:  len(result.Failures),
		Failures:      result.Failures,
		Genres:        result.Analysis.GenreCounts,
		Analysis:      result.Analysis,
		ConfidencePct: int(result.Analysis.RuntimeTest.Confidence*100 + 0.5),
	}

	maxCount := 1
	for _, b := range result.Analysis.RuntimeBins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for i, b := range result.Analysis.RuntimeBins {
		height := b.Count * histMaxHeight / maxCount
		data.Bars = append(data.Bars, histogramBar{
			X:      i * (histBarWidth + histBarGap),
			Y:      histBase - height,
			Width:  histBarWidth,
			Height: height,
			Label:  fmt.Sprintf("%.0f–%.0f", b.Low, b.High),
			Count:  b.Count,
		})
	}
	data.SvgWidth = len(data.Bars) * (histBarWidth + histBarGap)
	data.SvgHeight = histBase + 30
	return data
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Blockbuster runtimes</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.25em 0.75em; text-align: left; }
iframe { border: none; width: 100%; height: 560px; }
.bar { fill: #5470c6; }
.bar-label { font-size: 10px; }
</style>
</head>
<body>
<h1>One hundred blockbusters, by the numbers</h1>

<p>The table below started life as the ranking of the {{.RowCount}} films
that sold the most tickets, scraped from its source page and cleaned of
currency markup. Each row was then enriched from a movie database search:
rating score, content certificate, runtime and genre tags.</p>

{{if .FailureCount}}
<p><strong>{{.FailureCount}} row(s) failed enrichment</strong> and are
excluded from everything below. The failures are listed at the end of
this document rather than silently dropped.</p>
{{end}}

<h2>Ratings</h2>
<p>Two interactive views of the enriched table: rating against tickets
sold, and rating against rank with a fitted linear trend
(slope {{printf "%.4f" .Analysis.RatingRankTrend.Slope}},
R&sup2; {{printf "%.3f" .Analysis.RatingRankTrend.R2}}). Hover a point
for the film behind it.</p>
<iframe src="charts.html"></iframe>

<h2>Runtime distribution</h2>
<svg width="{{.SvgWidth}}" height="{{.SvgHeight}}" role="img">
{{range .Bars}}  <rect class="bar" x="{{.X}}" y="{{.Y}}" width="{{.Width}}" height="{{.Height}}"><title>{{.Label}} min: {{.Count}}</title></rect>
  <text class="bar-label" x="{{.X}}" y="268">{{.Label}}</text>
{{end}}</svg>

<h2>Genre frequency</h2>
<table>
<tr><th>Genre</th><th>Films</th></tr>
{{range .Genres}}<tr><td>{{.Genre}}</td><td>{{.Count}}</td></tr>
{{end}}</table>

<h2>Do {{.Analysis.SplitGenre}} films run longer?</h2>
<p>Welch two-sample t-test on runtime, {{.Analysis.SplitGenre}}-tagged
films ({{.Analysis.InGenreCount}}) against the rest
({{.Analysis.OutGenreCount}}):</p>
<table>
<tr><th>statistic</th><td>{{printf "%.3f" .Analysis.RuntimeTest.T}}</td></tr>
<tr><th>degrees of freedom</th><td>{{printf "%.1f" .Analysis.RuntimeTest.DF}}</td></tr>
<tr><th>two-sided p-value</th><td>{{printf "%.4f" .Analysis.RuntimeTest.P}}</td></tr>
<tr><th>mean difference</th><td>{{printf "%.1f" .Analysis.RuntimeTest.MeanDiff}} min</td></tr>
<tr><th>{{.ConfidencePct}}% interval</th><td>{{printf "%.1f" .Analysis.RuntimeTest.CILow}} to {{printf "%.1f" .Analysis.RuntimeTest.CIHigh}} min</td></tr>
</table>

{{if .Failures}}
<h2>Enrichment failures</h2>
<table>
<tr><th>Rank</th><th>Title</th><th>Error</th></tr>
{{range .Failures}}<tr><td>{{.Rank}}</td><td>{{.Title}}</td><td>{{.Err}}</td></tr>
{{end}}</table>
{{end}}

</body>
</html>
`))
