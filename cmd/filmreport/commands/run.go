package commands

import (
	"fmt"
	"log/slog"
	"time"

	"filmreport/lib/telemetry"
	"filmreport/services/report"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var flagPerfStats bool

func init() {
	runCmd.Flags().BoolVar(&flagPerfStats, "perf-stats", false, "record process cpu/memory gauges during the run")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the whole pipeline and render the report document.",
	Run: func(cmd *cobra.Command, args []string) {
		service, config, cleanup := setup(cmd.Context())
		defer cleanup()

		if flagPerfStats {
			telemetry.InstrumentPerfStats(cmd.Context(), time.Second*30)
		}

		result, err := service.Run(cmd.Context())
		if err != nil {
			fatal("pipeline failed", err)
		}

		reportPath, err := report.WriteReport(config.OutputDir, result)
		if err != nil {
			fatal("failed to write report", err)
		}
		slog.Info("report written", "path", reportPath)

		printGenres(result.Analysis.GenreCounts)
		printRuntimeTest(result.Analysis)
		if len(result.Failures) > 0 {
			printFailures(result.Failures)
		}
	},
}

func printGenres(counts []report.GenreCount) {
	t := newTable()
	t.AppendHeader(table.Row{"Genre", "Films"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Genre, c.Count})
	}
	t.Render()
}

func printRuntimeTest(analysis report.Analysis) {
	test := analysis.RuntimeTest

	t := newTable()
	t.SetTitle(fmt.Sprintf(
		"Welch t-test: runtime of %s (%d films) vs rest (%d films)",
		analysis.SplitGenre, analysis.InGenreCount, analysis.OutGenreCount,
	))
	t.AppendRow(table.Row{"statistic", fmt.Sprintf("%.3f", test.T)})
	t.AppendRow(table.Row{"degrees of freedom", fmt.Sprintf("%.1f", test.DF)})
	t.AppendRow(table.Row{"two-sided p-value", fmt.Sprintf("%.4f", test.P)})
	t.AppendRow(table.Row{"mean difference", fmt.Sprintf("%.1f min", test.MeanDiff)})
	t.AppendRow(table.Row{
		fmt.Sprintf("%.0f%% interval", test.Confidence*100),
		fmt.Sprintf("%.1f to %.1f min", test.CILow, test.CIHigh),
	})
	t.Render()
}

func printFailures(failures []report.RowFailure) {
	t := newTable()
	t.AppendHeader(table.Row{"Rank", "Title", "Error"})
	for _, f := range failures {
		t.AppendRow(table.Row{f.Rank, f.Title, f.Err.Error()})
	}
	t.Render()
}
