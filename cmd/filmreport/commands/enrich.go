package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(enrichCmd)
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Acquire the table and enrich every row, printing the result without rendering a report.",
	Run: func(cmd *cobra.Command, args []string) {
		service, _, cleanup := setup(cmd.Context())
		defer cleanup()

		records, err := service.Acquire(cmd.Context())
		if err != nil {
			fatal("failed to acquire ranking table", err)
		}
		outcome := service.Enrich(cmd.Context(), records)

		t := newTable()
		t.AppendHeader(table.Row{"Rank", "Title", "Rating", "Certificate", "Runtime", "Genres"})
		for _, r := range outcome.Records {
			t.AppendRow(table.Row{
				r.Rank, r.Title, r.Rating, r.Certificate,
				r.RuntimeMinutes, strings.Join(r.Genres, ", "),
			})
		}
		t.Render()

		if len(outcome.Failures) > 0 {
			printFailures(outcome.Failures)
		}
	},
}
