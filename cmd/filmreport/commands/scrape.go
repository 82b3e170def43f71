package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch and clean the ranking table without enriching it.",
	Run: func(cmd *cobra.Command, args []string) {
		service, _, cleanup := setup(cmd.Context())
		defer cleanup()

		records, err := service.Acquire(cmd.Context())
		if err != nil {
			fatal("failed to acquire ranking table", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Rank", "Title", "Year", "Tickets sold", "Adjusted gross"})
		for _, r := range records {
			t.AppendRow(table.Row{
				r.Rank, r.Title, r.Year, r.TicketsSold,
				fmt.Sprintf("$%.0f", r.AdjustedGross),
			})
		}
		t.Render()
	},
}
