package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string
var flagDebug bool

var rootCmd = &cobra.Command{
	Use:   "filmreport",
	Short: "filmreport scrapes the 100 highest-grossing films, enriches them from a movie database and renders an analysis report.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "config.json5", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
