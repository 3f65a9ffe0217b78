// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scanboard",
	Short: "A CLI tool to aggregate security-scan results into one dashboard view.",
	Long: `scanboard fetches repositories, custom-scan results, and advanced metrics
from the scan backend and aggregates them into a single normalized dashboard
value: security score, categorized vulnerability counts, recent activity, and
technical-debt estimates. Results can be filtered by a rolling time window
and a repository selection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}
