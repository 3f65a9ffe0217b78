// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkamada/scanboard/internal/config"
	"github.com/mkamada/scanboard/internal/domain"
	"github.com/mkamada/scanboard/internal/gateway"
	"github.com/mkamada/scanboard/internal/observability"
	"github.com/mkamada/scanboard/internal/usecase"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Aggregates scan results and outputs the dashboard view as JSON",
	Long: `Fetches repositories, custom scans, and the security-overview metrics from
the backend, runs the aggregation over the selected time window and
repository, and prints the normalized dashboard data as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		cfgPath, _ := cmd.InheritedFlags().GetString("config")

		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if verbose {
			cfg.Logger.Level = "debug"
		}
		logger := observability.NewLogger(cfg.Logger)
		defer logger.Sync() //nolint:errcheck

		windowStr, _ := cmd.Flags().GetString("window")
		window, err := domain.ParseTimeFilter(windowStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --window value: %v\n", err)
			os.Exit(1)
		}
		repoSelector, _ := cmd.Flags().GetString("repository")

		// Inject dependencies and run the main business logic.
		client, err := gateway.NewClient(cfg.API.BaseURL, cfg.API.Token, gateway.Options{
			UserID:            cfg.API.UserID,
			Timeout:           cfg.API.Timeout,
			RequestsPerSecond: cfg.API.RequestsPerSecond,
			Burst:             cfg.API.Burst,
		}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create backend client: %v\n", err)
			os.Exit(1)
		}
		fetcher := gateway.NewDedupFetcher(client, cfg.Cache.TTL, cfg.Cache.MaxEntries)
		dashboard := usecase.NewDashboard(fetcher, logger, cfg.Debt)

		data, err := dashboard.Refresh(ctx, window, repoSelector)
		if err != nil {
			logger.Error("dashboard refresh aborted", zap.Error(err))
			os.Exit(1)
		}

		// Marshal the result into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal dashboard data to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringP("window", "w", string(domain.AllTime),
		"Time window: lastDay, lastWeek, lastMonth, last6Months, lastYear, allTime")
	dashboardCmd.Flags().StringP("repository", "r", domain.AllRepositories,
		"Repository id to scope the dashboard to, or 'all'")
}
