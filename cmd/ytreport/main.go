// Package main provides the ytreport CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kjohnson/ytreport/internal/app"
	"github.com/kjohnson/ytreport/internal/config"
	"github.com/kjohnson/ytreport/internal/service/auth"
	"github.com/kjohnson/ytreport/internal/util"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Flags

	rootCmd := &cobra.Command{
		Use:           "ytreport",
		Short:         "Generate a monthly YouTube analytics report into Google Sheets",
		Long:          "ytreport pulls per-video and aggregate channel analytics for one calendar month and writes a formatted monthly report plus a 12-month trend tab into a Google Sheet.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.ChannelID, "channel_id", "", "YouTube channel ID (required)")
	rootCmd.Flags().StringVar(&flags.Month, "month", "", "Reporting month in MM/YYYY format, e.g. 09/2025 (required)")
	rootCmd.Flags().StringVar(&flags.SheetURL, "sheet_url", "", "Google Sheets URL to write the report into (required)")
	rootCmd.Flags().StringVar(&flags.Credentials, "credentials", "", "Path to the OAuth client credentials file")
	rootCmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	_ = rootCmd.MarkFlagRequired("channel_id")
	_ = rootCmd.MarkFlagRequired("month")
	_ = rootCmd.MarkFlagRequired("sheet_url")

	rootCmd.AddCommand(newAuthCmd())

	return rootCmd
}

func runReport(ctx context.Context, flags config.Flags) error {
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return err
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Printf("Error: failed to initialize logger: %v\n", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble services", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return err
	}
	defer container.Close()

	if err := app.Run(ctx, container); err != nil {
		logger.Error("Report generation failed", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return err
	}

	fmt.Printf("YouTube Analytics Report for %s generated successfully.\n", cfg.Month)
	fmt.Printf("Report is available at: %s\n", cfg.SheetURL)
	return nil
}

// newAuthCmd runs the OAuth consent flow once, so the report itself can run
// unattended afterwards.
func newAuthCmd() *cobra.Command {
	var credentials string
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Run the OAuth consent flow and persist the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := util.NewLogger("info", "")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			provider, err := auth.NewProvider(credentials, tokenFile, logger)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return err
			}
			if err := provider.Authorize(cmd.Context()); err != nil {
				fmt.Printf("Error: %v\n", err)
				return err
			}
			fmt.Println("Authorization successful, token saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&credentials, "credentials", "credentials.json", "Path to the OAuth client credentials file")
	cmd.Flags().StringVar(&tokenFile, "token", "token.json", "Path to persist the OAuth token")

	return cmd
}
