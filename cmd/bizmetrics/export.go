package main

import (
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/cli"
	"github.com/Veraticus/bizmetrics/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a period's report to Google Sheets",
		Long: `Write the indicators, daily revenue, top products and weekday distribution
of a period to a Google Sheets spreadsheet.

Authenticate with a service account (sheets.service_account_path) or an
OAuth2 refresh token (sheets.client_id, sheets.client_secret and
sheets.refresh_token). Without sheets.spreadsheet_id a new spreadsheet is
created.`,
		RunE: runExport,
	}

	addRangeFlags(cmd)
	cmd.Flags().Int("top", analytics.DefaultTopProducts, "number of products to rank")
	cmd.Flags().String("spreadsheet", "", "spreadsheet ID to overwrite")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	topN, _ := cmd.Flags().GetInt("top")
	spreadsheetID, _ := cmd.Flags().GetString("spreadsheet")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if spreadsheetID != "" {
		cfg.Sheets.SpreadsheetID = spreadsheetID
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	summary, err := analytics.NewEngine(store).Summary(ctx, rangeFromFlags(cmd, cfg.Owner), topN)
	if err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, cfg.Sheets, nil)
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	id, err := writer.Write(ctx, summary)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Exported to https://docs.google.com/spreadsheets/d/"+id))
	return nil
}
