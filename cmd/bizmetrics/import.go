package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/cli"
	"github.com/Veraticus/bizmetrics/internal/ingest"
	"github.com/Veraticus/bizmetrics/internal/salescsv"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV file of sales",
		Long: `Import sales from a CSV file with date, product and amount columns.

Dates may be YYYY-MM-DD or DD/MM/YYYY, amounts may use a decimal comma, and
either comma or semicolon separates fields. Invalid and duplicate lines are
skipped and reported; the valid ones are stored as a single upload batch.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("no-progress", false, "Do not draw a progress bar")
	cmd.Flags().Bool("json", false, "Print the result as JSON")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	ctx := cli.NewInterruptHandler(cmd.ErrOrStderr()).HandleInterrupts(cmd.Context(), "Import")

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	opts := []ingest.Option{ingest.WithChunkSize(cfg.Ingest.ChunkSize)}
	if !noProgress && !asJSON {
		opts = append(opts, ingest.WithProgress(cli.NewImportProgress(cmd.ErrOrStderr()).Update))
	}
	svc := ingest.NewService(store, salescsv.NewParser(cfg.Ingest.MaxCSVLines), opts...)

	result, err := svc.Ingest(ctx, cfg.Owner, string(data), filepath.Base(path))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, result)
	}

	content := fmt.Sprintf("Batch: %s\nImported: %d\nRejected: %d\nRevenue: %s",
		result.BatchID, result.RecordsImported, result.RecordsRejected, analysis.FormatBRL(result.RevenueTotal))
	fmt.Fprintln(out, cli.RenderBox("Import complete", content))

	if len(result.RejectedSample) > 0 {
		table := cli.NewTable("Line", "Reason", "Content").AlignRight(0)
		for _, r := range result.RejectedSample {
			table.AddRow(strconv.Itoa(r.Line), r.Reason.Description(), r.Raw)
		}
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d lines were skipped", result.RecordsRejected)))
		fmt.Fprintln(out, table.Render())
	}
	return nil
}
