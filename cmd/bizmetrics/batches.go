package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/cli"
	"github.com/Veraticus/bizmetrics/internal/ingest"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/spf13/cobra"
)

func batchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Manage upload batches",
	}

	cmd.AddCommand(batchesListCmd())
	cmd.AddCommand(batchesShowCmd())
	cmd.AddCommand(batchesDeleteCmd())

	return cmd
}

func batchesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upload batches, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			batches, err := ingest.NewService(store, nil).ListBatches(cmd.Context(), cfg.Owner)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, batches)
			}
			if len(batches) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No batches imported yet"))
				return nil
			}

			table := cli.NewTable("ID", "File", "Status", "Sales", "Revenue", "Imported").AlignRight(3, 4)
			for _, b := range batches {
				table.AddRow(b.ID, b.FileName, string(b.Status), strconv.Itoa(b.RecordCount),
					analysis.FormatBRL(b.TotalRevenue), b.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			fmt.Fprintln(out, table.Render())
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print batches as JSON")
	return cmd
}

func batchesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show one upload batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			batch, err := ingest.NewService(store, nil).GetBatch(cmd.Context(), cfg.Owner, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Batch "+batch.ID, describeBatch(batch)))
			return nil
		},
	}
}

func batchesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <batch-id>",
		Short: "Delete a batch and every sale it created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			yes, _ := cmd.Flags().GetBool("yes")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := ingest.NewService(store, nil)
			batch, err := svc.GetBatch(ctx, cfg.Owner, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintln(out, cli.RenderBox("Batch "+batch.ID, describeBatch(batch)))
				ok, err := cli.NewNonBlockingReader(cmd.InOrStdin()).Confirm(ctx, out, "Delete this batch and its sales?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Nothing deleted"))
					return nil
				}
			}

			deleted, err := svc.DeleteBatch(ctx, cfg.Owner, batch.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted batch %s and %d sales", batch.ID, deleted)))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func describeBatch(b *model.UploadBatch) string {
	content := fmt.Sprintf("File: %s\nStatus: %s\nSales: %d\nRevenue: %s\nImported: %s",
		b.FileName, b.Status, b.RecordCount, analysis.FormatBRL(b.TotalRevenue),
		b.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if b.ErrorDetail != "" {
		content += "\nError: " + b.ErrorDetail
	}
	return content
}
