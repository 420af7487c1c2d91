package main

import (
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/cli"
	"github.com/Veraticus/bizmetrics/internal/ingest"
	"github.com/Veraticus/bizmetrics/internal/service"
	"github.com/spf13/cobra"
)

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "List imported sales",
		Long: `List sales one page at a time, optionally filtered by date range, batch
and a product name substring.`,
		RunE: runSales,
	}

	addRangeFlags(cmd)
	cmd.Flags().String("product", "", "only include products whose name contains this text")
	cmd.Flags().String("sort", string(service.SortBySaleDate), "sort by sale_date, product_name or amount")
	cmd.Flags().String("order", string(service.SortDesc), "sort order (asc, desc)")
	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("limit", ingest.DefaultPageLimit, "sales per page")
	cmd.Flags().Bool("json", false, "Print the page as JSON")

	return cmd
}

func runSales(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r := rangeFromFlags(cmd, cfg.Owner)
	product, _ := cmd.Flags().GetString("product")
	sortBy, _ := cmd.Flags().GetString("sort")
	order, _ := cmd.Flags().GetString("order")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := ingest.NewService(store, nil).ListSales(ctx, ingest.SalesQuery{
		OwnerID:  r.OwnerID,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		BatchID:  r.BatchID,
		Product:  product,
		SortBy:   service.SalesSortField(sortBy),
		Order:    service.SortOrder(order),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, result)
	}
	if len(result.Data) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No sales match these filters"))
		return nil
	}

	table := cli.NewTable("Date", "Product", "Amount", "Batch").AlignRight(2)
	for _, s := range result.Data {
		table.AddRow(analysis.FormatDate(s.Date), s.ProductName, analysis.FormatBRL(s.Amount), s.BatchID)
	}
	fmt.Fprintln(out, table.Render())

	p := result.Pagination
	fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("Page %d of %d (%d sales)", p.Page, p.TotalPages, p.TotalRecords)))
	return nil
}
