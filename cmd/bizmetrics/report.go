package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/cli"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show revenue indicators",
		Long: `Show the headline indicators of a period together with revenue per day,
the best selling products and the distribution over the days of the week.`,
		RunE: runReport,
	}

	addRangeFlags(cmd)
	cmd.Flags().Int("top", analytics.DefaultTopProducts, "number of products to rank")
	cmd.Flags().Bool("json", false, "Print the report as JSON")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	topN, _ := cmd.Flags().GetInt("top")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), summary)
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func printSummary(out io.Writer, s *analytics.Summary) {
	k := s.KPIs
	content := fmt.Sprintf("Revenue: %s\nOrders: %d\nAverage ticket: %s\nActive days: %d\nOrders per day: %s\nTop product: %s (%d orders, %s)",
		analysis.FormatBRL(k.TotalRevenue), k.OrderCount, analysis.FormatBRL(k.AverageOrderValue),
		k.ActiveDays, k.AverageOrdersPerDay.StringFixed(1),
		k.TopProduct.Name, k.TopProduct.Quantity, analysis.FormatBRL(k.TopProduct.Revenue))
	fmt.Fprintln(out, cli.RenderBox("Indicators", content))

	daily := cli.NewTable("Date", "Revenue", "Orders").AlignRight(1, 2)
	for _, d := range s.DailyRevenue {
		daily.AddRow(analysis.FormatDate(d.Date), analysis.FormatBRL(d.Revenue), strconv.Itoa(d.Orders))
	}
	fmt.Fprintln(out, cli.FormatTitle("Daily revenue"))
	fmt.Fprintln(out, daily.Render())

	top := cli.NewTable("#", "Product", "Revenue", "Orders").AlignRight(0, 2, 3)
	for i, p := range s.TopProducts {
		top.AddRow(strconv.Itoa(i+1), p.Name, analysis.FormatBRL(p.Revenue), strconv.Itoa(p.Orders))
	}
	fmt.Fprintln(out, cli.FormatTitle("Top products"))
	fmt.Fprintln(out, top.Render())

	weekdays := cli.NewTable("Weekday", "Revenue", "Orders").AlignRight(1, 2)
	for _, w := range s.Weekdays {
		weekdays.AddRow(w.Name, analysis.FormatBRL(w.Revenue), strconv.Itoa(w.Orders))
	}
	fmt.Fprintln(out, cli.FormatTitle("Revenue by weekday"))
	fmt.Fprintln(out, weekdays.Render())
}
