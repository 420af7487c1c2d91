package main

import (
	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/tui"
	"github.com/Veraticus/bizmetrics/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the report in an interactive terminal dashboard",
		RunE:  runDashboard,
	}

	addRangeFlags(cmd)
	cmd.Flags().Int("top", analytics.DefaultTopProducts, "number of products to rank")
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	topN, _ := cmd.Flags().GetInt("top")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return tui.Run(ctx, analytics.NewEngine(store), rangeFromFlags(cmd, cfg.Owner),
		tui.WithTopN(topN),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))))
}
