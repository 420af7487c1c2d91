package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/cli"
	"github.com/Veraticus/bizmetrics/internal/config"
	"github.com/Veraticus/bizmetrics/internal/llm"
	"github.com/Veraticus/bizmetrics/internal/storage"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Write a plain-language summary of a period",
		Long: `Ask the configured language model to summarize the sales of a period.

The result is cached: asking again while the data is unchanged returns the
stored text without calling the model. Use --refresh to force a new summary.`,
		RunE: runAnalyze,
	}

	cmd.Flags().String("from", "", "first sale date to include (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last sale date to include (YYYY-MM-DD)")
	cmd.Flags().Bool("refresh", false, "Generate a new summary even if one is cached")
	cmd.Flags().Bool("json", false, "Print the result as JSON")

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous summaries, newest first",
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", analysis.DefaultHistoryLimit, "number of summaries to show")
	cmd.Flags().Bool("json", false, "Print the summaries as JSON")

	return cmd
}

// newAnalysisService wires the analysis service; the returned func releases the LLM client.
func newAnalysisService(cmd *cobra.Command, cfg *config.Config, store *storage.SQLiteStorage) (*analysis.Service, func(), error) {
	client, err := llm.NewClient(cmd.Context(), cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	release := func() {
		if err := llm.Close(client); err != nil {
			slog.Warn("Failed to release LLM client", "error", err)
		}
	}

	svc, err := analysis.NewService(analysis.Deps{
		Store:     store,
		Summaries: analytics.NewEngine(store),
		LLMClient: client,
	}, analysis.WithMaxTokens(cfg.LLM.MaxTokens))
	if err != nil {
		release()
		return nil, nil, err
	}
	return svc, release, nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	refresh, _ := cmd.Flags().GetBool("refresh")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cli.NewInterruptHandler(cmd.ErrOrStderr()).HandleInterrupts(cmd.Context(), "Analysis")

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc, release, err := newAnalysisService(cmd, cfg, store)
	if err != nil {
		return err
	}
	defer release()

	result, err := svc.Analyze(ctx, analysis.Request{
		OwnerID:      cfg.Owner,
		DateFrom:     from,
		DateTo:       to,
		ForceRefresh: refresh,
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	printAnalysis(cmd.OutOrStdout(), result)
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
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

	results, err := analysis.History(ctx, store, cfg.Owner, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No summaries generated yet"))
		return nil
	}
	for i := range results {
		printAnalysis(out, &results[i])
	}
	return nil
}

func printAnalysis(out io.Writer, r *analysis.Result) {
	source := "generated"
	if r.Cached {
		source = "cached"
	}
	title := fmt.Sprintf("%s %s · %s · %s", cli.RobotIcon, r.GeneratedAt.Local().Format("2006-01-02 15:04"), r.Model, source)
	fmt.Fprintln(out, cli.RenderBox(title, r.Text))
	fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("tokens: %d in, %d out", r.TokenUsage.Input, r.TokenUsage.Output)))
}
