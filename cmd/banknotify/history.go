package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/banknotify/internal/cli"
	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List logged verdicts",
		Long: `List verdicts from the history log, newest first.

--from and --to are inclusive local dates. --verdict may be repeated.`,
		Example: `  banknotify history --from 2025-03-01 --verdict emit --verdict duplicate
  banknotify history --source com.kbstar.kbbank --limit 20`,
		RunE: runHistory,
	}

	cmd.Flags().String("from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringSlice("verdict", nil, "only show these verdicts (emit, duplicate, internal, ignored, filtered)")
	cmd.Flags().String("source", "", "only show entries from this source")
	cmd.Flags().Int("limit", 50, "maximum number of entries to show (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	filter, err := historyFilter(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := initStorage(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	entries, err := store.ListLogs(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No verdicts found.")) //nolint:errcheck // terminal output
		return nil
	}

	total, err := store.CountLogs(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}

	fmt.Fprintln(out, cli.FormatTitle("Verdict History")) //nolint:errcheck // terminal output
	if err := cli.WriteLogTable(out, entries); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("Showing %d of %d", len(entries), total))) //nolint:errcheck // terminal output
	return nil
}

func historyFilter(cmd *cobra.Command) (service.LogFilter, error) {
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	verdicts, _ := cmd.Flags().GetStringSlice("verdict")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := service.LogFilter{SourceID: source, Limit: limit}

	from, err := parseDate(fromFlag)
	if err != nil {
		return filter, err
	}
	if !from.IsZero() {
		filter.StartDate = &from
	}

	to, err := parseDate(toFlag)
	if err != nil {
		return filter, err
	}
	if !to.IsZero() {
		_, end := dayRange(to)
		filter.EndDate = &end
	}

	for _, v := range verdicts {
		filter.Verdicts = append(filter.Verdicts, model.Verdict(v))
	}
	return filter, nil
}
