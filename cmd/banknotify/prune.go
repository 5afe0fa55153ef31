package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/banknotify/internal/cli"
	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/service"
)

func pruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old verdicts from the history log",
		Long: `Delete history entries received before the retention window.

The window defaults to history.retention_days; --days overrides it.`,
		RunE: runPrune,
	}

	cmd.Flags().Int("days", 0, "keep this many days of history (default: history.retention_days)")
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runPrune(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	days, _ := cmd.Flags().GetInt("days")
	yes, _ := cmd.Flags().GetBool("yes")

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if days == 0 {
		days = settings.History.RetentionDays
	}
	if days < 0 {
		return common.NewUserError(fmt.Sprintf("--days must be positive, got %d", days), nil)
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

	cutoff := time.Now().AddDate(0, 0, -days)
	out := cmd.OutOrStdout()

	count, err := store.CountLogs(ctx, service.LogFilter{EndDate: &cutoff})
	if err != nil {
		return fmt.Errorf("failed to count old entries: %w", err)
	}
	if count == 0 {
		fmt.Fprintln(out, cli.FormatInfo("Nothing to prune.")) //nolint:errcheck // terminal output
		return nil
	}

	if !yes {
		question := fmt.Sprintf("Delete %d entries received before %s?", count, cutoff.Format(dateLayout))
		ok, confirmErr := cli.NewLineReader(cmd.InOrStdin()).Confirm(ctx, out, question)
		if confirmErr != nil {
			return confirmErr
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Prune canceled.")) //nolint:errcheck // terminal output
			return nil
		}
	}

	deleted, err := store.DeleteLogsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	slog.Info("Pruned history", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %d entries", deleted))) //nolint:errcheck // terminal output
	return nil
}
