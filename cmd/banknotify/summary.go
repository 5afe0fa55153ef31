package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/banknotify/internal/cli"
	"github.com/Veraticus/banknotify/internal/format"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the settlement summary for a day",
		Long: `Summarize the forwarded transactions of one local day: counts and won totals
per type and status, per payment method and per device, plus how many
notifications were suppressed and why.

--html prints the summary in the delivery message layout instead.`,
		RunE: runSummary,
	}

	cmd.Flags().String("date", "", "day to summarize (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("html", false, "print the delivery message instead of a table")

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dateFlag, _ := cmd.Flags().GetString("date")
	asHTML, _ := cmd.Flags().GetBool("html")

	day, err := parseDate(dateFlag)
	if err != nil {
		return err
	}
	if day.IsZero() {
		day = time.Now()
	}
	start, end := dayRange(day)

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

	summary, err := store.Summarize(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}

	out := cmd.OutOrStdout()
	if asHTML {
		fmt.Fprintln(out, format.Settlement(summary, settings.Device)) //nolint:errcheck // terminal output
		return nil
	}
	return cli.WriteSummary(out, summary)
}
