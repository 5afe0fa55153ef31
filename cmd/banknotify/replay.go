package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/banknotify/internal/cli"
	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/dedup"
	"github.com/Veraticus/banknotify/internal/engine"
	"github.com/Veraticus/banknotify/internal/service"
	"github.com/Veraticus/banknotify/internal/smsbackup"
)

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <backup.xml>",
		Short: "Replay an SMS backup through the pipeline",
		Long: `Replay reads an SMS Backup & Restore XML file and runs every received message
through the pipeline in chronological order. Each message's own timestamp drives
the duplicate filter, so replayed bursts deduplicate the way they did live.

SMS detection is always on for a replay.`,
		Args: cobra.ExactArgs(1),
		RunE: runReplay,
	}

	cmd.Flags().String("sender", "", "only replay messages from this sender address")
	cmd.Flags().String("from", "", "only replay messages received on or after this date (YYYY-MM-DD)")
	cmd.Flags().Bool("save", false, "record every verdict in the history log")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	sender, _ := cmd.Flags().GetString("sender")
	fromFlag, _ := cmd.Flags().GetString("from")
	save, _ := cmd.Flags().GetBool("save")

	from, err := parseDate(fromFlag)
	if err != nil {
		return err
	}

	messages, err := smsbackup.ReadFile(args[0], smsbackup.Filter{Sender: sender, From: from})
	if err != nil {
		if errors.Is(err, common.ErrInvalidBackup) {
			return common.NewUserError(fmt.Sprintf("%s is not an SMS backup file", args[0]), err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if len(messages) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No messages to replay.")) //nolint:errcheck // terminal output
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	settings.Detection.SMS = true

	var recorder service.Recorder
	if save {
		store, storeErr := initStorage(cmd.Context(), settings)
		if storeErr != nil {
			return fmt.Errorf("failed to initialize storage: %w", storeErr)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Error("failed to close storage", "error", closeErr)
			}
		}()
		recorder = store
	}

	var current time.Time
	pipeline, err := newPipeline(settings, recorder,
		engine.WithDedupOptions(dedup.WithClock(func() time.Time { return current })))
	if err != nil {
		return err
	}

	progress := cli.NewReplayProgress(out, len(messages))
	handler := cli.NewInterruptHandler(out)
	ctx := handler.HandleInterrupts(cmd.Context(), progress.Status)

	for _, m := range messages {
		if ctx.Err() != nil {
			break
		}
		current = m.ReceivedAt
		decision, processErr := pipeline.ProcessSMS(ctx, m.Address, m.Body, m.ReceivedAt)
		progress.Record(decision.Verdict, processErr)
	}

	fmt.Fprintln(out, progress.Summary()) //nolint:errcheck // terminal output
	if handler.WasInterrupted() {
		return context.Canceled
	}
	return nil
}
