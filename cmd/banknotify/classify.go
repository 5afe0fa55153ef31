package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/banknotify/internal/cli"
	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/format"
	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Run one notification through the pipeline",
		Long: `Classify a single notification and print the verdict and the delivery message.

With --sms the source is the SMS sender address and the bank is detected from
the message body. Use --save to record the verdict in the history log.`,
		Example: `  banknotify classify --source com.kbstar.kbbank --title 입출금알림 --body "입금 50,000원 홍길동"
  banknotify classify --sms --source 15881688 --body "[KB국민] 입금 50,000원 홍길동"`,
		RunE: runClassify,
	}

	cmd.Flags().String("source", "", "app package name, or sender address with --sms")
	cmd.Flags().String("title", "", "notification title")
	cmd.Flags().String("body", "", "notification body")
	cmd.Flags().Bool("sms", false, "treat the input as an SMS")
	cmd.Flags().Bool("save", false, "record the verdict in the history log")
	cmd.Flags().Bool("test", false, "tag the delivery message as a test")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	source, _ := cmd.Flags().GetString("source")
	title, _ := cmd.Flags().GetString("title")
	body, _ := cmd.Flags().GetString("body")
	sms, _ := cmd.Flags().GetBool("sms")
	save, _ := cmd.Flags().GetBool("save")
	test, _ := cmd.Flags().GetBool("test")

	if title == "" && body == "" {
		return common.NewUserError("Nothing to classify: pass --title and/or --body", nil)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var recorder service.Recorder
	if save {
		store, storeErr := initStorage(ctx, settings)
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

	pipeline, err := newPipeline(settings, recorder)
	if err != nil {
		return err
	}

	now := time.Now()
	var decision model.Decision
	if sms {
		decision, err = pipeline.ProcessSMS(ctx, source, body, now)
	} else {
		decision, err = pipeline.Process(ctx, model.Notification{
			ReceivedAt: now,
			SourceID:   source,
			Title:      title,
			Body:       body,
			Channel:    model.ChannelPush,
		})
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderDecision(decision)) //nolint:errcheck // terminal output

	if decision.Record != nil && decision.Verdict == model.VerdictEmit {
		fmt.Fprintln(out)                                                         //nolint:errcheck // terminal output
		fmt.Fprintln(out, cli.SubtleStyle.Render("Message:"))                     //nolint:errcheck // terminal output
		fmt.Fprintln(out, format.Message(decision.Record, settings.Device, test)) //nolint:errcheck // terminal output
	}
	if save {
		fmt.Fprintln(out, cli.FormatInfo("History log: "+settings.Database.Path)) //nolint:errcheck // terminal output
	}

	return nil
}
