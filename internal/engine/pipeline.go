// Package engine runs notifications through classification, refinement and
// the duplicate and internal-transfer filters, and records every verdict.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/banknotify/internal/classification"
	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/config"
	"github.com/Veraticus/banknotify/internal/dedup"
	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/registry"
	"github.com/Veraticus/banknotify/internal/service"
	"github.com/Veraticus/banknotify/internal/transfer"
)

// Reasons attached to decisions the pipeline itself makes.
const (
	ReasonChannelDisabled = "감지 꺼짐: "
	ReasonUnmonitored     = "미등록 발신처"
	ReasonUnknownSMS      = "미등록 SMS 발신처"
	ReasonTypeDisabled    = "유형 꺼짐: "
	ReasonMethodDisabled  = "결제수단 꺼짐: "
	ReasonDuplicatePrefix = "중복: "
	ReasonInternalPrefix  = "내부거래: "
)

// SMSSourcePrefix marks source IDs built from an SMS sender address.
const SMSSourcePrefix = "sms:"

// Pipeline is safe for concurrent use; its only mutable state is the dedup
// store and whatever the recorder holds.
type Pipeline struct {
	registry   *registry.Registry
	classifier *classification.Classifier
	refiner    *classification.Refiner
	dedup      *dedup.Store
	recorder   service.Recorder
	settings   config.Settings
	retry      service.RetryOptions
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	recorder  service.Recorder
	dedupOpts []dedup.Option
	retry     service.RetryOptions
}

// WithRecorder persists every recorded decision through r.
func WithRecorder(r service.Recorder) Option {
	return func(o *pipelineOptions) { o.recorder = r }
}

// WithDedupOptions passes extra options to the duplicate filter, after the
// ones derived from settings.
func WithDedupOptions(opts ...dedup.Option) Option {
	return func(o *pipelineOptions) { o.dedupOpts = append(o.dedupOpts, opts...) }
}

// WithRetry overrides how recorder writes are retried.
func WithRetry(opts service.RetryOptions) Option {
	return func(o *pipelineOptions) { o.retry = opts }
}

// New builds a pipeline over a validated registry.
func New(reg *registry.Registry, settings config.Settings, opts ...Option) *Pipeline {
	o := pipelineOptions{retry: common.DefaultRetryOptions()}
	for _, opt := range opts {
		opt(&o)
	}

	dedupOpts := []dedup.Option{
		dedup.WithExactWindow(settings.Dedup.ExactWindow),
		dedup.WithFuzzyWindow(settings.Dedup.FuzzyWindow),
		dedup.WithMaxEntries(settings.Dedup.MaxEntries),
		dedup.WithEcosystemPairs(reg.IsEcosystemPair),
	}

	return &Pipeline{
		registry:   reg,
		classifier: classification.New(reg),
		refiner:    classification.NewRefiner(),
		dedup:      dedup.New(append(dedupOpts, o.dedupOpts...)...),
		recorder:   o.recorder,
		settings:   settings,
		retry:      o.retry,
	}
}

// Dedup exposes the duplicate filter for diagnostics.
func (p *Pipeline) Dedup() *dedup.Store {
	return p.dedup
}

// Settings returns the settings the pipeline was built with.
func (p *Pipeline) Settings() config.Settings {
	return p.settings
}

// Process runs one push notification through the pipeline. The returned
// error is non-nil only when recording the decision failed; the decision is
// valid either way.
func (p *Pipeline) Process(ctx context.Context, n model.Notification) (model.Decision, error) {
	if n.Channel == "" {
		n.Channel = model.ChannelPush
	}
	if !p.settings.ChannelEnabled(n.Channel) {
		return model.Decision{Verdict: model.VerdictFiltered, Reason: ReasonChannelDisabled + string(n.Channel)}, nil
	}
	if !p.classifier.IsMonitoredSource(n.SourceID) {
		common.LogDebug("Skipping unmonitored source", common.Fields{"source": n.SourceID})
		return model.Decision{Verdict: model.VerdictIgnored, Reason: ReasonUnmonitored}, nil
	}
	return p.process(ctx, n, "")
}

// ProcessSMS attributes an SMS body to a bank by its sender patterns and runs
// it through the pipeline under the source "sms:<sender>".
func (p *Pipeline) ProcessSMS(ctx context.Context, sender, body string, receivedAt time.Time) (model.Decision, error) {
	if !p.settings.ChannelEnabled(model.ChannelSMS) {
		return model.Decision{Verdict: model.VerdictFiltered, Reason: ReasonChannelDisabled + string(model.ChannelSMS)}, nil
	}
	bank, ok := p.registry.DetectSMSBank(body)
	if !ok {
		common.LogDebug("Skipping unrecognised SMS", common.Fields{"sender": sender})
		return model.Decision{Verdict: model.VerdictIgnored, Reason: ReasonUnknownSMS}, nil
	}

	n := model.Notification{
		ReceivedAt: receivedAt,
		SourceID:   SMSSourcePrefix + strings.TrimSpace(sender),
		Body:       body,
		Channel:    model.ChannelSMS,
	}
	return p.process(ctx, n, bank)
}

func (p *Pipeline) process(ctx context.Context, n model.Notification, bank string) (model.Decision, error) {
	if n.ReceivedAt.IsZero() {
		n.ReceivedAt = time.Now()
	}

	out := p.classifier.Classify(classification.Input{
		Timestamp:                n.ReceivedAt,
		SourceID:                 n.SourceID,
		Title:                    n.Title,
		Body:                     n.Body,
		Channel:                  n.Channel,
		BankName:                 bank,
		EnabledDepositMethods:    p.settings.Methods.Deposit,
		EnabledWithdrawalMethods: p.settings.Methods.Withdrawal,
	})

	switch out.Kind {
	case classification.OutcomeDropped:
		common.LogDebug("Dropped notification", common.Fields{"source": n.SourceID, "reason": out.Reason})
		return model.Decision{Verdict: model.VerdictDropped, Reason: out.Reason}, nil
	case classification.OutcomeIgnored:
		return p.record(ctx, n, bank, model.Decision{Verdict: model.VerdictIgnored, Reason: out.Reason})
	}

	decision := p.filter(*out.Record)
	return p.record(ctx, n, bank, decision)
}

// filter applies the settings toggles and the duplicate and internal-transfer
// filters to a classified record.
func (p *Pipeline) filter(record model.TransactionRecord) model.Decision {
	if !p.settings.TypeEnabled(record.Type) {
		return model.Decision{Record: &record, Verdict: model.VerdictFiltered, Reason: ReasonTypeDisabled + record.Type.Label()}
	}

	// FAILED and CANCELLED records always pass; the user wants to hear about those.
	if record.Status == model.StatusNormal &&
		record.PaymentMethod != model.MethodUnknown &&
		!p.settings.MethodEnabled(record.Type, record.PaymentMethod) {
		return model.Decision{Record: &record, Verdict: model.VerdictFiltered, Reason: ReasonMethodDisabled + record.PaymentMethod}
	}

	record = p.refiner.Refine(record, p.settings.CashOutDestinations, p.settings.QRBusinesses)

	if dup, sources := p.dedup.Check(record.Amount, record.SenderName, record.SourceID); dup {
		return model.Decision{Record: &record, Verdict: model.VerdictDuplicate, Reason: ReasonDuplicatePrefix + strings.Join(sources, ", ")}
	}

	if p.settings.Filters.ExcludeInternal {
		if check, ok := transfer.Explain(record, p.settings.Accounts); ok {
			record.Status = model.StatusInternal
			return model.Decision{Record: &record, Verdict: model.VerdictInternal, Reason: ReasonInternalPrefix + check}
		}
	}

	return model.Decision{Record: &record, Verdict: model.VerdictEmit}
}

// record logs the decision and hands it to the recorder. bank names the
// notification's bank for decisions without a record.
func (p *Pipeline) record(ctx context.Context, n model.Notification, bank string, d model.Decision) (model.Decision, error) {
	fields := common.Fields{
		"source":  n.SourceID,
		"verdict": string(d.Verdict),
	}
	if d.Reason != "" {
		fields["reason"] = d.Reason
	}
	if d.Record != nil {
		fields["type"] = string(d.Record.Type)
		fields["status"] = string(d.Record.Status)
		fields["method"] = d.Record.PaymentMethod
		fields["amount"] = d.Record.AmountText()
	}
	common.LogDebug("Notification processed", fields)

	if p.recorder == nil {
		return d, nil
	}

	entry := model.NewLogEntry(n, d, p.settings.Device)
	if d.Record == nil {
		if bank == "" {
			bank = p.registry.BankName(n.SourceID)
		}
		entry.BankName = bank
	}
	err := common.WithRetry(ctx, func() error {
		return p.recorder.SaveLog(ctx, &entry)
	}, p.retry)
	if err != nil {
		common.LogError(err, "Failed to record verdict", fields)
		return d, fmt.Errorf("failed to record verdict: %w", err)
	}
	return d, nil
}
