// Package classification turns raw banking notification text into structured
// transaction records using keyword tables and pattern extraction.
package classification

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/registry"
)

// Ignore reasons recorded alongside ignored notifications.
const (
	ReasonExcludePrefix = "제외 키워드: "
	ReasonNoKeyword     = "거래 키워드 없음"
	ReasonUnknownType   = "거래 유형 알수없음"
)

// OutcomeKind distinguishes the three terminal results of classification.
type OutcomeKind int

const (
	// OutcomeRecord means a transaction record was produced.
	OutcomeRecord OutcomeKind = iota
	// OutcomeIgnored means the text is not a transaction; Reason says why.
	OutcomeIgnored
	// OutcomeDropped means the type could not be determined. Nothing is forwarded or logged as ignored.
	OutcomeDropped
)

// Input is one notification to classify.
type Input struct {
	Timestamp                time.Time
	SourceID                 string
	Title                    string
	Body                     string
	Channel                  model.Channel
	BankName                 string // Overrides the registry's name for SourceID when set
	EnabledDepositMethods    []string
	EnabledWithdrawalMethods []string
}

// Outcome is the classifier's verdict. Record is set only for OutcomeRecord.
type Outcome struct {
	Record *model.TransactionRecord
	Reason string
	Kind   OutcomeKind
}

// Classifier is stateless apart from its read-only registry and is safe for concurrent use.
type Classifier struct {
	registry *registry.Registry
}

// New creates a classifier over a validated registry.
func New(reg *registry.Registry) *Classifier {
	return &Classifier{registry: reg}
}

// IsMonitoredSource reports whether notifications from sourceID are classified at all.
func (c *Classifier) IsMonitoredSource(sourceID string) bool {
	return c.registry.IsMonitored(sourceID)
}

// Classify runs the full classification algorithm over one notification.
func (c *Classifier) Classify(in Input) Outcome {
	combined := in.Title + " " + in.Body
	text := norm.NFC.String(combined)

	if kw, ok := firstContained(text, c.registry.ExcludeKeywords); ok {
		return Outcome{Kind: OutcomeIgnored, Reason: ReasonExcludePrefix + kw}
	}

	txType, _, matched := detectType(c.registry, in.SourceID, text)
	if !matched {
		return Outcome{Kind: OutcomeIgnored, Reason: ReasonNoKeyword}
	}
	if txType == model.TypeUnknown {
		return Outcome{Kind: OutcomeDropped, Reason: ReasonUnknownType}
	}

	status := detectStatus(c.registry, text)
	f := extractFields(c.registry, in.SourceID, text)

	enabled := in.EnabledDepositMethods
	if txType == model.TypeWithdrawal {
		enabled = in.EnabledWithdrawalMethods
	}

	channel := in.Channel
	if channel == "" {
		channel = model.ChannelPush
	}
	bank := in.BankName
	if bank == "" {
		bank = c.registry.BankName(in.SourceID)
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return Outcome{
		Kind: OutcomeRecord,
		Record: &model.TransactionRecord{
			BankName:      bank,
			Amount:        f.amount,
			SenderName:    f.sender,
			AccountInfo:   f.account,
			OriginalText:  strings.TrimSpace(combined),
			SourceID:      in.SourceID,
			Type:          txType,
			Status:        status,
			PaymentMethod: c.detectPaymentMethod(in.SourceID, text, txType, enabled),
			Timestamp:     ts,
			Channel:       channel,
		},
	}
}
