package classification

import (
	"strings"

	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/registry"
)

// Marker words merchant terminals use for a completed sale and for a refund.
const (
	merchantSaleMarker   = "결제완료"
	merchantRefundMarker = "환불"
)

// typeRule is one row of the ordered type-detection table.
// match returns the keyword that fired, if any.
type typeRule struct {
	match   func(reg *registry.Registry, sourceID, text string) (string, bool)
	name    string
	outcome model.TransactionType
}

// typeRules is evaluated top to bottom and the first matching row wins.
// Merchant overrides precede the generic scan, and deposit wording beats
// withdrawal wording when a text carries both.
var typeRules = []typeRule{
	{
		name:    "merchant sale",
		outcome: model.TypeDeposit,
		match: func(reg *registry.Registry, sourceID, text string) (string, bool) {
			return merchantMarker(reg, sourceID, text, merchantSaleMarker)
		},
	},
	{
		name:    "merchant refund",
		outcome: model.TypeWithdrawal,
		match: func(reg *registry.Registry, sourceID, text string) (string, bool) {
			return merchantMarker(reg, sourceID, text, merchantRefundMarker)
		},
	},
	{
		name:    "deposit keyword",
		outcome: model.TypeDeposit,
		match: func(reg *registry.Registry, _, text string) (string, bool) {
			return firstContained(text, reg.DepositKeywords)
		},
	},
	{
		name:    "withdrawal keyword",
		outcome: model.TypeWithdrawal,
		match: func(reg *registry.Registry, _, text string) (string, bool) {
			return firstContained(text, reg.WithdrawalKeywords)
		},
	},
}

// statusRule is one row of the ordered status-detection table.
type statusRule struct {
	keywords func(reg *registry.Registry) []string
	outcome  model.TransactionStatus
}

// statusRules puts cancellation ahead of failure.
var statusRules = []statusRule{
	{outcome: model.StatusCancelled, keywords: func(reg *registry.Registry) []string { return reg.CancelledKeywords }},
	{outcome: model.StatusFailed, keywords: func(reg *registry.Registry) []string { return reg.FailedKeywords }},
}

func detectType(reg *registry.Registry, sourceID, text string) (model.TransactionType, string, bool) {
	for _, rule := range typeRules {
		if kw, ok := rule.match(reg, sourceID, text); ok {
			return rule.outcome, kw, true
		}
	}
	return model.TypeUnknown, "", false
}

func detectStatus(reg *registry.Registry, text string) model.TransactionStatus {
	for _, rule := range statusRules {
		if _, ok := firstContained(text, rule.keywords(reg)); ok {
			return rule.outcome
		}
	}
	return model.StatusNormal
}

func merchantMarker(reg *registry.Registry, sourceID, text, marker string) (string, bool) {
	if reg.IsMerchant(sourceID) && strings.Contains(text, marker) {
		return marker, true
	}
	return "", false
}

// firstContained returns the first keyword, in list order, that text contains.
func firstContained(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
