package classification

import (
	"slices"
	"strings"

	"github.com/Veraticus/banknotify/internal/model"
)

// detectPaymentMethod picks one of the enabled methods for the record.
// Keyword matches win; otherwise the fallback chain is, in order: the source's
// default method, the type default, "기타", the first enabled method, "알수없음".
func (c *Classifier) detectPaymentMethod(sourceID, text string, txType model.TransactionType, enabled []string) string {
	lower := strings.ToLower(text)
	for _, method := range enabled {
		if model.IsPlaceholderMethod(method) {
			continue
		}
		for _, kw := range c.registry.KeywordsFor(method) {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return method
			}
		}
	}

	if method, ok := c.registry.DefaultMethod(sourceID); ok && slices.Contains(enabled, method) {
		return method
	}
	if fallback := typeFallback(txType); slices.Contains(enabled, fallback) {
		return fallback
	}
	if slices.Contains(enabled, model.MethodOther) {
		return model.MethodOther
	}
	if len(enabled) > 0 {
		return enabled[0]
	}
	return model.MethodUnknown
}

func typeFallback(t model.TransactionType) string {
	switch t {
	case model.TypeDeposit:
		return model.MethodBankTransfer
	case model.TypeWithdrawal:
		return model.MethodBankWithdrawal
	default:
		return model.MethodOther
	}
}
