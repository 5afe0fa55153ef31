package classification

import (
	"strings"

	"github.com/Veraticus/banknotify/internal/model"
)

// Refiner specializes a classified record's payment method using the user's
// cash-out destinations and QR merchants. It holds no state.
type Refiner struct{}

// NewRefiner creates a new Refiner.
func NewRefiner() *Refiner {
	return &Refiner{}
}

// Refine returns a copy of record with its payment method specialized.
// A cash-out destination match on a withdrawal takes precedence over the
// per-method rules.
func (r *Refiner) Refine(record model.TransactionRecord, cashOut []model.CashOutDestination, businesses []model.QRBusiness) model.TransactionRecord {
	if record.Type == model.TypeWithdrawal && len(cashOut) > 0 {
		if matchesCashOut(record, cashOut) {
			record.PaymentMethod = model.MethodCashOutPoint
			return record
		}
	}

	switch {
	case record.PaymentMethod == model.MethodWallet && record.Type == model.TypeDeposit:
		record.PaymentMethod = model.MethodWalletTransfer
	case record.PaymentMethod == model.MethodWalletCharge && record.Type == model.TypeWithdrawal:
		record.PaymentMethod = model.MethodChargeWithdraw
	case record.PaymentMethod == model.MethodQRPay && record.Type == model.TypeDeposit:
		record.PaymentMethod = model.MethodQRPay + "(" + qrLabel(record, businesses) + ")"
	case record.PaymentMethod == model.MethodQRPay && record.Type == model.TypeWithdrawal:
		record.PaymentMethod = model.MethodQRPayRefund
	}
	return record
}

func matchesCashOut(record model.TransactionRecord, destinations []model.CashOutDestination) bool {
	sender := record.SenderText()
	strippedText := stripSeparators(record.OriginalText)
	strippedSender := stripSeparators(sender)

	for _, dest := range destinations {
		name := strings.TrimSpace(dest.Name)
		if name != "" && (strings.Contains(sender, name) || strings.Contains(record.OriginalText, name)) {
			return true
		}
		number := stripSeparators(dest.Number)
		if number != "" && (strings.Contains(strippedText, number) || (strippedSender != "" && strings.Contains(strippedSender, number))) {
			return true
		}
	}
	return false
}

func qrLabel(record model.TransactionRecord, businesses []model.QRBusiness) string {
	sender := record.SenderText()
	for _, b := range businesses {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			continue
		}
		if strings.Contains(sender, name) || strings.Contains(record.OriginalText, name) {
			return b.Type.Label()
		}
	}
	return "QR"
}

// stripSeparators removes the characters banks use to group or mask account digits.
func stripSeparators(s string) string {
	return strings.NewReplacer("-", "", "*", "", " ", "").Replace(s)
}
