// Package transfer recognises transactions between the user's own accounts.
package transfer

import (
	"strings"

	"github.com/Veraticus/banknotify/internal/model"
)

// check is one independent way a record can be tied to an owned account.
type check struct {
	name  string
	match func(r *model.TransactionRecord, a model.OwnedAccount) bool
}

var checks = []check{
	{name: "bank", match: genericBankMatch},
	{name: "name", match: nameMatch},
	{name: "account", match: accountMatch},
	{name: "text-name", match: textNameMatch},
	{name: "text-account", match: textAccountMatch},
}

// IsInternal reports whether record moves money between the user's own accounts.
func IsInternal(record model.TransactionRecord, accounts []model.OwnedAccount) bool {
	_, ok := Explain(record, accounts)
	return ok
}

// Explain returns the name of the first check that ties record to an owned
// account, trying each account in order.
func Explain(record model.TransactionRecord, accounts []model.OwnedAccount) (string, bool) {
	for _, account := range accounts {
		for _, c := range checks {
			if c.match(&record, account) {
				return c.name, true
			}
		}
	}
	return "", false
}

// genericBankMatch only fires for bare notifications carrying neither an
// amount nor a sender, where the bank is the only evidence available.
func genericBankMatch(r *model.TransactionRecord, a model.OwnedAccount) bool {
	bank := strings.TrimSpace(a.BankName)
	return bank != "" && r.BankName == bank && r.Amount == nil && r.SenderName == nil
}

func nameMatch(r *model.TransactionRecord, a model.OwnedAccount) bool {
	name := strings.TrimSpace(a.AccountName)
	sender := r.SenderText()
	return name != "" && sender != "" && strings.Contains(sender, name) && bankAllows(r, a)
}

func accountMatch(r *model.TransactionRecord, a model.OwnedAccount) bool {
	number := stripSeparators(a.AccountNumber)
	info := stripSeparators(r.AccountText())
	return number != "" && info != "" && strings.Contains(info, number)
}

func textNameMatch(r *model.TransactionRecord, a model.OwnedAccount) bool {
	name := strings.TrimSpace(a.AccountName)
	return name != "" && strings.Contains(r.OriginalText, name) && bankAllows(r, a)
}

func textAccountMatch(r *model.TransactionRecord, a model.OwnedAccount) bool {
	number := stripSeparators(a.AccountNumber)
	return number != "" && strings.Contains(stripSeparators(r.OriginalText), number)
}

// bankAllows scopes name checks to the account's bank when one is set.
func bankAllows(r *model.TransactionRecord, a model.OwnedAccount) bool {
	bank := strings.TrimSpace(a.BankName)
	return bank == "" || r.BankName == bank
}

func stripSeparators(s string) string {
	return strings.NewReplacer("-", "", "*", "").Replace(strings.TrimSpace(s))
}
