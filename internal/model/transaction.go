package model

import (
	"strings"
	"time"
)

// TransactionType is the direction of money movement described by a notification.
type TransactionType string

// Transaction type constants.
const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeUnknown    TransactionType = "UNKNOWN"
)

// Label returns the Korean label used in messages and the verdict log.
func (t TransactionType) Label() string {
	switch t {
	case TypeDeposit:
		return "입금"
	case TypeWithdrawal:
		return "출금"
	default:
		return "알수없음"
	}
}

// Emoji returns the marker shown in front of delivered messages.
func (t TransactionType) Emoji() string {
	switch t {
	case TypeDeposit:
		return "\U0001F4B0"
	case TypeWithdrawal:
		return "\U0001F4B8"
	default:
		return "\U0001F4CB"
	}
}

// TransactionStatus is independent of TransactionType.
type TransactionStatus string

// Transaction status constants.
const (
	StatusNormal    TransactionStatus = "NORMAL"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusIgnored   TransactionStatus = "IGNORED"
	StatusInternal  TransactionStatus = "INTERNAL"
)

// Label returns the Korean label used in messages and the verdict log.
func (s TransactionStatus) Label() string {
	switch s {
	case StatusFailed:
		return "실패"
	case StatusCancelled:
		return "취소"
	case StatusIgnored:
		return "무시"
	case StatusInternal:
		return "내부거래"
	default:
		return "정상"
	}
}

// Channel tells which listener surfaced a notification.
type Channel string

// Channel constants.
const (
	ChannelPush Channel = "알림"
	ChannelSMS  Channel = "SMS"
)

// TransactionRecord is the structured form of a single banking notification.
type TransactionRecord struct {
	Timestamp     time.Time
	Amount        *string // Raw token such as "50,000원"
	SenderName    *string
	AccountInfo   *string // Masked or partial account number
	BankName      string
	OriginalText  string
	SourceID      string // App package or "sms:<sender>"
	PaymentMethod string
	Type          TransactionType
	Status        TransactionStatus
	Channel       Channel
}

// AmountText returns the amount token or "" when absent.
func (r *TransactionRecord) AmountText() string {
	return deref(r.Amount)
}

// SenderText returns the sender name or "" when absent.
func (r *TransactionRecord) SenderText() string {
	return deref(r.SenderName)
}

// AccountText returns the account token or "" when absent.
func (r *TransactionRecord) AccountText() string {
	return deref(r.AccountInfo)
}

// Optional wraps s as a present value, mapping blank strings to absent.
func Optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
