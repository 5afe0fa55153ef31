package testutil

import (
	"time"

	"github.com/Veraticus/banknotify/internal/model"
)

// BaseTime is the fixed instant fixtures are stamped with.
var BaseTime = time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)

// Push builds a push notification received at BaseTime plus offset.
func Push(source, title, body string, offset time.Duration) model.Notification {
	return model.Notification{
		ReceivedAt: BaseTime.Add(offset),
		SourceID:   source,
		Title:      title,
		Body:       body,
		Channel:    model.ChannelPush,
	}
}

// LogEntry builds a deposit log entry from the KB app with the given verdict.
func LogEntry(verdict model.Verdict, amount string) model.LogEntry {
	return model.LogEntry{
		ReceivedAt:    BaseTime,
		BankName:      "KB국민은행",
		SourceID:      "com.kbstar.kbbank",
		OriginalText:  "입금 " + amount,
		Amount:        model.Optional(amount),
		Channel:       model.ChannelPush,
		Type:          model.TypeDeposit,
		Status:        model.StatusNormal,
		PaymentMethod: model.MethodBankTransfer,
		Verdict:       verdict,
		DeviceNumber:  1,
	}
}
