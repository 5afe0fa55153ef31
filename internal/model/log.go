package model

import (
	"fmt"
	"strings"
	"time"
)

// Device identifies which phone produced a log entry when several report into one place.
type Device struct {
	Name   string `mapstructure:"name"`
	Number int    `mapstructure:"number"`
}

// Label renders the device as "<n>번" or "<n>번 - <name>".
func (d Device) Label() string {
	if d.Name == "" {
		return fmt.Sprintf("%d번", d.Number)
	}
	return fmt.Sprintf("%d번 - %s", d.Number, d.Name)
}

// LogEntry is one persisted pipeline decision. Ignored notifications have no
// parsed fields, only the source, the text and the reason.
type LogEntry struct {
	ReceivedAt    time.Time
	CreatedAt     time.Time
	Amount        *string
	SenderName    *string
	AccountInfo   *string
	ID            string
	BankName      string
	OriginalText  string
	SourceID      string
	PaymentMethod string
	Reason        string
	DeviceName    string
	Channel       Channel
	Type          TransactionType
	Status        TransactionStatus
	Verdict       Verdict
	DeviceNumber  int
}

// NewLogEntry flattens a decision for persistence. Fields the decision's
// record does not carry are taken from the notification.
func NewLogEntry(n Notification, d Decision, device Device) LogEntry {
	entry := LogEntry{
		ReceivedAt:   n.ReceivedAt,
		SourceID:     n.SourceID,
		BankName:     n.SourceID,
		OriginalText: strings.TrimSpace(n.Title + " " + n.Body),
		Channel:      n.Channel,
		Type:         TypeUnknown,
		Status:       StatusIgnored,
		Verdict:      d.Verdict,
		Reason:       d.Reason,
		DeviceNumber: device.Number,
		DeviceName:   device.Name,
	}
	if entry.Channel == "" {
		entry.Channel = ChannelPush
	}
	if r := d.Record; r != nil {
		entry.ReceivedAt = r.Timestamp
		entry.Amount = r.Amount
		entry.SenderName = r.SenderName
		entry.AccountInfo = r.AccountInfo
		entry.BankName = r.BankName
		entry.OriginalText = r.OriginalText
		entry.SourceID = r.SourceID
		entry.PaymentMethod = r.PaymentMethod
		entry.Channel = r.Channel
		entry.Type = r.Type
		entry.Status = r.Status
	}
	return entry
}

// Device returns the device that produced the entry.
func (e *LogEntry) Device() Device {
	return Device{Number: e.DeviceNumber, Name: e.DeviceName}
}
