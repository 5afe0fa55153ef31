// Package model defines the core domain models used throughout the application.
package model

import "time"

// Verdict is the final decision the pipeline reaches for one notification.
type Verdict string

// Verdict constants.
const (
	VerdictEmit      Verdict = "emit"
	VerdictDuplicate Verdict = "duplicate"
	VerdictInternal  Verdict = "internal"
	VerdictIgnored   Verdict = "ignored"
	VerdictDropped   Verdict = "dropped"
	VerdictFiltered  Verdict = "filtered"
)

// Suppressed reports whether the verdict keeps the record from being forwarded.
func (v Verdict) Suppressed() bool {
	return v != VerdictEmit
}

// Notification is one raw event from the push listener, the SMS receiver or a replay.
type Notification struct {
	ReceivedAt time.Time
	SourceID   string
	Title      string
	Body       string
	Channel    Channel
}

// Decision is the outcome of running a notification through the pipeline.
// Record is nil for ignored and dropped notifications.
type Decision struct {
	Record  *TransactionRecord
	Verdict Verdict
	Reason  string
}
