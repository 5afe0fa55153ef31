// Package smsbackup reads SMS Backup & Restore XML files so archived bank
// messages can be replayed through the pipeline.
package smsbackup

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/Veraticus/banknotify/internal/common"
)

// sentType marks outgoing messages in the backup format.
const sentType = "2"

// Message is one received SMS from a backup.
type Message struct {
	ReceivedAt time.Time
	Address    string
	Body       string
}

// Filter narrows the messages a backup yields. Zero values match everything.
type Filter struct {
	From   time.Time
	Sender string
}

type smsElement struct {
	Address string `xml:"address,attr"`
	Body    string `xml:"body,attr"`
	Date    string `xml:"date,attr"`
	Type    string `xml:"type,attr"`
}

type backupDocument struct {
	XMLName xml.Name     `xml:"smses"`
	SMS     []smsElement `xml:"sms"`
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string, f Filter) ([]Message, error) {
	file, err := os.Open(path) //nolint:gosec // user supplied backup path
	if err != nil {
		return nil, fmt.Errorf("failed to open backup: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file, f)
}

// Read parses a backup document and returns its received messages in
// chronological order. Messages with an unparseable date are skipped, and
// repeated (date, address, body) triples are returned once.
func Read(r io.Reader, f Filter) ([]Message, error) {
	var doc backupDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidBackup, err)
	}

	seen := make(map[string]bool, len(doc.SMS))
	messages := make([]Message, 0, len(doc.SMS))
	for _, sms := range doc.SMS {
		if sms.Type == sentType {
			continue
		}
		if f.Sender != "" && sms.Address != f.Sender {
			continue
		}

		signature := sms.Date + "|" + sms.Address + "|" + sms.Body
		if seen[signature] {
			continue
		}
		seen[signature] = true

		ms, err := strconv.ParseInt(sms.Date, 10, 64)
		if err != nil {
			continue
		}
		at := time.UnixMilli(ms)
		if !f.From.IsZero() && at.Before(f.From) {
			continue
		}

		messages = append(messages, Message{ReceivedAt: at, Address: sms.Address, Body: sms.Body})
	}

	slices.SortStableFunc(messages, func(a, b Message) int {
		return cmp.Compare(a.ReceivedAt.UnixMilli(), b.ReceivedAt.UnixMilli())
	})
	return messages, nil
}
