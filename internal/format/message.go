// Package format renders transaction records and settlement summaries as
// HTML message text for delivery channels.
package format

import (
	"fmt"
	"strings"

	"github.com/Veraticus/banknotify/internal/model"
)

const testTag = " [\U0001F9EA테스트]"

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes the three characters the message markup cares about.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Message renders one record in the delivery layout. When test is set the
// header carries a test tag.
func Message(r *model.TransactionRecord, device model.Device, test bool) string {
	var b strings.Builder

	header := []string{emoji(r) + " [" + device.Label() + "]"}
	if test {
		header[0] += testTag
	}
	header[0] += " [" + r.Type.Label() + statusSuffix(r.Status) + "]" + channelTag(r.Channel)
	for _, part := range []string{r.PaymentMethod, r.AmountText(), r.SenderText()} {
		if part != "" {
			header = append(header, part)
		}
	}
	fmt.Fprintf(&b, "<b>%s</b>\n\n", EscapeHTML(strings.Join(header, " ")))

	fmt.Fprintf(&b, "\U0001F3E6 은행: %s\n", EscapeHTML(r.BankName))
	if r.Amount != nil {
		fmt.Fprintf(&b, "\U0001F4B0 금액: %s\n", EscapeHTML(*r.Amount))
	}
	if r.SenderName != nil {
		label := "대상"
		if r.Type == model.TypeDeposit {
			label = "입금자"
		}
		fmt.Fprintf(&b, "\U0001F464 %s: %s\n", label, EscapeHTML(*r.SenderName))
	}
	if r.AccountInfo != nil {
		fmt.Fprintf(&b, "\U0001F4CB 계좌: %s\n", EscapeHTML(*r.AccountInfo))
	}

	b.WriteString("\n<b>원본 알림:</b>\n")
	fmt.Fprintf(&b, "<code>%s</code>", EscapeHTML(r.OriginalText))
	return b.String()
}

func emoji(r *model.TransactionRecord) string {
	switch r.Status {
	case model.StatusFailed:
		return "❌"
	case model.StatusCancelled:
		return "\U0001F6AB"
	default:
		return r.Type.Emoji()
	}
}

func statusSuffix(s model.TransactionStatus) string {
	if s == model.StatusFailed || s == model.StatusCancelled {
		return s.Label()
	}
	return ""
}

func channelTag(c model.Channel) string {
	if c == model.ChannelSMS {
		return " [SMS]"
	}
	return " [알림]"
}
