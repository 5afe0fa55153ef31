// Package cli renders banknotify's terminal output with lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/banknotify/internal/model"
)

var (
	primaryColor    = lipgloss.Color("#4A90E2")
	successColor    = lipgloss.Color("#4ECDC4")
	warningColor    = lipgloss.Color("#FFE66D")
	errorColor      = lipgloss.Color("#FF6B6B")
	infoColor       = lipgloss.Color("#95E1D3")
	subtleColor     = lipgloss.Color("#666666")
	depositColor    = lipgloss.Color("#2ECC71")
	withdrawalColor = lipgloss.Color("#E67E22")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().Foreground(errorColor)
	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().Foreground(infoColor)
	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().Foreground(subtleColor)
	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)
	// TableHeaderStyle is applied per header cell so tabwriter still aligns.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)

var verdictStyles = map[model.Verdict]lipgloss.Style{
	model.VerdictEmit:      successStyle.Bold(true),
	model.VerdictDuplicate: warningStyle,
	model.VerdictInternal:  InfoStyle,
	model.VerdictFiltered:  SubtleStyle,
	model.VerdictIgnored:   SubtleStyle,
	model.VerdictDropped:   ErrorStyle,
}

var typeStyles = map[model.TransactionType]lipgloss.Style{
	model.TypeDeposit:    lipgloss.NewStyle().Foreground(depositColor),
	model.TypeWithdrawal: lipgloss.NewStyle().Foreground(withdrawalColor),
}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	BankIcon    = "🏦"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return successStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the bank icon.
func FormatTitle(title string) string {
	return titleStyle.Render(BankIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox renders content under a title in a rounded box.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.UnsetMargins().Render(title),
		content,
	))
}

// FormatVerdict renders a verdict in its color.
func FormatVerdict(v model.Verdict) string {
	style, ok := verdictStyles[v]
	if !ok {
		style = BoldStyle
	}
	return style.Render(string(v))
}

// FormatTransaction renders "입금 정상"-style labels. Deposits and
// withdrawals get their own color; failed and cancelled ones are struck through.
func FormatTransaction(t model.TransactionType, st model.TransactionStatus) string {
	style, ok := typeStyles[t]
	if !ok {
		style = SubtleStyle
	}
	if st == model.StatusFailed || st == model.StatusCancelled {
		style = style.Strikethrough(true)
	}
	return style.Render(t.Label() + " " + st.Label())
}
