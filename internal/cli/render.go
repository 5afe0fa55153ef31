package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderDecision renders one pipeline decision in a box.
func RenderDecision(d model.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n", FormatVerdict(d.Verdict))
	if d.Reason != "" {
		fmt.Fprintf(&b, "Reason:  %s\n", d.Reason)
	}

	if r := d.Record; r != nil {
		fmt.Fprintf(&b, "\n%s Record:\n", InfoIcon)
		fmt.Fprintf(&b, "  Bank:    %s\n", r.BankName)
		fmt.Fprintf(&b, "  Type:    %s\n", FormatTransaction(r.Type, r.Status))
		fmt.Fprintf(&b, "  Method:  %s\n", r.PaymentMethod)
		fmt.Fprintf(&b, "  Amount:  %s\n", orDash(r.AmountText()))
		fmt.Fprintf(&b, "  Sender:  %s\n", orDash(r.SenderText()))
		fmt.Fprintf(&b, "  Account: %s\n", orDash(r.AccountText()))
		fmt.Fprintf(&b, "  Channel: %s", r.Channel)
	}

	return RenderBox(ChartIcon+" Classification", strings.TrimRight(b.String(), "\n"))
}

// WriteLogTable writes verdict log entries as an aligned table.
func WriteLogTable(w io.Writer, entries []model.LogEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	cols := header("Received", "Verdict", "Bank", "Type", "Method", "Amount", "Sender", "Reason")
	if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ReceivedAt.Local().Format(timeLayout),
			FormatVerdict(e.Verdict),
			e.BankName,
			FormatTransaction(e.Type, e.Status),
			orDash(e.PaymentMethod),
			orDash(deref(e.Amount)),
			orDash(deref(e.SenderName)),
			e.Reason); err != nil {
			return fmt.Errorf("failed to write log row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// WriteSummary writes a settlement summary as aligned sections.
func WriteSummary(w io.Writer, s *service.Summary) error {
	title := fmt.Sprintf("Settlement %s ~ %s",
		s.DateRange.Start.Local().Format(timeLayout), s.DateRange.End.Local().Format(timeLayout))
	if _, err := fmt.Fprintln(w, FormatTitle(title)); err != nil {
		return fmt.Errorf("failed to write summary title: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][]string{header("Type", "Status", "Count", "Total")}
	for _, t := range []model.TransactionType{model.TypeDeposit, model.TypeWithdrawal} {
		for _, st := range []model.TransactionStatus{model.StatusNormal, model.StatusFailed, model.StatusCancelled} {
			if bucket, ok := s.ByTypeStatus[service.StatusKey{Type: t, Status: st}]; ok {
				rows = append(rows, []string{t.Label(), st.Label(), strconv.Itoa(bucket.Count), won(bucket)})
			}
		}
	}

	if len(s.ByMethod) > 0 {
		keys := make([]service.MethodKey, 0, len(s.ByMethod))
		for k := range s.ByMethod {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b service.MethodKey) int {
			return s.ByMethod[b].Total.Cmp(s.ByMethod[a].Total)
		})

		rows = append(rows, nil, header("Type", "Method", "Count", "Total"))
		for _, k := range keys {
			bucket := s.ByMethod[k]
			rows = append(rows, []string{k.Type.Label(), k.Method, strconv.Itoa(bucket.Count), won(bucket)})
		}
	}

	if len(s.Suppressed) > 0 {
		rows = append(rows, nil, header("Verdict", "", "Count", ""))
		for _, v := range []model.Verdict{model.VerdictDuplicate, model.VerdictInternal, model.VerdictFiltered, model.VerdictIgnored} {
			if n := s.Suppressed[v]; n > 0 {
				rows = append(rows, []string{FormatVerdict(v), "", strconv.Itoa(n), ""})
			}
		}
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush summary: %w", err)
	}
	return nil
}

func header(cells ...string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = TableHeaderStyle.Render(c)
	}
	return out
}

func won(b service.Bucket) string {
	return model.FormatWon(b.Total) + "원"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
