package format

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
)

var separator = strings.Repeat("━", 14)

// suppressedOrder fixes the order of the suppressed-verdict footer.
var suppressedOrder = []struct {
	verdict model.Verdict
	label   string
}{
	{model.VerdictDuplicate, "중복"},
	{model.VerdictInternal, "내부거래"},
	{model.VerdictFiltered, "필터"},
	{model.VerdictIgnored, "무시"},
}

// Settlement renders a settlement report for one device.
func Settlement(s *service.Summary, device model.Device) string {
	var b strings.Builder

	start, end := s.DateRange.Start, s.DateRange.End
	fmt.Fprintf(&b, "\U0001F4CA <b>[%s] [정산] %s~%s %s</b>\n",
		EscapeHTML(device.Label()), start.Format("15:04"), end.Format("15:04"), start.Format("2006-01-02"))
	b.WriteString(separator + "\n")

	writeTypeSection(&b, s, model.TypeDeposit)
	b.WriteString("\n")
	writeTypeSection(&b, s, model.TypeWithdrawal)
	b.WriteString(separator + "\n")

	for _, d := range sortedBuckets(s.ByDevice) {
		fmt.Fprintf(&b, "[%s] %s\n", EscapeHTML(d.key), countAndTotal(d.bucket, " / "))
	}

	for _, m := range sortedBuckets(s.ByMethod) {
		fmt.Fprintf(&b, "  • %s %s: %s\n", m.key.Type.Emoji(), EscapeHTML(m.key.Method), countAndTotal(m.bucket, " / "))
	}

	var parts []string
	for _, sv := range suppressedOrder {
		if n := s.Suppressed[sv.verdict]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d건", sv.label, n))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&b, "제외: %s\n", strings.Join(parts, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeTypeSection(b *strings.Builder, s *service.Summary, t model.TransactionType) {
	if t == model.TypeDeposit {
		b.WriteString("\U0001F4B0 <b>입금</b>\n")
	} else {
		b.WriteString("\U0001F4B8 <b>출금</b>\n")
	}

	normal, hasNormal := s.ByTypeStatus[service.StatusKey{Type: t, Status: model.StatusNormal}]
	failed, hasFailed := s.ByTypeStatus[service.StatusKey{Type: t, Status: model.StatusFailed}]
	cancelled, hasCancelled := s.ByTypeStatus[service.StatusKey{Type: t, Status: model.StatusCancelled}]
	if !hasNormal && !hasFailed && !hasCancelled {
		b.WriteString("  거래 없음\n")
		return
	}

	fmt.Fprintf(b, "  ✅ 정상: %s\n", countAndTotal(normal, " | "))
	if hasFailed {
		fmt.Fprintf(b, "  ❌ 실패: %s\n", countAndTotal(failed, " | "))
	}
	if hasCancelled {
		fmt.Fprintf(b, "  \U0001F6AB 취소: %s\n", countAndTotal(cancelled, " | "))
	}
}

func countAndTotal(bucket service.Bucket, sep string) string {
	return fmt.Sprintf("%d건%s%s원", bucket.Count, sep, model.FormatWon(bucket.Total))
}

type keyedBucket[K comparable] struct {
	key    K
	bucket service.Bucket
}

// sortedBuckets orders groups by total descending, then by count descending,
// then by key text so output is stable.
func sortedBuckets[K comparable](m map[K]service.Bucket) []keyedBucket[K] {
	out := make([]keyedBucket[K], 0, len(m))
	for k, v := range m {
		out = append(out, keyedBucket[K]{key: k, bucket: v})
	}
	slices.SortFunc(out, func(a, b keyedBucket[K]) int {
		if c := b.bucket.Total.Cmp(a.bucket.Total); c != 0 {
			return c
		}
		if c := cmp.Compare(b.bucket.Count, a.bucket.Count); c != 0 {
			return c
		}
		return cmp.Compare(fmt.Sprint(a.key), fmt.Sprint(b.key))
	})
	return out
}
