package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/service"
)

func TestRenderDecision(t *testing.T) {
	t.Run("with record", func(t *testing.T) {
		d := model.Decision{
			Verdict: model.VerdictEmit,
			Record: &model.TransactionRecord{
				BankName:      "KB국민은행",
				Amount:        model.Optional("50,000원"),
				SenderName:    model.Optional("홍길동"),
				PaymentMethod: model.MethodBankTransfer,
				Type:          model.TypeDeposit,
				Status:        model.StatusNormal,
				Channel:       model.ChannelPush,
			},
		}

		out := RenderDecision(d)
		for _, want := range []string{"emit", "KB국민은행", "입금 정상", "계좌이체", "50,000원", "홍길동", "Account: -"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("without record", func(t *testing.T) {
		out := RenderDecision(model.Decision{Verdict: model.VerdictIgnored, Reason: "매칭 키워드 없음"})
		assert.Contains(t, out, "ignored")
		assert.Contains(t, out, "매칭 키워드 없음")
		assert.NotContains(t, out, "Record:")
	})
}

func TestWriteLogTable(t *testing.T) {
	entries := []model.LogEntry{
		{
			ReceivedAt:    time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC),
			BankName:      "KB국민은행",
			Amount:        model.Optional("50,000원"),
			Type:          model.TypeDeposit,
			Status:        model.StatusNormal,
			PaymentMethod: model.MethodBankTransfer,
			Verdict:       model.VerdictDuplicate,
			Reason:        "중복: com.kbstar.kbbank",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLogTable(&buf, entries))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Verdict")
	assert.Contains(t, lines[1], "duplicate")
	assert.Contains(t, lines[1], "50,000원")
	assert.Contains(t, lines[1], "중복: com.kbstar.kbbank")
	assert.Contains(t, lines[1], " - ", "absent sender renders as a dash")
}

func TestWriteSummary(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	s := &service.Summary{
		DateRange: service.DateRange{Start: start, End: start.Add(24 * time.Hour)},
		ByTypeStatus: map[service.StatusKey]service.Bucket{
			{Type: model.TypeDeposit, Status: model.StatusNormal}:    {Count: 2, Total: decimal.NewFromInt(60000)},
			{Type: model.TypeWithdrawal, Status: model.StatusFailed}: {Count: 1, Total: decimal.NewFromInt(5000)},
		},
		ByMethod: map[service.MethodKey]service.Bucket{
			{Type: model.TypeDeposit, Method: model.MethodKakaoPay}:     {Count: 1, Total: decimal.NewFromInt(10000)},
			{Type: model.TypeDeposit, Method: model.MethodBankTransfer}: {Count: 1, Total: decimal.NewFromInt(50000)},
		},
		Suppressed: map[model.Verdict]int{model.VerdictDuplicate: 4},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "Settlement")
	assert.Contains(t, out, "60,000원")
	assert.Contains(t, out, "실패")
	assert.Contains(t, out, "duplicate")
	assert.Less(t, strings.Index(out, model.MethodBankTransfer), strings.Index(out, model.MethodKakaoPay),
		"methods are listed by total descending")
}

func TestFormatLabels(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "deposit", got: FormatTransaction(model.TypeDeposit, model.StatusNormal), want: "입금 정상"},
		{name: "failed withdrawal", got: FormatTransaction(model.TypeWithdrawal, model.StatusFailed), want: "출금 실패"},
		{name: "emit verdict", got: FormatVerdict(model.VerdictEmit), want: "emit"},
		{name: "unknown verdict", got: FormatVerdict(model.Verdict("odd")), want: "odd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.got, tt.want)
		})
	}
}
