//go:build integration
// +build integration

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/banknotify/internal/config"
	"github.com/Veraticus/banknotify/internal/dedup"
	"github.com/Veraticus/banknotify/internal/engine"
	"github.com/Veraticus/banknotify/internal/model"
	"github.com/Veraticus/banknotify/internal/registry"
	"github.com/Veraticus/banknotify/internal/service"
	"github.com/Veraticus/banknotify/internal/smsbackup"
	"github.com/Veraticus/banknotify/internal/testutil"
)

const replayBackup = `<smses count="4">
  <sms address="15881688" date="1742047200000" type="1" body="[KB국민] 입금 50,000원 김철수" />
  <sms address="16449999" date="1742047203000" type="1" body="[KB국민] 입금 50,000원 김철수" />
  <sms address="15881688" date="1742047260000" type="1" body="[KB국민] 인증번호 123456" />
  <sms address="01012345678" date="1742047300000" type="1" body="안녕하세요" />
</smses>`

// TestReplayWithPipeline drives a backup through the pipeline the way the
// replay command does, with the message time as the dedup clock.
func TestReplayWithPipeline(t *testing.T) {
	messages, err := smsbackup.Read(strings.NewReader(replayBackup), smsbackup.Filter{})
	require.NoError(t, err)
	require.Len(t, messages, 4)

	settings := config.Default()
	settings.Detection.SMS = true

	db := testutil.SetupTestDB(t)
	var current time.Time
	p := engine.New(registry.Default(), settings,
		engine.WithRecorder(db.Storage),
		engine.WithDedupOptions(dedup.WithClock(func() time.Time { return current })),
	)

	var out bytes.Buffer
	progress := NewReplayProgress(&out, len(messages))
	for _, m := range messages {
		current = m.ReceivedAt
		d, err := p.ProcessSMS(context.Background(), m.Address, m.Body, m.ReceivedAt)
		progress.Record(d.Verdict, err)
	}

	assert.Equal(t, 1, progress.Count(model.VerdictEmit))
	assert.Equal(t, 1, progress.Count(model.VerdictDuplicate))
	assert.Equal(t, 2, progress.Count(model.VerdictIgnored))

	// The unknown sender is not recorded.
	logs := db.MustListLogs(service.LogFilter{})
	assert.Len(t, logs, 3)
	assert.Contains(t, progress.Summary(), "Messages: 4 of 4")
}
