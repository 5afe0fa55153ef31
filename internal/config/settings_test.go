package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/model"
)

func loadYAML(t *testing.T, doc string) (Settings, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(doc)))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	s, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/.local/share/banknotify/banknotify.db", s.Database.Path)
	assert.Equal(t, 1, s.Device.Number)
	assert.True(t, s.Detection.Push)
	assert.False(t, s.Detection.SMS)
	assert.True(t, s.Filters.Deposit)
	assert.True(t, s.Filters.Withdrawal)
	assert.False(t, s.Filters.ExcludeInternal)
	assert.Equal(t, model.DefaultDepositMethods(), s.Methods.Deposit)
	assert.Equal(t, model.DefaultWithdrawalMethods(), s.Methods.Withdrawal)
	assert.Equal(t, 30*time.Second, s.Dedup.ExactWindow)
	assert.Equal(t, 10*time.Second, s.Dedup.FuzzyWindow)
	assert.Equal(t, 512, s.Dedup.MaxEntries)
	assert.Equal(t, 30, s.History.RetentionDays)
}

func TestLoad_FromYAML(t *testing.T) {
	s, err := loadYAML(t, `
database:
  path: /tmp/bn.db
device:
  number: 3
  name: 매장
detection:
  sms: true
filters:
  withdrawal: false
  exclude_internal: true
methods:
  deposit: [계좌이체, 토스]
accounts:
  - bank_name: 토스
    account_name: 김철수
    account_number: 1000-1234-5678
cash_out_destinations:
  - name: 우리동네ATM
    number: 110-123-456789
qr_businesses:
  - name: 행복분식
    type: customer-scans
dedup:
  exact_window: 45s
  fuzzy_window: 15s
`)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bn.db", s.Database.Path)
	assert.Equal(t, model.Device{Number: 3, Name: "매장"}, s.Device)
	assert.True(t, s.Detection.SMS)
	assert.True(t, s.Detection.Push, "unset keys keep their defaults")
	assert.False(t, s.Filters.Withdrawal)
	assert.True(t, s.Filters.ExcludeInternal)
	assert.Equal(t, []string{"계좌이체", "토스"}, s.Methods.Deposit)
	assert.Equal(t, []model.OwnedAccount{{BankName: "토스", AccountName: "김철수", AccountNumber: "1000-1234-5678"}}, s.Accounts)
	assert.Equal(t, "우리동네ATM", s.CashOutDestinations[0].Name)
	assert.Equal(t, model.QRCustomerScans, s.QRBusinesses[0].Type)
	assert.Equal(t, 45*time.Second, s.Dedup.ExactWindow)
	assert.Equal(t, 15*time.Second, s.Dedup.FuzzyWindow)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{name: "fuzzy longer than exact", doc: "dedup:\n  exact_window: 5s\n  fuzzy_window: 10s\n", wantMsg: "longer than"},
		{name: "non-positive retention", doc: "history:\n  retention_days: 0\n", wantMsg: "retention_days"},
		{name: "bad qr type", doc: "qr_businesses:\n  - name: 가게\n    type: drive-thru\n", wantMsg: "unknown type"},
		{name: "negative device", doc: "device:\n  number: -1\n", wantMsg: "device.number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(t, tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSettings_Toggles(t *testing.T) {
	s := Default()
	s.Filters.Withdrawal = false
	s.Methods.Deposit = []string{model.MethodToss}

	assert.True(t, s.TypeEnabled(model.TypeDeposit))
	assert.False(t, s.TypeEnabled(model.TypeWithdrawal))
	assert.False(t, s.TypeEnabled(model.TypeUnknown))

	assert.True(t, s.MethodEnabled(model.TypeDeposit, model.MethodToss))
	assert.False(t, s.MethodEnabled(model.TypeDeposit, model.MethodKakaoPay))
	assert.True(t, s.MethodEnabled(model.TypeWithdrawal, model.MethodBankWithdrawal))

	assert.True(t, s.ChannelEnabled(model.ChannelPush))
	assert.False(t, s.ChannelEnabled(model.ChannelSMS))
}

func TestLoad_RelativePathsFollowConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("database:\n  path: logs.db\nregistry:\n  path: sources.yaml\n"), 0o600))

	v := viper.New()
	v.SetConfigFile(file)
	require.NoError(t, v.ReadInConfig())

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs.db"), s.Database.Path)
	assert.Equal(t, filepath.Join(dir, "sources.yaml"), s.Registry.Path)
}
