package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	r := defaultData()
	require.NoError(t, r.Validate())
	assert.NotPanics(t, func() { Default() })
}

func TestRegistry_Lookups(t *testing.T) {
	r := Default()

	assert.True(t, r.IsMonitored("viva.republica.toss"))
	assert.False(t, r.IsMonitored("com.example.game"))

	assert.Equal(t, "토스", r.BankName("viva.republica.toss"))
	assert.Equal(t, "com.example.game", r.BankName("com.example.game"))

	assert.True(t, r.IsMerchant("kr.or.zeropay.zip"))
	assert.False(t, r.IsMerchant("viva.republica.toss"))

	method, ok := r.DefaultMethod("com.kakaopay.app")
	assert.True(t, ok)
	assert.Equal(t, "카카오페이", method)
	_, ok = r.DefaultMethod("com.kbstar.kbbank")
	assert.False(t, ok)

	assert.Equal(t, []string{"제로페이"}, r.KeywordsFor("제로페이"))
	assert.Equal(t, []string{"신규수단"}, r.KeywordsFor("신규수단"))
}

func TestRegistry_IsEcosystemPair(t *testing.T) {
	r := Default()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "registered order", a: "com.kakaopay.app", b: "com.kakao.talk", want: true},
		{name: "reversed order", a: "com.kakao.talk", b: "com.kakaopay.app", want: true},
		{name: "same source", a: "com.kakao.talk", b: "com.kakao.talk", want: false},
		{name: "unrelated", a: "com.kakaopay.app", b: "viva.republica.toss", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IsEcosystemPair(tt.a, tt.b))
		})
	}
}

func TestRegistry_DetectSMSBank(t *testing.T) {
	r := Default()

	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{name: "bracketed prefix", body: "[KB국민] 03/15 14:02 입금 50,000원 김철수", want: "KB국민은행", wantOK: true},
		{name: "first pattern wins", body: "신한은행 출금 10,000원", want: "신한은행", wantOK: true},
		{name: "case insensitive", body: "[TOSS] 입금 1,000원", want: "토스", wantOK: true},
		{name: "unknown sender", body: "택배가 도착했습니다", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.DetectSMSBank(tt.body)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_IsKeyword(t *testing.T) {
	r := Default()
	assert.True(t, r.IsKeyword("입금"))
	assert.True(t, r.IsKeyword("취소"))
	assert.False(t, r.IsKeyword("김철수"))
}

func TestValidate_RejectsInconsistentData(t *testing.T) {
	tests := []struct {
		mutate  func(*Registry)
		name    string
		wantMsg string
	}{
		{
			name:    "deposit and withdrawal overlap",
			mutate:  func(r *Registry) { r.WithdrawalKeywords = append(r.WithdrawalKeywords, "입금") },
			wantMsg: `keyword "입금" appears in both deposit_keywords and withdrawal_keywords`,
		},
		{
			name:    "cancelled and failed overlap",
			mutate:  func(r *Registry) { r.FailedKeywords = append(r.FailedKeywords, "취소") },
			wantMsg: `keyword "취소" appears in both cancelled_keywords and failed_keywords`,
		},
		{
			name:    "exclude overlaps deposit",
			mutate:  func(r *Registry) { r.ExcludeKeywords = append(r.ExcludeKeywords, "충전") },
			wantMsg: `keyword "충전" appears in both exclude_keywords and deposit_keywords`,
		},
		{
			name:    "empty keyword list",
			mutate:  func(r *Registry) { r.FailedKeywords = nil },
			wantMsg: "failed_keywords is empty",
		},
		{
			name:    "blank keyword",
			mutate:  func(r *Registry) { r.DepositKeywords = append(r.DepositKeywords, " ") },
			wantMsg: "deposit_keywords[12] is blank",
		},
		{
			name:    "unknown merchant source",
			mutate:  func(r *Registry) { r.MerchantSources = append(r.MerchantSources, "com.unknown") },
			wantMsg: `merchant source "com.unknown" is not a monitored source`,
		},
		{
			name: "self pair",
			mutate: func(r *Registry) {
				r.EcosystemPairs = append(r.EcosystemPairs, Pair{A: "com.kakao.talk", B: "com.kakao.talk"})
			},
			wantMsg: "pairs a source with itself",
		},
		{
			name:    "bad sms pattern",
			mutate:  func(r *Registry) { r.SMSPatterns = append(r.SMSPatterns, SMSPattern{Pattern: "[broken", Bank: "X"}) },
			wantMsg: "sms pattern for X",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := defaultData()
			tt.mutate(r)
			err := r.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRegistry)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_MergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	doc := `
sources:
  com.example.bank: 예제은행
merchant_sources:
  - com.example.bank
exclude_keywords:
  - 광고
ecosystem_pairs:
  - a: com.example.bank
    b: com.kakao.talk
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "예제은행", r.BankName("com.example.bank"))
	assert.Equal(t, "토스", r.BankName("viva.republica.toss"), "defaults are kept")
	assert.True(t, r.IsMerchant("com.example.bank"))
	assert.False(t, r.IsMerchant("kr.or.zeropay.zip"), "lists replace the defaults")
	assert.Equal(t, []string{"광고"}, r.ExcludeKeywords)
	assert.True(t, r.IsEcosystemPair("com.kakao.talk", "com.example.bank"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Parse([]byte("deposit_keywords: [입금]\nwithdrawal_keywords: [입금]\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRegistry)

	_, err = Parse([]byte("sources: [not, a, map]"))
	require.Error(t, err)
}
