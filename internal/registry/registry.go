// Package registry holds the static lookup data the classifier runs on: which
// sources are monitored, the keyword lists and the payment-method tables.
package registry

import (
	"regexp"
	"strings"
)

// Pair is an unordered pair of sources that both notify for one real transaction.
type Pair struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// SMSPattern attributes an SMS body to a bank when Pattern matches it.
type SMSPattern struct {
	Pattern    string `yaml:"pattern"`
	Bank       string `yaml:"bank"`
	IgnoreCase bool   `yaml:"ignore_case"`
}

// Registry is loaded once per process and is read-only after Validate succeeds,
// so it is safe for concurrent use.
type Registry struct {
	Sources            map[string]string   `yaml:"sources"`
	MethodKeywords     map[string][]string `yaml:"method_keywords"`
	SourceMethods      map[string]string   `yaml:"source_methods"`
	merchants          map[string]struct{}
	pairs              map[Pair]struct{}
	DepositKeywords    []string     `yaml:"deposit_keywords"`
	WithdrawalKeywords []string     `yaml:"withdrawal_keywords"`
	ExcludeKeywords    []string     `yaml:"exclude_keywords"`
	CancelledKeywords  []string     `yaml:"cancelled_keywords"`
	FailedKeywords     []string     `yaml:"failed_keywords"`
	MerchantSources    []string     `yaml:"merchant_sources"`
	EcosystemPairs     []Pair       `yaml:"ecosystem_pairs"`
	SMSPatterns        []SMSPattern `yaml:"sms_patterns"`
	smsCompiled        []*regexp.Regexp
	keywordSet         map[string]struct{}
}

// IsMonitored reports whether sourceID has a known bank or provider mapping.
func (r *Registry) IsMonitored(sourceID string) bool {
	_, ok := r.Sources[sourceID]
	return ok
}

// BankName returns the display name for sourceID, falling back to the ID itself.
func (r *Registry) BankName(sourceID string) string {
	if name, ok := r.Sources[sourceID]; ok {
		return name
	}
	return sourceID
}

// IsMerchant reports whether "결제완료" wording from sourceID means a sale.
func (r *Registry) IsMerchant(sourceID string) bool {
	_, ok := r.merchants[sourceID]
	return ok
}

// DefaultMethod returns the payment method a source implies, if any.
func (r *Registry) DefaultMethod(sourceID string) (string, bool) {
	m, ok := r.SourceMethods[sourceID]
	return m, ok
}

// KeywordsFor returns the keyword set registered for a payment method,
// or the method name itself when none is registered.
func (r *Registry) KeywordsFor(method string) []string {
	if kws, ok := r.MethodKeywords[method]; ok && len(kws) > 0 {
		return kws
	}
	return []string{method}
}

// IsEcosystemPair reports whether a and b are registered as surfacing the same transactions.
func (r *Registry) IsEcosystemPair(a, b string) bool {
	if a == b {
		return false
	}
	_, ok := r.pairs[normalizePair(a, b)]
	return ok
}

// Pairs returns the ecosystem pairs in registration order.
func (r *Registry) Pairs() []Pair {
	out := make([]Pair, len(r.EcosystemPairs))
	copy(out, r.EcosystemPairs)
	return out
}

// IsKeyword reports whether word is one of the type or status keywords.
func (r *Registry) IsKeyword(word string) bool {
	_, ok := r.keywordSet[word]
	return ok
}

// DetectSMSBank returns the bank whose sender pattern first matches body.
func (r *Registry) DetectSMSBank(body string) (string, bool) {
	for i, re := range r.smsCompiled {
		if re.MatchString(body) {
			return r.SMSPatterns[i].Bank, true
		}
	}
	return "", false
}

func normalizePair(a, b string) Pair {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}
