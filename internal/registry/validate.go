package registry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/banknotify/internal/common"
)

// ErrInvalidRegistry is returned when the static registry data is inconsistent.
var ErrInvalidRegistry = errors.New("invalid registry")

// Validate checks the registry for problems that would make classification
// non-deterministic and builds the lookup indexes. It must be called before use.
func (r *Registry) Validate() error {
	var problems []error

	lists := []struct {
		name     string
		keywords []string
	}{
		{"deposit_keywords", r.DepositKeywords},
		{"withdrawal_keywords", r.WithdrawalKeywords},
		{"exclude_keywords", r.ExcludeKeywords},
		{"cancelled_keywords", r.CancelledKeywords},
		{"failed_keywords", r.FailedKeywords},
	}
	for _, l := range lists {
		if len(l.keywords) == 0 {
			problems = append(problems, fmt.Errorf("%s is empty", l.name))
		}
		for i, kw := range l.keywords {
			if strings.TrimSpace(kw) == "" {
				problems = append(problems, fmt.Errorf("%s[%d] is blank", l.name, i))
			}
		}
	}

	problems = append(problems, overlap("deposit_keywords", r.DepositKeywords, "withdrawal_keywords", r.WithdrawalKeywords)...)
	problems = append(problems, overlap("cancelled_keywords", r.CancelledKeywords, "failed_keywords", r.FailedKeywords)...)
	problems = append(problems, overlap("exclude_keywords", r.ExcludeKeywords, "deposit_keywords", r.DepositKeywords)...)
	problems = append(problems, overlap("exclude_keywords", r.ExcludeKeywords, "withdrawal_keywords", r.WithdrawalKeywords)...)

	if len(r.Sources) == 0 {
		problems = append(problems, errors.New("sources is empty"))
	}
	for src, bank := range r.Sources {
		if strings.TrimSpace(bank) == "" {
			problems = append(problems, fmt.Errorf("source %q has no bank name", src))
		}
	}

	merchants := make(map[string]struct{}, len(r.MerchantSources))
	for _, src := range r.MerchantSources {
		if !r.IsMonitored(src) {
			problems = append(problems, fmt.Errorf("merchant source %q is not a monitored source", src))
		}
		merchants[src] = struct{}{}
	}

	for src, method := range r.SourceMethods {
		if !r.IsMonitored(src) {
			problems = append(problems, fmt.Errorf("default method source %q is not a monitored source", src))
		}
		if strings.TrimSpace(method) == "" {
			problems = append(problems, fmt.Errorf("default method for %q is blank", src))
		}
	}

	for method, kws := range r.MethodKeywords {
		for i, kw := range kws {
			if strings.TrimSpace(kw) == "" {
				problems = append(problems, fmt.Errorf("method_keywords[%s][%d] is blank", method, i))
			}
		}
	}

	pairs := make(map[Pair]struct{}, len(r.EcosystemPairs))
	for _, p := range r.EcosystemPairs {
		if p.A == p.B {
			problems = append(problems, fmt.Errorf("ecosystem pair %q pairs a source with itself", p.A))
			continue
		}
		for _, src := range []string{p.A, p.B} {
			if !r.IsMonitored(src) {
				problems = append(problems, fmt.Errorf("ecosystem pair source %q is not a monitored source", src))
			}
		}
		pairs[normalizePair(p.A, p.B)] = struct{}{}
	}

	compiled := make([]*regexp.Regexp, 0, len(r.SMSPatterns))
	for _, sp := range r.SMSPatterns {
		re, err := common.CompilePattern(sp.Pattern, sp.IgnoreCase)
		if err != nil {
			problems = append(problems, fmt.Errorf("sms pattern for %s: %w", sp.Bank, err))
			continue
		}
		if strings.TrimSpace(sp.Bank) == "" {
			problems = append(problems, fmt.Errorf("sms pattern %q has no bank", sp.Pattern))
		}
		compiled = append(compiled, re)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRegistry, errors.Join(problems...))
	}

	keywords := make(map[string]struct{})
	for _, l := range lists {
		for _, kw := range l.keywords {
			keywords[kw] = struct{}{}
		}
	}

	r.merchants = merchants
	r.pairs = pairs
	r.smsCompiled = compiled
	r.keywordSet = keywords
	return nil
}

func overlap(nameA string, a []string, nameB string, b []string) []error {
	seen := make(map[string]struct{}, len(a))
	for _, kw := range a {
		seen[kw] = struct{}{}
	}
	var problems []error
	for _, kw := range b {
		if _, ok := seen[kw]; ok {
			problems = append(problems, fmt.Errorf("keyword %q appears in both %s and %s", kw, nameA, nameB))
		}
	}
	return problems
}
