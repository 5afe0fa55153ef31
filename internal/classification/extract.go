package classification

import (
	"regexp"
	"strings"

	"github.com/Veraticus/banknotify/internal/registry"
)

var (
	amountPattern  = regexp.MustCompile(`\d[\d,]*\s*원`)
	accountPattern = regexp.MustCompile(`\d{2,6}[-*]\d{2,8}[-*]?\d{0,6}`)

	// Sender names are whole runs of 2-5 Hangul syllables; longer runs are phrases, not names.
	// A trailing 님 ends the name even when more syllables follow ("홍길동님께").
	nameAfterAmount = regexp.MustCompile(`^\s*([가-힣]{2,5}?)(?:님|[^가-힣]|$)`)
	nameHonorific   = regexp.MustCompile(`(?:^|[^가-힣])([가-힣]{2,5})님`)
	nameLabelled    = regexp.MustCompile(`(?:보낸\s*분|입금자|보내신\s*분)\s*[:\s]\s*([가-힣]{2,5})(?:[^가-힣]|$)`)
	storefrontName  = regexp.MustCompile(`([^\s\[\]()]{1,20}?)에서`)
)

// Words the honorific rule picks up that address the reader rather than name a sender.
var notNames = map[string]struct{}{
	"고객": {},
	"회원": {},
}

type fields struct {
	amount  *string
	account *string
	sender  *string
}

func extractFields(reg *registry.Registry, sourceID, text string) fields {
	var f fields
	if m := amountPattern.FindString(text); m != "" {
		f.amount = &m
	}
	if m := accountPattern.FindString(text); m != "" {
		f.account = &m
	}
	if reg.IsMerchant(sourceID) {
		f.sender = storefront(text)
	} else {
		f.sender = senderName(reg, text, f.amount)
	}
	return f
}

// senderName tries the after-amount, honorific and label rules in that order.
// Each rule offers its candidates left to right; the first that is neither a
// keyword nor a form of address wins.
func senderName(reg *registry.Registry, text string, amount *string) *string {
	var rules []func() []string
	if amount != nil {
		rules = append(rules, func() []string {
			idx := strings.Index(text, *amount)
			return submatches(nameAfterAmount, text[idx+len(*amount):])
		})
	}
	rules = append(rules,
		func() []string { return submatches(nameHonorific, text) },
		func() []string { return submatches(nameLabelled, text) },
	)

	for _, rule := range rules {
		for _, name := range rule() {
			if name == "" || reg.IsKeyword(name) {
				continue
			}
			if _, skip := notNames[name]; skip {
				continue
			}
			return &name
		}
	}
	return nil
}

func storefront(text string) *string {
	name := strings.TrimSpace(submatch(storefrontName, text))
	if name == "" {
		return nil
	}
	return &name
}

func submatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func submatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if len(m) >= 2 {
			out = append(out, m[1])
		}
	}
	return out
}
