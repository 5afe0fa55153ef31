// Package dedup suppresses the second and later notifications for one real
// transaction when several apps report it within a short window.
package dedup

import (
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Default windows and capacity.
const (
	DefaultExactWindow = 30 * time.Second
	DefaultFuzzyWindow = 10 * time.Second
	DefaultMaxEntries  = 512
)

// maskRunes are the characters banks use to redact parts of a name.
const maskRunes = "*○"

type entry struct {
	at      time.Time
	amount  string
	sender  *string
	source  string
	sources []string
	matched bool
}

// PairFunc reports whether two distinct sources surface the same transactions.
type PairFunc func(a, b string) bool

// Store holds recently accepted transactions. One Store is shared by every
// caller in a process; all methods are safe for concurrent use.
type Store struct {
	now         func() time.Time
	isPair      PairFunc
	entries     []entry
	exactWindow time.Duration
	fuzzyWindow time.Duration
	maxEntries  int
	mu          sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithExactWindow sets how long an exact amount+name match counts as a duplicate.
func WithExactWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.exactWindow = d
		}
	}
}

// WithFuzzyWindow sets the window for similar-name and ecosystem matches.
func WithFuzzyWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.fuzzyWindow = d
		}
	}
}

// WithEcosystemPairs registers the source pairing used by the ecosystem rule.
func WithEcosystemPairs(fn PairFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.isPair = fn
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxEntries caps retained entries; the oldest are evicted first.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:         time.Now,
		isPair:      func(string, string) bool { return false },
		exactWindow: DefaultExactWindow,
		fuzzyWindow: DefaultFuzzyWindow,
		maxEntries:  DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsDuplicate reports whether (amount, sender) was already accepted from a
// different source within the window. When it was, the earlier entry is
// consumed and cannot match again. Otherwise the transaction is recorded.
// A source never duplicates itself, so two identical deposits arriving
// through the same app are both accepted.
func (s *Store) IsDuplicate(amount, sender *string, source string) bool {
	dup, _ := s.Check(amount, sender, source)
	return dup
}

// Check behaves like IsDuplicate and also returns, sorted, the sources that
// reported the matched transaction, source included. The list is nil when
// the transaction was not a duplicate.
func (s *Store) Check(amount, sender *string, source string) (bool, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purge(now)

	if amount == nil || strings.TrimSpace(*amount) == "" {
		return false, nil
	}

	i := s.find(now, *amount, source, s.exactWindow, func(e entry) bool {
		return sameName(e.sender, sender)
	})
	if i < 0 {
		i = s.find(now, *amount, source, s.fuzzyWindow, func(e entry) bool {
			return e.sender != nil && sender != nil && *e.sender != *sender &&
				NamesAreSimilar(*e.sender, *sender)
		})
	}
	if i < 0 {
		i = s.find(now, *amount, source, s.fuzzyWindow, func(e entry) bool {
			return s.isPair(e.source, source)
		})
	}
	if i >= 0 {
		e := &s.entries[i]
		e.matched = true
		if !slices.Contains(e.sources, source) {
			e.sources = append(e.sources, source)
		}
		out := slices.Clone(e.sources)
		slices.Sort(out)
		return true, out
	}

	s.entries = append(s.entries, entry{
		at:      now,
		amount:  *amount,
		sender:  cloneString(sender),
		source:  source,
		sources: []string{source},
	})
	if over := len(s.entries) - s.maxEntries; over > 0 {
		s.entries = slices.Delete(s.entries, 0, over)
	}
	return false, nil
}

// find returns the index of the oldest unmatched entry with the same amount,
// a different source and an age under window for which match holds, or -1.
func (s *Store) find(now time.Time, amount, source string, window time.Duration, match func(entry) bool) int {
	return slices.IndexFunc(s.entries, func(e entry) bool {
		return !e.matched &&
			e.amount == amount &&
			e.source != source &&
			now.Sub(e.at) < window &&
			match(e)
	})
}

// SourcesFor lists, sorted, every source that reported exactly (amount, sender)
// among the retained entries, including sources whose report was suppressed as
// a duplicate of such an entry. It does not change any state.
func (s *Store) SourcesFor(amount, sender *string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount == nil {
		return nil
	}
	var out []string
	for _, e := range s.entries {
		if e.amount != *amount || !sameName(e.sender, sender) {
			continue
		}
		for _, src := range e.sources {
			if !slices.Contains(out, src) {
				out = append(out, src)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reset drops every entry.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// purge drops entries older than twice the exact window. A clock that moved
// backwards yields a negative age, which never expires an entry.
func (s *Store) purge(now time.Time) {
	limit := 2 * s.exactWindow
	s.entries = slices.DeleteFunc(s.entries, func(e entry) bool {
		return now.Sub(e.at) > limit
	})
}

// NamesAreSimilar reports whether a and b plausibly render the same person:
// equal, one containing the other, or one masked with matching first and last
// characters.
func NamesAreSimilar(a, b string) bool {
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	aMasked, bMasked := strings.ContainsAny(a, maskRunes), strings.ContainsAny(b, maskRunes)
	if aMasked == bMasked {
		return false
	}
	return edgesMatch(a, b)
}

func edgesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	aFirst, _ := utf8.DecodeRuneInString(a)
	bFirst, _ := utf8.DecodeRuneInString(b)
	aLast, _ := utf8.DecodeLastRuneInString(a)
	bLast, _ := utf8.DecodeLastRuneInString(b)
	return aFirst == bFirst && aLast == bLast
}

func sameName(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
