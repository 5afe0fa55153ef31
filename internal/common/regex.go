package common

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// CompilePattern compiles a user-supplied pattern, optionally case-insensitive.
// The pattern is NFC-normalized first so decomposed Hangul in a YAML file
// still matches the normalized notification text.
func CompilePattern(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	pattern = norm.NFC.String(pattern)
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidConfig, pattern, err)
	}
	return re, nil
}
