package errors

import (
	"unicode"
	"unicode/utf8"
)

// MaxWorkers bounds the worker count accepted by [ValidateWorkers].
const MaxWorkers = 1024

// ValidateThreshold checks a "within k hops" threshold. Zero is accepted and
// yields 0%, since no pair is closer than one hop; negative values are not.
func ValidateThreshold(k int) error {
	if k < 0 {
		return New(ErrCodeInvalidInput, "threshold must not be negative, got %d", k)
	}
	return nil
}

// ValidateWorkers checks a worker count. Zero means "one per CPU".
func ValidateWorkers(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "workers must not be negative, got %d", n)
	}
	if n > MaxWorkers {
		return New(ErrCodeInvalidInput, "workers too large (max %d), got %d", MaxWorkers, n)
	}
	return nil
}

// ValidateDelimiter checks an edge-list field delimiter. It must be a
// single character that is not a quote, line break or the Unicode
// replacement character.
func ValidateDelimiter(s string) error {
	if utf8.RuneCountInString(s) != 1 {
		return New(ErrCodeInvalidInput, "delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError || (unicode.IsControl(r) && r != '\t') {
		return New(ErrCodeInvalidInput, "invalid delimiter %q", s)
	}
	return nil
}
