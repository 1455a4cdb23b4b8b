package scanner

import (
	"unicode"
	"unicode/utf8"
)

// Classifier reports whether r is a delimiter.
type Classifier func(r rune) bool

// IsDelimiter is the default classifier: whitespace, punctuation, symbols and
// control characters are delimiters, everything else (letters, digits, marks,
// undecodable bytes) belongs to words.
func IsDelimiter(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsControl(r)
}

// WithExtra returns a classifier that additionally treats every rune in extra
// as a delimiter.
func WithExtra(base Classifier, extra string) Classifier {
	if extra == "" {
		return base
	}
	set := make(map[rune]struct{}, len(extra))
	for _, r := range extra {
		set[r] = struct{}{}
	}
	return func(r rune) bool {
		if _, ok := set[r]; ok {
			return true
		}
		return base(r)
	}
}

// Only returns a classifier where whitespace and the runes in set are the
// only delimiters.
func Only(set string) Classifier {
	return WithExtra(unicode.IsSpace, set)
}
