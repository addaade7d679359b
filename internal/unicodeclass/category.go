// Package unicodeclass classifies characters by Unicode general category
// group and block, and provides the normalization and transliteration
// helpers the text cleaner chains together.
package unicodeclass

import "unicode"

// Category is the general category group of a character.
type Category int

const (
	Other Category = iota
	Letter
	Mark
	Number
	Punctuation
	Symbol
	Separator
)

var categoryCodes = [...]byte{
	Other:       'C',
	Letter:      'L',
	Mark:        'M',
	Number:      'N',
	Punctuation: 'P',
	Symbol:      'S',
	Separator:   'Z',
}

// Code returns the one-letter Unicode group code (L, M, N, P, S, Z or C).
func (c Category) Code() byte {
	if c < 0 || int(c) >= len(categoryCodes) {
		return 'C'
	}
	return categoryCodes[c]
}

func (c Category) String() string {
	switch c {
	case Letter:
		return "Letter"
	case Mark:
		return "Mark"
	case Number:
		return "Number"
	case Punctuation:
		return "Punctuation"
	case Symbol:
		return "Symbol"
	case Separator:
		return "Separator"
	default:
		return "Other"
	}
}

// CategoryOf returns the category group of r. Control, format, surrogate,
// private-use and unassigned code points are Other.
func CategoryOf(r rune) Category {
	switch {
	case unicode.IsLetter(r):
		return Letter
	case unicode.IsMark(r):
		return Mark
	case unicode.IsNumber(r):
		return Number
	case unicode.IsPunct(r):
		return Punctuation
	case unicode.IsSymbol(r):
		return Symbol
	case unicode.Is(unicode.Z, r):
		return Separator
	default:
		return Other
	}
}

// All reports whether every rune of s falls into one of cats. It is false
// for the empty string.
func All(s string, cats ...Category) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		c := CategoryOf(r)
		ok := false
		for _, want := range cats {
			if c == want {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
