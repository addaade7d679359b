package unicodeclass

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalization form names accepted by Normalize.
const (
	NFC  = "nfc"
	NFD  = "nfd"
	NFKC = "nfkc"
	NFKD = "nfkd"
)

// FilterByBlocks keeps the characters of s that belong to an allowed block.
func FilterByBlocks(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(Allowed, r) {
			return r
		}
		return -1
	}, s)
}

// FilterByCategories drops control, format, private-use and unassigned
// characters.
func FilterByCategories(s string) string {
	return strings.Map(func(r rune) rune {
		if CategoryOf(r) == Other {
			return -1
		}
		return r
	}, s)
}

// Normalize applies the named normalization form. An empty form means
// NFKD; an unknown form yields the empty string.
func Normalize(s, form string) string {
	switch form {
	case NFC:
		return norm.NFC.String(s)
	case NFD:
		return norm.NFD.String(s)
	case NFKC:
		return norm.NFKC.String(s)
	case NFKD, "":
		return norm.NFKD.String(s)
	default:
		return ""
	}
}

// Decode transliterates s to ASCII.
func Decode(s string) string {
	return unidecode.Unidecode(s)
}

// StripAccents removes combining marks and leaves base letters, so "tiếng"
// becomes "tieng". Letters without a decomposition, such as "đ", are kept.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
