package lexicon

import (
	"slices"
	"strings"

	symspell "textnorm/pkg"
	"textnorm/pkg/options"

	"textnorm/internal/unicodeclass"
)

// DeriveAccentless builds the diacritic-free table from an accented one.
// Words that transliterate to the same form have their counts summed;
// forms without an ASCII lowercase letter or containing a space are
// dropped.
func DeriveAccentless(accented *symspell.SymSpell, opts ...options.Options) *symspell.SymSpell {
	counts := make(map[string]int64)
	accented.Range(func(term string, count int64) bool {
		counts[unicodeclass.Decode(term)] += count
		return true
	})

	out := symspell.NewSymSpell(append(slices.Clip(opts), options.WithInitialCapacity(len(counts)))...)
	for term, count := range counts {
		if !keepAccentless(term) {
			continue
		}
		out.CreateDictionaryEntry(term, count)
	}
	return out
}

func keepAccentless(term string) bool {
	if strings.Contains(term, " ") {
		return false
	}
	return strings.IndexFunc(term, func(r rune) bool { return 'a' <= r && r <= 'z' }) >= 0
}
