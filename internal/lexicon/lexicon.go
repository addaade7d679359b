// Package lexicon loads the dictionaries of one language: the frequency
// and bigram tables behind spelling suggestions and segmentation, the plain
// word list, swear words and first names. A loaded Lexicon is never
// modified and is shared by any number of goroutines.
package lexicon

import (
	mapset "github.com/deckarep/golang-set/v2"

	symspell "textnorm/pkg"
	"textnorm/pkg/verbosity"
)

// CustomWordCount is the frequency given to user-added words so they
// outrank every dictionary word.
const CustomWordCount = 1_000_000_000

type Lexicon struct {
	Language Language

	// Spell holds the frequency and bigram tables.
	Spell *symspell.SymSpell
	// Accentless holds the diacritic-free frequency table. Vietnamese only.
	Accentless *symspell.SymSpell

	// Words is the set of valid lowercase forms.
	Words      mapset.Set[string]
	SwearWords []string
	FirstNames []string
}

// NewWordSet builds a read-only word set.
func NewWordSet(words ...string) mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(words...)
}

// IsKnown reports whether word is in the word list. The caller lowercases.
func (l *Lexicon) IsKnown(word string) bool {
	return l.Words != nil && l.Words.Contains(word)
}

// Suggest returns the best correction of word within maxEditDistance, or
// nothing when no term is close enough.
func (l *Lexicon) Suggest(word string, maxEditDistance int) []symspell.SuggestItem {
	return lookupTop(l.Spell, word, maxEditDistance)
}

// Segment inserts word boundaries into text using the frequency table.
func (l *Lexicon) Segment(text string, maxEditDistance int) symspell.Composition {
	return segment(l.Spell, text, maxEditDistance)
}

// SegmentAccentless segments text, which must already be transliterated,
// against the diacritic-free table. ok is false when there is none.
func (l *Lexicon) SegmentAccentless(text string, maxEditDistance int) (c symspell.Composition, ok bool) {
	if l.Accentless == nil {
		return symspell.Composition{}, false
	}
	return segment(l.Accentless, text, maxEditDistance), true
}

// Compound corrects a whole phrase using the bigram table.
func (l *Lexicon) Compound(text string, maxEditDistance int) symspell.SuggestItem {
	if l.Spell == nil {
		return symspell.SuggestItem{Term: text}
	}
	return l.Spell.LookupCompound(text, clamp(l.Spell, maxEditDistance))
}

func lookupTop(s *symspell.SymSpell, word string, maxEditDistance int) []symspell.SuggestItem {
	if s == nil {
		return nil
	}
	suggestions, err := s.Lookup(word, verbosity.Top, clamp(s, maxEditDistance))
	if err != nil {
		return nil
	}
	return suggestions
}

func segment(s *symspell.SymSpell, text string, maxEditDistance int) symspell.Composition {
	if s == nil {
		return symspell.Composition{Segmented: text, Corrected: text}
	}
	return s.WordSegmentation(text, clamp(s, maxEditDistance))
}

func clamp(s *symspell.SymSpell, maxEditDistance int) int {
	return max(0, min(maxEditDistance, s.MaxDictionaryEditDistance()))
}
