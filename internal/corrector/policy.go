package corrector

import (
	"fmt"
	"strings"

	"textnorm/internal/lexicon"
	"textnorm/internal/unicodeclass"
	symspell "textnorm/pkg"
)

// TieBreak picks between the diacritic-free and the accented segmentation
// of a Vietnamese token.
type TieBreak int

const (
	// LegacyTieBreak reproduces the deployed comparator. Its probability
	// step compares the diacritic-free score with itself, so equal edit
	// distances always fall through to the accented hypothesis.
	LegacyTieBreak TieBreak = iota
	// ProbabilityTieBreak lets the diacritic-free hypothesis win an edit
	// distance tie when its log probability is higher.
	ProbabilityTieBreak
)

func (t TieBreak) String() string {
	switch t {
	case ProbabilityTieBreak:
		return "probability"
	default:
		return "legacy"
	}
}

func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return LegacyTieBreak, nil
	case "probability":
		return ProbabilityTieBreak, nil
	default:
		return 0, fmt.Errorf("unknown tie-break %q", s)
	}
}

// prefersAccentless applies, in order: a transliterated accentless result
// equal to the accented one keeps the accented result; then the lower edit
// distance wins; then the probability step; otherwise the accented result.
// Only the accentless side is transliterated, so hypotheses that differ in
// diacritics alone do not agree.
func (t TieBreak) prefersAccentless(accentless, accented symspell.Composition) bool {
	if unicodeclass.Decode(accentless.Corrected) == accented.Corrected {
		return false
	}
	if accentless.DistanceSum != accented.DistanceSum {
		return accentless.DistanceSum < accented.DistanceSum
	}
	switch t {
	case ProbabilityTieBreak:
		return accentless.ProbLogSum > accented.ProbLogSum
	default:
		lhs, rhs := accentless.ProbLogSum, accentless.ProbLogSum
		return lhs > rhs
	}
}

// Policy carries what differs between languages.
type Policy struct {
	Language lexicon.Language
	// TieBreak applies when the lexicon has a diacritic-free table.
	TieBreak TieBreak
	// Stemmer names the snowball stemmer; empty disables stem lookups.
	Stemmer string
}

// PolicyFor returns the policy of lang.
func PolicyFor(lang lexicon.Language, tieBreak TieBreak) Policy {
	p := Policy{Language: lang, TieBreak: tieBreak}
	if lang == lexicon.English {
		p.Stemmer = "english"
	}
	return p
}
