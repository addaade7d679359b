package pipeline

import (
	"errors"
	"strconv"

	"github.com/kljensen/snowball"

	"textnorm/internal/lexicon"
	"textnorm/internal/unicodeclass"
)

// Decision is the outcome of one classification step.
type Decision int

const (
	// Defer hands the token to the next step.
	Defer Decision = iota
	// Pass keeps the token unchanged.
	Pass
)

func (d Decision) String() string {
	if d == Pass {
		return "pass"
	}
	return "defer"
}

// Classifier decides whether a lowercase token is left as it is.
type Classifier interface {
	Name() string
	Classify(token string) Decision
}

// Number passes tokens that parse as a floating point literal, including
// ones too large to represent.
type Number struct{}

func (Number) Name() string { return "number" }

func (Number) Classify(token string) Decision {
	_, err := strconv.ParseFloat(token, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return Pass
	}
	return Defer
}

// PunctuationOrSymbol passes tokens made only of punctuation and symbols.
type PunctuationOrSymbol struct{}

func (PunctuationOrSymbol) Name() string { return "punctuation" }

func (PunctuationOrSymbol) Classify(token string) Decision {
	return passIf(unicodeclass.All(token, unicodeclass.Punctuation, unicodeclass.Symbol))
}

// MathLike passes equation-like tokens such as "2+2=4".
type MathLike struct{}

func (MathLike) Name() string { return "math" }

func (MathLike) Classify(token string) Decision {
	return passIf(unicodeclass.All(token, unicodeclass.Number, unicodeclass.Symbol, unicodeclass.Punctuation))
}

// Dictionary passes words of the lexicon word list.
type Dictionary struct {
	Lexicon *lexicon.Lexicon
}

func (Dictionary) Name() string { return "dictionary" }

func (d Dictionary) Classify(token string) Decision {
	return passIf(d.Lexicon.IsKnown(token))
}

// Stem passes words whose snowball stem is in the word list. A stemmer
// error counts as no match.
type Stem struct {
	Lexicon  *lexicon.Lexicon
	Language string
}

func (Stem) Name() string { return "stem" }

func (s Stem) Classify(token string) Decision {
	stem, err := snowball.Stem(token, s.Language, true)
	if err != nil {
		return Defer
	}
	return passIf(s.Lexicon.IsKnown(stem))
}

func passIf(ok bool) Decision {
	if ok {
		return Pass
	}
	return Defer
}
