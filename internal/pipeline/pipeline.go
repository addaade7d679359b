// Package pipeline routes the tokens of a text: tokens that are numbers,
// punctuation or known words pass through, everything else goes to the
// correction engine.
package pipeline

import (
	"strings"

	"textnorm/internal/corrector"
)

// Corrector is the correction engine as the pipeline sees it.
type Corrector interface {
	CorrectUnknownWord(word string) string
}

type Pipeline struct {
	steps     []Classifier
	corrector Corrector
}

// New returns a pipeline with explicit steps. The first step to pass a
// token decides; tokens no step passes are corrected.
func New(c Corrector, steps ...Classifier) *Pipeline {
	return &Pipeline{steps: steps, corrector: c}
}

// ForEngine builds the standard pipeline for an engine: numbers,
// punctuation, math-like tokens, dictionary words, and dictionary stems
// when the language has a stemmer.
func ForEngine(e *corrector.Engine) *Pipeline {
	lex := e.Lexicon()
	steps := []Classifier{
		Number{},
		PunctuationOrSymbol{},
		MathLike{},
		Dictionary{Lexicon: lex},
	}
	if stemmer := e.Policy().Stemmer; stemmer != "" {
		steps = append(steps, Stem{Lexicon: lex, Language: stemmer})
	}
	return New(e, steps...)
}

// Steps returns the classification steps in order.
func (p *Pipeline) Steps() []Classifier { return p.steps }

// Process normalizes every whitespace-separated token of text and joins
// the results with single spaces.
func (p *Pipeline) Process(text string) string {
	tokens := strings.Fields(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if r := p.Token(tok); r != "" {
			out = append(out, r)
		}
	}
	return strings.Join(out, " ")
}

// Token normalizes a single token.
func (p *Pipeline) Token(token string) string {
	token = strings.ToLower(token)
	if p.classify(token) == Pass {
		return token
	}
	return p.corrector.CorrectUnknownWord(token)
}

func (p *Pipeline) classify(token string) Decision {
	for _, s := range p.steps {
		if s.Classify(token) == Pass {
			return Pass
		}
	}
	return Defer
}
