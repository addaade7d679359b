// Package corrector repairs tokens missing from the dictionary: words glued
// by punctuation, repeated-letter noise and words fused without spaces.
package corrector

import (
	"fmt"
	"log/slog"
	"strings"

	"textnorm/internal/lexicon"
	"textnorm/internal/patterns"
	"textnorm/internal/unicodeclass"
)

// =====================

// Engine corrects unknown words against one Lexicon. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	config CorrectorConfig
	policy Policy
	lex    *lexicon.Lexicon
	swear  *patterns.Replacer
	names  *patterns.Replacer
	logger *slog.Logger
}

func NewEngine(lex *lexicon.Lexicon, cfg CorrectorConfig, logger *slog.Logger) (*Engine, error) {
	if lex == nil {
		return nil, fmt.Errorf("corrector: nil lexicon")
	}
	if logger == nil {
		logger = slog.Default()
	}
	swear, err := patterns.NewReplacer(patterns.Tagging(lex.SwearWords))
	if err != nil {
		return nil, fmt.Errorf("compile swear words: %w", err)
	}
	names, err := patterns.NewReplacer(patterns.Tagging(lex.FirstNames))
	if err != nil {
		return nil, fmt.Errorf("compile first names: %w", err)
	}
	return &Engine{
		config: cfg,
		policy: PolicyFor(lex.Language, cfg.TieBreak),
		lex:    lex,
		swear:  swear,
		names:  names,
		logger: logger,
	}, nil
}

func (e *Engine) Lexicon() *lexicon.Lexicon { return e.lex }

func (e *Engine) Policy() Policy { return e.policy }

func (e *Engine) Config() CorrectorConfig { return e.config }

// CorrectUnknownWord returns the best-effort correction of a lowercase
// token. The result may contain spaces.
func (e *Engine) CorrectUnknownWord(word string) string {
	return e.Correct(word).Corrected
}

// =====================
// Correction stages
// =====================

// Correct runs the correction stages in order and reports which one
// produced the result. It never fails: a token nothing can improve comes
// back noise-reduced and segmented as well as the dictionary allows.
func (e *Engine) Correct(word string) CorrectionResult {
	res := CorrectionResult{Original: word}

	split := splitOnPunctuation(word)
	if split != word {
		if corrected, ok := e.correctParts(split); ok {
			res.Corrected = corrected
			res.Stage = StageSplit
			return res
		}
	}

	reduced := ReduceBigrams(removeSpaces(split))
	tagged := e.names.ReplaceAll(e.swear.ReplaceAll(reduced))

	res.Stage = StageSegment
	accented := e.lex.Segment(tagged, e.config.SegmentationMaxEditDistance)
	res.Corrected = accented.Corrected
	res.DistanceSum = accented.DistanceSum
	res.ProbLogSum = accented.ProbLogSum

	accentless, ok := e.lex.SegmentAccentless(unicodeclass.Decode(tagged), e.config.SegmentationMaxEditDistance)
	if !ok || !e.policy.TieBreak.prefersAccentless(accentless, accented) {
		return res
	}

	remapped, ok := RemapBoundaries(tagged, accentless.Segmented)
	if !ok {
		e.logger.Debug("accentless boundaries do not fit token",
			"token", tagged, "segmented", accentless.Segmented)
		return res
	}
	e.logger.Debug("accentless segmentation preferred",
		"token", tagged,
		"accentless_distance", accentless.DistanceSum,
		"accented_distance", accented.DistanceSum)

	res.Corrected = remapped
	res.Stage = StageSegmentAccentless
	res.DistanceSum = accentless.DistanceSum
	res.ProbLogSum = accentless.ProbLogSum
	return res
}

// correctParts resolves every space-separated part to a known word or its
// top suggestion. ok is false as soon as one part has neither.
func (e *Engine) correctParts(split string) (string, bool) {
	parts := strings.Fields(split)
	for i, p := range parts {
		if e.lex.IsKnown(p) {
			continue
		}
		suggestions := e.lex.Suggest(p, e.config.SuggestMaxEditDistance)
		if len(suggestions) == 0 {
			return "", false
		}
		parts[i] = suggestions[0].Term
	}
	return strings.Join(parts, " "), true
}

// =====================
// Helpers
// =====================

// splitOnPunctuation replaces every character that is neither a letter nor
// a number with a space.
func splitOnPunctuation(word string) string {
	return strings.Map(func(r rune) rune {
		switch unicodeclass.CategoryOf(r) {
		case unicodeclass.Letter, unicodeclass.Number:
			return r
		default:
			return ' '
		}
	}, word)
}

func removeSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
