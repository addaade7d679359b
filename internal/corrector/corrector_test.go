package corrector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symspell "textnorm/pkg"

	"textnorm/internal/lexicon"
)

func newSpell(entries map[string]int64) *symspell.SymSpell {
	s := symspell.NewSymSpell()
	for term, count := range entries {
		s.CreateDictionaryEntry(term, count)
	}
	return s
}

func englishLexicon() *lexicon.Lexicon {
	words := []string{"hello", "how", "are", "you", "a", "now", "world"}
	entries := make(map[string]int64, len(words))
	for _, w := range words {
		entries[w] = 1000
	}
	return &lexicon.Lexicon{
		Language:   lexicon.English,
		Spell:      newSpell(entries),
		Words:      lexicon.NewWordSet(words...),
		SwearWords: []string{"fuck"},
		FirstNames: []string{"john"},
	}
}

func newEngine(t *testing.T, lex *lexicon.Lexicon, cfg CorrectorConfig) *Engine {
	t.Helper()
	e, err := NewEngine(lex, cfg, nil)
	require.NoError(t, err)
	return e
}

func TestCorrectSplitsOnPunctuation(t *testing.T) {
	t.Parallel()

	e := newEngine(t, englishLexicon(), DefaultConfig())

	tests := []struct {
		input string
		want  string
	}{
		{"hello.how.are.you", "hello how are you"},
		{"helo,wrld", "hello world"},
		{"hello!", "hello"},
	}
	for _, tt := range tests {
		got := e.Correct(tt.input)
		assert.Equal(t, tt.want, got.Corrected, tt.input)
		assert.Equal(t, StageSplit, got.Stage, tt.input)
		assert.Equal(t, tt.want, e.CorrectUnknownWord(tt.input), tt.input)
	}
}

func TestCorrectFallsThroughToSegmentation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.SegmentationMaxEditDistance = 0
	e := newEngine(t, englishLexicon(), cfg)

	got := e.Correct("zzqx.hello")
	assert.Equal(t, StageSegment, got.Stage)

	got = e.Correct("helllohowareyou")
	assert.Equal(t, StageSegment, got.Stage)
	assert.Equal(t, "hello how are you", got.Corrected)
	assert.Equal(t, 3, got.DistanceSum)
}

func TestCorrectTagsSwearWordsBeforeSegmentation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.SegmentationMaxEditDistance = 0
	e := newEngine(t, englishLexicon(), cfg)

	assert.Equal(t, "you are a fuck now", e.CorrectUnknownWord("youareafucknow"))
	assert.Equal(t, "hello john", e.CorrectUnknownWord("hellojohn"))
}

func TestCorrectIsTotal(t *testing.T) {
	t.Parallel()

	e := newEngine(t, englishLexicon(), DefaultConfig())
	for _, input := range []string{"", "x", "...", "\ufb00", "\u0301", "qqqqqqqqqqqqqqqqqqqqqqqqq"} {
		assert.NotPanics(t, func() { e.CorrectUnknownWord(input) }, input)
	}
	assert.Equal(t, "", e.CorrectUnknownWord(""))
}

func vietnameseLexicon() *lexicon.Lexicon {
	return &lexicon.Lexicon{
		Language:   lexicon.Vietnamese,
		Spell:      newSpell(map[string]int64{"xin": 100}),
		Accentless: newSpell(map[string]int64{"xin": 100, "chao": 100, "ban": 100}),
		Words:      lexicon.NewWordSet("xin"),
	}
}

func TestVietnameseAccentlessHypothesisWins(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.SegmentationMaxEditDistance = 0
	e := newEngine(t, vietnameseLexicon(), cfg)

	got := e.Correct("xinchàobạn")
	assert.Equal(t, StageSegmentAccentless, got.Stage)
	assert.Equal(t, "xin chào bạn", got.Corrected)
	assert.Equal(t, 2, got.DistanceSum)
}

func TestVietnameseAccentlessWinsOverDiacriticGuess(t *testing.T) {
	t.Parallel()

	lex := &lexicon.Lexicon{
		Language:   lexicon.Vietnamese,
		Spell:      newSpell(map[string]int64{"xin": 100, "chào": 100}),
		Accentless: newSpell(map[string]int64{"xin": 100, "chao": 100}),
		Words:      lexicon.NewWordSet("xin", "chào"),
	}
	e := newEngine(t, lex, DefaultConfig())

	got := e.Correct("xinchao")
	assert.Equal(t, StageSegmentAccentless, got.Stage)
	assert.Equal(t, "xin chao", got.Corrected)
	assert.Equal(t, 1, got.DistanceSum)
}

func TestVietnameseEqualDistanceKeepsAccented(t *testing.T) {
	t.Parallel()

	lex := &lexicon.Lexicon{
		Language:   lexicon.Vietnamese,
		Spell:      newSpell(map[string]int64{"tiếng": 100, "việt": 100}),
		Accentless: newSpell(map[string]int64{"tieng": 100, "viet": 100}),
		Words:      lexicon.NewWordSet("tiếng", "việt"),
	}
	cfg := DefaultConfig()
	cfg.SegmentationMaxEditDistance = 0
	e := newEngine(t, lex, cfg)

	got := e.Correct("tiếngviệt")
	assert.Equal(t, StageSegment, got.Stage)
	assert.Equal(t, "tiếng việt", got.Corrected)
}

func TestTieBreak(t *testing.T) {
	t.Parallel()

	accentless := symspell.Composition{Corrected: "xin chao ban", DistanceSum: 2, ProbLogSum: -10}
	accented := symspell.Composition{Corrected: "xin chàob ạn", DistanceSum: 2, ProbLogSum: -20}

	tests := []struct {
		name       string
		tieBreak   TieBreak
		accentless symspell.Composition
		accented   symspell.Composition
		want       bool
	}{
		{"agreement", ProbabilityTieBreak, accentless, symspell.Composition{Corrected: "xin chao ban", DistanceSum: 9}, false},
		{"diacritics differ", LegacyTieBreak, accentless, symspell.Composition{Corrected: "xin chào bạn", DistanceSum: 9}, true},
		{"lower distance wins", LegacyTieBreak, accentless, symspell.Composition{Corrected: "x", DistanceSum: 3}, true},
		{"higher distance loses", LegacyTieBreak, symspell.Composition{Corrected: "x", DistanceSum: 4}, accented, false},
		{"legacy never prefers on probability", LegacyTieBreak, accentless, accented, false},
		{"probability prefers the likelier", ProbabilityTieBreak, accentless, accented, true},
		{"probability keeps accented when less likely", ProbabilityTieBreak, accented, accentless, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.tieBreak.prefersAccentless(tt.accentless, tt.accented))
		})
	}
}

func TestParseTieBreak(t *testing.T) {
	t.Parallel()

	tb, err := ParseTieBreak("Probability")
	require.NoError(t, err)
	assert.Equal(t, ProbabilityTieBreak, tb)

	tb, err = ParseTieBreak("")
	require.NoError(t, err)
	assert.Equal(t, LegacyTieBreak, tb)

	_, err = ParseTieBreak("coin-flip")
	assert.Error(t, err)
}

func TestPolicyFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "english", PolicyFor(lexicon.English, LegacyTieBreak).Stemmer)
	assert.Empty(t, PolicyFor(lexicon.Vietnamese, LegacyTieBreak).Stemmer)
}

func TestNewEngineRejectsNilLexicon(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(nil, DefaultConfig(), nil)
	assert.Error(t, err)
}
