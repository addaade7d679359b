package lexicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	symspell "textnorm/pkg"
	"textnorm/pkg/options"

	"textnorm/internal/unicodeclass"
)

// customWordsTimeout bounds the custom word fetch during a load.
const customWordsTimeout = 5 * time.Second

// WordSource supplies user-added words, such as the Redis custom
// dictionary.
type WordSource interface {
	All(ctx context.Context) ([]string, error)
}

type LoaderOption func(*Loader)

// WithSymspellOptions configures both frequency tables.
func WithSymspellOptions(opts ...options.Options) LoaderOption {
	return func(l *Loader) { l.opts = append(l.opts, opts...) }
}

// WithCustomWords merges the words of src into every load.
func WithCustomWords(src WordSource) LoaderOption {
	return func(l *Loader) { l.custom = src }
}

// Loader reads the tables of one language. Every Load is eager and
// fails fast on the first unreadable table.
type Loader struct {
	lang   Language
	files  Files
	opts   []options.Options
	custom WordSource
	logger *slog.Logger
}

func NewLoader(lang Language, files Files, logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{lang: lang, files: files, logger: logger}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load reads every table from disk and returns a fresh Lexicon, so the
// same Loader serves the first load and every reload.
func (l *Loader) Load(ctx context.Context) (*Lexicon, error) {
	start := time.Now()
	f := l.files
	if f.Frequency == "" {
		return nil, errors.New("frequency table path is not set")
	}
	if f.Words == "" {
		return nil, errors.New("word list path is not set")
	}

	lex := &Lexicon{Language: l.lang}

	lex.Spell = symspell.NewSymSpell(l.opts...)
	if err := loadFrequency(lex.Spell, f.Frequency); err != nil {
		return nil, fmt.Errorf("load frequency table %s: %w", f.Frequency, err)
	}
	l.loaded("frequency", f.Frequency, lex.Spell.WordCount())

	if f.Bigram != "" {
		if err := loadBigrams(lex.Spell, f.Bigram); err != nil {
			return nil, fmt.Errorf("load bigram table %s: %w", f.Bigram, err)
		}
		l.loaded("bigram", f.Bigram, lex.Spell.BigramCount())
	}

	words, err := readList(f.Words, false)
	if err != nil {
		return nil, fmt.Errorf("load word list %s: %w", f.Words, err)
	}
	lex.Words = NewWordSet(words...)
	l.loaded("words", f.Words, lex.Words.Cardinality())

	var swear, swearJSON []string
	if f.SwearWords != "" {
		if swear, err = readList(f.SwearWords, true); err != nil {
			return nil, fmt.Errorf("load swear words %s: %w", f.SwearWords, err)
		}
	}
	if f.SwearWordsJSON != "" {
		if swearJSON, err = readJSONList(f.SwearWordsJSON); err != nil {
			return nil, fmt.Errorf("load swear words %s: %w", f.SwearWordsJSON, err)
		}
	}
	lex.SwearWords = mergeWords(swearJSON, swear)
	l.loaded("swear_words", f.SwearWords, len(lex.SwearWords))

	if f.FirstNames != "" {
		if lex.FirstNames, err = readList(f.FirstNames, false); err != nil {
			return nil, fmt.Errorf("load first names %s: %w", f.FirstNames, err)
		}
		l.loaded("first_names", f.FirstNames, len(lex.FirstNames))
	}

	custom := l.customWords(ctx)
	for _, w := range custom {
		lex.Spell.CreateDictionaryEntry(w, CustomWordCount)
		lex.Words.Add(w)
	}

	if l.lang == Vietnamese {
		if f.AccentlessFrequency != "" {
			lex.Accentless = symspell.NewSymSpell(l.opts...)
			if err := loadFrequency(lex.Accentless, f.AccentlessFrequency); err != nil {
				return nil, fmt.Errorf("load accentless table %s: %w", f.AccentlessFrequency, err)
			}
			for _, w := range custom {
				lex.Accentless.CreateDictionaryEntry(unicodeclass.Decode(w), CustomWordCount)
			}
			l.loaded("accentless", f.AccentlessFrequency, lex.Accentless.WordCount())
		} else {
			lex.Accentless = DeriveAccentless(lex.Spell, l.opts...)
			l.loaded("accentless", "derived", lex.Accentless.WordCount())
		}
	}

	l.logger.Info("lexicon loaded",
		"language", l.lang.String(),
		"custom_words", len(custom),
		"duration", time.Since(start))
	return lex, nil
}

// customWords fetches the user-added words. A failing store is logged and
// the lexicon loads without them.
func (l *Loader) customWords(ctx context.Context) []string {
	if l.custom == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, customWordsTimeout)
	defer cancel()

	words, err := l.custom.All(ctx)
	if err != nil {
		l.logger.Warn("custom words unavailable", "error", err)
		return nil
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func (l *Loader) loaded(table, path string, entries int) {
	l.logger.Info("lexicon table loaded",
		"language", l.lang.String(),
		"table", table,
		"path", path,
		"entries", entries)
}
