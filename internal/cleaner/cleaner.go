// Package cleaner normalizes whole lines of user text: markup, emails,
// URLs, emoticons and emojis become placeholder words, characters outside
// the supported scripts are dropped and every token is run through the
// spelling pipeline.
package cleaner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"textnorm/internal/entities"
	"textnorm/internal/patterns"
	"textnorm/internal/unicodeclass"
)

// Processor normalizes the tokens of a line.
type Processor interface {
	Process(text string) string
}

type Options struct {
	StripMarkup  bool `yaml:"strip_markup"`
	Contractions bool `yaml:"contractions"`
	Wiki         bool `yaml:"wiki"`
	StripAccents bool `yaml:"strip_accents"`
}

// PatternFiles locates the JSON substitution tables. Unset paths disable
// their stage.
type PatternFiles struct {
	Emoticons     string `yaml:"emoticons"`
	Emojis        string `yaml:"emojis"`
	WikiShortcuts string `yaml:"wiki_shortcuts"`
}

// Tables holds the compiled substitution tables.
type Tables struct {
	Emoticons     *patterns.Replacer
	Emojis        *patterns.Replacer
	WikiShortcuts *patterns.Replacer
}

// LoadTables reads and compiles the tables named in files.
func LoadTables(files PatternFiles) (Tables, error) {
	var (
		t   Tables
		err error
	)
	if t.Emoticons, err = loadTable(files.Emoticons, patterns.LoadEmoticons); err != nil {
		return Tables{}, err
	}
	if t.Emojis, err = loadTable(files.Emojis, patterns.LoadEmojis); err != nil {
		return Tables{}, err
	}
	if t.WikiShortcuts, err = loadTable(files.WikiShortcuts, patterns.LoadWikiShortcuts); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func loadTable(path string, decode func(io.Reader) (map[string]string, error)) (*patterns.Replacer, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern table: %w", err)
	}
	defer f.Close()

	table, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return patterns.NewReplacer(table)
}

type stage struct {
	name string
	fn   func(string) string
}

// Cleaner applies a fixed chain of stages to each line. It is safe for
// concurrent use when its Processor is.
type Cleaner struct {
	stages []stage
	logger *slog.Logger
}

func New(p Processor, opts Options, tables Tables, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}

	stages := []stage{
		{"trim", strings.TrimSpace},
		{"lowercase", strings.ToLower},
		{"nfkc", func(s string) string { return unicodeclass.Normalize(s, unicodeclass.NFKC) }},
	}
	if opts.StripMarkup {
		stages = append(stages, stage{"markup", StripMarkup})
	}
	stages = append(stages,
		stage{"emails", entities.ReplaceEmails},
		stage{"urls", entities.ReplaceURLs},
	)
	if opts.Contractions {
		stages = append(stages, stage{"contractions", patterns.MustReplacer(patterns.EnglishContractions()).ReplaceAll})
	}
	if opts.Wiki {
		stages = append(stages,
			stage{"wiki_shortcuts", tables.WikiShortcuts.ReplaceAll},
			stage{"wiki_files", patterns.ReplaceWikiFiles},
			stage{"wiki_namespaces", patterns.ReplaceWikiNamespaces},
		)
	}
	stages = append(stages,
		stage{"emoticons", tables.Emoticons.ReplaceAll},
		stage{"emojis", tables.Emojis.ReplaceAll},
		stage{"blocks", unicodeclass.FilterByBlocks},
		stage{"categories", unicodeclass.FilterByCategories},
	)
	if opts.StripAccents {
		stages = append(stages, stage{"accents", unicodeclass.StripAccents})
	}
	stages = append(stages, stage{"tokens", p.Process})

	return &Cleaner{stages: stages, logger: logger}
}

// Stages returns the stage names in order.
func (c *Cleaner) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}
	return names
}

// Clean normalizes one line.
func (c *Cleaner) Clean(line string) string {
	for _, s := range c.stages {
		line = s.fn(line)
	}
	return line
}

// CleanLines normalizes lines on up to workers goroutines and returns the
// results in input order. It stops early when ctx is done.
func (c *Cleaner) CleanLines(ctx context.Context, lines []string, workers int) ([]string, error) {
	out := make([]string, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = c.Clean(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.Debug("lines cleaned", "lines", len(lines), "workers", workers)
	return out, nil
}
