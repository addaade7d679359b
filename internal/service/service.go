// Package service assembles a ready-to-use normalizer from configuration.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"textnorm/internal/cleaner"
	"textnorm/internal/config"
	"textnorm/internal/corrector"
	"textnorm/internal/lexicon"
	"textnorm/internal/pipeline"
)

// Normalizer is one loaded lexicon together with everything built on it.
// It is immutable; a reload produces a new Normalizer.
type Normalizer struct {
	Lexicon  *lexicon.Lexicon
	Engine   *corrector.Engine
	Pipeline *pipeline.Pipeline
	Cleaner  *cleaner.Cleaner
}

// New wires an engine, token pipeline and line cleaner around lex.
func New(lex *lexicon.Lexicon, cfg *config.Config, tables cleaner.Tables, logger *slog.Logger) (*Normalizer, error) {
	engine, err := corrector.NewEngine(lex, cfg.CorrectorConfig(), logger)
	if err != nil {
		return nil, err
	}
	p := pipeline.ForEngine(engine)
	return &Normalizer{
		Lexicon:  lex,
		Engine:   engine,
		Pipeline: p,
		Cleaner:  cleaner.New(p, cfg.Cleaner.Options, tables, logger),
	}, nil
}

// Builder loads normalizers from one configuration. Pattern tables are
// read once; every Build reads the lexicon again, picking up custom words.
type Builder struct {
	cfg    *config.Config
	loader *lexicon.Loader
	tables cleaner.Tables
	logger *slog.Logger
}

// NewBuilder reads the pattern tables of cfg. words may be nil.
func NewBuilder(cfg *config.Config, words lexicon.WordSource, logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tables, err := cleaner.LoadTables(cfg.Patterns)
	if err != nil {
		return nil, fmt.Errorf("load pattern tables: %w", err)
	}

	opts := []lexicon.LoaderOption{lexicon.WithSymspellOptions(cfg.SymspellOptions()...)}
	if words != nil {
		opts = append(opts, lexicon.WithCustomWords(words))
	}
	return &Builder{
		cfg:    cfg,
		loader: lexicon.NewLoader(cfg.Language, cfg.Lexicon, logger, opts...),
		tables: tables,
		logger: logger,
	}, nil
}

// Build loads a fresh lexicon and wires a Normalizer around it.
func (b *Builder) Build(ctx context.Context) (*Normalizer, error) {
	lex, err := b.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s lexicon: %w", b.cfg.Language, err)
	}
	return New(lex, b.cfg, b.tables, b.logger)
}
