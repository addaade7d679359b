// Package config loads the textnorm configuration from YAML with
// environment overrides.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"textnorm/pkg/options"

	"textnorm/internal/cleaner"
	"textnorm/internal/corrector"
	"textnorm/internal/lexicon"
)

type Config struct {
	Language lexicon.Language     `yaml:"language"`
	Lexicon  lexicon.Files        `yaml:"lexicon"`
	Patterns cleaner.PatternFiles `yaml:"patterns"`
	Cleaner  CleanerConfig        `yaml:"cleaner"`
	Spelling SpellingConfig       `yaml:"spelling"`
	Redis    RedisConfig          `yaml:"redis"`
	Server   ServerConfig         `yaml:"server"`
	Log      LogConfig            `yaml:"log"`
}

type CleanerConfig struct {
	cleaner.Options `yaml:",inline"`
	// Workers bounds the goroutines of batch cleaning.
	Workers int `yaml:"workers"`
}

type SpellingConfig struct {
	MaxEditDistance             int    `yaml:"max_edit_distance"`
	PrefixLength                int    `yaml:"prefix_length"`
	CountThreshold              int64  `yaml:"count_threshold"`
	SegmentationMaxEditDistance int    `yaml:"segmentation_max_edit_distance"`
	TieBreak                    string `yaml:"tie_break"` // legacy or probability
}

// RedisConfig locates the custom word store. It is off unless enabled
// here or by REDIS_ADDR.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns the configuration used when a value is not set.
func DefaultConfig() *Config {
	return &Config{
		Language: lexicon.English,
		Cleaner:  CleanerConfig{Workers: 4},
		Spelling: SpellingConfig{
			MaxEditDistance:             options.DefaultOptions.MaxDictionaryEditDistance,
			PrefixLength:                options.DefaultOptions.PrefixLength,
			CountThreshold:              options.DefaultOptions.CountThreshold,
			SegmentationMaxEditDistance: 2,
			TieBreak:                    corrector.LegacyTieBreak.String(),
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// SymspellOptions returns the index options for both frequency tables.
func (c *Config) SymspellOptions() []options.Options {
	return []options.Options{
		options.WithMaxDictionaryEditDistance(c.Spelling.MaxEditDistance),
		options.WithPrefixLength(c.Spelling.PrefixLength),
		options.WithCountThreshold(c.Spelling.CountThreshold),
	}
}

// CorrectorConfig returns the engine settings. The tie-break was checked
// by Validate.
func (c *Config) CorrectorConfig() corrector.CorrectorConfig {
	tb, _ := corrector.ParseTieBreak(c.Spelling.TieBreak)
	return corrector.CorrectorConfig{
		SuggestMaxEditDistance:      c.Spelling.MaxEditDistance,
		SegmentationMaxEditDistance: c.Spelling.SegmentationMaxEditDistance,
		TieBreak:                    tb,
	}
}

// NewLogger builds the process logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
