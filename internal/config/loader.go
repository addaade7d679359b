package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"textnorm/internal/lexicon"
)

// Load reads the YAML file at path on top of DefaultConfig, applies the
// environment overrides and validates the result. An empty path skips the
// file. Relative table paths in the file are resolved against its
// directory.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		resolvePaths(cfg, filepath.Dir(path))
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides the file with REDIS_ADDR, REDIS_PASSWORD, REDIS_DB,
// HTTP_ADDR and TEXTNORM_LANGUAGE. Setting REDIS_ADDR enables the custom
// word store.
func applyEnv(cfg *Config) error {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	cfg.Redis.Password = getenv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)
	cfg.Server.Addr = getenv("HTTP_ADDR", cfg.Server.Addr)

	if v := os.Getenv("TEXTNORM_LANGUAGE"); v != "" {
		lang, err := lexicon.ParseLanguage(v)
		if err != nil {
			return fmt.Errorf("TEXTNORM_LANGUAGE: %w", err)
		}
		cfg.Language = lang
	}
	return nil
}

// applyDefaults fills values a file may have zeroed.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Cleaner.Workers <= 0 {
		cfg.Cleaner.Workers = def.Cleaner.Workers
	}
	if cfg.Spelling.PrefixLength == 0 {
		cfg.Spelling.PrefixLength = def.Spelling.PrefixLength
	}
	if cfg.Spelling.TieBreak == "" {
		cfg.Spelling.TieBreak = def.Spelling.TieBreak
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = def.Redis.Addr
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

func resolvePaths(cfg *Config, dir string) {
	for _, p := range []*string{
		&cfg.Lexicon.Frequency,
		&cfg.Lexicon.Bigram,
		&cfg.Lexicon.Words,
		&cfg.Lexicon.SwearWords,
		&cfg.Lexicon.SwearWordsJSON,
		&cfg.Lexicon.FirstNames,
		&cfg.Lexicon.AccentlessFrequency,
		&cfg.Patterns.Emoticons,
		&cfg.Patterns.Emojis,
		&cfg.Patterns.WikiShortcuts,
	} {
		*p = resolvePath(*p, dir)
	}
}

// resolvePath expands ~ to the home directory and anchors relative paths
// at dir.
func resolvePath(path, dir string) string {
	switch {
	case path == "":
		return path
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	case filepath.IsAbs(path):
		return path
	default:
		return filepath.Join(dir, path)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
