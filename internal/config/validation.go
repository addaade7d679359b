package config

import (
	"errors"
	"fmt"
	"strings"

	"textnorm/internal/corrector"
	"textnorm/internal/lexicon"
)

// ErrInvalidConfig is matched by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Validate checks the configuration and returns all errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors
	errs = append(errs, c.validateLexicon()...)
	errs = append(errs, c.validateSpelling()...)
	if c.Server.Addr == "" {
		errs = append(errs, ValidationError{"server.addr", "must be set"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateLexicon() ValidationErrors {
	var errs ValidationErrors
	if c.Language != lexicon.English && c.Language != lexicon.Vietnamese {
		errs = append(errs, ValidationError{"language", "must be en or vi"})
	}
	if c.Lexicon.Frequency == "" {
		errs = append(errs, ValidationError{"lexicon.frequency", "path is required"})
	}
	if c.Lexicon.Words == "" {
		errs = append(errs, ValidationError{"lexicon.words", "path is required"})
	}
	if c.Language == lexicon.English && c.Lexicon.AccentlessFrequency != "" {
		errs = append(errs, ValidationError{"lexicon.accentless_frequency", "only used for vi"})
	}
	return errs
}

func (c *Config) validateSpelling() ValidationErrors {
	var errs ValidationErrors
	s := c.Spelling
	if s.MaxEditDistance < 0 {
		errs = append(errs, ValidationError{"spelling.max_edit_distance", "must not be negative"})
	}
	if s.PrefixLength <= s.MaxEditDistance {
		errs = append(errs, ValidationError{"spelling.prefix_length", "must exceed max_edit_distance"})
	}
	if s.CountThreshold < 0 {
		errs = append(errs, ValidationError{"spelling.count_threshold", "must not be negative"})
	}
	if s.SegmentationMaxEditDistance < 0 || s.SegmentationMaxEditDistance > s.MaxEditDistance {
		errs = append(errs, ValidationError{"spelling.segmentation_max_edit_distance", "must be between 0 and max_edit_distance"})
	}
	if _, err := corrector.ParseTieBreak(s.TieBreak); err != nil {
		errs = append(errs, ValidationError{"spelling.tie_break", err.Error()})
	}
	return errs
}
