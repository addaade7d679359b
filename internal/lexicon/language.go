package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownLanguage = errors.New("unknown language")

type Language int

const (
	English Language = iota
	Vietnamese
)

func (l Language) String() string {
	switch l {
	case English:
		return "en"
	case Vietnamese:
		return "vi"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// ParseLanguage accepts ISO codes and English names, in any case.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "eng", "english":
		return English, nil
	case "vi", "vie", "vietnamese":
		return Vietnamese, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
}

// MarshalText and UnmarshalText let Language appear in YAML and JSON.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	lang, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = lang
	return nil
}
