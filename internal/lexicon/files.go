package lexicon

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	symspell "textnorm/pkg"
)

// ErrMalformedLine is returned for table lines missing a column or count.
var ErrMalformedLine = symspell.ErrMalformedLine

// Files names the tables of one language. Empty optional paths are
// skipped.
type Files struct {
	Frequency string `yaml:"frequency"`
	// Bigram is optional.
	Bigram string `yaml:"bigram"`
	Words  string `yaml:"words"`
	// SwearWords is a flat list; lines starting with '#' are comments.
	SwearWords string `yaml:"swear_words"`
	// SwearWordsJSON is an optional JSON array merged into SwearWords.
	SwearWordsJSON string `yaml:"swear_words_json"`
	// FirstNames is optional.
	FirstNames string `yaml:"first_names"`
	// AccentlessFrequency is optional for Vietnamese; when empty the table
	// is derived from Frequency.
	AccentlessFrequency string `yaml:"accentless_frequency"`
}

// withFile maps path read-only and hands its bytes to fn.
func withFile(path string, fn func(data []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	// an empty file cannot be mapped
	if info.Size() == 0 {
		return fn(nil)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()
	return fn(m)
}

func loadFrequency(s *symspell.SymSpell, path string) error {
	return withFile(path, func(data []byte) error {
		return s.LoadDictionary(bytes.NewReader(data), 0, 1)
	})
}

func loadBigrams(s *symspell.SymSpell, path string) error {
	return withFile(path, func(data []byte) error {
		return s.LoadBigramDictionary(bytes.NewReader(data), 0, 2)
	})
}

// readList returns the trimmed, lowercased, non-empty lines of path. With
// comments set, lines starting with '#' are skipped.
func readList(path string, comments bool) ([]string, error) {
	var out []string
	err := withFile(path, func(data []byte) error {
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || comments && strings.HasPrefix(line, "#") {
				continue
			}
			out = append(out, strings.ToLower(line))
		}
		return sc.Err()
	})
	return out, err
}

func readJSONList(path string) ([]string, error) {
	var out []string
	err := withFile(path, func(data []byte) error {
		var words []string
		if err := json.Unmarshal(data, &words); err != nil {
			return err
		}
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				out = append(out, w)
			}
		}
		return nil
	})
	return out, err
}

// mergeWords returns the distinct words of lists in first-seen order.
func mergeWords(lists ...[]string) []string {
	seen := NewWordSet()
	var out []string
	for _, list := range lists {
		for _, w := range list {
			if seen.Add(w) {
				out = append(out, w)
			}
		}
	}
	return out
}
