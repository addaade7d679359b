package symspell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadDictionary reads whitespace-separated lines holding a term and its
// count at the given column indexes. Blank lines are skipped; a line
// without both columns or with a non-numeric count fails the whole load.
func (s *SymSpell) LoadDictionary(r io.Reader, termIndex, countIndex int) error {
	return scanColumns(r, func(lineNo int, fields []string) error {
		if len(fields) <= max(termIndex, countIndex) {
			return fmt.Errorf("line %d: %w: want %d columns, got %d", lineNo, ErrMalformedLine, max(termIndex, countIndex)+1, len(fields))
		}
		count, err := parseCount(fields[countIndex])
		if err != nil {
			return fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedLine, err)
		}
		s.CreateDictionaryEntry(fields[termIndex], count)
		return nil
	})
}

// LoadBigramDictionary reads lines holding two words starting at termIndex
// and their count at countIndex. The bigram key is the two words joined by a
// single space.
func (s *SymSpell) LoadBigramDictionary(r io.Reader, termIndex, countIndex int) error {
	return scanColumns(r, func(lineNo int, fields []string) error {
		if len(fields) <= max(termIndex+1, countIndex) {
			return fmt.Errorf("line %d: %w: want %d columns, got %d", lineNo, ErrMalformedLine, max(termIndex+1, countIndex)+1, len(fields))
		}
		count, err := parseCount(fields[countIndex])
		if err != nil {
			return fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedLine, err)
		}
		s.AddBigram(fields[termIndex]+" "+fields[termIndex+1], count)
		return nil
	})
}

func scanColumns(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(lineNo, strings.Fields(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseCount(s string) (int64, error) {
	count, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return count, nil
	}
	// some published tables carry float counts
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, err
	}
	return int64(f), nil
}
