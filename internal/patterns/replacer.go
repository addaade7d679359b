// Package patterns replaces occurrences of a fixed pattern set in text:
// emoticons, emojis, contractions, wiki shortcuts, swear words and names.
package patterns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/ahocorasick"
)

// Replacer substitutes every leftmost-longest, non-overlapping occurrence
// of its patterns. Matching ignores ASCII case. A Replacer is safe for
// concurrent use.
type Replacer struct {
	ac           *ahocorasick.Automaton
	patterns     []string
	replacements []string
}

// NewReplacer compiles table, mapping each pattern to its replacement.
// Empty patterns are ignored; patterns equal up to ASCII case keep the
// replacement of the lexically smallest key.
func NewReplacer(table map[string]string) (*Replacer, error) {
	keys := make([]string, 0, len(table))
	for k := range table {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	r := &Replacer{}
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		folded := asciiLower(k)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		r.patterns = append(r.patterns, folded)
		r.replacements = append(r.replacements, table[k])
	}
	if len(r.patterns) == 0 {
		return r, nil
	}

	ac, err := ahocorasick.NewBuilder().
		AddStrings(r.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("compile %d patterns: %w", len(r.patterns), err)
	}
	r.ac = ac
	return r, nil
}

// MustReplacer is NewReplacer for tables known at compile time.
func MustReplacer(table map[string]string) *Replacer {
	r, err := NewReplacer(table)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of distinct patterns.
func (r *Replacer) Len() int {
	if r == nil {
		return 0
	}
	return len(r.patterns)
}

// ReplaceAll returns s with every match replaced. A nil or empty Replacer
// returns s unchanged.
func (r *Replacer) ReplaceAll(s string) string {
	if r == nil || r.ac == nil || s == "" {
		return s
	}

	matches := r.ac.FindAllOverlapping([]byte(asciiLower(s)))
	if len(matches) == 0 {
		return s
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		if matches[i].End != matches[j].End {
			return matches[i].End > matches[j].End
		}
		return matches[i].PatternID < matches[j].PatternID
	})

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		if m.Start < last || m.End <= m.Start {
			continue
		}
		b.WriteString(s[last:m.Start])
		b.WriteString(r.replacements[m.PatternID])
		last = m.End
	}
	b.WriteString(s[last:])
	return b.String()
}

// asciiLower folds A-Z only so byte offsets in the folded string match the
// original.
func asciiLower(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		if b == nil {
			b = []byte(s)
		}
		b[i] = c + ('a' - 'A')
	}
	if b == nil {
		return s
	}
	return string(b)
}
