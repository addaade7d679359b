// Package symspell implements the Symmetric Delete spelling correction
// index: a frequency dictionary expanded into prefix delete variants, fuzzy
// lookup within a bounded edit distance, word segmentation of text with
// missing spaces and bigram-aware compound correction.
//
// An index is built once and is safe for concurrent reads afterwards.
package symspell

import (
	"errors"
	"math"
	"sort"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"

	"textnorm/pkg/options"
	"textnorm/pkg/verbosity"
)

// N is the corpus size the reference frequency dictionaries were counted on.
const N = 1024908267229.0

var (
	// ErrEditDistanceTooLarge is returned by Lookup when the requested
	// distance exceeds the distance the index was built for.
	ErrEditDistanceTooLarge = errors.New("max edit distance exceeds dictionary edit distance")
	// ErrMalformedLine is returned by the dictionary loaders.
	ErrMalformedLine = errors.New("malformed dictionary line")
)

// SuggestItem is a correction candidate.
type SuggestItem struct {
	Term     string `json:"term"`
	Distance int    `json:"distance"`
	Count    int64  `json:"count"`
}

type SymSpell struct {
	opts options.SymspellOptions

	words          map[string]int64
	belowThreshold map[string]int64
	deletes        map[string][]string
	bigrams        map[string]int64
	bigramCountMin int64
	maxLength      int // longest term in runes
}

func NewSymSpell(opts ...options.Options) *SymSpell {
	cfg := options.Resolve(opts...)
	return &SymSpell{
		opts:           cfg,
		words:          make(map[string]int64, cfg.InitialCapacity),
		belowThreshold: make(map[string]int64),
		deletes:        make(map[string][]string, cfg.InitialCapacity*4),
		bigrams:        make(map[string]int64),
		bigramCountMin: math.MaxInt64,
	}
}

// MaxDictionaryEditDistance reports the distance the index was built for.
func (s *SymSpell) MaxDictionaryEditDistance() int { return s.opts.MaxDictionaryEditDistance }

// MaxLength reports the longest term in the dictionary, in runes.
func (s *SymSpell) MaxLength() int { return s.maxLength }

// WordCount reports the number of valid terms.
func (s *SymSpell) WordCount() int { return len(s.words) }

// BigramCount reports the number of loaded bigrams.
func (s *SymSpell) BigramCount() int { return len(s.bigrams) }

// Count returns the frequency of term and whether it is a valid term.
func (s *SymSpell) Count(term string) (int64, bool) {
	c, ok := s.words[term]
	return c, ok
}

// Range calls fn for every valid term, in no particular order, until fn
// returns false.
func (s *SymSpell) Range(fn func(term string, count int64) bool) {
	for term, count := range s.words {
		if !fn(term, count) {
			return
		}
	}
}

// CreateDictionaryEntry adds term with count to the index, or adds count to
// an existing term. It reports whether a new valid term was created.
// Terms below the count threshold are held back until their accumulated
// count reaches it.
func (s *SymSpell) CreateDictionaryEntry(term string, count int64) bool {
	if term == "" {
		return false
	}
	if count <= 0 {
		if s.opts.CountThreshold > 0 {
			return false
		}
		count = 0
	}

	if s.opts.CountThreshold > 1 {
		if prev, ok := s.belowThreshold[term]; ok {
			count = saturatingAdd(prev, count)
			if count < s.opts.CountThreshold {
				s.belowThreshold[term] = count
				return false
			}
			delete(s.belowThreshold, term)
		} else if prev, ok := s.words[term]; ok {
			s.words[term] = saturatingAdd(prev, count)
			return false
		} else if count < s.opts.CountThreshold {
			s.belowThreshold[term] = count
			return false
		}
	} else if prev, ok := s.words[term]; ok {
		s.words[term] = saturatingAdd(prev, count)
		return false
	}

	s.words[term] = count
	if n := utf8.RuneCountInString(term); n > s.maxLength {
		s.maxLength = n
	}

	s.editsPrefix(term).Each(func(del string) bool {
		s.deletes[del] = append(s.deletes[del], term)
		return false
	})
	return true
}

// AddBigram records the frequency of a two-word sequence.
func (s *SymSpell) AddBigram(bigram string, count int64) {
	s.bigrams[bigram] = count
	if count < s.bigramCountMin {
		s.bigramCountMin = count
	}
}

func (s *SymSpell) editsPrefix(term string) mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet[string]()
	runes := []rune(term)
	if len(runes) <= s.opts.MaxDictionaryEditDistance {
		set.Add("")
	}
	if len(runes) > s.opts.PrefixLength {
		runes = runes[:s.opts.PrefixLength]
	}
	set.Add(string(runes))
	s.edits(runes, 0, set)
	return set
}

func (s *SymSpell) edits(word []rune, distance int, set mapset.Set[string]) {
	distance++
	if len(word) <= 1 {
		return
	}
	for i := range word {
		del := deleteAt(word, i)
		if set.Add(string(del)) && distance < s.opts.MaxDictionaryEditDistance {
			s.edits(del, distance, set)
		}
	}
}

// Lookup finds suggestions for input within maxEditDistance, sorted by
// distance ascending and count descending. An exact match short-circuits
// unless v is verbosity.All. Empty input has no suggestions.
func (s *SymSpell) Lookup(input string, v verbosity.Verbosity, maxEditDistance int) ([]SuggestItem, error) {
	if maxEditDistance > s.opts.MaxDictionaryEditDistance {
		return nil, ErrEditDistanceTooLarge
	}
	if input == "" {
		return nil, nil
	}

	var suggestions []SuggestItem
	inputRunes := []rune(input)
	inputLen := len(inputRunes)

	if inputLen-maxEditDistance > s.maxLength {
		return nil, nil
	}

	if count, ok := s.words[input]; ok {
		suggestions = append(suggestions, SuggestItem{Term: input, Distance: 0, Count: count})
		if v != verbosity.All {
			return suggestions, nil
		}
	}
	if maxEditDistance == 0 {
		return suggestions, nil
	}

	consideredDeletes := mapset.NewThreadUnsafeSet[string]()
	consideredSuggestions := mapset.NewThreadUnsafeSet[string](input)

	maxEditDistance2 := maxEditDistance
	inputPrefixLen := min(inputLen, s.opts.PrefixLength)
	candidates := []string{string(inputRunes[:inputPrefixLen])}

	for ptr := 0; ptr < len(candidates); ptr++ {
		candidate := candidates[ptr]
		candidateRunes := []rune(candidate)
		candidateLen := len(candidateRunes)
		lengthDiff := inputPrefixLen - candidateLen

		// candidates are generated in order of growing delete count
		if lengthDiff > maxEditDistance2 {
			if v == verbosity.All {
				continue
			}
			break
		}

		for _, suggestion := range s.deletes[candidate] {
			if suggestion == input {
				continue
			}
			suggestionLen := utf8.RuneCountInString(suggestion)
			if abs(suggestionLen-inputLen) > maxEditDistance2 ||
				suggestionLen < candidateLen ||
				(suggestionLen == candidateLen && suggestion != candidate) {
				continue
			}
			suggestionPrefixLen := min(suggestionLen, s.opts.PrefixLength)
			if suggestionPrefixLen > inputPrefixLen && suggestionPrefixLen-candidateLen > maxEditDistance2 {
				continue
			}

			var distance int
			switch {
			case candidateLen == 0:
				distance = max(inputLen, suggestionLen)
				if distance > maxEditDistance2 || !consideredSuggestions.Add(suggestion) {
					continue
				}
			case suggestionLen == 1:
				first, _ := utf8.DecodeRuneInString(suggestion)
				distance = inputLen
				if containsRune(inputRunes, first) {
					distance = inputLen - 1
				}
				if distance > maxEditDistance2 || !consideredSuggestions.Add(suggestion) {
					continue
				}
			default:
				if !consideredSuggestions.Add(suggestion) {
					continue
				}
				distance = edlib.OSADamerauLevenshteinDistance(input, suggestion)
				if distance > maxEditDistance2 {
					continue
				}
			}

			item := SuggestItem{Term: suggestion, Distance: distance, Count: s.words[suggestion]}
			if len(suggestions) > 0 {
				switch v {
				case verbosity.Closest:
					if distance < maxEditDistance2 {
						suggestions = suggestions[:0]
					}
				case verbosity.Top:
					if distance < maxEditDistance2 || item.Count > suggestions[0].Count {
						maxEditDistance2 = distance
						suggestions[0] = item
					}
					continue
				}
			}
			if v != verbosity.All {
				maxEditDistance2 = distance
			}
			suggestions = append(suggestions, item)
		}

		if lengthDiff < maxEditDistance && candidateLen <= s.opts.PrefixLength {
			if v != verbosity.All && lengthDiff >= maxEditDistance2 {
				continue
			}
			for i := range candidateRunes {
				del := string(deleteAt(candidateRunes, i))
				if consideredDeletes.Add(del) {
					candidates = append(candidates, del)
				}
			}
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Distance != suggestions[j].Distance {
			return suggestions[i].Distance < suggestions[j].Distance
		}
		return suggestions[i].Count > suggestions[j].Count
	})
	return suggestions, nil
}

// distance returns the OSA distance between a and b, or limit+1 when it
// exceeds limit.
func distance(a, b string, limit int) int {
	d := edlib.OSADamerauLevenshteinDistance(a, b)
	if d > limit {
		return limit + 1
	}
	return d
}

func deleteAt(word []rune, i int) []rune {
	del := make([]rune, 0, len(word)-1)
	del = append(del, word[:i]...)
	return append(del, word[i+1:]...)
}

func containsRune(rs []rune, r rune) bool {
	for _, c := range rs {
		if c == r {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
