package symspell

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"textnorm/pkg/verbosity"
)

// LookupCompound corrects a multi-word input, handling three cases: a space
// wrongly inserted into a word, a space wrongly omitted between two words,
// and independent misspellings. Bigram counts rank the split variants; for
// unknown bigrams the naive Bayes estimate P(AB) = P(A) * P(B) is used.
func (s *SymSpell) LookupCompound(input string, maxEditDistance int) SuggestItem {
	maxEditDistance = min(maxEditDistance, s.opts.MaxDictionaryEditDistance)
	terms := strings.Fields(strings.ToLower(input))

	var parts []SuggestItem
	lastCombi := false

	for i, term := range terms {
		suggestions := s.top(term, maxEditDistance)

		// combining with the previous term is always tried before splitting
		if i > 0 && !lastCombi {
			combi := s.top(terms[i-1]+term, maxEditDistance)
			if len(combi) > 0 {
				best1 := parts[len(parts)-1]
				best2 := unknownItem(term, maxEditDistance)
				if len(suggestions) > 0 {
					best2 = suggestions[0]
				}
				distance1 := best1.Distance + best2.Distance
				if distance1 >= 0 && (combi[0].Distance+1 < distance1 ||
					(combi[0].Distance+1 == distance1 &&
						float64(combi[0].Count) > float64(best1.Count)/N*float64(best2.Count))) {
					combi[0].Distance++
					parts[len(parts)-1] = combi[0]
					lastCombi = true
					continue
				}
			}
		}
		lastCombi = false

		termLen := utf8.RuneCountInString(term)
		if len(suggestions) > 0 && (suggestions[0].Distance == 0 || termLen == 1) {
			parts = append(parts, suggestions[0])
			continue
		}

		var splitBest *SuggestItem
		if len(suggestions) > 0 {
			splitBest = &suggestions[0]
		}
		runes := []rune(term)
		for j := 1; j < len(runes); j++ {
			part1, part2 := string(runes[:j]), string(runes[j:])
			suggestions1 := s.top(part1, maxEditDistance)
			if len(suggestions1) == 0 {
				continue
			}
			suggestions2 := s.top(part2, maxEditDistance)
			if len(suggestions2) == 0 {
				continue
			}

			split := SuggestItem{Term: suggestions1[0].Term + " " + suggestions2[0].Term}
			distance2 := distance(term, split.Term, maxEditDistance)
			if splitBest != nil {
				if distance2 > splitBest.Distance {
					continue
				}
				if distance2 < splitBest.Distance {
					splitBest = nil
				}
			}
			split.Distance = distance2

			if bigramCount, ok := s.bigrams[split.Term]; ok {
				split.Count = bigramCount
				joined := suggestions1[0].Term + suggestions2[0].Term
				if len(suggestions) > 0 {
					// the split must outrank the single-term correction it contains
					if joined == term {
						split.Count = max(split.Count, suggestions[0].Count+2)
					} else if suggestions1[0].Term == suggestions[0].Term || suggestions2[0].Term == suggestions[0].Term {
						split.Count = max(split.Count, suggestions[0].Count+1)
					}
				} else if joined == term {
					split.Count = max(split.Count, max(suggestions1[0].Count, suggestions2[0].Count)+2)
				}
			} else {
				split.Count = min(s.bigramCountMin, int64(float64(suggestions1[0].Count)/N*float64(suggestions2[0].Count)))
			}

			if splitBest == nil || split.Count > splitBest.Count {
				best := split
				splitBest = &best
			}
		}

		if splitBest != nil {
			parts = append(parts, *splitBest)
		} else {
			parts = append(parts, unknownItem(term, maxEditDistance))
		}
	}

	count := N
	terms = terms[:0]
	for _, p := range parts {
		terms = append(terms, p.Term)
		count *= float64(p.Count) / N
	}
	corrected := strings.Join(terms, " ")
	return SuggestItem{
		Term:     corrected,
		Distance: edlib.OSADamerauLevenshteinDistance(input, corrected),
		Count:    int64(count),
	}
}

func (s *SymSpell) top(term string, maxEditDistance int) []SuggestItem {
	suggestions, err := s.Lookup(term, verbosity.Top, maxEditDistance)
	if err != nil {
		return nil
	}
	return suggestions
}

func unknownItem(term string, maxEditDistance int) SuggestItem {
	return SuggestItem{
		Term:     term,
		Distance: maxEditDistance + 1,
		Count:    int64(10 / math.Pow(10, float64(utf8.RuneCountInString(term)))),
	}
}
