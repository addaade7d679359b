package symspell

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"textnorm/pkg/verbosity"
)

// Composition is the result of WordSegmentation.
type Composition struct {
	// Segmented is the input with word boundaries inserted and no other change.
	Segmented string `json:"segmented"`
	// Corrected holds the best dictionary term for every segment.
	Corrected   string  `json:"corrected"`
	DistanceSum int     `json:"distance_sum"`
	ProbLogSum  float64 `json:"prob_log_sum"`
}

// WordSegmentation splits input into dictionary words, inserting spaces
// where they are missing and correcting each part within maxEditDistance.
//
// Every candidate part costs its edit distance plus one per inserted
// separator; among equal costs the higher sum of log10 word probabilities
// wins. Parts are at most MaxLength runes long, so the search is linear in
// the input length and uses a circular buffer of that size.
func (s *SymSpell) WordSegmentation(input string, maxEditDistance int) Composition {
	maxEditDistance = min(maxEditDistance, s.opts.MaxDictionaryEditDistance)
	runes := []rune(input)
	maxSegmentLen := max(s.maxLength, 1)
	arraySize := min(maxSegmentLen, len(runes))
	if arraySize == 0 {
		return Composition{}
	}

	compositions := make([]Composition, arraySize)
	circularIndex := -1

	for j := range runes {
		imax := min(len(runes)-j, maxSegmentLen)
		for i := 1; i <= imax; i++ {
			part := runes[j : j+i]
			separatorLength := 0
			topEd := 0

			if unicode.IsSpace(part[0]) {
				part = part[1:]
			} else {
				separatorLength = 1
			}

			topEd += len(part)
			partStr := strings.ReplaceAll(string(part), " ", "")
			partLen := utf8.RuneCountInString(partStr)
			topEd -= partLen

			var topResult string
			var topProbLog float64
			results, _ := s.Lookup(partStr, verbosity.Top, maxEditDistance)
			if len(results) > 0 {
				topResult = results[0].Term
				topEd += results[0].Distance
				topProbLog = math.Log10(float64(results[0].Count) / N)
			} else {
				topResult = partStr
				topEd += partLen
				topProbLog = unknownProbLog(partLen)
			}

			dest := (i + circularIndex) % arraySize
			if j == 0 {
				compositions[dest] = Composition{
					Segmented:   partStr,
					Corrected:   topResult,
					DistanceSum: topEd,
					ProbLogSum:  topProbLog,
				}
				continue
			}

			prev := compositions[circularIndex]
			cur := compositions[dest]
			if i == maxSegmentLen ||
				((prev.DistanceSum+topEd == cur.DistanceSum || prev.DistanceSum+separatorLength+topEd == cur.DistanceSum) &&
					cur.ProbLogSum < prev.ProbLogSum+topProbLog) ||
				prev.DistanceSum+separatorLength+topEd < cur.DistanceSum {
				compositions[dest] = Composition{
					Segmented:   prev.Segmented + " " + partStr,
					Corrected:   prev.Corrected + " " + topResult,
					DistanceSum: prev.DistanceSum + separatorLength + topEd,
					ProbLogSum:  prev.ProbLogSum + topProbLog,
				}
			}
		}
		circularIndex++
		if circularIndex == arraySize {
			circularIndex = 0
		}
	}

	best := compositions[circularIndex]
	best.Segmented = collapseSpaces(best.Segmented)
	best.Corrected = collapseSpaces(best.Corrected)
	return best
}

// unknownProbLog estimates the probability of a word missing from the
// dictionary; longer unknown words are less likely.
func unknownProbLog(length int) float64 {
	return math.Log10(10.0 / (N * math.Pow(10, float64(length))))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
