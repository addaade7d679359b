package corrector

// bigramDuplicateThreshold is the share of doubled-letter groups above which
// a token is treated as key smashing. Compared in float32.
const bigramDuplicateThreshold float32 = 0.3

type bigram [2]rune

// ReduceBigrams collapses repeated letters: each run of identical letters
// keeps one doubled pair ("helllo" -> "hello"). When more than 30% of a
// token longer than three letters is doubled pairs, all of them are
// dropped ("hheelloo" -> "helo"). Tokens of one letter or less are
// returned unchanged.
func ReduceBigrams(word string) string {
	letters := []rune(word)
	if len(letters) <= 1 {
		return word
	}

	kept := make([]bigram, 0, len(letters)-1)
	repeat := false
	duplicates := 0
	for i := 0; i+1 < len(letters); i++ {
		b := bigram{letters[i], letters[i+1]}
		if b[0] == b[1] {
			if repeat {
				continue
			}
			repeat = true
			duplicates++
		} else {
			repeat = false
		}
		kept = append(kept, b)
	}

	n := len(kept) + 1
	if n > 3 && float32(duplicates) > float32(n)*bigramDuplicateThreshold {
		distinct := make([]bigram, 0, len(kept))
		for _, b := range kept {
			if b[0] != b[1] {
				distinct = append(distinct, b)
			}
		}
		if len(distinct) > 0 {
			return joinBigrams(distinct)
		}
	}
	return joinBigrams(kept)
}

// joinBigrams takes the first letter of every bigram plus the last letter
// of the final one.
func joinBigrams(bigrams []bigram) string {
	out := make([]rune, 0, len(bigrams)+1)
	for _, b := range bigrams {
		out = append(out, b[0])
	}
	return string(append(out, bigrams[len(bigrams)-1][1]))
}
