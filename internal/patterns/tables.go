package patterns

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Replacement tokens.
const (
	WikiShortcutToken  = " (wikipedia shortcut) "
	WikiNamespaceToken = " (wikipedia namespace) "
	WikiFileToken      = " (wikipedia file) "
)

// EnglishContractions expands contractions; the longer forms win over the
// suffixes they end with.
func EnglishContractions() map[string]string {
	return map[string]string{
		"won't": "will not",
		"can't": "can not",
		"n't":   " not",
		"'re":   " are",
		"'s":    " is",
		"'d":    " would",
		"'ll":   " will",
		"'t":    " not",
		"'ve":   " have",
		"'m":    " am",
	}
}

// Tagging maps every word to itself, lowercased and padded with spaces, so
// the word survives as a separate token after segmentation.
func Tagging(words []string) map[string]string {
	table := make(map[string]string, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if w == "" {
			continue
		}
		table[w] = " " + w + " "
	}
	return table
}

// LoadEmoticons reads a JSON object of emoticon to name. Emoticons made of
// ASCII letters only are dropped since they collide with words.
func LoadEmoticons(r io.Reader) (map[string]string, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return nil, fmt.Errorf("decode emoticons: %w", err)
	}
	table := make(map[string]string, len(raw))
	for emoticon, name := range raw {
		if isASCIILetters(emoticon) {
			continue
		}
		table[emoticon] = " " + name + " "
	}
	return table, nil
}

// LoadEmojis reads a JSON object of emoji to replacement, used as is.
func LoadEmojis(r io.Reader) (map[string]string, error) {
	table, err := decodeObject(r)
	if err != nil {
		return nil, fmt.Errorf("decode emojis: %w", err)
	}
	return table, nil
}

// LoadWikiShortcuts reads a JSON object of shortcut to expansion. Both
// sides become WikiShortcutToken.
func LoadWikiShortcuts(r io.Reader) (map[string]string, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return nil, fmt.Errorf("decode wiki shortcuts: %w", err)
	}
	table := make(map[string]string, 2*len(raw))
	for k, v := range raw {
		table[k] = WikiShortcutToken
		table[v] = WikiShortcutToken
	}
	return table, nil
}

func decodeObject(r io.Reader) (map[string]string, error) {
	var m map[string]string
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func isASCIILetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// word matches a Unicode word character.
const word = `[\p{L}\p{N}\p{Mn}_]`

var (
	wikiNamespaceRe = regexp.MustCompile(`(talk|user|wikipedia|wp|project|wt|template|tm|help|category|portal|draft|timedtext|module|special|topic|education program|book|gadget|gadget definition)((_| )talk)?:(` + word + `|[/#])+`)
	wikiFileRe      = regexp.MustCompile(`(file|image)((_| )talk)?:(` + word + `|[\s()&\-"'])+((\.` + word + `{3})|,|\.|\)|")`)
)

// ReplaceWikiNamespaces replaces links such as "user_talk:foo" with
// WikiNamespaceToken.
func ReplaceWikiNamespaces(s string) string {
	return wikiNamespaceRe.ReplaceAllLiteralString(s, WikiNamespaceToken)
}

// ReplaceWikiFiles replaces file and image links with WikiFileToken.
func ReplaceWikiFiles(s string) string {
	return wikiFileRe.ReplaceAllLiteralString(s, WikiFileToken)
}
