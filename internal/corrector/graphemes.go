package corrector

import (
	"strings"

	"github.com/rivo/uniseg"
)

// RemapBoundaries copies the word boundaries of segmented onto original.
// Both strings are walked by grapheme cluster with whitespace ignored, so a
// boundary after the n-th cluster of segmented becomes a boundary after the
// n-th cluster of original. ok is false when the two differ in cluster
// count.
func RemapBoundaries(original, segmented string) (string, bool) {
	clusters := nonSpaceClusters(original)

	var cuts []int
	count := 0
	g := uniseg.NewGraphemes(segmented)
	for g.Next() {
		if isSpace(g.Str()) {
			if count > 0 && (len(cuts) == 0 || cuts[len(cuts)-1] != count) {
				cuts = append(cuts, count)
			}
			continue
		}
		count++
	}
	if count != len(clusters) {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(original) + len(cuts))
	next := 0
	for i, c := range clusters {
		if next < len(cuts) && cuts[next] == i {
			b.WriteByte(' ')
			next++
		}
		b.WriteString(c)
	}
	return b.String(), true
}

func nonSpaceClusters(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if c := g.Str(); !isSpace(c) {
			out = append(out, c)
		}
	}
	return out
}

func isSpace(cluster string) bool {
	return strings.TrimSpace(cluster) == ""
}
