// Package similarity provides the string comparison primitives used by the
// patch matcher.
//
// All functions operate on runes, not bytes, so a multi-byte character counts
// as a single edit. [Similarity] normalizes edit distance into [0, 1]:
//
//	similarity.Similarity("kitten", "sitting") // 1 - 3/7 ≈ 0.571
//
// The package is stateless and safe for concurrent use.
package similarity

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns 1 - Distance(a, b)/max(len(a), len(b)), with lengths in
// runes. Identical strings score 1 (including two empty strings); an empty
// string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	return Score(Distance(a, b), max(la, lb))
}

// Score converts an edit distance between strings of which the longer has
// maxLen runes into a similarity in [0, 1].
func Score(distance, maxLen int) float64 {
	if maxLen <= 0 {
		return 1
	}
	s := 1 - float64(distance)/float64(maxLen)
	if s < 0 {
		return 0
	}
	return s
}

// Normalize collapses every run of Unicode whitespace into a single ASCII
// space. Leading and trailing whitespace is collapsed, not removed.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// PrefixDistances returns d where d[k] is the edit distance between needle
// and text[:k], for every k in [0, len(text)]. It runs one dynamic-programming
// pass of O(len(needle) * len(text)), which makes it suitable for scoring every
// window length that starts at the same offset.
func PrefixDistances(needle, text []rune) []int {
	return PrefixDistancesWithin(needle, text, math.MaxInt)
}

// PrefixDistancesWithin is [PrefixDistances] with an early exit: it returns
// nil as soon as every prefix of text is more than limit edits away from the
// part of needle consumed so far, since no later row can get closer.
func PrefixDistancesWithin(needle, text []rune, limit int) []int {
	prev := make([]int, len(text)+1)
	cur := make([]int, len(text)+1)
	for k := range prev {
		prev[k] = k
	}
	for i := 1; i <= len(needle); i++ {
		cur[0] = i
		rowMin := i
		for k := 1; k <= len(text); k++ {
			cost := 1
			if needle[i-1] == text[k-1] {
				cost = 0
			}
			cur[k] = min(prev[k]+1, cur[k-1]+1, prev[k-1]+cost)
			rowMin = min(rowMin, cur[k])
		}
		if rowMin > limit {
			return nil
		}
		prev, cur = cur, prev
	}
	return prev
}
