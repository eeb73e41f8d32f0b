package patch

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/mend/pkg/similarity"
)

// DefaultThreshold is the minimum similarity a non-exact match must reach.
const DefaultThreshold = 0.8

// Window bounds for the fuzzy scan, relative to the needle's rune length.
const (
	minWindowRatio = 0.7
	maxWindowRatio = 1.3
)

// Strategy names the matching strategy that produced a [Span].
type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyWhitespace Strategy = "whitespace"
	StrategyFuzzy      Strategy = "fuzzy"
)

// Span is a half-open byte range [Start, End) of a document that matched a
// needle, with the similarity score that accepted it.
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Score    float64  `json:"score"`
	Strategy Strategy `json:"strategy"`
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Match finds the part of doc that best corresponds to needle. It returns nil
// when nothing reaches threshold; that is an expected outcome, not an error.
// An empty needle never matches. A threshold outside (0, 1] uses
// [DefaultThreshold].
func Match(doc, needle string, threshold float64) *Span {
	if needle == "" {
		return nil
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if i := strings.Index(doc, needle); i >= 0 {
		return &Span{Start: i, End: i + len(needle), Score: 1, Strategy: StrategyExact}
	}
	if s := matchNormalized(doc, needle, threshold); s != nil {
		return s
	}
	return matchFuzzy(doc, needle, threshold)
}

// normalized is a whitespace-collapsed copy of a document that remembers, for
// every byte it holds, which original bytes produced it.
type normalized struct {
	text  string
	start []int // original offset of the rune that produced text[i]
	end   []int // original offset just past that rune
}

func normalize(doc string) normalized {
	var b strings.Builder
	b.Grow(len(doc))
	n := normalized{
		start: make([]int, 0, len(doc)),
		end:   make([]int, 0, len(doc)),
	}
	inSpace := false
	for i := 0; i < len(doc); {
		r, size := utf8.DecodeRuneInString(doc[i:])
		if unicode.IsSpace(r) {
			if inSpace {
				i += size
				continue
			}
			inSpace = true
			r = ' '
		} else {
			inSpace = false
		}
		w, _ := b.WriteRune(r)
		for range w {
			n.start = append(n.start, i)
			n.end = append(n.end, i+size)
		}
		i += size
	}
	n.text = b.String()
	return n
}

func matchNormalized(doc, needle string, threshold float64) *Span {
	want := strings.TrimSpace(similarity.Normalize(needle))
	if want == "" {
		return nil
	}
	norm := normalize(doc)
	idx := strings.Index(norm.text, want)
	if idx < 0 {
		return nil
	}
	start := norm.start[idx]
	end := norm.end[idx+len(want)-1]
	score := similarity.Similarity(similarity.Normalize(doc[start:end]), want)
	if score < threshold {
		return nil
	}
	return &Span{Start: start, End: end, Score: score, Strategy: StrategyWhitespace}
}

func matchFuzzy(doc, needle string, threshold float64) *Span {
	text := []rune(doc)
	want := []rune(needle)
	n := len(want)

	minLen := max(1, int(math.Floor(minWindowRatio*float64(n))))
	maxLen := int(math.Ceil(maxWindowRatio * float64(n)))
	if len(text) < minLen {
		return nil
	}

	// Row minima of the edit-distance table never decrease, so once every
	// prefix is further than this the offset cannot produce a match.
	// One extra edit of slack absorbs float rounding in the product.
	limit := int(math.Floor((1-threshold)*float64(maxLen))) + 1

	// Each edit destroys at most two of the needle's bigrams, so a window
	// that can still match shares at least this many with it. Every window
	// at an offset is a prefix of the longest one, which bounds them all.
	minShared := n - 1 - 2*limit
	grams := newBigramCounter(want)
	next := 0 // bigrams starting before next (and at or after off) are counted

	bestScore := -1.0
	bestOff, bestLen := 0, 0
	for off := 0; off+minLen <= len(text); off++ {
		if off > 0 && off-1 < next {
			grams.remove(bigramAt(text, off-1))
		}
		next = max(next, off)
		end := min(off+maxLen, len(text))
		for ; next+1 < end; next++ {
			grams.add(bigramAt(text, next))
		}
		if grams.shared < minShared {
			continue
		}

		dist := similarity.PrefixDistancesWithin(want, text[off:end], limit)
		if dist == nil {
			continue
		}
		for k := minLen; k <= end-off; k++ {
			score := similarity.Score(dist[k], max(n, k))
			if score >= threshold && score > bestScore {
				bestScore, bestOff, bestLen = score, off, k
			}
		}
	}
	if bestScore < 0 {
		return nil
	}

	start := runeOffset(doc, bestOff)
	end := runeOffset(doc, bestOff+bestLen)
	return &Span{Start: start, End: end, Score: bestScore, Strategy: StrategyFuzzy}
}

type bigram [2]rune

func bigramAt(s []rune, i int) bigram { return bigram{s[i], s[i+1]} }

// bigramCounter counts how many of the needle's bigrams a sliding window
// holds, as a multiset intersection.
type bigramCounter struct {
	need   map[bigram]int
	have   map[bigram]int
	shared int
}

func newBigramCounter(needle []rune) *bigramCounter {
	c := &bigramCounter{need: make(map[bigram]int), have: make(map[bigram]int)}
	for i := 0; i+1 < len(needle); i++ {
		c.need[bigramAt(needle, i)]++
	}
	return c
}

func (c *bigramCounter) add(g bigram) {
	need, ok := c.need[g]
	if !ok {
		return
	}
	c.have[g]++
	if c.have[g] <= need {
		c.shared++
	}
}

func (c *bigramCounter) remove(g bigram) {
	need, ok := c.need[g]
	if !ok {
		return
	}
	if c.have[g] <= need {
		c.shared--
	}
	c.have[g]--
}

// runeOffset converts a rune index into a byte offset of s.
func runeOffset(s string, runes int) int {
	if runes <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == runes {
			return i
		}
		count++
	}
	return len(s)
}
