package similarity

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "hello", "hello", 1},
		{"both empty", "", "", 1},
		{"empty left", "", "x", 0},
		{"empty right", "x", "", 0},
		{"one substitution", "abcd", "abce", 0.75},
		{"transposition", "The quick brown fox", "The quikc brown fox", 1 - 2.0/19},
		{"disjoint", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "abc"},
		{"replace this text", "replace that text!"},
		{"naïve café", "naive cafe"},
	}
	for _, p := range pairs {
		ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v, reverse = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilaritySelf(t *testing.T) {
	for _, s := range []string{"", "a", "some longer sentence", "日本語"} {
		if got := Similarity(s, s); got != 1 {
			t.Errorf("Similarity(%q, %q) = %v, want 1", s, s, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"a  b", "a b"},
		{"a\n\t b", "a b"},
		{"  lead", " lead"},
		{"trail \n", "trail "},
		{"no-space", "no-space"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrefixDistances(t *testing.T) {
	needle := []rune("abc")
	text := []rune("abxc")

	got := PrefixDistances(needle, text)
	if len(got) != len(text)+1 {
		t.Fatalf("len = %d, want %d", len(got), len(text)+1)
	}
	for k := range got {
		want := Distance(string(needle), string(text[:k]))
		if got[k] != want {
			t.Errorf("PrefixDistances[%d] = %d, want %d", k, got[k], want)
		}
	}
}

func TestScore(t *testing.T) {
	if got := Score(0, 0); got != 1 {
		t.Errorf("Score(0, 0) = %v, want 1", got)
	}
	if got := Score(5, 4); got != 0 {
		t.Errorf("Score(5, 4) = %v, want 0", got)
	}
	if got := Score(1, 4); got != 0.75 {
		t.Errorf("Score(1, 4) = %v, want 0.75", got)
	}
}

func TestPrefixDistancesWithin(t *testing.T) {
	needle := []rune("completely different")
	text := []rune("abcabcabcabc")

	if got := PrefixDistancesWithin(needle, text, 2); got != nil {
		t.Errorf("PrefixDistancesWithin() = %v, want nil for a far text", got)
	}

	got := PrefixDistancesWithin([]rune("abc"), []rune("abc"), 1)
	if got == nil {
		t.Fatal("PrefixDistancesWithin() = nil, want distances for an equal text")
	}
	if got[3] != 0 {
		t.Errorf("distance to full prefix = %d, want 0", got[3])
	}
}
