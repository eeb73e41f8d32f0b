package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mend/pkg/patch"
)

func reviewFixture() ReviewModel {
	changes := []patch.Change{
		{Original: "lazy dog", New: "sleepy dog"},
		{Original: "a sentence that appears nowhere in the document", New: "x"},
		{Original: "quick  brown", New: "slow brown"},
	}
	return NewReviewModel(document, changes, patch.DefaultThreshold)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ReviewModel, keys ...string) ReviewModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(ReviewModel)
	}
	return m
}

func TestNewReviewModel(t *testing.T) {
	m := reviewFixture()

	want := []bool{true, false, true}
	for i, it := range m.Items {
		if it.Selected != want[i] {
			t.Errorf("item %d selected = %v, want %v", i, it.Selected, want[i])
		}
		if (it.Span != nil) != want[i] {
			t.Errorf("item %d matched = %v, want %v", i, it.Span != nil, want[i])
		}
	}
	if got := len(m.Selected()); got != 2 {
		t.Errorf("Selected() = %d changes, want 2", got)
	}
}

func TestReviewModelToggle(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string // originals of the selected changes
	}{
		{"untouched", nil, []string{"lazy dog", "quick  brown"}},
		{"deselect first", []string{" "}, []string{"quick  brown"}},
		{"x toggles too", []string{"x", "x"}, []string{"lazy dog", "quick  brown"}},
		{"unmatched stays off", []string{"down", " "}, []string{"lazy dog", "quick  brown"}},
		{"deselect last", []string{"down", "down", " "}, []string{"lazy dog"}},
		{"cursor clamps", []string{"up", "down", "down", "down", "down", " "}, []string{"lazy dog"}},
		{"all clears", []string{"a"}, nil},
		{"all restores", []string{" ", "a"}, []string{"lazy dog", "quick  brown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(reviewFixture(), tt.keys...)
			var got []string
			for _, ch := range m.Selected() {
				got = append(got, ch.Original)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("selected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReviewModelConfirmAndQuit(t *testing.T) {
	m := reviewFixture()

	confirmed, cmd := m.Update(key("enter"))
	if !confirmed.(ReviewModel).Confirmed {
		t.Error("enter should confirm")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}

	for _, k := range []string{"q", "esc"} {
		quit, cmd := m.Update(key(k))
		if quit.(ReviewModel).Confirmed {
			t.Errorf("%s should not confirm", k)
		}
		if cmd == nil {
			t.Errorf("%s should quit the program", k)
		}
	}
}

func TestReviewModelView(t *testing.T) {
	view := reviewFixture().View()
	for _, want := range []string{"Review Changes", "lazy dog", "exact", "whitespace", "no match", "[2 selected of 3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"\n\n  second line  \nthird", 20, "second line"},
		{"", 10, "(empty)"},
		{"abcdefghijkl", 5, "abcd…"},
		{"héllo wörld", 6, "héllo…"},
	}
	for _, tt := range tests {
		if got := summarize(tt.in, tt.width); got != tt.want {
			t.Errorf("summarize(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestMatchLabel(t *testing.T) {
	tests := []struct {
		span *patch.Span
		want string
	}{
		{nil, "no match"},
		{&patch.Span{Strategy: patch.StrategyExact, Score: 1}, "exact"},
		{&patch.Span{Strategy: patch.StrategyFuzzy, Score: 0.8571}, "fuzzy 0.86"},
	}
	for _, tt := range tests {
		if got := matchLabel(tt.span); got != tt.want {
			t.Errorf("matchLabel() = %q, want %q", got, tt.want)
		}
	}
}
