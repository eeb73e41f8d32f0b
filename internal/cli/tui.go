package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mend/pkg/patch"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	strategyStyles = map[patch.Strategy]lipgloss.Style{
		patch.StrategyExact:      lipgloss.NewStyle().Foreground(colorGreen),
		patch.StrategyWhitespace: lipgloss.NewStyle().Foreground(colorCyan),
		patch.StrategyFuzzy:      lipgloss.NewStyle().Foreground(colorYellow),
	}
	styleNoMatch = lipgloss.NewStyle().Foreground(colorRed)
)

// reviewColumnWidth bounds the original and new text columns.
const reviewColumnWidth = 36

// =============================================================================
// ReviewModel - Interactive change selection
// =============================================================================

// ReviewItem is one parsed change and where it matches the document.
type ReviewItem struct {
	Change   patch.Change
	Span     *patch.Span // nil when the change matches nothing
	Selected bool
}

// ReviewModel is the bubbletea model for choosing which changes to apply.
// Matches are computed against the unmodified document, so a change that only
// matches after another one is applied shows as unmatched here.
type ReviewModel struct {
	Items     []ReviewItem
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewReviewModel matches every change against doc. Matched changes start
// selected.
func NewReviewModel(doc string, changes []patch.Change, threshold float64) ReviewModel {
	items := make([]ReviewItem, len(changes))
	for i, ch := range changes {
		span := patch.Match(doc, ch.Original, threshold)
		items[i] = ReviewItem{Change: ch, Span: span, Selected: span != nil}
	}
	return ReviewModel{Items: items, Height: 10}
}

// Selected returns the chosen changes in their original order.
func (m ReviewModel) Selected() []patch.Change {
	var out []patch.Change
	for _, it := range m.Items {
		if it.Selected {
			out = append(out, it.Change)
		}
	}
	return out
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "x":
			m.toggle(m.Cursor)
		case "a":
			// Select all matched changes, or clear them if all are selected.
			all := true
			for _, it := range m.Items {
				if it.Span != nil && !it.Selected {
					all = false
				}
			}
			for i := range m.Items {
				if m.Items[i].Span != nil {
					m.Items[i].Selected = !all
				}
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Leave room for the header, table borders and the detail pane.
		m.Height = msg.Height - 16
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

// toggle flips the selection of item i. Unmatched changes stay unselected.
func (m *ReviewModel) toggle(i int) {
	if i < 0 || i >= len(m.Items) || m.Items[i].Span == nil {
		return
	}
	m.Items[i].Selected = !m.Items[i].Selected
}

func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review Changes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ apply  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if it.Selected {
			check = "[x]"
		}
		rows = append(rows, []string{
			cursor,
			check,
			summarize(it.Change.Original, reviewColumnWidth),
			summarize(it.Change.New, reviewColumnWidth),
			matchLabel(it.Span),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Original", "New", "Match").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			it := m.Items[idx]
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			switch {
			case col == 4 && it.Span == nil:
				return base.Inherit(styleNoMatch)
			case col == 4:
				return base.Inherit(strategyStyles[it.Span.Strategy])
			case !it.Selected:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(m.Items) > 0 {
		cur := m.Items[m.Cursor]
		b.WriteString("\n")
		b.WriteString(patch.NewPreview(cur.Change.Original, cur.Change.New).Pretty)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d selected of %d]", len(m.Selected()), len(m.Items))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// matchLabel describes how a change matched, e.g. "fuzzy 0.86".
func matchLabel(span *patch.Span) string {
	if span == nil {
		return "no match"
	}
	if span.Strategy == patch.StrategyExact {
		return string(span.Strategy)
	}
	return fmt.Sprintf("%s %.2f", span.Strategy, span.Score)
}

// summarize collapses s to its first non-blank line and truncates it to width
// runes.
func summarize(s string, width int) string {
	line := ""
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if line == "" {
		return "(empty)"
	}
	r := []rune(line)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return line
}
