package tui

import (
	"fmt"
	"strings"

	"github.com/burntcarrot/composer/osd"
	"github.com/burntcarrot/composer/richtext"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	linkColor   = lipgloss.Color("12")
	caretStyle  = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

func runeStyle(s richtext.StyleSet, highlighted bool) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.Bold).Italic(s.Italic)
	if s.Link != "" {
		st = st.Underline(true).Foreground(linkColor)
	}
	if highlighted {
		st = st.Reverse(true)
	}
	return st
}

// highlight tells which caret positions of a document are selected.
type highlight struct {
	caret      *richtext.Position
	start, end richtext.Position
	isRange    bool
}

func newHighlight(sel *richtext.Selection) highlight {
	switch {
	case sel == nil:
		return highlight{}
	case sel.IsCollapsed():
		caret := sel.Anchor
		return highlight{caret: &caret}
	}
	sorted := osd.SortPositionsAscending([]richtext.Position{sel.Anchor, sel.Focus})
	return highlight{start: sorted[0], end: sorted[1], isRange: true}
}

// covers reports whether the character after pos is highlighted.
func (h highlight) covers(pos richtext.Position) bool {
	if h.caret != nil {
		return *h.caret == pos
	}
	return h.isRange && osd.Compare(h.start, pos) <= 0 && osd.Compare(pos, h.end) < 0
}

// Render draws doc one paragraph per line, soft-wrapping lines at width
// columns. A width of 0 disables wrapping. The caret is drawn as a reversed
// cell, and so is every selected character.
func Render(doc richtext.Doc, sel *richtext.Selection, width int) string {
	h := newHighlight(sel)

	lines := make([]string, 0, doc.Count())
	for i, e := range doc.Paragraphs() {
		var sb strings.Builder
		col := 0

		// put writes a cell, wrapping first if it does not fit.
		put := func(cell string, w int) {
			if width > 0 && col > 0 && col+w > width {
				sb.WriteString("\n")
				col = 0
			}
			sb.WriteString(cell)
			col += w
		}

		offset := 0
		for _, run := range e.Value.Runs() {
			for _, r := range run.Value.Text {
				pos := richtext.Position{Index: i, Offset: offset}
				put(runeStyle(run.Value.Styles, h.covers(pos)).Render(string(r)), runewidth.RuneWidth(r))
				offset++
			}
		}

		// The paragraph break is a cell of its own.
		if h.covers(richtext.Position{Index: i, Offset: offset}) {
			put(caretStyle.Render(" "), 1)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// StatusLine describes the caret, truncated to width columns.
func StatusLine(file string, sel *richtext.Selection, styles richtext.StyleSet, width int) string {
	parts := []string{}
	if file != "" {
		parts = append(parts, file)
	}
	if sel != nil {
		parts = append(parts, fmt.Sprintf("¶%d:%d", sel.Focus.Index+1, sel.Focus.Offset))
	}

	var flags []string
	if styles.Bold {
		flags = append(flags, "bold")
	}
	if styles.Italic {
		flags = append(flags, "italic")
	}
	if styles.Link != "" {
		flags = append(flags, "link "+styles.Link)
	}
	if len(flags) > 0 {
		parts = append(parts, strings.Join(flags, ", "))
	}

	line := strings.Join(parts, "  ")
	if width > 0 {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}
