// Package editor tracks the caret of a rich-text document across edits.
//
// Positions are only valid against the document they were computed from, so
// every caret computation resolves the selection to a pointer against the
// document before the edit and back to a position against the document after
// it.
package editor

import (
	"unicode/utf8"

	"github.com/burntcarrot/composer/richtext"
)

// Editor is the caret state of one composer.
type Editor struct {
	// Selection is nil when there is no caret, e.g. in an empty document.
	Selection *richtext.Selection `json:"selection"`

	// Pending holds the styles chosen with a collapsed toggle. They apply to
	// the next text typed at the caret.
	Pending *richtext.StyleSet `json:"pending,omitempty"`
}

// New returns an editor with its caret at sel.
func New(sel *richtext.Selection) Editor {
	return Editor{Selection: sel}
}

// Select moves the caret to sel, discarding pending styles.
func (ed Editor) Select(sel *richtext.Selection) Editor {
	return Editor{Selection: sel}
}

// StylesAt returns the styles text typed at the caret would get.
func (ed Editor) StylesAt(doc richtext.Doc) richtext.StyleSet {
	if ed.Pending != nil {
		return *ed.Pending
	}
	if ed.Selection == nil {
		return richtext.StyleSet{}
	}
	return doc.StylesForSelection(*ed.Selection)
}

// ReplaceText returns the edit typing text at the caret.
func (ed Editor) ReplaceText(text string) richtext.ReplaceText {
	return richtext.ReplaceText{Selection: ed.Selection, Text: text, Styles: ed.Pending}
}

// ApplyEdit returns the editor after e turned prev into next.
//
// Text edits leave a collapsed caret: after the inserted text, at the start
// of the paragraph following a break, or where removed text began. Style
// edits keep the selection.
//
// When next holds no characters the selection is cleared, with one
// exception: a paragraph break always leaves the caret at the start of the
// paragraph it created, so Enter in an empty document yields two empty
// paragraphs and a caret on the second.
func ApplyEdit(e richtext.Edit, prev, next richtext.Doc, ed Editor) Editor {
	var out Editor

	switch e := e.(type) {
	case richtext.ReplaceText:
		out = replaceText(e, prev, next, ed)
	case richtext.ReplaceTextWithParagraphBreak:
		return paragraphBreak(e, prev, next, ed)
	case richtext.Backspace:
		out = remove(e.Selection, true, prev, next, ed)
	case richtext.Delete:
		out = remove(e.Selection, false, prev, next, ed)
	case richtext.ToggleBold:
		out = restyle(e.Selection, prev, next, ed)
		if out.Selection != nil && out.Selection.IsCollapsed() {
			s := ed.StylesAt(prev)
			s.Bold = !s.Bold
			out.Pending = &s
		}
	case richtext.ToggleItalic:
		out = restyle(e.Selection, prev, next, ed)
		if out.Selection != nil && out.Selection.IsCollapsed() {
			s := ed.StylesAt(prev)
			s.Italic = !s.Italic
			out.Pending = &s
		}
	case richtext.ApplyStyles:
		out = restyle(e.Selection, prev, next, ed)
	case richtext.AddLink:
		out = restyle(e.Selection, prev, next, ed)
	default:
		return ed
	}

	if next.CharacterCount() == 0 {
		out.Selection = nil
	}
	return out
}

func replaceText(e richtext.ReplaceText, prev, next richtext.Doc, ed Editor) Editor {
	if e.Selection == nil {
		end, ok := next.EndPosition()
		if !ok {
			return Editor{}
		}
		return Editor{Selection: caret(end)}
	}

	start, _, ok := prev.PointerRangeFromSelection(*e.Selection)
	if !ok || !prev.ContainsPosition(e.Selection.Anchor) || !prev.ContainsPosition(e.Selection.Focus) {
		return ed
	}
	pos, ok := next.PositionFromPointer(start)
	if !ok {
		return ed
	}
	pos.Offset += utf8.RuneCountInString(e.Text)
	if !next.ContainsPosition(pos) {
		return ed
	}
	return Editor{Selection: caret(pos)}
}

func paragraphBreak(e richtext.ReplaceTextWithParagraphBreak, prev, next richtext.Doc, ed Editor) Editor {
	if e.Selection == nil {
		return ed
	}
	start, _, ok := prev.PointerRangeFromSelection(*e.Selection)
	if !ok || next.Contains(start.Key) {
		// The paragraph was not split.
		return ed
	}
	split, ok := prev.PositionFromPointer(start)
	if !ok {
		return ed
	}
	pos := richtext.Position{Index: split.Index + 1, Offset: 0}
	if !next.ContainsPosition(pos) {
		return ed
	}
	return Editor{Selection: caret(pos)}
}

// remove places the caret where the removed text began.
func remove(sel *richtext.Selection, backward bool, prev, next richtext.Doc, ed Editor) Editor {
	if sel == nil || !prev.ContainsPosition(sel.Anchor) {
		return ed
	}

	from := sel.Anchor
	if !sel.IsCollapsed() {
		start, _, ok := prev.PointerRangeFromSelection(*sel)
		if !ok {
			return ed
		}
		from, _ = prev.PositionFromPointer(start)
	} else if backward {
		p, ok := prev.PreviousPosition(sel.Anchor)
		if !ok {
			return Editor{Selection: sel}
		}
		from = p
	}

	ptr, ok := prev.PointerFromPosition(from)
	if !ok {
		return ed
	}
	pos, ok := next.PositionFromPointer(ptr)
	if !ok || !next.ContainsPosition(pos) {
		return ed
	}
	return Editor{Selection: caret(pos)}
}

// restyle carries the selection over unchanged.
func restyle(sel *richtext.Selection, prev, next richtext.Doc, ed Editor) Editor {
	if sel == nil {
		return ed
	}
	anchor, ok := carry(sel.Anchor, prev, next)
	if !ok {
		return ed
	}
	focus, ok := carry(sel.Focus, prev, next)
	if !ok {
		return ed
	}
	s := richtext.NewSelection(anchor, focus)
	out := Editor{Selection: &s}
	if s.IsCollapsed() {
		out.Pending = ed.Pending
	}
	return out
}

func carry(pos richtext.Position, prev, next richtext.Doc) (richtext.Position, bool) {
	ptr, ok := prev.PointerFromPosition(pos)
	if !ok {
		return richtext.Position{}, false
	}
	out, ok := next.PositionFromPointer(ptr)
	if !ok || !next.ContainsPosition(out) {
		return richtext.Position{}, false
	}
	return out, true
}

func caret(pos richtext.Position) *richtext.Selection {
	s := richtext.Collapsed(pos)
	return &s
}
