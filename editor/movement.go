package editor

import "github.com/burntcarrot/composer/richtext"

// Move moves the caret by delta characters; paragraph breaks count as one.
// With extend the anchor stays put and only the focus moves. The caret stops
// at either end of the document.
func (ed Editor) Move(doc richtext.Doc, delta int, extend bool) Editor {
	focus, ok := ed.focus(doc)
	if !ok {
		return ed
	}

	step := doc.NextPosition
	if delta < 0 {
		step = doc.PreviousPosition
		delta = -delta
	}
	for ; delta > 0; delta-- {
		next, ok := step(focus)
		if !ok {
			break
		}
		focus = next
	}
	return ed.moveTo(focus, extend)
}

// MoveLine moves the caret by lines paragraphs, keeping its offset where the
// target paragraph is long enough and moving to its end otherwise.
func (ed Editor) MoveLine(doc richtext.Doc, lines int, extend bool) Editor {
	focus, ok := ed.focus(doc)
	if !ok {
		return ed
	}

	index := focus.Index + lines
	if index < 0 {
		index, focus.Offset = 0, 0
	}
	if index >= doc.Count() {
		end, _ := doc.EndPosition()
		return ed.moveTo(end, extend)
	}

	p, _ := doc.Nth(index)
	if n := p.CharacterCount(); focus.Offset > n {
		focus.Offset = n
	}
	focus.Index = index
	return ed.moveTo(focus, extend)
}

// Home moves the caret to the start of its paragraph.
func (ed Editor) Home(doc richtext.Doc, extend bool) Editor {
	focus, ok := ed.focus(doc)
	if !ok {
		return ed
	}
	focus.Offset = 0
	return ed.moveTo(focus, extend)
}

// End moves the caret to the end of its paragraph.
func (ed Editor) End(doc richtext.Doc, extend bool) Editor {
	focus, ok := ed.focus(doc)
	if !ok {
		return ed
	}
	p, _ := doc.Nth(focus.Index)
	focus.Offset = p.CharacterCount()
	return ed.moveTo(focus, extend)
}

// focus returns the end of the selection that moves. Without a selection the
// caret is taken to be at the end of the document.
func (ed Editor) focus(doc richtext.Doc) (richtext.Position, bool) {
	if ed.Selection != nil && doc.ContainsPosition(ed.Selection.Focus) {
		return ed.Selection.Focus, true
	}
	return doc.EndPosition()
}

func (ed Editor) moveTo(focus richtext.Position, extend bool) Editor {
	if extend && ed.Selection != nil {
		s := richtext.NewSelection(ed.Selection.Anchor, focus)
		return Editor{Selection: &s}
	}
	return Editor{Selection: caret(focus)}
}
