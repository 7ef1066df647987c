package richtext

import (
	"fmt"

	"github.com/burntcarrot/composer/ordered"
	"github.com/sirupsen/logrus"
)

// ApplyEdit returns the document produced by applying e to d.
//
// Edits that cannot be applied (an unknown edit type, a missing or stale
// selection) are logged and leave the document unchanged. Deleting past
// either end of the document is a silent no-op.
func (d Doc) ApplyEdit(e Edit, opts ...Option) Doc {
	o := newOptions(opts)

	switch e := e.(type) {
	case ReplaceText:
		return d.replaceText(e.Selection, e.Text, e.Styles, o)
	case ReplaceTextWithParagraphBreak:
		return d.replaceTextWithParagraphBreak(e.Selection, o)
	case ApplyStyles:
		return d.applyStyles(e.Selection, e.Styles, o)
	case ToggleBold:
		if e.Selection == nil {
			return d.ignore(e, o)
		}
		bold := d.StylesForSelection(*e.Selection).Bold
		return d.applyStyles(e.Selection, SetBold(!bold), o)
	case ToggleItalic:
		if e.Selection == nil {
			return d.ignore(e, o)
		}
		italic := d.StylesForSelection(*e.Selection).Italic
		return d.applyStyles(e.Selection, SetItalic(!italic), o)
	case AddLink:
		return d.applyStyles(e.Selection, SetLink(e.URL), o)
	case Backspace:
		return d.backspace(e.Selection, o)
	case Delete:
		return d.del(e.Selection, o)
	}

	o.logger.WithField("edit", fmt.Sprintf("%T", e)).Warn("unknown edit type, document unchanged")
	return d
}

func (d Doc) ignore(e Edit, o options) Doc {
	o.logger.WithFields(logrus.Fields{
		"edit":      e.Kind(),
		"selection": e.EditSelection(),
	}).Warn("edit selection does not resolve, document unchanged")
	return d
}

// resolve is PointerRangeFromSelection for selections whose ends are both
// caret positions in d.
func (d Doc) resolve(sel Selection) (start, end Pointer, ok bool) {
	if !d.ContainsPosition(sel.Anchor) || !d.ContainsPosition(sel.Focus) {
		return Pointer{}, Pointer{}, false
	}
	return d.PointerRangeFromSelection(sel)
}

// removeRange deletes the characters between start and end. When the range
// spans paragraphs, the two trimmed boundary paragraphs are merged under the
// start paragraph's key.
func (d Doc) removeRange(start, end Pointer, o options) Doc {
	from, ok := d.PositionFromPointer(start)
	if !ok {
		return d
	}
	to, ok := d.PositionFromPointer(end)
	if !ok {
		return d
	}

	out := paragraphs.RemoveSliceAtSubelement(from, to, d.Dict)
	if from.Index != to.Index {
		out = out.MergeElements(from.Index, 2, func(es []ordered.Entry[ParagraphID, Paragraph]) ordered.Entry[ParagraphID, Paragraph] {
			return Para(es[0].Key, es[0].Value.Merge(es[1].Value, o.keys))
		})
	}
	return Doc{out}
}

func (d Doc) replaceText(sel *Selection, text string, styles *StyleSet, o options) Doc {
	if sel == nil {
		if d.Count() == 0 {
			d = Doc{d.Push(ParagraphID(o.keys()), EmptyParagraph())}
		}
		end, _ := d.EndPosition()
		caret := Collapsed(end)
		sel = &caret
	}

	start, end, ok := d.resolve(*sel)
	if !ok {
		return d.ignore(ReplaceText{Selection: sel, Text: text, Styles: styles}, o)
	}

	style := d.StylesForSelection(*sel)
	if styles != nil {
		style = *styles
	}

	out := d.removeRange(start, end, o)
	if text != "" {
		run := MakeContent(text, style)
		out = Doc{out.Update(start.Key, func(p Paragraph) Paragraph {
			return p.InsertContent(run, start.Offset, o.keys)
		})}
	}
	return out.Defragment()
}

func (d Doc) replaceTextWithParagraphBreak(sel *Selection, o options) Doc {
	if sel == nil {
		return d.ignore(ReplaceTextWithParagraphBreak{}, o)
	}
	start, end, ok := d.resolve(*sel)
	if !ok {
		return d.ignore(ReplaceTextWithParagraphBreak{Selection: sel}, o)
	}

	out := d.removeRange(start, end, o)
	caret, ok := out.PositionFromPointer(start)
	if !ok {
		return d
	}

	// Halves are defragmented individually; the document is not collapsed,
	// so a break in an empty document yields two empty paragraphs.
	before, after := ParagraphID(o.keys()), ParagraphID(o.keys())
	return Doc{paragraphs.SplitElementInPlace(caret, before, after, out.Dict)}
}

func (d Doc) applyStyles(sel *Selection, patch StylePatch, o options) Doc {
	if sel == nil {
		return d.ignore(ApplyStyles{Styles: patch}, o)
	}
	if sel.IsCollapsed() {
		return d
	}
	start, end, ok := d.resolve(*sel)
	if !ok {
		return d.ignore(ApplyStyles{Selection: sel, Styles: patch}, o)
	}
	from, _ := d.PositionFromPointer(start)
	to, _ := d.PositionFromPointer(end)

	out := d.Dict
	for i := from.Index; i <= to.Index; i++ {
		key, _ := out.KeyAtIndex(i)
		out = out.Update(key, func(p Paragraph) Paragraph {
			first, last := 0, p.CharacterCount()
			if i == from.Index {
				first = from.Offset
			}
			if i == to.Index {
				last = to.Offset
			}
			return p.ApplyStyles(first, last, patch, o.keys)
		})
	}
	return Doc{out}.Defragment()
}

func (d Doc) backspace(sel *Selection, o options) Doc {
	if sel == nil {
		return d.ignore(Backspace{}, o)
	}
	if !d.ContainsPosition(sel.Anchor) {
		return d.ignore(Backspace{Selection: sel}, o)
	}
	if !sel.IsCollapsed() {
		return d.replaceText(sel, "", nil, o)
	}
	prev, ok := d.PreviousPosition(sel.Anchor)
	if !ok {
		return d
	}
	r := NewSelection(prev, sel.Anchor)
	return d.replaceText(&r, "", nil, o)
}

func (d Doc) del(sel *Selection, o options) Doc {
	if sel == nil {
		return d.ignore(Delete{}, o)
	}
	if !d.ContainsPosition(sel.Anchor) {
		return d.ignore(Delete{Selection: sel}, o)
	}
	if !sel.IsCollapsed() {
		return d.replaceText(sel, "", nil, o)
	}
	next, ok := d.NextPosition(sel.Anchor)
	if !ok {
		return d
	}
	r := NewSelection(sel.Anchor, next)
	return d.replaceText(&r, "", nil, o)
}
