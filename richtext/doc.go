// Package richtext implements the editable document of the composer: a
// document is an ordered sequence of paragraphs, and a paragraph an ordered
// sequence of styled runs.
//
// Documents are values. ApplyEdit and every other operation return a new
// document and leave their input untouched, so a caller may keep older
// snapshots around.
package richtext

import (
	"strings"

	"github.com/burntcarrot/composer/ordered"
	"github.com/burntcarrot/composer/osd"
)

// ParagraphID identifies a paragraph for the lifetime of a document.
type ParagraphID string

type (
	// Position addresses a caret by paragraph index and character offset.
	// It is only valid against the document it was computed from.
	Position = osd.Position

	// Pointer addresses a caret by paragraph key and character offset.
	Pointer = osd.Pointer[ParagraphID]
)

// Doc is an ordered sequence of paragraphs.
type Doc struct {
	ordered.Dict[ParagraphID, Paragraph]
}

// paragraphs subdivides documents into paragraphs, and paragraphs into
// characters.
var paragraphs = osd.New[ParagraphID, Paragraph](osd.Traits[Paragraph]{
	Count: Paragraph.CharacterCount,
	ContainsIndex: func(i int, p Paragraph) bool {
		return i >= 0 && i <= p.CharacterCount()
	},
	Slice: func(start, end int, p Paragraph) Paragraph {
		return p.Slice(start, end)
	},
	RemoveSlice: func(start, end int, p Paragraph) Paragraph {
		return p.RemoveContentInRange(start, end)
	},
})

// EmptyDoc returns a document with no paragraphs. It stands for "no
// document", e.g. next to an error from Load; a document to be edited starts
// from CanonicalEmptyDoc.
func EmptyDoc() Doc {
	return Doc{ordered.Empty[ParagraphID, Paragraph]()}
}

// CanonicalEmptyDoc returns the empty document a user edits: exactly one
// paragraph, with no runs, keyed by keys.
func CanonicalEmptyDoc(keys KeyGen) Doc {
	return DocFromParagraphs(Para(ParagraphID(keys()), EmptyParagraph()))
}

// DocFromParagraphs builds a document from paragraphs, in order.
func DocFromParagraphs(entries ...ordered.Entry[ParagraphID, Paragraph]) Doc {
	return Doc{ordered.FromArray(entries)}
}

// Para is a shorthand for building document entries.
func Para(key ParagraphID, p Paragraph) ordered.Entry[ParagraphID, Paragraph] {
	return ordered.Entry[ParagraphID, Paragraph]{Key: key, Value: p}
}

// CharacterCount returns the number of characters in the document, not
// counting paragraph breaks.
func (d Doc) CharacterCount() int {
	return paragraphs.TotalCount(d.Dict)
}

// Text returns the document's text, one line per paragraph.
func (d Doc) Text() string {
	lines := make([]string, 0, d.Count())
	for _, p := range d.Values() {
		lines = append(lines, p.Text())
	}
	return strings.Join(lines, "\n")
}

// Paragraphs returns the document's paragraphs in order, for rendering.
func (d Doc) Paragraphs() []ordered.Entry[ParagraphID, Paragraph] {
	return d.ToList()
}

// Defragment defragments every paragraph. A document left without any
// characters collapses to a single empty paragraph, under the key of its
// first paragraph.
func (d Doc) Defragment() Doc {
	out := Doc{d.MapValues(Paragraph.Defragment)}
	if out.Count() > 0 && out.CharacterCount() == 0 {
		first, _ := out.KeyAtIndex(0)
		return DocFromParagraphs(Para(first, EmptyParagraph()))
	}
	return out
}

///////////////////////
// Caret arithmetic
///////////////////////

// PositionFromPointer resolves ptr against d.
func (d Doc) PositionFromPointer(ptr Pointer) (Position, bool) {
	return paragraphs.PositionFromPointer(ptr, d.Dict)
}

// PointerFromPosition resolves pos against d.
func (d Doc) PointerFromPosition(pos Position) (Pointer, bool) {
	return paragraphs.PointerFromPosition(pos, d.Dict)
}

// PositionFromAbsoluteOffset resolves a character offset counted from the
// start of the document.
func (d Doc) PositionFromAbsoluteOffset(offset int) (Position, bool) {
	return paragraphs.PositionFromAbsoluteOffset(offset, d.Dict)
}

// ContainsPosition reports whether pos is a caret position in d.
func (d Doc) ContainsPosition(pos Position) bool {
	return paragraphs.ContainsPosition(pos, d.Dict)
}

// NextPosition moves pos forward by one character or paragraph break.
func (d Doc) NextPosition(pos Position) (Position, bool) {
	next, ok := paragraphs.NextPosition(pos, d.Dict)
	if !ok || !d.ContainsPosition(next) {
		return Position{}, false
	}
	return next, true
}

// PreviousPosition moves pos back by one character or paragraph break.
func (d Doc) PreviousPosition(pos Position) (Position, bool) {
	return paragraphs.PreviousPosition(pos, d.Dict)
}

// StartPosition returns the caret position at the start of the document.
func (d Doc) StartPosition() (Position, bool) {
	return paragraphs.StartPosition(d.Dict)
}

// EndPosition returns the caret position at the end of the document.
func (d Doc) EndPosition() (Position, bool) {
	return paragraphs.EndPosition(d.Dict)
}

// PointerRangeFromSelection returns the selection's ends as pointers, in
// document order.
func (d Doc) PointerRangeFromSelection(sel Selection) (start, end Pointer, ok bool) {
	anchor, ok := d.PointerFromPosition(sel.Anchor)
	if !ok {
		return Pointer{}, Pointer{}, false
	}
	focus, ok := d.PointerFromPosition(sel.Focus)
	if !ok {
		return Pointer{}, Pointer{}, false
	}
	sorted := paragraphs.SortPointersAscending([]Pointer{anchor, focus}, d.Dict)
	return sorted[0], sorted[1], true
}

// IsSelectionBackwards reports whether the selection's focus precedes its
// anchor.
func (d Doc) IsSelectionBackwards(sel Selection) bool {
	return osd.Compare(sel.Focus, sel.Anchor) < 0
}

// StylesForSelection returns the style set in effect for sel.
//
// For a caret this is the style of the character before it, so typing
// continues the preceding run; at the start of a paragraph the character
// after the caret is used instead. For a range it is the style of the first
// character of the range.
func (d Doc) StylesForSelection(sel Selection) StyleSet {
	if sel.IsCollapsed() {
		p, ok := d.Nth(sel.Anchor.Index)
		if !ok {
			return StyleSet{}
		}
		if s, ok := p.StylesAt(sel.Anchor.Offset - 1); ok {
			return s
		}
		if s, ok := p.StylesAt(sel.Anchor.Offset); ok {
			return s
		}
		return StyleSet{}
	}

	start := sel.Anchor
	if d.IsSelectionBackwards(sel) {
		start = sel.Focus
	}
	return d.stylesFrom(start)
}

// stylesFrom returns the style of the first character at or after pos.
func (d Doc) stylesFrom(pos Position) StyleSet {
	offset := pos.Offset
	for i := pos.Index; i < d.Count(); i++ {
		p, _ := d.Nth(i)
		if s, ok := p.StylesAt(offset); ok {
			return s
		}
		offset = 0
	}
	return StyleSet{}
}
