package richtext

import (
	"strings"

	"github.com/burntcarrot/composer/ordered"
	"github.com/burntcarrot/composer/osd"
)

// ContentID identifies a run within its paragraph.
type ContentID string

// Paragraph is an ordered sequence of runs. Offsets into a paragraph count
// runes across all of its runs.
type Paragraph struct {
	ordered.Dict[ContentID, Content]
}

// runs subdivides paragraphs into runs, and runs into runes.
var runs = osd.New[ContentID, Content](osd.Traits[Content]{
	Count: Content.Len,
	ContainsIndex: func(i int, c Content) bool {
		return i >= 0 && i <= c.Len()
	},
	Slice: func(start, end int, c Content) Content {
		return c.Slice(start, end)
	},
	RemoveSlice: func(start, end int, c Content) Content {
		return c.RemoveSlice(start, end)
	},
})

// EmptyParagraph returns a paragraph with no runs.
func EmptyParagraph() Paragraph {
	return Paragraph{ordered.Empty[ContentID, Content]()}
}

// ParagraphFromRuns builds a paragraph from runs, in order.
func ParagraphFromRuns(entries ...ordered.Entry[ContentID, Content]) Paragraph {
	return Paragraph{ordered.FromArray(entries)}
}

// Run is a shorthand for building paragraph entries.
func Run(key ContentID, c Content) ordered.Entry[ContentID, Content] {
	return ordered.Entry[ContentID, Content]{Key: key, Value: c}
}

// CharacterCount returns the number of runes in the paragraph.
func (p Paragraph) CharacterCount() int {
	return runs.TotalCount(p.Dict)
}

// Text returns the paragraph's text without styles.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, c := range p.Values() {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Runs returns the paragraph's runs in order, for rendering.
func (p Paragraph) Runs() []ordered.Entry[ContentID, Content] {
	return p.ToList()
}

func (p Paragraph) position(offset int) (osd.Position, bool) {
	return runs.PositionFromAbsoluteOffset(offset, p.Dict)
}

// StylesAt returns the style set of the character at offset, that is the
// character between offset and offset+1.
func (p Paragraph) StylesAt(offset int) (StyleSet, bool) {
	if offset < 0 || offset >= p.CharacterCount() {
		return StyleSet{}, false
	}
	pos, ok := p.position(offset)
	if !ok {
		return StyleSet{}, false
	}
	c, _ := p.Nth(pos.Index)
	return c.Styles, true
}

// InsertContent inserts c at offset, splitting the run found there. The
// result is defragmented.
func (p Paragraph) InsertContent(c Content, offset int, keys KeyGen) Paragraph {
	pos, ok := p.position(offset)
	if !ok {
		// Empty paragraph, or an offset past the end: append.
		return Paragraph{p.Push(ContentID(keys()), c)}.Defragment()
	}

	before, after := ContentID(keys()), ContentID(keys())
	split := runs.SplitElementInPlace(pos, before, after, p.Dict)
	return Paragraph{split.Insert(ContentID(keys()), c, pos.Index+1)}.Defragment()
}

// RemoveContentInRange removes the characters in [start, end). The result is
// defragmented.
func (p Paragraph) RemoveContentInRange(start, end int) Paragraph {
	if start > end {
		start, end = end, start
	}
	from, ok := p.position(start)
	if !ok {
		return p.Defragment()
	}
	to, ok := p.position(end)
	if !ok {
		to, _ = runs.EndPosition(p.Dict)
	}
	return Paragraph{runs.RemoveSliceAtSubelement(from, to, p.Dict)}.Defragment()
}

// Slice returns the characters in [start, end) with their run structure.
func (p Paragraph) Slice(start, end int) Paragraph {
	if start > end {
		start, end = end, start
	}
	from, ok := p.position(start)
	if !ok {
		return EmptyParagraph()
	}
	to, ok := p.position(end)
	if !ok {
		to, _ = runs.EndPosition(p.Dict)
	}
	return Paragraph{runs.SliceBySubelements(from, to, p.Dict)}.Defragment()
}

// Split divides the paragraph at offset. Both halves are defragmented.
func (p Paragraph) Split(offset int) (before, after Paragraph) {
	pos, ok := p.position(offset)
	if !ok {
		return p.Defragment(), EmptyParagraph()
	}
	b, a := runs.SplitAtSubelement(pos, p.Dict)
	return Paragraph{b}.Defragment(), Paragraph{a}.Defragment()
}

// Merge appends the runs of other. Runs of other whose keys are already used
// are given fresh keys. The result is defragmented.
func (p Paragraph) Merge(other Paragraph, keys KeyGen) Paragraph {
	out := p.Dict
	for _, e := range other.ToList() {
		key := e.Key
		for out.Contains(key) {
			key = ContentID(keys())
		}
		out = out.Push(key, e.Value)
	}
	return Paragraph{out}.Defragment()
}

// ApplyStyles applies patch to the characters in [start, end). Runs crossing
// either boundary are split under fresh keys first, and the result is
// defragmented.
func (p Paragraph) ApplyStyles(start, end int, patch StylePatch, keys KeyGen) Paragraph {
	if start > end {
		start, end = end, start
	}
	if start == end {
		return p
	}

	d := splitRunAt(p.Dict, start, keys)
	d = splitRunAt(d, end, keys)

	acc := 0
	for _, e := range d.ToList() {
		n := e.Value.Len()
		if n > 0 && acc >= start && acc+n <= end {
			c := e.Value
			c.Styles = c.Styles.Apply(patch)
			d = d.Set(e.Key, c)
		}
		acc += n
	}
	return Paragraph{d}.Defragment()
}

// splitRunAt makes offset fall on a run boundary.
func splitRunAt(d ordered.Dict[ContentID, Content], offset int, keys KeyGen) ordered.Dict[ContentID, Content] {
	pos, ok := runs.PositionFromAbsoluteOffset(offset, d)
	if !ok || pos.Offset == 0 {
		return d
	}
	c, _ := d.Nth(pos.Index)
	if pos.Offset >= c.Len() {
		return d
	}
	return runs.SplitElementInPlace(pos, ContentID(keys()), ContentID(keys()), d)
}

// Defragment drops empty runs and merges each run into the previous one when
// their styles are equivalent. A merged run keeps the earlier run's key.
func (p Paragraph) Defragment() Paragraph {
	out := ordered.Empty[ContentID, Content]()
	var last ContentID
	nonEmpty := p.Filter(func(_ ContentID, c Content) bool { return c.Len() > 0 })
	for _, e := range nonEmpty.ToList() {
		if prev, ok := out.Get(last); ok && out.Count() > 0 && prev.Styles.Equivalent(e.Value.Styles) {
			out = out.Set(last, prev.Merge(e.Value))
			continue
		}
		out = out.Push(e.Key, e.Value)
		last = e.Key
	}
	return Paragraph{out}
}
