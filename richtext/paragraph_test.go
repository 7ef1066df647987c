package richtext

import (
	"testing"

	"github.com/burntcarrot/composer/osd"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var equateEmpty = cmpopts.EquateEmpty()

var bold = StyleSet{Bold: true}

func TestContent(t *testing.T) {
	c := MakeContent("héllo", bold)

	if got := c.Len(); got != 5 {
		t.Errorf("got != want; got = %v, expected = %v\n", got, 5)
	}
	if got := c.Slice(1, 3); !cmp.Equal(got, MakeContent("él", bold)) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, MakeContent("él", bold)))
	}
	if got := c.RemoveSlice(1, 4); !cmp.Equal(got, MakeContent("ho", bold)) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, MakeContent("ho", bold)))
	}
	if got := c.Slice(4, 40); got.Text != "o" {
		t.Errorf("got != want; got = %q, expected = %q\n", got.Text, "o")
	}
	if got := c.Merge(PlainText("!")); !cmp.Equal(got, MakeContent("héllo!", bold)) {
		t.Errorf("merge should keep the first run's styles, got %+v", got)
	}
}

func TestStyleSet(t *testing.T) {
	tests := []struct {
		description string
		a, b        StyleSet
		expected    bool
	}{
		{description: "plain", a: StyleSet{}, b: StyleSet{}, expected: true},
		{description: "bold vs plain", a: bold, b: StyleSet{}, expected: false},
		{description: "same link", a: StyleSet{Link: "x"}, b: StyleSet{Link: "x"}, expected: true},
		{description: "different link", a: StyleSet{Link: "x"}, b: StyleSet{Link: "y"}, expected: false},
	}

	for _, tc := range tests {
		if got := tc.a.Equivalent(tc.b); got != tc.expected {
			t.Errorf("(%s) got = %v, expected = %v\n", tc.description, got, tc.expected)
		}
	}

	patched := StyleSet{Italic: true, Link: "x"}.Apply(SetBold(true))
	if want := (StyleSet{Bold: true, Italic: true, Link: "x"}); patched != want {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(patched, want))
	}
}

// TestPositionFromAbsoluteOffset_Runs walks offsets over two runs of length 3 and 2.
func TestPositionFromAbsoluteOffset_Runs(t *testing.T) {
	p := ParagraphFromRuns(
		Run("r1", PlainText("abc")),
		Run("r2", MakeContent("de", bold)),
	)

	tests := []struct {
		offset   int
		expected osd.Position
	}{
		{offset: 0, expected: osd.Position{Index: 0, Offset: 0}},
		{offset: 3, expected: osd.Position{Index: 1, Offset: 0}},
		{offset: 5, expected: osd.Position{Index: 1, Offset: 2}},
	}

	for _, tc := range tests {
		got, ok := p.position(tc.offset)
		if !ok || !cmp.Equal(got, tc.expected) {
			t.Errorf("(offset %d) got != expected, diff: %v\n", tc.offset, cmp.Diff(got, tc.expected))
		}
	}
	if _, ok := p.position(-1); ok {
		t.Errorf("expected negative offset to be rejected")
	}
}

func TestInsertContent(t *testing.T) {
	tests := []struct {
		description string
		paragraph   Paragraph
		content     Content
		offset      int
		expected    Paragraph
	}{
		{
			description: "into empty paragraph",
			paragraph:   EmptyParagraph(),
			content:     PlainText("hi"),
			offset:      0,
			expected:    ParagraphFromRuns(Run("k1", PlainText("hi"))),
		},
		{
			description: "same style merges into the earlier run",
			paragraph:   ParagraphFromRuns(Run("r1", PlainText("abc"))),
			content:     PlainText("X"),
			offset:      1,
			expected:    ParagraphFromRuns(Run("k1", PlainText("aXbc"))),
		},
		{
			description: "different style splits the run",
			paragraph:   ParagraphFromRuns(Run("r1", PlainText("abc"))),
			content:     MakeContent("X", bold),
			offset:      1,
			expected: ParagraphFromRuns(
				Run("k1", PlainText("a")),
				Run("k3", MakeContent("X", bold)),
				Run("k2", PlainText("bc")),
			),
		},
		{
			description: "at the end",
			paragraph:   ParagraphFromRuns(Run("r1", PlainText("abc"))),
			content:     MakeContent("!", bold),
			offset:      3,
			expected: ParagraphFromRuns(
				Run("k1", PlainText("abc")),
				Run("k3", MakeContent("!", bold)),
			),
		},
	}

	for _, tc := range tests {
		got := tc.paragraph.InsertContent(tc.content, tc.offset, SequentialKeys("k"))
		if !cmp.Equal(got, tc.expected, equateEmpty) {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected, equateEmpty))
		}
	}
}

func TestRemoveContentInRange(t *testing.T) {
	p := ParagraphFromRuns(
		Run("r1", PlainText("ab")),
		Run("r2", MakeContent("cd", bold)),
		Run("r3", PlainText("ef")),
	)

	got := p.RemoveContentInRange(1, 5)
	want := ParagraphFromRuns(Run("r1", PlainText("af")))
	if !cmp.Equal(got, want, equateEmpty) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want, equateEmpty))
	}

	got = p.RemoveContentInRange(0, 6)
	if got.CharacterCount() != 0 || got.Count() != 0 {
		t.Errorf("expected no runs left, got %+v", got)
	}
}

func TestDefragment(t *testing.T) {
	p := ParagraphFromRuns(
		Run("r1", PlainText("a")),
		Run("r2", PlainText("")),
		Run("r3", PlainText("b")),
		Run("r4", MakeContent("c", bold)),
		Run("r5", MakeContent("d", StyleSet{Bold: true, Link: ""})),
		Run("r6", MakeContent("e", StyleSet{Link: "https://example.com"})),
	)

	got := p.Defragment()
	want := ParagraphFromRuns(
		Run("r1", PlainText("ab")),
		Run("r4", MakeContent("cd", bold)),
		Run("r6", MakeContent("e", StyleSet{Link: "https://example.com"})),
	)

	if !cmp.Equal(got, want, equateEmpty) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want, equateEmpty))
	}
	if again := got.Defragment(); !cmp.Equal(again, got, equateEmpty) {
		t.Errorf("defragment is not idempotent, diff: %v\n", cmp.Diff(again, got, equateEmpty))
	}
}

func TestSplit(t *testing.T) {
	p := ParagraphFromRuns(
		Run("r1", PlainText("abc")),
		Run("r2", MakeContent("de", bold)),
	)

	before, after := p.Split(2)

	if want := ParagraphFromRuns(Run("r1", PlainText("ab"))); !cmp.Equal(before, want, equateEmpty) {
		t.Errorf("before: got != want; diff = %v\n", cmp.Diff(before, want, equateEmpty))
	}
	wantAfter := ParagraphFromRuns(
		Run("r1", PlainText("c")),
		Run("r2", MakeContent("de", bold)),
	)
	if !cmp.Equal(after, wantAfter, equateEmpty) {
		t.Errorf("after: got != want; diff = %v\n", cmp.Diff(after, wantAfter, equateEmpty))
	}
}

func TestMerge_RekeysCollisions(t *testing.T) {
	a := ParagraphFromRuns(Run("r1", PlainText("ab")))
	b := ParagraphFromRuns(Run("r1", MakeContent("cd", bold)))

	got := a.Merge(b, SequentialKeys("k"))
	want := ParagraphFromRuns(
		Run("r1", PlainText("ab")),
		Run("k1", MakeContent("cd", bold)),
	)

	if !cmp.Equal(got, want, equateEmpty) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want, equateEmpty))
	}
}

func TestParagraphApplyStyles(t *testing.T) {
	p := ParagraphFromRuns(Run("r1", PlainText("hello world")))

	got := p.ApplyStyles(0, 5, SetBold(true), SequentialKeys("k"))
	want := ParagraphFromRuns(
		Run("k1", MakeContent("hello", bold)),
		Run("k2", PlainText(" world")),
	)
	if !cmp.Equal(got, want, equateEmpty) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got, want, equateEmpty))
	}

	if same := p.ApplyStyles(3, 3, SetBold(true), SequentialKeys("k")); !cmp.Equal(same, p, equateEmpty) {
		t.Errorf("empty range should not change the paragraph, diff: %v\n", cmp.Diff(same, p, equateEmpty))
	}
}

func TestStylesAt(t *testing.T) {
	p := ParagraphFromRuns(
		Run("r1", PlainText("ab")),
		Run("r2", MakeContent("c", bold)),
	)

	if s, ok := p.StylesAt(2); !ok || !s.Bold {
		t.Errorf("expected character 2 to be bold, got %+v", s)
	}
	if s, ok := p.StylesAt(1); !ok || s.Bold {
		t.Errorf("expected character 1 to be plain, got %+v", s)
	}
	if _, ok := p.StylesAt(3); ok {
		t.Errorf("expected no character at the end of the paragraph")
	}
}
