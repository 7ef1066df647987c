package richtext

import "unicode/utf8"

// Content is a run: a piece of text rendered with a single style set.
// Offsets into a run count runes.
type Content struct {
	Text   string   `json:"text"`
	Styles StyleSet `json:"styles"`
}

// PlainText returns an unstyled run.
func PlainText(text string) Content {
	return Content{Text: text}
}

// MakeContent returns a run of text styled with styles.
func MakeContent(text string, styles StyleSet) Content {
	return Content{Text: text, Styles: styles}
}

// Len returns the number of runes in the run.
func (c Content) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// Slice returns the runes in [start, end), keeping the style set.
func (c Content) Slice(start, end int) Content {
	return Content{Text: sliceRunes(c.Text, start, end), Styles: c.Styles}
}

// RemoveSlice returns the run without the runes in [start, end).
func (c Content) RemoveSlice(start, end int) Content {
	n := c.Len()
	return Content{
		Text:   sliceRunes(c.Text, 0, start) + sliceRunes(c.Text, end, n),
		Styles: c.Styles,
	}
}

// Merge appends other's text, keeping c's style set.
func (c Content) Merge(other Content) Content {
	return Content{Text: c.Text + other.Text, Styles: c.Styles}
}

// sliceRunes returns the runes of s in [start, end), clamped to s.
func sliceRunes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}

	from, to := len(s), len(s)
	i := 0
	for b := range s {
		if i == start {
			from = b
		}
		if i == end {
			to = b
			break
		}
		i++
	}
	if from > to {
		return ""
	}
	return s[from:to]
}
