package richtext

// Selection is a range between two carets. Anchor is where the selection
// gesture began and Focus where it ended; either may come first in the
// document.
type Selection struct {
	Anchor Position `json:"anchor"`
	Focus  Position `json:"focus"`
}

// NewSelection returns the selection from anchor to focus.
func NewSelection(anchor, focus Position) Selection {
	return Selection{Anchor: anchor, Focus: focus}
}

// Collapsed returns a caret at pos.
func Collapsed(pos Position) Selection {
	return Selection{Anchor: pos, Focus: pos}
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}
