package richtext

// StyleSet is the formatting shared by every character of a run.
//
// An unset flag and a false flag are the same style, as are an absent link
// and an empty one, so two style sets are equivalent exactly when they are
// equal.
type StyleSet struct {
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Equivalent reports whether runs styled with s and other may be merged.
func (s StyleSet) Equivalent(other StyleSet) bool {
	return s == other
}

// Apply returns s with every field set in p overwritten.
func (s StyleSet) Apply(p StylePatch) StyleSet {
	if p.Bold != nil {
		s.Bold = *p.Bold
	}
	if p.Italic != nil {
		s.Italic = *p.Italic
	}
	if p.Link != nil {
		s.Link = *p.Link
	}
	return s
}

// StylePatch is a partial style set; nil fields are left untouched when the
// patch is applied.
type StylePatch struct {
	Bold   *bool   `json:"bold,omitempty"`
	Italic *bool   `json:"italic,omitempty"`
	Link   *string `json:"link,omitempty"`
}

// SetBold returns a patch which only sets bold.
func SetBold(bold bool) StylePatch {
	return StylePatch{Bold: &bold}
}

// SetItalic returns a patch which only sets italic.
func SetItalic(italic bool) StylePatch {
	return StylePatch{Italic: &italic}
}

// SetLink returns a patch which only sets the link target.
func SetLink(url string) StylePatch {
	return StylePatch{Link: &url}
}

// PatchFrom returns the patch that sets every field of s.
func PatchFrom(s StyleSet) StylePatch {
	return StylePatch{Bold: &s.Bold, Italic: &s.Italic, Link: &s.Link}
}
