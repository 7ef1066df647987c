package richtext

// Kind names an edit intent.
type Kind string

const (
	KindReplaceText                   Kind = "replaceText"
	KindReplaceTextWithParagraphBreak Kind = "replaceTextWithParagraphBreak"
	KindApplyStyles                   Kind = "applyStyles"
	KindToggleBold                    Kind = "toggleBold"
	KindToggleItalic                  Kind = "toggleItalic"
	KindAddLink                       Kind = "addLink"
	KindBackspace                     Kind = "backspace"
	KindDelete                        Kind = "del"
)

// Edit is the intent to change a document at a selection. Selections are
// positions, so an edit must be applied to the exact document it was built
// against.
type Edit interface {
	Kind() Kind
	EditSelection() *Selection
}

// ReplaceText replaces the selection with Text. A nil Selection inserts at
// the end of the document, creating a paragraph if there is none. A nil
// Styles continues the style in effect at the selection.
type ReplaceText struct {
	Selection *Selection
	Text      string
	Styles    *StyleSet
}

// ReplaceTextWithParagraphBreak replaces the selection with a paragraph
// break.
type ReplaceTextWithParagraphBreak struct {
	Selection *Selection
}

// ApplyStyles applies Styles to every character of the selection.
type ApplyStyles struct {
	Selection *Selection
	Styles    StylePatch
}

// ToggleBold flips bold on the selection.
type ToggleBold struct {
	Selection *Selection
}

// ToggleItalic flips italic on the selection.
type ToggleItalic struct {
	Selection *Selection
}

// AddLink links the selection to URL.
type AddLink struct {
	Selection *Selection
	URL       string
}

// Backspace removes the selection, or the character before a caret.
type Backspace struct {
	Selection *Selection
}

// Delete removes the selection, or the character after a caret.
type Delete struct {
	Selection *Selection
}

func (e ReplaceText) Kind() Kind                   { return KindReplaceText }
func (e ReplaceTextWithParagraphBreak) Kind() Kind { return KindReplaceTextWithParagraphBreak }
func (e ApplyStyles) Kind() Kind                   { return KindApplyStyles }
func (e ToggleBold) Kind() Kind                    { return KindToggleBold }
func (e ToggleItalic) Kind() Kind                  { return KindToggleItalic }
func (e AddLink) Kind() Kind                       { return KindAddLink }
func (e Backspace) Kind() Kind                     { return KindBackspace }
func (e Delete) Kind() Kind                        { return KindDelete }

func (e ReplaceText) EditSelection() *Selection                   { return e.Selection }
func (e ReplaceTextWithParagraphBreak) EditSelection() *Selection { return e.Selection }
func (e ApplyStyles) EditSelection() *Selection                   { return e.Selection }
func (e ToggleBold) EditSelection() *Selection                    { return e.Selection }
func (e ToggleItalic) EditSelection() *Selection                  { return e.Selection }
func (e AddLink) EditSelection() *Selection                       { return e.Selection }
func (e Backspace) EditSelection() *Selection                     { return e.Selection }
func (e Delete) EditSelection() *Selection                        { return e.Selection }
