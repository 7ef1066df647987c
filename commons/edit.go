package commons

import (
	"errors"
	"fmt"

	"github.com/burntcarrot/composer/richtext"
)

var (
	ErrUnknownEditType  = errors.New("unknown edit type")
	ErrMissingSelection = errors.New("edit requires a selection")
)

// EditIntent is the tagged wire form of an edit.
type EditIntent struct {
	// Type represents the edit type, for example, replaceText, toggleBold.
	Type richtext.Kind `json:"type"`

	// Selection represents the selection the edit applies to. Only replaceText may omit it.
	Selection *richtext.Selection `json:"selection"`

	// Text represents the replacement text of replaceText.
	Text string `json:"text,omitempty"`

	// Styles represents the styles of replaceText (every field is set) or applyStyles.
	Styles *richtext.StylePatch `json:"styles,omitempty"`

	// URL represents the link target of addLink.
	URL string `json:"url,omitempty"`
}

// ToEdit decodes the intent. Every edit but replaceText needs a selection.
func (i EditIntent) ToEdit() (richtext.Edit, error) {
	e, err := i.edit()
	if err != nil {
		return nil, err
	}
	if i.Selection == nil && i.Type != richtext.KindReplaceText {
		return nil, fmt.Errorf("%w: %s", ErrMissingSelection, i.Type)
	}
	return e, nil
}

func (i EditIntent) edit() (richtext.Edit, error) {
	switch i.Type {
	case richtext.KindReplaceText:
		e := richtext.ReplaceText{Selection: i.Selection, Text: i.Text}
		if i.Styles != nil {
			s := richtext.StyleSet{}.Apply(*i.Styles)
			e.Styles = &s
		}
		return e, nil
	case richtext.KindReplaceTextWithParagraphBreak:
		return richtext.ReplaceTextWithParagraphBreak{Selection: i.Selection}, nil
	case richtext.KindApplyStyles:
		e := richtext.ApplyStyles{Selection: i.Selection}
		if i.Styles != nil {
			e.Styles = *i.Styles
		}
		return e, nil
	case richtext.KindToggleBold:
		return richtext.ToggleBold{Selection: i.Selection}, nil
	case richtext.KindToggleItalic:
		return richtext.ToggleItalic{Selection: i.Selection}, nil
	case richtext.KindAddLink:
		return richtext.AddLink{Selection: i.Selection, URL: i.URL}, nil
	case richtext.KindBackspace:
		return richtext.Backspace{Selection: i.Selection}, nil
	case richtext.KindDelete:
		return richtext.Delete{Selection: i.Selection}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEditType, i.Type)
}

// IntentFromEdit encodes e.
func IntentFromEdit(e richtext.Edit) (EditIntent, error) {
	if e == nil {
		return EditIntent{}, fmt.Errorf("%w: nil edit", ErrUnknownEditType)
	}
	i := EditIntent{Type: e.Kind(), Selection: e.EditSelection()}

	switch e := e.(type) {
	case richtext.ReplaceText:
		i.Text = e.Text
		if e.Styles != nil {
			p := richtext.PatchFrom(*e.Styles)
			i.Styles = &p
		}
	case richtext.ApplyStyles:
		p := e.Styles
		i.Styles = &p
	case richtext.AddLink:
		i.URL = e.URL
	case richtext.ReplaceTextWithParagraphBreak, richtext.ToggleBold, richtext.ToggleItalic,
		richtext.Backspace, richtext.Delete:
	default:
		return EditIntent{}, fmt.Errorf("%w: %T", ErrUnknownEditType, e)
	}
	return i, nil
}
