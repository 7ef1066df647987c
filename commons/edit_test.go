package commons

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/burntcarrot/composer/richtext"
	"github.com/google/go-cmp/cmp"
)

func selection(ai, ao, fi, fo int) *richtext.Selection {
	s := richtext.NewSelection(richtext.Position{Index: ai, Offset: ao}, richtext.Position{Index: fi, Offset: fo})
	return &s
}

func TestToEdit(t *testing.T) {
	bold := true

	tests := []struct {
		description string
		data        string
		expected    richtext.Edit
	}{
		{
			description: "replace text",
			data:        `{"type":"replaceText","selection":{"anchor":{"index":0,"offset":1},"focus":{"index":0,"offset":1}},"text":"hi"}`,
			expected:    richtext.ReplaceText{Selection: selection(0, 1, 0, 1), Text: "hi"},
		},
		{
			description: "replace text without selection",
			data:        `{"type":"replaceText","text":"hi","styles":{"italic":true}}`,
			expected:    richtext.ReplaceText{Text: "hi", Styles: &richtext.StyleSet{Italic: true}},
		},
		{
			description: "apply styles",
			data:        `{"type":"applyStyles","selection":{"anchor":{"index":0,"offset":0},"focus":{"index":1,"offset":2}},"styles":{"bold":true}}`,
			expected:    richtext.ApplyStyles{Selection: selection(0, 0, 1, 2), Styles: richtext.StylePatch{Bold: &bold}},
		},
		{
			description: "add link",
			data:        `{"type":"addLink","selection":{"anchor":{"index":0,"offset":0},"focus":{"index":0,"offset":3}},"url":"https://example.com"}`,
			expected:    richtext.AddLink{Selection: selection(0, 0, 0, 3), URL: "https://example.com"},
		},
		{
			description: "delete",
			data:        `{"type":"del","selection":{"anchor":{"index":2,"offset":0},"focus":{"index":2,"offset":0}}}`,
			expected:    richtext.Delete{Selection: selection(2, 0, 2, 0)},
		},
	}

	for _, tc := range tests {
		var intent EditIntent
		if err := json.Unmarshal([]byte(tc.data), &intent); err != nil {
			t.Fatalf("(%s) unmarshal: %v", tc.description, err)
		}
		got, err := intent.ToEdit()
		if err != nil {
			t.Errorf("(%s) unexpected error: %v", tc.description, err)
			continue
		}
		if !cmp.Equal(got, tc.expected) {
			t.Errorf("(%s) got != expected, diff: %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
	}
}

func TestToEdit_Errors(t *testing.T) {
	tests := []struct {
		description string
		intent      EditIntent
		expected    error
	}{
		{description: "unknown type", intent: EditIntent{Type: "shout", Selection: selection(0, 0, 0, 0)}, expected: ErrUnknownEditType},
		{description: "bold without selection", intent: EditIntent{Type: richtext.KindToggleBold}, expected: ErrMissingSelection},
		{description: "backspace without selection", intent: EditIntent{Type: richtext.KindBackspace}, expected: ErrMissingSelection},
	}

	for _, tc := range tests {
		if _, err := tc.intent.ToEdit(); !errors.Is(err, tc.expected) {
			t.Errorf("(%s) got = %v, expected = %v\n", tc.description, err, tc.expected)
		}
	}
}

func TestIntentFromEdit(t *testing.T) {
	edits := []richtext.Edit{
		richtext.ReplaceText{Selection: selection(0, 1, 0, 2), Text: "x", Styles: &richtext.StyleSet{Bold: true, Link: "https://example.com"}},
		richtext.ReplaceTextWithParagraphBreak{Selection: selection(0, 1, 0, 1)},
		richtext.ApplyStyles{Selection: selection(0, 1, 0, 2), Styles: richtext.SetItalic(true)},
		richtext.ToggleBold{Selection: selection(0, 1, 0, 2)},
		richtext.ToggleItalic{Selection: selection(0, 1, 0, 2)},
		richtext.AddLink{Selection: selection(0, 1, 0, 2), URL: "https://example.com"},
		richtext.Backspace{Selection: selection(0, 1, 0, 1)},
		richtext.Delete{Selection: selection(0, 1, 0, 1)},
	}

	for _, e := range edits {
		intent, err := IntentFromEdit(e)
		if err != nil {
			t.Fatalf("(%s) encode: %v", e.Kind(), err)
		}
		got, err := intent.ToEdit()
		if err != nil {
			t.Fatalf("(%s) decode: %v", e.Kind(), err)
		}
		if !cmp.Equal(got, e) {
			t.Errorf("(%s) got != expected, diff: %v\n", e.Kind(), cmp.Diff(got, e))
		}
	}

	if _, err := IntentFromEdit(nil); !errors.Is(err, ErrUnknownEditType) {
		t.Errorf("got = %v, expected = %v\n", err, ErrUnknownEditType)
	}
}
