package session

import (
	"fmt"

	"github.com/burntcarrot/composer/richtext"
)

// CommandType names a user action.
type CommandType string

const (
	CommandText           CommandType = "text"
	CommandParagraphBreak CommandType = "paragraphBreak"
	CommandBold           CommandType = "bold"
	CommandItalicize      CommandType = "italicize"
	CommandAddLink        CommandType = "addLink"
	CommandBackspace      CommandType = "backspace"
	CommandDel            CommandType = "del"
)

// Command is a user action, decoded from input without knowledge of the
// document or the caret.
type Command struct {
	Type CommandType

	// Text is typed by CommandText.
	Text string

	// URL is the link target of CommandAddLink.
	URL string
}

// Text returns the command typing text.
func Text(text string) Command {
	return Command{Type: CommandText, Text: text}
}

// Link returns the command linking the selection to url.
func Link(url string) Command {
	return Command{Type: CommandAddLink, URL: url}
}

// editFor builds the edit performing c at the editor's caret.
func (s *Session) editFor(c Command) (richtext.Edit, error) {
	switch c.Type {
	case CommandText:
		return s.editor.ReplaceText(c.Text), nil
	case CommandParagraphBreak:
		return richtext.ReplaceTextWithParagraphBreak{Selection: s.caret()}, nil
	case CommandBold:
		return richtext.ToggleBold{Selection: s.caret()}, nil
	case CommandItalicize:
		return richtext.ToggleItalic{Selection: s.caret()}, nil
	case CommandAddLink:
		return richtext.AddLink{Selection: s.caret(), URL: c.URL}, nil
	case CommandBackspace:
		return richtext.Backspace{Selection: s.caret()}, nil
	case CommandDel:
		return richtext.Delete{Selection: s.caret()}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
}

// caret is the editor's selection, or a caret at the end of the document when
// there is none.
func (s *Session) caret() *richtext.Selection {
	if s.editor.Selection != nil {
		return s.editor.Selection
	}
	end, ok := s.doc.EndPosition()
	if !ok {
		return nil
	}
	sel := richtext.Collapsed(end)
	return &sel
}
