package tui

import (
	"strings"

	"github.com/burntcarrot/composer/session"
	tea "github.com/charmbracelet/bubbletea"
)

// CommandFromKey decodes a key press into an editing command. Keys that do
// not edit the document (movement, quitting, saving) are not commands.
func CommandFromKey(msg tea.KeyMsg) (session.Command, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return session.Command{Type: session.CommandParagraphBreak}, true

	// The default key for toggling bold is Ctrl+B.
	case tea.KeyCtrlB:
		return session.Command{Type: session.CommandBold}, true

	// Ctrl+I is indistinguishable from Tab in a terminal, so italics use Ctrl+T.
	case tea.KeyCtrlT:
		return session.Command{Type: session.CommandItalicize}, true

	// Ctrl+K asks for the link target before the command can run.
	case tea.KeyCtrlK:
		return session.Command{Type: session.CommandAddLink}, true

	case tea.KeyBackspace:
		return session.Command{Type: session.CommandBackspace}, true
	case tea.KeyDelete:
		return session.Command{Type: session.CommandDel}, true

	case tea.KeySpace:
		return session.Text(" "), true

	// The Tab key inserts 4 spaces to simulate a "tab".
	case tea.KeyTab:
		return session.Text(strings.Repeat(" ", 4)), true

	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return session.Command{}, false
		}
		return session.Text(string(msg.Runes)), true
	}
	return session.Command{}, false
}
