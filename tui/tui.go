// Package tui is the terminal front end of the composer, built on Bubble Tea.
package tui

import (
	"fmt"

	"github.com/burntcarrot/composer/commons"
	"github.com/burntcarrot/composer/richtext"
	"github.com/burntcarrot/composer/session"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// DefaultFile is where documents are saved when no file was given.
const DefaultFile = "composer-content.json"

type (
	savedMsg struct {
		path string
		err  error
	}

	loadedMsg struct {
		path string
		doc  richtext.Doc
		err  error
	}
)

// Model is the Bubble Tea model of the composer.
type Model struct {
	session *session.Session
	file    string
	logger  logrus.FieldLogger

	// linkInput reads the target of a link.
	linkInput textinput.Model
	prompting bool

	// remote is set when editing through a server.
	remote *remote

	width    int
	status   string
	Quitting bool
}

// New returns a model editing s. file is used by Ctrl+S and Ctrl+L.
func New(s *session.Session, file string, logger logrus.FieldLogger) Model {
	ti := textinput.New()
	ti.Placeholder = "https://"
	ti.Prompt = "Link: "
	ti.CharLimit = 2048

	return Model{
		session:   s,
		file:      file,
		logger:    logger,
		linkInput: ti,
	}
}

// NewProgram returns a program running m on the alternate screen.
func NewProgram(m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Run starts the program and blocks until it quits.
func Run(m Model) error {
	return NewProgram(m).Start()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.linkInput.Width = msg.Width - len(m.linkInput.Prompt) - 1
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.logger.Errorf("failed to save to %s: %v", msg.path, msg.err)
			m.status = "Failed to save to " + msg.path
			return m, nil
		}
		m.status = "Saved document to " + msg.path
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.logger.Errorf("failed to load file %s: %v", msg.path, msg.err)
			m.status = "Failed to load " + msg.path
			return m, nil
		}
		m.session.Replace(msg.doc)
		m.status = "Loaded " + msg.path
		return m, nil

	case RemoteMsg:
		return m.updateRemote(commons.Message(msg))

	case ConnClosedMsg:
		if m.remote != nil {
			m.logger.Errorf("server connection closed: %v", msg.Err)
			m.status = "Server closed, editing locally"
			m.remote = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateEditor(msg)
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.Quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompting = false
		m.linkInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.prompting = false
		m.linkInput.Blur()
		if url := m.linkInput.Value(); url != "" {
			m.run(session.Link(url))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.linkInput, cmd = m.linkInput.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	s := m.session

	switch msg.Type {
	// The default keys for exiting a session are Esc and Ctrl+C.
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Quitting = true
		return m, tea.Quit

	// The default key for saving the document is Ctrl+S.
	case tea.KeyCtrlS:
		return m, m.save()

	// The default key for loading the document from a file is Ctrl+L.
	case tea.KeyCtrlL:
		if m.file == "" {
			m.status = "No file to load!"
			return m, nil
		}
		// The server has no message replacing its document.
		if m.remote != nil {
			m.status = "Loading is disabled while connected to a server"
			return m, nil
		}
		return m, m.load()

	case tea.KeyLeft:
		s.Move(-1, false)
		m.sendSelection()
	case tea.KeyRight:
		s.Move(1, false)
		m.sendSelection()
	case tea.KeyUp:
		s.MoveLine(-1, false)
		m.sendSelection()
	case tea.KeyDown:
		s.MoveLine(1, false)
		m.sendSelection()
	case tea.KeyShiftLeft:
		s.Move(-1, true)
		m.sendSelection()
	case tea.KeyShiftRight:
		s.Move(1, true)
		m.sendSelection()
	case tea.KeyShiftUp:
		s.MoveLine(-1, true)
		m.sendSelection()
	case tea.KeyShiftDown:
		s.MoveLine(1, true)
		m.sendSelection()
	case tea.KeyHome:
		s.Home(false)
		m.sendSelection()
	case tea.KeyEnd:
		s.End(false)
		m.sendSelection()

	default:
		c, ok := CommandFromKey(msg)
		if !ok {
			return m, nil
		}
		if c.Type == session.CommandAddLink && c.URL == "" {
			if sel := s.Editor().Selection; sel == nil || sel.IsCollapsed() {
				m.status = "Select some text to link"
				return m, nil
			}
			m.prompting = true
			m.linkInput.Reset()
			m.linkInput.Focus()
			return m, textinput.Blink
		}
		m.run(c)
	}
	return m, nil
}

func (m *Model) run(c session.Command) {
	e, err := m.session.Perform(c)
	if err != nil {
		m.logger.Errorf("command %s failed: %v", c.Type, err)
		m.status = err.Error()
		return
	}
	m.sendEdit(e)
}

func (m Model) save() tea.Cmd {
	path := m.file
	if path == "" {
		path = DefaultFile
	}
	doc := m.session.Doc()
	return func() tea.Msg {
		return savedMsg{path: path, err: richtext.Save(path, doc)}
	}
}

func (m Model) load() tea.Cmd {
	path := m.file
	return func() tea.Msg {
		doc, err := richtext.Load(path)
		return loadedMsg{path: path, doc: doc, err: err}
	}
}

func (m Model) View() string {
	if m.Quitting {
		return "\n  See you later!\n\n"
	}

	ed := m.session.Editor()
	doc := m.session.Doc()

	footer := statusStyle.Render(StatusLine(m.file, ed.Selection, ed.StylesAt(doc), m.width))
	if m.status != "" {
		footer = m.status
	}
	if m.prompting {
		footer = m.linkInput.View()
	}

	return fmt.Sprintf("%s\n\n%s\n%s", Render(doc, ed.Selection, m.width), footer,
		statusStyle.Render("(ctrl+b bold, ctrl+t italic, ctrl+k link, ctrl+s save, ctrl+l load, esc to quit)"))
}
