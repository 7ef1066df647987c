package tui

import (
	"github.com/burntcarrot/composer/commons"
	"github.com/burntcarrot/composer/richtext"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Conn is the write side of a connection to a composer server.
type Conn interface {
	WriteJSON(v interface{}) error
}

type (
	// RemoteMsg is a message read from the server.
	RemoteMsg commons.Message

	// ConnClosedMsg reports that the server connection is gone.
	ConnClosedMsg struct {
		Err error
	}
)

// remote is the server side of a model. The server applies the same edits
// as the local session and answers every message with its document, or with
// an error.
type remote struct {
	conn Conn
	id   uuid.UUID

	// inflight counts the messages the server has yet to answer. Answers to
	// all but the last one are stale, since the local session is ahead of
	// them.
	inflight int
}

// answered records an answer and reports whether it was the last one
// outstanding.
func (r *remote) answered() bool {
	if r.inflight > 0 {
		r.inflight--
	}
	return r.inflight == 0
}

// WithConn returns m editing through a server. Every edit and caret move is
// sent over conn, and the server's documents are adopted as RemoteMsgs
// arrive. The server greets a connection with its own document, which
// replaces the local one.
func (m Model) WithConn(conn Conn) Model {
	m.remote = &remote{conn: conn, inflight: 1}
	return m
}

func (m Model) updateRemote(msg commons.Message) (tea.Model, tea.Cmd) {
	if m.remote == nil {
		return m, nil
	}

	switch msg.Type {
	case commons.JoinMessage:
		m.remote.id = msg.ID
		m.logger.Infof("joined server as %s", msg.ID)

	case commons.DocSyncMessage:
		if m.remote.answered() && msg.Document != nil {
			m.session.Sync(*msg.Document, msg.Selection)
		}

	case commons.ErrorMessage:
		m.logger.Warnf("server rejected a message: %s", msg.Text)
		m.status = "Server error: " + msg.Text
		if m.remote.answered() {
			m.send(commons.Message{Type: commons.DocReqMessage})
		}

	default:
		m.logger.Warnf("unexpected message from server: %s", msg.Type)
	}
	return m, nil
}

// send writes msg to the server. A failed write drops the connection, and
// editing goes on locally.
func (m *Model) send(msg commons.Message) {
	if m.remote == nil {
		return
	}
	msg.ID = m.remote.id
	if err := m.remote.conn.WriteJSON(msg); err != nil {
		m.logger.Errorf("failed to send %s message: %v", msg.Type, err)
		m.status = "Connection lost, editing locally"
		m.remote = nil
		return
	}
	m.remote.inflight++
}

func (m *Model) sendEdit(e richtext.Edit) {
	if m.remote == nil {
		return
	}
	intent, err := commons.IntentFromEdit(e)
	if err != nil {
		m.logger.Errorf("failed to encode edit: %v", err)
		return
	}
	m.send(commons.Message{Type: commons.EditMessage, Edit: &intent})
}

func (m *Model) sendSelection() {
	if m.remote == nil {
		return
	}
	m.send(commons.Message{Type: commons.SelectMessage, Selection: m.session.Editor().Selection})
}
