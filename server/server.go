package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/burntcarrot/composer/commons"
	"github.com/burntcarrot/composer/richtext"
	"github.com/burntcarrot/composer/session"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// server hands every WebSocket connection a session of its own.
type server struct {
	// Upgrader instance to upgrade all HTTP connections to a WebSocket.
	upgrader websocket.Upgrader

	// Map to store currently active client connections.
	mu            sync.Mutex
	activeClients map[*websocket.Conn]uuid.UUID

	logger logrus.FieldLogger
	keys   richtext.KeyGen

	// trace prints every message to stdout.
	trace bool
}

func newServer(logger logrus.FieldLogger, trace bool) *server {
	return &server{
		activeClients: make(map[*websocket.Conn]uuid.UUID),
		logger:        logger,
		keys:          richtext.UUIDKeys,
		trace:         trace,
	}
}

// handleConn upgrades the connection, then applies the client's messages to its session in
// arrival order, answering each one.
func (s *server) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorf("error upgrading connection to websocket: %v", err)
		return
	}
	defer conn.Close()

	// Generate a UUID for the client.
	id := uuid.New()
	s.mu.Lock()
	s.activeClients[conn] = id
	clients := len(s.activeClients)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.activeClients, conn)
		s.mu.Unlock()
	}()

	logger := s.logger.WithField("client", id)
	logger.WithField("clients", clients).Info("client joined")

	sess := session.New(session.WithLogger(logger), session.WithKeys(s.keys))

	if err := s.send(conn, commons.Message{Type: commons.JoinMessage, ID: id}); err != nil {
		logger.Errorf("error sending join message: %v", err)
		return
	}
	if err := s.sync(conn, id, sess); err != nil {
		logger.Errorf("error sending document: %v", err)
		return
	}

	for {
		var msg commons.Message

		// Read message from the connection.
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("websocket error: %v", err)
			}
			logger.Info("closing connection")
			return
		}
		msg.ID = id
		s.traceMsg(msg)

		if err := s.handleMsg(conn, msg, sess); err != nil {
			logger.Errorf("error sending message to client: %v", err)
			return
		}
	}
}

// handleMsg applies msg to the session and answers it. Only write errors are returned;
// invalid messages are answered with an error message.
func (s *server) handleMsg(conn *websocket.Conn, msg commons.Message, sess *session.Session) error {
	switch msg.Type {
	case commons.EditMessage:
		if msg.Edit == nil {
			return s.fail(conn, msg.ID, fmt.Errorf("%w: no edit in message", commons.ErrUnknownEditType))
		}
		e, err := msg.Edit.ToEdit()
		if err != nil {
			return s.fail(conn, msg.ID, err)
		}
		sess.Apply(e)

	case commons.SelectMessage:
		sess.Select(msg.Selection)

	case commons.DocReqMessage:

	default:
		return s.fail(conn, msg.ID, fmt.Errorf("unknown message type %q", msg.Type))
	}
	return s.sync(conn, msg.ID, sess)
}

// sync sends the session's document and caret.
func (s *server) sync(conn *websocket.Conn, id uuid.UUID, sess *session.Session) error {
	doc := sess.Doc()
	return s.send(conn, commons.Message{
		Type:      commons.DocSyncMessage,
		ID:        id,
		Document:  &doc,
		Selection: sess.Editor().Selection,
	})
}

func (s *server) fail(conn *websocket.Conn, id uuid.UUID, err error) error {
	s.logger.WithField("client", id).Warnf("rejected message: %v", err)
	return s.send(conn, commons.Message{Type: commons.ErrorMessage, ID: id, Text: err.Error()})
}

func (s *server) send(conn *websocket.Conn, msg commons.Message) error {
	s.traceMsg(msg)
	return conn.WriteJSON(msg)
}

// traceMsg logs each message to stdout.
func (s *server) traceMsg(msg commons.Message) {
	if !s.trace {
		return
	}
	t := time.Now().Format(time.ANSIC)
	switch {
	case msg.Edit != nil:
		color.Green("%s >> %s %s %v\n", t, msg.ID, msg.Type, msg.Edit.Type)
	case msg.Type == commons.ErrorMessage:
		color.Red("%s << %s %s: %s\n", t, msg.ID, msg.Type, msg.Text)
	default:
		color.Green("%s -- %s %s\n", t, msg.ID, msg.Type)
	}
}
