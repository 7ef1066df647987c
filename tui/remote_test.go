package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/burntcarrot/composer/commons"
	"github.com/burntcarrot/composer/richtext"
	"github.com/burntcarrot/composer/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
)

// serve starts a composer server holding one session per connection, and
// returns a client connection to it.
func serve(t *testing.T) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		logger, _ := test.NewNullLogger()
		s := session.New(session.WithKeys(richtext.SequentialKeys("s")), session.WithLogger(logger))
		id := uuid.New()

		sync := func() error {
			doc := s.Doc()
			return conn.WriteJSON(commons.Message{Type: commons.DocSyncMessage, ID: id, Document: &doc, Selection: s.Editor().Selection})
		}

		if err := conn.WriteJSON(commons.Message{Type: commons.JoinMessage, ID: id}); err != nil {
			return
		}
		if err := sync(); err != nil {
			return
		}

		for {
			var msg commons.Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}

			switch msg.Type {
			case commons.EditMessage:
				e, err := msg.Edit.ToEdit()
				if err != nil {
					if err := conn.WriteJSON(commons.Message{Type: commons.ErrorMessage, ID: id, Text: err.Error()}); err != nil {
						return
					}
					continue
				}
				s.Apply(e)
			case commons.SelectMessage:
				s.Select(msg.Selection)
			}

			if err := sync(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// receive reads n messages from the server and feeds them to m.
func receive(t *testing.T, conn *websocket.Conn, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		var msg commons.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		next, _ := m.Update(RemoteMsg(msg))
		m = next.(Model)
	}
	return m
}

func TestRemoteEditing(t *testing.T) {
	conn := serve(t)
	m := receive(t, conn, newModel("").WithConn(conn), 2)

	if m.remote == nil || m.remote.id == uuid.Nil || m.remote.inflight != 0 {
		t.Fatalf("expected to have joined the server, got %+v", m.remote)
	}
	if key, _ := m.session.Doc().KeyAtIndex(0); key != "s1" {
		t.Errorf("got = %q, expected the server's paragraph %q\n", key, "s1")
	}

	m = receive(t, conn, press(m, runes("hi")), 1)
	if got := m.session.Doc().Text(); got != "hi" {
		t.Errorf("got = %q, expected = %q\n", got, "hi")
	}

	// Answers to all but the last edit are stale.
	m = press(m, runes("a"), runes("b"))
	if m.remote.inflight != 2 {
		t.Fatalf("got = %d messages in flight, expected = 2\n", m.remote.inflight)
	}
	m = receive(t, conn, m, 1)
	if got := m.session.Doc().Text(); got != "hiab" {
		t.Errorf("got = %q, expected = %q\n", got, "hiab")
	}
	m = receive(t, conn, m, 1)
	if got := m.session.Doc().Text(); got != "hiab" || m.remote.inflight != 0 {
		t.Errorf("got = %q with %d in flight, expected = %q with none\n", got, m.remote.inflight, "hiab")
	}

	// A collapsed toggle survives the server's answer.
	m = receive(t, conn, press(m, tea.KeyMsg{Type: tea.KeyCtrlB}), 1)
	m = receive(t, conn, press(m, runes("c")), 1)
	p, _ := m.session.Doc().Nth(0)
	if s, _ := p.StylesAt(4); !s.Bold {
		t.Errorf("expected the server to make %q bold", "c")
	}
	if s, _ := p.StylesAt(3); s.Bold {
		t.Errorf("expected %q to stay plain", "b")
	}

	m = receive(t, conn, press(m, tea.KeyMsg{Type: tea.KeyLeft}), 1)
	if !cmp.Equal(m.session.Editor().Selection, caret(0, 4)) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(m.session.Editor().Selection, caret(0, 4)))
	}

	next, _ := m.Update(ConnClosedMsg{Err: errors.New("closed")})
	m = press(next.(Model), runes("z"))
	if m.remote != nil {
		t.Fatalf("expected the connection to be dropped")
	}
	if got := m.session.Doc().Text(); got != "hiabzc" {
		t.Errorf("got = %q, expected = %q\n", got, "hiabzc")
	}
}

// recorder is a Conn keeping what was written to it.
type recorder struct {
	sent []commons.Message
	err  error
}

func (r *recorder) WriteJSON(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, v.(commons.Message))
	return nil
}

func TestRemoteErrors(t *testing.T) {
	tests := []struct {
		description string
		inflight    int
		expected    []commons.MessageType
	}{
		{description: "last answer requests the document", inflight: 1, expected: []commons.MessageType{commons.DocReqMessage}},
		{description: "earlier answers are ignored", inflight: 2, expected: nil},
	}

	for _, tc := range tests {
		r := &recorder{}
		m := newModel("").WithConn(r)
		m.remote.inflight = tc.inflight

		next, _ := m.Update(RemoteMsg{Type: commons.ErrorMessage, Text: "edit requires a selection"})
		m = next.(Model)

		var got []commons.MessageType
		for _, msg := range r.sent {
			got = append(got, msg.Type)
		}
		if !cmp.Equal(got, tc.expected) {
			t.Errorf("(%s) got != want; diff = %v\n", tc.description, cmp.Diff(got, tc.expected))
		}
		if !strings.Contains(m.status, "edit requires a selection") {
			t.Errorf("(%s) got status = %q\n", tc.description, m.status)
		}
	}
}

func TestRemoteWriteFailure(t *testing.T) {
	r := &recorder{err: errors.New("broken pipe")}
	m := press(newModel("").WithConn(r), runes("x"))

	if m.remote != nil {
		t.Errorf("expected a failed write to drop the connection")
	}
	if got := m.session.Doc().Text(); got != "x" {
		t.Errorf("got = %q, expected = %q\n", got, "x")
	}
}

func TestLoadWhileConnected(t *testing.T) {
	m := press(newModel("doc.json").WithConn(&recorder{}), tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.status != "Loading is disabled while connected to a server" {
		t.Errorf("got = %q", m.status)
	}
}
