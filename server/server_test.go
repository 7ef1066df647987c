package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/burntcarrot/composer/commons"
	"github.com/burntcarrot/composer/richtext"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
)

// dial starts a server and connects a client to it, reading the join and
// initial docSync messages.
func dial(t *testing.T) (*websocket.Conn, commons.Message) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	s := newServer(logger, false)
	s.keys = richtext.SequentialKeys("k")

	ts := httptest.NewServer(http.HandlerFunc(s.handleConn))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	join := read(t, conn)
	if join.Type != commons.JoinMessage {
		t.Fatalf("got = %v, expected = %v\n", join.Type, commons.JoinMessage)
	}
	if sync := read(t, conn); sync.Type != commons.DocSyncMessage || sync.Document == nil {
		t.Fatalf("expected an initial docSync, got %+v", sync)
	}
	return conn, join
}

func read(t *testing.T, conn *websocket.Conn) commons.Message {
	t.Helper()
	var msg commons.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg commons.Message) commons.Message {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	return read(t, conn)
}

func at(index, offset int) *richtext.Selection {
	s := richtext.Collapsed(richtext.Position{Index: index, Offset: offset})
	return &s
}

func TestEdits(t *testing.T) {
	conn, join := dial(t)

	got := send(t, conn, commons.Message{Type: commons.EditMessage, Edit: &commons.EditIntent{Type: richtext.KindReplaceText, Text: "hello"}})
	if got.Type != commons.DocSyncMessage || got.ID != join.ID {
		t.Fatalf("unexpected reply %+v", got)
	}
	if text := got.Document.Text(); text != "hello" {
		t.Errorf("got != want; got = %q, expected = %q\n", text, "hello")
	}
	if !cmp.Equal(got.Selection, at(0, 5)) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got.Selection, at(0, 5)))
	}

	got = send(t, conn, commons.Message{Type: commons.EditMessage, Edit: &commons.EditIntent{Type: richtext.KindReplaceTextWithParagraphBreak, Selection: at(0, 2)}})
	if text := got.Document.Text(); text != "he\nllo" {
		t.Errorf("got != want; got = %q, expected = %q\n", text, "he\nllo")
	}
	if !cmp.Equal(got.Selection, at(1, 0)) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got.Selection, at(1, 0)))
	}

	sel := richtext.NewSelection(richtext.Position{Index: 0, Offset: 0}, richtext.Position{Index: 0, Offset: 2})
	got = send(t, conn, commons.Message{Type: commons.EditMessage, Edit: &commons.EditIntent{Type: richtext.KindToggleBold, Selection: &sel}})
	p, _ := got.Document.Nth(0)
	if s, _ := p.StylesAt(0); !s.Bold {
		t.Errorf("expected the first paragraph to be bold")
	}
}

func TestSelectAndDocReq(t *testing.T) {
	conn, _ := dial(t)
	send(t, conn, commons.Message{Type: commons.EditMessage, Edit: &commons.EditIntent{Type: richtext.KindReplaceText, Text: "abc"}})

	got := send(t, conn, commons.Message{Type: commons.SelectMessage, Selection: at(0, 1)})
	if !cmp.Equal(got.Selection, at(0, 1)) {
		t.Errorf("got != want; diff = %v\n", cmp.Diff(got.Selection, at(0, 1)))
	}

	got = send(t, conn, commons.Message{Type: commons.DocReqMessage})
	if got.Type != commons.DocSyncMessage || got.Document.Text() != "abc" {
		t.Errorf("unexpected reply %+v", got)
	}
}

func TestInvalidMessages(t *testing.T) {
	conn, _ := dial(t)

	tests := []struct {
		description string
		msg         commons.Message
	}{
		{description: "unknown message type", msg: commons.Message{Type: "shout"}},
		{description: "edit without intent", msg: commons.Message{Type: commons.EditMessage}},
		{description: "unknown edit type", msg: commons.Message{Type: commons.EditMessage, Edit: &commons.EditIntent{Type: "shout"}}},
		{description: "missing selection", msg: commons.Message{Type: commons.EditMessage, Edit: &commons.EditIntent{Type: richtext.KindBackspace}}},
	}

	for _, tc := range tests {
		got := send(t, conn, tc.msg)
		if got.Type != commons.ErrorMessage || got.Text == "" {
			t.Errorf("(%s) expected an error message, got %+v", tc.description, got)
		}
	}

	// The session survives rejected messages.
	got := send(t, conn, commons.Message{Type: commons.DocReqMessage})
	if got.Type != commons.DocSyncMessage {
		t.Errorf("got = %v, expected = %v\n", got.Type, commons.DocSyncMessage)
	}
}
