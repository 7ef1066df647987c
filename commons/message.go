package commons

import (
	"github.com/burntcarrot/composer/richtext"
	"github.com/google/uuid"
)

// Message represents the message sent over the wire.
type Message struct {
	// Type represents the message type.
	Type MessageType `json:"type"`

	// ID represents the client's UUID, assigned by the server on join.
	ID uuid.UUID `json:"ID"`

	// Text represents the body of the message. This is currently used for errors.
	Text string `json:"text,omitempty"`

	// Edit represents the edit intent of an edit message.
	Edit *EditIntent `json:"edit,omitempty"`

	// Selection represents the caret. It is written back by the client in select messages,
	// and reported by the server alongside the document in docSync messages.
	Selection *richtext.Selection `json:"selection,omitempty"`

	// Document represents the session's document, in its interchange shape.
	Document *richtext.Doc `json:"document,omitempty"`
}

// MessageType represents the type of the message.
type MessageType string

// Clients send edit, select and docReq messages. The server answers with
// join (once, on connect), docSync and error messages.
const (
	EditMessage    MessageType = "edit"
	SelectMessage  MessageType = "select"
	DocReqMessage  MessageType = "docReq"
	DocSyncMessage MessageType = "docSync"
	JoinMessage    MessageType = "join"
	ErrorMessage   MessageType = "error"
)
