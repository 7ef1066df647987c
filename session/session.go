// Package session owns a document and its caret, applying one edit at a
// time.
package session

import (
	"errors"
	"sync"

	"github.com/burntcarrot/composer/editor"
	"github.com/burntcarrot/composer/richtext"
	"github.com/sirupsen/logrus"
)

var ErrUnknownCommand = errors.New("unknown command")

// Session is a document together with the editor editing it. It is safe for
// concurrent use; edits are applied in the order their calls acquire the
// session.
type Session struct {
	mu     sync.Mutex
	doc    richtext.Doc
	editor editor.Editor
	keys   richtext.KeyGen
	logger logrus.FieldLogger
}

// Option configures a Session.
type Option func(*Session)

// WithKeys sets the key generator passed to every edit.
func WithKeys(keys richtext.KeyGen) Option {
	return func(s *Session) {
		s.keys = keys
	}
}

// WithLogger sets the logger edits report to.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithDoc starts the session on doc instead of an empty document.
func WithDoc(doc richtext.Doc) Option {
	return func(s *Session) {
		s.doc = doc
	}
}

// New returns a session on an empty document: a single paragraph with no
// characters and no caret.
func New(opts ...Option) *Session {
	s := &Session{
		keys:   richtext.UUIDKeys,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.doc.Count() == 0 {
		s.doc = richtext.CanonicalEmptyDoc(s.keys)
	}
	return s
}

// Doc returns the current document.
func (s *Session) Doc() richtext.Doc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Editor returns the current caret state.
func (s *Session) Editor() editor.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

// Apply applies e to the current document and moves the caret accordingly.
// e's selection must have been computed against the current document.
func (s *Session) Apply(e richtext.Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(e)
}

func (s *Session) apply(e richtext.Edit) {
	if e == nil {
		return
	}
	prev := s.doc
	s.doc = prev.ApplyEdit(e, richtext.WithKeys(s.keys), richtext.WithLogger(s.logger))
	s.editor = editor.ApplyEdit(e, prev, s.doc, s.editor)

	s.logger.WithFields(logrus.Fields{
		"edit":       e.Kind(),
		"characters": s.doc.CharacterCount(),
		"paragraphs": s.doc.Count(),
	}).Debug("applied edit")
}

// Run performs c at the caret.
func (s *Session) Run(c Command) error {
	_, err := s.Perform(c)
	return err
}

// Perform performs c at the caret and returns the edit it applied, built
// against the document as it was before.
func (s *Session) Perform(c Command) (richtext.Edit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.editFor(c)
	if err != nil {
		return nil, err
	}
	s.apply(e)
	return e, nil
}

// Select moves the caret. A selection that is not in the document clears
// the caret.
func (s *Session) Select(sel *richtext.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel != nil && (!s.doc.ContainsPosition(sel.Anchor) || !s.doc.ContainsPosition(sel.Focus)) {
		s.logger.WithField("selection", *sel).Warn("selection is not in the document, clearing caret")
		sel = nil
	}
	s.editor = s.editor.Select(sel)
}

// Move moves the caret by delta characters, extending the selection if
// extend is set.
func (s *Session) Move(delta int, extend bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = s.editor.Move(s.doc, delta, extend)
}

// MoveLine moves the caret by lines paragraphs.
func (s *Session) MoveLine(lines int, extend bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = s.editor.MoveLine(s.doc, lines, extend)
}

// Home moves the caret to the start of its paragraph.
func (s *Session) Home(extend bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = s.editor.Home(s.doc, extend)
}

// End moves the caret to the end of its paragraph.
func (s *Session) End(extend bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = s.editor.End(s.doc, extend)
}

// Styles returns the styles text typed at the caret would get.
func (s *Session) Styles() richtext.StyleSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.StylesAt(s.doc)
}

// Replace swaps in doc, e.g. after loading it from a file. The caret moves
// to the end of the new document.
func (s *Session) Replace(doc richtext.Doc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Count() == 0 {
		doc = richtext.CanonicalEmptyDoc(s.keys)
	}
	s.doc = doc
	s.editor = editor.New(nil)
	if end, ok := doc.EndPosition(); ok && doc.CharacterCount() > 0 {
		sel := richtext.Collapsed(end)
		s.editor = editor.New(&sel)
	}
}

// Sync adopts a document and caret computed elsewhere, e.g. by a server
// applying the same edits. Pending styles survive when the caret is where it
// was.
func (s *Session) Sync(doc richtext.Doc, sel *richtext.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Count() == 0 {
		doc = richtext.CanonicalEmptyDoc(s.keys)
	}
	if sel != nil && (!doc.ContainsPosition(sel.Anchor) || !doc.ContainsPosition(sel.Focus)) {
		s.logger.WithField("selection", *sel).Warn("synced selection is not in the document, clearing caret")
		sel = nil
	}

	pending := s.editor.Pending
	same := sel == nil && s.editor.Selection == nil ||
		sel != nil && s.editor.Selection != nil && *sel == *s.editor.Selection

	s.doc = doc
	s.editor = editor.New(sel)
	if same {
		s.editor.Pending = pending
	}
}
