package richtext

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes doc to path in its interchange form.
func Save(path string, doc Doc) error {
	if path == "" {
		return ErrEmptyPath
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { // skipcq: GSC-G306
		return fmt.Errorf("save document to %s: %w", path, err)
	}
	return nil
}

// Load reads a document written by Save.
func Load(path string) (Doc, error) {
	if path == "" {
		return EmptyDoc(), ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return EmptyDoc(), fmt.Errorf("load document from %s: %w", path, err)
	}

	var doc Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return EmptyDoc(), fmt.Errorf("decode document: %w", err)
	}
	if err := Validate(doc); err != nil {
		return EmptyDoc(), err
	}
	return doc, nil
}

// Validate checks that every paragraph and run listed in an order is
// present, and nothing else is.
func Validate(doc Doc) error {
	if len(doc.Order) != len(doc.All) {
		return fmt.Errorf("%w: %d paragraphs ordered, %d stored", ErrInvalidDocument, len(doc.Order), len(doc.All))
	}
	seen := make(map[ParagraphID]bool, len(doc.Order))
	for _, key := range doc.Order {
		if seen[key] {
			return fmt.Errorf("%w: paragraph %q is ordered twice", ErrInvalidDocument, key)
		}
		seen[key] = true

		p, ok := doc.All[key]
		if !ok {
			return fmt.Errorf("%w: paragraph %q is missing", ErrInvalidDocument, key)
		}
		if len(p.Order) != len(p.All) {
			return fmt.Errorf("%w: paragraph %q orders %d runs, stores %d", ErrInvalidDocument, key, len(p.Order), len(p.All))
		}
		ids := make(map[ContentID]bool, len(p.Order))
		for _, id := range p.Order {
			if ids[id] {
				return fmt.Errorf("%w: run %q of paragraph %q is ordered twice", ErrInvalidDocument, id, key)
			}
			ids[id] = true
			if _, ok := p.All[id]; !ok {
				return fmt.Errorf("%w: run %q of paragraph %q is missing", ErrInvalidDocument, id, key)
			}
		}
	}
	return nil
}
