// Package knowledge accumulates category-tagged passages across documents.
package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one passage filed under a category
type Entry struct {
	SourceFile   string   `json:"source_file"`
	MatchedTerms []string `json:"matched_terms"`
	TextContent  string   `json:"text_content"`
}

// Base maps category names to their entries. Categories keep the order
// in which they were first filled, including through JSON round trips.
type Base struct {
	order   []string
	entries map[string][]Entry
}

// NewBase creates an empty knowledge base
func NewBase() *Base {
	return &Base{
		entries: make(map[string][]Entry),
	}
}

// Categories returns category names in first-seen order
func (b *Base) Categories() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Entries returns the entries of a category
func (b *Base) Entries(category string) []Entry {
	return b.entries[category]
}

// Texts returns the text of every entry in a category
func (b *Base) Texts(category string) []string {
	entries := b.entries[category]
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.TextContent
	}
	return texts
}

// Len returns the number of categories holding at least one entry
func (b *Base) Len() int {
	return len(b.order)
}

// Count returns the total number of entries
func (b *Base) Count() int {
	total := 0
	for _, entries := range b.entries {
		total += len(entries)
	}
	return total
}

// IsEmpty reports whether nothing was filed
func (b *Base) IsEmpty() bool {
	return len(b.order) == 0
}

func (b *Base) append(category string, entry Entry) {
	if _, ok := b.entries[category]; !ok {
		b.order = append(b.order, category)
	}
	b.entries[category] = append(b.entries[category], entry)
}

// MarshalJSON writes the categories as an object in first-seen order
func (b *Base) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range b.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(category)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(b.entries[category])
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", category, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a category object, keeping the key order of the document
func (b *Base) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("knowledge base must be a JSON object")
	}

	b.order = nil
	b.entries = make(map[string][]Entry)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		category, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}

		var entries []Entry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("decode %s: %w", category, err)
		}
		if _, seen := b.entries[category]; !seen {
			b.order = append(b.order, category)
		}
		b.entries[category] = append(b.entries[category], entries...)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
