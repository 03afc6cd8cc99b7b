// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package builder implements the blog builder's document model: an ordered
// list of sections, each holding an ordered list of text or image columns.
// It provides the structural edit operations, drag-and-drop reordering, and
// the transforms between a document and the HTML fragment stored in the
// article body.
package builder

import (
	"encoding/json"
	"maps"

	"github.com/google/uuid"
)

// Layout is the column-count classification of a section.
type Layout string

const (
	LayoutSingle Layout = "single-column"
	LayoutTwo    Layout = "two-column"
	LayoutThree  Layout = "three-column"
)

// Valid reports whether l is one of the known layouts.
func (l Layout) Valid() bool {
	switch l {
	case LayoutSingle, LayoutTwo, LayoutThree:
		return true
	}
	return false
}

// ColumnCount returns the number of columns a new section of this layout
// starts with. Unknown layouts count as one.
func (l Layout) ColumnCount() int {
	switch l {
	case LayoutTwo:
		return 2
	case LayoutThree:
		return 3
	default:
		return 1
	}
}

// ColumnType is the variant of a column.
type ColumnType string

const (
	ColumnText  ColumnType = "text"
	ColumnImage ColumnType = "image"
)

// Valid reports whether t is a known column variant.
func (t ColumnType) Valid() bool {
	return t == ColumnText || t == ColumnImage
}

// PlaceholderCaption is the alt text given to image columns that have none.
const PlaceholderCaption = "Caption"

// Column is the smallest editable unit of a document. Content is only
// meaningful for text columns; Src and Alt only for image columns.
type Column struct {
	ID      string            `json:"id"`
	Type    ColumnType        `json:"type"`
	Content string            `json:"content,omitempty"`
	Src     string            `json:"src,omitempty"`
	Alt     string            `json:"alt,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
}

// Section is a horizontal block of one to three side-by-side columns.
// The layout is stored under "type" to match the structured copy kept in
// the article metafield.
type Section struct {
	ID      string   `json:"id"`
	Layout  Layout   `json:"type"`
	Columns []Column `json:"columns"`
}

// Document is the ordered section tree edited by the builder. It is owned
// by a single editing session and is not safe for concurrent mutation.
type Document struct {
	Sections []Section
}

// MarshalJSON encodes the document as a bare array of sections.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.Sections == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Sections)
}

// UnmarshalJSON decodes a bare array of sections. A JSON null yields an
// empty document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}
	d.Sections = sections
	return nil
}

// NewSectionID returns a fresh section identifier.
func NewSectionID() string {
	return "section-" + uuid.NewString()
}

// NewColumnID returns a fresh column identifier.
func NewColumnID() string {
	return "col-" + uuid.NewString()
}

// TextStyle returns the default style map of a text column.
func TextStyle() map[string]string {
	return map[string]string{"font-size": "16px", "color": "#333"}
}

// ImageStyle returns the default style map of an image column.
func ImageStyle() map[string]string {
	return map[string]string{"width": "100%", "height": "auto"}
}

// NewTextColumn returns a text column with placeholder content.
func NewTextColumn(content string) Column {
	return Column{
		ID:      NewColumnID(),
		Type:    ColumnText,
		Content: content,
		Style:   TextStyle(),
	}
}

// NewImageColumn returns an image column waiting for a picture.
func NewImageColumn() Column {
	return Column{
		ID:    NewColumnID(),
		Type:  ColumnImage,
		Alt:   PlaceholderCaption,
		Style: ImageStyle(),
	}
}

// NewDocument returns the document a brand-new article starts with: one
// two-column section holding a text column and an empty image column.
func NewDocument() Document {
	return Document{Sections: []Section{{
		ID:     NewSectionID(),
		Layout: LayoutTwo,
		Columns: []Column{
			NewTextColumn("Content..."),
			NewImageColumn(),
		},
	}}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d.Sections == nil {
		return Document{}
	}
	out := Document{Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		out.Sections[i] = s.clone()
	}
	return out
}

func (s Section) clone() Section {
	c := s
	if s.Columns != nil {
		c.Columns = make([]Column, len(s.Columns))
		for i, col := range s.Columns {
			c.Columns[i] = col.clone()
		}
	}
	return c
}

func (c Column) clone() Column {
	out := c
	out.Style = maps.Clone(c.Style)
	return out
}

// Stats summarises a document for logging.
type Stats struct {
	Sections int
	Columns  int
	Images   int
}

// Stats counts the sections, columns and image columns in the document.
func (d Document) Stats() Stats {
	var st Stats
	st.Sections = len(d.Sections)
	for _, s := range d.Sections {
		st.Columns += len(s.Columns)
		for _, c := range s.Columns {
			if c.Type == ColumnImage {
				st.Images++
			}
		}
	}
	return st
}

// section returns a pointer to the section with the given id, or nil.
func (d *Document) section(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// column returns a pointer to the column addressed by (sectionID, columnID), or nil.
func (d *Document) column(sectionID, columnID string) *Column {
	s := d.section(sectionID)
	if s == nil {
		return nil
	}
	for i := range s.Columns {
		if s.Columns[i].ID == columnID {
			return &s.Columns[i]
		}
	}
	return nil
}
