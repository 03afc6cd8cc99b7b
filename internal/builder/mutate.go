// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"fmt"
	"slices"
)

// Structural edits. Every operation is total: an id that does not resolve
// leaves the document untouched and the method reports false.

// AddSection appends a section of the given layout, pre-filled with one
// placeholder text column per expected column, and returns it. Unknown
// layouts become single-column.
func (d *Document) AddSection(layout Layout) Section {
	if !layout.Valid() {
		layout = LayoutSingle
	}
	n := layout.ColumnCount()
	s := Section{ID: NewSectionID(), Layout: layout, Columns: make([]Column, 0, n)}
	if n == 1 {
		s.Columns = append(s.Columns, NewTextColumn("New Text..."))
	} else {
		for i := 1; i <= n; i++ {
			s.Columns = append(s.Columns, NewTextColumn(fmt.Sprintf("Text %d...", i)))
		}
	}
	d.Sections = append(d.Sections, s)
	return s.clone()
}

// RemoveSection deletes the section with the given id.
func (d *Document) RemoveSection(sectionID string) bool {
	i := slices.IndexFunc(d.Sections, func(s Section) bool { return s.ID == sectionID })
	if i < 0 {
		return false
	}
	d.Sections = slices.Delete(d.Sections, i, i+1)
	return true
}

// AddColumn appends a placeholder text column to the section.
func (d *Document) AddColumn(sectionID string) (Column, bool) {
	s := d.section(sectionID)
	if s == nil {
		return Column{}, false
	}
	c := NewTextColumn("New Text...")
	s.Columns = append(s.Columns, c)
	return c.clone(), true
}

// RemoveColumn deletes a column from a section. A section may reach zero
// columns here; such sections are dropped when the document is serialized.
func (d *Document) RemoveColumn(sectionID, columnID string) bool {
	s := d.section(sectionID)
	if s == nil {
		return false
	}
	i := slices.IndexFunc(s.Columns, func(c Column) bool { return c.ID == columnID })
	if i < 0 {
		return false
	}
	s.Columns = slices.Delete(s.Columns, i, i+1)
	return true
}

// ChangeColumnType converts a column to another variant. The conversion
// does not remember the previous variant's data: switching to image drops
// the text content, switching to text drops src and alt.
func (d *Document) ChangeColumnType(sectionID, columnID string, t ColumnType) bool {
	c := d.column(sectionID, columnID)
	if c == nil || !t.Valid() {
		return false
	}
	switch t {
	case ColumnImage:
		c.Type = ColumnImage
		c.Content = ""
		c.Src = ""
		c.Alt = PlaceholderCaption
		c.Style = ImageStyle()
	case ColumnText:
		if c.Type != ColumnText {
			c.Style = TextStyle()
		}
		c.Type = ColumnText
		c.Src = ""
		c.Alt = ""
	}
	return true
}

// SetColumnContent replaces the text payload of a column.
func (d *Document) SetColumnContent(sectionID, columnID, content string) bool {
	c := d.column(sectionID, columnID)
	if c == nil {
		return false
	}
	c.Content = content
	return true
}

// SetColumnImage sets the picture of a column, as returned by the media
// picker. An empty alt falls back to the placeholder caption.
func (d *Document) SetColumnImage(sectionID, columnID, src, alt string) bool {
	c := d.column(sectionID, columnID)
	if c == nil {
		return false
	}
	if alt == "" {
		alt = PlaceholderCaption
	}
	c.Src = src
	c.Alt = alt
	return true
}

// SetColumnAlt replaces the caption of an image column.
func (d *Document) SetColumnAlt(sectionID, columnID, alt string) bool {
	c := d.column(sectionID, columnID)
	if c == nil {
		return false
	}
	c.Alt = alt
	return true
}

// SetColumnStyle sets one CSS property on a column. An empty value removes it.
func (d *Document) SetColumnStyle(sectionID, columnID, property, value string) bool {
	c := d.column(sectionID, columnID)
	if c == nil || property == "" {
		return false
	}
	if value == "" {
		delete(c.Style, property)
		return true
	}
	if c.Style == nil {
		c.Style = make(map[string]string)
	}
	c.Style[property] = value
	return true
}
