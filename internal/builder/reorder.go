// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import "slices"

// Move returns items reordered so that the element identified by activeID
// occupies the index previously held by the element identified by overID.
// It is the single-item drag-and-drop move: remove, then reinsert.
//
// When the ids are equal, or either id is absent (a stale drag event),
// items is returned unchanged. Otherwise a new slice is returned and items
// is not modified.
func Move[T any](items []T, id func(T) string, activeID, overID string) []T {
	if activeID == overID {
		return items
	}
	from := slices.IndexFunc(items, func(v T) bool { return id(v) == activeID })
	to := slices.IndexFunc(items, func(v T) bool { return id(v) == overID })
	if from < 0 || to < 0 {
		return items
	}

	out := slices.Clone(items)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved)
}

func sectionKey(s Section) string { return s.ID }

func columnKey(c Column) string { return c.ID }

// MoveSection drags the active section onto the position of the over
// section. It reports whether the order changed.
func (d *Document) MoveSection(activeID, overID string) bool {
	next := Move(d.Sections, sectionKey, activeID, overID)
	if sameOrder(next, d.Sections, sectionKey) {
		return false
	}
	d.Sections = next
	return true
}

// MoveColumn reorders columns inside one section. Columns never move
// between sections.
func (d *Document) MoveColumn(sectionID, activeID, overID string) bool {
	s := d.section(sectionID)
	if s == nil {
		return false
	}
	next := Move(s.Columns, columnKey, activeID, overID)
	if sameOrder(next, s.Columns, columnKey) {
		return false
	}
	s.Columns = next
	return true
}

func sameOrder[T any](a, b []T, id func(T) string) bool {
	return slices.EqualFunc(a, b, func(x, y T) bool { return id(x) == id(y) })
}
