// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"errors"
	"fmt"
)

// OpKind names an editing operation sent by the builder UI.
type OpKind string

const (
	OpAddSection       OpKind = "addSection"
	OpRemoveSection    OpKind = "removeSection"
	OpAddColumn        OpKind = "addColumn"
	OpRemoveColumn     OpKind = "removeColumn"
	OpChangeColumnType OpKind = "changeColumnType"
	OpSetContent       OpKind = "setContent"
	OpSetImage         OpKind = "setImage"
	OpSetAlt           OpKind = "setAlt"
	OpSetStyle         OpKind = "setStyle"
	OpMoveSection      OpKind = "moveSection"
	OpMoveColumn       OpKind = "moveColumn"
)

// Op is one user action against a document. Which fields are read depends
// on Kind.
type Op struct {
	Kind       OpKind     `json:"op"`
	Layout     Layout     `json:"layout,omitempty"`
	SectionID  string     `json:"sectionId,omitempty"`
	ColumnID   string     `json:"columnId,omitempty"`
	ColumnType ColumnType `json:"columnType,omitempty"`
	Content    string     `json:"content,omitempty"`
	Src        string     `json:"src,omitempty"`
	Alt        string     `json:"alt,omitempty"`
	Property   string     `json:"property,omitempty"`
	Value      string     `json:"value,omitempty"`
	ActiveID   string     `json:"activeId,omitempty"`
	OverID     string     `json:"overId,omitempty"`
}

var (
	// ErrUnknownOp is returned by Apply for an unrecognised Kind.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrNotFound is returned by Apply when the operation's target ids do
	// not resolve. The document is left untouched.
	ErrNotFound = errors.New("target not found")
)

// Apply performs op on the document. Moves whose ids denote no position
// change are not errors.
func (d *Document) Apply(op Op) error {
	var ok bool
	switch op.Kind {
	case OpAddSection:
		d.AddSection(op.Layout)
		return nil
	case OpRemoveSection:
		ok = d.RemoveSection(op.SectionID)
	case OpAddColumn:
		_, ok = d.AddColumn(op.SectionID)
	case OpRemoveColumn:
		ok = d.RemoveColumn(op.SectionID, op.ColumnID)
	case OpChangeColumnType:
		if !op.ColumnType.Valid() {
			return fmt.Errorf("change column type: invalid type %q", op.ColumnType)
		}
		ok = d.ChangeColumnType(op.SectionID, op.ColumnID, op.ColumnType)
	case OpSetContent:
		ok = d.SetColumnContent(op.SectionID, op.ColumnID, op.Content)
	case OpSetImage:
		ok = d.SetColumnImage(op.SectionID, op.ColumnID, op.Src, op.Alt)
	case OpSetAlt:
		ok = d.SetColumnAlt(op.SectionID, op.ColumnID, op.Alt)
	case OpSetStyle:
		ok = d.SetColumnStyle(op.SectionID, op.ColumnID, op.Property, op.Value)
	case OpMoveSection:
		d.MoveSection(op.ActiveID, op.OverID)
		ok = true
	case OpMoveColumn:
		if d.section(op.SectionID) == nil {
			return fmt.Errorf("%s %q: %w", op.Kind, op.SectionID, ErrNotFound)
		}
		d.MoveColumn(op.SectionID, op.ActiveID, op.OverID)
		ok = true
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op.Kind, ErrNotFound)
	}
	return nil
}
