// Package document provides the editable schematic document model:
// items with z-order, pins, wires, undo state capture, and persistence.
package document

import "github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"

// ItemID is a stable key into the document's item registry.
// IDs are assigned by the document and never reused within a session,
// so commands and caches can hold them across mutations.
type ItemID int64

// Kind identifies the concrete type of an item
type Kind int

const (
	KindNone Kind = iota
	KindLine
	KindRect
	KindCircle
	KindArc
	KindPolyline
	KindText
	KindComponent
	KindWire
)

// String returns the kind name as used in the .otsch file format
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindPolyline:
		return "polyline"
	case KindText:
		return "text"
	case KindComponent:
		return "component"
	case KindWire:
		return "wire"
	}
	return "none"
}

// Item is anything selectable and drawable: a primitive shape,
// a placed component instance, or a wire.
type Item interface {
	// Base returns the shared id/flag storage
	Base() *BaseItem

	// Kind identifies the concrete item type
	Kind() Kind

	// Bounds returns the item's world-space bounding box
	Bounds() geometry.BoundingBox

	// ContainsPoint reports whether the item matches a hit test at p.
	// Filled items match anywhere inside their bounds; stroke-only items
	// match only within tol of their outline.
	ContainsPoint(p geometry.Point, tol float64) bool

	// Translate moves the item by a world-space delta
	Translate(dx, dy float64)

	// CaptureState snapshots the item's geometry for undo
	CaptureState() State

	// ApplyState restores a snapshot previously taken with CaptureState.
	// Snapshots of a different kind are ignored.
	ApplyState(State)
}

// State is a tagged geometry snapshot of one item kind.
// Each item kind exports a fixed-schema state struct; there is no
// reflection-based capture.
type State interface {
	StateKind() Kind
}

// BaseItem holds the id and flags shared by all item kinds
type BaseItem struct {
	id ItemID

	Selected bool // part of the current selection set
	Hovered  bool // under the cursor
	Locked   bool // excluded from move/modify commands
	Hidden   bool // skipped by rendering and hit tests
	Dirty    bool // needs redraw
}

// ID returns the item's registry key (0 until registered)
func (b *BaseItem) ID() ItemID { return b.id }

// Visible reports whether the item participates in rendering and hit tests
func (b *BaseItem) Visible() bool { return !b.Hidden }

// MarkDirty flags the item for redraw
func (b *BaseItem) MarkDirty() { b.Dirty = true }
