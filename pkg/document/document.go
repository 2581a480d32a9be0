package document

import "github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"

// Default viewport/document settings
const (
	DefaultGridSize  = 1.27 // mm, half the standard 2.54 mm pin pitch
	DefaultWireWidth = 0.15 // mm
)

// Document owns the ordered item list. Array position is z-order:
// the last item draws on top and wins hit-test ties.
type Document struct {
	items  []Item
	byID   map[ItemID]Item
	nextID ItemID

	// Viewport settings persisted with the document
	GridSize    float64
	SnapEnabled bool
}

// New creates an empty document with default settings
func New() *Document {
	return &Document{
		byID:        make(map[ItemID]Item),
		nextID:      1,
		GridSize:    DefaultGridSize,
		SnapEnabled: true,
	}
}

// Len returns the number of registered items
func (d *Document) Len() int { return len(d.items) }

// Items returns the items in z-order (back to front).
// The returned slice is shared; callers must not mutate it.
func (d *Document) Items() []Item { return d.items }

// ItemByID looks up an item by its registry key
func (d *Document) ItemByID(id ItemID) Item { return d.byID[id] }

// AddItem registers an item at the top of the z-order and assigns its id.
// Re-adding an item that already has an id keeps that id (undo of delete).
func (d *Document) AddItem(item Item) ItemID {
	base := item.Base()
	if base.id == 0 {
		base.id = d.nextID
		d.nextID++
	} else if base.id >= d.nextID {
		d.nextID = base.id + 1
	}
	d.items = append(d.items, item)
	d.byID[base.id] = item
	base.Dirty = true
	return base.id
}

// InsertItemAt re-registers an item at a specific z-order position.
// Used by delete-undo to restore the original stacking.
func (d *Document) InsertItemAt(index int, item Item) {
	if index < 0 {
		index = 0
	}
	if index > len(d.items) {
		index = len(d.items)
	}
	base := item.Base()
	if base.id == 0 {
		base.id = d.nextID
		d.nextID++
	} else if base.id >= d.nextID {
		d.nextID = base.id + 1
	}
	d.items = append(d.items, nil)
	copy(d.items[index+1:], d.items[index:])
	d.items[index] = item
	d.byID[base.id] = item
	base.Dirty = true
}

// RemoveItem unregisters an item and returns its former z-order index,
// or -1 when the id is unknown
func (d *Document) RemoveItem(id ItemID) int {
	item, ok := d.byID[id]
	if !ok {
		return -1
	}
	delete(d.byID, id)
	for i := range d.items {
		if d.items[i] == item {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return i
		}
	}
	return -1
}

// IndexOf returns the z-order index of an item, or -1
func (d *Document) IndexOf(id ItemID) int {
	item, ok := d.byID[id]
	if !ok {
		return -1
	}
	for i := range d.items {
		if d.items[i] == item {
			return i
		}
	}
	return -1
}

// Bounds returns the combined bounding box of all items
func (d *Document) Bounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	for _, item := range d.items {
		bb.ExpandBox(item.Bounds())
	}
	return bb
}

// PinPosition is one component pin resolved to world coordinates
type PinPosition struct {
	Ref      PinRef
	Position geometry.Point
}

// AllPins resolves the world position of every pin of every visible
// component. The wire router consults this on each routing update.
func (d *Document) AllPins() []PinPosition {
	var pins []PinPosition
	for _, item := range d.items {
		comp, ok := item.(*Component)
		if !ok || comp.Hidden {
			continue
		}
		for _, pin := range comp.Pins {
			pins = append(pins, PinPosition{
				Ref:      PinRef{ComponentID: comp.ID(), PinNumber: pin.Number},
				Position: comp.PinPosition(pin),
			})
		}
	}
	return pins
}
