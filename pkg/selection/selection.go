// Package selection resolves pointer positions to items and tracks the
// selected and hovered item sets.
package selection

import (
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

// DefaultTolerance is the hit-test tolerance in world units (mm)
const DefaultTolerance = 0.5

// HitMode selects how point hit tests resolve
type HitMode int

const (
	// HitTopmost returns the single best match, preferring selected items
	HitTopmost HitMode = iota
	// HitAll returns every match strictly back-to-front
	HitAll
)

// RectMode selects how rectangle hit tests resolve
type RectMode int

const (
	// RectContain matches items whose bounds lie fully inside the rectangle
	RectContain RectMode = iota
	// RectIntersect matches items whose bounds overlap the rectangle
	RectIntersect
)

// Manager tracks the working item list, the selection and hover state,
// and caches hit-test results until the item list changes.
type Manager struct {
	items    []document.Item
	selected map[document.ItemID]struct{}
	hovered  document.ItemID

	// Hit-test tolerance in world units
	Tolerance float64

	// OnSelectionChanged fires after every selection mutation with the
	// new selection in z-order and its combined bounding box
	OnSelectionChanged func(items []document.Item, bounds geometry.BoundingBox)

	// Caches keyed by the literal query point; topmost and all-results
	// are cached independently
	topCache map[geometry.Point]document.Item
	allCache map[geometry.Point][]document.Item
}

// NewManager creates a selection manager with the default tolerance
func NewManager() *Manager {
	return &Manager{
		selected:  make(map[document.ItemID]struct{}),
		Tolerance: DefaultTolerance,
		topCache:  make(map[geometry.Point]document.Item),
		allCache:  make(map[geometry.Point][]document.Item),
	}
}

// SetItems replaces the working item list and invalidates the hit-test
// cache. Selection entries for items no longer present are dropped, so
// the selection set stays a subset of the registered items.
func (m *Manager) SetItems(items []document.Item) {
	m.items = items

	present := make(map[document.ItemID]bool, len(items))
	for _, item := range items {
		present[item.Base().ID()] = true
	}

	changed := false
	for id := range m.selected {
		if !present[id] {
			delete(m.selected, id)
			changed = true
		}
	}
	if m.hovered != 0 && !present[m.hovered] {
		m.hovered = 0
	}

	m.InvalidateCache()
	if changed {
		m.notify()
	}
}

// InvalidateCache drops all cached hit-test results. Must be called
// after any structural or geometric change to the item list.
func (m *Manager) InvalidateCache() {
	m.topCache = make(map[geometry.Point]document.Item)
	m.allCache = make(map[geometry.Point][]document.Item)
}

// invalidateTopmost drops only the topmost cache. Selection changes
// reorder the two-pass scan but leave HitAll results valid.
func (m *Manager) invalidateTopmost() {
	m.topCache = make(map[geometry.Point]document.Item)
}

// HitTest resolves the item(s) at a world point. In HitTopmost mode the
// single best match is returned: selected items are scanned back-to-front
// first (they render on top), then unselected items back-to-front. In
// HitAll mode every match is returned strictly back-to-front.
func (m *Manager) HitTest(p geometry.Point, mode HitMode) []document.Item {
	if mode == HitAll {
		if hits, ok := m.allCache[p]; ok {
			return hits
		}
		var hits []document.Item
		for _, item := range m.items {
			if item.Base().Visible() && item.ContainsPoint(p, m.Tolerance) {
				hits = append(hits, item)
			}
		}
		m.allCache[p] = hits
		return hits
	}

	if hit, ok := m.topCache[p]; ok {
		if hit == nil {
			return nil
		}
		return []document.Item{hit}
	}

	hit := m.topmostAt(p)
	m.topCache[p] = hit
	if hit == nil {
		return nil
	}
	return []document.Item{hit}
}

// topmostAt runs the two-pass topmost scan: selected first, both passes
// back-to-front (last item in z-order wins)
func (m *Manager) topmostAt(p geometry.Point) document.Item {
	for i := len(m.items) - 1; i >= 0; i-- {
		item := m.items[i]
		base := item.Base()
		if base.Selected && base.Visible() && item.ContainsPoint(p, m.Tolerance) {
			return item
		}
	}
	for i := len(m.items) - 1; i >= 0; i-- {
		item := m.items[i]
		base := item.Base()
		if !base.Selected && base.Visible() && item.ContainsPoint(p, m.Tolerance) {
			return item
		}
	}
	return nil
}

// HitTestRect returns the items matched by a rectangle, back-to-front.
// RectContain requires the item's bounds fully inside the rectangle;
// RectIntersect requires any overlap.
func (m *Manager) HitTestRect(bounds geometry.BoundingBox, mode RectMode) []document.Item {
	var hits []document.Item
	for _, item := range m.items {
		if !item.Base().Visible() {
			continue
		}
		ib := item.Bounds()
		switch mode {
		case RectContain:
			if bounds.ContainsBox(ib) {
				hits = append(hits, item)
			}
		case RectIntersect:
			if bounds.Intersects(ib) {
				hits = append(hits, item)
			}
		}
	}
	return hits
}

// Select adds a single item to the selection set
func (m *Manager) Select(item document.Item) {
	id := item.Base().ID()
	if _, ok := m.selected[id]; ok {
		return
	}
	m.selected[id] = struct{}{}
	item.Base().Selected = true
	item.Base().Dirty = true
	m.invalidateTopmost()
	m.notify()
}

// Deselect removes a single item from the selection set
func (m *Manager) Deselect(item document.Item) {
	id := item.Base().ID()
	if _, ok := m.selected[id]; !ok {
		return
	}
	delete(m.selected, id)
	item.Base().Selected = false
	item.Base().Dirty = true
	m.invalidateTopmost()
	m.notify()
}

// Toggle flips an item's selection membership
func (m *Manager) Toggle(item document.Item) {
	if _, ok := m.selected[item.Base().ID()]; ok {
		m.Deselect(item)
	} else {
		m.Select(item)
	}
}

// SelectMultiple replaces the selection with the given items
func (m *Manager) SelectMultiple(items []document.Item) {
	m.clearFlags()
	m.selected = make(map[document.ItemID]struct{}, len(items))
	for _, item := range items {
		m.selected[item.Base().ID()] = struct{}{}
		item.Base().Selected = true
		item.Base().Dirty = true
	}
	m.invalidateTopmost()
	m.notify()
}

// SelectAll selects every visible item
func (m *Manager) SelectAll() {
	var all []document.Item
	for _, item := range m.items {
		if item.Base().Visible() {
			all = append(all, item)
		}
	}
	m.SelectMultiple(all)
}

// ClearSelection empties the selection set
func (m *Manager) ClearSelection() {
	if len(m.selected) == 0 {
		return
	}
	m.clearFlags()
	m.selected = make(map[document.ItemID]struct{})
	m.invalidateTopmost()
	m.notify()
}

func (m *Manager) clearFlags() {
	for _, item := range m.items {
		if item.Base().Selected {
			item.Base().Selected = false
			item.Base().Dirty = true
		}
	}
}

// Selected returns the selected items in z-order
func (m *Manager) Selected() []document.Item {
	var sel []document.Item
	for _, item := range m.items {
		if _, ok := m.selected[item.Base().ID()]; ok {
			sel = append(sel, item)
		}
	}
	return sel
}

// IsSelected reports whether an item id is in the selection set
func (m *Manager) IsSelected(id document.ItemID) bool {
	_, ok := m.selected[id]
	return ok
}

// SelectionBounds returns the combined bounding box of the selection
func (m *Manager) SelectionBounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	for _, item := range m.Selected() {
		bb.ExpandBox(item.Bounds())
	}
	return bb
}

// SetHovered updates the single hovered item and returns whether it
// changed, so callers can skip redundant redraw and cursor work.
// Pass nil to clear the hover.
func (m *Manager) SetHovered(item document.Item) bool {
	var id document.ItemID
	if item != nil {
		id = item.Base().ID()
	}
	if id == m.hovered {
		return false
	}

	if prev := m.itemByID(m.hovered); prev != nil {
		prev.Base().Hovered = false
		prev.Base().Dirty = true
	}
	m.hovered = id
	if item != nil {
		item.Base().Hovered = true
		item.Base().Dirty = true
	}
	return true
}

// Hovered returns the currently hovered item id (0 = none)
func (m *Manager) Hovered() document.ItemID { return m.hovered }

func (m *Manager) itemByID(id document.ItemID) document.Item {
	if id == 0 {
		return nil
	}
	for _, item := range m.items {
		if item.Base().ID() == id {
			return item
		}
	}
	return nil
}

func (m *Manager) notify() {
	if m.OnSelectionChanged != nil {
		m.OnSelectionChanged(m.Selected(), m.SelectionBounds())
	}
}
