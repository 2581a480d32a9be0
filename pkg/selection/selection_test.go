package selection

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

func buildDoc(items ...document.Item) *document.Document {
	doc := document.New()
	for _, item := range items {
		doc.AddItem(item)
	}
	return doc
}

func filledRect(x1, y1, x2, y2 float64) *document.Rect {
	return &document.Rect{
		Min:    geometry.Point{X: x1, Y: y1},
		Max:    geometry.Point{X: x2, Y: y2},
		Filled: true,
	}
}

func TestHitTestTopmost(t *testing.T) {
	bottom := filledRect(0, 0, 10, 10)
	top := filledRect(5, 5, 15, 15)
	doc := buildDoc(bottom, top)

	m := NewManager()
	m.SetItems(doc.Items())

	hits := m.HitTest(geometry.Point{X: 7, Y: 7}, HitTopmost)
	if len(hits) != 1 || hits[0] != top {
		t.Fatalf("Expected topmost item, got %v", hits)
	}
}

func TestHitTestSelectedWinsTie(t *testing.T) {
	// B is selected and earlier in z-order; A is unselected and later.
	// The two-pass policy treats selected items as rendered on top.
	b := filledRect(0, 0, 10, 10)
	a := filledRect(0, 0, 10, 10)
	doc := buildDoc(b, a)

	m := NewManager()
	m.SetItems(doc.Items())
	m.Select(b)

	hits := m.HitTest(geometry.Point{X: 5, Y: 5}, HitTopmost)
	if len(hits) != 1 || hits[0] != b {
		t.Fatalf("Expected selected item to win the tie, got %v", hits)
	}

	// HitAll has no selection preference: strictly back-to-front
	all := m.HitTest(geometry.Point{X: 5, Y: 5}, HitAll)
	if len(all) != 2 || all[0] != b || all[1] != a {
		t.Fatalf("Expected back-to-front [b a], got %v", all)
	}
}

func TestHitTestSkipsHidden(t *testing.T) {
	r := filledRect(0, 0, 10, 10)
	r.Hidden = true
	doc := buildDoc(r)

	m := NewManager()
	m.SetItems(doc.Items())

	if hits := m.HitTest(geometry.Point{X: 5, Y: 5}, HitTopmost); len(hits) != 0 {
		t.Errorf("Hidden item should not be hit, got %v", hits)
	}
}

func TestHitTestStrokeOnly(t *testing.T) {
	r := filledRect(0, 0, 10, 10)
	r.Filled = false
	doc := buildDoc(r)

	m := NewManager()
	m.SetItems(doc.Items())

	// Center of a stroke-only rect does not match
	if hits := m.HitTest(geometry.Point{X: 5, Y: 5}, HitTopmost); len(hits) != 0 {
		t.Errorf("Stroke-only rect should not match its interior, got %v", hits)
	}

	// Near the outline it does
	if hits := m.HitTest(geometry.Point{X: 0.1, Y: 5}, HitTopmost); len(hits) != 1 {
		t.Errorf("Stroke-only rect should match near its outline")
	}
}

func TestHitTestCacheInvalidation(t *testing.T) {
	r := filledRect(0, 0, 10, 10)
	doc := buildDoc(r)

	m := NewManager()
	m.SetItems(doc.Items())

	p := geometry.Point{X: 5, Y: 5}
	if hits := m.HitTest(p, HitTopmost); len(hits) != 1 {
		t.Fatalf("Expected a hit before the move")
	}

	// Structural change followed by SetItems must not return stale results
	r.Translate(100, 100)
	m.SetItems(doc.Items())
	if hits := m.HitTest(p, HitTopmost); len(hits) != 0 {
		t.Errorf("Stale cached hit returned after invalidation: %v", hits)
	}
}

func TestSelectionChangeRefreshesTopmost(t *testing.T) {
	// Two rects tied at the query point; b is earlier in z-order
	b := filledRect(0, 0, 10, 10)
	a := filledRect(0, 0, 10, 10)
	doc := buildDoc(b, a)

	m := NewManager()
	m.SetItems(doc.Items())

	// Prime the cache while nothing is selected: later-z a wins
	p := geometry.Point{X: 5, Y: 5}
	if hits := m.HitTest(p, HitTopmost); len(hits) != 1 || hits[0] != a {
		t.Fatalf("Expected later-z item before selecting, got %v", hits)
	}

	// Selecting b moves it to the first scan pass, so the cached
	// unselected winner must not be returned
	m.Select(b)
	if hits := m.HitTest(p, HitTopmost); len(hits) != 1 || hits[0] != b {
		t.Fatalf("Expected selected item to win after Select, got %v", hits)
	}

	m.Deselect(b)
	if hits := m.HitTest(p, HitTopmost); len(hits) != 1 || hits[0] != a {
		t.Fatalf("Expected later-z item after Deselect, got %v", hits)
	}

	m.SelectMultiple([]document.Item{b})
	if hits := m.HitTest(p, HitTopmost); len(hits) != 1 || hits[0] != b {
		t.Fatalf("Expected selected item after SelectMultiple, got %v", hits)
	}

	m.ClearSelection()
	if hits := m.HitTest(p, HitTopmost); len(hits) != 1 || hits[0] != a {
		t.Fatalf("Expected later-z item after ClearSelection, got %v", hits)
	}
}

func TestSelectionSubsetInvariant(t *testing.T) {
	a := filledRect(0, 0, 10, 10)
	b := filledRect(20, 0, 30, 10)
	doc := buildDoc(a, b)

	m := NewManager()
	m.SetItems(doc.Items())
	m.SelectMultiple([]document.Item{a, b})

	// Removing b from the registry must drop it from the selection
	doc.RemoveItem(b.ID())
	m.SetItems(doc.Items())

	sel := m.Selected()
	if len(sel) != 1 || sel[0] != a {
		t.Fatalf("Selection not a subset of registered items: %v", sel)
	}
	if b.Selected {
		// b's flag is left to its owner; the manager only guards its set
		t.Log("removed item keeps its flag until re-registered")
	}
}

func TestHitTestRect(t *testing.T) {
	a := filledRect(0, 0, 10, 10)
	b := filledRect(20, 0, 30, 10)
	doc := buildDoc(a, b)

	m := NewManager()
	m.SetItems(doc.Items())

	query := geometry.BoundingBox{Min: geometry.Point{X: -1, Y: -1}, Max: geometry.Point{X: 25, Y: 11}}

	contained := m.HitTestRect(query, RectContain)
	if len(contained) != 1 || contained[0] != a {
		t.Errorf("Expected only a fully contained, got %v", contained)
	}

	overlapping := m.HitTestRect(query, RectIntersect)
	if len(overlapping) != 2 {
		t.Errorf("Expected both items to intersect, got %v", overlapping)
	}
}

func TestSelectionNotification(t *testing.T) {
	a := filledRect(0, 0, 10, 10)
	doc := buildDoc(a)

	m := NewManager()
	m.SetItems(doc.Items())

	var gotItems []document.Item
	var gotBounds geometry.BoundingBox
	calls := 0
	m.OnSelectionChanged = func(items []document.Item, bounds geometry.BoundingBox) {
		gotItems = items
		gotBounds = bounds
		calls++
	}

	m.Select(a)
	if calls != 1 || len(gotItems) != 1 {
		t.Fatalf("Expected one notification with one item, got %d calls %v", calls, gotItems)
	}
	if gotBounds != a.Bounds() {
		t.Errorf("Expected selection bounds %v, got %v", a.Bounds(), gotBounds)
	}
	if !a.Dirty {
		t.Errorf("Selection should mark the item dirty")
	}

	// Selecting the same item again is a no-op
	m.Select(a)
	if calls != 1 {
		t.Errorf("Redundant select fired a notification")
	}

	m.ClearSelection()
	if calls != 2 || len(gotItems) != 0 {
		t.Errorf("Expected empty selection notification, got %d calls %v", calls, gotItems)
	}
}

func TestSetHovered(t *testing.T) {
	a := filledRect(0, 0, 10, 10)
	b := filledRect(20, 0, 30, 10)
	doc := buildDoc(a, b)

	m := NewManager()
	m.SetItems(doc.Items())

	if !m.SetHovered(a) {
		t.Errorf("First hover should report a change")
	}
	if m.SetHovered(a) {
		t.Errorf("Repeated hover should report no change")
	}
	if !m.SetHovered(b) {
		t.Errorf("Hover handoff should report a change")
	}
	if a.Hovered {
		t.Errorf("Previous hover flag not cleared")
	}
	if !m.SetHovered(nil) {
		t.Errorf("Clearing hover should report a change")
	}
	if b.Hovered {
		t.Errorf("Hover flag not cleared on nil")
	}
}

func TestSelectAllSkipsHidden(t *testing.T) {
	a := filledRect(0, 0, 10, 10)
	b := filledRect(20, 0, 30, 10)
	b.Hidden = true
	doc := buildDoc(a, b)

	m := NewManager()
	m.SetItems(doc.Items())
	m.SelectAll()

	sel := m.Selected()
	if len(sel) != 1 || sel[0] != a {
		t.Errorf("SelectAll should skip hidden items, got %v", sel)
	}
}
