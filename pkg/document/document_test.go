package document

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

func TestRegistryAssignsIDs(t *testing.T) {
	doc := New()
	a := &Line{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 10, Y: 0}}
	b := &Line{Start: geometry.Point{X: 0, Y: 5}, End: geometry.Point{X: 10, Y: 5}}

	idA := doc.AddItem(a)
	idB := doc.AddItem(b)

	if idA == 0 || idB == 0 || idA == idB {
		t.Fatalf("Expected distinct non-zero ids, got %d and %d", idA, idB)
	}
	if doc.ItemByID(idA) != a || doc.ItemByID(idB) != b {
		t.Errorf("Lookup did not return the registered items")
	}
}

func TestRemoveAndReAddKeepsID(t *testing.T) {
	doc := New()
	a := &Line{End: geometry.Point{X: 1, Y: 0}}
	b := &Line{End: geometry.Point{X: 1, Y: 1}}
	doc.AddItem(a)
	id := doc.AddItem(b)

	index := doc.RemoveItem(id)
	if index != 1 {
		t.Fatalf("Expected former index 1, got %d", index)
	}
	if doc.ItemByID(id) != nil {
		t.Errorf("Removed item still resolvable")
	}

	doc.AddItem(b)
	if b.ID() != id {
		t.Errorf("Re-added item lost its id: %d != %d", b.ID(), id)
	}

	// Fresh items never collide with a restored id
	c := &Line{End: geometry.Point{X: 1, Y: 2}}
	if doc.AddItem(c) == id {
		t.Errorf("Fresh item reused a live id")
	}
}

func TestInsertItemAtRestoresZOrder(t *testing.T) {
	doc := New()
	a := &Line{End: geometry.Point{X: 1, Y: 0}}
	b := &Line{End: geometry.Point{X: 1, Y: 1}}
	c := &Line{End: geometry.Point{X: 1, Y: 2}}
	doc.AddItem(a)
	doc.AddItem(b)
	doc.AddItem(c)

	doc.RemoveItem(b.ID())
	doc.InsertItemAt(1, b)

	if doc.IndexOf(b.ID()) != 1 {
		t.Errorf("Expected index 1, got %d", doc.IndexOf(b.ID()))
	}
	if doc.IndexOf(c.ID()) != 2 {
		t.Errorf("Items above the insertion point did not shift, got %d", doc.IndexOf(c.ID()))
	}
}

func TestRemoveUnknownID(t *testing.T) {
	doc := New()
	if doc.RemoveItem(42) != -1 {
		t.Errorf("Expected -1 for unknown id")
	}
	if doc.IndexOf(42) != -1 {
		t.Errorf("Expected -1 index for unknown id")
	}
}

func resistor() *Component {
	return &Component{
		SymbolName: "Device:R",
		Reference:  "R1",
		Origin:     geometry.Point{X: 100, Y: 50},
		Pins: []Pin{
			{Number: "1", Offset: geometry.Point{X: 0, Y: -3.81}},
			{Number: "2", Offset: geometry.Point{X: 0, Y: 3.81}},
		},
		BodyMin: geometry.Point{X: -1.27, Y: -2.54},
		BodyMax: geometry.Point{X: 1.27, Y: 2.54},
	}
}

func TestPinPositionRotation(t *testing.T) {
	c := resistor()
	pin := *c.PinByNumber("1") // local offset (0, -3.81)

	cases := []struct {
		rotation int
		mirror   bool
		want     geometry.Point
	}{
		{0, false, geometry.Point{X: 100, Y: 50 - 3.81}},
		{90, false, geometry.Point{X: 100 + 3.81, Y: 50}},
		{180, false, geometry.Point{X: 100, Y: 50 + 3.81}},
		{270, false, geometry.Point{X: 100 - 3.81, Y: 50}},
		{0, true, geometry.Point{X: 100, Y: 50 - 3.81}}, // offset on the mirror axis
	}

	for _, tc := range cases {
		c.Rotation = tc.rotation
		c.Mirror = tc.mirror
		got := c.PinPosition(pin)
		if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
			t.Errorf("Rotation %d mirror %v: expected %v, got %v",
				tc.rotation, tc.mirror, tc.want, got)
		}
	}
}

func TestMirrorFlipsHorizontalOffsets(t *testing.T) {
	c := resistor()
	c.Pins = append(c.Pins, Pin{Number: "3", Offset: geometry.Point{X: 2.54, Y: 0}})
	c.Mirror = true

	got := c.PinPosition(*c.PinByNumber("3"))
	want := geometry.Point{X: 100 - 2.54, Y: 50}
	if got != want {
		t.Errorf("Expected mirrored pin at %v, got %v", want, got)
	}
}

func TestComponentBoundsIncludePins(t *testing.T) {
	c := resistor()
	bb := c.Bounds()

	for _, pin := range c.Pins {
		if !bb.Contains(c.PinPosition(pin)) {
			t.Errorf("Bounds %v exclude pin at %v", bb, c.PinPosition(pin))
		}
	}
}

func TestAllPinsSkipsHidden(t *testing.T) {
	doc := New()
	visible := resistor()
	hidden := resistor()
	hidden.Reference = "R2"
	hidden.Hidden = true
	doc.AddItem(visible)
	doc.AddItem(hidden)

	pins := doc.AllPins()
	if len(pins) != 2 {
		t.Fatalf("Expected 2 pins from the visible component, got %d", len(pins))
	}
	for _, pin := range pins {
		if pin.Ref.ComponentID != visible.ID() {
			t.Errorf("Pin from hidden component leaked: %+v", pin.Ref)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	// Wire and Polyline states hold slices; they get their own deep-copy
	// tests below
	items := []Item{
		&Line{Start: geometry.Point{X: 1, Y: 2}, End: geometry.Point{X: 3, Y: 4}, Width: 0.2},
		&Rect{Min: geometry.Point{X: 0, Y: 0}, Max: geometry.Point{X: 5, Y: 5}, Filled: true},
		&Circle{Center: geometry.Point{X: 2, Y: 2}, Radius: 1.5},
		&Arc{Start: geometry.Point{X: 0, Y: 0}, Mid: geometry.Point{X: 1, Y: 1}, End: geometry.Point{X: 2, Y: 0}},
		&Text{Position: geometry.Point{X: 0, Y: 0}, Text: "VCC", Size: 1.27},
		resistor(),
	}

	for _, item := range items {
		before := item.CaptureState()
		if before.StateKind() != item.Kind() {
			t.Errorf("%v state reports kind %v", item.Kind(), before.StateKind())
		}

		item.Translate(10, -7)
		if item.CaptureState() == before {
			t.Errorf("%v state unchanged after translate", item.Kind())
		}

		item.ApplyState(before)
		if item.CaptureState() != before {
			t.Errorf("%v state not restored", item.Kind())
		}
	}
}

func TestApplyStateIgnoresWrongKind(t *testing.T) {
	l := &Line{End: geometry.Point{X: 5, Y: 0}}
	l.ApplyState(CircleState{Radius: 9})
	if l.End.X != 5 {
		t.Errorf("Mismatched state kind modified the item")
	}
}

func TestWireStateDeepCopy(t *testing.T) {
	w := &Wire{
		Points:    []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}},
		StartConn: &PinRef{ComponentID: 1, PinNumber: "1"},
	}

	state := w.CaptureState()
	w.Translate(3, 3)
	w.StartConn.PinNumber = "2"

	w.ApplyState(state)
	if w.Points[0] != (geometry.Point{X: 0, Y: 0}) {
		t.Errorf("Wire points not restored: %v", w.Points)
	}
	if w.StartConn.PinNumber != "1" {
		t.Errorf("Wire connection not restored: %+v", w.StartConn)
	}
}

func TestWireOrthogonality(t *testing.T) {
	ortho := &Wire{Points: []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}}
	if !ortho.IsOrthogonal(1e-9) {
		t.Errorf("Axis-aligned wire reported non-orthogonal")
	}

	diag := &Wire{Points: []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}}
	if diag.IsOrthogonal(1e-9) {
		t.Errorf("Diagonal wire reported orthogonal")
	}
}

func TestDocumentBounds(t *testing.T) {
	doc := New()
	if !doc.Bounds().IsEmpty() {
		t.Errorf("Empty document should have empty bounds")
	}

	doc.AddItem(&Line{Start: geometry.Point{X: -5, Y: 0}, End: geometry.Point{X: 5, Y: 0}})
	doc.AddItem(&Circle{Center: geometry.Point{X: 0, Y: 10}, Radius: 2})

	bb := doc.Bounds()
	if bb.Min.X != -5 || bb.Max.X != 5 || bb.Min.Y != 0 || bb.Max.Y != 12 {
		t.Errorf("Unexpected bounds %v", bb)
	}
}
