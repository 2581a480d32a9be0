package document

import "github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"

// Pin is a named connection point owned by a placed component.
// Offset is relative to the component origin before rotation/mirror.
type Pin struct {
	Number string         // Pin number (e.g. "1")
	Name   string         // Pin name (e.g. "VCC"), optional
	Offset geometry.Point // Local offset from component origin
}

// PinRef identifies one pin of one placed component
type PinRef struct {
	ComponentID ItemID
	PinNumber   string
}

// Component is a placed instance of a library symbol
type Component struct {
	BaseItem
	SymbolName string         // Library symbol identifier (e.g. "Device:R")
	Reference  string         // Reference designator (e.g. "R1")
	Value      string         // Component value (e.g. "10k")
	Origin     geometry.Point // Placement position on the schematic
	Rotation   int            // Rotation in degrees (0, 90, 180, 270)
	Mirror     bool           // Mirrored around the vertical axis
	Pins       []Pin          // Pin definitions from the symbol
	BodyMin    geometry.Point // Local body bounds (before transform)
	BodyMax    geometry.Point
}

func (c *Component) Base() *BaseItem { return &c.BaseItem }
func (c *Component) Kind() Kind      { return KindComponent }

// transformOffset applies the component's mirror and rotation to a local offset
func (c *Component) transformOffset(off geometry.Point) geometry.Point {
	x, y := off.X, off.Y
	if c.Mirror {
		x = -x
	}
	switch ((c.Rotation % 360) + 360) % 360 {
	case 90:
		x, y = -y, x
	case 180:
		x, y = -x, -y
	case 270:
		x, y = y, -x
	}
	return geometry.Point{X: x, Y: y}
}

// PinPosition resolves a pin's world position from the component origin,
// local offset and current rotation/mirror
func (c *Component) PinPosition(pin Pin) geometry.Point {
	t := c.transformOffset(pin.Offset)
	return geometry.Point{X: c.Origin.X + t.X, Y: c.Origin.Y + t.Y}
}

// PinByNumber returns the pin with the given number, or nil
func (c *Component) PinByNumber(number string) *Pin {
	for i := range c.Pins {
		if c.Pins[i].Number == number {
			return &c.Pins[i]
		}
	}
	return nil
}

// Bounds returns the transformed body box expanded by all pin positions
func (c *Component) Bounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	corners := []geometry.Point{
		c.BodyMin,
		{X: c.BodyMax.X, Y: c.BodyMin.Y},
		c.BodyMax,
		{X: c.BodyMin.X, Y: c.BodyMax.Y},
	}
	for _, corner := range corners {
		t := c.transformOffset(corner)
		bb.Expand(geometry.Point{X: c.Origin.X + t.X, Y: c.Origin.Y + t.Y})
	}
	for _, pin := range c.Pins {
		bb.Expand(c.PinPosition(pin))
	}
	return bb
}

// ContainsPoint treats the component body as filled
func (c *Component) ContainsPoint(p geometry.Point, tol float64) bool {
	return c.Bounds().Inflated(tol).Contains(p)
}

func (c *Component) Translate(dx, dy float64) {
	c.Origin = c.Origin.Add(dx, dy)
}

// ComponentState is the undo snapshot for a Component
type ComponentState struct {
	SymbolName string
	Reference  string
	Value      string
	Origin     geometry.Point
	Rotation   int
	Mirror     bool
}

func (ComponentState) StateKind() Kind { return KindComponent }

func (c *Component) CaptureState() State {
	return ComponentState{
		SymbolName: c.SymbolName,
		Reference:  c.Reference,
		Value:      c.Value,
		Origin:     c.Origin,
		Rotation:   c.Rotation,
		Mirror:     c.Mirror,
	}
}

func (c *Component) ApplyState(s State) {
	if st, ok := s.(ComponentState); ok {
		c.SymbolName = st.SymbolName
		c.Reference = st.Reference
		c.Value = st.Value
		c.Origin = st.Origin
		c.Rotation = st.Rotation
		c.Mirror = st.Mirror
	}
}
