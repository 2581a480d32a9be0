package document

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

// Line is a straight stroke between two points
type Line struct {
	BaseItem
	Start geometry.Point
	End   geometry.Point
	Width float64 // stroke width in mm
}

func (l *Line) Base() *BaseItem { return &l.BaseItem }
func (l *Line) Kind() Kind      { return KindLine }

func (l *Line) Bounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	bb.Expand(l.Start)
	bb.Expand(l.End)
	return bb
}

func (l *Line) ContainsPoint(p geometry.Point, tol float64) bool {
	return geometry.SegmentDistance(p, l.Start, l.End) <= tol+l.Width/2
}

func (l *Line) Translate(dx, dy float64) {
	l.Start = l.Start.Add(dx, dy)
	l.End = l.End.Add(dx, dy)
}

// LineState is the undo snapshot for a Line
type LineState struct {
	Start geometry.Point
	End   geometry.Point
	Width float64
}

func (LineState) StateKind() Kind { return KindLine }

func (l *Line) CaptureState() State {
	return LineState{Start: l.Start, End: l.End, Width: l.Width}
}

func (l *Line) ApplyState(s State) {
	if st, ok := s.(LineState); ok {
		l.Start, l.End, l.Width = st.Start, st.End, st.Width
	}
}

// Rect is an axis-aligned rectangle, optionally filled
type Rect struct {
	BaseItem
	Min    geometry.Point
	Max    geometry.Point
	Width  float64 // stroke width in mm
	Filled bool
}

func (r *Rect) Base() *BaseItem { return &r.BaseItem }
func (r *Rect) Kind() Kind      { return KindRect }

func (r *Rect) Bounds() geometry.BoundingBox {
	return geometry.BoundingBox{Min: r.Min, Max: r.Max}
}

func (r *Rect) ContainsPoint(p geometry.Point, tol float64) bool {
	outer := r.Bounds().Inflated(tol + r.Width/2)
	if !outer.Contains(p) {
		return false
	}
	if r.Filled {
		return true
	}
	// Stroke only: reject points well inside the outline
	inner := r.Bounds().Inflated(-(tol + r.Width/2))
	return inner.IsEmpty() || !inner.Contains(p)
}

func (r *Rect) Translate(dx, dy float64) {
	r.Min = r.Min.Add(dx, dy)
	r.Max = r.Max.Add(dx, dy)
}

// RectState is the undo snapshot for a Rect
type RectState struct {
	Min    geometry.Point
	Max    geometry.Point
	Width  float64
	Filled bool
}

func (RectState) StateKind() Kind { return KindRect }

func (r *Rect) CaptureState() State {
	return RectState{Min: r.Min, Max: r.Max, Width: r.Width, Filled: r.Filled}
}

func (r *Rect) ApplyState(s State) {
	if st, ok := s.(RectState); ok {
		r.Min, r.Max, r.Width, r.Filled = st.Min, st.Max, st.Width, st.Filled
	}
}

// Circle is a circle defined by center and radius, optionally filled
type Circle struct {
	BaseItem
	Center geometry.Point
	Radius float64
	Width  float64 // stroke width in mm
	Filled bool
}

func (c *Circle) Base() *BaseItem { return &c.BaseItem }
func (c *Circle) Kind() Kind      { return KindCircle }

func (c *Circle) Bounds() geometry.BoundingBox {
	return geometry.BoundingBox{
		Min: geometry.Point{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
		Max: geometry.Point{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
	}
}

func (c *Circle) ContainsPoint(p geometry.Point, tol float64) bool {
	d := p.Distance(c.Center)
	if c.Filled {
		return d <= c.Radius+tol
	}
	return math.Abs(d-c.Radius) <= tol+c.Width/2
}

func (c *Circle) Translate(dx, dy float64) {
	c.Center = c.Center.Add(dx, dy)
}

// CircleState is the undo snapshot for a Circle
type CircleState struct {
	Center geometry.Point
	Radius float64
	Width  float64
	Filled bool
}

func (CircleState) StateKind() Kind { return KindCircle }

func (c *Circle) CaptureState() State {
	return CircleState{Center: c.Center, Radius: c.Radius, Width: c.Width, Filled: c.Filled}
}

func (c *Circle) ApplyState(s State) {
	if st, ok := s.(CircleState); ok {
		c.Center, c.Radius, c.Width, c.Filled = st.Center, st.Radius, st.Width, st.Filled
	}
}

// Arc is a circular arc defined by three points: start, a point on the
// arc, and end (the KiCad convention)
type Arc struct {
	BaseItem
	Start geometry.Point
	Mid   geometry.Point
	End   geometry.Point
	Width float64 // stroke width in mm
}

func (a *Arc) Base() *BaseItem { return &a.BaseItem }
func (a *Arc) Kind() Kind      { return KindArc }

func (a *Arc) Bounds() geometry.BoundingBox {
	// Approximated by the chord points; tight enough for selection
	bb := geometry.NewBoundingBox()
	bb.Expand(a.Start)
	bb.Expand(a.Mid)
	bb.Expand(a.End)
	return bb
}

// Flatten approximates the arc as a short polyline, used for both
// distance tests and rendering
func (a *Arc) Flatten() []geometry.Point {
	center, radius, ok := arcCenter(a.Start, a.Mid, a.End)
	if !ok {
		// Collinear points degrade to two segments
		return []geometry.Point{a.Start, a.Mid, a.End}
	}

	a0 := math.Atan2(a.Start.Y-center.Y, a.Start.X-center.X)
	a1 := math.Atan2(a.Mid.Y-center.Y, a.Mid.X-center.X)
	a2 := math.Atan2(a.End.Y-center.Y, a.End.X-center.X)

	// Sweep from start through mid to end
	sweep := normalizeAngle(a2 - a0)
	midSweep := normalizeAngle(a1 - a0)
	if midSweep > sweep {
		sweep -= 2 * math.Pi
	}

	const steps = 16
	pts := make([]geometry.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		ang := a0 + sweep*float64(i)/steps
		pts = append(pts, geometry.Point{
			X: center.X + radius*math.Cos(ang),
			Y: center.Y + radius*math.Sin(ang),
		})
	}
	return pts
}

func (a *Arc) ContainsPoint(p geometry.Point, tol float64) bool {
	return geometry.PolylineDistance(p, a.Flatten()) <= tol+a.Width/2
}

func (a *Arc) Translate(dx, dy float64) {
	a.Start = a.Start.Add(dx, dy)
	a.Mid = a.Mid.Add(dx, dy)
	a.End = a.End.Add(dx, dy)
}

// ArcState is the undo snapshot for an Arc
type ArcState struct {
	Start geometry.Point
	Mid   geometry.Point
	End   geometry.Point
	Width float64
}

func (ArcState) StateKind() Kind { return KindArc }

func (a *Arc) CaptureState() State {
	return ArcState{Start: a.Start, Mid: a.Mid, End: a.End, Width: a.Width}
}

func (a *Arc) ApplyState(s State) {
	if st, ok := s.(ArcState); ok {
		a.Start, a.Mid, a.End, a.Width = st.Start, st.Mid, st.End, st.Width
	}
}

// arcCenter computes the circumcenter of three points.
// ok is false when the points are collinear.
func arcCenter(p1, p2, p3 geometry.Point) (geometry.Point, float64, bool) {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if math.Abs(d) < 1e-12 {
		return geometry.Point{}, 0, false
	}

	s1 := p1.X*p1.X + p1.Y*p1.Y
	s2 := p2.X*p2.X + p2.Y*p2.Y
	s3 := p3.X*p3.X + p3.Y*p3.Y

	c := geometry.Point{
		X: (s1*(p2.Y-p3.Y) + s2*(p3.Y-p1.Y) + s3*(p1.Y-p2.Y)) / d,
		Y: (s1*(p3.X-p2.X) + s2*(p1.X-p3.X) + s3*(p2.X-p1.X)) / d,
	}
	return c, c.Distance(p1), true
}

// normalizeAngle maps an angle into [0, 2π)
func normalizeAngle(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Polyline is an open or closed sequence of line segments
type Polyline struct {
	BaseItem
	Points []geometry.Point
	Width  float64 // stroke width in mm
	Closed bool
	Filled bool // only meaningful when Closed
}

func (pl *Polyline) Base() *BaseItem { return &pl.BaseItem }
func (pl *Polyline) Kind() Kind      { return KindPolyline }

func (pl *Polyline) Bounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	for _, p := range pl.Points {
		bb.Expand(p)
	}
	return bb
}

func (pl *Polyline) outline() []geometry.Point {
	if pl.Closed && len(pl.Points) > 2 {
		return append(append([]geometry.Point{}, pl.Points...), pl.Points[0])
	}
	return pl.Points
}

func (pl *Polyline) ContainsPoint(p geometry.Point, tol float64) bool {
	if pl.Closed && pl.Filled && pointInPolygon(p, pl.Points) {
		return true
	}
	return geometry.PolylineDistance(p, pl.outline()) <= tol+pl.Width/2
}

func (pl *Polyline) Translate(dx, dy float64) {
	for i := range pl.Points {
		pl.Points[i] = pl.Points[i].Add(dx, dy)
	}
}

// PolylineState is the undo snapshot for a Polyline
type PolylineState struct {
	Points []geometry.Point
	Width  float64
	Closed bool
	Filled bool
}

func (PolylineState) StateKind() Kind { return KindPolyline }

func (pl *Polyline) CaptureState() State {
	return PolylineState{
		Points: append([]geometry.Point{}, pl.Points...),
		Width:  pl.Width,
		Closed: pl.Closed,
		Filled: pl.Filled,
	}
}

func (pl *Polyline) ApplyState(s State) {
	if st, ok := s.(PolylineState); ok {
		pl.Points = append([]geometry.Point{}, st.Points...)
		pl.Width, pl.Closed, pl.Filled = st.Width, st.Closed, st.Filled
	}
}

// pointInPolygon runs a standard even-odd ray cast
func pointInPolygon(p geometry.Point, poly []geometry.Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		if (poly[i].Y > p.Y) != (poly[j].Y > p.Y) &&
			p.X < (poly[j].X-poly[i].X)*(p.Y-poly[i].Y)/(poly[j].Y-poly[i].Y)+poly[i].X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Text is a free text annotation anchored at a position
type Text struct {
	BaseItem
	Text     string
	Position geometry.Point
	Size     float64 // nominal glyph height in mm
}

func (t *Text) Base() *BaseItem { return &t.BaseItem }
func (t *Text) Kind() Kind      { return KindText }

// Bounds estimates the occupied box from the glyph count.
// Exact metrics belong to the renderer.
func (t *Text) Bounds() geometry.BoundingBox {
	w := float64(len([]rune(t.Text))) * t.Size * 0.65
	return geometry.BoundingBox{
		Min: t.Position,
		Max: geometry.Point{X: t.Position.X + w, Y: t.Position.Y + t.Size},
	}
}

func (t *Text) ContainsPoint(p geometry.Point, tol float64) bool {
	// Text behaves as a filled box for selection
	return t.Bounds().Inflated(tol).Contains(p)
}

func (t *Text) Translate(dx, dy float64) {
	t.Position = t.Position.Add(dx, dy)
}

// TextState is the undo snapshot for a Text
type TextState struct {
	Text     string
	Position geometry.Point
	Size     float64
}

func (TextState) StateKind() Kind { return KindText }

func (t *Text) CaptureState() State {
	return TextState{Text: t.Text, Position: t.Position, Size: t.Size}
}

func (t *Text) ApplyState(s State) {
	if st, ok := s.(TextState); ok {
		t.Text, t.Position, t.Size = st.Text, st.Position, st.Size
	}
}
