package document

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

// Wire is an ordered sequence of waypoints connecting two points,
// usually component pins. Consecutive waypoints differ in at most
// one axis (the orthogonality invariant).
type Wire struct {
	BaseItem
	Points    []geometry.Point
	Width     float64 // stroke width in mm
	StartConn *PinRef // pin attached to the first waypoint, if any
	EndConn   *PinRef // pin attached to the last waypoint, if any
}

func (w *Wire) Base() *BaseItem { return &w.BaseItem }
func (w *Wire) Kind() Kind      { return KindWire }

func (w *Wire) Bounds() geometry.BoundingBox {
	bb := geometry.NewBoundingBox()
	for _, p := range w.Points {
		bb.Expand(p)
	}
	return bb
}

func (w *Wire) ContainsPoint(p geometry.Point, tol float64) bool {
	return geometry.PolylineDistance(p, w.Points) <= tol+w.Width/2
}

func (w *Wire) Translate(dx, dy float64) {
	for i := range w.Points {
		w.Points[i] = w.Points[i].Add(dx, dy)
	}
}

// IsOrthogonal reports whether every consecutive waypoint pair differs
// in at most one axis, within eps
func (w *Wire) IsOrthogonal(eps float64) bool {
	for i := 1; i < len(w.Points); i++ {
		dx := math.Abs(w.Points[i].X - w.Points[i-1].X)
		dy := math.Abs(w.Points[i].Y - w.Points[i-1].Y)
		if dx > eps && dy > eps {
			return false
		}
	}
	return true
}

// WireState is the undo snapshot for a Wire
type WireState struct {
	Points    []geometry.Point
	Width     float64
	StartConn *PinRef
	EndConn   *PinRef
}

func (WireState) StateKind() Kind { return KindWire }

func (w *Wire) CaptureState() State {
	st := WireState{
		Points: append([]geometry.Point{}, w.Points...),
		Width:  w.Width,
	}
	if w.StartConn != nil {
		ref := *w.StartConn
		st.StartConn = &ref
	}
	if w.EndConn != nil {
		ref := *w.EndConn
		st.EndConn = &ref
	}
	return st
}

func (w *Wire) ApplyState(s State) {
	st, ok := s.(WireState)
	if !ok {
		return
	}
	w.Points = append([]geometry.Point{}, st.Points...)
	w.Width = st.Width
	w.StartConn, w.EndConn = nil, nil
	if st.StartConn != nil {
		ref := *st.StartConn
		w.StartConn = &ref
	}
	if st.EndConn != nil {
		ref := *st.EndConn
		w.EndConn = &ref
	}
}
