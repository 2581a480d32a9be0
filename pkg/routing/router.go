// Package routing implements the interactive orthogonal wire-routing
// state machine: waypoint accumulation, pin snapping, axis locking and
// implicit corner insertion.
package routing

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

// Axis is the orthogonal direction a segment is constrained to
type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

// State is the router lifecycle state
type State int

const (
	StateIdle State = iota
	StateRouting
)

// Config holds the routing thresholds in world units (mm). The exact
// values are tunable; only the qualitative policies are load-bearing.
type Config struct {
	PinDetectRadius  float64 // pin search radius around the raw cursor
	PinSnapThreshold float64 // reach-in distance for per-axis pin alignment
	AxisLockDeadband float64 // cursor movement below this keeps the axis ambiguous
	Epsilon          float64 // negligible coordinate difference
	WireWidth        float64 // stroke width of finished wires
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		PinDetectRadius:  2.54,
		PinSnapThreshold: 1.27,
		AxisLockDeadband: 0.25,
		Epsilon:          1e-6,
		WireWidth:        document.DefaultWireWidth,
	}
}

// PinLocator resolves the current world position of every component pin.
// The router consults it on every routing update.
type PinLocator interface {
	AllPins() []document.PinPosition
}

// SnapFunc quantizes a world point to the grid (identity when snapping
// is disabled)
type SnapFunc func(geometry.Point) geometry.Point

// Router accumulates waypoints for one wire while active. All updates
// are synchronous; the owning shell drives it from pointer events.
type Router struct {
	cfg     Config
	locator PinLocator
	snap    SnapFunc

	state     State
	waypoints []geometry.Point
	startConn *document.PinRef
	endConn   *document.PinRef

	axis          Axis
	target        geometry.Point
	pendingCorner *geometry.Point
	adjustedPrev  *geometry.Point // provisional nudge of the last committed waypoint
	activePin     *document.PinPosition

	// Lifecycle callbacks
	OnStarted       func(start geometry.Point)
	OnWaypointAdded func(p geometry.Point)
	OnFinished      func(w *document.Wire)
	OnCancelled     func()
}

// NewRouter creates an idle router. snap must not be nil; locator may be
// nil for documents without components.
func NewRouter(cfg Config, locator PinLocator, snap SnapFunc) *Router {
	if snap == nil {
		snap = func(p geometry.Point) geometry.Point { return p }
	}
	return &Router{cfg: cfg, locator: locator, snap: snap}
}

// State returns the current lifecycle state
func (r *Router) State() State { return r.state }

// Active reports whether a wire is being routed
func (r *Router) Active() bool { return r.state == StateRouting }

// ActivePin returns the pin currently highlighted as a snap candidate
func (r *Router) ActivePin() *document.PinPosition { return r.activePin }

// Start begins routing at p. When a pin is within the detection radius
// the wire starts exactly on the pin and records the connection.
func (r *Router) Start(p geometry.Point) {
	start := r.snap(p)
	r.startConn = nil
	if pin := r.nearestPin(p, nil); pin != nil {
		start = pin.Position
		ref := pin.Ref
		r.startConn = &ref
	}

	r.state = StateRouting
	r.waypoints = []geometry.Point{start}
	r.endConn = nil
	r.axis = AxisNone
	r.target = start
	r.pendingCorner = nil
	r.adjustedPrev = nil
	r.activePin = nil

	if r.OnStarted != nil {
		r.OnStarted(start)
	}
}

// UpdateCursor re-evaluates pin proximity, axis lock, the live target
// point and any implicit corner for the raw cursor position. Returns
// true when the update snapped onto a second pin and auto-finished the
// wire.
func (r *Router) UpdateCursor(p geometry.Point) bool {
	if r.state != StateRouting {
		return false
	}

	prev := r.lastWaypoint()
	r.adjustedPrev = nil
	r.pendingCorner = nil

	// 1. Pin proximity. On the first segment the start pin is never
	// re-offered, which would otherwise produce a zero-length loop.
	var exclude *geometry.Point
	if len(r.waypoints) == 1 {
		start := r.waypoints[0]
		exclude = &start
	}
	pin := r.nearestPin(p, exclude)
	r.activePin = pin

	// 2. Axis lock: cleared below the deadband, otherwise locked to the
	// dominant axis and kept until the waypoint is committed.
	dx := p.X - prev.X
	dy := p.Y - prev.Y
	if math.Max(math.Abs(dx), math.Abs(dy)) < r.cfg.AxisLockDeadband {
		r.axis = AxisNone
	} else if r.axis == AxisNone {
		if math.Abs(dx) >= math.Abs(dy) {
			r.axis = AxisHorizontal
		} else {
			r.axis = AxisVertical
		}
	}

	// 3. Target point: grid-snapped cursor, with reach-in pin alignment
	// overriding each axis once within the snap threshold.
	g := r.snap(p)
	onPin := false
	if pin != nil {
		if math.Abs(g.X-pin.Position.X) <= r.cfg.PinSnapThreshold {
			g.X = pin.Position.X
		}
		if math.Abs(g.Y-pin.Position.Y) <= r.cfg.PinSnapThreshold {
			g.Y = pin.Position.Y
		}
		onPin = g == pin.Position

		// Reaching a pin whose cross-axis coordinate is close to the
		// previous waypoint nudges that waypoint instead of inserting a
		// sliver corner. The nudge is provisional until commit. A
		// pin-connected start is never nudged: its geometry must keep
		// matching the recorded connection, so a corner is used instead.
		if len(r.waypoints) > 1 || r.startConn == nil {
			switch r.axis {
			case AxisHorizontal:
				if d := pin.Position.Y - prev.Y; d != 0 && math.Abs(d) <= r.cfg.PinSnapThreshold {
					adj := geometry.Point{X: prev.X, Y: pin.Position.Y}
					r.adjustedPrev = &adj
					prev = adj
				}
			case AxisVertical:
				if d := pin.Position.X - prev.X; d != 0 && math.Abs(d) <= r.cfg.PinSnapThreshold {
					adj := geometry.Point{X: pin.Position.X, Y: prev.Y}
					r.adjustedPrev = &adj
					prev = adj
				}
			}
		}
	}

	// 4. Corner synthesis keeps the path as two axis-aligned segments;
	// without a corner the free axis is clamped back to the previous
	// waypoint so the segment stays orthogonal.
	cdx := g.X - prev.X
	cdy := g.Y - prev.Y
	if math.Abs(cdx) > r.cfg.Epsilon && math.Abs(cdy) > r.cfg.Epsilon {
		axis := r.axis
		if axis == AxisNone {
			if math.Abs(cdx) >= math.Abs(cdy) {
				axis = AxisHorizontal
			} else {
				axis = AxisVertical
			}
		}
		var corner geometry.Point
		if axis == AxisHorizontal {
			corner = geometry.Point{X: g.X, Y: prev.Y}
		} else {
			corner = geometry.Point{X: prev.X, Y: g.Y}
		}
		r.pendingCorner = &corner
	} else if pin == nil {
		switch r.axis {
		case AxisHorizontal:
			g.Y = prev.Y
		case AxisVertical:
			g.X = prev.X
		}
	}

	r.target = g

	// A wire is auto-finished the moment its target lands exactly on a
	// pin other than the start pin.
	if onPin && !r.isStartPin(pin) {
		ref := pin.Ref
		r.endConn = &ref
		r.CommitWaypoint()
		return r.finish() != nil
	}
	return false
}

// CommitWaypoint appends the pending corner (if any) and the resolved
// target point, applies any provisional previous-waypoint adjustment,
// and resets the per-segment state.
func (r *Router) CommitWaypoint() {
	if r.state != StateRouting {
		return
	}

	if r.adjustedPrev != nil {
		r.waypoints[len(r.waypoints)-1] = *r.adjustedPrev
		r.adjustedPrev = nil
	}

	last := r.lastWaypoint()
	if r.pendingCorner != nil && *r.pendingCorner != last && *r.pendingCorner != r.target {
		r.waypoints = append(r.waypoints, *r.pendingCorner)
		if r.OnWaypointAdded != nil {
			r.OnWaypointAdded(*r.pendingCorner)
		}
		last = *r.pendingCorner
	}
	r.pendingCorner = nil

	if r.target != last {
		r.waypoints = append(r.waypoints, r.target)
		if r.OnWaypointAdded != nil {
			r.OnWaypointAdded(r.target)
		}
	}

	r.axis = AxisNone
}

// Finish commits any distinct pending preview point and finalizes the
// wire. Sessions with fewer than two distinct waypoints are silently
// cancelled instead of producing a degenerate wire.
func (r *Router) Finish() *document.Wire {
	if r.state != StateRouting {
		return nil
	}
	if r.target != r.lastWaypoint() || r.adjustedPrev != nil {
		r.CommitWaypoint()
	}
	return r.finish()
}

func (r *Router) finish() *document.Wire {
	points := dedupe(r.waypoints)
	if len(points) < 2 {
		r.Cancel()
		return nil
	}

	wire := &document.Wire{
		Points:    points,
		Width:     r.cfg.WireWidth,
		StartConn: r.startConn,
		EndConn:   r.endConn,
	}
	r.reset()
	if r.OnFinished != nil {
		r.OnFinished(wire)
	}
	return wire
}

// Cancel discards all accumulated state. Idempotent: safe to call when
// not routing. A cancelled session leaves no trace on the document.
func (r *Router) Cancel() {
	if r.state != StateRouting {
		return
	}
	r.reset()
	if r.OnCancelled != nil {
		r.OnCancelled()
	}
}

func (r *Router) reset() {
	r.state = StateIdle
	r.waypoints = nil
	r.startConn = nil
	r.endConn = nil
	r.axis = AxisNone
	r.pendingCorner = nil
	r.adjustedPrev = nil
	r.activePin = nil
}

// Preview returns the committed waypoints (with any provisional
// adjustment applied), the pending corner and the live target, in draw
// order. Empty when idle.
func (r *Router) Preview() []geometry.Point {
	if r.state != StateRouting {
		return nil
	}
	pts := append([]geometry.Point{}, r.waypoints...)
	if r.adjustedPrev != nil {
		pts[len(pts)-1] = *r.adjustedPrev
	}
	if r.pendingCorner != nil {
		pts = append(pts, *r.pendingCorner)
	}
	if r.target != pts[len(pts)-1] {
		pts = append(pts, r.target)
	}
	return pts
}

// Waypoints returns the committed waypoint list
func (r *Router) Waypoints() []geometry.Point { return r.waypoints }

// Axis returns the current axis lock
func (r *Router) Axis() Axis { return r.axis }

func (r *Router) lastWaypoint() geometry.Point {
	return r.waypoints[len(r.waypoints)-1]
}

// nearestPin returns the closest pin within the detection radius of p,
// skipping pins within the snap threshold of exclude (the wire's own
// start point on the first segment)
func (r *Router) nearestPin(p geometry.Point, exclude *geometry.Point) *document.PinPosition {
	if r.locator == nil {
		return nil
	}
	var best *document.PinPosition
	bestDist := r.cfg.PinDetectRadius
	for _, pin := range r.locator.AllPins() {
		if exclude != nil && pin.Position.Distance(*exclude) <= r.cfg.PinSnapThreshold {
			continue
		}
		d := pin.Position.Distance(p)
		if d <= bestDist {
			pinCopy := pin
			best = &pinCopy
			bestDist = d
		}
	}
	return best
}

// isStartPin reports whether pin is the pin the wire started on
func (r *Router) isStartPin(pin *document.PinPosition) bool {
	if pin == nil {
		return false
	}
	if r.startConn != nil {
		return *r.startConn == pin.Ref
	}
	return len(r.waypoints) > 0 && pin.Position == r.waypoints[0]
}

// dedupe removes consecutive duplicate points
func dedupe(points []geometry.Point) []geometry.Point {
	if len(points) == 0 {
		return nil
	}
	out := []geometry.Point{points[0]}
	for _, p := range points[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
