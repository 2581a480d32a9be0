// Package geometry provides shared 2D primitives for the editor.
// All coordinates are world coordinates in millimeters.
package geometry

import "math"

// Point represents a 2D coordinate in world space
type Point struct {
	X float64 // X coordinate in mm
	Y float64 // Y coordinate in mm
}

// Add returns the point translated by (dx, dy)
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Distance returns the euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Point // Minimum (top-left) corner
	Max Point // Maximum (bottom-right) corner
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: 1e9, Y: 1e9},
		Max: Point{X: -1e9, Y: -1e9},
	}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Intersects checks if two bounding boxes intersect
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y
}

// Contains checks if a point is within the bounding box
func (bb BoundingBox) Contains(p Point) bool {
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y
}

// ContainsBox checks if another bounding box is fully inside this one
func (bb BoundingBox) ContainsBox(other BoundingBox) bool {
	return other.Min.X >= bb.Min.X && other.Max.X <= bb.Max.X &&
		other.Min.Y >= bb.Min.Y && other.Max.Y <= bb.Max.Y
}

// Expand expands the bounding box to include a point
func (bb *BoundingBox) Expand(p Point) {
	if p.X < bb.Min.X {
		bb.Min.X = p.X
	}
	if p.Y < bb.Min.Y {
		bb.Min.Y = p.Y
	}
	if p.X > bb.Max.X {
		bb.Max.X = p.X
	}
	if p.Y > bb.Max.Y {
		bb.Max.Y = p.Y
	}
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Inflated returns a copy grown by margin on all sides
func (bb BoundingBox) Inflated(margin float64) BoundingBox {
	return BoundingBox{
		Min: Point{X: bb.Min.X - margin, Y: bb.Min.Y - margin},
		Max: Point{X: bb.Max.X + margin, Y: bb.Max.Y + margin},
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Point {
	return Point{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

// Translate moves the bounding box by (dx, dy)
func (bb *BoundingBox) Translate(dx, dy float64) {
	bb.Min.X += dx
	bb.Min.Y += dy
	bb.Max.X += dx
	bb.Max.Y += dy
}

// SegmentDistance returns the distance from point p to the line segment a-b
func SegmentDistance(p, a, b Point) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return p.Distance(a)
	}

	// Project p onto the segment, clamped to [0,1]
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Point{X: a.X + t*abx, Y: a.Y + t*aby}
	return p.Distance(closest)
}

// PolylineDistance returns the minimum distance from p to any segment of the polyline
func PolylineDistance(p Point, points []Point) float64 {
	if len(points) == 0 {
		return math.Inf(1)
	}
	if len(points) == 1 {
		return p.Distance(points[0])
	}

	min := math.Inf(1)
	for i := 1; i < len(points); i++ {
		d := SegmentDistance(p, points[i-1], points[i])
		if d < min {
			min = d
		}
	}
	return min
}
