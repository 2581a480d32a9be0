// Package viewport owns the mapping between world coordinates (mm) and
// screen coordinates (pixels): the visible rectangle, a discrete zoom
// ladder, grid snapping, and fit-to-content.
package viewport

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

// zoomLadder is the 1-2-5 progression of visible-width values in mm,
// widest first. zoomToLevel indices are clamped into this table.
var zoomLadder = []float64{
	10000, 5000, 2000, 1000, 500, 200, 100, 50, 20, 10, 5, 2, 1,
}

// DefaultLevel shows a 500 mm wide view, comfortable for an A4 sheet
const DefaultLevel = 4

// Viewport maps between world space and screen space
type Viewport struct {
	// Center of the visible rectangle in world coordinates (mm)
	CenterX float64
	CenterY float64

	// Index into the zoom ladder
	level int

	// Render surface size in pixels
	ScreenWidth  int
	ScreenHeight int

	// Grid settings
	GridSize    float64 // grid spacing in mm
	SnapEnabled bool
}

// New creates a viewport with default settings
func New(screenWidth, screenHeight int) *Viewport {
	return &Viewport{
		level:        DefaultLevel,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		GridSize:     1.27,
		SnapEnabled:  true,
	}
}

// Level returns the current zoom-ladder index
func (v *Viewport) Level() int { return v.level }

// MaxLevel returns the highest valid zoom-ladder index
func (v *Viewport) MaxLevel() int { return len(zoomLadder) - 1 }

// VisibleWidth returns the world width of the visible rectangle in mm
func (v *Viewport) VisibleWidth() float64 { return zoomLadder[v.level] }

// VisibleHeight returns the world height of the visible rectangle in mm
func (v *Viewport) VisibleHeight() float64 {
	if v.ScreenWidth == 0 {
		return zoomLadder[v.level]
	}
	return zoomLadder[v.level] * float64(v.ScreenHeight) / float64(v.ScreenWidth)
}

// Scale returns the current pixels-per-mm factor
func (v *Viewport) Scale() float64 {
	return float64(v.ScreenWidth) / zoomLadder[v.level]
}

// WorldToScreen converts world coordinates (mm) to screen coordinates (pixels)
func (v *Viewport) WorldToScreen(p geometry.Point) (float64, float64) {
	s := v.Scale()
	x := (p.X-v.CenterX)*s + float64(v.ScreenWidth)/2.0
	y := (p.Y-v.CenterY)*s + float64(v.ScreenHeight)/2.0
	return x, y
}

// ScreenToWorld converts screen coordinates (pixels) to world coordinates (mm)
func (v *Viewport) ScreenToWorld(screenX, screenY float64) geometry.Point {
	s := v.Scale()
	return geometry.Point{
		X: (screenX-float64(v.ScreenWidth)/2.0)/s + v.CenterX,
		Y: (screenY-float64(v.ScreenHeight)/2.0)/s + v.CenterY,
	}
}

// Snap rounds each axis independently to the nearest grid multiple.
// Identity when snapping is disabled or the grid size is degenerate.
func (v *Viewport) Snap(p geometry.Point) geometry.Point {
	if !v.SnapEnabled || v.GridSize <= 0 {
		return p
	}
	return geometry.Point{
		X: math.Round(p.X/v.GridSize) * v.GridSize,
		Y: math.Round(p.Y/v.GridSize) * v.GridSize,
	}
}

// Pan translates the visible rectangle by world-space deltas
func (v *Viewport) Pan(dx, dy float64) {
	v.CenterX += dx
	v.CenterY += dy
}

// PanScreen translates the visible rectangle by screen-pixel deltas,
// moving the content with the pointer
func (v *Viewport) PanScreen(dx, dy float64) {
	s := v.Scale()
	v.CenterX -= dx / s
	v.CenterY -= dy / s
}

// ZoomToLevel clamps the index to the ladder and re-centers so that
// focus keeps the same screen position before and after the change
func (v *Viewport) ZoomToLevel(index int, focus geometry.Point) {
	if index < 0 {
		index = 0
	}
	if index >= len(zoomLadder) {
		index = len(zoomLadder) - 1
	}
	if index == v.level {
		return
	}

	// Screen position of the focus point before the change
	sx, sy := v.WorldToScreen(focus)

	v.level = index

	// Solve the new center so that focus maps back to (sx, sy)
	s := v.Scale()
	v.CenterX = focus.X - (sx-float64(v.ScreenWidth)/2.0)/s
	v.CenterY = focus.Y - (sy-float64(v.ScreenHeight)/2.0)/s
}

// ZoomIn steps one ladder level in, keeping focus stationary
func (v *Viewport) ZoomIn(focus geometry.Point) {
	v.ZoomToLevel(v.level+1, focus)
}

// ZoomOut steps one ladder level out, keeping focus stationary
func (v *Viewport) ZoomOut(focus geometry.Point) {
	v.ZoomToLevel(v.level-1, focus)
}

// FitToBounds chooses the largest ladder index whose visible width still
// covers the padded content, then centers on the content. Empty or
// degenerate content falls back to the default view.
func (v *Viewport) FitToBounds(bb geometry.BoundingBox, paddingPercent float64) {
	if bb.IsEmpty() || bb.Width() <= 0 || bb.Height() <= 0 {
		v.level = DefaultLevel
		v.CenterX, v.CenterY = 0, 0
		return
	}

	pad := 1.0 + paddingPercent/100.0
	needed := bb.Width() * pad
	if v.ScreenHeight > 0 && v.ScreenWidth > 0 {
		// Height converted to the width the aspect ratio demands
		byHeight := bb.Height() * pad * float64(v.ScreenWidth) / float64(v.ScreenHeight)
		if byHeight > needed {
			needed = byHeight
		}
	}

	level := 0
	for i := range zoomLadder {
		if zoomLadder[i] >= needed {
			level = i
		} else {
			break
		}
	}

	v.level = level
	center := bb.Center()
	v.CenterX, v.CenterY = center.X, center.Y
}

// VisibleBounds returns the visible rectangle in world coordinates,
// used by the renderer for culling
func (v *Viewport) VisibleBounds() geometry.BoundingBox {
	halfW := v.VisibleWidth() / 2.0
	halfH := v.VisibleHeight() / 2.0
	return geometry.BoundingBox{
		Min: geometry.Point{X: v.CenterX - halfW, Y: v.CenterY - halfH},
		Max: geometry.Point{X: v.CenterX + halfW, Y: v.CenterY + halfH},
	}
}

// SetScreenSize updates the viewport when the window is resized
func (v *Viewport) SetScreenSize(width, height int) {
	v.ScreenWidth = width
	v.ScreenHeight = height
}
