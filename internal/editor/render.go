package editor

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/routing"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/viewport"
)

// Global theme for canvas text rendering
var textTheme = material.NewTheme()

func init() {
	textTheme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
}

// strokeWidth converts a world stroke width to screen pixels with a
// 1 px floor so thin strokes stay visible at low zoom
func strokeWidth(vp *viewport.Viewport, worldWidth float64) float32 {
	w := float32(worldWidth * vp.Scale())
	if w < 1 {
		return 1
	}
	return w
}

func screenPt(vp *viewport.Viewport, p geometry.Point) f32.Point {
	x, y := vp.WorldToScreen(p)
	return f32.Pt(float32(x), float32(y))
}

// strokePolyline strokes a world-space polyline on the canvas
func strokePolyline(gtx layout.Context, vp *viewport.Viewport, points []geometry.Point, col color.NRGBA, width float32) {
	if len(points) < 2 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(screenPt(vp, points[0]))
	for _, p := range points[1:] {
		path.LineTo(screenPt(vp, p))
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op())
}

// fillPolygon fills a closed world-space polygon
func fillPolygon(gtx layout.Context, vp *viewport.Viewport, points []geometry.Point, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(screenPt(vp, points[0]))
	for _, p := range points[1:] {
		path.LineTo(screenPt(vp, p))
	}
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func fillCircle(gtx layout.Context, vp *viewport.Viewport, center geometry.Point, radiusPx float32, col color.NRGBA) {
	c := screenPt(vp, center)
	paint.FillShape(gtx.Ops, col, clip.Ellipse{
		Min: image.Pt(int(c.X-radiusPx), int(c.Y-radiusPx)),
		Max: image.Pt(int(c.X+radiusPx), int(c.Y+radiusPx)),
	}.Op(gtx.Ops))
}

func strokeCircle(gtx layout.Context, vp *viewport.Viewport, center geometry.Point, radius float64, col color.NRGBA, width float32) {
	c := screenPt(vp, center)
	r := float32(radius * vp.Scale())
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path: clip.Ellipse{
			Min: image.Pt(int(c.X-r), int(c.Y-r)),
			Max: image.Pt(int(c.X+r), int(c.Y+r)),
		}.Path(gtx.Ops),
		Width: width,
	}.Op())
}

func rectCorners(min, max geometry.Point) []geometry.Point {
	return []geometry.Point{
		min,
		{X: max.X, Y: min.Y},
		max,
		{X: min.X, Y: max.Y},
		min,
	}
}

// RenderGrid draws grid dots for the visible region. The grid fades
// out when dots would pack closer than a few pixels.
func RenderGrid(gtx layout.Context, vp *viewport.Viewport, colors *EditorColors) {
	grid := vp.GridSize
	if grid <= 0 {
		return
	}
	spacing := grid * vp.Scale()
	for spacing < 8 {
		grid *= 2
		spacing = grid * vp.Scale()
	}

	visible := vp.VisibleBounds()
	startX := float64(int(visible.Min.X/grid)) * grid
	startY := float64(int(visible.Min.Y/grid)) * grid

	for x := startX; x <= visible.Max.X; x += grid {
		for y := startY; y <= visible.Max.Y; y += grid {
			sx, sy := vp.WorldToScreen(geometry.Point{X: x, Y: y})
			paint.FillShape(gtx.Ops, colors.Grid, clip.Rect{
				Min: image.Pt(int(sx), int(sy)),
				Max: image.Pt(int(sx)+1, int(sy)+1),
			}.Op())
		}
	}

	// Origin crosshair
	const arm = 2.54
	strokePolyline(gtx, vp, []geometry.Point{{X: -arm, Y: 0}, {X: arm, Y: 0}}, colors.Origin, 1)
	strokePolyline(gtx, vp, []geometry.Point{{X: 0, Y: -arm}, {X: 0, Y: arm}}, colors.Origin, 1)
}

// RenderDocument draws all visible items back to front, then the
// selection and hover overlays on top
func RenderDocument(gtx layout.Context, vp *viewport.Viewport, doc *document.Document, colors *EditorColors) {
	visible := vp.VisibleBounds()

	for _, item := range doc.Items() {
		if !item.Base().Visible() {
			continue
		}
		if !item.Bounds().Intersects(visible) {
			continue
		}
		renderItem(gtx, vp, item, colors)
	}

	for _, item := range doc.Items() {
		base := item.Base()
		if !base.Visible() {
			continue
		}
		if base.Selected {
			renderHighlightBox(gtx, vp, item.Bounds(), colors.Selection)
		} else if base.Hovered {
			renderHighlightBox(gtx, vp, item.Bounds(), colors.Hover)
		}
	}
}

func renderItem(gtx layout.Context, vp *viewport.Viewport, item document.Item, colors *EditorColors) {
	switch it := item.(type) {
	case *document.Line:
		strokePolyline(gtx, vp, []geometry.Point{it.Start, it.End}, colors.Graphic, strokeWidth(vp, it.Width))

	case *document.Rect:
		corners := rectCorners(it.Min, it.Max)
		if it.Filled {
			fillPolygon(gtx, vp, corners[:4], colors.GraphicFill)
		}
		strokePolyline(gtx, vp, corners, colors.Graphic, strokeWidth(vp, it.Width))

	case *document.Circle:
		if it.Filled {
			fillCircle(gtx, vp, it.Center, float32(it.Radius*vp.Scale()), colors.GraphicFill)
		}
		strokeCircle(gtx, vp, it.Center, it.Radius, colors.Graphic, strokeWidth(vp, it.Width))

	case *document.Arc:
		strokePolyline(gtx, vp, it.Flatten(), colors.Graphic, strokeWidth(vp, it.Width))

	case *document.Polyline:
		pts := it.Points
		if it.Closed && len(pts) > 2 {
			if it.Filled {
				fillPolygon(gtx, vp, pts, colors.GraphicFill)
			}
			pts = append(append([]geometry.Point{}, pts...), pts[0])
		}
		strokePolyline(gtx, vp, pts, colors.Graphic, strokeWidth(vp, it.Width))

	case *document.Text:
		renderWorldText(gtx, vp, it.Position, it.Text, it.Size, colors.Text)

	case *document.Component:
		renderComponent(gtx, vp, it, colors)

	case *document.Wire:
		renderWire(gtx, vp, it, colors)
	}
}

func renderComponent(gtx layout.Context, vp *viewport.Viewport, comp *document.Component, colors *EditorColors) {
	// Body box, transformed through the component bounds
	bb := comp.Bounds()
	corners := rectCorners(bb.Min, bb.Max)
	fillPolygon(gtx, vp, corners[:4], colors.SymbolFill)
	strokePolyline(gtx, vp, corners, colors.SymbolBody, 1.5)

	// Pins as small circles with a stub toward the body
	pinRadius := float32(0.3 * vp.Scale())
	if pinRadius < 2 {
		pinRadius = 2
	}
	for _, pin := range comp.Pins {
		fillCircle(gtx, vp, comp.PinPosition(pin), pinRadius, colors.Pin)
	}

	// Reference above the body, value below
	const labelSize = 1.27
	refPos := geometry.Point{X: bb.Min.X, Y: bb.Min.Y - labelSize*1.4}
	valPos := geometry.Point{X: bb.Min.X, Y: bb.Max.Y + labelSize*0.4}
	if comp.Reference != "" {
		renderWorldText(gtx, vp, refPos, comp.Reference, labelSize, colors.Reference)
	}
	if comp.Value != "" {
		renderWorldText(gtx, vp, valPos, comp.Value, labelSize, colors.Value)
	}
}

func renderWire(gtx layout.Context, vp *viewport.Viewport, wire *document.Wire, colors *EditorColors) {
	col := colors.Wire
	if wire.Hovered {
		col = colors.WireHover
	}
	strokePolyline(gtx, vp, wire.Points, col, strokeWidth(vp, wire.Width))

	// Connection dots on pinned endpoints
	dotRadius := float32(0.4 * vp.Scale())
	if dotRadius < 2 {
		dotRadius = 2
	}
	if wire.StartConn != nil && len(wire.Points) > 0 {
		fillCircle(gtx, vp, wire.Points[0], dotRadius, colors.Junction)
	}
	if wire.EndConn != nil && len(wire.Points) > 0 {
		fillCircle(gtx, vp, wire.Points[len(wire.Points)-1], dotRadius, colors.Junction)
	}
}

func renderHighlightBox(gtx layout.Context, vp *viewport.Viewport, bb geometry.BoundingBox, col color.NRGBA) {
	if bb.IsEmpty() {
		return
	}
	strokePolyline(gtx, vp, rectCorners(bb.Min, bb.Max), col, 2)
}

// RenderRoutePreview draws the in-progress wire and the active snap pin
func RenderRoutePreview(gtx layout.Context, vp *viewport.Viewport, router *routing.Router, colors *EditorColors) {
	if !router.Active() {
		return
	}
	strokePolyline(gtx, vp, router.Preview(), colors.RoutePreview, 2)

	if pin := router.ActivePin(); pin != nil {
		strokeCircle(gtx, vp, pin.Position, 1.0, colors.PinSnap, 2)
	}
}

// RenderRubberBand draws the drag-select rectangle in screen space
func RenderRubberBand(gtx layout.Context, min, max f32.Point, colors *EditorColors) {
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	r := clip.Rect{
		Min: image.Pt(int(min.X), int(min.Y)),
		Max: image.Pt(int(max.X), int(max.Y)),
	}
	paint.FillShape(gtx.Ops, colors.RubberBand, r.Op())
	paint.FillShape(gtx.Ops, colors.Selection, clip.Stroke{
		Path:  r.Path(),
		Width: 1,
	}.Op())
}

// renderWorldText draws text anchored at a world position. Glyph height
// tracks the zoom level; text below ~4 px is skipped.
func renderWorldText(gtx layout.Context, vp *viewport.Viewport, pos geometry.Point, str string, size float64, col color.NRGBA) {
	px := size * vp.Scale()
	if px < 4 || str == "" {
		return
	}

	x, y := vp.WorldToScreen(pos)
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
	defer stack.Pop()

	lbl := material.Label(textTheme, unit.Sp(px), str)
	lbl.Color = col
	lbl.Layout(gtx)
}
