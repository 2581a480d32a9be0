package viewport

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

func TestScreenWorldInversion(t *testing.T) {
	v := New(1200, 800)
	v.CenterX = 33.5
	v.CenterY = -12.25

	points := []geometry.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 50},
		{X: -75.5, Y: 33.3},
		{X: 1e4, Y: -1e4},
	}

	for _, p := range points {
		sx, sy := v.WorldToScreen(p)
		back := v.ScreenToWorld(sx, sy)
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("Round trip of %v gave %v", p, back)
		}
	}
}

func TestZoomKeepsFocusStationary(t *testing.T) {
	v := New(1200, 800)
	v.CenterX = 10
	v.CenterY = 20

	focus := geometry.Point{X: 42.5, Y: -7.75}
	beforeX, beforeY := v.WorldToScreen(focus)

	for _, level := range []int{0, 3, 7, v.MaxLevel(), 5} {
		v.ZoomToLevel(level, focus)
		afterX, afterY := v.WorldToScreen(focus)
		if math.Abs(afterX-beforeX) > 1e-6 || math.Abs(afterY-beforeY) > 1e-6 {
			t.Errorf("Level %d moved focus from (%.4f,%.4f) to (%.4f,%.4f)",
				level, beforeX, beforeY, afterX, afterY)
		}
	}
}

func TestZoomLevelClamped(t *testing.T) {
	v := New(800, 600)

	v.ZoomToLevel(-5, geometry.Point{})
	if v.Level() != 0 {
		t.Errorf("Expected level clamped to 0, got %d", v.Level())
	}

	v.ZoomToLevel(999, geometry.Point{})
	if v.Level() != v.MaxLevel() {
		t.Errorf("Expected level clamped to %d, got %d", v.MaxLevel(), v.Level())
	}
}

func TestZoomLadderProgression(t *testing.T) {
	v := New(800, 600)
	prev := math.Inf(1)
	for i := 0; i <= v.MaxLevel(); i++ {
		v.ZoomToLevel(i, geometry.Point{})
		w := v.VisibleWidth()
		if w >= prev {
			t.Errorf("Ladder not strictly narrowing at level %d: %f >= %f", i, w, prev)
		}
		prev = w
	}
}

func TestSnap(t *testing.T) {
	v := New(800, 600)
	v.GridSize = 1.0

	p := v.Snap(geometry.Point{X: 3.2, Y: 2.9})
	if p.X != 3 || p.Y != 3 {
		t.Errorf("Expected (3,3), got %v", p)
	}

	p = v.Snap(geometry.Point{X: -0.6, Y: 0.4})
	if p.X != -1 || p.Y != 0 {
		t.Errorf("Expected (-1,0), got %v", p)
	}

	v.SnapEnabled = false
	p = v.Snap(geometry.Point{X: 3.2, Y: 2.9})
	if p.X != 3.2 || p.Y != 2.9 {
		t.Errorf("Disabled snap should be identity, got %v", p)
	}
}

func TestPan(t *testing.T) {
	v := New(800, 600)
	v.Pan(10, -5)
	if v.CenterX != 10 || v.CenterY != -5 {
		t.Errorf("Expected center (10,-5), got (%f,%f)", v.CenterX, v.CenterY)
	}

	// Screen-space panning moves content with the pointer
	v = New(800, 600)
	v.ZoomToLevel(6, geometry.Point{}) // 100mm wide -> 8 px/mm
	v.PanScreen(80, 0)
	if math.Abs(v.CenterX+10) > 1e-9 {
		t.Errorf("Expected center X -10 after 80px pan, got %f", v.CenterX)
	}
}

func TestFitToBounds(t *testing.T) {
	v := New(800, 800)

	bb := geometry.BoundingBox{
		Min: geometry.Point{X: 0, Y: 0},
		Max: geometry.Point{X: 90, Y: 40},
	}
	v.FitToBounds(bb, 10)

	// Padded width is 99mm: the 100mm ladder entry is the tightest fit
	if v.VisibleWidth() != 100 {
		t.Errorf("Expected visible width 100, got %f", v.VisibleWidth())
	}

	center := bb.Center()
	if v.CenterX != center.X || v.CenterY != center.Y {
		t.Errorf("Expected center %v, got (%f,%f)", center, v.CenterX, v.CenterY)
	}
}

func TestFitToBoundsDegenerate(t *testing.T) {
	v := New(800, 600)
	v.CenterX = 55
	v.ZoomToLevel(9, geometry.Point{})

	v.FitToBounds(geometry.NewBoundingBox(), 10)
	if v.Level() != DefaultLevel || v.CenterX != 0 || v.CenterY != 0 {
		t.Errorf("Empty bounds should reset to default view, got level %d center (%f,%f)",
			v.Level(), v.CenterX, v.CenterY)
	}

	// Zero-height content is degenerate too
	flat := geometry.BoundingBox{Min: geometry.Point{X: 0, Y: 5}, Max: geometry.Point{X: 10, Y: 5}}
	v.FitToBounds(flat, 10)
	if v.Level() != DefaultLevel {
		t.Errorf("Degenerate bounds should reset to default view, got level %d", v.Level())
	}
}

func TestVisibleBounds(t *testing.T) {
	v := New(800, 400)
	v.ZoomToLevel(6, geometry.Point{}) // 100mm wide, 50mm tall
	v.CenterX, v.CenterY = 10, 10

	bb := v.VisibleBounds()
	if bb.Min.X != -40 || bb.Max.X != 60 {
		t.Errorf("Expected X range [-40,60], got [%f,%f]", bb.Min.X, bb.Max.X)
	}
	if bb.Min.Y != -15 || bb.Max.Y != 35 {
		t.Errorf("Expected Y range [-15,35], got [%f,%f]", bb.Min.Y, bb.Max.Y)
	}
}
