package document

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

func TestSaveParseRoundTrip(t *testing.T) {
	doc := New()
	doc.GridSize = 2.54
	doc.SnapEnabled = false

	comp := resistor()
	comp.Value = "10k"
	comp.Rotation = 90
	comp.Mirror = true
	compID := doc.AddItem(comp)

	line := &Line{Start: geometry.Point{X: 0, Y: 0}, End: geometry.Point{X: 10, Y: 0}, Width: 0.25}
	line.Locked = true
	doc.AddItem(line)

	doc.AddItem(&Text{Text: "Power \"rail\"", Position: geometry.Point{X: 1, Y: 2}, Size: 1.27})

	doc.AddItem(&Wire{
		Points:    []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}},
		Width:     0.15,
		StartConn: &PinRef{ComponentID: compID, PinNumber: "2"},
	})

	var sb strings.Builder
	if err := Save(&sb, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	parsed, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v\n%s", err, sb.String())
	}

	if parsed.GridSize != 2.54 {
		t.Errorf("Grid size not preserved: %f", parsed.GridSize)
	}
	if parsed.SnapEnabled {
		t.Errorf("Snap setting not preserved")
	}
	if parsed.Len() != doc.Len() {
		t.Fatalf("Expected %d items, got %d", doc.Len(), parsed.Len())
	}

	pc, ok := parsed.ItemByID(compID).(*Component)
	if !ok {
		t.Fatalf("Component did not keep its id %d", compID)
	}
	if pc.SymbolName != "Device:R" || pc.Value != "10k" || pc.Rotation != 90 || !pc.Mirror {
		t.Errorf("Component fields not preserved: %+v", pc)
	}
	if len(pc.Pins) != 2 || pc.Pins[0].Offset != comp.Pins[0].Offset {
		t.Errorf("Pins not preserved: %+v", pc.Pins)
	}
	if pc.BodyMin != comp.BodyMin || pc.BodyMax != comp.BodyMax {
		t.Errorf("Body bounds not preserved: %v %v", pc.BodyMin, pc.BodyMax)
	}

	pl, ok := parsed.ItemByID(line.ID()).(*Line)
	if !ok {
		t.Fatalf("Line did not keep its id")
	}
	if !pl.Locked {
		t.Errorf("Locked flag not preserved")
	}
	if pl.Start != line.Start || pl.End != line.End || pl.Width != 0.25 {
		t.Errorf("Line geometry not preserved: %+v", pl)
	}

	var pw *Wire
	for _, item := range parsed.Items() {
		if w, ok := item.(*Wire); ok {
			pw = w
		}
	}
	if pw == nil {
		t.Fatalf("Wire lost in round trip")
	}
	if len(pw.Points) != 3 || pw.Points[2] != (geometry.Point{X: 5, Y: 5}) {
		t.Errorf("Wire points not preserved: %v", pw.Points)
	}
	if pw.StartConn == nil || pw.StartConn.ComponentID != compID || pw.StartConn.PinNumber != "2" {
		t.Errorf("Wire connection not preserved: %+v", pw.StartConn)
	}
	if pw.EndConn != nil {
		t.Errorf("Absent end connection materialized: %+v", pw.EndConn)
	}

	var pt *Text
	for _, item := range parsed.Items() {
		if txt, ok := item.(*Text); ok {
			pt = txt
		}
	}
	if pt == nil || pt.Text != "Power \"rail\"" {
		t.Errorf("Quoted text not preserved: %+v", pt)
	}
}

func TestParsedIDsDoNotCollide(t *testing.T) {
	doc := New()
	doc.AddItem(&Line{End: geometry.Point{X: 1, Y: 0}})
	doc.AddItem(&Line{End: geometry.Point{X: 1, Y: 1}})

	var sb strings.Builder
	if err := Save(&sb, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	parsed, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	fresh := &Line{End: geometry.Point{X: 1, Y: 2}}
	id := parsed.AddItem(fresh)
	for _, item := range parsed.Items() {
		if item != fresh && item.Base().ID() == id {
			t.Fatalf("Fresh item collided with restored id %d", id)
		}
	}
}

func TestParseRejectsWrongRoot(t *testing.T) {
	if _, err := Parse(strings.NewReader("(kicad_sch (version 1))")); err == nil {
		t.Errorf("Expected an error for a foreign root node")
	}
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Errorf("Expected an error for empty input")
	}
}

func TestParseUnknownItemNode(t *testing.T) {
	input := "(otsch (version 1) (grid 1.27) (snap yes) (blob (id 1)))"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Errorf("Expected an error for an unknown item node")
	}
}
