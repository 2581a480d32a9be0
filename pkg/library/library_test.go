package library

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

func TestParseSymbol(t *testing.T) {
	lib := NewLibrary()
	err := lib.LoadString(`
# test library
symbol "Device:R" {
    reference "R"
    value "R"
    body -1.016 -2.54 1.016 2.54
    rect -1.016 -2.54 1.016 2.54
    pin "1" at 0 -3.81
    pin "2" at 0 3.81 name "B"
}
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	def := lib.Get("Device:R")
	if def == nil {
		t.Fatalf("Symbol not registered")
	}
	if def.Reference != "R" || def.Value != "R" {
		t.Errorf("Unexpected reference %q value %q", def.Reference, def.Value)
	}
	if def.BodyMin != (geometry.Point{X: -1.016, Y: -2.54}) {
		t.Errorf("Unexpected body min %v", def.BodyMin)
	}
	if len(def.Pins) != 2 {
		t.Fatalf("Expected 2 pins, got %d", len(def.Pins))
	}
	if def.Pins[0].Number != "1" || def.Pins[0].Offset != (geometry.Point{X: 0, Y: -3.81}) {
		t.Errorf("Unexpected pin 1: %+v", def.Pins[0])
	}
	if def.Pins[1].Name != "B" {
		t.Errorf("Pin name not parsed: %+v", def.Pins[1])
	}
	if len(def.Graphics) != 1 || def.Graphics[0].Kind != GraphicRect {
		t.Errorf("Body graphics not parsed: %+v", def.Graphics)
	}
}

func TestDerivedBodyBounds(t *testing.T) {
	lib := NewLibrary()
	err := lib.LoadString(`
symbol "Test:Box" {
    reference "U"
    line -2 0 2 0
    pin "1" at -4 0
    pin "2" at 4 0
}
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	def := lib.Get("Test:Box")
	if def == nil {
		t.Fatalf("Symbol not registered")
	}
	// Without an explicit body the bounds derive from graphics and pins
	if def.BodyMin.X > -4 || def.BodyMax.X < 4 {
		t.Errorf("Derived body does not cover pins: %v %v", def.BodyMin, def.BodyMax)
	}
}

func TestSymbolWithoutPinsRejected(t *testing.T) {
	lib := NewLibrary()
	err := lib.LoadString(`
symbol "Test:Bad" {
    reference "U"
    rect -1 -1 1 1
}
`)
	if err == nil {
		t.Errorf("Expected an error for a symbol with no pins")
	}
	if err != nil && !strings.Contains(err.Error(), "Test:Bad") {
		t.Errorf("Error does not name the symbol: %v", err)
	}
}

func TestParseErrorReported(t *testing.T) {
	lib := NewLibrary()
	if err := lib.LoadString(`symbol "Broken" {`); err == nil {
		t.Errorf("Expected a parse error for unterminated symbol")
	}
}

func TestInstantiateAssignsReferences(t *testing.T) {
	lib := Builtin()

	r1, err := lib.Instantiate("Device:R", geometry.Point{X: 10, Y: 20})
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	r2, _ := lib.Instantiate("Device:R", geometry.Point{})
	c1, _ := lib.Instantiate("Device:C", geometry.Point{})

	if r1.Reference != "R1" || r2.Reference != "R2" {
		t.Errorf("Resistor references not sequential: %q %q", r1.Reference, r2.Reference)
	}
	if c1.Reference != "C1" {
		t.Errorf("Capacitor counter not independent: %q", c1.Reference)
	}
	if r1.Origin != (geometry.Point{X: 10, Y: 20}) {
		t.Errorf("Origin not applied: %v", r1.Origin)
	}
	if len(r1.Pins) != 2 {
		t.Errorf("Pins not copied: %d", len(r1.Pins))
	}

	// Pin slices must not be shared between instances
	r1.Pins[0].Number = "X"
	if r2.Pins[0].Number == "X" {
		t.Errorf("Instances share a pin slice")
	}
}

func TestInstantiateUnknownSymbol(t *testing.T) {
	lib := Builtin()
	if _, err := lib.Instantiate("Device:Nope", geometry.Point{}); err == nil {
		t.Errorf("Expected an error for an unknown symbol")
	}
}

func TestBuiltinSymbols(t *testing.T) {
	lib := Builtin()
	for _, name := range []string{"Device:R", "Device:C", "Device:LED", "Connector:Conn_01x02"} {
		if lib.Get(name) == nil {
			t.Errorf("Missing builtin symbol %q", name)
		}
	}

	names := lib.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names not sorted: %v", names)
		}
	}
}

func TestLoadReplacesExisting(t *testing.T) {
	lib := Builtin()
	err := lib.LoadString(`
symbol "Device:R" {
    reference "R"
    value "custom"
    body -1 -1 1 1
    pin "1" at 0 -2
    pin "2" at 0 2
}
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	if lib.Get("Device:R").Value != "custom" {
		t.Errorf("Reloaded symbol did not replace the builtin")
	}
}
