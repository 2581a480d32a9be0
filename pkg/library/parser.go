package library

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

// symbolLexer defines the lexical structure of .otsym files
var symbolLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - # to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Literals
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Number", Pattern: `[-+]?\d+(\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	// Punctuation
	{Name: "Brace", Pattern: `[{}]`},
})

// symbolParser is built once; participle parsers are safe for reuse
var symbolParser = participle.MustBuild[libraryAST](
	participle.Lexer(symbolLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Grammar nodes. The DSL is line-oriented:
//
//	symbol "Device:R" {
//	    reference "R"
//	    value "R"
//	    body -1.016 -2.54 1.016 2.54
//	    pin "1" at 0 -3.81 name "A"
//	    line -0.508 -1.524 0.508 -1.524
//	    rect -1.016 -2.54 1.016 2.54
//	    circle 0 0 0.635
//	}
type libraryAST struct {
	Symbols []*symbolNode `parser:"@@*"`
}

type symbolNode struct {
	Name    string       `parser:"'symbol' @String"`
	Entries []*entryNode `parser:"'{' @@* '}'"`
}

type entryNode struct {
	Reference *string     `parser:"'reference' @String"`
	Value     *string     `parser:"| 'value' @String"`
	Body      *boxNode    `parser:"| 'body' @@"`
	Pin       *pinNode    `parser:"| @@"`
	Line      *lineNode   `parser:"| @@"`
	Rect      *rectNode   `parser:"| @@"`
	Circle    *circleNode `parser:"| @@"`
}

type boxNode struct {
	MinX float64 `parser:"@Number"`
	MinY float64 `parser:"@Number"`
	MaxX float64 `parser:"@Number"`
	MaxY float64 `parser:"@Number"`
}

type pinNode struct {
	Number string   `parser:"'pin' @String"`
	X      float64  `parser:"'at' @Number"`
	Y      float64  `parser:"@Number"`
	Name   *string  `parser:"('name' @String)?"`
}

type lineNode struct {
	X1 float64 `parser:"'line' @Number"`
	Y1 float64 `parser:"@Number"`
	X2 float64 `parser:"@Number"`
	Y2 float64 `parser:"@Number"`
}

type rectNode struct {
	X1 float64 `parser:"'rect' @Number"`
	Y1 float64 `parser:"@Number"`
	X2 float64 `parser:"@Number"`
	Y2 float64 `parser:"@Number"`
}

type circleNode struct {
	X float64 `parser:"'circle' @Number"`
	Y float64 `parser:"@Number"`
	R float64 `parser:"@Number"`
}

// parseLibrary parses .otsym source into symbol definitions
func parseLibrary(input string) ([]*SymbolDef, error) {
	ast, err := symbolParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	defs := make([]*SymbolDef, 0, len(ast.Symbols))
	for _, node := range ast.Symbols {
		def, err := buildSymbol(node)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func buildSymbol(node *symbolNode) (*SymbolDef, error) {
	def := &SymbolDef{Name: node.Name}

	for _, e := range node.Entries {
		switch {
		case e.Reference != nil:
			def.Reference = *e.Reference
		case e.Value != nil:
			def.Value = *e.Value
		case e.Body != nil:
			def.BodyMin = geometry.Point{X: e.Body.MinX, Y: e.Body.MinY}
			def.BodyMax = geometry.Point{X: e.Body.MaxX, Y: e.Body.MaxY}
		case e.Pin != nil:
			pin := document.Pin{
				Number: e.Pin.Number,
				Offset: geometry.Point{X: e.Pin.X, Y: e.Pin.Y},
			}
			if e.Pin.Name != nil {
				pin.Name = *e.Pin.Name
			}
			def.Pins = append(def.Pins, pin)
		case e.Line != nil:
			def.Graphics = append(def.Graphics, Graphic{
				Kind:  GraphicLine,
				Start: geometry.Point{X: e.Line.X1, Y: e.Line.Y1},
				End:   geometry.Point{X: e.Line.X2, Y: e.Line.Y2},
			})
		case e.Rect != nil:
			def.Graphics = append(def.Graphics, Graphic{
				Kind:  GraphicRect,
				Start: geometry.Point{X: e.Rect.X1, Y: e.Rect.Y1},
				End:   geometry.Point{X: e.Rect.X2, Y: e.Rect.Y2},
			})
		case e.Circle != nil:
			def.Graphics = append(def.Graphics, Graphic{
				Kind:   GraphicCircle,
				Center: geometry.Point{X: e.Circle.X, Y: e.Circle.Y},
				Radius: e.Circle.R,
			})
		}
	}

	// A symbol with no explicit body gets one from its graphics and pins
	if def.BodyMin == (geometry.Point{}) && def.BodyMax == (geometry.Point{}) {
		bb := geometry.NewBoundingBox()
		for _, g := range def.Graphics {
			switch g.Kind {
			case GraphicCircle:
				bb.Expand(geometry.Point{X: g.Center.X - g.Radius, Y: g.Center.Y - g.Radius})
				bb.Expand(geometry.Point{X: g.Center.X + g.Radius, Y: g.Center.Y + g.Radius})
			default:
				bb.Expand(g.Start)
				bb.Expand(g.End)
			}
		}
		for _, pin := range def.Pins {
			bb.Expand(pin.Offset)
		}
		if !bb.IsEmpty() {
			def.BodyMin, def.BodyMax = bb.Min, bb.Max
		}
	}

	if len(def.Pins) == 0 {
		return nil, fmt.Errorf("symbol %q has no pins", def.Name)
	}
	return def, nil
}
