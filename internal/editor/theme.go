package editor

import "image/color"

// ColorTheme selects a rendering color scheme
type ColorTheme int

const (
	// ThemeLight is a light background theme (white background)
	ThemeLight ColorTheme = iota
	// ThemeDark is a dark background theme (near-black background)
	ThemeDark
)

func (t ColorTheme) String() string {
	if t == ThemeDark {
		return "Dark"
	}
	return "Light"
}

// EditorColors defines the color scheme for rendering schematic elements
type EditorColors struct {
	// Background and grid
	Background color.NRGBA
	Grid       color.NRGBA
	Origin     color.NRGBA

	// Wires and connections
	Wire      color.NRGBA
	WireHover color.NRGBA
	Junction  color.NRGBA

	// Graphics (lines, rects, circles, arcs, polylines)
	Graphic     color.NRGBA
	GraphicFill color.NRGBA

	// Components
	SymbolBody color.NRGBA
	SymbolFill color.NRGBA
	Pin        color.NRGBA
	PinSnap    color.NRGBA

	// Text and annotations
	Text      color.NRGBA
	Reference color.NRGBA
	Value     color.NRGBA

	// Interaction feedback
	Selection    color.NRGBA
	Hover        color.NRGBA
	RubberBand   color.NRGBA
	RoutePreview color.NRGBA
}

// GetEditorColors returns the color scheme for the given theme
func GetEditorColors(theme ColorTheme) *EditorColors {
	if theme == ThemeDark {
		return getDarkColors()
	}
	return getLightColors()
}

func getLightColors() *EditorColors {
	return &EditorColors{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Grid:       color.NRGBA{R: 220, G: 220, B: 220, A: 255},
		Origin:     color.NRGBA{R: 180, G: 180, B: 180, A: 255},

		Wire:      color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		WireHover: color.NRGBA{R: 0, G: 180, B: 0, A: 255},
		Junction:  color.NRGBA{R: 0, G: 132, B: 0, A: 255},

		Graphic:     color.NRGBA{R: 0, G: 0, B: 132, A: 255},
		GraphicFill: color.NRGBA{R: 194, G: 194, B: 255, A: 128},

		SymbolBody: color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		SymbolFill: color.NRGBA{R: 255, G: 255, B: 194, A: 128},
		Pin:        color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		PinSnap:    color.NRGBA{R: 255, G: 128, B: 0, A: 255},

		Text:      color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Reference: color.NRGBA{R: 0, G: 100, B: 100, A: 255},
		Value:     color.NRGBA{R: 0, G: 100, B: 100, A: 255},

		Selection:    color.NRGBA{R: 255, G: 0, B: 0, A: 128},
		Hover:        color.NRGBA{R: 255, G: 165, B: 0, A: 128},
		RubberBand:   color.NRGBA{R: 0, G: 120, B: 215, A: 64},
		RoutePreview: color.NRGBA{R: 0, G: 132, B: 0, A: 160},
	}
}

func getDarkColors() *EditorColors {
	return &EditorColors{
		Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
		Grid:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},
		Origin:     color.NRGBA{R: 100, G: 100, B: 100, A: 255},

		Wire:      color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		WireHover: color.NRGBA{R: 128, G: 255, B: 128, A: 255},
		Junction:  color.NRGBA{R: 0, G: 255, B: 0, A: 255},

		Graphic:     color.NRGBA{R: 100, G: 150, B: 255, A: 255},
		GraphicFill: color.NRGBA{R: 60, G: 80, B: 140, A: 128},

		SymbolBody: color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		SymbolFill: color.NRGBA{R: 80, G: 80, B: 40, A: 128},
		Pin:        color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		PinSnap:    color.NRGBA{R: 255, G: 180, B: 0, A: 255},

		Text:      color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		Reference: color.NRGBA{R: 100, G: 220, B: 220, A: 255},
		Value:     color.NRGBA{R: 100, G: 220, B: 220, A: 255},

		Selection:    color.NRGBA{R: 255, G: 80, B: 80, A: 160},
		Hover:        color.NRGBA{R: 255, G: 200, B: 0, A: 128},
		RubberBand:   color.NRGBA{R: 0, G: 150, B: 255, A: 64},
		RoutePreview: color.NRGBA{R: 0, G: 255, B: 0, A: 160},
	}
}
