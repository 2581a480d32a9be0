package library

// builtinSource is the symbol set available without loading any
// library file. Dimensions follow the 2.54 mm pin pitch.
const builtinSource = `
# Built-in symbols

symbol "Device:R" {
    reference "R"
    value "R"
    body -1.016 -2.54 1.016 2.54
    rect -1.016 -2.54 1.016 2.54
    pin "1" at 0 -3.81
    pin "2" at 0 3.81
}

symbol "Device:C" {
    reference "C"
    value "C"
    body -1.905 -0.762 1.905 0.762
    line -1.905 -0.762 1.905 -0.762
    line -1.905 0.762 1.905 0.762
    pin "1" at 0 -2.54
    pin "2" at 0 2.54
}

symbol "Device:LED" {
    reference "D"
    value "LED"
    body -1.27 -1.27 1.27 1.27
    circle 0 0 1.27
    pin "1" at -2.54 0 name "A"
    pin "2" at 2.54 0 name "K"
}

symbol "Connector:Conn_01x02" {
    reference "J"
    value "Conn_01x02"
    body -1.27 -2.54 1.27 2.54
    rect -1.27 -2.54 1.27 2.54
    pin "1" at -3.81 -1.27
    pin "2" at -3.81 1.27
}
`

// Builtin returns a library preloaded with the built-in symbol set
func Builtin() *Library {
	l := NewLibrary()
	if err := l.LoadString(builtinSource); err != nil {
		// The builtin source is a compile-time constant; a parse
		// failure here is a bug, not a runtime condition.
		panic(err)
	}
	return l
}
