package otsexp

import (
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	nodes, err := ParseString(`(otsch (version 1) (generator "ote"))`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 top-level node, got %d", len(nodes))
	}

	root := nodes[0]
	if root.Key() != "otsch" {
		t.Errorf("Expected key otsch, got %q", root.Key())
	}

	ver := root.Child("version")
	if ver == nil {
		t.Fatalf("Missing (version)")
	}
	if v, err := ver.IntArg(0); err != nil || v != 1 {
		t.Errorf("Expected version 1, got %d (%v)", v, err)
	}

	gen := root.Child("generator")
	if gen == nil || gen.Arg(0) == nil || !gen.Arg(0).IsString {
		t.Fatalf("Missing quoted generator")
	}
	if s, _ := gen.StringArg(0); s != "ote" {
		t.Errorf("Expected generator ote, got %q", s)
	}
}

func TestParseCommentsAndWhitespace(t *testing.T) {
	input := `
# file header comment
(a
	(b 1) # trailing comment
	(b 2)
)
`
	nodes, err := ParseString(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}
	bs := nodes[0].Children("b")
	if len(bs) != 2 {
		t.Errorf("Expected 2 (b) children, got %d", len(bs))
	}
}

func TestParseStringEscapes(t *testing.T) {
	nodes, err := ParseString(`(text "line1\nline2 \"quoted\"")`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s, err := nodes[0].StringArg(0)
	if err != nil {
		t.Fatalf("StringArg failed: %v", err)
	}
	if s != "line1\nline2 \"quoted\"" {
		t.Errorf("Escapes not decoded: %q", s)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		`(unclosed`,
		`)`,
		`(bad "unterminated`,
	}
	for _, input := range cases {
		if _, err := ParseString(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}

func TestBoolArg(t *testing.T) {
	nodes, err := ParseString(`(flags (snap yes) (lock no) (bad maybe))`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root := nodes[0]

	if v, err := root.Child("snap").BoolArg(0); err != nil || !v {
		t.Errorf("Expected snap yes, got %v (%v)", v, err)
	}
	if v, err := root.Child("lock").BoolArg(0); err != nil || v {
		t.Errorf("Expected lock no, got %v (%v)", v, err)
	}
	if _, err := root.Child("bad").BoolArg(0); err == nil {
		t.Errorf("Expected error for a non-boolean flag")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	root := NewList("otsch",
		NewList("version", Int(1)),
		NewList("grid", Num(1.27)),
		NewList("text", Str("hello \"world\""),
			NewList("at", Num(0), Num(0))),
	)

	out := root.Format()
	nodes, err := ParseString(out)
	if err != nil {
		t.Fatalf("Reparse of formatted output failed: %v\n%s", err, out)
	}

	back := nodes[0]
	if g, err := back.Child("grid").FloatArg(0); err != nil || g != 1.27 {
		t.Errorf("Grid lost in round trip: %f (%v)", g, err)
	}
	if s, _ := back.Child("text").StringArg(0); s != "hello \"world\"" {
		t.Errorf("Quoted string lost in round trip: %q", s)
	}
}

func TestFlatListsOnOneLine(t *testing.T) {
	node := NewList("xy", Num(1.5), Num(-2))
	if out := node.Format(); strings.Contains(strings.TrimSuffix(out, "\n"), "\n") {
		t.Errorf("Flat list split across lines: %q", out)
	}
}
