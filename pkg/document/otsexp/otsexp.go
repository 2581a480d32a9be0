// Package otsexp provides the S-expression infrastructure for the
// .otsch document format: a streaming lexer, a parser producing a
// simple node tree, and a pretty-printing writer.
package otsexp

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one S-expression: either a leaf (symbol or quoted string)
// or a list of child nodes.
type Node struct {
	Value    string  // leaf value; unused for lists
	IsString bool    // leaf was/will be double-quoted
	List     []*Node // children; nil for leaves
}

// IsLeaf reports whether the node is an atom
func (n *Node) IsLeaf() bool { return n.List == nil }

// Key returns the first symbol of a list, or "" for leaves and
// lists not starting with a symbol
func (n *Node) Key() string {
	if n.IsLeaf() || len(n.List) == 0 {
		return ""
	}
	first := n.List[0]
	if first.IsLeaf() && !first.IsString {
		return first.Value
	}
	return ""
}

// Child finds the first child list with the given key
func (n *Node) Child(key string) *Node {
	if n.IsLeaf() {
		return nil
	}
	for _, c := range n.List {
		if !c.IsLeaf() && c.Key() == key {
			return c
		}
	}
	return nil
}

// Children finds all child lists with the given key
func (n *Node) Children(key string) []*Node {
	if n.IsLeaf() {
		return nil
	}
	var out []*Node
	for _, c := range n.List {
		if !c.IsLeaf() && c.Key() == key {
			out = append(out, c)
		}
	}
	return out
}

// Arg returns the i-th element after the key (Arg(0) is the first
// value), or nil when out of range
func (n *Node) Arg(i int) *Node {
	if n.IsLeaf() || i < 0 || i+1 >= len(n.List) {
		return nil
	}
	return n.List[i+1]
}

// ArgCount returns the number of elements after the key
func (n *Node) ArgCount() int {
	if n.IsLeaf() {
		return 0
	}
	return len(n.List) - 1
}

// FloatArg extracts the i-th argument as a float64
func (n *Node) FloatArg(i int) (float64, error) {
	a := n.Arg(i)
	if a == nil || !a.IsLeaf() {
		return 0, fmt.Errorf("(%s): missing numeric argument %d", n.Key(), i)
	}
	v, err := strconv.ParseFloat(a.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("(%s): argument %d: %w", n.Key(), i, err)
	}
	return v, nil
}

// IntArg extracts the i-th argument as an int64
func (n *Node) IntArg(i int) (int64, error) {
	a := n.Arg(i)
	if a == nil || !a.IsLeaf() {
		return 0, fmt.Errorf("(%s): missing integer argument %d", n.Key(), i)
	}
	v, err := strconv.ParseInt(a.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("(%s): argument %d: %w", n.Key(), i, err)
	}
	return v, nil
}

// StringArg extracts the i-th argument as a string (symbol or quoted)
func (n *Node) StringArg(i int) (string, error) {
	a := n.Arg(i)
	if a == nil || !a.IsLeaf() {
		return "", fmt.Errorf("(%s): missing string argument %d", n.Key(), i)
	}
	return a.Value, nil
}

// BoolArg extracts the i-th argument as a yes/no flag
func (n *Node) BoolArg(i int) (bool, error) {
	s, err := n.StringArg(i)
	if err != nil {
		return false, err
	}
	switch s {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("(%s): argument %d: expected yes/no, got %q", n.Key(), i, s)
}

// Builders used by the writer side

// Sym creates a bare symbol leaf
func Sym(v string) *Node { return &Node{Value: v} }

// Str creates a quoted string leaf
func Str(v string) *Node { return &Node{Value: v, IsString: true} }

// Num creates a numeric leaf with compact formatting
func Num(v float64) *Node {
	return &Node{Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Int creates an integer leaf
func Int(v int64) *Node {
	return &Node{Value: strconv.FormatInt(v, 10)}
}

// Bool creates a yes/no leaf
func Bool(v bool) *Node {
	if v {
		return Sym("yes")
	}
	return Sym("no")
}

// NewList creates a list node (key value...)
func NewList(key string, children ...*Node) *Node {
	list := make([]*Node, 0, len(children)+1)
	list = append(list, Sym(key))
	list = append(list, children...)
	return &Node{List: list}
}

// Append adds children to a list node and returns it
func (n *Node) Append(children ...*Node) *Node {
	n.List = append(n.List, children...)
	return n
}

// Format renders the node tree as indented text
func (n *Node) Format() string {
	var sb strings.Builder
	writeNode(&sb, n, 0)
	sb.WriteString("\n")
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, depth int) {
	if n.IsLeaf() {
		if n.IsString {
			sb.WriteString(strconv.Quote(n.Value))
		} else {
			sb.WriteString(n.Value)
		}
		return
	}

	// Lists without nested lists print on one line
	flat := true
	for _, c := range n.List {
		if !c.IsLeaf() {
			flat = false
			break
		}
	}

	sb.WriteString("(")
	if flat {
		for i, c := range n.List {
			if i > 0 {
				sb.WriteString(" ")
			}
			writeNode(sb, c, depth+1)
		}
		sb.WriteString(")")
		return
	}

	indent := strings.Repeat("\t", depth+1)
	for i, c := range n.List {
		if i == 0 {
			writeNode(sb, c, depth+1)
			continue
		}
		if c.IsLeaf() {
			sb.WriteString(" ")
			writeNode(sb, c, depth+1)
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		writeNode(sb, c, depth+1)
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("\t", depth))
	sb.WriteString(")")
}
