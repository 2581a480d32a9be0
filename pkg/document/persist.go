package document

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document/otsexp"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
)

// FormatVersion is bumped on incompatible .otsch format changes
const FormatVersion = 1

// Save writes the document in the .otsch S-expression format
func Save(w io.Writer, d *Document) error {
	root := otsexp.NewList("otsch",
		otsexp.NewList("version", otsexp.Int(FormatVersion)),
		otsexp.NewList("generator", otsexp.Str("ote")),
		otsexp.NewList("grid", otsexp.Num(d.GridSize)),
		otsexp.NewList("snap", otsexp.Bool(d.SnapEnabled)),
	)

	for _, item := range d.Items() {
		node, err := itemToNode(item)
		if err != nil {
			return err
		}
		root.Append(node)
	}

	_, err := io.WriteString(w, root.Format())
	return err
}

// SaveFile writes the document to a .otsch file
func SaveFile(filename string, d *Document) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return Save(file, d)
}

// Parse reads a .otsch document from a reader
func Parse(r io.Reader) (*Document, error) {
	nodes, err := otsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root := nodes[0]
	if root.Key() != "otsch" {
		return nil, fmt.Errorf("not a schematic document: root node is %q", root.Key())
	}

	d := New()
	if grid := root.Child("grid"); grid != nil {
		if v, err := grid.FloatArg(0); err == nil && v > 0 {
			d.GridSize = v
		}
	}
	if snap := root.Child("snap"); snap != nil {
		if v, err := snap.BoolArg(0); err == nil {
			d.SnapEnabled = v
		}
	}

	for _, node := range root.List[1:] {
		if node.IsLeaf() {
			continue
		}
		item, err := nodeToItem(node)
		if err != nil {
			return nil, err
		}
		if item != nil {
			d.AddItem(item)
		}
	}
	return d, nil
}

// ParseFile reads a .otsch document file
func ParseFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func pointNode(key string, p geometry.Point) *otsexp.Node {
	return otsexp.NewList(key, otsexp.Num(p.X), otsexp.Num(p.Y))
}

func pointsNode(points []geometry.Point) *otsexp.Node {
	pts := otsexp.NewList("pts")
	for _, p := range points {
		pts.Append(pointNode("xy", p))
	}
	return pts
}

func baseNodes(item Item) []*otsexp.Node {
	base := item.Base()
	nodes := []*otsexp.Node{
		otsexp.NewList("id", otsexp.Int(int64(base.ID()))),
	}
	if base.Locked {
		nodes = append(nodes, otsexp.NewList("locked", otsexp.Bool(true)))
	}
	return nodes
}

func itemToNode(item Item) (*otsexp.Node, error) {
	switch it := item.(type) {
	case *Line:
		return otsexp.NewList("line", baseNodes(it)...).Append(
			pointNode("start", it.Start),
			pointNode("end", it.End),
			otsexp.NewList("width", otsexp.Num(it.Width)),
		), nil

	case *Rect:
		return otsexp.NewList("rect", baseNodes(it)...).Append(
			pointNode("min", it.Min),
			pointNode("max", it.Max),
			otsexp.NewList("width", otsexp.Num(it.Width)),
			otsexp.NewList("filled", otsexp.Bool(it.Filled)),
		), nil

	case *Circle:
		return otsexp.NewList("circle", baseNodes(it)...).Append(
			pointNode("center", it.Center),
			otsexp.NewList("radius", otsexp.Num(it.Radius)),
			otsexp.NewList("width", otsexp.Num(it.Width)),
			otsexp.NewList("filled", otsexp.Bool(it.Filled)),
		), nil

	case *Arc:
		return otsexp.NewList("arc", baseNodes(it)...).Append(
			pointNode("start", it.Start),
			pointNode("mid", it.Mid),
			pointNode("end", it.End),
			otsexp.NewList("width", otsexp.Num(it.Width)),
		), nil

	case *Polyline:
		return otsexp.NewList("polyline", baseNodes(it)...).Append(
			pointsNode(it.Points),
			otsexp.NewList("width", otsexp.Num(it.Width)),
			otsexp.NewList("closed", otsexp.Bool(it.Closed)),
			otsexp.NewList("filled", otsexp.Bool(it.Filled)),
		), nil

	case *Text:
		node := otsexp.NewList("text", otsexp.Str(it.Text))
		node.Append(baseNodes(it)...)
		return node.Append(
			pointNode("at", it.Position),
			otsexp.NewList("size", otsexp.Num(it.Size)),
		), nil

	case *Component:
		node := otsexp.NewList("component", otsexp.Str(it.SymbolName))
		node.Append(baseNodes(it)...)
		node.Append(
			otsexp.NewList("reference", otsexp.Str(it.Reference)),
			otsexp.NewList("value", otsexp.Str(it.Value)),
			otsexp.NewList("at", otsexp.Num(it.Origin.X), otsexp.Num(it.Origin.Y), otsexp.Int(int64(it.Rotation))),
			otsexp.NewList("mirror", otsexp.Bool(it.Mirror)),
			otsexp.NewList("body",
				otsexp.Num(it.BodyMin.X), otsexp.Num(it.BodyMin.Y),
				otsexp.Num(it.BodyMax.X), otsexp.Num(it.BodyMax.Y)),
		)
		for _, pin := range it.Pins {
			pinNode := otsexp.NewList("pin", otsexp.Str(pin.Number), pointNode("at", pin.Offset))
			if pin.Name != "" {
				pinNode.Append(otsexp.NewList("name", otsexp.Str(pin.Name)))
			}
			node.Append(pinNode)
		}
		return node, nil

	case *Wire:
		node := otsexp.NewList("wire", baseNodes(it)...).Append(
			pointsNode(it.Points),
			otsexp.NewList("width", otsexp.Num(it.Width)),
		)
		if it.StartConn != nil {
			node.Append(otsexp.NewList("start_conn",
				otsexp.Int(int64(it.StartConn.ComponentID)), otsexp.Str(it.StartConn.PinNumber)))
		}
		if it.EndConn != nil {
			node.Append(otsexp.NewList("end_conn",
				otsexp.Int(int64(it.EndConn.ComponentID)), otsexp.Str(it.EndConn.PinNumber)))
		}
		return node, nil
	}

	return nil, fmt.Errorf("cannot serialize item kind %s", item.Kind())
}

func parsePoint(parent *otsexp.Node, key string) (geometry.Point, error) {
	node := parent.Child(key)
	if node == nil {
		return geometry.Point{}, fmt.Errorf("(%s): missing (%s)", parent.Key(), key)
	}
	x, err := node.FloatArg(0)
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := node.FloatArg(1)
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: x, Y: y}, nil
}

func parsePoints(parent *otsexp.Node) ([]geometry.Point, error) {
	pts := parent.Child("pts")
	if pts == nil {
		return nil, fmt.Errorf("(%s): missing (pts)", parent.Key())
	}
	var points []geometry.Point
	for _, xy := range pts.Children("xy") {
		x, err := xy.FloatArg(0)
		if err != nil {
			return nil, err
		}
		y, err := xy.FloatArg(1)
		if err != nil {
			return nil, err
		}
		points = append(points, geometry.Point{X: x, Y: y})
	}
	return points, nil
}

func parseFloat(parent *otsexp.Node, key string, fallback float64) float64 {
	node := parent.Child(key)
	if node == nil {
		return fallback
	}
	v, err := node.FloatArg(0)
	if err != nil {
		return fallback
	}
	return v
}

func parseBool(parent *otsexp.Node, key string) bool {
	node := parent.Child(key)
	if node == nil {
		return false
	}
	v, err := node.BoolArg(0)
	if err != nil {
		return false
	}
	return v
}

func parseBase(node *otsexp.Node, base *BaseItem) {
	if idNode := node.Child("id"); idNode != nil {
		if id, err := idNode.IntArg(0); err == nil {
			base.id = ItemID(id)
		}
	}
	base.Locked = parseBool(node, "locked")
}

func parseConn(parent *otsexp.Node, key string) (*PinRef, error) {
	node := parent.Child(key)
	if node == nil {
		return nil, nil
	}
	id, err := node.IntArg(0)
	if err != nil {
		return nil, err
	}
	pin, err := node.StringArg(1)
	if err != nil {
		return nil, err
	}
	return &PinRef{ComponentID: ItemID(id), PinNumber: pin}, nil
}

func nodeToItem(node *otsexp.Node) (Item, error) {
	switch node.Key() {
	case "line":
		it := &Line{Width: parseFloat(node, "width", 0)}
		var err error
		if it.Start, err = parsePoint(node, "start"); err != nil {
			return nil, err
		}
		if it.End, err = parsePoint(node, "end"); err != nil {
			return nil, err
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "rect":
		it := &Rect{Width: parseFloat(node, "width", 0), Filled: parseBool(node, "filled")}
		var err error
		if it.Min, err = parsePoint(node, "min"); err != nil {
			return nil, err
		}
		if it.Max, err = parsePoint(node, "max"); err != nil {
			return nil, err
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "circle":
		it := &Circle{
			Radius: parseFloat(node, "radius", 0),
			Width:  parseFloat(node, "width", 0),
			Filled: parseBool(node, "filled"),
		}
		var err error
		if it.Center, err = parsePoint(node, "center"); err != nil {
			return nil, err
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "arc":
		it := &Arc{Width: parseFloat(node, "width", 0)}
		var err error
		if it.Start, err = parsePoint(node, "start"); err != nil {
			return nil, err
		}
		if it.Mid, err = parsePoint(node, "mid"); err != nil {
			return nil, err
		}
		if it.End, err = parsePoint(node, "end"); err != nil {
			return nil, err
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "polyline":
		points, err := parsePoints(node)
		if err != nil {
			return nil, err
		}
		it := &Polyline{
			Points: points,
			Width:  parseFloat(node, "width", 0),
			Closed: parseBool(node, "closed"),
			Filled: parseBool(node, "filled"),
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "text":
		content, err := node.StringArg(0)
		if err != nil {
			return nil, err
		}
		it := &Text{Text: content, Size: parseFloat(node, "size", 1.27)}
		if it.Position, err = parsePoint(node, "at"); err != nil {
			return nil, err
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "component":
		name, err := node.StringArg(0)
		if err != nil {
			return nil, err
		}
		it := &Component{SymbolName: name, Mirror: parseBool(node, "mirror")}
		if ref := node.Child("reference"); ref != nil {
			it.Reference, _ = ref.StringArg(0)
		}
		if val := node.Child("value"); val != nil {
			it.Value, _ = val.StringArg(0)
		}
		at := node.Child("at")
		if at == nil {
			return nil, fmt.Errorf("(component): missing (at)")
		}
		if it.Origin.X, err = at.FloatArg(0); err != nil {
			return nil, err
		}
		if it.Origin.Y, err = at.FloatArg(1); err != nil {
			return nil, err
		}
		if at.ArgCount() > 2 {
			if rot, err := at.IntArg(2); err == nil {
				it.Rotation = int(rot)
			}
		}
		if body := node.Child("body"); body != nil {
			it.BodyMin.X, _ = body.FloatArg(0)
			it.BodyMin.Y, _ = body.FloatArg(1)
			it.BodyMax.X, _ = body.FloatArg(2)
			it.BodyMax.Y, _ = body.FloatArg(3)
		}
		for _, pinNode := range node.Children("pin") {
			number, err := pinNode.StringArg(0)
			if err != nil {
				return nil, err
			}
			offset, err := parsePoint(pinNode, "at")
			if err != nil {
				return nil, err
			}
			pin := Pin{Number: number, Offset: offset}
			if nameNode := pinNode.Child("name"); nameNode != nil {
				pin.Name, _ = nameNode.StringArg(0)
			}
			it.Pins = append(it.Pins, pin)
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "wire":
		points, err := parsePoints(node)
		if err != nil {
			return nil, err
		}
		it := &Wire{Points: points, Width: parseFloat(node, "width", DefaultWireWidth)}
		if it.StartConn, err = parseConn(node, "start_conn"); err != nil {
			return nil, err
		}
		if it.EndConn, err = parseConn(node, "end_conn"); err != nil {
			return nil, err
		}
		parseBase(node, &it.BaseItem)
		return it, nil

	case "version", "generator", "grid", "snap":
		return nil, nil
	}

	return nil, fmt.Errorf("unknown document node (%s)", node.Key())
}
