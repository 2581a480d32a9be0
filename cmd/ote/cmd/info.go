package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
)

var infoCmd = &cobra.Command{
	Use:   "info <schematic.otsch> [reference]",
	Short: "Show schematic document information",
	Long: `Display information about a schematic document.

Without a reference argument: shows a document summary.
With a reference argument: shows details for that component.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	doc, err := document.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing document: %w", err)
	}

	if len(args) >= 2 {
		return showComponentDetails(doc, args[1])
	}

	showSummary(doc, filename)
	return nil
}

func showSummary(doc *document.Document, filename string) {
	fmt.Printf("Document: %s\n", filename)
	fmt.Printf("Grid: %.2f mm (snap %s)\n", doc.GridSize, onOff(doc.SnapEnabled))

	bb := doc.Bounds()
	if !bb.IsEmpty() {
		fmt.Printf("Bounds: (%.2f, %.2f) to (%.2f, %.2f), %.1f x %.1f mm\n",
			bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y, bb.Width(), bb.Height())
	}
	fmt.Println()

	// Statistics by item kind
	counts := make(map[document.Kind]int)
	for _, item := range doc.Items() {
		counts[item.Kind()]++
	}
	fmt.Println("Statistics:")
	kinds := make([]document.Kind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		fmt.Printf("  %-10s %d\n", kind.String()+":", counts[kind])
	}
	fmt.Printf("  %-10s %d\n", "total:", doc.Len())
	fmt.Println()

	// Component list grouped by reference prefix
	var components []*document.Component
	for _, item := range doc.Items() {
		if comp, ok := item.(*document.Component); ok {
			components = append(components, comp)
		}
	}
	if len(components) > 0 {
		sort.Slice(components, func(i, j int) bool {
			return components[i].Reference < components[j].Reference
		})
		fmt.Println("Components:")
		for _, comp := range components {
			fmt.Printf("  %-8s %-24s %s\n", comp.Reference, comp.SymbolName, comp.Value)
		}
		fmt.Println()
	}

	// Wire connectivity summary
	wires, connected := 0, 0
	for _, item := range doc.Items() {
		wire, ok := item.(*document.Wire)
		if !ok {
			continue
		}
		wires++
		if wire.StartConn != nil || wire.EndConn != nil {
			connected++
		}
	}
	if wires > 0 {
		fmt.Printf("Wires: %d total, %d with pin connections\n", wires, connected)
	}
}

func showComponentDetails(doc *document.Document, reference string) error {
	for _, item := range doc.Items() {
		comp, ok := item.(*document.Component)
		if !ok || comp.Reference != reference {
			continue
		}

		fmt.Printf("Component: %s\n", comp.Reference)
		fmt.Printf("Symbol: %s\n", comp.SymbolName)
		if comp.Value != "" {
			fmt.Printf("Value: %s\n", comp.Value)
		}
		fmt.Printf("Position: (%.2f, %.2f)", comp.Origin.X, comp.Origin.Y)
		if comp.Rotation != 0 {
			fmt.Printf(" rotated %d°", comp.Rotation)
		}
		if comp.Mirror {
			fmt.Printf(" mirrored")
		}
		fmt.Println()

		if len(comp.Pins) > 0 {
			fmt.Println("Pins:")
			for _, pin := range comp.Pins {
				pos := comp.PinPosition(pin)
				name := pin.Name
				if name == "" {
					name = "-"
				}
				fmt.Printf("  %-4s %-8s at (%.2f, %.2f)\n", pin.Number, name, pos.X, pos.Y)
			}
		}

		// Wires attached to this component
		var attached []string
		for _, other := range doc.Items() {
			wire, ok := other.(*document.Wire)
			if !ok {
				continue
			}
			if wire.StartConn != nil && wire.StartConn.ComponentID == comp.ID() {
				attached = append(attached, fmt.Sprintf("pin %s (wire start)", wire.StartConn.PinNumber))
			}
			if wire.EndConn != nil && wire.EndConn.ComponentID == comp.ID() {
				attached = append(attached, fmt.Sprintf("pin %s (wire end)", wire.EndConn.PinNumber))
			}
		}
		if len(attached) > 0 {
			fmt.Println("Connections:")
			for _, conn := range attached {
				fmt.Printf("  %s\n", conn)
			}
		}
		return nil
	}
	return fmt.Errorf("component %q not found", reference)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
