package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ote",
	Short: "OpenTraceEdit - Schematic editor and document tools",
	Long: `OpenTraceEdit (ote) is a 2D schematic editor with orthogonal wire
routing, component libraries and an S-expression document format.

Examples:
  ote edit                       # Launch the editor with an empty sheet
  ote edit design.otsch          # Edit an existing schematic
  ote info design.otsch          # Show document statistics
  ote dump design.otsch          # Dump the raw S-expression tree`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
