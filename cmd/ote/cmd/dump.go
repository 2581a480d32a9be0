package cmd

import (
	"fmt"
	"os"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <schematic.otsch>",
	Short: "Dump the raw S-expression tree of a document",
	Long: `Parse a document with a generic S-expression reader and print the
raw tree. Useful for debugging malformed files, since it imposes none
of the document format's structure.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	filename := args[0]
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	if verbose {
		if info, err := file.Stat(); err == nil {
			fmt.Printf("File size: %d bytes\n", info.Size())
		}
	}

	sexps, err := sexp.Parse(file)
	if err != nil {
		return fmt.Errorf("error parsing s-expressions: %w", err)
	}

	fmt.Printf("Parsed %d top-level s-expression(s)\n", len(sexps))
	for i, s := range sexps {
		if verbose {
			fmt.Printf("\n--- expression %d (leaf: %v", i, s.IsLeaf())
			if !s.IsLeaf() {
				fmt.Printf(", leaves: %d", s.LeafCount())
			}
			fmt.Println(") ---")
		}
		fmt.Println(s)
	}
	return nil
}
