package cmd

import (
	"log"
	"os"

	"gioui.org/app"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEdit/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit [schematic.otsch]",
	Short: "Launch the interactive schematic editor",
	Long: `Open the graphical editor. With a file argument the schematic is
loaded and fitted to the window; without one an empty sheet is created.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		go func() {
			w := new(app.Window)
			ed := editor.New(w, path)
			if err := ed.Run(); err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
