package main

import (
	"fmt"
	"log"

	"github.com/milk9111/tactile/editor"
	"github.com/spf13/cobra"
)

var fixOutput string

var fixCmd = &cobra.Command{
	Use:   "fix [map-file]",
	Short: "Clear tiles that reference no attached tileset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		openMap(app, args[0])

		doc, err := app.ActiveDocument()
		if err != nil {
			log.Fatal(err)
		}
		n := countInvalid(doc.Map)
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no invalid tiles")
			return
		}
		if err := app.Handle(editor.FixTilesInMapEvent{}); err != nil {
			log.Fatal(err)
		}
		saveMap(app, outputPath(fixOutput, args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d invalid tiles\n", n)
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().StringVarP(&fixOutput, "out", "o", "", "Write the repaired map here instead of in place")
}

func outputPath(out, in string) string {
	if out != "" {
		return out
	}
	return in
}
