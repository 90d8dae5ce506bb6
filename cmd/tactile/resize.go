package main

import (
	"log"

	"github.com/milk9111/tactile/editor"
	"github.com/spf13/cobra"
)

var (
	resizeRows   int
	resizeCols   int
	resizeOutput string
)

var resizeCmd = &cobra.Command{
	Use:   "resize [map-file]",
	Short: "Change the extent of every tile layer",
	Long:  `Resize a map. Rows and columns not given keep their current count. Tiles outside the new extent are dropped.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		openMap(app, args[0])

		doc, err := app.ActiveDocument()
		if err != nil {
			log.Fatal(err)
		}
		evt := editor.ResizeMapEvent{Rows: doc.Map.Extent.Rows, Cols: doc.Map.Extent.Cols}
		if resizeRows > 0 {
			evt.Rows = resizeRows
		}
		if resizeCols > 0 {
			evt.Cols = resizeCols
		}
		if err := app.Handle(evt); err != nil {
			log.Fatal(err)
		}
		saveMap(app, outputPath(resizeOutput, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(resizeCmd)

	resizeCmd.Flags().IntVar(&resizeRows, "rows", 0, "New number of rows")
	resizeCmd.Flags().IntVar(&resizeCols, "cols", 0, "New number of columns")
	resizeCmd.Flags().StringVarP(&resizeOutput, "out", "o", "", "Write the resized map here instead of in place")
}
