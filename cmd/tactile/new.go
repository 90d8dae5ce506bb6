package main

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/tactile/common"
	"github.com/milk9111/tactile/tile"
	"github.com/spf13/cobra"
)

var (
	newRows       int
	newCols       int
	newTileWidth  int
	newTileHeight int
	newName       string
)

var newCmd = &cobra.Command{
	Use:   "new [map-file]",
	Short: "Create an empty map",
	Long:  `Create a map with one empty tile layer. Sizes not given on the command line come from the settings.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()

		name := newName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		ext := tile.Extent{Rows: newRows, Cols: newCols}
		if _, err := app.NewMap(name, ext, common.Int2{X: newTileWidth, Y: newTileHeight}); err != nil {
			log.Fatal(err)
		}
		saveMap(app, args[0])
	},
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().IntVar(&newRows, "rows", 0, "Number of rows")
	newCmd.Flags().IntVar(&newCols, "cols", 0, "Number of columns")
	newCmd.Flags().IntVar(&newTileWidth, "tile-width", 0, "Tile width in pixels")
	newCmd.Flags().IntVar(&newTileHeight, "tile-height", 0, "Tile height in pixels")
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "Map name (default: file name)")
}
