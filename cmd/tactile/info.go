package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [map-file]",
	Short: "Describe a map",
	Long:  `Print the extent, tile format, tilesets and layer tree of a map, and count tiles that reference no attached tileset.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp()
		openMap(app, args[0])

		doc, err := app.ActiveDocument()
		if err != nil {
			log.Fatal(err)
		}
		printInfo(cmd.OutOrStdout(), doc.Map)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(w io.Writer, m *tilemap.Map) {
	fmt.Fprintf(w, "name:     %s\n", m.Name)
	fmt.Fprintf(w, "extent:   %s\n", m.Extent)
	fmt.Fprintf(w, "tile:     %dx%d\n", m.TileSize.X, m.TileSize.Y)
	fmt.Fprintf(w, "encoding: %s\n", m.Format.Encoding)
	if m.Format.SupportsCompression() {
		fmt.Fprintf(w, "compress: %s (zlib %d, zstd %d)\n", m.Format.Compression, m.Format.ZlibLevel, m.Format.ZstdLevel)
	}

	fmt.Fprintf(w, "tilesets: %d\n", m.Tilesets.Len())
	for _, a := range m.Tilesets.All() {
		fmt.Fprintf(w, "  %-20s [%d, %d]\n", a.Tileset.Name, a.FirstTile, a.LastTile)
	}

	fmt.Fprintf(w, "layers:   %d\n", m.Root.Count())
	printLayers(w, m.Root.Children, 1)

	fmt.Fprintf(w, "invalid:  %d\n", countInvalid(m))
}

func printLayers(w io.Writer, layers []*layer.Layer, depth int) {
	for _, l := range layers {
		hidden := ""
		if !l.Visible {
			hidden = " (hidden)"
		}
		fmt.Fprintf(w, "%s%s: %s%s\n", strings.Repeat("  ", depth), l.Kind, l.Name, hidden)
		if l.IsGroup() {
			printLayers(w, l.Children, depth+1)
		}
	}
}

func countInvalid(m *tilemap.Map) int {
	n := 0
	for _, l := range m.TileLayers() {
		l.Tiles.Each(func(_ tile.Pos, id tile.ID) {
			if !m.IsValidTile(id) {
				n++
			}
		})
	}
	return n
}
