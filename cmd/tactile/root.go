package main

import (
	"log"
	"os"

	"github.com/milk9111/tactile/config"
	"github.com/milk9111/tactile/editor"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tactile",
	Short: "Edit tile maps from the command line",
	Long: `tactile opens, repairs and transforms tile map documents.
Every edit goes through the same undoable commands the editor uses.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (defaults are used when empty or missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every handled event")
}

// newApp builds an editor from the settings file named by --config.
func newApp() *editor.App {
	settings := config.Defaults()
	if configPath != "" {
		s, err := config.Load(configPath)
		if err != nil {
			log.Fatal(err)
		}
		settings = s
	}
	if verbose {
		settings.LogVerboseEvents = true
	}
	return editor.New(settings, log.New(os.Stderr, "tactile: ", log.LstdFlags))
}

// openMap opens path without repairing tiles, so commands can report and
// fix them explicitly.
func openMap(app *editor.App, path string) {
	app.Settings.FixTilesOnOpen = false
	if _, err := app.OpenMap(path); err != nil {
		log.Fatal(err)
	}
}

func saveMap(app *editor.App, path string) {
	if err := app.SaveMap(path); err != nil {
		log.Fatal(err)
	}
}
