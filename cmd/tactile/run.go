package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/tactile/config"
	"github.com/milk9111/tactile/editor"
	"github.com/milk9111/tactile/script"
	"github.com/spf13/cobra"
)

var (
	runOutput string
	runDryRun bool
	runWatch  bool
)

var runCmd = &cobra.Command{
	Use:   "run [script-file] [map-file]",
	Short: "Run a tengo script against a map",
	Long: `Run a tengo script with a global "editor" module bound to the map, then save it.
With --watch the script is re-run on a fresh copy of the map whenever it changes, and
the settings file given by --config is reloaded when it changes.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		app := newApp()
		scriptPath, mapPath := args[0], args[1]
		out := outputPath(runOutput, mapPath)
		if runWatch && out == mapPath {
			log.Fatal("run --watch needs --out so the source map is not overwritten")
		}

		if err := runScript(ctx, app, scriptPath, mapPath, out); err != nil {
			log.Fatal(err)
		}
		if runWatch {
			watchScript(ctx, app, scriptPath, mapPath, out)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runOutput, "out", "o", "", "Write the result here instead of in place")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Run the script without saving")
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "Re-run when the script changes")
}

func runScript(ctx context.Context, app *editor.App, scriptPath, mapPath, out string) error {
	if _, err := app.OpenMap(mapPath); err != nil {
		return err
	}
	defer func() {
		if err := app.CloseMap(); err != nil {
			log.Printf("close %s: %v", mapPath, err)
		}
	}()

	if err := script.RunFile(ctx, app, scriptPath); err != nil {
		return err
	}
	if runDryRun {
		log.Printf("dry run, %s not written", out)
		return nil
	}
	return app.SaveMap(out)
}

func watchScript(ctx context.Context, app *editor.App, scriptPath, mapPath, out string) {
	sw, err := config.NewWatcher(scriptPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sw.Close()

	var settings *config.Watcher
	if configPath != "" {
		settings, err = config.NewWatcher(configPath)
		if err != nil {
			log.Fatal(err)
		}
		defer settings.Close()
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	log.Printf("watching %s", scriptPath)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sw.Events:
			if !ok {
				return
			}
			if err := runScript(ctx, app, scriptPath, mapPath, out); err != nil {
				log.Printf("run %s: %v", scriptPath, err)
			}
		case err, ok := <-sw.Errors:
			if !ok {
				return
			}
			log.Printf("watch %s: %v", scriptPath, err)
		case <-ticker.C:
			if settings != nil {
				app.PollSettings(settings)
			}
		}
	}
}
