// Package script runs tengo scripts against an editor. Every mutation a
// script makes goes through the editor's event handling, so it lands in the
// active document's history like any interactive edit.
package script

import (
	"context"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tactile/editor"
)

// Run executes src with a global `editor` module bound to app.
func Run(ctx context.Context, app *editor.App, src []byte) error {
	script := tengo.NewScript(src)
	if err := script.Add("editor", buildEditorModule(app)); err != nil {
		return err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	if _, err := script.RunContext(ctx); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile executes the script stored at path.
func RunFile(ctx context.Context, app *editor.App, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: read %s: %w", path, err)
	}
	return Run(ctx, app, src)
}
