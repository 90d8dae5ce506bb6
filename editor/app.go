// Package editor is the application context of the map editor. It owns the
// open documents, the settings and the event queue, and translates each
// typed event into exactly one history push on the active document.
package editor

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/tactile/command"
	"github.com/milk9111/tactile/config"
	"github.com/milk9111/tactile/document"
	"github.com/milk9111/tactile/ecs"
)

var (
	ErrNoActiveDocument = errors.New("editor: no active document")
	ErrUnknownEvent     = errors.New("editor: unknown event")
	ErrUnavailable      = errors.New("editor: action not available")
)

// App is the editor state shared by every frontend.
type App struct {
	Registry *document.Registry
	Settings config.Settings
	Logger   *log.Logger

	events ecs.EventQueue[Event]
}

// New creates an app with no open documents. A nil logger logs to stderr.
func New(settings config.Settings, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(os.Stderr, "tactile: ", log.LstdFlags)
	}
	return &App{
		Registry: document.NewRegistry(settings.CommandCapacity),
		Settings: settings,
		Logger:   logger,
	}
}

// Dispatch queues evt for the next Update.
func (a *App) Dispatch(evt Event) {
	a.events.Push(evt)
}

// Pending returns the number of queued events.
func (a *App) Pending() int {
	return a.events.Len()
}

// Update handles every queued event in order. Failed events are logged and
// do not stop the rest of the queue; the first error is returned.
func (a *App) Update() error {
	var first error
	for _, evt := range a.events.Drain() {
		if err := a.Handle(evt); err != nil {
			a.Logger.Printf("event %T: %v", evt, err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// ActiveDocument returns the active document or ErrNoActiveDocument.
func (a *App) ActiveDocument() (*document.Document, error) {
	doc, ok := a.Registry.Active()
	if !ok {
		return nil, ErrNoActiveDocument
	}
	return doc, nil
}

// HasActiveDocument reports whether a document is open and active.
func (a *App) HasActiveDocument() bool {
	_, ok := a.Registry.Active()
	return ok
}

// ApplySettings installs s and resizes every open history to its capacity.
func (a *App) ApplySettings(s config.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	a.Settings = s
	a.Registry.SetCapacity(s.CommandCapacity)
	return nil
}

// PollSettings applies a pending settings change reported by w without
// blocking, so reloads happen on the same goroutine as Update. Invalid files
// are logged and the current settings kept.
func (a *App) PollSettings(w *config.Watcher) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			a.reloadSettings(path)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			a.Logger.Printf("settings watcher: %v", err)
		default:
			return
		}
	}
}

func (a *App) reloadSettings(path string) {
	s, err := config.Load(path)
	if err == nil {
		err = a.ApplySettings(s)
	}
	if err != nil {
		a.Logger.Printf("reload %s: %v", path, err)
		return
	}
	a.Logger.Printf("reloaded settings from %s", path)
}

// push builds a command against the active document and pushes it.
func push[C command.Command](a *App, build func(document.Ref) (C, error)) error {
	doc, err := a.ActiveDocument()
	if err != nil {
		return err
	}
	cmd, err := build(a.Registry.Ref(doc.ID()))
	if err != nil {
		return err
	}
	doc.History.Push(cmd)
	return nil
}

func unavailable(what string) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, what)
}
