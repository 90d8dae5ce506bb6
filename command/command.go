// Package command provides reversible edits and the bounded undo history
// that executes them.
package command

import "errors"

// ErrInvalidTarget is returned by command constructors when the document or
// sub-entity the command would mutate does not exist.
var ErrInvalidTarget = errors.New("command: invalid command target")

// Command is a reversible mutation. Redo applies the change and records what
// Undo needs to restore the previous state exactly.
type Command interface {
	Redo()
	Undo()
	Name() string
}

// Merger is implemented by commands that can absorb a newer command of the
// same kind, so that continuous edits collapse into one history entry.
// MergeWith is only called on the most recently pushed undoable command, after
// other has already been applied.
type Merger interface {
	MergeWith(other Command) bool
}
