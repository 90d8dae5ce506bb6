package command

const (
	noIndex   = -1
	lostClean = -2
)

// Stack is a linear undo/redo history bounded by a capacity. Entries up to
// and including the cursor are applied; entries after it can be redone.
type Stack struct {
	entries  []Command
	index    int
	clean    int
	capacity int
}

// NewStack creates an empty history. Capacities below 1 are raised to 1.
func NewStack(capacity int) *Stack {
	return &Stack{
		index:    noIndex,
		clean:    noIndex,
		capacity: max(capacity, 1),
	}
}

// Push applies cmd and records it.
func (s *Stack) Push(cmd Command) {
	if cmd == nil {
		return
	}
	cmd.Redo()
	s.record(cmd)
}

// PushWithoutRedo records cmd whose effect has already been applied.
func (s *Stack) PushWithoutRedo(cmd Command) {
	if cmd == nil {
		return
	}
	s.record(cmd)
}

func (s *Stack) record(cmd Command) {
	if s.index < len(s.entries)-1 {
		if s.clean > s.index {
			s.clean = lostClean
		}
		clear(s.entries[s.index+1:])
		s.entries = s.entries[:s.index+1]
	}

	if s.index >= 0 {
		if m, ok := s.entries[s.index].(Merger); ok && m.MergeWith(cmd) {
			if s.clean == s.index {
				s.clean = lostClean
			}
			return
		}
	}

	s.entries = append(s.entries, cmd)
	s.index++

	for len(s.entries) > s.capacity {
		s.evictOldest()
	}
}

func (s *Stack) evictOldest() {
	s.entries[0] = nil
	s.entries = s.entries[1:]
	s.index--
	switch {
	case s.clean == lostClean:
	case s.clean <= 0:
		s.clean = lostClean
	default:
		s.clean--
	}
}

// Undo reverts the entry at the cursor. It reports false when there is
// nothing to undo.
func (s *Stack) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	s.entries[s.index].Undo()
	s.index--
	return true
}

// Redo re-applies the entry after the cursor. It reports false when there is
// nothing to redo.
func (s *Stack) Redo() bool {
	if !s.CanRedo() {
		return false
	}
	s.index++
	s.entries[s.index].Redo()
	return true
}

func (s *Stack) CanUndo() bool {
	return s.index >= 0
}

func (s *Stack) CanRedo() bool {
	return s.index < len(s.entries)-1
}

// UndoText is the name of the entry Undo would revert.
func (s *Stack) UndoText() string {
	if !s.CanUndo() {
		return ""
	}
	return s.entries[s.index].Name()
}

// RedoText is the name of the entry Redo would apply.
func (s *Stack) RedoText() string {
	if !s.CanRedo() {
		return ""
	}
	return s.entries[s.index+1].Name()
}

func (s *Stack) Size() int {
	return len(s.entries)
}

// Index returns the cursor position, false when no entry is applied.
func (s *Stack) Index() (int, bool) {
	return s.index, s.index >= 0
}

// CleanIndex returns the entry marked clean, false when the clean state is
// the empty history or can no longer be reached.
func (s *Stack) CleanIndex() (int, bool) {
	return s.clean, s.clean >= 0
}

func (s *Stack) Capacity() int {
	return s.capacity
}

// SetCapacity changes the bound. Shrinking evicts the oldest entries first,
// then redoable entries from the tail; the entry at the cursor is kept.
func (s *Stack) SetCapacity(capacity int) {
	s.capacity = max(capacity, 1)
	for len(s.entries) > s.capacity && s.index >= 1 {
		s.evictOldest()
	}
	if len(s.entries) > s.capacity {
		keep := s.capacity
		if s.clean >= keep {
			s.clean = lostClean
		}
		clear(s.entries[keep:])
		s.entries = s.entries[:keep]
	}
}

// MarkAsClean records the current cursor as the saved state.
func (s *Stack) MarkAsClean() {
	s.clean = s.index
}

// ResetCleanIndex forgets the saved state; the history is dirty until the
// next MarkAsClean.
func (s *Stack) ResetCleanIndex() {
	s.clean = lostClean
}

// IsClean reports whether the cursor is at the saved state.
func (s *Stack) IsClean() bool {
	return s.clean != lostClean && s.clean == s.index
}

// Clear drops every entry. The empty history is clean.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.index = noIndex
	s.clean = noIndex
}
