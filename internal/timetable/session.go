package timetable

const defaultMaxHistory = 50

// Session owns the selection of one interactive user and an undo history.
// Each selection is immutable, so history entries are plain references.
// A Session is not safe for concurrent use; callers serialize Toggle.
type Session struct {
	engine     *Engine
	current    Selection
	history    []Selection
	maxHistory int
}

// NewSession starts an empty session over engine.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine, maxHistory: defaultMaxHistory}
}

// Engine returns the session's engine.
func (s *Session) Engine() *Engine { return s.engine }

// Selection returns the current selection.
func (s *Session) Selection() Selection { return s.current }

// Toggle applies Engine.Toggle to the current selection.
// It reports whether slot ended up selected.
func (s *Session) Toggle(slot SlotCode, meta Metadata) (bool, error) {
	next, err := s.engine.Toggle(s.current, slot, meta)
	if err != nil {
		return false, err
	}
	s.push(s.current)
	s.current = next
	return next.Has(slot), nil
}

// Clear deselects everything. Clearing an empty selection is a no-op.
func (s *Session) Clear() {
	if s.current.IsEmpty() {
		return
	}
	s.push(s.current)
	s.current = Selection{}
}

// Undo restores the selection that preceded the last Toggle or Clear.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		return ErrNothingToUndo
	}
	last := len(s.history) - 1
	s.current = s.history[last]
	s.history[last] = Selection{}
	s.history = s.history[:last]
	return nil
}

// CanUndo reports whether Undo has anything to restore.
func (s *Session) CanUndo() bool {
	return len(s.history) > 0
}

// Blocked returns the slots blocked by the current selection.
func (s *Session) Blocked() SlotSet {
	return s.engine.BlockedSlots(s.current)
}

// Status classifies slot under the current selection.
func (s *Session) Status(slot SlotCode) (Status, error) {
	return s.engine.Status(s.current, slot)
}

func (s *Session) push(sel Selection) {
	s.history = append(s.history, sel)
	if len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
}
