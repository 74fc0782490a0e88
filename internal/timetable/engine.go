package timetable

// Status is the display state of one slot under a selection.
type Status int

const (
	StatusFree Status = iota
	StatusSelected
	StatusBlocked
)

func (s Status) String() string {
	switch s {
	case StatusSelected:
		return "selected"
	case StatusBlocked:
		return "blocked"
	default:
		return "free"
	}
}

// Option configures engine construction.
type Option func(*options)

type options struct {
	groupKey GroupKeyFunc
}

// WithGroupKey replaces the default group key policy.
func WithGroupKey(fn GroupKeyFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.groupKey = fn
		}
	}
}

// Engine pairs a grid with its conflict index and answers selection questions.
// It holds no selection of its own; callers thread a Selection through it.
// An Engine is read-only after NewEngine and safe to share.
type Engine struct {
	grid     *Grid
	index    *ConflictIndex
	groupKey GroupKeyFunc
}

// NewEngine builds the conflict index for grid once and returns an engine over it.
func NewEngine(grid *Grid, explicit []Pair, opts ...Option) (*Engine, error) {
	o := options{groupKey: DefaultGroupKey}
	for _, opt := range opts {
		opt(&o)
	}

	index, err := BuildIndex(grid, o.groupKey, explicit)
	if err != nil {
		return nil, err
	}

	return &Engine{grid: grid, index: index, groupKey: o.groupKey}, nil
}

// Grid returns the grid the engine was built from.
func (e *Engine) Grid() *Grid { return e.grid }

// Index returns the conflict index.
func (e *Engine) Index() *ConflictIndex { return e.index }

// GroupKey returns the group key of slot under the engine's policy.
func (e *Engine) GroupKey(slot SlotCode) GroupKey { return e.groupKey(slot) }

// Kind classifies slot as a lab or theory slot.
func (e *Engine) Kind(slot SlotCode) Kind { return KindOf(slot) }

// Conflicts returns the sorted conflict set of slot.
func (e *Engine) Conflicts(slot SlotCode) ([]SlotCode, error) {
	if err := e.known(slot); err != nil {
		return nil, err
	}
	return e.index.Conflicts(slot), nil
}

// IsSelectable reports whether slot may be toggled under sel: it is either
// already selected, or none of its conflicts is selected.
func (e *Engine) IsSelectable(sel Selection, slot SlotCode) (bool, error) {
	if err := e.known(slot); err != nil {
		return false, err
	}
	if sel.Has(slot) {
		return true, nil
	}
	return len(e.blockers(sel, slot)) == 0, nil
}

// BlockedBy returns the selected slots that conflict with slot, sorted.
func (e *Engine) BlockedBy(sel Selection, slot SlotCode) ([]SlotCode, error) {
	if err := e.known(slot); err != nil {
		return nil, err
	}
	return e.blockers(sel, slot), nil
}

// Toggle deselects slot if it is selected, and selects it with meta otherwise.
// Deselection always succeeds. Selecting a slot that conflicts with the
// selection fails with *SlotBlockedError. On error sel is returned unchanged.
func (e *Engine) Toggle(sel Selection, slot SlotCode, meta Metadata) (Selection, error) {
	if err := e.known(slot); err != nil {
		return sel, err
	}
	if sel.Has(slot) {
		return sel.without(slot), nil
	}
	if blockers := e.blockers(sel, slot); len(blockers) > 0 {
		return sel, &SlotBlockedError{Slot: slot, BlockedBy: blockers}
	}
	return sel.with(slot, meta), nil
}

// Apply toggles slots into sel in order and stops at the first rejection,
// returning the selection built so far along with the error.
func (e *Engine) Apply(sel Selection, slots ...SlotCode) (Selection, error) {
	for _, slot := range slots {
		next, err := e.Toggle(sel, slot, Metadata{})
		if err != nil {
			return sel, err
		}
		sel = next
	}
	return sel, nil
}

// BlockedSlots returns every unselected slot that conflicts with some selected slot.
// It only visits the conflict sets of selected slots.
func (e *Engine) BlockedSlots(sel Selection) SlotSet {
	blocked := make(SlotSet)
	for _, s := range sel.order {
		e.index.forEach(s, func(peer SlotCode) {
			if !sel.Has(peer) {
				blocked[peer] = struct{}{}
			}
		})
	}
	return blocked
}

// Status classifies slot as selected, blocked or free under sel.
func (e *Engine) Status(sel Selection, slot SlotCode) (Status, error) {
	if err := e.known(slot); err != nil {
		return StatusFree, err
	}
	if sel.Has(slot) {
		return StatusSelected, nil
	}
	if len(e.blockers(sel, slot)) > 0 {
		return StatusBlocked, nil
	}
	return StatusFree, nil
}

// blockers walks whichever side is smaller: the selection or the conflict set.
func (e *Engine) blockers(sel Selection, slot SlotCode) []SlotCode {
	var out []SlotCode
	if sel.Len() <= e.index.Degree(slot) {
		for _, s := range sel.order {
			if e.index.Conflicting(slot, s) {
				out = append(out, s)
			}
		}
	} else {
		e.index.forEach(slot, func(peer SlotCode) {
			if sel.Has(peer) {
				out = append(out, peer)
			}
		})
	}
	return sortSlots(out)
}

func (e *Engine) known(slot SlotCode) error {
	if !e.grid.Has(slot) {
		return &UnknownSlotError{Slot: slot}
	}
	return nil
}
