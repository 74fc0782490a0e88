package timetable

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. The typed errors below match these through errors.Is.
var (
	ErrMalformedGrid  = errors.New("malformed grid")
	ErrSlotBlocked    = errors.New("slot is blocked by the current selection")
	ErrUnknownSlot    = errors.New("unknown slot")
	ErrNothingToUndo  = errors.New("nothing to undo")
	errEmptySlotCode  = errors.New("empty slot code")
	errRowLength      = errors.New("row length does not match period count")
	errEmptyCell      = errors.New("cell is empty")
	errDuplicateSlot  = errors.New("slot code appears in more than one cell")
	errNoDays         = errors.New("grid has no days")
	errNoPeriods      = errors.New("grid has no periods")
	errDayCount       = errors.New("row count does not match day count")
	errSelfConflict   = errors.New("explicit conflict pairs a slot with itself")
	errDuplicateLabel = errors.New("duplicate day or period name")
)

// MalformedGridError reports a grid definition that violates the grid invariants.
type MalformedGridError struct {
	Reason  error
	Slot    SlotCode // offending slot, if any
	At      string   // "day period" where the problem was found, if any
	FirstAt string   // for duplicates, where Slot was first seen
}

func (e *MalformedGridError) Error() string {
	msg := "malformed grid: " + e.Reason.Error()
	switch {
	case e.Slot != "" && e.FirstAt != "":
		return fmt.Sprintf("%s: %s at %s and %s", msg, e.Slot, e.FirstAt, e.At)
	case e.Slot != "" && e.At != "":
		return fmt.Sprintf("%s: %s at %s", msg, e.Slot, e.At)
	case e.Slot != "":
		return fmt.Sprintf("%s: %s", msg, e.Slot)
	case e.At != "":
		return fmt.Sprintf("%s at %s", msg, e.At)
	}
	return msg
}

// Is reports whether target is ErrMalformedGrid.
func (e *MalformedGridError) Is(target error) bool {
	return target == ErrMalformedGrid
}

func (e *MalformedGridError) Unwrap() error {
	return e.Reason
}

// SlotBlockedError is returned when selecting a slot would conflict with the selection.
type SlotBlockedError struct {
	Slot      SlotCode
	BlockedBy []SlotCode // selected slots that conflict with Slot, sorted
}

func (e *SlotBlockedError) Error() string {
	names := make([]string, len(e.BlockedBy))
	for i, s := range e.BlockedBy {
		names[i] = string(s)
	}
	return fmt.Sprintf("slot %s is blocked by %s", e.Slot, strings.Join(names, ", "))
}

// Is reports whether target is ErrSlotBlocked.
func (e *SlotBlockedError) Is(target error) bool {
	return target == ErrSlotBlocked
}

// UnknownSlotError is returned for slot codes that are not part of the grid.
type UnknownSlotError struct {
	Slot SlotCode
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("unknown slot %q", string(e.Slot))
}

// Is reports whether target is ErrUnknownSlot.
func (e *UnknownSlotError) Is(target error) bool {
	return target == ErrUnknownSlot
}
