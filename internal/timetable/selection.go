package timetable

import "sort"

// Metadata is optional per-slot information attached when a slot is selected.
type Metadata struct {
	Label string `toml:"label,omitempty" json:"label,omitempty"`
	Tag   string `toml:"tag,omitempty" json:"tag,omitempty"`
}

// IsZero reports whether m carries no information.
func (m Metadata) IsZero() bool {
	return m.Label == "" && m.Tag == ""
}

// Selection is an immutable set of selected slots with their metadata.
// The zero value is an empty selection. Operations that change a selection
// return a new value and leave the receiver untouched.
type Selection struct {
	order []SlotCode // pick order
	meta  map[SlotCode]Metadata
}

// Len returns the number of selected slots.
func (s Selection) Len() int {
	return len(s.order)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.order) == 0
}

// Has reports whether slot is selected.
func (s Selection) Has(slot SlotCode) bool {
	_, ok := s.meta[slot]
	return ok
}

// Metadata returns the metadata for a selected slot.
func (s Selection) Metadata(slot SlotCode) (Metadata, bool) {
	m, ok := s.meta[slot]
	return m, ok
}

// Slots returns the selected slots in the order they were picked.
func (s Selection) Slots() []SlotCode {
	return append([]SlotCode(nil), s.order...)
}

// Sorted returns the selected slots in lexical order.
func (s Selection) Sorted() []SlotCode {
	return sortSlots(s.Slots())
}

// Equal reports whether both selections hold the same slots with the same metadata.
// Pick order is ignored.
func (s Selection) Equal(other Selection) bool {
	if len(s.meta) != len(other.meta) {
		return false
	}
	for slot, m := range s.meta {
		om, ok := other.meta[slot]
		if !ok || om != m {
			return false
		}
	}
	return true
}

func (s Selection) with(slot SlotCode, m Metadata) Selection {
	next := Selection{
		order: make([]SlotCode, 0, len(s.order)+1),
		meta:  make(map[SlotCode]Metadata, len(s.meta)+1),
	}
	next.order = append(next.order, s.order...)
	next.order = append(next.order, slot)
	for k, v := range s.meta {
		next.meta[k] = v
	}
	next.meta[slot] = m
	return next
}

func (s Selection) without(slot SlotCode) Selection {
	next := Selection{
		order: make([]SlotCode, 0, len(s.order)),
		meta:  make(map[SlotCode]Metadata, len(s.meta)),
	}
	for _, o := range s.order {
		if o != slot {
			next.order = append(next.order, o)
		}
	}
	for k, v := range s.meta {
		if k != slot {
			next.meta[k] = v
		}
	}
	return next
}

// SlotSet is a set of slot codes.
type SlotSet map[SlotCode]struct{}

// Has reports whether slot is in the set.
func (s SlotSet) Has(slot SlotCode) bool {
	_, ok := s[slot]
	return ok
}

// Sorted returns the members in lexical order.
func (s SlotSet) Sorted() []SlotCode {
	out := make([]SlotCode, 0, len(s))
	for slot := range s {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
