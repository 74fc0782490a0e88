package timetable

import "strings"

// GroupKey identifies the course or lab a slot belongs to.
// Slots sharing a non-empty key are different sections of the same course.
type GroupKey string

// GroupKeyFunc derives a group key from a slot code. It must be total and deterministic.
type GroupKeyFunc func(SlotCode) GroupKey

// Kind classifies a slot for display.
type Kind string

const (
	KindTheory Kind = "theory"
	KindLab    Kind = "lab"
)

// IsLab reports whether slot is a lab code: "L" immediately followed by a digit.
func IsLab(slot SlotCode) bool {
	s := string(slot)
	return len(s) >= 2 && s[0] == 'L' && s[1] >= '0' && s[1] <= '9'
}

// KindOf returns KindLab for lab codes and KindTheory otherwise.
func KindOf(slot SlotCode) Kind {
	if IsLab(slot) {
		return KindLab
	}
	return KindTheory
}

// DefaultGroupKey drops digits and every character that is not an ASCII
// uppercase letter: "TBB2" -> "TBB", "E2" -> "E", "A1@sat" -> "A".
// Lab codes are their own group, so two labs never share a key.
// Codes without uppercase letters yield the empty key, which groups nothing.
func DefaultGroupKey(slot SlotCode) GroupKey {
	if IsLab(slot) {
		return GroupKey(slot)
	}
	var b strings.Builder
	for _, r := range string(slot) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return GroupKey(b.String())
}
