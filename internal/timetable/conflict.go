package timetable

import (
	"fmt"
	"strings"
)

// Rule records why two slots conflict. A pair may be produced by several rules.
type Rule uint8

const (
	RuleCell     Rule = 1 << iota // same (day, period)
	RuleGroup                     // same non-empty group key
	RuleExplicit                  // caller-supplied pair
)

// String returns the rule names joined by "+", e.g. "cell+group".
func (r Rule) String() string {
	var parts []string
	if r&RuleCell != 0 {
		parts = append(parts, "cell")
	}
	if r&RuleGroup != 0 {
		parts = append(parts, "group")
	}
	if r&RuleExplicit != 0 {
		parts = append(parts, "explicit")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Pair is an explicit conflict between two slots. Direction does not matter.
type Pair struct {
	A SlotCode
	B SlotCode
}

// ConflictIndex maps every slot to the slots it conflicts with.
// It is symmetric and irreflexive, and never changes after BuildIndex returns.
type ConflictIndex struct {
	adj    map[SlotCode]map[SlotCode]Rule
	sorted map[SlotCode][]SlotCode
	pairs  int
}

// BuildIndex derives the conflict index for grid from the co-scheduling rule,
// the group key rule and the explicit pairs. A nil groupKey means DefaultGroupKey.
func BuildIndex(grid *Grid, groupKey GroupKeyFunc, explicit []Pair) (*ConflictIndex, error) {
	if groupKey == nil {
		groupKey = DefaultGroupKey
	}

	ci := &ConflictIndex{
		adj:    make(map[SlotCode]map[SlotCode]Rule, grid.NumSlots()),
		sorted: make(map[SlotCode][]SlotCode, grid.NumSlots()),
	}
	for _, s := range grid.order {
		ci.adj[s] = make(map[SlotCode]Rule)
	}

	for _, row := range grid.cells {
		for _, cell := range row {
			for i, a := range cell.Slots {
				for _, b := range cell.Slots[i+1:] {
					ci.link(a, b, RuleCell)
				}
			}
		}
	}

	groups := make(map[GroupKey][]SlotCode)
	for _, s := range grid.order {
		if key := groupKey(s); key != "" {
			groups[key] = append(groups[key], s)
		}
	}
	for _, members := range groups {
		for i, a := range members {
			for _, b := range members[i+1:] {
				ci.link(a, b, RuleGroup)
			}
		}
	}

	for _, p := range explicit {
		if !grid.Has(p.A) {
			return nil, fmt.Errorf("explicit conflict %s-%s: %w", p.A, p.B, &UnknownSlotError{Slot: p.A})
		}
		if !grid.Has(p.B) {
			return nil, fmt.Errorf("explicit conflict %s-%s: %w", p.A, p.B, &UnknownSlotError{Slot: p.B})
		}
		if p.A == p.B {
			return nil, &MalformedGridError{Reason: errSelfConflict, Slot: p.A}
		}
		ci.link(p.A, p.B, RuleExplicit)
	}

	for s, peers := range ci.adj {
		list := make([]SlotCode, 0, len(peers))
		for peer := range peers {
			list = append(list, peer)
		}
		ci.sorted[s] = sortSlots(list)
		ci.pairs += len(peers)
	}
	ci.pairs /= 2

	return ci, nil
}

// link records a symmetric conflict between two distinct slots.
func (ci *ConflictIndex) link(a, b SlotCode, rule Rule) {
	if a == b {
		return
	}
	ci.adj[a][b] |= rule
	ci.adj[b][a] |= rule
}

// Conflicts returns the slots that conflict with slot, sorted.
// Unknown slots have no conflicts.
func (ci *ConflictIndex) Conflicts(slot SlotCode) []SlotCode {
	return append([]SlotCode(nil), ci.sorted[slot]...)
}

// Conflicting reports whether a and b conflict.
func (ci *ConflictIndex) Conflicting(a, b SlotCode) bool {
	_, ok := ci.adj[a][b]
	return ok
}

// RuleFor returns the rules that make a and b conflict, or 0.
func (ci *ConflictIndex) RuleFor(a, b SlotCode) Rule {
	return ci.adj[a][b]
}

// Degree returns the number of slots that conflict with slot.
func (ci *ConflictIndex) Degree(slot SlotCode) int {
	return len(ci.adj[slot])
}

// Pairs returns the number of distinct conflicting pairs.
func (ci *ConflictIndex) Pairs() int {
	return ci.pairs
}

// forEach calls fn for each slot that conflicts with slot.
func (ci *ConflictIndex) forEach(slot SlotCode, fn func(SlotCode)) {
	for peer := range ci.adj[slot] {
		fn(peer)
	}
}
