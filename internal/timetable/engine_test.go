package timetable

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func testEngine(t *testing.T, explicit ...Pair) *Engine {
	t.Helper()
	e, err := NewEngine(testGrid(t), explicit)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func mustToggle(t *testing.T, e *Engine, sel Selection, slot SlotCode) Selection {
	t.Helper()
	next, err := e.Toggle(sel, slot, Metadata{})
	if err != nil {
		t.Fatalf("Toggle(%s) failed: %v", slot, err)
	}
	return next
}

func assertBlocked(t *testing.T, e *Engine, sel Selection, slot SlotCode) {
	t.Helper()
	next, err := e.Toggle(sel, slot, Metadata{})
	var blocked *SlotBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("Toggle(%s): expected *SlotBlockedError, got %v", slot, err)
	}
	if !errors.Is(err, ErrSlotBlocked) {
		t.Errorf("Toggle(%s): expected errors.Is(err, ErrSlotBlocked)", slot)
	}
	if !next.Equal(sel) {
		t.Errorf("Toggle(%s): selection changed on failure", slot)
	}
}

func TestBuildIndex_Rules(t *testing.T) {
	e := testEngine(t, Pair{A: "A1", B: "B1"})
	ci := e.Index()

	tests := []struct {
		a, b SlotCode
		want Rule
	}{
		{"A1", "L1", RuleCell},
		{"E2", "SE1", RuleCell},
		{"SE1", "L31", RuleCell},
		{"A1", "A2", RuleGroup},
		{"A1", "B1", RuleExplicit},
		{"L1", "L2", 0},
		{"L31", "L3", 0},
		{"E2", "B1", 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%s", tt.a, tt.b), func(t *testing.T) {
			if got := ci.RuleFor(tt.a, tt.b); got != tt.want {
				t.Errorf("RuleFor(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := ci.RuleFor(tt.b, tt.a); got != tt.want {
				t.Errorf("RuleFor(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}

	// A1-L1, E2-SE1, E2-L31, SE1-L31, A2-L2, B1-L3, A1-A2, A1-B1
	if ci.Pairs() != 8 {
		t.Errorf("got %d pairs, want 8", ci.Pairs())
	}
}

func TestBuildIndex_CombinedRules(t *testing.T) {
	g, err := NewGrid([]string{"Tue"}, []string{"P1"}, [][][]SlotCode{row(slots("TA1", "TA2"))})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	e, err := NewEngine(g, []Pair{{A: "TA2", B: "TA1"}})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	got := e.Index().RuleFor("TA1", "TA2")
	if got != RuleCell|RuleGroup|RuleExplicit {
		t.Errorf("got %v, want cell+group+explicit", got)
	}
	if got.String() != "cell+group+explicit" {
		t.Errorf("got %q", got.String())
	}
	if e.Index().Pairs() != 1 {
		t.Errorf("got %d pairs, want 1", e.Index().Pairs())
	}
}

func TestBuildIndex_SymmetricAndIrreflexive(t *testing.T) {
	e := testEngine(t, Pair{A: "L1", B: "L3"})
	ci := e.Index()
	for _, a := range e.Grid().Slots() {
		for _, b := range ci.Conflicts(a) {
			if a == b {
				t.Errorf("%s conflicts with itself", a)
			}
			if !ci.Conflicting(b, a) {
				t.Errorf("%s conflicts with %s but not the other way", a, b)
			}
		}
	}
}

func TestBuildIndex_ExplicitErrors(t *testing.T) {
	g := testGrid(t)

	_, err := NewEngine(g, []Pair{{A: "A1", B: "NOPE"}})
	if !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("expected ErrUnknownSlot, got %v", err)
	}

	_, err = NewEngine(g, []Pair{{A: "A1", B: "A1"}})
	if !errors.Is(err, ErrMalformedGrid) {
		t.Errorf("expected ErrMalformedGrid, got %v", err)
	}
}

func TestBuildIndex_EmptyGroupKeySkipsRuleB(t *testing.T) {
	g, err := NewGrid(
		[]string{"Tue", "Wed"},
		[]string{"P1"},
		[][][]SlotCode{row(slots("101")), row(slots("202"))},
	)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	e, err := NewEngine(g, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if e.Index().Conflicting("101", "202") {
		t.Error("slots with empty group keys must not conflict")
	}
}

func TestNewEngine_WithGroupKey(t *testing.T) {
	// Group every slot by its first character only.
	firstChar := func(s SlotCode) GroupKey { return GroupKey(s[:1]) }
	e, err := NewEngine(testGrid(t), nil, WithGroupKey(firstChar))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if !e.Index().Conflicting("L1", "L2") {
		t.Error("expected custom policy to group labs")
	}
	if e.GroupKey("SE1") != "S" {
		t.Errorf("got %q, want S", e.GroupKey("SE1"))
	}
}

func TestToggle_GroupingExample(t *testing.T) {
	e := testEngine(t)
	var sel Selection

	sel = mustToggle(t, e, sel, "A1")
	assertBlocked(t, e, sel, "A2")

	sel = mustToggle(t, e, sel, "A1")
	sel = mustToggle(t, e, sel, "A2")
	if !sel.Has("A2") || sel.Has("A1") {
		t.Errorf("got %v, want [A2]", sel.Slots())
	}
}

func TestToggle_TemporalExample(t *testing.T) {
	e := testEngine(t)
	var sel Selection

	sel = mustToggle(t, e, sel, "E2")
	assertBlocked(t, e, sel, "SE1")
	assertBlocked(t, e, sel, "L31")

	sel = mustToggle(t, e, sel, "E2")
	sel = mustToggle(t, e, sel, "SE1")
	if !sel.Has("SE1") {
		t.Error("expected SE1 to be selected")
	}
}

func TestToggle_ExplicitOverrideExample(t *testing.T) {
	g, err := NewGrid(
		[]string{"Tue", "Wed"},
		[]string{"P1"},
		[][][]SlotCode{row(slots("A1")), row(slots("L1"))},
	)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	e, err := NewEngine(g, []Pair{{A: "A1", B: "L1"}})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	sel := mustToggle(t, e, Selection{}, "A1")
	assertBlocked(t, e, sel, "L1")

	sel = mustToggle(t, e, Selection{}, "L1")
	assertBlocked(t, e, sel, "A1")
}

func TestToggle_BlockedErrorNamesBlockers(t *testing.T) {
	e := testEngine(t, Pair{A: "L31", B: "A1"})
	sel := mustToggle(t, e, Selection{}, "A1")
	sel = mustToggle(t, e, sel, "E2")

	_, err := e.Toggle(sel, "L31", Metadata{})
	var blocked *SlotBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected *SlotBlockedError, got %v", err)
	}
	if len(blocked.BlockedBy) != 2 || blocked.BlockedBy[0] != "A1" || blocked.BlockedBy[1] != "E2" {
		t.Errorf("got blockers %v, want [A1 E2]", blocked.BlockedBy)
	}
	if err.Error() != "slot L31 is blocked by A1, E2" {
		t.Errorf("got %q", err.Error())
	}
}

func TestToggle_UnknownSlot(t *testing.T) {
	e := testEngine(t)
	sel := mustToggle(t, e, Selection{}, "A1")

	next, err := e.Toggle(sel, "Q7", Metadata{})
	if !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if !next.Equal(sel) {
		t.Error("selection changed on unknown slot")
	}

	if _, err := e.IsSelectable(sel, "Q7"); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("IsSelectable: expected ErrUnknownSlot, got %v", err)
	}
	if _, err := e.Status(sel, "Q7"); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("Status: expected ErrUnknownSlot, got %v", err)
	}
	if _, err := e.Conflicts("Q7"); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("Conflicts: expected ErrUnknownSlot, got %v", err)
	}
	if _, err := e.BlockedBy(sel, "Q7"); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("BlockedBy: expected ErrUnknownSlot, got %v", err)
	}
}

func TestToggle_MetadataAndImmutability(t *testing.T) {
	e := testEngine(t)
	empty := Selection{}

	sel, err := e.Toggle(empty, "B1", Metadata{Label: "Compilers", Tag: "core"})
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !empty.IsEmpty() {
		t.Error("toggle modified the previous selection")
	}
	m, ok := sel.Metadata("B1")
	if !ok || m.Label != "Compilers" || m.Tag != "core" {
		t.Errorf("got metadata %+v, %v", m, ok)
	}

	sel2 := mustToggle(t, e, sel, "L1")
	if sel.Has("L1") {
		t.Error("toggle modified the previous selection")
	}
	if got := sel2.Slots(); len(got) != 2 || got[0] != "B1" || got[1] != "L1" {
		t.Errorf("got order %v, want [B1 L1]", got)
	}
}

func TestIsSelectable(t *testing.T) {
	e := testEngine(t)
	sel := mustToggle(t, e, Selection{}, "A1")

	tests := []struct {
		slot SlotCode
		want bool
	}{
		{"A1", true},  // selected slots can always be toggled off
		{"L1", false}, // same cell
		{"A2", false}, // same group
		{"L2", true},
		{"E2", true},
	}
	for _, tt := range tests {
		got, err := e.IsSelectable(sel, tt.slot)
		if err != nil {
			t.Fatalf("IsSelectable(%s) failed: %v", tt.slot, err)
		}
		if got != tt.want {
			t.Errorf("IsSelectable(%s) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestBlockedSlots(t *testing.T) {
	e := testEngine(t)

	if got := e.BlockedSlots(Selection{}); len(got) != 0 {
		t.Errorf("empty selection: got %v, want none", got.Sorted())
	}

	sel := mustToggle(t, e, Selection{}, "E2")
	got := e.BlockedSlots(sel).Sorted()
	want, _ := e.Conflicts("E2")
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	sel = mustToggle(t, e, sel, "A2")
	got = e.BlockedSlots(sel).Sorted()
	// E2 -> SE1, L31; A2 -> A1, L2
	if fmt.Sprint(got) != "[A1 L2 L31 SE1]" {
		t.Errorf("got %v, want [A1 L2 L31 SE1]", got)
	}

	status, _ := e.Status(sel, "L2")
	if status != StatusBlocked {
		t.Errorf("L2: got %v, want blocked", status)
	}
	status, _ = e.Status(sel, "A2")
	if status != StatusSelected {
		t.Errorf("A2: got %v, want selected", status)
	}
	status, _ = e.Status(sel, "B1")
	if status != StatusFree {
		t.Errorf("B1: got %v, want free", status)
	}
}

func TestToggle_DeselectAlwaysSucceeds(t *testing.T) {
	e := testEngine(t)
	sel := mustToggle(t, e, Selection{}, "A1")
	sel = mustToggle(t, e, sel, "E2")

	for _, slot := range sel.Slots() {
		next, err := e.Toggle(sel, slot, Metadata{})
		if err != nil {
			t.Fatalf("deselecting %s failed: %v", slot, err)
		}
		if next.Has(slot) {
			t.Errorf("%s still selected", slot)
		}
	}
}

func TestToggle_DoubleToggleRestoresSelection(t *testing.T) {
	e := testEngine(t)
	base := mustToggle(t, e, Selection{}, "A1")
	meta := Metadata{Label: "lab"}

	for _, slot := range e.Grid().Slots() {
		first, err := e.Toggle(base, slot, meta)
		if err != nil {
			continue // blocked: nothing changed
		}
		if slot == "A1" {
			meta = Metadata{} // A1 was selected with empty metadata
		}
		second, err := e.Toggle(first, slot, meta)
		if err != nil {
			t.Fatalf("second toggle of %s failed: %v", slot, err)
		}
		if !second.Equal(base) {
			t.Errorf("double toggle of %s: got %v, want %v", slot, second.Sorted(), base.Sorted())
		}
		meta = Metadata{Label: "lab"}
	}
}

// syntheticGrid builds days x periods cells of three slots each. Slot names
// repeat a course letter every few cells so group conflicts span the grid.
func syntheticGrid(t testing.TB, days, periods int) *Grid {
	t.Helper()
	dayNames := make([]string, days)
	periodNames := make([]string, periods)
	for p := range periodNames {
		periodNames[p] = fmt.Sprintf("P%d", p)
	}
	const courses = "ABCDEFGHJK" // no L: "L<n>" is a lab code
	rows := make([][][]SlotCode, days)
	n := 0
	for d := range rows {
		dayNames[d] = fmt.Sprintf("D%d", d)
		rows[d] = make([][]SlotCode, periods)
		for p := range rows[d] {
			course := string(courses[n%len(courses)])
			rows[d][p] = []SlotCode{
				SlotCode(fmt.Sprintf("%s%d", course, n)),
				SlotCode(fmt.Sprintf("T%s%d", course, n)),
				SlotCode(fmt.Sprintf("L%d", n)),
			}
			n++
		}
	}
	g, err := NewGrid(dayNames, periodNames, rows)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return g
}

func TestToggle_RandomSequencesKeepInvariant(t *testing.T) {
	g := syntheticGrid(t, 6, 10)
	codes := g.Slots()
	pairs := []Pair{{A: codes[0], B: codes[len(codes)-1]}, {A: codes[5], B: codes[40]}}
	e, err := NewEngine(g, pairs)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	var sel Selection
	for i := 0; i < 2000; i++ {
		slot := codes[rng.Intn(len(codes))]
		wasSelected := sel.Has(slot)
		next, err := e.Toggle(sel, slot, Metadata{})
		if wasSelected && err != nil {
			t.Fatalf("step %d: deselecting %s failed: %v", i, slot, err)
		}
		sel = next

		picked := sel.Slots()
		for x, a := range picked {
			for _, b := range picked[x+1:] {
				if e.Index().Conflicting(a, b) {
					t.Fatalf("step %d: %s and %s both selected", i, a, b)
				}
			}
		}
	}
}

func TestBlockedSlots_LargeGrid(t *testing.T) {
	e, err := NewEngine(syntheticGrid(t, 40, 40), nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	sel := mustToggle(t, e, Selection{}, "A0")
	want, _ := e.Conflicts("A0")
	got := e.BlockedSlots(sel).Sorted()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %d blocked slots, want %d", len(got), len(want))
	}
}

func BenchmarkBlockedSlots(b *testing.B) {
	e, err := NewEngine(syntheticGrid(b, 60, 60), nil)
	if err != nil {
		b.Fatalf("NewEngine failed: %v", err)
	}
	sel, err := e.Toggle(Selection{}, "L0", Metadata{})
	if err != nil {
		b.Fatalf("Toggle failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.BlockedSlots(sel)
	}
}

func TestApply(t *testing.T) {
	e := testEngine(t)

	sel, err := e.Apply(Selection{}, "A1", "B1", "L2")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := []SlotCode{"A1", "B1", "L2"}
	for i, s := range sel.Slots() {
		if s != want[i] {
			t.Fatalf("got order %v, want %v", sel.Slots(), want)
		}
	}
	if e.Kind("L2") != KindLab || e.Kind("B1") != KindTheory {
		t.Error("Kind misclassified slots")
	}

	sel, err = e.Apply(Selection{}, "E2", "A2", "L31", "B1")
	if !errors.Is(err, ErrSlotBlocked) {
		t.Fatalf("expected ErrSlotBlocked, got %v", err)
	}
	if sel.Len() != 2 || !sel.Has("E2") || !sel.Has("A2") {
		t.Errorf("got %v, want the toggles before the rejection", sel.Slots())
	}
}
