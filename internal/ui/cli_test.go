package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/slotpick/internal/config"
	"github.com/javiermolinar/slotpick/internal/export"
	"github.com/javiermolinar/slotpick/internal/griddef"
	"github.com/javiermolinar/slotpick/internal/timetable"
)

const miniGrid = `
name = "mini"
title = "Mini grid"
periods = ["P1", "P2"]

[[day]]
name = "Tue"
cells = ["A1+L1", "E2+SE1+L31"]

[[day]]
name = "Wed"
cells = ["A2+L2", "B1+L3"]
`

// testEnv holds a config pointing at a temporary database and a grid file.
type testEnv struct {
	cfg      *config.Config
	gridFile string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	gridFile := filepath.Join(dir, "mini.toml")
	if err := os.WriteFile(gridFile, []byte(miniGrid), 0o644); err != nil {
		t.Fatalf("writing grid file: %v", err)
	}
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "slotpick.db")
	return testEnv{cfg: cfg, gridFile: gridFile}
}

// run executes one command line on a fresh App, since cobra keeps flag
// values between executions.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	DisableColor()

	a := NewApp(nil, e.cfg)
	t.Cleanup(func() { _ = a.Close() })

	var buf bytes.Buffer
	a.root.SetOut(&buf)
	a.root.SetErr(&buf)
	a.root.SetArgs(args)
	err := a.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := newTestEnv(t).run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "slotpick dev") {
		t.Errorf("output = %q", out)
	}
}

func TestCheck(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		contains []string
	}{
		{
			name:     "compatible slots",
			args:     []string{"A1", "E2", "B1"},
			contains: []string{"A1 selected", "E2 selected", "B1 selected", "Selection: A1, E2, B1"},
		},
		{
			name:     "group conflict",
			args:     []string{"A1", "A2"},
			wantErr:  ErrRejected,
			contains: []string{"A2 blocked by A1", "Selection: A1"},
		},
		{
			name:     "cell conflict keeps checking",
			args:     []string{"E2", "SE1", "B1"},
			wantErr:  ErrRejected,
			contains: []string{"SE1 blocked by E2", "B1 selected", "Selection: E2, B1"},
		},
		{
			name:     "double toggle",
			args:     []string{"A1,A1"},
			contains: []string{"A1 selected", "A1 removed", "Selection: (empty)"},
		},
		{
			name:     "unknown slot",
			args:     []string{"ZZ9"},
			wantErr:  ErrRejected,
			contains: []string{"ZZ9 is not in the grid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"check", "--grid-file", env.gridFile}, tt.args...)
			out, err := env.run(t, args...)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v\n%s", err, out)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "conflicts", "A1", "--grid-file", env.gridFile)
	if err != nil {
		t.Fatalf("conflicts failed: %v", err)
	}
	for _, want := range []string{"A1 · Tue P1 · theory", "L1", "cell", "A2", "group", "2 conflicts"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, err = env.run(t, "conflicts", "ZZ9", "--grid-file", env.gridFile)
	if !errors.Is(err, timetable.ErrUnknownSlot) {
		t.Errorf("error = %v, want ErrUnknownSlot", err)
	}
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "show", "--no-color", "--grid-file", env.gridFile, "--select", "A1")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"=== Mini grid ===", "Tue", "Wed", "P1", "E2 SE1 L31", "1 selected, 2 blocked, 6 free"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, err = env.run(t, "show", "--grid-file", env.gridFile, "--select", "A1,A2")
	if !errors.Is(err, timetable.ErrSlotBlocked) {
		t.Errorf("error = %v, want ErrSlotBlocked", err)
	}
}

func TestShow_BuiltinGrid(t *testing.T) {
	out, err := newTestEnv(t).run(t, "show", "--no-color")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "FALL SEMESTER") {
		t.Errorf("expected the built-in grid title:\n%s", out)
	}
}

func TestPrintGrid_DropsDaysThatDoNotFit(t *testing.T) {
	def, err := griddef.Parse([]byte(miniGrid))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	engine, err := def.Engine()
	if err != nil {
		t.Fatalf("Engine failed: %v", err)
	}
	DisableColor()

	var buf bytes.Buffer
	printGrid(&buf, engine, timetable.Selection{}, 16)
	out := buf.String()
	if !strings.Contains(out, "Tue") || strings.Contains(out, "Wed") {
		t.Errorf("expected only Tue to fit:\n%s", out)
	}
	if !strings.Contains(out, "1 more days") {
		t.Errorf("expected a note about hidden days:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "export", "--grid-file", env.gridFile, "--select", "A1,E2")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var snap export.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("decoding JSON: %v\n%s", err, out)
	}
	if snap.Grid != "mini" || len(snap.Selected) != 2 || snap.Selected[1].Code != "E2" {
		t.Errorf("snapshot = %+v", snap)
	}

	path := filepath.Join(t.TempDir(), "out.toml")
	out, err = env.run(t, "export", "--grid-file", env.gridFile, "-s", "B1", "--format", "toml", "--out", path)
	if err != nil {
		t.Fatalf("export to file failed: %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "B1") {
		t.Errorf("TOML export missing B1:\n%s", data)
	}

	_, err = env.run(t, "export", "--grid-file", env.gridFile, "--format", "png")
	if !errors.Is(err, export.ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestGridCatalog(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "grid", "import", env.gridFile)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported grid mini (2 days, 2 periods, 9 slots)") {
		t.Errorf("output = %q", out)
	}

	out, err = env.run(t, "grid", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{griddef.DefaultName, "mini", "2x2, 9 slots"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	out, err = env.run(t, "--grid", "mini", "check", "A1")
	if err != nil {
		t.Fatalf("check on imported grid failed: %v\n%s", err, out)
	}

	out, err = env.run(t, "grid", "show", "mini")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	def, err := griddef.Parse([]byte(out))
	if err != nil {
		t.Fatalf("grid show output does not parse: %v\n%s", err, out)
	}
	if def.Name != "mini" || def.Days[1].Cells[1] != "B1+L3" {
		t.Errorf("round-tripped definition = %+v", def)
	}

	if _, err := env.run(t, "grid", "remove", "mini"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := env.run(t, "grid", "rm", "mini"); !errors.Is(err, griddef.ErrNotFound) {
		t.Errorf("second remove error = %v, want ErrNotFound", err)
	}
	if _, err := env.run(t, "--grid", "mini", "check", "A1"); !errors.Is(err, griddef.ErrNotFound) {
		t.Errorf("check on removed grid error = %v, want ErrNotFound", err)
	}
}

func TestGridCatalog_BuiltinNamesAreReserved(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.run(t, "grid", "import", env.gridFile, "--name", griddef.DefaultName); !errors.Is(err, griddef.ErrReservedName) {
		t.Errorf("import error = %v, want ErrReservedName", err)
	}
	if _, err := env.run(t, "grid", "remove", griddef.DefaultName); !errors.Is(err, griddef.ErrReservedName) {
		t.Errorf("remove error = %v, want ErrReservedName", err)
	}
	if _, err := env.run(t, "grid", "import", env.gridFile, "--name", "bad name"); !errors.Is(err, griddef.ErrInvalidName) {
		t.Errorf("import error = %v, want ErrInvalidName", err)
	}
}

func TestGridShow_NormalizesCells(t *testing.T) {
	env := newTestEnv(t)
	spaced := `
name = "mini"
periods = ["P1", "P2"]
conflicts = [[" A1", "B1 "]]

[[day]]
name = "Tue"
cells = ["A1+L1", "E2+SE1+L31"]

[[day]]
name = "Wed"
cells = ["A2 + L2", "B1+L3"]
`
	if err := os.WriteFile(env.gridFile, []byte(spaced), 0o644); err != nil {
		t.Fatalf("writing grid file: %v", err)
	}

	out, err := env.run(t, "--grid-file", env.gridFile, "grid", "show")
	if err != nil {
		t.Fatalf("grid show failed: %v", err)
	}
	def, err := griddef.Parse([]byte(out))
	if err != nil {
		t.Fatalf("grid show output does not parse: %v\n%s", err, out)
	}
	if got := def.Days[1].Cells[0]; got != "A2+L2" {
		t.Errorf("cell = %q, want A2+L2", got)
	}
	if len(def.Conflicts) != 1 || def.Conflicts[0][0] != "A1" || def.Conflicts[0][1] != "B1" {
		t.Errorf("conflicts = %v, want [[A1 B1]]", def.Conflicts)
	}
}

func TestBuiltinGridDoesNotOpenCatalog(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "check", "A1"); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if _, err := os.Stat(env.cfg.Storage.DBPath); !os.IsNotExist(err) {
		t.Errorf("database should not be created for a built-in grid, stat err = %v", err)
	}
}

func TestParseSlotList(t *testing.T) {
	got := parseSlotList([]string{"A1,L2", " E2 ", "B1 C1", ""})
	want := []timetable.SlotCode{"A1", "L2", "E2", "B1", "C1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %q, want %q", i, got[i], want[i])
		}
	}
}
