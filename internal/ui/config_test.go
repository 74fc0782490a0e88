package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/slotpick/internal/config"
)

func TestRunConfigInteractive_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slotpick", "config.toml")

	var out bytes.Buffer
	if err := runConfigInteractive(strings.NewReader("n\n"), &out, path); err != nil {
		t.Fatalf("runConfigInteractive failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	for _, want := range []string{"Created " + path, "[grid]", "[storage]", "[ui]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunConfigInteractive_Edit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// grid name, grid file, db path, then an invalid and a valid theme.
	input := "y\nspring-2025\n\n\npurple\nlatte\n"
	var out bytes.Buffer
	if err := runConfigInteractive(strings.NewReader(input), &out, path); err != nil {
		t.Fatalf("runConfigInteractive failed: %v", err)
	}
	if !strings.Contains(out.String(), `Invalid theme "purple"`) {
		t.Errorf("expected invalid theme message:\n%s", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Grid.Name != "spring-2025" {
		t.Errorf("grid name = %q, want spring-2025", cfg.Grid.Name)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("theme = %q, want latte", cfg.UI.Theme)
	}
}

func TestRunConfigInteractive_RejectsInvalidName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	input := "y\nnot a name\n\n\n\n"
	var out bytes.Buffer
	if err := runConfigInteractive(strings.NewReader(input), &out, path); err == nil {
		t.Fatal("expected an error for an invalid grid name")
	}
}
