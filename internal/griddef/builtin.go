package griddef

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.toml
var builtinGrids embed.FS

// DefaultName is the built-in grid used when nothing else is configured.
const DefaultName = "nitt-fall-2024"

// Builtin returns the embedded grid definition called name.
func Builtin(name string) (*Definition, error) {
	data, err := builtinGrids.ReadFile(path.Join("builtin", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("built-in grid %q: %w", name, ErrNotFound)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("built-in grid %q: %w", name, err)
	}
	return def, nil
}

// IsBuiltin reports whether name is an embedded grid.
func IsBuiltin(name string) bool {
	for _, n := range BuiltinNames() {
		if n == name {
			return true
		}
	}
	return false
}

// BuiltinNames lists the embedded grids.
func BuiltinNames() []string {
	entries, err := builtinGrids.ReadDir("builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
