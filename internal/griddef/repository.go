package griddef

import (
	"context"
	"fmt"
	"time"
)

// Summary describes a stored grid without decoding it.
type Summary struct {
	Name      string
	Title     string
	Days      int
	Periods   int
	Slots     int
	UpdatedAt time.Time
}

// Repository stores grid definitions by name.
type Repository interface {
	// SaveDefinition inserts or replaces the definition with the same name.
	SaveDefinition(ctx context.Context, def *Definition) error

	// GetDefinition returns the named definition, or ErrNotFound.
	GetDefinition(ctx context.Context, name string) (*Definition, error)

	// ListDefinitions returns all stored grids ordered by name.
	ListDefinitions(ctx context.Context) ([]Summary, error)

	// DeleteDefinition removes the named definition, or returns ErrNotFound.
	DeleteDefinition(ctx context.Context, name string) error

	// Close releases any resources held by the repository.
	Close() error
}

// Source says where to find the grid for a session.
// File wins over Name; Name is looked up among the built-in grids first,
// then in the repository.
type Source struct {
	Name string
	File string
}

// Resolve loads the definition src points at. repo may be nil when only
// built-in grids and files are needed.
func Resolve(ctx context.Context, repo Repository, src Source) (*Definition, error) {
	switch {
	case src.File != "":
		return LoadFile(src.File)
	case src.Name == "":
		return nil, ErrNoDefinition
	case IsBuiltin(src.Name):
		return Builtin(src.Name)
	case repo == nil:
		return nil, fmt.Errorf("grid %q: %w", src.Name, ErrNotFound)
	}
	return repo.GetDefinition(ctx, src.Name)
}
