// Package db provides SQLite storage for the grid catalog.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/slotpick/internal/griddef"
)

// SQLite implements griddef.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SaveDefinition validates def and inserts it, replacing any grid with the same name.
// The stored text is the canonical TOML encoding of def.
func (s *SQLite) SaveDefinition(ctx context.Context, def *griddef.Definition) error {
	if err := griddef.ValidateName(def.Name); err != nil {
		return err
	}
	engine, err := def.Engine()
	if err != nil {
		return err
	}
	grid := engine.Grid()

	data, err := def.Marshal()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO grids (name, title, definition, days, periods, slots, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title      = excluded.title,
			definition = excluded.definition,
			days       = excluded.days,
			periods    = excluded.periods,
			slots      = excluded.slots,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		def.Name,
		def.Title,
		string(data),
		grid.NumDays(),
		grid.NumPeriods(),
		grid.NumSlots(),
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving grid %q: %w", def.Name, err)
	}

	return nil
}

// GetDefinition retrieves a grid definition by name.
// Returns griddef.ErrNotFound if no grid has that name.
func (s *SQLite) GetDefinition(ctx context.Context, name string) (*griddef.Definition, error) {
	query := `SELECT definition FROM grids WHERE name = ?`

	var data string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("grid %q: %w", name, griddef.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying grid: %w", err)
	}

	def, err := griddef.Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decoding stored grid %q: %w", name, err)
	}
	return def, nil
}

// ListDefinitions returns a summary of every stored grid, ordered by name.
func (s *SQLite) ListDefinitions(ctx context.Context) ([]griddef.Summary, error) {
	query := `
		SELECT name, title, days, periods, slots, updated_at
		FROM grids
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying grids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []griddef.Summary
	for rows.Next() {
		var (
			sum       griddef.Summary
			updatedAt string
		)
		if err := rows.Scan(&sum.Name, &sum.Title, &sum.Days, &sum.Periods, &sum.Slots, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning grid: %w", err)
		}
		sum.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated at: %w", err)
		}
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grids: %w", err)
	}

	return out, nil
}

// DeleteDefinition removes a grid by name.
// Returns griddef.ErrNotFound if no grid has that name.
func (s *SQLite) DeleteDefinition(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM grids WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting grid: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("grid %q: %w", name, griddef.ErrNotFound)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ griddef.Repository = (*SQLite)(nil)
