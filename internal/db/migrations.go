package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS grids (
			name        TEXT PRIMARY KEY,
			title       TEXT NOT NULL DEFAULT '',
			definition  TEXT NOT NULL,
			days        INTEGER NOT NULL CHECK(days > 0),
			periods     INTEGER NOT NULL CHECK(periods > 0),
			slots       INTEGER NOT NULL CHECK(slots > 0),
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_grids_updated ON grids(updated_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating grids table: %w", err)
	}

	return nil
}
