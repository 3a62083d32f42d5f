package db

import "fmt"

// migrate runs database migrations.
func (c *DraftCache) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS draft_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timetable_id     INTEGER NOT NULL,
			class_id         INTEGER NOT NULL,
			section_id       INTEGER NOT NULL,
			academic_year_id INTEGER NOT NULL,
			semester         INTEGER NOT NULL,
			entries          TEXT NOT NULL,
			updated_at       DATETIME NOT NULL,
			UNIQUE(class_id, section_id, academic_year_id, semester)
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_timetable ON draft_snapshots(timetable_id);
	`

	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("creating draft_snapshots table: %w", err)
	}

	return nil
}
