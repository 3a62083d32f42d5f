// Package db provides the SQLite draft cache. Unsaved grid edits are
// snapshotted locally so a crash or lost connection never loses work.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/aula/internal/timetable"
)

// Snapshot is one cached draft: the wire-format entries of a timetable
// identified by its class/section/year/semester scope.
type Snapshot struct {
	TimetableID    int64
	ClassID        int64
	SectionID      int64
	AcademicYearID int64
	Semester       int
	Entries        map[string]timetable.WireEntry
	UpdatedAt      time.Time
}

// Scope identifies the timetable a snapshot belongs to.
type Scope struct {
	ClassID        int64
	SectionID      int64
	AcademicYearID int64
	Semester       int
}

// DraftCache stores draft snapshots in SQLite.
type DraftCache struct {
	db *sql.DB

	// Now returns the current time. Injectable for testing.
	Now func() time.Time
}

// Open creates a draft cache at the given path and runs migrations.
func Open(path string) (*DraftCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	c := &DraftCache{db: db, Now: time.Now}
	if err := c.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Put upserts the snapshot for its scope. One snapshot per scope: a newer
// draft always replaces the older one.
func (c *DraftCache) Put(ctx context.Context, snap *Snapshot) error {
	entries, err := json.Marshal(snap.Entries)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}

	query := `
		INSERT INTO draft_snapshots (
			timetable_id, class_id, section_id, academic_year_id, semester,
			entries, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(class_id, section_id, academic_year_id, semester)
		DO UPDATE SET timetable_id = excluded.timetable_id,
		              entries      = excluded.entries,
		              updated_at   = excluded.updated_at
	`

	_, err = c.db.ExecContext(ctx, query,
		snap.TimetableID,
		snap.ClassID,
		snap.SectionID,
		snap.AcademicYearID,
		snap.Semester,
		string(entries),
		c.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}

	return nil
}

// Get retrieves the snapshot for a scope, or nil if none is cached.
func (c *DraftCache) Get(ctx context.Context, scope Scope) (*Snapshot, error) {
	query := `
		SELECT timetable_id, class_id, section_id, academic_year_id, semester,
		       entries, updated_at
		FROM draft_snapshots
		WHERE class_id = ? AND section_id = ? AND academic_year_id = ? AND semester = ?
	`

	var (
		snap      Snapshot
		entries   string
		updatedAt string
	)

	err := c.db.QueryRowContext(ctx, query,
		scope.ClassID, scope.SectionID, scope.AcademicYearID, scope.Semester,
	).Scan(
		&snap.TimetableID,
		&snap.ClassID,
		&snap.SectionID,
		&snap.AcademicYearID,
		&snap.Semester,
		&entries,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(entries), &snap.Entries); err != nil {
		return nil, fmt.Errorf("decoding entries: %w", err)
	}

	snap.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}

	return &snap, nil
}

// Delete removes the snapshot for a scope. Removing an absent snapshot is
// not an error: deletion runs after every successful server save.
func (c *DraftCache) Delete(ctx context.Context, scope Scope) error {
	query := `
		DELETE FROM draft_snapshots
		WHERE class_id = ? AND section_id = ? AND academic_year_id = ? AND semester = ?
	`

	_, err := c.db.ExecContext(ctx, query,
		scope.ClassID, scope.SectionID, scope.AcademicYearID, scope.Semester,
	)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (c *DraftCache) Close() error {
	return c.db.Close()
}
