// Package store provides the sqlite-backed repository for projects,
// inspections, and the notification log. It satisfies
// project.Repository and notify.Sink so the composition root can swap
// it for the in-memory Registry without touching handlers.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"sitechat/internal/notify"
	"sitechat/internal/project"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Store is the durable repository backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens SQLite with WAL
// mode, and runs migrations.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sitechat.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			location   TEXT NOT NULL,
			contact    TEXT NOT NULL,
			timeline   TEXT NOT NULL DEFAULT '',
			budget     REAL NOT NULL DEFAULT 0,
			phase      TEXT NOT NULL,
			completion INTEGER NOT NULL DEFAULT 0,
			notes      TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS inspections (
			id         TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id),
			type       TEXT NOT NULL,
			date       TEXT NOT NULL,
			inspector  TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_inspections_project
			ON inspections(project_id);

		CREATE TABLE IF NOT EXISTS notifications (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			target_contact TEXT NOT NULL,
			body           TEXT NOT NULL,
			urgency        TEXT NOT NULL,
			dispatched_at  TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// --- project.Repository ---

// PutProject inserts or replaces a project row.
func (s *Store) PutProject(p *project.Project) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO projects
			(id, name, location, contact, timeline, budget, phase, completion, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Location, p.Contact, p.Timeline, p.Budget,
		string(p.Phase), p.Completion, p.Notes,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("store: put project %q: %w", p.ID, err)
	}
	return nil
}

// GetProject loads a project by id, or project.ErrNotFound.
func (s *Store) GetProject(id string) (*project.Project, error) {
	row := s.db.QueryRow(`
		SELECT id, name, location, contact, timeline, budget, phase, completion, notes, created_at, updated_at
		FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %q: %w", id, project.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get project %q: %w", id, err)
	}
	return p, nil
}

// ListProjects returns all projects ordered by creation time.
func (s *Store) ListProjects() ([]*project.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, name, location, contact, timeline, budget, phase, completion, notes, created_at, updated_at
		FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	defer rows.Close()

	var out []*project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list projects: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	return out, nil
}

// UpdateProgress applies the update inside a transaction and computes
// the milestone flag from the value being written.
func (s *Store) UpdateProgress(id string, phase project.Phase, completion int, notes string) (*project.Project, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("store: update progress: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT id, name, location, contact, timeline, budget, phase, completion, notes, created_at, updated_at
		FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("project %q: %w", id, project.ErrNotFound)
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: update progress %q: %w", id, err)
	}

	p.Phase = phase
	p.Completion = completion
	if notes != "" {
		p.Notes = notes
	}
	p.UpdatedAt = time.Now()

	if _, err := tx.Exec(`
		UPDATE projects SET phase = ?, completion = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		string(p.Phase), p.Completion, p.Notes, formatTime(p.UpdatedAt), id,
	); err != nil {
		return nil, false, fmt.Errorf("store: update progress %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("store: update progress %q: %w", id, err)
	}

	return p, project.IsMilestone(completion), nil
}

// PutInspection inserts an inspection. The project must exist.
func (s *Store) PutInspection(i *project.Inspection) error {
	if _, err := s.GetProject(i.ProjectID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO inspections (id, project_id, type, date, inspector, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.ProjectID, string(i.Type), i.Date, i.Inspector, i.Status, formatTime(i.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("store: put inspection %q: %w", i.ID, err)
	}
	return nil
}

// ListInspections returns a project's inspections in creation order.
func (s *Store) ListInspections(projectID string) ([]*project.Inspection, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, type, date, inspector, status, created_at
		FROM inspections WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("store: list inspections: %w", err)
	}
	defer rows.Close()

	var out []*project.Inspection
	for rows.Next() {
		var i project.Inspection
		var typ, createdAt string
		if err := rows.Scan(&i.ID, &i.ProjectID, &typ, &i.Date, &i.Inspector, &i.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("store: list inspections: %w", err)
		}
		i.Type = project.InspectionType(typ)
		i.CreatedAt = parseTime(createdAt)
		out = append(out, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list inspections: %w", err)
	}
	return out, nil
}

// --- notify.Sink ---

// AppendNotification appends a dispatched notification to the log.
// The log is append-only; rows are never updated.
func (s *Store) AppendNotification(rec notify.Record) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (target_contact, body, urgency, dispatched_at)
		VALUES (?, ?, ?, ?)`,
		rec.TargetContact, rec.Body, string(rec.Urgency), formatTime(rec.DispatchedAt),
	)
	if err != nil {
		return fmt.Errorf("store: append notification: %w", err)
	}
	return nil
}

// --- Row scanning ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var p project.Project
	var phase, createdAt, updatedAt string
	if err := row.Scan(
		&p.ID, &p.Name, &p.Location, &p.Contact, &p.Timeline, &p.Budget,
		&phase, &p.Completion, &p.Notes, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	p.Phase = project.Phase(phase)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime is lenient: a malformed stored timestamp becomes the zero
// time rather than failing the read.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
