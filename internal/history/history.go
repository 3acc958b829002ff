// Package history keeps report snapshots in a SQLite database so a report
// can show how a tree changed since it was last recorded.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wilbur182/linecount/internal/export"
	"github.com/wilbur182/linecount/internal/workspace"
)

// ErrNoSnapshot is returned by Latest when nothing was recorded for a root.
var ErrNoSnapshot = errors.New("no snapshot recorded")

// Snapshot is the totals of one report.
type Snapshot struct {
	ID       int64
	Root     string
	TakenAt  time.Time
	Files    int
	Lines    int
	Code     int
	Comments int
	Blank    int
}

// FromReport captures the totals of r.
func FromReport(r *workspace.Report) Snapshot {
	s := r.Summary
	return Snapshot{
		Root:     r.Root,
		TakenAt:  r.TakenAt,
		Files:    s.TotalFiles,
		Lines:    s.TotalLines,
		Code:     s.TotalCode,
		Comments: s.TotalComments,
		Blank:    s.TotalBlank,
	}
}

// Diff returns the change from prev to cur.
func Diff(prev, cur Snapshot) *export.Delta {
	return &export.Delta{
		Since: prev.TakenAt,
		Files: cur.Files - prev.Files,
		Lines: cur.Lines - prev.Lines,
		Code:  cur.Code - prev.Code,
	}
}

// Store persists snapshots.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		taken_at INTEGER NOT NULL,
		files INTEGER NOT NULL,
		lines INTEGER NOT NULL,
		code INTEGER NOT NULL,
		comments INTEGER NOT NULL,
		blank INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_root_taken ON snapshots(root, taken_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores snap and returns it with its assigned ID.
func (s *Store) Record(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if snap.Root == "" {
		return Snapshot{}, errors.New("snapshot root required")
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO snapshots (root, taken_at, files, lines, code, comments, blank)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.Root, snap.TakenAt.UnixNano(), snap.Files, snap.Lines, snap.Code, snap.Comments, snap.Blank)
	if err != nil {
		return Snapshot{}, fmt.Errorf("record snapshot: %w", err)
	}
	if snap.ID, err = res.LastInsertId(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Latest returns the most recent snapshot for root.
func (s *Store) Latest(ctx context.Context, root string) (Snapshot, error) {
	list, err := s.List(ctx, root, 1)
	if err != nil {
		return Snapshot{}, err
	}
	if len(list) == 0 {
		return Snapshot{}, ErrNoSnapshot
	}
	return list[0], nil
}

// List returns up to limit snapshots for root, newest first. A limit <= 0
// returns all of them.
func (s *Store) List(ctx context.Context, root string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, root, taken_at, files, lines, code, comments, blank
	FROM snapshots
	WHERE root = ?
	ORDER BY taken_at DESC, id DESC
	LIMIT ?`, root, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var taken int64
		if err := rows.Scan(&snap.ID, &snap.Root, &taken, &snap.Files, &snap.Lines,
			&snap.Code, &snap.Comments, &snap.Blank); err != nil {
			return nil, err
		}
		snap.TakenAt = time.Unix(0, taken)
		out = append(out, snap)
	}
	return out, rows.Err()
}
