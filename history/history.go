// Package history keeps a journal of applied permission changes in a
// SQLite database. It is a record of what happened, not an undo stack.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS changes (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	path     TEXT NOT NULL,
	old_mode TEXT NOT NULL DEFAULT '',
	new_mode TEXT NOT NULL,
	flags    TEXT NOT NULL DEFAULT '',
	applied  INTEGER NOT NULL
)`

// Change is one applied permission change.
type Change struct {
	Path    string
	OldMode string // numeric mode before the change, "" if unknown
	NewMode string
	Flags   string // chmod pass-through flags, space separated
	Applied time.Time
}

// Journal is a SQLite-backed change log.
type Journal struct {
	db *sql.DB
}

// Open opens the journal database at path, creating it and its schema
// if needed.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error { return j.db.Close() }

// Record appends one change to the journal.
func (j *Journal) Record(ctx context.Context, c Change) error {
	at := c.Applied
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO changes (path, old_mode, new_mode, flags, applied) VALUES (?, ?, ?, ?, ?)`,
		c.Path, c.OldMode, c.NewMode, c.Flags, at.Unix())
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// Recent returns up to n changes, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Change, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT path, old_mode, new_mode, flags, applied FROM changes ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var out []Change
	for rows.Next() {
		var c Change
		var appliedUnix int64
		if err := rows.Scan(&c.Path, &c.OldMode, &c.NewMode, &c.Flags, &appliedUnix); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		c.Applied = time.Unix(appliedUnix, 0)
		out = append(out, c)
	}
	return out, rows.Err()
}
