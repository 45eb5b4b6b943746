// Package store provides SQLite-backed persistence for the utterance catalog.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Utterance is one canonical phrase registered in the catalog.
type Utterance struct {
	ID        int64  `json:"id"`
	Phrase    string `json:"phrase"`
	Enabled   bool   `json:"enabled"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Catalog is the SQLite-backed utterance registry.
// Thread-safe for concurrent callers.
type Catalog struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS utterances (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    phrase TEXT NOT NULL UNIQUE,
    enabled INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_utterances_enabled ON utterances(enabled);
`

// NewCatalog creates a new in-memory catalog.
func NewCatalog() (*Catalog, error) {
	return NewCatalogWithDSN(":memory:")
}

// NewCatalogWithDSN creates a catalog with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewCatalogWithDSN(dsn string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// AddUtterance registers a phrase, returning the existing row when the
// phrase is already present.
func (c *Catalog) AddUtterance(phrase string) (*Utterance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, err := c.getByPhrase(phrase); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	now := time.Now().UnixMilli()
	res, err := c.db.Exec(
		`INSERT INTO utterances (phrase, enabled, created_at, updated_at) VALUES (?, 1, ?, ?)`,
		phrase, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert utterance: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}
	return &Utterance{ID: id, Phrase: phrase, Enabled: true, CreatedAt: now, UpdatedAt: now}, nil
}

// SetEnabled flips whether a phrase participates in matching.
func (c *Catalog) SetEnabled(id int64, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	val := 0
	if enabled {
		val = 1
	}
	res, err := c.db.Exec(
		`UPDATE utterances SET enabled = ?, updated_at = ? WHERE id = ?`,
		val, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update utterance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("utterance %d not found", id)
	}
	return nil
}

// DeleteUtterance removes a phrase from the catalog.
func (c *Catalog) DeleteUtterance(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(`DELETE FROM utterances WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete utterance: %w", err)
	}
	return nil
}

// GetUtterance fetches one row by id, nil when absent.
func (c *Catalog) GetUtterance(id int64) (*Utterance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row := c.db.QueryRow(
		`SELECT id, phrase, enabled, created_at, updated_at FROM utterances WHERE id = ?`, id)
	return scanUtterance(row)
}

// ListUtterances returns every row ordered by phrase.
func (c *Catalog) ListUtterances() ([]*Utterance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.Query(
		`SELECT id, phrase, enabled, created_at, updated_at FROM utterances ORDER BY phrase`)
	if err != nil {
		return nil, fmt.Errorf("failed to list utterances: %w", err)
	}
	defer rows.Close()

	var out []*Utterance
	for rows.Next() {
		u := &Utterance{}
		var enabled int
		if err := rows.Scan(&u.ID, &u.Phrase, &enabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan utterance: %w", err)
		}
		u.Enabled = enabled != 0
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListEnabledPhrases returns the enabled phrase strings ordered by phrase,
// ready for queryprep.WithUtterances.
func (c *Catalog) ListEnabledPhrases() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.Query(`SELECT phrase FROM utterances WHERE enabled = 1 ORDER BY phrase`)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled phrases: %w", err)
	}
	defer rows.Close()

	var phrases []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan phrase: %w", err)
		}
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

// CountUtterances returns the number of registered phrases.
func (c *Catalog) CountUtterances() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM utterances`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count utterances: %w", err)
	}
	return n, nil
}

func (c *Catalog) getByPhrase(phrase string) (*Utterance, error) {
	row := c.db.QueryRow(
		`SELECT id, phrase, enabled, created_at, updated_at FROM utterances WHERE phrase = ?`, phrase)
	return scanUtterance(row)
}

func scanUtterance(row *sql.Row) (*Utterance, error) {
	u := &Utterance{}
	var enabled int
	err := row.Scan(&u.ID, &u.Phrase, &enabled, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan utterance: %w", err)
	}
	u.Enabled = enabled != 0
	return u, nil
}
