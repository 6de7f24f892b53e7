package trending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteStore keeps documents in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS searches (
	id          TEXT PRIMARY KEY,
	search_term TEXT NOT NULL UNIQUE,
	count       INTEGER NOT NULL DEFAULT 0,
	movie_id    INTEGER NOT NULL DEFAULT 0,
	poster_url  TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_searches_count ON searches (count DESC);
`

// OpenSQLiteStore opens (creating if needed) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FindByTerm implements Store.
func (s *SQLiteStore) FindByTerm(ctx context.Context, term string) (Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, search_term, count, movie_id, poster_url, title
		FROM searches WHERE search_term = ?`, term)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("query search term: %w", err)
	}
	return doc, nil
}

// Create implements Store.
func (s *SQLiteStore) Create(ctx context.Context, doc Document) (Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, search_term, count, movie_id, poster_url, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.SearchTerm, doc.Count, doc.MovieID, doc.PosterURL, doc.Title, now, now)
	if err != nil {
		return Document{}, fmt.Errorf("insert search: %w", err)
	}
	return doc, nil
}

// SetCount implements Store.
func (s *SQLiteStore) SetCount(ctx context.Context, id string, count int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE searches SET count = ?, updated_at = ? WHERE id = ?`,
		count, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("update search: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update search: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return nil
}

// Top implements Store.
func (s *SQLiteStore) Top(ctx context.Context, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, search_term, count, movie_id, poster_url, title
		FROM searches ORDER BY count DESC, search_term ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query trending: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trending: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trending: %w", err)
	}
	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	err := row.Scan(&doc.ID, &doc.SearchTerm, &doc.Count, &doc.MovieID, &doc.PosterURL, &doc.Title)
	return doc, err
}
