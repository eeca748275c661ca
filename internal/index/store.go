// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a SQLite lookup table of generated conversation titles
// so converted files can be queried by conversation ID or title prefix.
package index

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/conversation-retitle/pkg/types"
)

const defaultMaxResults = 20

// ErrNotFound is returned by Lookup when no entry has the requested ID.
var ErrNotFound = errors.New("conversation not found")

// Entry is one indexed conversation.
type Entry struct {
	ConversationID string    `json:"conversation_id" yaml:"conversation_id"`
	Title          string    `json:"title" yaml:"title"`
	FirstName      string    `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	Source         string    `json:"source" yaml:"source"`
	LoadedAt       time.Time `json:"loaded_at" yaml:"loaded_at"`
}

// LoadSummary holds counts from a Load run.
type LoadSummary struct {
	Inserted int
	Updated  int
}

// Total returns the number of rows loaded.
func (s LoadSummary) Total() int {
	return s.Inserted + s.Updated
}

// Store manages the title index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the index at cfg.DBPath and ensures the schema.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = types.DefaultIndexPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			first_name TEXT,
			source TEXT,
			loaded_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_title ON conversations(title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load reads a converted CSV and upserts one entry per row. The file must
// carry conversation_id and title columns. All rows are written in a single
// transaction; a malformed row leaves the index unchanged.
func (s *Store) Load(ctx context.Context, csvPath string, w io.Writer) (LoadSummary, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("opening %s: %w", csvPath, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return LoadSummary{}, fmt.Errorf("reading header of %s: %w", csvPath, err)
	}
	idCol := slices.Index(header, types.ColConversationID)
	titleCol := slices.Index(header, types.ColTitle)
	nameCol := slices.Index(header, types.ColFirstName)
	if idCol < 0 || titleCol < 0 {
		return LoadSummary{}, fmt.Errorf("%s: header needs %s and %s columns", csvPath, types.ColConversationID, types.ColTitle)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PrepareContext(ctx, `SELECT count(*) FROM conversations WHERE conversation_id = ?`)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("preparing lookup: %w", err)
	}
	defer exists.Close()

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO conversations (conversation_id, title, first_name, source, loaded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(conversation_id) DO UPDATE SET
			title=excluded.title, first_name=excluded.first_name,
			source=excluded.source, loaded_at=excluded.loaded_at`)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer upsert.Close()

	loadedAt := time.Now().UTC().Format(time.RFC3339Nano)
	var summary LoadSummary

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return LoadSummary{}, fmt.Errorf("reading row %d of %s: %w", line, csvPath, err)
		}

		firstName := ""
		if nameCol >= 0 {
			firstName = row[nameCol]
		}

		var n int
		if err := exists.QueryRowContext(ctx, row[idCol]).Scan(&n); err != nil {
			return LoadSummary{}, fmt.Errorf("checking %s: %w", row[idCol], err)
		}
		if _, err := upsert.ExecContext(ctx, row[idCol], row[titleCol], firstName, csvPath, loadedAt); err != nil {
			return LoadSummary{}, fmt.Errorf("indexing %s: %w", row[idCol], err)
		}
		if n > 0 {
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return LoadSummary{}, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "indexed %s: %d new, %d updated\n", csvPath, summary.Inserted, summary.Updated)
	return summary, nil
}

// Lookup returns the entry for a conversation ID.
func (s *Store) Lookup(ctx context.Context, conversationID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, title, first_name, source, loaded_at
		 FROM conversations WHERE conversation_id = ?`, conversationID)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", conversationID, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("looking up %s: %w", conversationID, err)
	}
	return e, nil
}

// Search returns entries whose title starts with prefix, ordered by title.
// An empty prefix matches every entry. limit <= 0 uses the store default.
func (s *Store) Search(ctx context.Context, prefix string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, title, first_name, source, loaded_at
		 FROM conversations WHERE title LIKE ? ESCAPE '\'
		 ORDER BY title, conversation_id LIMIT ?`,
		escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("searching titles: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e         Entry
		firstName sql.NullString
		source    sql.NullString
		loadedAt  sql.NullString
	)
	if err := sc.Scan(&e.ConversationID, &e.Title, &firstName, &source, &loadedAt); err != nil {
		return Entry{}, err
	}
	e.FirstName = firstName.String
	e.Source = source.String
	if loadedAt.Valid {
		e.LoadedAt, _ = time.Parse(time.RFC3339Nano, loadedAt.String)
	}
	return e, nil
}

// escapeLike escapes LIKE wildcards so prefix matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
