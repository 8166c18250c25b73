// Package store persists named, JSON-encoded configurations in a SQLite
// database. It sits outside the dispatch engine: callers encode a
// configuration value to JSON text first and hand the text to the store.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store lifecycle and lookup errors.
var (
	ErrStoreClosed    = errors.New("store is closed")
	ErrConfigNotFound = errors.New("configuration not found")
)

// DatabaseFile is the SQLite file name created inside the data directory.
const DatabaseFile = "attune.db"

// Record is a stored configuration row.
type Record struct {
	ConfigID  string // UUID v7, generated on first save.
	Name      string // Unique lookup key.
	Context   string // Context the configuration was produced under.
	Payload   string // JSON text.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed configuration store. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open creates the data directory if needed, opens the database, and ensures
// the schema exists.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(createConfigurations); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database. Idempotent: multiple calls succeed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Save stores payload under name, overwriting any previous payload while
// keeping the record's identity and creation time.
func (s *Store) Save(name, contextName, payload string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return Record{}, ErrStoreClosed
	}

	now := time.Now().UTC()
	nowText := now.Format(time.RFC3339)

	var id, createdText string
	row := s.db.QueryRow(`SELECT config_id, created_at FROM configurations WHERE name = ?`, name)
	err := row.Scan(&id, &createdText)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		newID, err := uuid.NewV7()
		if err != nil {
			return Record{}, fmt.Errorf("generate id: %w", err)
		}
		id = newID.String()
		createdText = nowText
		_, err = s.db.Exec(
			`INSERT INTO configurations (config_id, name, context, payload, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, name, contextName, payload, createdText, nowText)
		if err != nil {
			return Record{}, fmt.Errorf("insert configuration: %w", err)
		}
	case err != nil:
		return Record{}, fmt.Errorf("lookup configuration: %w", err)
	default:
		_, err = s.db.Exec(
			`UPDATE configurations SET context = ?, payload = ?, updated_at = ? WHERE config_id = ?`,
			contextName, payload, nowText, id)
		if err != nil {
			return Record{}, fmt.Errorf("update configuration: %w", err)
		}
	}

	created, err := time.Parse(time.RFC3339, createdText)
	if err != nil {
		created = now
	}
	return Record{
		ConfigID:  id,
		Name:      name,
		Context:   contextName,
		Payload:   payload,
		CreatedAt: created,
		UpdatedAt: now.Truncate(time.Second),
	}, nil
}

// Load returns the record stored under name.
func (s *Store) Load(name string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return Record{}, ErrStoreClosed
	}

	row := s.db.QueryRow(
		`SELECT config_id, name, context, payload, created_at, updated_at
		 FROM configurations WHERE name = ?`, name)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}
	return rec, err
}

// List returns all records ordered by name.
func (s *Store) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(
		`SELECT config_id, name, context, payload, created_at, updated_at
		 FROM configurations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes the record stored under name. Returns ErrConfigNotFound if
// no such record exists.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}

	res, err := s.db.Exec(`DELETE FROM configurations WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var createdText, updatedText string
	if err := row.Scan(&rec.ConfigID, &rec.Name, &rec.Context, &rec.Payload, &createdText, &updatedText); err != nil {
		return Record{}, err
	}
	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdText); err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedText); err != nil {
		return Record{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return rec, nil
}
