package host

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-dashwidgets/pkg/model"
)

const schemaVersion = 1

// Submission is a stored data-submit event.
type Submission struct {
	ID        string
	Widget    string
	Records   []model.SubmissionRecord
	CreatedAt time.Time
}

// TableRow is a stored action-submit event: the raw values typed into the
// add-record dialog, keyed by control name.
type TableRow struct {
	ID        string
	Widget    string
	Values    map[string]string
	CreatedAt time.Time
}

// Store persists what the widgets emit. The widgets never write anywhere
// themselves.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// OpenStore opens (creating when needed) the sqlite database at path.
func OpenStore(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("host: open store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("host: connect store: %w", err)
	}

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Second) }}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("host: create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("host: read schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			widget TEXT NOT NULL,
			records TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS table_rows (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			widget TEXT NOT NULL,
			row_values TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`INSERT INTO schema_migrations (version) VALUES (1)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("host: migration v1: %w", err)
		}
	}
	return tx.Commit()
}

// SaveSubmission stores the records of one data-submit event and returns its
// id.
func (s *Store) SaveSubmission(ctx context.Context, widget string, records []model.SubmissionRecord) (string, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("host: encode submission: %w", err)
	}
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, widget, records, created_at) VALUES (?, ?, ?, ?)`,
		id, widget, string(payload), s.now(),
	); err != nil {
		return "", fmt.Errorf("host: save submission: %w", err)
	}
	return id, nil
}

// Submissions lists stored submissions oldest first.
func (s *Store) Submissions(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, widget, records, created_at FROM submissions ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("host: list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub     Submission
			payload string
		)
		if err := rows.Scan(&sub.ID, &sub.Widget, &payload, &sub.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &sub.Records); err != nil {
			return nil, fmt.Errorf("host: decode submission %s: %w", sub.ID, err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// AppendRow stores the values of one action-submit event.
func (s *Store) AppendRow(ctx context.Context, widget string, values map[string]string) (string, error) {
	payload, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("host: encode row: %w", err)
	}
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO table_rows (id, widget, row_values, created_at) VALUES (?, ?, ?, ?)`,
		id, widget, string(payload), s.now(),
	); err != nil {
		return "", fmt.Errorf("host: append row: %w", err)
	}
	return id, nil
}

// Rows lists the rows appended through widget in insertion order.
func (s *Store) Rows(ctx context.Context, widget string) ([]TableRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, widget, row_values, created_at FROM table_rows WHERE widget = ? ORDER BY seq`, widget)
	if err != nil {
		return nil, fmt.Errorf("host: list rows: %w", err)
	}
	defer rows.Close()

	var out []TableRow
	for rows.Next() {
		var (
			row     TableRow
			payload string
		)
		if err := rows.Scan(&row.ID, &row.Widget, &payload, &row.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &row.Values); err != nil {
			return nil, fmt.Errorf("host: decode row %s: %w", row.ID, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
