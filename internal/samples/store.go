package samples

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DBExecutor lets helpers run against either *sql.DB or *sql.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InitDB creates the schema if it does not exist yet.
func InitDB(ctx context.Context, db DBExecutor) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// Store is a SQLite backed sample collection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a sample, filling in the id and timestamp when unset.
// Saving an existing id replaces it.
func (s *Store) Save(ctx context.Context, smp *Sample) error {
	return s.saveWith(ctx, s.db, smp)
}

func (s *Store) saveWith(ctx context.Context, db DBExecutor, smp *Sample) error {
	if smp.Letter < 'A' || smp.Letter > 'Z' {
		return fmt.Errorf("saving sample: invalid letter %q", smp.Letter)
	}
	if len(smp.Stroke) == 0 {
		return fmt.Errorf("saving sample: empty stroke")
	}
	if smp.ID == "" {
		smp.ID = uuid.NewString()
	}
	if smp.CreatedAt.IsZero() {
		smp.CreatedAt = s.now()
	}
	stroke, err := json.Marshal(EncodeStroke(smp.Stroke))
	if err != nil {
		return fmt.Errorf("encoding stroke: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO samples (id, letter, stroke, matched, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   letter = excluded.letter,
		   stroke = excluded.stroke,
		   matched = excluded.matched,
		   source = excluded.source,
		   created_at = excluded.created_at`,
		smp.ID, string(smp.Letter), string(stroke), smp.Matched, smp.Source, smp.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("saving sample: %w", err)
	}
	return nil
}

const selectSample = `SELECT id, letter, stroke, matched, source, created_at FROM samples`

type scanner interface {
	Scan(dest ...any) error
}

func scanSample(row scanner) (Sample, error) {
	var (
		smp     Sample
		letter  string
		stroke  string
		created int64
	)
	if err := row.Scan(&smp.ID, &letter, &stroke, &smp.Matched, &smp.Source, &created); err != nil {
		return Sample{}, err
	}
	l, err := ParseLetter(letter)
	if err != nil {
		return Sample{}, fmt.Errorf("sample %s: %w", smp.ID, err)
	}
	var data StrokeData
	if err := json.Unmarshal([]byte(stroke), &data); err != nil {
		return Sample{}, fmt.Errorf("sample %s: decoding stroke: %w", smp.ID, err)
	}
	if smp.Stroke, err = data.Stroke(); err != nil {
		return Sample{}, fmt.Errorf("sample %s: %w", smp.ID, err)
	}
	smp.Letter = l
	smp.CreatedAt = time.UnixMilli(created)
	return smp, nil
}

// Get returns the sample with the given id.
func (s *Store) Get(ctx context.Context, id string) (Sample, error) {
	smp, err := scanSample(s.db.QueryRowContext(ctx, selectSample+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Sample{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Sample{}, fmt.Errorf("loading sample: %w", err)
	}
	return smp, nil
}

// List returns samples newest first. A zero letter lists every letter.
func (s *Store) List(ctx context.Context, letter rune) ([]Sample, error) {
	query := selectSample
	var args []any
	if letter != 0 {
		query += ` WHERE letter = ?`
		args = append(args, string(letter))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing samples: %w", err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		smp, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing samples: %w", err)
	}
	return out, nil
}

// Delete removes a sample.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM samples WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sample: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting sample: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Counts returns the number of samples per letter.
func (s *Store) Counts(ctx context.Context) (map[rune]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT letter, COUNT(*) FROM samples GROUP BY letter`)
	if err != nil {
		return nil, fmt.Errorf("counting samples: %w", err)
	}
	defer rows.Close()

	counts := make(map[rune]int)
	for rows.Next() {
		var letter string
		var n int
		if err := rows.Scan(&letter, &n); err != nil {
			return nil, fmt.Errorf("counting samples: %w", err)
		}
		if l, err := ParseLetter(letter); err == nil {
			counts[l] = n
		}
	}
	return counts, rows.Err()
}

// Import saves every sample in one transaction.
func (s *Store) Import(ctx context.Context, list []Sample) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	for i := range list {
		if err := s.saveWith(ctx, tx, &list[i]); err != nil {
			return 0, fmt.Errorf("importing sample %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(list), nil
}
