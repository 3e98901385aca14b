package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mkvrobot/internal/services"
)

// minPrefix is the shortest id prefix Get and Delete accept.
const minPrefix = 4

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages scan persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the scan database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "store", "open", "database path required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Save inserts scan, assigning an id and creation time when they are unset.
func (s *Store) Save(ctx context.Context, scan Scan) (Scan, error) {
	if scan.ID == "" {
		scan.ID = uuid.NewString()
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (
            id, source, disc_name, volume_name, title_count, rejected_lines, raw_output, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.ID,
		scan.Source,
		scan.DiscName,
		scan.VolumeName,
		scan.TitleCount,
		scan.Rejected,
		scan.Raw,
		scan.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return Scan{}, fmt.Errorf("insert scan: %w", err)
	}
	return scan, nil
}

// Get fetches a scan by id or by a unique id prefix.
func (s *Store) Get(ctx context.Context, id string) (*Scan, error) {
	resolved, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, disc_name, volume_name, title_count, rejected_lines, raw_output, created_at
        FROM scans WHERE id = ?`, resolved)
	scan, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// List returns up to limit scans, newest first. Raw output is not loaded.
// A non-positive limit returns every scan.
func (s *Store) List(ctx context.Context, limit int) ([]Scan, error) {
	query := `SELECT id, source, disc_name, volume_name, title_count, rejected_lines, '', created_at
        FROM scans ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scans: %w", err)
	}
	return scans, nil
}

// Delete removes a scan by id or unique id prefix.
func (s *Store) Delete(ctx context.Context, id string) error {
	resolved, err := s.resolveID(ctx, id)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM scans WHERE id = ?", resolved)
	if err != nil {
		return fmt.Errorf("delete scan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *Store) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if len(id) < minPrefix {
		return "", services.Wrap(services.ErrValidation, "store", "lookup", fmt.Sprintf("scan id %q too short", id), nil)
	}
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM scans WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2", id, len(id), id)
	if err != nil {
		return "", fmt.Errorf("resolve scan id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var match string
		if err := rows.Scan(&match); err != nil {
			return "", fmt.Errorf("resolve scan id: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve scan id: %w", err)
	}
	switch len(matches) {
	case 0:
		return "", notFound(id)
	case 1:
		return matches[0], nil
	default:
		return "", services.Wrap(services.ErrValidation, "store", "lookup", fmt.Sprintf("scan id prefix %q is ambiguous", id), nil)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*Scan, error) {
	var (
		scan    Scan
		created string
	)
	if err := row.Scan(
		&scan.ID,
		&scan.Source,
		&scan.DiscName,
		&scan.VolumeName,
		&scan.TitleCount,
		&scan.Rejected,
		&scan.Raw,
		&created,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}
	parsed, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	scan.CreatedAt = parsed
	return &scan, nil
}

func notFound(id string) error {
	return services.Wrap(services.ErrNotFound, "store", "lookup", fmt.Sprintf("scan %q", id), nil)
}
