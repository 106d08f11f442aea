package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"asisto/internal/stringx"
)

// Columns writable through Update. Unknown keys are dropped before the
// write, mirroring what the command grammar recognizes.
var writableColumns = []string{"descripcion"}

// Config holds the store configuration. The database location is always
// explicit, the store never derives it from the process working directory.
type Config struct {
	Path string
}

// DefaultConfig returns the default store configuration
func DefaultConfig() Config {
	return Config{Path: "./data/asisto.db"}
}

// CategoryStore is a SQLite-backed category store. Every call runs in its
// own implicit transaction and is safe for concurrent use.
type CategoryStore struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at cfg.Path and ensures
// the schema exists.
func Open(cfg Config) (*CategoryStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &CategoryStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *CategoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categorias (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		descripcion TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database
func (s *CategoryStore) Close() error {
	return s.db.Close()
}

// Create inserts a category and returns the generated id
func (s *CategoryStore) Create(ctx context.Context, description string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categorias (descripcion) VALUES (?)`,
		normalizeValue(description),
	)
	if err != nil {
		return 0, storeErr("create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("create", err)
	}
	return id, nil
}

// GetByID returns one category, or sql.ErrNoRows wrapped when absent
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, descripcion FROM categorias WHERE id = ?`, id,
	).Scan(&c.ID, &c.Description)
	if err != nil {
		return Category{}, storeErr("get", err)
	}
	return c, nil
}

// ListAll returns every category in natural (rowid) order
func (s *CategoryStore) ListAll(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, descripcion FROM categorias`)
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Description); err != nil {
			return nil, storeErr("list", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", err)
	}
	return out, nil
}

// Update writes the given field/value pairs to the row with the given id
// and returns the number of affected rows. Unknown field keys are dropped,
// booleans are stored as 0/1 and strings are trimmed and diacritic-stripped
// so stored text matches recognized input.
func (s *CategoryStore) Update(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	var (
		sets []string
		args []any
	)
	for _, col := range writableColumns {
		v, ok := fields[col]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, toColumnValue(v))
	}
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE categorias SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return 0, storeErr("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("update", err)
	}
	return n, nil
}

// Delete removes the row with the given id and returns the number of
// affected rows
func (s *CategoryStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categorias WHERE id = ?`, id)
	if err != nil {
		return 0, storeErr("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("delete", err)
	}
	return n, nil
}

// toColumnValue coerces a parameter value to its storage representation
func toColumnValue(v any) any {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return normalizeValue(t)
	default:
		return v
	}
}

func normalizeValue(s string) string {
	return strings.TrimSpace(stringx.StripDiacritics(s))
}
