package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the ent SQL driver and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)

	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// ResultRepo returns a ResultRepo backed by this store.
func (s *Store) ResultRepo() ResultRepo {
	return &resultRepo{drv: s.drv}
}

// CredentialRepo returns a CredentialRepo backed by this store.
func (s *Store) CredentialRepo() CredentialRepo {
	return &credentialRepo{drv: s.drv}
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LUGAT_DB environment variable
// 2. $XDG_DATA_HOME/lugat/lugat.db
// 3. ~/.local/share/lugat/lugat.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LUGAT_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lugat", "lugat.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
