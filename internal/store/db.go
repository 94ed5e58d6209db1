// Package store implements the embedded object store for library entities,
// built on sqlite. All mutations run inside write transactions; shadow index
// columns are recomputed by the adapter on every write path.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lucasreed/vidvault/internal/adapter"
	"github.com/lucasreed/vidvault/internal/domain"
	"github.com/lucasreed/vidvault/internal/logger"
	"github.com/lucasreed/vidvault/internal/schema"
)

// Store is the embedded object store. It is constructed explicitly via Open
// and passed by reference to callers; there is no package-level handle.
type Store struct {
	db   sqlx.Ext // *sqlx.DB normally, *sqlx.Tx inside a batch
	root *sqlx.DB
	path string
	log  *logger.Logger
	inTx bool
}

// Open opens (or creates) the store at path, applies pragmas and schema, and
// bootstraps the singleton settings row if absent.
func Open(path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Default()
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, root: db, path: path, log: log.WithComponent("store")}, nil
}

func openDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Set pragmas for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// Schema and the default settings row go in one transaction.
	tx, err := db.Beginx()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to begin bootstrap tx: %w", err)
	}
	if err := bootstrap(tx); err != nil {
		_ = tx.Rollback()
		db.Close()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to commit bootstrap: %w", err)
	}

	return db, nil
}

func bootstrap(tx *sqlx.Tx) error {
	if _, err := tx.Exec(schema.DDL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT OR IGNORE INTO schema_info (version) VALUES (?)", schema.Version,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	var count int
	if err := tx.Get(&count,
		"SELECT COUNT(*) FROM app_settings WHERE id = ?", domain.SettingsID,
	); err != nil {
		return fmt.Errorf("failed to check settings row: %w", err)
	}
	if count == 0 {
		defaults := adapter.DefaultSettings(time.Now().UTC())
		if _, err := tx.NamedExec(insertSettingsQuery, defaults); err != nil {
			return fmt.Errorf("failed to bootstrap settings row: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.root.Close()
}

// Path returns the primary store file path.
func (s *Store) Path() string {
	return s.path
}

// Batch runs fn as one atomic unit: every create/update/delete issued through
// the passed store becomes visible together, or not at all. A nested Batch
// joins the ambient transaction. On error the whole batch is rolled back and
// the returned error matches both domain.ErrTransactionAborted and fn's error.
func (s *Store) Batch(ctx context.Context, fn func(*Store) error) error {
	if s.inTx {
		return fn(s)
	}
	err := s.inWriteTx(ctx, fn)
	if err != nil {
		return errors.Join(domain.ErrTransactionAborted, err)
	}
	return nil
}

// inWriteTx is the internal transaction wrapper used by read-modify-write
// operations; unlike Batch it propagates fn's error unchanged.
func (s *Store) inWriteTx(ctx context.Context, fn func(*Store) error) error {
	if s.inTx {
		return fn(s)
	}
	tx, err := s.root.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	txStore := &Store{db: tx, root: s.root, path: s.path, log: s.log, inTx: true}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
