package store

import (
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/lucasreed/vidvault/internal/constants"
	"github.com/lucasreed/vidvault/internal/domain"
)

// Backup writes a consistent point-in-time copy of the store to a sibling
// file and returns its path. VACUUM INTO produces a compacted snapshot
// serialized against concurrent writes.
func (s *Store) Backup() (string, error) {
	if s.inTx {
		return "", fmt.Errorf("backup cannot run inside a batch")
	}
	dst := s.path + constants.BackupSuffix
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to clear previous backup: %w", err)
	}
	if _, err := s.root.Exec("VACUUM INTO ?", dst); err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}
	s.log.Info("store backed up", "path", dst)
	return dst, nil
}

// Restore atomically replaces the store contents from a snapshot file. The
// snapshot is validated before the primary handle is touched; if the swapped
// file cannot be opened the prior contents are put back, so the store never
// ends up half-closed.
func (s *Store) Restore(snapshotPath string) error {
	if s.inTx {
		return fmt.Errorf("restore cannot run inside a batch")
	}
	if err := validateSnapshot(snapshotPath); err != nil {
		return err
	}

	if err := s.root.Close(); err != nil {
		return fmt.Errorf("failed to close store for restore: %w", err)
	}

	prior := s.path + ".pre-restore"
	if err := copyFile(s.path, prior); err != nil {
		// Primary is closed but untouched; reopen and bail.
		return s.reopen(fmt.Errorf("failed to preserve current store: %w", err))
	}
	removeSidecars(s.path)

	if err := copyFile(snapshotPath, s.path); err != nil {
		_ = copyFile(prior, s.path)
		_ = os.Remove(prior)
		return s.reopen(fmt.Errorf("failed to copy snapshot: %w", err))
	}

	db, err := openDB(s.path)
	if err != nil {
		// Roll back to the prior file and reopen it.
		_ = copyFile(prior, s.path)
		removeSidecars(s.path)
		_ = os.Remove(prior)
		return s.reopen(fmt.Errorf("snapshot failed to open, prior store restored: %w", err))
	}

	_ = os.Remove(prior)
	s.root = db
	s.db = db
	s.log.Info("store restored", "snapshot", snapshotPath)
	return nil
}

// reopen re-establishes the primary handle after a failed restore step and
// returns cause (joined with the reopen error if that fails too).
func (s *Store) reopen(cause error) error {
	db, err := openDB(s.path)
	if err != nil {
		return fmt.Errorf("%w (and reopening prior store failed: %v)", cause, err)
	}
	s.root = db
	s.db = db
	return cause
}

// validateSnapshot opens the candidate read-only and checks it holds the
// expected tables before anything is swapped.
func validateSnapshot(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, domain.ErrImportFormat)
	}
	db, err := sqlx.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, domain.ErrImportFormat)
	}
	defer db.Close()

	var count int
	err = db.Get(&count, `SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('videos', 'playlists', 'folders', 'play_history', 'app_settings')`)
	if err != nil || count < 5 {
		return fmt.Errorf("snapshot %s is not a store file: %w", path, domain.ErrImportFormat)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// removeSidecars drops stale WAL/SHM files next to a swapped database file.
func removeSidecars(path string) {
	os.Remove(path + "-wal")
	os.Remove(path + "-shm")
}
