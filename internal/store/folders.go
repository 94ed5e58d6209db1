package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lucasreed/vidvault/internal/adapter"
	"github.com/lucasreed/vidvault/internal/domain"
	"github.com/lucasreed/vidvault/internal/schema"
)

const insertFolderQuery = `INSERT INTO folders (
	id, name, description, parent_id, video_count, is_private,
	created_at, updated_at, name_indexed, parent_id_indexed, created_at_indexed
) VALUES (
	:id, :name, :description, :parent_id, :video_count, :is_private,
	:created_at, :updated_at, :name_indexed, :parent_id_indexed, :created_at_indexed
)`

const updateFolderQuery = `UPDATE folders SET
	name = :name, description = :description, parent_id = :parent_id,
	video_count = :video_count, is_private = :is_private, updated_at = :updated_at,
	name_indexed = :name_indexed, parent_id_indexed = :parent_id_indexed,
	created_at_indexed = :created_at_indexed
WHERE id = :id`

func (s *Store) CreateFolder(in domain.FolderInput) (*domain.Folder, error) {
	f := adapter.FolderFromInput(in, time.Now().UTC())
	if _, err := sqlx.NamedExec(s.db, insertFolderQuery, f); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("folder %s: %w", f.ID, domain.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return f, nil
}

func (s *Store) GetFolderByID(id string) (*domain.Folder, error) {
	var f domain.Folder
	err := sqlx.Get(s.db, &f, "SELECT * FROM folders WHERE id = ?", id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return &f, nil
}

func (s *Store) UpdateFolder(id string, patch domain.FolderPatch) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		f, err := tx.GetFolderByID(id)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		adapter.ApplyFolderPatch(f, patch, time.Now().UTC())
		if _, err := sqlx.NamedExec(tx.db, updateFolderQuery, f); err != nil {
			return fmt.Errorf("failed to update folder: %w", err)
		}
		return nil
	})
}

// DeleteFolder removes the folder only; videos referencing it keep their
// folderId (weak reference, caller cleans up).
func (s *Store) DeleteFolder(id string) error {
	result, err := s.db.Exec("DELETE FROM folders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) GetAllFolders() ([]*domain.Folder, error) {
	var out []*domain.Folder
	err := sqlx.Select(s.db, &out,
		"SELECT * FROM folders ORDER BY created_at_indexed DESC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return out, nil
}

func (s *Store) SearchFolders(query string, opts domain.SearchOptions) ([]*domain.Folder, error) {
	return s.searchFolders(query, opts)
}

func (s *Store) searchFolders(query string, opts domain.SearchOptions, extra ...Predicate) ([]*domain.Folder, error) {
	q, args := buildSearch(schema.Folder, query, opts, extra...)
	var out []*domain.Folder
	if err := sqlx.Select(s.db, &out, q, args...); err != nil {
		return nil, fmt.Errorf("failed to search folders: %w", err)
	}
	return out, nil
}

// GetRootFolders lists folders with no parent.
func (s *Store) GetRootFolders() ([]*domain.Folder, error) {
	return s.searchFolders("", domain.SearchOptions{},
		Equals{Column: "parent_id_indexed", Value: ""})
}

// GetSubFolders lists the direct children of parentID.
func (s *Store) GetSubFolders(parentID string) ([]*domain.Folder, error) {
	return s.searchFolders("", domain.SearchOptions{
		Filters: domain.SearchFilters{ParentID: parentID},
	})
}

// RefreshFolderVideoCount recomputes the denormalized video count from the
// videos table. Callers invoke it after moving videos between folders.
func (s *Store) RefreshFolderVideoCount(id string) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		f, err := tx.GetFolderByID(id)
		if err != nil {
			return err
		}
		if f == nil {
			return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		var count int
		if err := sqlx.Get(tx.db, &count,
			"SELECT COUNT(*) FROM videos WHERE folder_id_indexed = ?", id); err != nil {
			return fmt.Errorf("failed to count folder videos: %w", err)
		}
		adapter.ApplyFolderPatch(f, domain.FolderPatch{VideoCount: &count}, time.Now().UTC())
		if _, err := sqlx.NamedExec(tx.db, updateFolderQuery, f); err != nil {
			return fmt.Errorf("failed to update folder count: %w", err)
		}
		return nil
	})
}
