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

const insertHistoryQuery = `INSERT INTO play_history (
	id, video_id, played_at, position, duration, completed,
	playback_speed, volume, device_info, video_id_indexed, played_at_indexed
) VALUES (
	:id, :video_id, :played_at, :position, :duration, :completed,
	:playback_speed, :volume, :device_info, :video_id_indexed, :played_at_indexed
)`

const updateHistoryQuery = `UPDATE play_history SET
	video_id = :video_id, played_at = :played_at, position = :position,
	duration = :duration, completed = :completed, playback_speed = :playback_speed,
	volume = :volume, device_info = :device_info,
	video_id_indexed = :video_id_indexed, played_at_indexed = :played_at_indexed
WHERE id = :id`

func (s *Store) CreatePlayHistory(in domain.PlayHistoryInput) (*domain.PlayHistory, error) {
	h := adapter.PlayHistoryFromInput(in, time.Now().UTC())
	if _, err := sqlx.NamedExec(s.db, insertHistoryQuery, h); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("history %s: %w", h.ID, domain.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create history entry: %w", err)
	}
	return h, nil
}

func (s *Store) GetPlayHistoryByID(id string) (*domain.PlayHistory, error) {
	var h domain.PlayHistory
	err := sqlx.Get(s.db, &h, "SELECT * FROM play_history WHERE id = ?", id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history entry: %w", err)
	}
	return &h, nil
}

func (s *Store) UpdatePlayHistory(id string, patch domain.PlayHistoryPatch) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		h, err := tx.GetPlayHistoryByID(id)
		if err != nil {
			return err
		}
		if h == nil {
			return fmt.Errorf("history %s: %w", id, domain.ErrNotFound)
		}
		adapter.ApplyPlayHistoryPatch(h, patch, time.Now().UTC())
		if _, err := sqlx.NamedExec(tx.db, updateHistoryQuery, h); err != nil {
			return fmt.Errorf("failed to update history entry: %w", err)
		}
		return nil
	})
}

func (s *Store) DeletePlayHistory(id string) error {
	result, err := s.db.Exec("DELETE FROM play_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("history %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GetAllPlayHistory returns every entry, most recently played first.
func (s *Store) GetAllPlayHistory() ([]*domain.PlayHistory, error) {
	var out []*domain.PlayHistory
	err := sqlx.Select(s.db, &out,
		"SELECT * FROM play_history ORDER BY played_at_indexed DESC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return out, nil
}

func (s *Store) SearchPlayHistory(query string, opts domain.SearchOptions) ([]*domain.PlayHistory, error) {
	return s.searchPlayHistory(query, opts)
}

func (s *Store) searchPlayHistory(query string, opts domain.SearchOptions, extra ...Predicate) ([]*domain.PlayHistory, error) {
	q, args := buildSearch(schema.PlayHistory, query, opts, extra...)
	var out []*domain.PlayHistory
	if err := sqlx.Select(s.db, &out, q, args...); err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	return out, nil
}

// GetHistoryByVideo lists playback sessions of one video, newest first.
func (s *Store) GetHistoryByVideo(videoID string) ([]*domain.PlayHistory, error) {
	return s.searchPlayHistory("", domain.SearchOptions{},
		Equals{Column: "video_id_indexed", Value: videoID})
}

// GetRecentHistory lists the latest playback sessions across all videos.
func (s *Store) GetRecentHistory(limit int) ([]*domain.PlayHistory, error) {
	return s.searchPlayHistory("", domain.SearchOptions{
		SortBy:    domain.SortByDate,
		SortOrder: domain.SortDesc,
		Limit:     limit,
	})
}

// ClearPlayHistory removes every history entry.
func (s *Store) ClearPlayHistory() error {
	if _, err := s.db.Exec("DELETE FROM play_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
