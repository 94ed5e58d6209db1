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

const insertVideoQuery = `INSERT INTO videos (
	id, title, description, uri, thumbnail_uri,
	duration, file_size, mime_type, format, quality,
	play_count, view_count, playback_progress, last_played_at,
	folder_id, tags, created_at, updated_at,
	title_indexed, folder_id_indexed, created_at_indexed
) VALUES (
	:id, :title, :description, :uri, :thumbnail_uri,
	:duration, :file_size, :mime_type, :format, :quality,
	:play_count, :view_count, :playback_progress, :last_played_at,
	:folder_id, :tags, :created_at, :updated_at,
	:title_indexed, :folder_id_indexed, :created_at_indexed
)`

const updateVideoQuery = `UPDATE videos SET
	title = :title, description = :description, uri = :uri, thumbnail_uri = :thumbnail_uri,
	duration = :duration, file_size = :file_size, mime_type = :mime_type,
	format = :format, quality = :quality,
	play_count = :play_count, view_count = :view_count,
	playback_progress = :playback_progress, last_played_at = :last_played_at,
	folder_id = :folder_id, tags = :tags, updated_at = :updated_at,
	title_indexed = :title_indexed, folder_id_indexed = :folder_id_indexed,
	created_at_indexed = :created_at_indexed
WHERE id = :id`

// CreateVideo persists a new video, assigning id and timestamps. A
// caller-supplied id that already exists fails with domain.ErrDuplicateKey.
func (s *Store) CreateVideo(in domain.VideoInput) (*domain.Video, error) {
	v := adapter.VideoFromInput(in, time.Now().UTC())
	if _, err := sqlx.NamedExec(s.db, insertVideoQuery, v); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("video %s: %w", v.ID, domain.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return v, nil
}

// GetVideoByID returns the video or nil when absent.
func (s *Store) GetVideoByID(id string) (*domain.Video, error) {
	var v domain.Video
	err := sqlx.Get(s.db, &v, "SELECT * FROM videos WHERE id = ?", id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &v, nil
}

// UpdateVideo merges the patch into the stored record, recomputing shadows
// for changed sources, all-or-nothing. Fails with domain.ErrNotFound when the
// id is absent.
func (s *Store) UpdateVideo(id string, patch domain.VideoPatch) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		v, err := tx.GetVideoByID(id)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
		}
		adapter.ApplyVideoPatch(v, patch, time.Now().UTC())
		if _, err := sqlx.NamedExec(tx.db, updateVideoQuery, v); err != nil {
			return fmt.Errorf("failed to update video: %w", err)
		}
		return nil
	})
}

// DeleteVideo removes the record. Referencing playlists, folders and history
// are left alone; dangling ids are advisory weak references cleaned by
// callers.
func (s *Store) DeleteVideo(id string) error {
	result, err := s.db.Exec("DELETE FROM videos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GetAllVideos returns every video, newest first.
func (s *Store) GetAllVideos() ([]*domain.Video, error) {
	var out []*domain.Video
	err := sqlx.Select(s.db, &out,
		"SELECT * FROM videos ORDER BY created_at_indexed DESC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return out, nil
}

// SearchVideos applies the uniform search algorithm: free-text match on the
// title index or tags, conjunctive filters, stable sort, offset/limit.
func (s *Store) SearchVideos(query string, opts domain.SearchOptions) ([]*domain.Video, error) {
	q, args := buildSearch(schema.Video, query, opts)
	var out []*domain.Video
	if err := sqlx.Select(s.db, &out, q, args...); err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	return out, nil
}

// GetVideosByFolder lists the videos referencing folderID.
func (s *Store) GetVideosByFolder(folderID string) ([]*domain.Video, error) {
	return s.SearchVideos("", domain.SearchOptions{
		Filters: domain.SearchFilters{FolderID: folderID},
	})
}

// GetRecentVideos lists the most recently created videos.
func (s *Store) GetRecentVideos(limit int) ([]*domain.Video, error) {
	return s.SearchVideos("", domain.SearchOptions{
		SortBy:    domain.SortByDate,
		SortOrder: domain.SortDesc,
		Limit:     limit,
	})
}

// GetMostPlayedVideos lists videos by descending play count.
func (s *Store) GetMostPlayedVideos(limit int) ([]*domain.Video, error) {
	return s.SearchVideos("", domain.SearchOptions{
		SortBy:    domain.SortByPlayCount,
		SortOrder: domain.SortDesc,
		Limit:     limit,
	})
}

// RecordPlayback bumps play count and progress on a video and stamps
// lastPlayedAt, as one atomic update.
func (s *Store) RecordPlayback(id string, progress float64) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		v, err := tx.GetVideoByID(id)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
		}
		now := time.Now().UTC()
		plays := v.PlayCount + 1
		patch := domain.VideoPatch{
			PlayCount:        &plays,
			PlaybackProgress: &progress,
			LastPlayedAt:     &now,
		}
		adapter.ApplyVideoPatch(v, patch, now)
		if _, err := sqlx.NamedExec(tx.db, updateVideoQuery, v); err != nil {
			return fmt.Errorf("failed to record playback: %w", err)
		}
		return nil
	})
}
