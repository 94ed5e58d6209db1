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

const insertPlaylistQuery = `INSERT INTO playlists (
	id, name, description, thumbnail_uri, video_ids, is_private,
	created_at, updated_at, name_indexed, created_at_indexed
) VALUES (
	:id, :name, :description, :thumbnail_uri, :video_ids, :is_private,
	:created_at, :updated_at, :name_indexed, :created_at_indexed
)`

const updatePlaylistQuery = `UPDATE playlists SET
	name = :name, description = :description, thumbnail_uri = :thumbnail_uri,
	video_ids = :video_ids, is_private = :is_private, updated_at = :updated_at,
	name_indexed = :name_indexed, created_at_indexed = :created_at_indexed
WHERE id = :id`

func (s *Store) CreatePlaylist(in domain.PlaylistInput) (*domain.Playlist, error) {
	p := adapter.PlaylistFromInput(in, time.Now().UTC())
	if _, err := sqlx.NamedExec(s.db, insertPlaylistQuery, p); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("playlist %s: %w", p.ID, domain.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return p, nil
}

func (s *Store) GetPlaylistByID(id string) (*domain.Playlist, error) {
	var p domain.Playlist
	err := sqlx.Get(s.db, &p, "SELECT * FROM playlists WHERE id = ?", id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return &p, nil
}

func (s *Store) UpdatePlaylist(id string, patch domain.PlaylistPatch) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		p, err := tx.GetPlaylistByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("playlist %s: %w", id, domain.ErrNotFound)
		}
		adapter.ApplyPlaylistPatch(p, patch, time.Now().UTC())
		if _, err := sqlx.NamedExec(tx.db, updatePlaylistQuery, p); err != nil {
			return fmt.Errorf("failed to update playlist: %w", err)
		}
		return nil
	})
}

func (s *Store) DeletePlaylist(id string) error {
	result, err := s.db.Exec("DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("playlist %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) GetAllPlaylists() ([]*domain.Playlist, error) {
	var out []*domain.Playlist
	err := sqlx.Select(s.db, &out,
		"SELECT * FROM playlists ORDER BY created_at_indexed DESC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return out, nil
}

func (s *Store) SearchPlaylists(query string, opts domain.SearchOptions) ([]*domain.Playlist, error) {
	q, args := buildSearch(schema.Playlist, query, opts)
	var out []*domain.Playlist
	if err := sqlx.Select(s.db, &out, q, args...); err != nil {
		return nil, fmt.Errorf("failed to search playlists: %w", err)
	}
	return out, nil
}

// AddVideoToPlaylist appends videoID to the playlist's ordering unless it is
// already present. The video id is a weak reference and is not checked
// against the videos table.
func (s *Store) AddVideoToPlaylist(playlistID, videoID string) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		p, err := tx.GetPlaylistByID(playlistID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("playlist %s: %w", playlistID, domain.ErrNotFound)
		}
		if p.VideoIDs.Contains(videoID) {
			return nil
		}
		ids := append(domain.StringSlice{}, p.VideoIDs...)
		ids = append(ids, videoID)
		return tx.applyPlaylistVideoIDs(p, ids)
	})
}

// RemoveVideoFromPlaylist drops every occurrence of videoID from the
// playlist's ordering.
func (s *Store) RemoveVideoFromPlaylist(playlistID, videoID string) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		p, err := tx.GetPlaylistByID(playlistID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("playlist %s: %w", playlistID, domain.ErrNotFound)
		}
		ids := make(domain.StringSlice, 0, len(p.VideoIDs))
		for _, id := range p.VideoIDs {
			if id != videoID {
				ids = append(ids, id)
			}
		}
		if len(ids) == len(p.VideoIDs) {
			return nil
		}
		return tx.applyPlaylistVideoIDs(p, ids)
	})
}

func (s *Store) applyPlaylistVideoIDs(p *domain.Playlist, ids domain.StringSlice) error {
	adapter.ApplyPlaylistPatch(p, domain.PlaylistPatch{VideoIDs: &ids}, time.Now().UTC())
	if _, err := sqlx.NamedExec(s.db, updatePlaylistQuery, p); err != nil {
		return fmt.Errorf("failed to update playlist videos: %w", err)
	}
	return nil
}
