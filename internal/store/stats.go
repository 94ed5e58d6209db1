package store

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/lucasreed/vidvault/internal/domain"
	"github.com/lucasreed/vidvault/internal/schema"
)

// Stats reports per-entity counts, the store file size, and the schema
// version.
func (s *Store) Stats() (*domain.StoreStats, error) {
	stats := &domain.StoreStats{SchemaVersion: schema.Version}

	counts := []struct {
		table string
		dest  *int
	}{
		{schema.Video.Table, &stats.Videos},
		{schema.Playlist.Table, &stats.Playlists},
		{schema.Folder.Table, &stats.Folders},
		{schema.PlayHistory.Table, &stats.PlayHistory},
	}
	for _, c := range counts {
		if err := sqlx.Get(s.db, c.dest, "SELECT COUNT(*) FROM "+c.table); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	if info, err := os.Stat(s.path); err == nil {
		stats.SizeBytes = info.Size()
	}
	return stats, nil
}
