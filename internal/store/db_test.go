package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasreed/vidvault/internal/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if cErr := s.Close(); cErr != nil {
			t.Logf("store.Close error: %v", cErr)
		}
	})
	return s
}

func ptr[T any](v T) *T { return &v }

func TestStore_VideoCRUD(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateVideo(domain.VideoInput{
		Title:    "Test Video",
		URI:      "file:///videos/test.mp4",
		Duration: 120.5,
		FileSize: 1024,
		MimeType: "video/mp4",
		Format:   "mp4",
		Quality:  "1080p",
		FolderID: "folder-1",
		Tags:     domain.StringSlice{"demo", "test"},
	})
	if err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected id to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be assigned")
	}

	// getById returns the input plus assigned id/timestamps, shadows in sync
	fetched, err := s.GetVideoByID(created.ID)
	if err != nil {
		t.Fatalf("GetVideoByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("Expected video, got nil")
	}
	if fetched.Title != "Test Video" {
		t.Errorf("Expected title 'Test Video', got %s", fetched.Title)
	}
	if fetched.TitleIndexed != fetched.Title {
		t.Errorf("Expected title_indexed %q to equal title %q", fetched.TitleIndexed, fetched.Title)
	}
	if fetched.FolderIDIndexed != fetched.FolderID {
		t.Errorf("Expected folder_id_indexed %q to equal folder_id %q", fetched.FolderIDIndexed, fetched.FolderID)
	}
	if !fetched.CreatedAtIndexed.Equal(fetched.CreatedAt) {
		t.Error("Expected created_at_indexed to equal created_at")
	}
	if len(fetched.Tags) != 2 || fetched.Tags[0] != "demo" {
		t.Errorf("Expected tags [demo test], got %v", fetched.Tags)
	}

	// Update patches only supplied fields and re-syncs their shadows
	err = s.UpdateVideo(created.ID, domain.VideoPatch{Title: ptr("Renamed")})
	if err != nil {
		t.Fatalf("UpdateVideo failed: %v", err)
	}

	fetched, _ = s.GetVideoByID(created.ID)
	if fetched.Title != "Renamed" {
		t.Errorf("Expected title 'Renamed', got %s", fetched.Title)
	}
	if fetched.TitleIndexed != "Renamed" {
		t.Errorf("Expected title_indexed 'Renamed', got %s", fetched.TitleIndexed)
	}
	if fetched.URI != "file:///videos/test.mp4" {
		t.Errorf("Expected uri unchanged, got %s", fetched.URI)
	}
	if fetched.Duration != 120.5 {
		t.Errorf("Expected duration unchanged, got %f", fetched.Duration)
	}
	if !fetched.CreatedAt.Equal(created.CreatedAt) {
		t.Error("Expected created_at to be immutable")
	}
	if !fetched.UpdatedAt.After(created.UpdatedAt) && !fetched.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("Expected updated_at to be refreshed")
	}

	// Delete removes the record everywhere
	if err := s.DeleteVideo(created.ID); err != nil {
		t.Fatalf("DeleteVideo failed: %v", err)
	}
	gone, err := s.GetVideoByID(created.ID)
	if err != nil {
		t.Fatalf("GetVideoByID after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("Expected nil after delete")
	}
	all, _ := s.GetAllVideos()
	if len(all) != 0 {
		t.Errorf("Expected 0 videos after delete, got %d", len(all))
	}
	results, _ := s.SearchVideos("Renamed", domain.SearchOptions{})
	if len(results) != 0 {
		t.Errorf("Expected deleted video absent from search, got %d results", len(results))
	}
}

func TestStore_VideoTypedErrors(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateVideo(domain.VideoInput{ID: "vid-1", Title: "One", URI: "u"}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}

	// Duplicate caller-supplied id
	_, err := s.CreateVideo(domain.VideoInput{ID: "vid-1", Title: "Two", URI: "u"})
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	// Update/delete on missing ids
	err = s.UpdateVideo("missing", domain.VideoPatch{Title: ptr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from update, got %v", err)
	}
	err = s.DeleteVideo("missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from delete, got %v", err)
	}
}

func TestStore_SearchScenario(t *testing.T) {
	s := setupTestStore(t)

	a, err := s.CreateVideo(domain.VideoInput{Title: "Intro", URI: "a", FolderID: "f1"})
	if err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	b, err := s.CreateVideo(domain.VideoInput{Title: "Advanced Intro", URI: "b", FolderID: "f1"})
	if err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if _, err := s.CreateVideo(domain.VideoInput{Title: "Unrelated", URI: "c"}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}

	// Case-insensitive substring, sorted by title ascending
	results, err := s.SearchVideos("intro", domain.SearchOptions{
		SortBy:    domain.SortByTitle,
		SortOrder: domain.SortAsc,
	})
	if err != nil {
		t.Fatalf("SearchVideos failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ID != b.ID || results[1].ID != a.ID {
		t.Errorf("Expected [Advanced Intro, Intro], got [%s, %s]", results[0].Title, results[1].Title)
	}

	// Folder filter keeps both
	results, err = s.SearchVideos("intro", domain.SearchOptions{
		Filters: domain.SearchFilters{FolderID: "f1"},
	})
	if err != nil {
		t.Fatalf("SearchVideos failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results with folder filter, got %d", len(results))
	}

	// Deterministic: repeating the call returns identical ordering
	again, _ := s.SearchVideos("intro", domain.SearchOptions{
		SortBy:    domain.SortByTitle,
		SortOrder: domain.SortAsc,
	})
	if len(again) != 2 || again[0].ID != b.ID || again[1].ID != a.ID {
		t.Error("Expected repeated search to return identical ordered results")
	}

	// Deleting one leaves only the other
	if err := s.DeleteVideo(a.ID); err != nil {
		t.Fatalf("DeleteVideo failed: %v", err)
	}
	results, _ = s.SearchVideos("intro", domain.SearchOptions{
		SortBy:    domain.SortByTitle,
		SortOrder: domain.SortAsc,
	})
	if len(results) != 1 || results[0].ID != b.ID {
		t.Errorf("Expected only 'Advanced Intro' after delete, got %d results", len(results))
	}
}

func TestStore_SearchTagsAndFilters(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateVideo(domain.VideoInput{
		Title: "Holiday", URI: "a", MimeType: "video/mp4", Quality: "1080p",
		Tags: domain.StringSlice{"beach", "summer"},
	}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if _, err := s.CreateVideo(domain.VideoInput{
		Title: "Meeting", URI: "b", MimeType: "video/webm", Quality: "720p",
		Tags: domain.StringSlice{"work"},
	}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}

	// Tag containment matches the free-text query case-insensitively
	results, err := s.SearchVideos("BEACH", domain.SearchOptions{})
	if err != nil {
		t.Fatalf("SearchVideos failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Holiday" {
		t.Errorf("Expected tag match on 'Holiday', got %d results", len(results))
	}

	// Conjunctive filters
	results, _ = s.SearchVideos("", domain.SearchOptions{
		Filters: domain.SearchFilters{MimeType: "video/webm", Quality: "720p"},
	})
	if len(results) != 1 || results[0].Title != "Meeting" {
		t.Errorf("Expected mime+quality filter to match 'Meeting', got %d results", len(results))
	}

	// Contradictory conjunction matches nothing
	results, _ = s.SearchVideos("", domain.SearchOptions{
		Filters: domain.SearchFilters{MimeType: "video/webm", Tags: []string{"beach"}},
	})
	if len(results) != 0 {
		t.Errorf("Expected 0 results, got %d", len(results))
	}
}

func TestStore_SearchPagination(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.CreateVideo(domain.VideoInput{
			Title: fmt.Sprintf("Clip %d", i), URI: "u",
		}); err != nil {
			t.Fatalf("CreateVideo failed: %v", err)
		}
	}

	opts := domain.SearchOptions{SortBy: domain.SortByTitle, SortOrder: domain.SortAsc, Limit: 2}
	page1, err := s.SearchVideos("clip", opts)
	if err != nil {
		t.Fatalf("SearchVideos failed: %v", err)
	}
	opts.Offset = 2
	page2, _ := s.SearchVideos("clip", opts)
	opts.Offset = 4
	page3, _ := s.SearchVideos("clip", opts)

	if len(page1) != 2 || len(page2) != 2 || len(page3) != 1 {
		t.Fatalf("Expected pages of 2/2/1, got %d/%d/%d", len(page1), len(page2), len(page3))
	}
	titles := []string{page1[0].Title, page1[1].Title, page2[0].Title, page2[1].Title, page3[0].Title}
	for i, want := range []string{"Clip 0", "Clip 1", "Clip 2", "Clip 3", "Clip 4"} {
		if titles[i] != want {
			t.Errorf("Expected page item %d to be %s, got %s", i, want, titles[i])
		}
	}
}

func TestStore_VideoViews(t *testing.T) {
	s := setupTestStore(t)

	v1, _ := s.CreateVideo(domain.VideoInput{Title: "A", URI: "u", FolderID: "f1"})
	v2, _ := s.CreateVideo(domain.VideoInput{Title: "B", URI: "u", FolderID: "f2"})

	byFolder, err := s.GetVideosByFolder("f1")
	if err != nil {
		t.Fatalf("GetVideosByFolder failed: %v", err)
	}
	if len(byFolder) != 1 || byFolder[0].ID != v1.ID {
		t.Errorf("Expected only video A in f1, got %d", len(byFolder))
	}

	if err := s.RecordPlayback(v2.ID, 30); err != nil {
		t.Fatalf("RecordPlayback failed: %v", err)
	}
	if err := s.RecordPlayback(v2.ID, 60); err != nil {
		t.Fatalf("RecordPlayback failed: %v", err)
	}

	played, _ := s.GetVideoByID(v2.ID)
	if played.PlayCount != 2 {
		t.Errorf("Expected play count 2, got %d", played.PlayCount)
	}
	if played.PlaybackProgress != 60 {
		t.Errorf("Expected progress 60, got %f", played.PlaybackProgress)
	}
	if played.LastPlayedAt == nil {
		t.Error("Expected last_played_at to be set")
	}

	mostPlayed, err := s.GetMostPlayedVideos(10)
	if err != nil {
		t.Fatalf("GetMostPlayedVideos failed: %v", err)
	}
	if len(mostPlayed) != 2 || mostPlayed[0].ID != v2.ID {
		t.Errorf("Expected B first by play count, got %v", mostPlayed)
	}

	recent, err := s.GetRecentVideos(1)
	if err != nil {
		t.Fatalf("GetRecentVideos failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Expected 1 recent video, got %d", len(recent))
	}
}

func TestStore_Batch(t *testing.T) {
	s := setupTestStore(t)

	// Committed batch makes all effects visible together
	err := s.Batch(context.Background(), func(tx *Store) error {
		if _, err := tx.CreateVideo(domain.VideoInput{Title: "One", URI: "u"}); err != nil {
			return err
		}
		if _, err := tx.CreateVideo(domain.VideoInput{Title: "Two", URI: "u"}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}
	all, _ := s.GetAllVideos()
	if len(all) != 2 {
		t.Fatalf("Expected 2 videos after batch, got %d", len(all))
	}

	// Failed batch rolls back every effect
	err = s.Batch(context.Background(), func(tx *Store) error {
		if _, err := tx.CreateVideo(domain.VideoInput{Title: "Three", URI: "u"}); err != nil {
			return err
		}
		if err := tx.DeleteVideo(all[0].ID); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if !errors.Is(err, domain.ErrTransactionAborted) {
		t.Errorf("Expected ErrTransactionAborted, got %v", err)
	}

	after, _ := s.GetAllVideos()
	if len(after) != 2 {
		t.Errorf("Expected store unchanged after rollback, got %d videos", len(after))
	}
	if v, _ := s.GetVideoByID(all[0].ID); v == nil {
		t.Error("Expected delete inside failed batch to be rolled back")
	}
}

func TestStore_Playlists(t *testing.T) {
	s := setupTestStore(t)

	p, err := s.CreatePlaylist(domain.PlaylistInput{Name: "Favorites", IsPrivate: true})
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if p.NameIndexed != "Favorites" {
		t.Errorf("Expected name_indexed to be synced, got %s", p.NameIndexed)
	}
	if len(p.VideoIDs) != 0 {
		t.Errorf("Expected empty video_ids, got %v", p.VideoIDs)
	}

	// Ordering is append-only and duplicate-free
	if err := s.AddVideoToPlaylist(p.ID, "vid-1"); err != nil {
		t.Fatalf("AddVideoToPlaylist failed: %v", err)
	}
	if err := s.AddVideoToPlaylist(p.ID, "vid-2"); err != nil {
		t.Fatalf("AddVideoToPlaylist failed: %v", err)
	}
	if err := s.AddVideoToPlaylist(p.ID, "vid-1"); err != nil {
		t.Fatalf("AddVideoToPlaylist failed: %v", err)
	}

	fetched, _ := s.GetPlaylistByID(p.ID)
	if len(fetched.VideoIDs) != 2 || fetched.VideoIDs[0] != "vid-1" || fetched.VideoIDs[1] != "vid-2" {
		t.Errorf("Expected [vid-1 vid-2], got %v", fetched.VideoIDs)
	}

	if err := s.RemoveVideoFromPlaylist(p.ID, "vid-1"); err != nil {
		t.Fatalf("RemoveVideoFromPlaylist failed: %v", err)
	}
	fetched, _ = s.GetPlaylistByID(p.ID)
	if len(fetched.VideoIDs) != 1 || fetched.VideoIDs[0] != "vid-2" {
		t.Errorf("Expected [vid-2], got %v", fetched.VideoIDs)
	}

	// Name search
	results, _ := s.SearchPlaylists("favor", domain.SearchOptions{})
	if len(results) != 1 {
		t.Errorf("Expected 1 playlist match, got %d", len(results))
	}

	err = s.AddVideoToPlaylist("missing", "vid-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStore_Folders(t *testing.T) {
	s := setupTestStore(t)

	root, err := s.CreateFolder(domain.FolderInput{Name: "Movies"})
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	child, err := s.CreateFolder(domain.FolderInput{Name: "Action", ParentID: root.ID})
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if child.ParentIDIndexed != root.ID {
		t.Errorf("Expected parent_id_indexed synced, got %s", child.ParentIDIndexed)
	}

	roots, err := s.GetRootFolders()
	if err != nil {
		t.Fatalf("GetRootFolders failed: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != root.ID {
		t.Errorf("Expected 1 root folder, got %d", len(roots))
	}

	subs, err := s.GetSubFolders(root.ID)
	if err != nil {
		t.Fatalf("GetSubFolders failed: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != child.ID {
		t.Errorf("Expected 1 sub folder, got %d", len(subs))
	}

	// Denormalized count recomputed from videos
	if _, err := s.CreateVideo(domain.VideoInput{Title: "V1", URI: "u", FolderID: child.ID}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if _, err := s.CreateVideo(domain.VideoInput{Title: "V2", URI: "u", FolderID: child.ID}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if err := s.RefreshFolderVideoCount(child.ID); err != nil {
		t.Fatalf("RefreshFolderVideoCount failed: %v", err)
	}
	fetched, _ := s.GetFolderByID(child.ID)
	if fetched.VideoCount != 2 {
		t.Errorf("Expected video count 2, got %d", fetched.VideoCount)
	}

	// Deleting a folder leaves referencing videos untouched (weak reference)
	if err := s.DeleteFolder(child.ID); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}
	orphans, _ := s.GetVideosByFolder(child.ID)
	if len(orphans) != 2 {
		t.Errorf("Expected dangling folder references to survive, got %d", len(orphans))
	}
}

func TestStore_PlayHistory(t *testing.T) {
	s := setupTestStore(t)

	h1, err := s.CreatePlayHistory(domain.PlayHistoryInput{
		VideoID: "vid-1", Position: 10, Duration: 100,
	})
	if err != nil {
		t.Fatalf("CreatePlayHistory failed: %v", err)
	}
	if h1.PlayedAt.IsZero() {
		t.Error("Expected played_at to default to now")
	}
	if h1.PlaybackSpeed != 1 || h1.Volume != 1 {
		t.Errorf("Expected speed/volume defaults of 1, got %f/%f", h1.PlaybackSpeed, h1.Volume)
	}
	if h1.VideoIDIndexed != "vid-1" {
		t.Errorf("Expected video_id_indexed synced, got %s", h1.VideoIDIndexed)
	}

	if _, err := s.CreatePlayHistory(domain.PlayHistoryInput{
		VideoID: "vid-2", Position: 50, Duration: 60, Completed: true,
	}); err != nil {
		t.Fatalf("CreatePlayHistory failed: %v", err)
	}

	byVideo, err := s.GetHistoryByVideo("vid-1")
	if err != nil {
		t.Fatalf("GetHistoryByVideo failed: %v", err)
	}
	if len(byVideo) != 1 || byVideo[0].ID != h1.ID {
		t.Errorf("Expected 1 entry for vid-1, got %d", len(byVideo))
	}

	recent, err := s.GetRecentHistory(10)
	if err != nil {
		t.Fatalf("GetRecentHistory failed: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("Expected 2 recent entries, got %d", len(recent))
	}

	if err := s.UpdatePlayHistory(h1.ID, domain.PlayHistoryPatch{Completed: ptr(true)}); err != nil {
		t.Fatalf("UpdatePlayHistory failed: %v", err)
	}
	fetched, _ := s.GetPlayHistoryByID(h1.ID)
	if !fetched.Completed {
		t.Error("Expected completed to be true")
	}

	if err := s.ClearPlayHistory(); err != nil {
		t.Fatalf("ClearPlayHistory failed: %v", err)
	}
	rest, _ := s.GetAllPlayHistory()
	if len(rest) != 0 {
		t.Errorf("Expected history cleared, got %d entries", len(rest))
	}
}

func TestStore_SettingsBootstrap(t *testing.T) {
	s := setupTestStore(t)

	// Singleton row exists right after open
	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.ID != domain.SettingsID {
		t.Errorf("Expected settings id %q, got %q", domain.SettingsID, settings.ID)
	}
	if settings.Theme == "" || settings.Language == "" {
		t.Error("Expected compiled-in defaults")
	}

	if err := s.UpdateSettings(domain.AppSettingsPatch{Theme: ptr("light"), AutoPlay: ptr(false)}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	updated, _ := s.GetSettings()
	if updated.Theme != "light" {
		t.Errorf("Expected theme 'light', got %s", updated.Theme)
	}
	if updated.AutoPlay {
		t.Error("Expected auto_play false")
	}
	if updated.Language != settings.Language {
		t.Error("Expected unpatched fields unchanged")
	}

	if err := s.ResetSettings(); err != nil {
		t.Fatalf("ResetSettings failed: %v", err)
	}
	reset, _ := s.GetSettings()
	if reset.Theme != settings.Theme {
		t.Errorf("Expected theme reset to %s, got %s", settings.Theme, reset.Theme)
	}

	// Reopening the same file must not create a second row
	path := s.Path()
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	s2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	stats, err := s2.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.SchemaVersion != 1 {
		t.Errorf("Expected schema version 1, got %d", stats.SchemaVersion)
	}
	if err := s2.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestStore_Stats(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateVideo(domain.VideoInput{Title: "V", URI: "u"}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if _, err := s.CreatePlaylist(domain.PlaylistInput{Name: "P"}); err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if _, err := s.CreateFolder(domain.FolderInput{Name: "F"}); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Videos != 1 || stats.Playlists != 1 || stats.Folders != 1 || stats.PlayHistory != 0 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.SizeBytes == 0 {
		t.Error("Expected non-zero store size")
	}
}

func TestStore_BackupRestore(t *testing.T) {
	s := setupTestStore(t)

	v1, _ := s.CreateVideo(domain.VideoInput{Title: "Keep Me", URI: "u"})
	if _, err := s.CreatePlaylist(domain.PlaylistInput{Name: "List"}); err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}

	backupPath, err := s.Backup()
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("Expected backup file at %s: %v", backupPath, err)
	}

	// Mutate after the snapshot
	if _, err := s.CreateVideo(domain.VideoInput{Title: "Drop Me", URI: "u"}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if err := s.DeleteVideo(v1.ID); err != nil {
		t.Fatalf("DeleteVideo failed: %v", err)
	}

	if err := s.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	videos, err := s.GetAllVideos()
	if err != nil {
		t.Fatalf("GetAllVideos after restore failed: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != v1.ID {
		t.Errorf("Expected restored store to hold only %s, got %d videos", v1.ID, len(videos))
	}
	playlists, _ := s.GetAllPlaylists()
	if len(playlists) != 1 {
		t.Errorf("Expected 1 playlist after restore, got %d", len(playlists))
	}
}

func TestStore_RestoreInvalidSnapshot(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreateVideo(domain.VideoInput{Title: "Survivor", URI: "u"}); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	err := s.Restore(bogus)
	if !errors.Is(err, domain.ErrImportFormat) {
		t.Errorf("Expected ErrImportFormat, got %v", err)
	}

	// Prior handle stays usable
	videos, err := s.GetAllVideos()
	if err != nil {
		t.Fatalf("Store unusable after failed restore: %v", err)
	}
	if len(videos) != 1 {
		t.Errorf("Expected contents untouched, got %d videos", len(videos))
	}
}
