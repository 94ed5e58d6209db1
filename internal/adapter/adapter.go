// Package adapter shapes caller input into stored records and merges partial
// patches. Every write path funnels through here so shadow index fields are
// recomputed from the schema definitions in exactly one place.
package adapter

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/lucasreed/vidvault/internal/constants"
	"github.com/lucasreed/vidvault/internal/domain"
	"github.com/lucasreed/vidvault/internal/schema"
)

// SyncShadows copies each source field onto its shadow counterpart, resolving
// fields by db tag against the entity's schema definition. record must be a
// pointer to an entity struct.
func SyncShadows(def schema.Def, record any) {
	v := reflect.ValueOf(record).Elem()
	t := v.Type()

	idx := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			idx[tag] = i
		}
	}

	for _, s := range def.Shadows {
		src, okSrc := idx[s.Source]
		dst, okDst := idx[s.Shadow]
		if okSrc && okDst {
			v.Field(dst).Set(v.Field(src))
		}
	}
}

func assignID(callerID string) string {
	if callerID != "" {
		return callerID
	}
	return uuid.NewString()
}

// VideoFromInput builds a stored video from caller input, assigning id and
// timestamps and filling defaults for omitted optionals.
func VideoFromInput(in domain.VideoInput, now time.Time) *domain.Video {
	v := &domain.Video{
		ID:           assignID(in.ID),
		Title:        in.Title,
		Description:  in.Description,
		URI:          in.URI,
		ThumbnailURI: in.ThumbnailURI,
		Duration:     in.Duration,
		FileSize:     in.FileSize,
		MimeType:     in.MimeType,
		Format:       in.Format,
		Quality:      in.Quality,
		FolderID:     in.FolderID,
		Tags:         in.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if v.Tags == nil {
		v.Tags = domain.StringSlice{}
	}
	SyncShadows(schema.Video, v)
	return v
}

// ApplyVideoPatch merges non-nil patch fields into v, refreshes updatedAt,
// and recomputes shadows.
func ApplyVideoPatch(v *domain.Video, p domain.VideoPatch, now time.Time) {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.URI != nil {
		v.URI = *p.URI
	}
	if p.ThumbnailURI != nil {
		v.ThumbnailURI = *p.ThumbnailURI
	}
	if p.Duration != nil {
		v.Duration = *p.Duration
	}
	if p.FileSize != nil {
		v.FileSize = *p.FileSize
	}
	if p.MimeType != nil {
		v.MimeType = *p.MimeType
	}
	if p.Format != nil {
		v.Format = *p.Format
	}
	if p.Quality != nil {
		v.Quality = *p.Quality
	}
	if p.PlayCount != nil {
		v.PlayCount = *p.PlayCount
	}
	if p.ViewCount != nil {
		v.ViewCount = *p.ViewCount
	}
	if p.PlaybackProgress != nil {
		v.PlaybackProgress = *p.PlaybackProgress
	}
	if p.LastPlayedAt != nil {
		t := *p.LastPlayedAt
		v.LastPlayedAt = &t
	}
	if p.FolderID != nil {
		v.FolderID = *p.FolderID
	}
	if p.Tags != nil {
		v.Tags = *p.Tags
	}
	v.UpdatedAt = now
	SyncShadows(schema.Video, v)
}

// PlaylistFromInput builds a stored playlist from caller input.
func PlaylistFromInput(in domain.PlaylistInput, now time.Time) *domain.Playlist {
	p := &domain.Playlist{
		ID:           assignID(in.ID),
		Name:         in.Name,
		Description:  in.Description,
		ThumbnailURI: in.ThumbnailURI,
		VideoIDs:     in.VideoIDs,
		IsPrivate:    in.IsPrivate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.VideoIDs == nil {
		p.VideoIDs = domain.StringSlice{}
	}
	SyncShadows(schema.Playlist, p)
	return p
}

func ApplyPlaylistPatch(pl *domain.Playlist, p domain.PlaylistPatch, now time.Time) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
	if p.ThumbnailURI != nil {
		pl.ThumbnailURI = *p.ThumbnailURI
	}
	if p.VideoIDs != nil {
		pl.VideoIDs = *p.VideoIDs
	}
	if p.IsPrivate != nil {
		pl.IsPrivate = *p.IsPrivate
	}
	pl.UpdatedAt = now
	SyncShadows(schema.Playlist, pl)
}

// FolderFromInput builds a stored folder from caller input.
func FolderFromInput(in domain.FolderInput, now time.Time) *domain.Folder {
	f := &domain.Folder{
		ID:          assignID(in.ID),
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsPrivate:   in.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	SyncShadows(schema.Folder, f)
	return f
}

func ApplyFolderPatch(f *domain.Folder, p domain.FolderPatch, now time.Time) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.ParentID != nil {
		f.ParentID = *p.ParentID
	}
	if p.VideoCount != nil {
		f.VideoCount = *p.VideoCount
	}
	if p.IsPrivate != nil {
		f.IsPrivate = *p.IsPrivate
	}
	f.UpdatedAt = now
	SyncShadows(schema.Folder, f)
}

// PlayHistoryFromInput builds a stored history entry. PlayedAt defaults to
// now when omitted; playback speed and volume default to 1.
func PlayHistoryFromInput(in domain.PlayHistoryInput, now time.Time) *domain.PlayHistory {
	h := &domain.PlayHistory{
		ID:            assignID(in.ID),
		VideoID:       in.VideoID,
		PlayedAt:      in.PlayedAt,
		Position:      in.Position,
		Duration:      in.Duration,
		Completed:     in.Completed,
		PlaybackSpeed: in.PlaybackSpeed,
		Volume:        in.Volume,
		DeviceInfo:    in.DeviceInfo,
	}
	if h.PlayedAt.IsZero() {
		h.PlayedAt = now
	}
	if h.PlaybackSpeed == 0 {
		h.PlaybackSpeed = 1
	}
	if h.Volume == 0 {
		h.Volume = 1
	}
	SyncShadows(schema.PlayHistory, h)
	return h
}

func ApplyPlayHistoryPatch(h *domain.PlayHistory, p domain.PlayHistoryPatch, _ time.Time) {
	if p.Position != nil {
		h.Position = *p.Position
	}
	if p.Duration != nil {
		h.Duration = *p.Duration
	}
	if p.Completed != nil {
		h.Completed = *p.Completed
	}
	if p.PlaybackSpeed != nil {
		h.PlaybackSpeed = *p.PlaybackSpeed
	}
	if p.Volume != nil {
		h.Volume = *p.Volume
	}
	if p.DeviceInfo != nil {
		h.DeviceInfo = *p.DeviceInfo
	}
	if p.PlayedAt != nil {
		h.PlayedAt = *p.PlayedAt
	}
	SyncShadows(schema.PlayHistory, h)
}

// DefaultSettings returns the compiled-in singleton settings row.
func DefaultSettings(now time.Time) *domain.AppSettings {
	return &domain.AppSettings{
		ID:            domain.SettingsID,
		Theme:         constants.DefaultTheme,
		Language:      constants.DefaultLanguage,
		PlaybackSpeed: constants.DefaultPlaybackSpeed,
		AutoPlay:      constants.DefaultAutoPlay,
		LoopMode:      constants.DefaultLoopMode,
		CacheLimitMB:  constants.DefaultCacheLimitMB,
		AutoCleanup:   constants.DefaultAutoCleanup,
		PrivateMode:   false,
		RequireAuth:   false,
		LastUpdated:   now,
	}
}

func ApplySettingsPatch(s *domain.AppSettings, p domain.AppSettingsPatch, now time.Time) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.PlaybackSpeed != nil {
		s.PlaybackSpeed = *p.PlaybackSpeed
	}
	if p.AutoPlay != nil {
		s.AutoPlay = *p.AutoPlay
	}
	if p.LoopMode != nil {
		s.LoopMode = *p.LoopMode
	}
	if p.CacheLimitMB != nil {
		s.CacheLimitMB = *p.CacheLimitMB
	}
	if p.AutoCleanup != nil {
		s.AutoCleanup = *p.AutoCleanup
	}
	if p.PrivateMode != nil {
		s.PrivateMode = *p.PrivateMode
	}
	if p.RequireAuth != nil {
		s.RequireAuth = *p.RequireAuth
	}
	s.LastUpdated = now
}
