package domain

import (
	"time"
)

// SettingsID is the fixed primary key of the singleton AppSettings row.
const SettingsID = "default"

// Video is a stored library entry. The *Indexed fields are shadow copies of
// their source fields, kept in lockstep by the adapter on every write; they
// back the search/sort indexes and are never edited by callers.
type Video struct { //nolint:govet // field ordering prioritizes readability over memory alignment
	ID               string      `json:"id" db:"id"`
	Title            string      `json:"title" db:"title"`
	Description      string      `json:"description,omitempty" db:"description"`
	URI              string      `json:"uri" db:"uri"`
	ThumbnailURI     string      `json:"thumbnail_uri,omitempty" db:"thumbnail_uri"`
	Duration         float64     `json:"duration" db:"duration"`
	FileSize         int64       `json:"file_size" db:"file_size"`
	MimeType         string      `json:"mime_type" db:"mime_type"`
	Format           string      `json:"format" db:"format"`
	Quality          string      `json:"quality" db:"quality"`
	PlayCount        int         `json:"play_count" db:"play_count"`
	ViewCount        int         `json:"view_count" db:"view_count"`
	PlaybackProgress float64     `json:"playback_progress" db:"playback_progress"`
	LastPlayedAt     *time.Time  `json:"last_played_at,omitempty" db:"last_played_at"`
	FolderID         string      `json:"folder_id,omitempty" db:"folder_id"`
	Tags             StringSlice `json:"tags" db:"tags"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
	TitleIndexed     string      `json:"title_indexed" db:"title_indexed"`
	FolderIDIndexed  string      `json:"folder_id_indexed" db:"folder_id_indexed"`
	CreatedAtIndexed time.Time   `json:"created_at_indexed" db:"created_at_indexed"`
}

// VideoInput is the caller-supplied shape for creating a video. ID may be set
// by the caller; when empty the store assigns one.
type VideoInput struct {
	ID           string      `json:"id,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	URI          string      `json:"uri"`
	ThumbnailURI string      `json:"thumbnail_uri,omitempty"`
	Duration     float64     `json:"duration"`
	FileSize     int64       `json:"file_size"`
	MimeType     string      `json:"mime_type"`
	Format       string      `json:"format"`
	Quality      string      `json:"quality"`
	FolderID     string      `json:"folder_id,omitempty"`
	Tags         StringSlice `json:"tags,omitempty"`
}

// VideoPatch is a partial update; nil fields are left untouched.
type VideoPatch struct {
	Title            *string      `json:"title,omitempty"`
	Description      *string      `json:"description,omitempty"`
	URI              *string      `json:"uri,omitempty"`
	ThumbnailURI     *string      `json:"thumbnail_uri,omitempty"`
	Duration         *float64     `json:"duration,omitempty"`
	FileSize         *int64       `json:"file_size,omitempty"`
	MimeType         *string      `json:"mime_type,omitempty"`
	Format           *string      `json:"format,omitempty"`
	Quality          *string      `json:"quality,omitempty"`
	PlayCount        *int         `json:"play_count,omitempty"`
	ViewCount        *int         `json:"view_count,omitempty"`
	PlaybackProgress *float64     `json:"playback_progress,omitempty"`
	LastPlayedAt     *time.Time   `json:"last_played_at,omitempty"`
	FolderID         *string      `json:"folder_id,omitempty"`
	Tags             *StringSlice `json:"tags,omitempty"`
}

// Playlist is an ordered collection of video ids. VideoIDs are weak
// references; the store does not check them against existing videos.
type Playlist struct { //nolint:govet // field ordering prioritizes readability over memory alignment
	ID               string      `json:"id" db:"id"`
	Name             string      `json:"name" db:"name"`
	Description      string      `json:"description,omitempty" db:"description"`
	ThumbnailURI     string      `json:"thumbnail_uri,omitempty" db:"thumbnail_uri"`
	VideoIDs         StringSlice `json:"video_ids" db:"video_ids"`
	IsPrivate        bool        `json:"is_private" db:"is_private"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
	NameIndexed      string      `json:"name_indexed" db:"name_indexed"`
	CreatedAtIndexed time.Time   `json:"created_at_indexed" db:"created_at_indexed"`
}

type PlaylistInput struct {
	ID           string      `json:"id,omitempty"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	ThumbnailURI string      `json:"thumbnail_uri,omitempty"`
	VideoIDs     StringSlice `json:"video_ids,omitempty"`
	IsPrivate    bool        `json:"is_private"`
}

type PlaylistPatch struct {
	Name         *string      `json:"name,omitempty"`
	Description  *string      `json:"description,omitempty"`
	ThumbnailURI *string      `json:"thumbnail_uri,omitempty"`
	VideoIDs     *StringSlice `json:"video_ids,omitempty"`
	IsPrivate    *bool        `json:"is_private,omitempty"`
}

// Folder groups videos. ParentID is a single-level self-reference; VideoCount
// is denormalized and maintained by callers, the store only persists it.
type Folder struct { //nolint:govet // field ordering prioritizes readability over memory alignment
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description,omitempty" db:"description"`
	ParentID         string    `json:"parent_id,omitempty" db:"parent_id"`
	VideoCount       int       `json:"video_count" db:"video_count"`
	IsPrivate        bool      `json:"is_private" db:"is_private"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
	NameIndexed      string    `json:"name_indexed" db:"name_indexed"`
	ParentIDIndexed  string    `json:"parent_id_indexed" db:"parent_id_indexed"`
	CreatedAtIndexed time.Time `json:"created_at_indexed" db:"created_at_indexed"`
}

type FolderInput struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	IsPrivate   bool   `json:"is_private"`
}

type FolderPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	VideoCount  *int    `json:"video_count,omitempty"`
	IsPrivate   *bool   `json:"is_private,omitempty"`
}

// PlayHistory records one playback session of a video.
type PlayHistory struct { //nolint:govet // field ordering prioritizes readability over memory alignment
	ID              string    `json:"id" db:"id"`
	VideoID         string    `json:"video_id" db:"video_id"`
	PlayedAt        time.Time `json:"played_at" db:"played_at"`
	Position        float64   `json:"position" db:"position"`
	Duration        float64   `json:"duration" db:"duration"`
	Completed       bool      `json:"completed" db:"completed"`
	PlaybackSpeed   float64   `json:"playback_speed" db:"playback_speed"`
	Volume          float64   `json:"volume" db:"volume"`
	DeviceInfo      string    `json:"device_info,omitempty" db:"device_info"`
	VideoIDIndexed  string    `json:"video_id_indexed" db:"video_id_indexed"`
	PlayedAtIndexed time.Time `json:"played_at_indexed" db:"played_at_indexed"`
}

type PlayHistoryInput struct {
	ID            string    `json:"id,omitempty"`
	VideoID       string    `json:"video_id"`
	PlayedAt      time.Time `json:"played_at,omitempty"`
	Position      float64   `json:"position"`
	Duration      float64   `json:"duration"`
	Completed     bool      `json:"completed"`
	PlaybackSpeed float64   `json:"playback_speed,omitempty"`
	Volume        float64   `json:"volume,omitempty"`
	DeviceInfo    string    `json:"device_info,omitempty"`
}

type PlayHistoryPatch struct {
	Position      *float64   `json:"position,omitempty"`
	Duration      *float64   `json:"duration,omitempty"`
	Completed     *bool      `json:"completed,omitempty"`
	PlaybackSpeed *float64   `json:"playback_speed,omitempty"`
	Volume        *float64   `json:"volume,omitempty"`
	DeviceInfo    *string    `json:"device_info,omitempty"`
	PlayedAt      *time.Time `json:"played_at,omitempty"`
}

// AppSettings is the singleton configuration row, keyed by SettingsID.
type AppSettings struct { //nolint:govet // field ordering prioritizes readability over memory alignment
	ID            string    `json:"id" db:"id"`
	Theme         string    `json:"theme" db:"theme"`
	Language      string    `json:"language" db:"language"`
	PlaybackSpeed float64   `json:"playback_speed" db:"playback_speed"`
	AutoPlay      bool      `json:"auto_play" db:"auto_play"`
	LoopMode      string    `json:"loop_mode" db:"loop_mode"`
	CacheLimitMB  int       `json:"cache_limit_mb" db:"cache_limit_mb"`
	AutoCleanup   bool      `json:"auto_cleanup" db:"auto_cleanup"`
	PrivateMode   bool      `json:"private_mode" db:"private_mode"`
	RequireAuth   bool      `json:"require_auth" db:"require_auth"`
	LastUpdated   time.Time `json:"last_updated" db:"last_updated"`
}

type AppSettingsPatch struct {
	Theme         *string  `json:"theme,omitempty"`
	Language      *string  `json:"language,omitempty"`
	PlaybackSpeed *float64 `json:"playback_speed,omitempty"`
	AutoPlay      *bool    `json:"auto_play,omitempty"`
	LoopMode      *string  `json:"loop_mode,omitempty"`
	CacheLimitMB  *int     `json:"cache_limit_mb,omitempty"`
	AutoCleanup   *bool    `json:"auto_cleanup,omitempty"`
	PrivateMode   *bool    `json:"private_mode,omitempty"`
	RequireAuth   *bool    `json:"require_auth,omitempty"`
}
