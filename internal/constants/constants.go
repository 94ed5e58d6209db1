// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort         = "8080"
	DefaultDBPath       = "vidvault.db"
	DefaultKVPath       = "vidvault.kv"
	DefaultCacheMaxSize = 1000
	DefaultCacheTTL     = 12 * time.Hour
	DefaultCacheSweep   = 5 * time.Minute
	BackupSuffix        = ".backup"
)

// Compiled-in settings row defaults
const (
	DefaultTheme         = "dark"
	DefaultLanguage      = "en"
	DefaultPlaybackSpeed = 1.0
	DefaultAutoPlay      = true
	DefaultLoopMode      = "none"
	DefaultCacheLimitMB  = 512
	DefaultAutoCleanup   = true
)

// Themes
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// Loop modes
const (
	LoopNone   = "none"
	LoopSingle = "single"
	LoopAll    = "all"
)

// Quality levels
const (
	Quality480p     = "480p"
	Quality720p     = "720p"
	Quality1080p    = "1080p"
	Quality4K       = "2160p"
	QualityOriginal = "original"
)

// MIME Types
const (
	MimeTypeMP4  = "video/mp4"
	MimeTypeWebM = "video/webm"
	MimeTypeMKV  = "video/x-matroska"
	MimeTypeMOV  = "video/quicktime"
	MimeTypeJPEG = "image/jpeg"
)

// Export format version for settings/config round-trips
const ExportVersion = 1
