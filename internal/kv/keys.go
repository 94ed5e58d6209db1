package kv

// Stable key identifiers for application configuration stored in the
// key-value layer.
const (
	KeyTheme           = "theme"
	KeyVolume          = "volume"
	KeyPlaybackSpeed   = "playback_speed"
	KeyQuality         = "quality"
	KeyCacheSize       = "cache_size"
	KeyLastCleanup     = "last_cleanup"
	KeyLastScreen      = "last_screen"
	KeySplitterPos     = "splitter_position"
	KeyLastPlayedVideo = "last_played_video"
	KeyPlaybackPos     = "playback_position"
	KeyDataSaver       = "data_saver"
	KeyWifiOnly        = "wifi_only"
	KeyTotalPlayTime   = "total_play_time"
	KeySessionCount    = "session_count"
	KeyBetaFeatures    = "beta_features"
)

// ConfigKeys lists every stable configuration key, in declaration order.
var ConfigKeys = []string{
	KeyTheme,
	KeyVolume,
	KeyPlaybackSpeed,
	KeyQuality,
	KeyCacheSize,
	KeyLastCleanup,
	KeyLastScreen,
	KeySplitterPos,
	KeyLastPlayedVideo,
	KeyPlaybackPos,
	KeyDataSaver,
	KeyWifiOnly,
	KeyTotalPlayTime,
	KeySessionCount,
	KeyBetaFeatures,
}
