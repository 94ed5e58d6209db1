package schema

// DDL creates all tables and indexes. Shadow columns mirror their source
// columns exactly; the indexes live on the shadows.
const DDL = `
CREATE TABLE IF NOT EXISTS videos (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	uri TEXT NOT NULL,
	thumbnail_uri TEXT NOT NULL DEFAULT '',
	duration REAL NOT NULL DEFAULT 0,
	file_size INTEGER NOT NULL DEFAULT 0,
	mime_type TEXT NOT NULL DEFAULT '',
	format TEXT NOT NULL DEFAULT '',
	quality TEXT NOT NULL DEFAULT '',
	play_count INTEGER NOT NULL DEFAULT 0,
	view_count INTEGER NOT NULL DEFAULT 0,
	playback_progress REAL NOT NULL DEFAULT 0,
	last_played_at DATETIME,
	folder_id TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	title_indexed TEXT NOT NULL,
	folder_id_indexed TEXT NOT NULL DEFAULT '',
	created_at_indexed DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_videos_title ON videos(title_indexed);
CREATE INDEX IF NOT EXISTS idx_videos_folder ON videos(folder_id_indexed);
CREATE INDEX IF NOT EXISTS idx_videos_created ON videos(created_at_indexed);

CREATE TABLE IF NOT EXISTS playlists (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	thumbnail_uri TEXT NOT NULL DEFAULT '',
	video_ids TEXT NOT NULL DEFAULT '[]',
	is_private BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	name_indexed TEXT NOT NULL,
	created_at_indexed DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_playlists_name ON playlists(name_indexed);
CREATE INDEX IF NOT EXISTS idx_playlists_created ON playlists(created_at_indexed);

CREATE TABLE IF NOT EXISTS folders (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	parent_id TEXT NOT NULL DEFAULT '',
	video_count INTEGER NOT NULL DEFAULT 0,
	is_private BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	name_indexed TEXT NOT NULL,
	parent_id_indexed TEXT NOT NULL DEFAULT '',
	created_at_indexed DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_folders_name ON folders(name_indexed);
CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id_indexed);
CREATE INDEX IF NOT EXISTS idx_folders_created ON folders(created_at_indexed);

CREATE TABLE IF NOT EXISTS play_history (
	id TEXT PRIMARY KEY,
	video_id TEXT NOT NULL,
	played_at DATETIME NOT NULL,
	position REAL NOT NULL DEFAULT 0,
	duration REAL NOT NULL DEFAULT 0,
	completed BOOLEAN NOT NULL DEFAULT 0,
	playback_speed REAL NOT NULL DEFAULT 1,
	volume REAL NOT NULL DEFAULT 1,
	device_info TEXT NOT NULL DEFAULT '',
	video_id_indexed TEXT NOT NULL,
	played_at_indexed DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_video ON play_history(video_id_indexed);
CREATE INDEX IF NOT EXISTS idx_history_played ON play_history(played_at_indexed);

CREATE TABLE IF NOT EXISTS app_settings (
	id TEXT PRIMARY KEY,
	theme TEXT NOT NULL,
	language TEXT NOT NULL,
	playback_speed REAL NOT NULL,
	auto_play BOOLEAN NOT NULL,
	loop_mode TEXT NOT NULL,
	cache_limit_mb INTEGER NOT NULL,
	auto_cleanup BOOLEAN NOT NULL,
	private_mode BOOLEAN NOT NULL,
	require_auth BOOLEAN NOT NULL,
	last_updated DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
