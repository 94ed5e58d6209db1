// Package schema declares the entity kinds, their tables, and the shadow
// index fields the store and adapter keep in lockstep. The Defs table is the
// single source of truth for the shadow-sync rule: every write path recomputes
// shadows from this table instead of hand-listing column pairs.
package schema

// Shadow pairs a source column with its shadow index column. The shadow holds
// an exact copy of the source and must be written in the same statement.
type Shadow struct {
	Source string
	Shadow string
}

// Def describes one entity kind.
type Def struct {
	Name       string
	Table      string
	PrimaryKey string
	// TextIndex is the shadow column searched by free-text queries; empty for
	// kinds with no text search.
	TextIndex string
	// TagsColumn names the JSON string-array column matched by tag queries;
	// empty for kinds without tags.
	TagsColumn string
	// DefaultSort is the shadow column ordering full scans and sort fallbacks.
	DefaultSort string
	Shadows     []Shadow
}

// Entity kind names.
const (
	KindVideo       = "video"
	KindPlaylist    = "playlist"
	KindFolder      = "folder"
	KindPlayHistory = "play_history"
	KindSettings    = "app_settings"
)

var Video = Def{
	Name:        KindVideo,
	Table:       "videos",
	PrimaryKey:  "id",
	TextIndex:   "title_indexed",
	TagsColumn:  "tags",
	DefaultSort: "created_at_indexed",
	Shadows: []Shadow{
		{Source: "title", Shadow: "title_indexed"},
		{Source: "folder_id", Shadow: "folder_id_indexed"},
		{Source: "created_at", Shadow: "created_at_indexed"},
	},
}

var Playlist = Def{
	Name:        KindPlaylist,
	Table:       "playlists",
	PrimaryKey:  "id",
	TextIndex:   "name_indexed",
	DefaultSort: "created_at_indexed",
	Shadows: []Shadow{
		{Source: "name", Shadow: "name_indexed"},
		{Source: "created_at", Shadow: "created_at_indexed"},
	},
}

var Folder = Def{
	Name:        KindFolder,
	Table:       "folders",
	PrimaryKey:  "id",
	TextIndex:   "name_indexed",
	DefaultSort: "created_at_indexed",
	Shadows: []Shadow{
		{Source: "name", Shadow: "name_indexed"},
		{Source: "parent_id", Shadow: "parent_id_indexed"},
		{Source: "created_at", Shadow: "created_at_indexed"},
	},
}

var PlayHistory = Def{
	Name:        KindPlayHistory,
	Table:       "play_history",
	PrimaryKey:  "id",
	DefaultSort: "played_at_indexed",
	Shadows: []Shadow{
		{Source: "video_id", Shadow: "video_id_indexed"},
		{Source: "played_at", Shadow: "played_at_indexed"},
	},
}

var Settings = Def{
	Name:       KindSettings,
	Table:      "app_settings",
	PrimaryKey: "id",
}

// Defs lists every entity kind, keyed by name.
var Defs = map[string]Def{
	KindVideo:       Video,
	KindPlaylist:    Playlist,
	KindFolder:      Folder,
	KindPlayHistory: PlayHistory,
	KindSettings:    Settings,
}

// ShadowFor returns the shadow column for a source column, or "" when the
// source has no shadow.
func (d Def) ShadowFor(source string) string {
	for _, s := range d.Shadows {
		if s.Source == source {
			return s.Shadow
		}
	}
	return ""
}

// Version is the single bootstrapped schema version.
const Version = 1
