package domain

import (
	"database/sql/driver"
	"encoding/json"
)

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}

	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}

	return json.Unmarshal(data, s)
}

// Contains reports whether the slice holds v (case-sensitive).
func (s StringSlice) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// SortField selects the sort key for search results.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByDate      SortField = "date"
	SortByDuration  SortField = "duration"
	SortBySize      SortField = "size"
	SortByPlayCount SortField = "playCount"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchFilters are conjunctive equality/membership filters; zero values are
// no-ops.
type SearchFilters struct {
	FolderID string   `json:"folder_id,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	MimeType string   `json:"mime_type,omitempty"`
	Quality  string   `json:"quality,omitempty"`
	ParentID string   `json:"parent_id,omitempty"`
}

// SearchOptions shapes a search call. Zero Limit means the default of 50.
type SearchOptions struct {
	SortBy    SortField     `json:"sort_by,omitempty"`
	SortOrder SortOrder     `json:"sort_order,omitempty"`
	Limit     int           `json:"limit,omitempty"`
	Offset    int           `json:"offset,omitempty"`
	Filters   SearchFilters `json:"filters,omitempty"`
}

// DefaultSearchLimit applies when SearchOptions.Limit is unset.
const DefaultSearchLimit = 50

// StoreStats summarizes store contents.
type StoreStats struct {
	Videos        int   `json:"videos" db:"videos"`
	Playlists     int   `json:"playlists" db:"playlists"`
	Folders       int   `json:"folders" db:"folders"`
	PlayHistory   int   `json:"play_history" db:"play_history"`
	SizeBytes     int64 `json:"size_bytes"`
	SchemaVersion int   `json:"schema_version"`
}
