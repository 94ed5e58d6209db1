package kv

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lucasreed/vidvault/internal/constants"
	"github.com/lucasreed/vidvault/internal/domain"
)

// SettingsExport is the versioned wrapper for settings round-trips.
type SettingsExport struct {
	Version   int                        `json:"version"`
	Timestamp time.Time                  `json:"timestamp"`
	Settings  map[string]json.RawMessage `json:"settings"`
}

// ExportSettings snapshots every stored key into the versioned wrapper.
func ExportSettings(c *Cache) (*SettingsExport, error) {
	settings, err := c.Export()
	if err != nil {
		return nil, err
	}
	return &SettingsExport{
		Version:   constants.ExportVersion,
		Timestamp: time.Now().UTC(),
		Settings:  settings,
	}, nil
}

// ImportSettings loads a payload produced by ExportSettings. Payloads missing
// the version or settings map fail with domain.ErrImportFormat.
func ImportSettings(c *Cache, data []byte) error {
	var wrapper SettingsExport
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("settings payload is not valid JSON: %w", domain.ErrImportFormat)
	}
	if wrapper.Version == 0 || wrapper.Settings == nil {
		return fmt.Errorf("settings payload missing version or settings: %w", domain.ErrImportFormat)
	}
	if wrapper.Version > constants.ExportVersion {
		return fmt.Errorf("settings payload version %d is newer than supported %d: %w",
			wrapper.Version, constants.ExportVersion, domain.ErrImportFormat)
	}
	return c.Import(wrapper.Settings)
}
