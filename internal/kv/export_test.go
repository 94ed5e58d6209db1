package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/lucasreed/vidvault/internal/constants"
	"github.com/lucasreed/vidvault/internal/domain"
)

func TestExportImportSettings(t *testing.T) {
	c, _ := newTestCache(t, CacheConfig{})

	if err := c.SetString(KeyTheme, "dark", 0); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if err := c.SetFloat(KeyPlaybackSpeed, 1.25, 0); err != nil {
		t.Fatalf("SetFloat failed: %v", err)
	}
	if err := c.SetBool(KeyDataSaver, true, 0); err != nil {
		t.Fatalf("SetBool failed: %v", err)
	}

	export, err := ExportSettings(c)
	if err != nil {
		t.Fatalf("ExportSettings failed: %v", err)
	}
	if export.Version != constants.ExportVersion {
		t.Errorf("Expected version %d, got %d", constants.ExportVersion, export.Version)
	}
	if export.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
	if len(export.Settings) != 3 {
		t.Errorf("Expected 3 exported settings, got %d", len(export.Settings))
	}

	payload, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	fresh, _ := newTestCache(t, CacheConfig{})
	if err := ImportSettings(fresh, payload); err != nil {
		t.Fatalf("ImportSettings failed: %v", err)
	}
	if got := fresh.GetString(KeyTheme, ""); got != "dark" {
		t.Errorf("Expected 'dark', got %q", got)
	}
	if got := fresh.GetFloat(KeyPlaybackSpeed, 0); got != 1.25 {
		t.Errorf("Expected 1.25, got %f", got)
	}
	if !fresh.GetBool(KeyDataSaver, false) {
		t.Error("Expected data saver true")
	}
}

func TestImportSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"missing version", `{"settings":{"theme":"\"dark\""}}`},
		{"missing settings", `{"version":1}`},
		{"newer version", fmt.Sprintf(`{"version":%d,"settings":{}}`, constants.ExportVersion+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCache(t, CacheConfig{})
			err := ImportSettings(c, []byte(tt.payload))
			if !errors.Is(err, domain.ErrImportFormat) {
				t.Errorf("Expected ErrImportFormat, got %v", err)
			}
		})
	}
}
