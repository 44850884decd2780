package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Saved is the persisted home-directory config (~/.ai-patch/config.json).
// Saving the API key is opt-in and gated behind --force on the CLI.
type Saved struct {
	APIKey   string `json:"apiKey,omitempty"`
	BaseURL  string `json:"baseUrl,omitempty"`
	Provider string `json:"provider,omitempty"`
}

func savedPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ai-patch", "config.json"), nil
}

// LoadSaved reads the saved config. A missing or unreadable file yields a
// zero Saved, never an error: the saved config is a convenience layer.
func LoadSaved() Saved {
	path, err := savedPath()
	if err != nil {
		return Saved{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Saved{}
	}
	var s Saved
	if json.Unmarshal(data, &s) != nil {
		return Saved{}
	}
	return s
}

// SaveSaved merges the non-empty fields into the saved config and writes it
// with owner-only permissions. Returns the fields that were written.
func SaveSaved(s Saved) ([]string, error) {
	path, err := savedPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	merged := LoadSaved()
	var fields []string
	if s.APIKey != "" {
		merged.APIKey = s.APIKey
		fields = append(fields, "apiKey")
	}
	if s.BaseURL != "" {
		merged.BaseURL = s.BaseURL
		fields = append(fields, "baseUrl")
	}
	if s.Provider != "" {
		merged.Provider = s.Provider
		fields = append(fields, "provider")
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, err
	}
	return fields, nil
}
