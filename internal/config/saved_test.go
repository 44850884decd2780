package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/config"
)

func TestSaveSavedWritesOwnerOnly(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	fields, err := config.SaveSaved(config.Saved{APIKey: "sk-test", Provider: "openai-compatible"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"apiKey", "provider"}, fields)

	path := filepath.Join(home, ".ai-patch", "config.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	saved := config.LoadSaved()
	require.Equal(t, "sk-test", saved.APIKey)
	require.Equal(t, "openai-compatible", saved.Provider)
}

func TestSaveSavedMergesFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := config.SaveSaved(config.Saved{APIKey: "sk-first"})
	require.NoError(t, err)
	_, err = config.SaveSaved(config.Saved{BaseURL: "http://localhost:4000"})
	require.NoError(t, err)

	saved := config.LoadSaved()
	require.Equal(t, "sk-first", saved.APIKey)
	require.Equal(t, "http://localhost:4000", saved.BaseURL)
}

func TestLoadSavedMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.Equal(t, config.Saved{}, config.LoadSaved())
}
