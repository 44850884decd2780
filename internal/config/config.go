// Package config loads and applies .ai-patch.yml configuration files and
// resolves provider credentials from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .ai-patch.yml configuration file. Only non-secret
// settings live here; API keys come from the environment or the saved
// home-directory config.
type Config struct {
	Provider string   `yaml:"provider,omitempty"`
	Model    string   `yaml:"model,omitempty"`
	BaseURL  string   `yaml:"base_url,omitempty"`
	Format   string   `yaml:"format,omitempty"`
	FailOn   string   `yaml:"fail_on,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
}

// Load reads the .ai-patch.yml or .ai-patch.yaml config file from the given
// path. If path is a file, its parent directory is used. If no config file
// is found, it returns a zero Config (not an error).
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range []string{".ai-patch.yml", ".ai-patch.yaml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > 1<<20 {
			return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return cfg, nil
	}
	return Config{}, nil
}
