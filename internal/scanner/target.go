package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// Target represents a file to be scanned.
type Target struct {
	Path    string
	RelPath string
	Content []byte
}

// LoadContent reads the file content into memory.
func (t *Target) LoadContent() error {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return err
	}
	t.Content = data
	return nil
}

// Lines returns the content split into lines.
func (t *Target) Lines() []string {
	return strings.Split(string(t.Content), "\n")
}

// sourceExts is the fixed set of extensions the scanner cares about:
// the languages the AI provider SDKs ship for.
var sourceExts = map[string]bool{
	".js":  true,
	".ts":  true,
	".jsx": true,
	".tsx": true,
	".py":  true,
}

// defaultExcludedDirs are never entered during discovery: dependency
// caches, version control, build output, virtual environments, and
// tool caches.
var defaultExcludedDirs = map[string]bool{
	"node_modules":     true,
	".git":             true,
	".svn":             true,
	".hg":              true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"vendor":           true,
	"venv":             true,
	".venv":            true,
	"env":              true,
	"site-packages":    true,
	"__pycache__":      true,
	".pytest_cache":    true,
	".mypy_cache":      true,
	".ruff_cache":      true,
	".next":            true,
	".nuxt":            true,
	".cache":           true,
	"coverage":         true,
	"ai-patch-reports": true,
}

// defaultSelfMarkers are path fragments that identify the tool's own
// installation; matching paths are skipped so the scanner never analyzes
// itself. Checked as substrings against both path separator styles.
var defaultSelfMarkers = []string{"ai-patch-doctor"}

// TargetDiscovery walks a directory tree and returns the source files
// worth scanning.
type TargetDiscovery struct {
	ExcludedDirs map[string]bool
	SelfMarkers  []string
}

// NewTargetDiscovery returns a discovery configured with the default
// exclusion and self-skip sets. The exclusion map is copied so callers can
// extend it per scan.
func NewTargetDiscovery() *TargetDiscovery {
	excluded := make(map[string]bool, len(defaultExcludedDirs))
	for name := range defaultExcludedDirs {
		excluded[name] = true
	}
	return &TargetDiscovery{
		ExcludedDirs: excluded,
		SelfMarkers:  defaultSelfMarkers,
	}
}

// Discover walks root and returns every file whose extension is in the
// scanner's source set, skipping excluded directories and the tool's own
// install path. A missing root is "nothing to scan": empty list, no error.
// Traversal order is whatever the filesystem yields; callers must not
// assume a particular cross-platform ordering.
func (td *TargetDiscovery) Discover(root string) ([]*Target, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, nil
	}

	var targets []*Target
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if info.IsDir() {
			if td.ExcludedDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if td.isSelf(path) {
			return nil
		}
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}
		targets = append(targets, &Target{
			Path:    path,
			RelPath: relPath,
		})
		return nil
	})
	return targets, err
}

func (td *TargetDiscovery) isSelf(path string) bool {
	for _, marker := range td.SelfMarkers {
		if strings.Contains(path, marker+"/") || strings.Contains(path, marker+`\`) {
			return true
		}
	}
	return false
}
