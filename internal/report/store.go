package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DirName is the reports directory created under the working directory.
const DirName = "ai-patch-reports"

const timestampLayout = "20060102-150405"

// Save writes report.json (and report.md when markdown is non-empty) into a
// fresh timestamped directory under root/ai-patch-reports and repoints the
// "latest" marker. It returns the created directory.
func Save(root string, r *Report, markdown []byte) (string, error) {
	base := filepath.Join(root, DirName)
	dir := filepath.Join(base, r.GeneratedAt.Format(timestampLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.json"), data, 0o644); err != nil {
		return "", fmt.Errorf("writing report.json: %w", err)
	}
	if len(markdown) > 0 {
		if err := os.WriteFile(filepath.Join(dir, "report.md"), markdown, 0o644); err != nil {
			return "", fmt.Errorf("writing report.md: %w", err)
		}
	}

	writeLatestPointer(base, filepath.Base(dir))
	return dir, nil
}

// writeLatestPointer tries a "latest" symlink first and falls back to a
// latest.json file where symlinks are unavailable (Windows, restricted FS).
func writeLatestPointer(base, timestamp string) {
	link := filepath.Join(base, "latest")
	_ = os.Remove(link)
	if err := os.Symlink(timestamp, link); err == nil {
		return
	}
	data, err := json.Marshal(map[string]string{"latest": timestamp})
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(base, "latest.json"), data, 0o644)
}

// FindLatest locates the newest report.json under root/ai-patch-reports.
// Resolution order: the "latest" symlink, then latest.json, then the
// newest timestamped directory by modification time. Returns "" (no error)
// when no report exists.
func FindLatest(root string) (string, error) {
	base := filepath.Join(root, DirName)
	if _, err := os.Stat(base); err != nil {
		return "", nil
	}

	if path := filepath.Join(base, "latest", "report.json"); fileExists(path) {
		return path, nil
	}

	if data, err := os.ReadFile(filepath.Join(base, "latest.json")); err == nil {
		var pointer struct {
			Latest string `json:"latest"`
		}
		if json.Unmarshal(data, &pointer) == nil && pointer.Latest != "" {
			if path := filepath.Join(base, pointer.Latest, "report.json"); fileExists(path) {
				return path, nil
			}
		}
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return "", err
	}
	type candidate struct {
		path  string
		mtime int64
	}
	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "latest" {
			continue
		}
		path := filepath.Join(base, entry.Name(), "report.json")
		if !fileExists(path) {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		candidates = append(candidates, candidate{path: path, mtime: info.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return "", nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].mtime > candidates[j].mtime })
	return candidates[0].path, nil
}

// Load reads a report.json written by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &r, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
