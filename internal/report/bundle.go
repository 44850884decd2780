package report

import (
	"archive/tar"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Redaction patterns for share bundles. Provider keys have recognizable
// prefixes; config-style assignments catch the rest.
var redactRes = []*regexp.Regexp{
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{8,}`),
	regexp.MustCompile(`(?i)(api[_-]?key"?\s*[:=]\s*")[^"]+`),
	regexp.MustCompile(`(?i)(authorization:\s*bearer\s+)\S+`),
}

// Redact masks API-key-shaped strings in data so a report can be shared
// with support without leaking credentials.
func Redact(data []byte) []byte {
	out := data
	out = redactRes[0].ReplaceAll(out, []byte("sk-REDACTED"))
	out = redactRes[1].ReplaceAll(out, []byte("${1}REDACTED"))
	out = redactRes[2].ReplaceAll(out, []byte("${1}REDACTED"))
	return out
}

// Bundle writes a redacted tar.gz of every regular file in reportDir to
// bundlePath. Returns the bundle path for display.
func Bundle(reportDir, bundlePath string) error {
	out, err := os.Create(bundlePath)
	if err != nil {
		return fmt.Errorf("creating bundle: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	defer gz.Close()
	tw := tar.NewWriter(gz)
	defer tw.Close()

	entries, err := os.ReadDir(reportDir)
	if err != nil {
		return fmt.Errorf("reading report dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(reportDir, entry.Name()))
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", entry.Name(), readErr)
		}
		data = Redact(data)
		hdr := &tar.Header{
			Name:    entry.Name(),
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: time.Now(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing bundle header: %w", err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("writing bundle entry: %w", err)
		}
	}
	return nil
}
