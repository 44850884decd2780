package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/scanner"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func relPaths(targets []*scanner.Target) []string {
	paths := make([]string, len(targets))
	for i, target := range targets {
		paths[i] = target.RelPath
	}
	return paths
}

func TestDiscoverSourceExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "x = 1\n")
	writeFile(t, dir, "index.ts", "const x = 1;\n")
	writeFile(t, dir, "component.jsx", "export default null;\n")
	writeFile(t, dir, "README.md", "# docs\n")
	writeFile(t, dir, "main.go", "package main\n")

	targets, err := scanner.NewTargetDiscovery().Discover(dir)
	require.NoError(t, err)

	paths := relPaths(targets)
	require.ElementsMatch(t, []string{"app.py", "index.ts", "component.jsx"}, paths)
}

func TestDiscoverSkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "x = 1\n")
	writeFile(t, dir, filepath.Join("node_modules", "pkg", "index.js"), "module.exports = {};\n")
	writeFile(t, dir, filepath.Join("venv", "lib", "helper.py"), "y = 2\n")
	writeFile(t, dir, filepath.Join("ai-patch-reports", "old.py"), "z = 3\n")

	targets, err := scanner.NewTargetDiscovery().Discover(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"app.py"}, relPaths(targets))
}

func TestDiscoverSkipsSelf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "x = 1\n")
	writeFile(t, dir, filepath.Join("tools", "ai-patch-doctor", "helper.py"), "y = 2\n")

	targets, err := scanner.NewTargetDiscovery().Discover(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"app.py"}, relPaths(targets))
}

func TestDiscoverMissingRoot(t *testing.T) {
	targets, err := scanner.NewTargetDiscovery().Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Empty(t, targets)
}

func TestTargetLoadContentAndLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "line one\nline two")

	target := &scanner.Target{Path: path, RelPath: "app.py"}
	require.NoError(t, target.LoadContent())
	require.Equal(t, []string{"line one", "line two"}, target.Lines())
}
