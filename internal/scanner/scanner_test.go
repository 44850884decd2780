package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/scanner"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

const unguardedCall = `client = OpenAI(api_key=key)
response = client.chat.completions.create(model="gpt-3.5-turbo")
`

func TestScanMissingRoot(t *testing.T) {
	result, err := scanner.New().Scan(t.TempDir() + "/nope")
	require.NoError(t, err)
	require.Zero(t, result.FilesScanned)
	require.Empty(t, result.Issues)
	require.Empty(t, result.GatewayLayerIssues)
}

func TestScanFileWithoutProviderCalls(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.py", "def add(a, b):\n    return a + b\n")

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesScanned)
	require.Empty(t, result.Issues)
	require.Empty(t, result.GatewayLayerIssues)
}

func TestScanUnguardedCallPartitions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", unguardedCall)

	result, err := scanner.New().Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesScanned)

	// A bare call has no retry, timeout, rate-limit, token-limit, or
	// correlation handling, so every one of those categories fires.
	categories := map[types.Category]bool{}
	for _, issue := range result.AllIssues() {
		categories[issue.Category] = true
		require.Equal(t, "app.py", issue.File)
	}
	require.True(t, categories[types.CategoryRetry])
	require.True(t, categories[types.CategoryTimeout])
	require.True(t, categories[types.CategoryRateLimit])
	require.True(t, categories[types.CategoryCost])
	require.True(t, categories[types.CategoryTraceability])

	// The gateway partition gets the issues application code cannot fix.
	require.NotEmpty(t, result.GatewayLayerIssues)
	for _, issue := range result.GatewayLayerIssues {
		require.False(t, issue.LocallyFixable)
	}
	for _, issue := range result.Issues {
		require.True(t, issue.LocallyFixable)
	}
}

func TestScanDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", unguardedCall)

	s := scanner.New()
	first, err := s.Scan(dir)
	require.NoError(t, err)
	second, err := s.Scan(dir)
	require.NoError(t, err)

	require.Equal(t, first.Issues, second.Issues)
	require.Equal(t, first.GatewayLayerIssues, second.GatewayLayerIssues)
	require.Equal(t, first.FilesScanned, second.FilesScanned)
}

func TestScanRestrictedDetectors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", unguardedCall)

	s := scanner.New()
	s.SetDetectors(nil)
	result, err := s.Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesScanned)
	require.Empty(t, result.AllIssues())
}

func TestScanExcludedDirsExtended(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", unguardedCall)
	writeFile(t, dir, "legacy/old.py", unguardedCall)

	s := scanner.New()
	s.SetExcludedDirs([]string{"legacy"})
	result, err := s.Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesScanned)

	// The default discovery is unaffected by the per-scan exclusion.
	fresh, err := scanner.New().Scan(dir)
	require.NoError(t, err)
	require.Equal(t, 2, fresh.FilesScanned)
}
