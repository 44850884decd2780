package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

func TestSeverityString(t *testing.T) {
	require.Equal(t, "ERROR", types.SeverityError.String())
	require.Equal(t, "WARNING", types.SeverityWarning.String())
	require.Equal(t, "INFO", types.SeverityInfo.String())
}

func TestSeverityOrdering(t *testing.T) {
	require.True(t, types.SeverityError > types.SeverityWarning)
	require.True(t, types.SeverityWarning > types.SeverityInfo)
}

func TestParseSeverity(t *testing.T) {
	sev, err := types.ParseSeverity("error")
	require.NoError(t, err)
	require.Equal(t, types.SeverityError, sev)

	sev, err = types.ParseSeverity("WARN")
	require.NoError(t, err)
	require.Equal(t, types.SeverityWarning, sev)

	sev, err = types.ParseSeverity(" info ")
	require.NoError(t, err)
	require.Equal(t, types.SeverityInfo, sev)

	_, err = types.ParseSeverity("catastrophic")
	require.Error(t, err)
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(types.SeverityWarning)
	require.NoError(t, err)
	require.Equal(t, `"warning"`, string(data))

	var sev types.Severity
	require.NoError(t, json.Unmarshal(data, &sev))
	require.Equal(t, types.SeverityWarning, sev)
}

func TestCategoriesOrder(t *testing.T) {
	require.Equal(t, []types.Category{
		types.CategoryStreaming,
		types.CategoryRetry,
		types.CategoryTimeout,
		types.CategoryRateLimit,
		types.CategoryCost,
		types.CategoryTraceability,
	}, types.Categories())
}

func TestScanResultAllIssues(t *testing.T) {
	result := &types.ScanResult{
		Issues: []types.Issue{
			{Category: types.CategoryTimeout, Severity: types.SeverityWarning},
		},
		GatewayLayerIssues: []types.Issue{
			{Category: types.CategoryRateLimit, Severity: types.SeverityError},
		},
	}

	all := result.AllIssues()
	require.Len(t, all, 2)
	require.Equal(t, types.CategoryTimeout, all[0].Category)
	require.Equal(t, types.CategoryRateLimit, all[1].Category)
}

func TestScanResultMaxSeverity(t *testing.T) {
	empty := &types.ScanResult{}
	_, ok := empty.MaxSeverity()
	require.False(t, ok)

	result := &types.ScanResult{
		Issues: []types.Issue{
			{Severity: types.SeverityInfo},
			{Severity: types.SeverityWarning},
		},
		GatewayLayerIssues: []types.Issue{
			{Severity: types.SeverityError},
		},
	}
	sev, ok := result.MaxSeverity()
	require.True(t, ok)
	require.Equal(t, types.SeverityError, sev)
}

func TestScanResultMarshalDurationMS(t *testing.T) {
	result := types.ScanResult{
		FilesScanned: 3,
		Duration:     1500 * time.Millisecond,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, float64(1500), decoded["duration_ms"])
	require.Equal(t, float64(3), decoded["files_scanned"])
	require.NotContains(t, decoded, "Target")
}
