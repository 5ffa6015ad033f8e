package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffmtest/internal/domain"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistory_AppendAndRecent(t *testing.T) {
	h := openTestHistory(t)

	first := sampleReport("sandbox")
	first.SetClock(func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) })
	firstID, err := h.Append(first, "storage/test_results_sandbox_20260314_100000.json")
	require.NoError(t, err)
	assert.NotEmpty(t, firstID)

	second := sampleReport("production")
	second.SetClock(func() time.Time { return time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC) })
	secondID, err := h.Append(second, "storage/test_results_production_20260314_110000.json")
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	runs, err := h.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first
	assert.Equal(t, secondID, runs[0].ID)
	assert.Equal(t, "production", runs[0].Environment)
	assert.Equal(t, firstID, runs[1].ID)
	assert.Equal(t, "sandbox", runs[1].Environment)

	assert.Equal(t, second.Summary, runs[0].Summary)
	assert.Equal(t, "storage/test_results_production_20260314_110000.json", runs[0].ReportPath)
	assert.Equal(t, time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC), runs[0].StartedAt.UTC())
}

func TestHistory_RecentHonorsLimit(t *testing.T) {
	h := openTestHistory(t)

	for i := 0; i < 5; i++ {
		report := domain.NewReport("sandbox", domain.CredentialSummary{})
		report.SetClock(func() time.Time { return time.Date(2026, 3, 14, 10, i, 0, 0, time.UTC) })
		report.Record("basic_auth", domain.StatusPassed, nil)
		_, err := h.Append(report, "")
		require.NoError(t, err)
	}

	runs, err := h.Recent(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	count, err := h.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestHistory_EmptyDatabase(t *testing.T) {
	h := openTestHistory(t)

	runs, err := h.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	count, err := h.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
