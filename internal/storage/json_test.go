package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffmtest/internal/config"
	"ffmtest/internal/domain"
)

func sampleReport(env string) *domain.Report {
	report := domain.NewReport(env, domain.CredentialSummary{APIKey: "sandbox-...", Issuer: "test-iss"})
	report.SetClock(func() time.Time { return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC) })
	report.Record("basic_auth", domain.StatusPassed, map[string]any{"status_code": 200})
	report.Record("create_artist", domain.StatusFailed, map[string]any{"error": "forbidden"})
	report.RecordEndpoint("https://api.feature.fm/manage/v1/artists")
	return report
}

func storageFor(t *testing.T, env config.Environment) (*JSONStorage, *config.Config) {
	t.Helper()
	cfg := config.New(env)
	cfg.OutputDir = t.TempDir()
	return NewJSONStorage(cfg), cfg
}

func TestJSONStorage_SaveNamesFileByEnvironmentAndTime(t *testing.T) {
	store, cfg := storageFor(t, config.Sandbox)
	store.SetClock(func() time.Time { return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC) })

	path, err := store.Save(sampleReport("sandbox"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "test_results_sandbox_20260314_150926.json"), path)
}

func TestJSONStorage_RoundTrip(t *testing.T) {
	store, _ := storageFor(t, config.Sandbox)
	report := sampleReport("sandbox")

	path, err := store.Save(report)
	require.NoError(t, err)

	loaded, err := store.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sandbox", loaded.Environment)
	assert.Len(t, loaded.Tests, 2)
	assert.Equal(t, domain.StatusPassed, loaded.Tests["basic_auth"].Status)
	assert.Equal(t, domain.StatusFailed, loaded.Tests["create_artist"].Status)
	assert.NotEmpty(t, loaded.Tests["basic_auth"].Timestamp)
	assert.Equal(t, report.Summary, loaded.Summary)
	assert.Equal(t, []string{"https://api.feature.fm/manage/v1/artists"}, loaded.Endpoints)
	require.Len(t, loaded.Errors, 1)
	assert.Equal(t, "create_artist", loaded.Errors[0].Test)
}

func TestJSONStorage_LoadLatestPicksNewest(t *testing.T) {
	store, _ := storageFor(t, config.Sandbox)

	older := sampleReport("sandbox")
	store.SetClock(func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) })
	_, err := store.Save(older)
	require.NoError(t, err)

	newer := domain.NewReport("sandbox", domain.CredentialSummary{})
	newer.Record("jwt_auth", domain.StatusPassed, nil)
	store.SetClock(func() time.Time { return time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC) })
	_, err = store.Save(newer)
	require.NoError(t, err)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Contains(t, latest.Tests, "jwt_auth")
	assert.NotContains(t, latest.Tests, "basic_auth")
}

func TestJSONStorage_LoadLatestEmptyDir(t *testing.T) {
	store, _ := storageFor(t, config.Sandbox)
	_, err := store.LoadLatest()
	assert.Error(t, err)
}

func TestJSONStorage_LoadRejectsGarbage(t *testing.T) {
	store, cfg := storageFor(t, config.Sandbox)

	path := filepath.Join(cfg.OutputDir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.Load(path)
	assert.Error(t, err)
}
