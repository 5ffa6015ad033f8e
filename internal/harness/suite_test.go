package harness

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffmtest/internal/client"
	"ffmtest/internal/config"
	"ffmtest/internal/domain"
	"ffmtest/internal/ui"
)

func testConfig(env config.Environment, baseURL string) *config.Config {
	cfg := config.New(env)
	cfg.BaseURL = baseURL
	cfg.Credentials = config.Credentials{
		APIKey:    "test-api-key-12345",
		SecretKey: "test-secret",
		Issuer:    "test-issuer",
	}
	cfg.RetryCount = 1
	cfg.Timeout = 5 * time.Second
	return cfg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fakeSandboxAPI responds like the sandbox management API, including a
// pre-save rejection for placeholder store URLs
func fakeSandboxAPI() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /manage/v1/artists", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{
			{"id": "art_existing", "artistName": "Existing Artist"},
		})
	})
	mux.HandleFunc("POST /manage/v1/artist", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, 201, map[string]any{"id": "art_new", "artistName": body["artistName"]})
	})
	mux.HandleFunc("GET /manage/v1/artist/art_new", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{
			"id": "art_new", "artistName": "Sandbox Artist", "type": "artist", "countryCode": "US",
		})
	})
	mux.HandleFunc("POST /manage/v1/smartlink", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 201, map[string]any{"id": "sl_new"})
	})
	mux.HandleFunc("POST /manage/v1/smartlink/pre-save", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 422, map[string]any{"message": "store url scraping failed"})
	})
	mux.HandleFunc("GET /manage/v1/actionpages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{})
	})
	return httptest.NewServer(mux)
}

func TestSandboxSuite_FullRun(t *testing.T) {
	server := fakeSandboxAPI()
	defer server.Close()

	cfg := testConfig(config.Sandbox, server.URL)
	out := ui.NewPrinter(true)
	suite, err := NewSandboxSuite(cfg, client.New(cfg), out)
	require.NoError(t, err)

	err = NewRunner(out).Run(context.Background(), suite, "")
	require.NoError(t, err)

	report := suite.Report()
	assert.Len(t, report.Tests, 8, "one recorded entry per case")
	assert.Equal(t, 8, report.Summary.Total)

	for name, test := range report.Tests {
		assert.Contains(t, []domain.Status{
			domain.StatusPassed, domain.StatusFailed, domain.StatusSkipped, domain.StatusWarning,
		}, test.Status, "test %s must finish with a terminal status", name)
		assert.NotEmpty(t, test.Timestamp)
	}

	assert.Equal(t, domain.StatusPassed, report.Tests["basic_auth"].Status)
	assert.Equal(t, domain.StatusPassed, report.Tests["create_artist"].Status)
	assert.Equal(t, domain.StatusPassed, report.Tests["get_artist_details"].Status)
	assert.Equal(t, domain.StatusPassed, report.Tests["create_smartlink"].Status)
	assert.Equal(t, domain.StatusWarning, report.Tests["create_presave"].Status,
		"scraping rejection downgrades to warning")

	created := suite.CreatedResources()
	assert.Equal(t, []string{"art_new"}, created["Artists"])
	assert.Equal(t, []string{"sl_new"}, created["SmartLinks"])
	assert.Empty(t, created["Pre-Saves"])

	assert.NotEmpty(t, report.Endpoints)
}

func TestSandboxSuite_WritesLocked(t *testing.T) {
	var writeHits int64
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			atomic.AddInt64(&writeHits, 1)
		}
		writeJSON(w, 200, []map[string]any{})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig(config.Sandbox, server.URL)
	cfg.AllowWrites = false
	out := ui.NewPrinter(true)
	suite, err := NewSandboxSuite(cfg, client.New(cfg), out)
	require.NoError(t, err)

	require.NoError(t, NewRunner(out).Run(context.Background(), suite, ""))

	report := suite.Report()
	assert.Equal(t, domain.StatusSkipped, report.Tests["create_artist"].Status)
	assert.Equal(t, domain.StatusSkipped, report.Tests["create_smartlink"].Status)
	assert.Equal(t, domain.StatusSkipped, report.Tests["create_presave"].Status)
	assert.Zero(t, atomic.LoadInt64(&writeHits), "no write request may reach the server")
}

func TestSandboxSuite_RejectsProductionConfig(t *testing.T) {
	cfg := testConfig(config.Production, "https://api.feature.fm")
	_, err := NewSandboxSuite(cfg, client.New(cfg), ui.NewPrinter(true))
	assert.Error(t, err)
}

func TestProductionSuite_ReadOnlyRun(t *testing.T) {
	var writeHits int64
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			atomic.AddInt64(&writeHits, 1)
			writeJSON(w, 500, map[string]any{"error": "write reached production"})
			return
		}
		writeJSON(w, 200, []map[string]any{{"id": "art_prod", "artistName": "Prod Artist"}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig(config.Production, server.URL)
	out := ui.NewPrinter(true)
	suite, err := NewProductionSuite(cfg, client.New(cfg), out)
	require.NoError(t, err)

	require.NoError(t, NewRunner(out).Run(context.Background(), suite, ""))

	report := suite.Report()
	assert.Len(t, report.Tests, 8)
	assert.Equal(t, domain.StatusPassed, report.Tests["basic_auth"].Status)
	assert.Equal(t, domain.StatusPassed, report.Tests["list_artists"].Status)
	assert.Equal(t, domain.StatusSkipped, report.Tests["get_artist_details"].Status, "no --artist flag supplied")
	assert.Equal(t, domain.StatusSkipped, report.Tests["get_smartlink"].Status, "no --smartlink flag supplied")
	assert.Zero(t, atomic.LoadInt64(&writeHits), "production run must never issue a write")

	// The explicit write surface refuses without dispatching
	for _, call := range []func() error{
		suite.CreateArtist,
		func() error { return suite.CreateSmartlink("art_prod") },
		func() error { return suite.CreatePresave("art_prod") },
		func() error { return suite.UpdateArtist("art_prod") },
		func() error { return suite.DeleteResource("sl_prod") },
	} {
		assert.ErrorIs(t, call(), client.ErrWriteBlocked)
	}
	assert.Zero(t, atomic.LoadInt64(&writeHits))
}

func TestProductionSuite_AbortsOnAuthFailure(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		writeJSON(w, 401, map[string]any{"error": "invalid api key"})
	}))
	defer server.Close()

	cfg := testConfig(config.Production, server.URL)
	out := ui.NewPrinter(true)
	suite, err := NewProductionSuite(cfg, client.New(cfg), out)
	require.NoError(t, err)

	err = NewRunner(out).Run(context.Background(), suite, "")
	assert.ErrorIs(t, err, ErrAborted)

	report := suite.Report()
	assert.Len(t, report.Tests, 1, "only basic_auth runs before the abort")
	assert.Equal(t, domain.StatusFailed, report.Tests["basic_auth"].Status)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))
}

func TestProductionSuite_RejectsSandboxConfig(t *testing.T) {
	cfg := testConfig(config.Sandbox, "https://api.feature.fm")
	_, err := NewProductionSuite(cfg, client.New(cfg), ui.NewPrinter(true))
	assert.Error(t, err)
}

func TestCompleteSuite_TracksAvailability(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /manage/v1/artists", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{})
	})
	mux.HandleFunc("GET /manage/v1/artists/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{})
	})
	mux.HandleFunc("GET /manage/v1/smartlinks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, map[string]any{"error": "not found"})
	})
	mux.HandleFunc("POST /manage/v1/artist", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 201, map[string]any{"id": "art_new"})
	})
	mux.HandleFunc("POST /consumer/identify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"ok": true})
	})
	// Everything else at the host root is not enabled for this account
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, map[string]any{"error": "not found"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig(config.Sandbox, server.URL)
	out := ui.NewPrinter(true)
	suite := NewCompleteSuite(cfg, client.New(cfg), out)

	require.NoError(t, NewRunner(out).Run(context.Background(), suite, ""))

	report := suite.Report()
	assert.Len(t, report.Tests, 12)
	assert.Equal(t, domain.StatusPassed, report.Tests["marketing_list_artists"].Status)
	assert.Equal(t, domain.StatusWarning, report.Tests["marketing_list_smartlinks"].Status)
	assert.Equal(t, domain.StatusPassed, report.Tests["publisher_identify_consumer"].Status)
	assert.Equal(t, domain.StatusWarning, report.Tests["conversion_init_session"].Status)

	availability := suite.Availability()
	require.NotNil(t, availability["Marketing API"])
	assert.True(t, *availability["Marketing API"])
	require.NotNil(t, availability["Publisher API"])
	assert.True(t, *availability["Publisher API"])
	require.NotNil(t, availability["Conversion API"])
	assert.False(t, *availability["Conversion API"])
}

func TestCompleteSuite_ProductionSkipsWrites(t *testing.T) {
	var writeHits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			atomic.AddInt64(&writeHits, 1)
		}
		writeJSON(w, 200, []map[string]any{})
	}))
	defer server.Close()

	cfg := testConfig(config.Production, server.URL)
	out := ui.NewPrinter(true)
	suite := NewCompleteSuite(cfg, client.New(cfg), out)

	require.NoError(t, NewRunner(out).Run(context.Background(), suite, ""))

	report := suite.Report()
	assert.Equal(t, domain.StatusSkipped, report.Tests["marketing_create_artist"].Status)
	assert.Equal(t, domain.StatusSkipped, report.Tests["publisher_identify_consumer"].Status)
	assert.Equal(t, domain.StatusSkipped, report.Tests["conversion_init_session"].Status)
	assert.Zero(t, atomic.LoadInt64(&writeHits))
}

func TestRunner_FilterLimitsCases(t *testing.T) {
	server := fakeSandboxAPI()
	defer server.Close()

	cfg := testConfig(config.Sandbox, server.URL)
	out := ui.NewPrinter(true)
	suite, err := NewSandboxSuite(cfg, client.New(cfg), out)
	require.NoError(t, err)

	require.NoError(t, NewRunner(out).Run(context.Background(), suite, "*auth*"))

	report := suite.Report()
	assert.Len(t, report.Tests, 2)
	assert.Contains(t, report.Tests, "basic_auth")
	assert.Contains(t, report.Tests, "jwt_auth")
}
