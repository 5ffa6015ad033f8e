package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffmtest/internal/cli"
)

func confirmWith(input string) bool {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&bytes.Buffer{})
	return confirmProduction(cmd)
}

func TestConfirmProduction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "literal yes", input: "yes\n", expected: true},
		{name: "yes with surrounding spaces", input: "  yes  \n", expected: true},
		{name: "no", input: "no\n", expected: false},
		{name: "uppercase is rejected", input: "YES\n", expected: false},
		{name: "y is not enough", input: "y\n", expected: false},
		{name: "empty line", input: "\n", expected: false},
		{name: "eof without input", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, confirmWith(tt.input))
		})
	}
}

func setProductionEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("FEATUREFM_API_KEY", "prod-api-key-12345")
	t.Setenv("FEATUREFM_SECRET_KEY", "prod-secret")
	t.Setenv("FEATUREFM_ISS", "prod-issuer")
	t.Setenv("FEATUREFM_BASE_URL", baseURL)
}

func TestProductionCommand_CancelledWithoutConfirmation(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer server.Close()
	setProductionEnv(t, server.URL)

	flags := &cli.Flags{Quiet: true, NoSave: true}
	cmd := &cobra.Command{RunE: NewProductionCommand(flags).Execute}
	cmd.SetIn(strings.NewReader("no\n"))
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Zero(t, atomic.LoadInt64(&hits), "a cancelled run must not touch the API")
}

func TestProductionCommand_ConfirmedRunStaysReadOnly(t *testing.T) {
	var writeHits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			atomic.AddInt64(&writeHits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer server.Close()
	setProductionEnv(t, server.URL)

	flags := &cli.Flags{Quiet: true, NoSave: true}
	cmd := &cobra.Command{RunE: NewProductionCommand(flags).Execute}
	cmd.SetIn(strings.NewReader("yes\n"))
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Zero(t, atomic.LoadInt64(&writeHits), "production run must only issue GETs")
}

func TestProductionCommand_MissingCredentials(t *testing.T) {
	t.Setenv("FEATUREFM_API_KEY", "")
	t.Setenv("FEATUREFM_SECRET_KEY", "")
	t.Setenv("FEATUREFM_ISS", "")

	flags := &cli.Flags{Quiet: true, NoSave: true}
	cmd := &cobra.Command{RunE: NewProductionCommand(flags).Execute}
	cmd.SetIn(strings.NewReader("yes\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
