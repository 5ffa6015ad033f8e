package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment selects which Feature.fm instance the harness talks to
type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

// ParseEnvironment converts a user-supplied string into an Environment
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sandbox", "":
		return Sandbox, nil
	case "production", "prod":
		return Production, nil
	}
	return "", fmt.Errorf("unknown environment: %q (expected sandbox or production)", s)
}

// Credentials holds the API key tuple for one environment
type Credentials struct {
	APIKey    string
	SecretKey string
	Issuer    string
}

// MaskedAPIKey returns the API key truncated for logs and reports
func (c Credentials) MaskedAPIKey() string {
	if len(c.APIKey) > 8 {
		return c.APIKey[:8] + "..."
	}
	return c.APIKey
}

// Config holds all configuration for the harness
type Config struct {
	// Target settings
	Environment Environment
	Credentials Credentials
	BaseURL     string

	// Client settings
	Timeout    time.Duration
	RetryCount int

	// Output settings
	OutputDir        string
	OutputFilePrefix string
	HistoryDBFile    string

	// Write gate. Only meaningful in sandbox; production ignores it.
	AllowWrites bool

	// Command flags
	Flags Flags
}

// Flags holds command-line flags applied on top of the environment config
type Flags struct {
	Filter      string
	ArtistID    string
	SmartlinkID string
	OutputDir   string
	Timeout     int
	Quiet       bool
	NoSave      bool
}

// New creates a Config with defaults for the given environment
func New(env Environment) *Config {
	return &Config{
		Environment:      env,
		BaseURL:          DefaultBaseURL,
		Timeout:          DefaultTimeout,
		RetryCount:       DefaultRetryCount,
		OutputDir:        DefaultOutputDir,
		OutputFilePrefix: DefaultOutputFilePrefix,
		HistoryDBFile:    DefaultHistoryDBFile,
		AllowWrites:      env == Sandbox,
	}
}

// Load builds a Config from .env/environment variables, an optional
// ffmtest.yaml in the working directory, and the parsed flags.
func Load(env Environment, flags Flags) (*Config, error) {
	// .env is optional; plain environment variables win when both exist
	_ = godotenv.Load()

	cfg := New(env)
	cfg.Flags = flags

	creds, err := credentialsFromEnv(env)
	if err != nil {
		return nil, err
	}
	cfg.Credentials = creds

	if base := os.Getenv("FEATUREFM_BASE_URL"); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}

	if err := applyFile(cfg, DefaultConfigFile); err != nil {
		return nil, err
	}

	// Flag overrides
	if flags.OutputDir != "" {
		cfg.OutputDir = flags.OutputDir
	}
	if flags.Timeout > 0 {
		cfg.Timeout = time.Duration(flags.Timeout) * time.Second
	}

	return cfg, nil
}

func credentialsFromEnv(env Environment) (Credentials, error) {
	var creds Credentials
	switch env {
	case Sandbox:
		creds = Credentials{
			APIKey:    os.Getenv("FEATUREFM_SANDBOX_API_KEY"),
			SecretKey: os.Getenv("FEATUREFM_SANDBOX_SECRET_KEY"),
			Issuer:    os.Getenv("FEATUREFM_SANDBOX_ISS"),
		}
	case Production:
		creds = Credentials{
			APIKey:    os.Getenv("FEATUREFM_API_KEY"),
			SecretKey: os.Getenv("FEATUREFM_SECRET_KEY"),
			Issuer:    os.Getenv("FEATUREFM_ISS"),
		}
	default:
		return Credentials{}, fmt.Errorf("unsupported environment: %q", env)
	}

	if creds.APIKey == "" {
		return Credentials{}, fmt.Errorf("missing API key for %s environment (check your .env)", env)
	}
	return creds, nil
}

// CanWrite reports whether write HTTP verbs are permitted.
// Production can never write, regardless of AllowWrites.
func (c *Config) CanWrite() bool {
	return c.Environment == Sandbox && c.AllowWrites
}

// RequireWritePermission returns an error when writes are not permitted
func (c *Config) RequireWritePermission() error {
	if c.CanWrite() {
		return nil
	}
	return fmt.Errorf("write operations are not permitted in the %s environment", c.Environment)
}

// ManageBase returns the management API root (artists, smartlinks, pages)
func (c *Config) ManageBase() string {
	return strings.TrimRight(c.BaseURL, "/") + DefaultManagePath
}

// MarketingBase returns the v2 marketing API root
func (c *Config) MarketingBase() string {
	return strings.TrimRight(c.BaseURL, "/") + DefaultMarketingPath
}

// EnvName returns the display name used in banners and summaries
func (c *Config) EnvName() string {
	return strings.ToUpper(string(c.Environment))
}

// UserAgent identifies the harness and its target environment
func (c *Config) UserAgent() string {
	return fmt.Sprintf("FeatureFM-API-Tester/2.0-%s", c.Environment)
}

// HistoryPath returns the absolute path of the SQLite run history file.
// Resolves to an absolute path so every command reads the same database
// regardless of cwd.
func (c *Config) HistoryPath() string {
	p := filepath.Join(c.OutputDir, c.HistoryDBFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
