package config

import "time"

const (
	// DefaultBaseURL is the Feature.fm API host shared by both environments
	DefaultBaseURL = "https://api.feature.fm"
	// DefaultManagePath is the management API prefix
	DefaultManagePath = "/manage/v1"
	// DefaultMarketingPath is the v2 marketing API prefix
	DefaultMarketingPath = "/v2"
	// DefaultTimeout is the per-request timeout
	DefaultTimeout = 10 * time.Second
	// DefaultRetryCount is the number of attempts per request
	DefaultRetryCount = 3
	// DefaultOutputDir is where reports and run history are stored
	DefaultOutputDir = "storage"
	// DefaultOutputFilePrefix prefixes every saved report file name
	DefaultOutputFilePrefix = "test_results"
	// DefaultHistoryDBFile is the SQLite run history file name
	DefaultHistoryDBFile = "history.db"
	// DefaultConfigFile is the optional YAML override file
	DefaultConfigFile = "ffmtest.yaml"
)
