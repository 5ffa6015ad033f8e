package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"ffmtest/internal/config"
	"ffmtest/internal/domain"
)

// JSONStorage stores reports as timestamped JSON files under the configured
// output directory.
type JSONStorage struct {
	cfg *config.Config
	now func() time.Time
}

// NewJSONStorage returns a Storage writing into cfg.OutputDir
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg, now: time.Now}
}

// SetClock overrides the filename clock (used by tests)
func (s *JSONStorage) SetClock(now func() time.Time) {
	s.now = now
}

// Save writes the report to <prefix>_<env>_<YYYYMMDD_HHMMSS>.json and
// returns the path
func (s *JSONStorage) Save(report *domain.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.json",
		s.cfg.OutputFilePrefix, s.cfg.Environment, s.now().Format("20060102_150405"))
	path := filepath.Join(s.cfg.OutputDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Load reads one saved report
func (s *JSONStorage) Load(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &report, nil
}

// LoadLatest returns the newest saved report for any environment. Filenames
// embed the timestamp, so the lexically greatest name is the newest run.
func (s *JSONStorage) LoadLatest() (*domain.Report, error) {
	path, err := s.LatestPath()
	if err != nil {
		return nil, err
	}
	return s.Load(path)
}

// LatestPath returns the path of the newest saved report
func (s *JSONStorage) LatestPath() (string, error) {
	pattern := filepath.Join(s.cfg.OutputDir, s.cfg.OutputFilePrefix+"_*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("scan output dir: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no saved reports under %s", s.cfg.OutputDir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
