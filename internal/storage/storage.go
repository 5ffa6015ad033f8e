package storage

import (
	"ffmtest/internal/domain"
)

// Storage persists and loads run reports (e.g. for the results viewer).
type Storage interface {
	// Save writes the report and returns the path it was written to.
	Save(report *domain.Report) (string, error)
	Load(path string) (*domain.Report, error)
	// LoadLatest returns the most recently saved report.
	LoadLatest() (*domain.Report, error)
}
