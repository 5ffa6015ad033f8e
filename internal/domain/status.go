package domain

// Status is the terminal outcome of a single test
type Status string

const (
	StatusPassed  Status = "PASSED"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
	StatusWarning Status = "WARNING"
)
