package domain

import "time"

// CredentialSummary is the masked credential block embedded in every report
type CredentialSummary struct {
	APIKey string `json:"api_key"`
	Issuer string `json:"iss"`
}

// RecordedTest is one executed test inside a report
type RecordedTest struct {
	Status    Status         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// Summary contains aggregate counts for a test run
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
	Warnings int `json:"warnings"`
}

// TestError is a failed test surfaced in the report's error list
type TestError struct {
	Test  string `json:"test"`
	Error any    `json:"error"`
}

// Report is the complete output structure for a test run
type Report struct {
	Timestamp   string                  `json:"timestamp"`
	Environment string                  `json:"environment"`
	Credentials CredentialSummary       `json:"credentials"`
	Endpoints   []string                `json:"endpoints_tested"`
	Tests       map[string]RecordedTest `json:"tests"`
	Summary     Summary                 `json:"summary"`
	Errors      []TestError             `json:"errors"`

	now func() time.Time
}

// NewReport creates an empty report for the given environment
func NewReport(environment string, creds CredentialSummary) *Report {
	r := &Report{
		Environment: environment,
		Credentials: creds,
		Endpoints:   []string{},
		Tests:       make(map[string]RecordedTest),
		Errors:      []TestError{},
		now:         time.Now,
	}
	r.Timestamp = r.now().Format(time.RFC3339)
	return r
}

// SetClock overrides the report clock (used by tests for stable timestamps)
func (r *Report) SetClock(now func() time.Time) {
	r.now = now
	r.Timestamp = now().Format(time.RFC3339)
}

// Record stores a test outcome and updates the summary counters.
// FAILED outcomes also land in the Errors list.
func (r *Report) Record(name string, status Status, details map[string]any) {
	r.Tests[name] = RecordedTest{
		Status:    status,
		Timestamp: r.now().Format(time.RFC3339),
		Details:   details,
	}

	r.Summary.Total++
	switch status {
	case StatusPassed:
		r.Summary.Passed++
	case StatusFailed:
		r.Summary.Failed++
		r.Errors = append(r.Errors, TestError{Test: name, Error: errorFromDetails(details)})
	case StatusSkipped:
		r.Summary.Skipped++
	case StatusWarning:
		r.Summary.Warnings++
	}
}

// RecordEndpoint remembers an endpoint URL exactly once
func (r *Report) RecordEndpoint(url string) {
	for _, e := range r.Endpoints {
		if e == url {
			return
		}
	}
	r.Endpoints = append(r.Endpoints, url)
}

// SuccessRate returns passed/total as a percentage, 0 for an empty run
func (r *Report) SuccessRate() float64 {
	if r.Summary.Total == 0 {
		return 0
	}
	return float64(r.Summary.Passed) / float64(r.Summary.Total) * 100
}

// Failed reports whether any test in the run failed
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}

func errorFromDetails(details map[string]any) any {
	if details == nil {
		return "Unknown error"
	}
	if e, ok := details["error"]; ok {
		return e
	}
	if d, ok := details["data"]; ok {
		return d
	}
	return "Unknown error"
}
