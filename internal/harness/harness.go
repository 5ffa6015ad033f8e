package harness

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"ffmtest/internal/domain"
	"ffmtest/internal/ui"
)

// ErrAborted signals that a case decided the rest of the run is pointless
// (e.g. authentication against production failed).
var ErrAborted = errors.New("test run aborted")

// Case is one named test inside a suite. Run records its own outcome on the
// suite report; a returned error aborts the remaining cases.
type Case struct {
	Name string
	Run  func(ctx context.Context) error
}

// Suite is a fixed, ordered set of cases sharing one report
type Suite interface {
	Title() string
	Cases() []Case
	Report() *domain.Report
}

// Runner executes suite cases sequentially, one request at a time
type Runner struct {
	out *ui.Printer
}

// NewRunner creates a Runner printing through out
func NewRunner(out *ui.Printer) *Runner {
	return &Runner{out: out}
}

// Run executes the suite's cases, optionally filtered by a name pattern.
// The report accumulates results even when the run aborts early.
func (r *Runner) Run(ctx context.Context, suite Suite, filter string) error {
	cases := FilterByName(suite.Cases(), filter)
	if len(cases) == 0 {
		color.Yellow("No tests to run")
		return nil
	}

	report := suite.Report()
	bar := ui.NewProgressBar(len(cases))

	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			return err
		}
		runErr := c.Run(ctx)
		bar.Update(i+1, report.Summary.Passed, report.Summary.Failed)
		if runErr != nil {
			bar.Finish()
			return runErr
		}
	}
	bar.Finish()
	return nil
}
