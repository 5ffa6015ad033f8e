package commands

import (
	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/config"
	"ffmtest/internal/domain"
	"ffmtest/internal/storage"
	"ffmtest/internal/ui"
)

// ResultsCommand handles the results command
type ResultsCommand struct {
	flags *cli.Flags
}

// NewResultsCommand creates a new ResultsCommand
func NewResultsCommand(flags *cli.Flags) *ResultsCommand {
	return &ResultsCommand{flags: flags}
}

// Execute runs the command. Reading saved reports needs no credentials, so
// the config is defaults plus flags.
func (rc *ResultsCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := config.New(config.Sandbox)
	if rc.flags.OutputDir != "" {
		cfg.OutputDir = rc.flags.OutputDir
	}

	store := storage.NewJSONStorage(cfg)

	var report *domain.Report
	var err error
	if rc.flags.File != "" {
		report, err = store.Load(rc.flags.File)
	} else {
		report, err = store.LoadLatest()
	}
	if err != nil {
		return err
	}

	return ui.NewResultViewer().View(report)
}
