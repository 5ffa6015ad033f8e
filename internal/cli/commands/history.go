package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/config"
	"ffmtest/internal/storage"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	flags *cli.Flags
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(flags *cli.Flags) *HistoryCommand {
	return &HistoryCommand{flags: flags}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := config.New(config.Sandbox)
	if hc.flags.OutputDir != "" {
		cfg.OutputDir = hc.flags.OutputDir
	}

	h, err := storage.OpenHistory(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer h.Close()

	limit := hc.flags.Limit
	if limit <= 0 {
		limit = 10
	}
	runs, err := h.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		color.Yellow("No recorded runs")
		return nil
	}

	fmt.Printf("%-20s  %-11s  %5s  %6s  %6s  %7s  %8s\n",
		"STARTED", "ENVIRONMENT", "TOTAL", "PASSED", "FAILED", "SKIPPED", "WARNINGS")
	for _, run := range runs {
		line := fmt.Sprintf("%-20s  %-11s  %5d  %6d  %6d  %7d  %8d",
			run.StartedAt.Format("2006-01-02 15:04:05"), run.Environment,
			run.Summary.Total, run.Summary.Passed, run.Summary.Failed,
			run.Summary.Skipped, run.Summary.Warnings)
		if run.Summary.Failed > 0 {
			color.Red(line)
		} else {
			fmt.Println(line)
		}
		if run.ReportPath != "" {
			fmt.Printf("  %s\n", run.ReportPath)
		}
	}
	return nil
}
