package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/config"
	"ffmtest/internal/harness"
	"ffmtest/internal/ui"
)

// SandboxCommand handles the sandbox command
type SandboxCommand struct {
	flags *cli.Flags
}

// NewSandboxCommand creates a new SandboxCommand
func NewSandboxCommand(flags *cli.Flags) *SandboxCommand {
	return &SandboxCommand{flags: flags}
}

// Execute runs the command
func (sc *SandboxCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Sandbox, sc.flags.ToConfigFlags())
	if err != nil {
		return err
	}

	out := ui.NewPrinter(cfg.Flags.Quiet)
	out.SandboxBanner()
	fmt.Printf("API Key: %s\n", cfg.Credentials.MaskedAPIKey())
	fmt.Printf("Base URL: %s\n", cfg.BaseURL)

	suite, err := harness.NewSandboxSuite(cfg, newAPIClient(cfg), out)
	if err != nil {
		return err
	}

	runErr := runSuite(cmd, cfg, suite, out)
	out.CreatedResources(suite.CreatedResources())
	return runErr
}
