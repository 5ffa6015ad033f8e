package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/config"
	"ffmtest/internal/harness"
	"ffmtest/internal/ui"
)

// AllCommand handles the all command (Marketing + Publisher + Conversion)
type AllCommand struct {
	flags *cli.Flags
}

// NewAllCommand creates a new AllCommand
func NewAllCommand(flags *cli.Flags) *AllCommand {
	return &AllCommand{flags: flags}
}

// Execute runs the command
func (ac *AllCommand) Execute(cmd *cobra.Command, args []string) error {
	env, err := config.ParseEnvironment(ac.flags.Env)
	if err != nil {
		return err
	}

	cfg, err := config.Load(env, ac.flags.ToConfigFlags())
	if err != nil {
		return err
	}

	out := ui.NewPrinter(cfg.Flags.Quiet)
	out.CompleteBanner(cfg.EnvName(), cfg.CanWrite())
	fmt.Printf("API Key: %s\n", cfg.Credentials.MaskedAPIKey())

	// Production targets get the same confirmation gate as the dedicated
	// production command
	if env == config.Production {
		out.ProductionBanner()
		if !confirmProduction(cmd) {
			fmt.Println("Production tests cancelled")
			return nil
		}
	}

	suite := harness.NewCompleteSuite(cfg, newAPIClient(cfg), out)
	runErr := runSuite(cmd, cfg, suite, out)
	out.Availability(suite.Availability())
	return runErr
}
