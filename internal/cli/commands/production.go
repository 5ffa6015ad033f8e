package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/config"
	"ffmtest/internal/harness"
	"ffmtest/internal/ui"
)

// ProductionCommand handles the production command
type ProductionCommand struct {
	flags *cli.Flags
}

// NewProductionCommand creates a new ProductionCommand
func NewProductionCommand(flags *cli.Flags) *ProductionCommand {
	return &ProductionCommand{flags: flags}
}

// Execute runs the command
func (pc *ProductionCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Production, pc.flags.ToConfigFlags())
	if err != nil {
		return err
	}

	out := ui.NewPrinter(cfg.Flags.Quiet)
	out.ProductionBanner()
	fmt.Printf("API Key: %s\n", cfg.Credentials.MaskedAPIKey())
	fmt.Printf("Base URL: %s\n", cfg.BaseURL)

	if !confirmProduction(cmd) {
		fmt.Println("Production tests cancelled")
		return nil
	}

	suite, err := harness.NewProductionSuite(cfg, newAPIClient(cfg), out)
	if err != nil {
		return err
	}
	return runSuite(cmd, cfg, suite, out)
}

// confirmProduction requires the operator to type the word "yes" before any
// production request is issued. Anything else cancels.
func confirmProduction(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "\nType 'yes' to run READ-ONLY tests against production: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}
