package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/config"
)

// VerifyCommand handles the verify command
type VerifyCommand struct {
	flags *cli.Flags
}

// NewVerifyCommand creates a new VerifyCommand
func NewVerifyCommand(flags *cli.Flags) *VerifyCommand {
	return &VerifyCommand{flags: flags}
}

// Execute checks credentials and configuration without calling the API
func (vc *VerifyCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err == nil {
		color.Green("✓ .env file loaded")
	} else {
		color.Yellow("⚠ No .env file found (using process environment)")
	}

	fmt.Println()
	color.Cyan("Sandbox credentials:")
	sandboxOK := checkVars(
		"FEATUREFM_SANDBOX_API_KEY",
		"FEATUREFM_SANDBOX_SECRET_KEY",
		"FEATUREFM_SANDBOX_ISS",
	)

	fmt.Println()
	color.Cyan("Production credentials:")
	productionOK := checkVars(
		"FEATUREFM_API_KEY",
		"FEATUREFM_SECRET_KEY",
		"FEATUREFM_ISS",
	)

	fmt.Println()
	color.Cyan("Optional settings:")
	if base := os.Getenv("FEATUREFM_BASE_URL"); base != "" {
		color.Green("✓ FEATUREFM_BASE_URL = %s", base)
	} else {
		fmt.Printf("  FEATUREFM_BASE_URL not set (default %s)\n", config.DefaultBaseURL)
	}
	if _, err := os.Stat(config.DefaultConfigFile); err == nil {
		color.Green("✓ %s found", config.DefaultConfigFile)
	} else {
		fmt.Printf("  %s not found (defaults apply)\n", config.DefaultConfigFile)
	}

	fmt.Println()
	switch {
	case sandboxOK && productionOK:
		color.Green("✓ Both environments are configured")
	case sandboxOK:
		color.Green("✓ Sandbox is configured")
		color.Yellow("⚠ Production credentials are incomplete")
	case productionOK:
		color.Green("✓ Production is configured")
		color.Yellow("⚠ Sandbox credentials are incomplete")
	default:
		return fmt.Errorf("no complete credential set found; fill in your .env")
	}
	return nil
}

// checkVars prints one line per variable and reports whether all are set
func checkVars(names ...string) bool {
	ok := true
	for _, name := range names {
		value := os.Getenv(name)
		if value == "" {
			color.Red("✗ %s is not set", name)
			ok = false
			continue
		}
		masked := value
		if len(masked) > 8 {
			masked = masked[:8] + "..."
		}
		color.Green("✓ %s = %s", name, masked)
	}
	return ok
}
