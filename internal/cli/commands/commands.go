package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/client"
	"ffmtest/internal/config"
	"ffmtest/internal/domain"
	"ffmtest/internal/harness"
	"ffmtest/internal/storage"
	"ffmtest/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Sandbox    *SandboxCommand
	Production *ProductionCommand
	All        *AllCommand
	Results    *ResultsCommand
	History    *HistoryCommand
	Verify     *VerifyCommand
}

// NewCommands creates all commands. Credentials come from the environment,
// so the per-environment config is loaded when a command executes, not here.
func NewCommands(flags *cli.Flags) *Commands {
	return &Commands{
		Sandbox:    NewSandboxCommand(flags),
		Production: NewProductionCommand(flags),
		All:        NewAllCommand(flags),
		Results:    NewResultsCommand(flags),
		History:    NewHistoryCommand(flags),
		Verify:     NewVerifyCommand(flags),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	// Sandbox command
	sandboxCmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run the full test suite against the sandbox",
		Long:  "Execute read and write tests against the Feature.fm sandbox environment. Created resources are isolated in the sandbox.",
		RunE:  c.Sandbox.Execute,
	}
	addRunFlags(sandboxCmd, flags)
	rootCmd.AddCommand(sandboxCmd)

	// Production command
	productionCmd := &cobra.Command{
		Use:   "production",
		Short: "Run read-only tests against production",
		Long:  "Execute read-only tests against the Feature.fm production environment. Requires typed confirmation; write operations are refused.",
		RunE:  c.Production.Execute,
	}
	addRunFlags(productionCmd, flags)
	productionCmd.Flags().StringVar(&flags.ArtistID, "artist", "", "Artist ID to use for detail lookups")
	productionCmd.Flags().StringVar(&flags.SmartlinkID, "smartlink", "", "SmartLink ID to use for detail lookups")
	rootCmd.AddCommand(productionCmd)

	// All-APIs command
	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Test the Marketing, Publisher and Conversion APIs",
		Long:  "Probe all three Feature.fm API families in one run. Production targets still require typed confirmation and stay read-only.",
		RunE:  c.All.Execute,
	}
	allCmd.Flags().StringVarP(&flags.Env, "env", "e", "sandbox", "Target environment (sandbox or production)")
	addRunFlags(allCmd, flags)
	rootCmd.AddCommand(allCmd)

	// Results command
	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "View saved test results interactively",
		Long:  "Display a saved test report in an interactive viewer. Defaults to the most recent run.",
		RunE:  c.Results.Execute,
	}
	resultsCmd.Flags().StringVarP(&flags.File, "file", "F", "", "Report file to open instead of the latest")
	resultsCmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "Directory holding saved reports")
	rootCmd.AddCommand(resultsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent test runs",
		Long:  "Show summaries of recent test runs from the local run history.",
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "Directory holding the run history database")
	rootCmd.AddCommand(historyCmd)

	// Verify command
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify credentials and configuration",
		Long:  "Check that the expected environment variables and configuration files are in place without calling the API.",
		RunE:  c.Verify.Execute,
	}
	rootCmd.AddCommand(verifyCmd)
}

func addRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Run only tests matching a name pattern (supports wildcards, e.g. '*auth*' or 'create*')")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "Directory for saved reports")
	cmd.Flags().IntVar(&flags.Timeout, "timeout", 0, "Request timeout in seconds")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress per-test output")
	cmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not save the report or record the run")
}

// runSuite executes the suite, prints the summary, persists the report, and
// turns failed tests into a non-zero exit.
func runSuite(cmd *cobra.Command, cfg *config.Config, suite harness.Suite, out *ui.Printer) error {
	out.Header(suite.Title())
	runErr := harness.NewRunner(out).Run(cmd.Context(), suite, cfg.Flags.Filter)

	report := suite.Report()
	out.Summary(report, cfg.EnvName())

	if !cfg.Flags.NoSave && report.Summary.Total > 0 {
		store := storage.NewJSONStorage(cfg)
		path, err := store.Save(report)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		fmt.Printf("\nResults saved to: %s\n", path)
		recordRun(cfg, report, path)
	}

	if runErr != nil {
		return runErr
	}
	if report.Failed() {
		return fmt.Errorf("%d test(s) failed", report.Summary.Failed)
	}
	return nil
}

// recordRun appends the run to the local history. History is a convenience;
// a broken database must not fail the run that just completed.
func recordRun(cfg *config.Config, report *domain.Report, path string) {
	h, err := storage.OpenHistory(cfg.HistoryPath())
	if err != nil {
		return
	}
	defer h.Close()
	_, _ = h.Append(report, path)
}

// newAPIClient builds the gated client for a loaded config
func newAPIClient(cfg *config.Config) *client.Client {
	return client.New(cfg)
}
