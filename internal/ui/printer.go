package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"ffmtest/internal/domain"
)

// Printer writes colored status output for a test run
type Printer struct {
	quiet bool
}

// NewPrinter creates a Printer. A quiet printer suppresses per-test lines
// but still prints summaries and banners.
func NewPrinter(quiet bool) *Printer {
	return &Printer{quiet: quiet}
}

// Plain prints an uncolored message at the given indent level
func (p *Printer) Plain(msg string, indent int) {
	if p.quiet {
		return
	}
	fmt.Println(strings.Repeat("  ", indent) + msg)
}

// Test announces a test about to run
func (p *Printer) Test(name string) {
	p.Plain("\n[TEST] "+name, 0)
}

// Status prints a message with the symbol and color for its status
func (p *Printer) Status(msg string, status domain.Status, indent int) {
	if p.quiet {
		return
	}
	prefix := strings.Repeat("  ", indent)
	switch status {
	case domain.StatusPassed:
		color.Green("%s✓ %s", prefix, msg)
	case domain.StatusFailed:
		color.Red("%s✗ %s", prefix, msg)
	case domain.StatusWarning:
		color.Yellow("%s⚠ %s", prefix, msg)
	case domain.StatusSkipped:
		color.Cyan("%s→ %s", prefix, msg)
	default:
		fmt.Println(prefix + msg)
	}
}

// Header prints a section header
func (p *Printer) Header(title string) {
	if p.quiet {
		return
	}
	fmt.Println()
	color.Yellow("━━━ %s ━━━", title)
}

const rule = "======================================================================"

// Summary prints the end-of-run statistics block
func (p *Printer) Summary(r *domain.Report, envName string) {
	s := r.Summary

	fmt.Println()
	color.Cyan(rule)
	color.Cyan("Test Summary - %s Environment", envName)
	color.Cyan(rule)

	fmt.Printf("Total Tests: %d\n", s.Total)
	color.Green("✓ Passed: %d", s.Passed)
	color.Red("✗ Failed: %d", s.Failed)
	color.Yellow("⚠ Warnings: %d", s.Warnings)
	color.Cyan("→ Skipped: %d", s.Skipped)

	if s.Total > 0 {
		rate := r.SuccessRate()
		line := fmt.Sprintf("\nSuccess Rate: %.1f%%", rate)
		switch {
		case rate >= 70:
			color.Green(line)
		case rate >= 50:
			color.Yellow(line)
		default:
			color.Red(line)
		}
	}

	fmt.Printf("\nEndpoints tested: %d\n", len(r.Endpoints))

	if len(r.Errors) > 0 {
		fmt.Println()
		color.Red("Errors encountered:")
		for i, e := range r.Errors {
			if i >= 5 {
				break
			}
			fmt.Printf("  • %s: %s\n", e.Test, truncate(fmt.Sprintf("%v", e.Error), 100))
		}
	}
	color.Cyan(rule)
}

// SandboxBanner prints the sandbox startup box
func (p *Printer) SandboxBanner() {
	color.Cyan(`
╔══════════════════════════════════════════════════════════════╗
║        Feature.fm API Sandbox Test Suite                     ║
║                                                              ║
║  Environment: SANDBOX                                        ║
║  Write Operations: ENABLED                                   ║
║  Safety: All operations are isolated in sandbox              ║
╚══════════════════════════════════════════════════════════════╝`)
}

// ProductionBanner prints the production warning box
func (p *Printer) ProductionBanner() {
	color.Red(`
╔══════════════════════════════════════════════════════════════╗
║     Feature.fm API Production Test Suite (READ-ONLY)         ║
║                                                              ║
║            PRODUCTION ENVIRONMENT - EXTREME CAUTION          ║
║                                                              ║
║  Write Operations: DISABLED                                  ║
║  Delete Operations: DISABLED                                 ║
║  Update Operations: DISABLED                                 ║
║                                                              ║
║  Only read operations will be executed                       ║
╚══════════════════════════════════════════════════════════════╝`)
}

// CompleteBanner prints the all-APIs startup box
func (p *Printer) CompleteBanner(envName string, canWrite bool) {
	writes := "DISABLED"
	if canWrite {
		writes = "ENABLED"
	}
	color.Cyan(`
╔══════════════════════════════════════════════════════════════╗
║     Feature.fm Complete API Test Suite                       ║
║                                                              ║
║  Testing all three APIs:                                     ║
║  • Marketing API (Artists, SmartLinks, Campaigns)            ║
║  • Publisher API (Events, Tracking)                          ║
║  • Conversion API (Sessions, Transactions)                   ║
╚══════════════════════════════════════════════════════════════╝`)
	fmt.Printf("Environment: %s | Write operations: %s\n", envName, writes)
}

// CreatedResources lists resources the sandbox run created
func (p *Printer) CreatedResources(resources map[string][]string) {
	total := 0
	for _, ids := range resources {
		total += len(ids)
	}
	if total == 0 {
		return
	}

	fmt.Println()
	color.Cyan("Resources Created in Sandbox:")
	for _, kind := range []string{"Artists", "SmartLinks", "Pre-Saves"} {
		if ids := resources[kind]; len(ids) > 0 {
			fmt.Printf("  %s: %s\n", kind, strings.Join(ids, ", "))
		}
	}
}

// Availability prints which API families responded during a complete run
func (p *Printer) Availability(availability map[string]*bool) {
	fmt.Println()
	color.Cyan("API Availability:")
	for _, name := range []string{"Marketing API", "Publisher API", "Conversion API"} {
		state, ok := availability[name]
		switch {
		case !ok || state == nil:
			fmt.Printf("  ? %s: Unknown\n", name)
		case *state:
			color.Green("  ✓ %s: Available", name)
		default:
			color.Yellow("  ⚠ %s: Not Available", name)
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
