package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ffmtest/internal/domain"
)

// ResultViewer displays a saved test report in an interactive TUI
type ResultViewer struct{}

// NewResultViewer creates a new ResultViewer
func NewResultViewer() *ResultViewer {
	return &ResultViewer{}
}

// viewerEntry is one test pulled out of the report map for ordered display
type viewerEntry struct {
	Name string
	Test domain.RecordedTest
}

// View opens the TUI over the given report
func (rv *ResultViewer) View(report *domain.Report) error {
	if len(report.Tests) == 0 {
		color.Yellow("Report contains no tests")
		return nil
	}

	entries := sortedEntries(report)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, e := range entries {
		list.AddItem(listItemText(i, e), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	headerView.SetText(fmt.Sprintf(
		" %s run %s — %d tests (%d failed, %d warnings) | ↑↓ navigate, → details, ← back, Ctrl+C exit ",
		strings.ToUpper(report.Environment), report.Timestamp,
		report.Summary.Total, report.Summary.Failed, report.Summary.Warnings,
	))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(entries) {
			return
		}
		e := entries[index]
		statsView.SetText(fmt.Sprintf("[cyan]test:[white] [yellow]%s[white]  [cyan]status:[white] %s%s[white]",
			e.Name, statusTag(e.Test.Status), e.Test.Status))
		detailsView.SetText(formatDetails(e))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// sortedEntries orders tests failures-first so problems surface at the top
func sortedEntries(report *domain.Report) []viewerEntry {
	entries := make([]viewerEntry, 0, len(report.Tests))
	for name, test := range report.Tests {
		entries = append(entries, viewerEntry{Name: name, Test: test})
	}
	rank := map[domain.Status]int{
		domain.StatusFailed:  0,
		domain.StatusWarning: 1,
		domain.StatusSkipped: 2,
		domain.StatusPassed:  3,
	}
	sort.Slice(entries, func(i, j int) bool {
		ri, rj := rank[entries[i].Test.Status], rank[entries[j].Test.Status]
		if ri != rj {
			return ri < rj
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func listItemText(index int, e viewerEntry) string {
	return fmt.Sprintf("%s%s [yellow]%d.[white] %s", statusTag(e.Test.Status), statusSymbol(e.Test.Status), index+1, e.Name)
}

func statusTag(s domain.Status) string {
	switch s {
	case domain.StatusPassed:
		return "[green]"
	case domain.StatusFailed:
		return "[red]"
	case domain.StatusWarning:
		return "[yellow]"
	case domain.StatusSkipped:
		return "[teal]"
	}
	return "[white]"
}

func statusSymbol(s domain.Status) string {
	switch s {
	case domain.StatusPassed:
		return "✓"
	case domain.StatusFailed:
		return "✗"
	case domain.StatusWarning:
		return "⚠"
	case domain.StatusSkipped:
		return "→"
	}
	return "?"
}

func formatDetails(e viewerEntry) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s%s %s[white]\n\n", statusTag(e.Test.Status), statusSymbol(e.Test.Status), e.Name)
	fmt.Fprintf(&builder, "[cyan]Recorded:[white] %s\n\n", e.Test.Timestamp)

	if len(e.Test.Details) == 0 {
		builder.WriteString("[gray]No details recorded.[white]\n")
		return builder.String()
	}

	fmt.Fprintf(&builder, "[yellow]Details:[white]\n")
	pretty, err := json.MarshalIndent(e.Test.Details, "", "  ")
	if err != nil {
		fmt.Fprintf(&builder, "%v\n", e.Test.Details)
	} else {
		builder.Write(pretty)
		builder.WriteString("\n")
	}
	return builder.String()
}
