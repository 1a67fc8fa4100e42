package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "refine.dev/pkg/refine/internal/model"
)

// SimpleUI implements UI with plain tables on the command's output.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayScenarios prints one row per scenario file.
func (s *SimpleUI) DisplayScenarios(ctx context.Context, summaries []m.ScenarioSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(summaries) == 0 {
		s.printf("No scenarios found\n")
		return nil
	}

	s.printf("\n%s", renderScenarioTable(summaries))

	return nil
}

func renderScenarioTable(summaries []m.ScenarioSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Scenario", "Types", "Objects", "Sets", "Steps", "Checks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	checks := 0

	for _, summary := range summaries {
		if summary.Err != "" {
			table.Append([]string{string(summary.File.ShortPath), "error: " + summary.Err, "", "", "", "", ""})
			continue
		}

		checks += summary.Checks

		table.Append([]string{
			string(summary.File.ShortPath),
			summary.Name,
			fmt.Sprintf("%d", summary.Types),
			fmt.Sprintf("%d", summary.Objects),
			fmt.Sprintf("%d", summary.Overrides),
			fmt.Sprintf("%d", summary.Steps),
			fmt.Sprintf("%d", summary.Checks),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(summaries)), "", "", "", "", "", fmt.Sprintf("%d", checks)})
	table.Render()

	return tableBuffer.String()
}

// DisplayRunInfo shows how many scenarios run on how many workers.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, scenarios int, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d scenario(s) with %d worker(s)\n", scenarios, threads)
}

// DisplayReport prints a status line, and the failing steps when there
// are any.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s\n", reportLine(report, statusLabel(report)))

	if report.Err != "" {
		s.printf("  %s\n", report.Err)
		return nil
	}

	if failing := failingResults(report.Results); len(failing) > 0 {
		s.printf("%s", renderResultTable(failing))
		s.printf("%s", renderDiffs(failing))
	}

	return nil
}

// DisplayScore prints the run totals.
func (s *SimpleUI) DisplayScore(ctx context.Context, passed, checked int, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Checks passed: %d/%d (%.2f%%)\n", passed, checked, score*100)
}

// DisplayReports prints every saved report in full.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderReports(reports, statusLabel))

	return nil
}

func renderReports(reports []m.Report, label func(m.Report) string) string {
	if len(reports) == 0 {
		return "No reports found\n"
	}

	var b strings.Builder

	for _, report := range reports {
		fmt.Fprintf(&b, "\n%s\n", reportLine(report, label(report)))

		if report.Err != "" {
			fmt.Fprintf(&b, "  %s\n", report.Err)
			continue
		}

		if len(report.Results) > 0 {
			b.WriteString(renderResultTable(report.Results))
			b.WriteString(renderDiffs(report.Results))
		}
	}

	return b.String()
}

func renderResultTable(results []m.StepResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Step", "Call", "Resolution", "Value", "Expected", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, res := range results {
		step := res.Path
		if res.Label != "" {
			step = res.Label
		}

		value := res.Value
		if res.Error != "" {
			value = res.Error
		}

		table.Append([]string{step, res.Call, res.Resolution, value, res.Expected, res.Status.String()})
	}

	table.Render()

	return tableBuffer.String()
}

func renderDiffs(results []m.StepResult) string {
	var b strings.Builder

	for _, res := range results {
		if res.Diff == "" {
			continue
		}

		fmt.Fprintf(&b, "%s:\n%s", res.Path, res.Diff)
	}

	return b.String()
}

func failingResults(results []m.StepResult) []m.StepResult {
	var failing []m.StepResult

	for _, res := range results {
		if res.Status == m.Failed || res.Status == m.Errored {
			failing = append(failing, res)
		}
	}

	return failing
}

func statusLabel(report m.Report) string {
	switch {
	case report.Err != "":
		return "ERROR"
	case report.Passed():
		return "PASS"
	default:
		return "FAIL"
	}
}

func reportLine(report m.Report, label string) string {
	passed, checked := report.Counts()

	return fmt.Sprintf("%s %s (%s) %d/%d", label, report.Scenario, report.File, passed, checked)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
