package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	m "refine.dev/pkg/refine/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI for interactive terminals: colored status lines, and
// a scrollable pager for listings taller than the screen.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd)}
}

// DisplayScenarios shows the scenario table, paged when needed.
func (t *TUI) DisplayScenarios(ctx context.Context, summaries []m.ScenarioSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(summaries) == 0 {
		return t.SimpleUI.DisplayScenarios(ctx, summaries)
	}

	return t.page("refine scenarios", renderScenarioTable(summaries))
}

// DisplayReport prints a colored status line and the failing steps.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.printf("%s\n", reportLine(report, styledLabel(report)))

	if report.Err != "" {
		t.printf("  %s\n", report.Err)
		return nil
	}

	if failing := failingResults(report.Results); len(failing) > 0 {
		t.printf("%s%s", renderResultTable(failing), renderDiffs(failing))
	}

	return nil
}

// DisplayScore prints the run totals, colored by outcome.
func (t *TUI) DisplayScore(ctx context.Context, passed, checked int, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	style := passStyle
	if passed < checked {
		style = failStyle
	}

	t.printf("%s\n", style.Render(fmt.Sprintf("Checks passed: %d/%d (%.2f%%)", passed, checked, score*100)))
}

// DisplayReports shows saved reports, paged when needed.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page("refine reports", renderReports(reports, styledLabel))
}

func styledLabel(report m.Report) string {
	label := statusLabel(report)

	switch label {
	case "PASS":
		return passStyle.Render(label)
	case "FAIL":
		return failStyle.Render(label)
	default:
		return errorStyle.Render(label)
	}
}

// page prints content directly when it fits on screen and opens a pager
// otherwise.
func (t *TUI) page(title, content string) error {
	out := t.cmd.OutOrStdout()

	width, height := 0, 0
	if f, ok := out.(*os.File); ok {
		if w, h, err := term.GetSize(f.Fd()); err == nil {
			width, height = w, h
		}
	}

	model := newPagerModel(title, content, width, height)
	if !model.needsPagination() {
		t.printf("%s\n%s", titleStyle.Render(title), content)
		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// pagerReserved is the number of lines taken by the title and footer.
const pagerReserved = 3

type pagerModel struct {
	title    string
	content  string
	lines    int
	height   int
	viewport viewport.Model
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-pagerReserved, 1))
	vp.SetContent(content)

	return pagerModel{
		title:    title,
		content:  content,
		lines:    strings.Count(content, "\n") + 1,
		height:   height,
		viewport: vp,
	}
}

func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && pm.lines+pagerReserved > pm.height
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-pagerReserved, 1)
		pm.viewport.SetContent(pm.content)

		return pm, nil
	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

//nolint:exhaustive // only quit and jump keys are handled here, the rest scroll
func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return pm, tea.Quit
	}

	switch msg.String() {
	case "q":
		return pm, tea.Quit
	case "g", "home":
		pm.viewport.GotoTop()
		return pm, nil
	case "G", "end":
		pm.viewport.GotoBottom()
		return pm, nil
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	footer := fmt.Sprintf("%3.f%% | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit", pm.viewport.ScrollPercent()*100)

	return titleStyle.Render(pm.title) + "\n" + pm.viewport.View() + "\n" + footerStyle.Render(footer)
}
