// Package controller provides output adapters for displaying refine scenarios and reports.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "refine.dev/pkg/refine/internal/model"
)

// UI defines how scenarios and reports are shown to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayScenarios lists discovered scenario files.
	DisplayScenarios(ctx context.Context, summaries []m.ScenarioSummary) error
	// DisplayRunInfo announces a run before any scenario starts.
	DisplayRunInfo(ctx context.Context, scenarios int, threads int)
	// DisplayReport shows one finished scenario. It may be called concurrently.
	DisplayReport(ctx context.Context, report m.Report) error
	// DisplayScore shows the totals of a run.
	DisplayScore(ctx context.Context, passed, checked int, score float64)
	// DisplayReports shows saved reports in full.
	DisplayReports(ctx context.Context, reports []m.Report) error
}

// NewUI returns the TUI when tty is set and the plain UI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
