package domain

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"refine.dev/pkg/refine/internal/adapter"
	"refine.dev/pkg/refine/internal/controller"
	m "refine.dev/pkg/refine/internal/model"
	pkg "refine.dev/pkg/refine/pkg"
)

// ListArgs selects the scenario files to work on.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
}

// RunArgs contains the arguments of a scenario run.
type RunArgs struct {
	ListArgs
	Reports  m.Path
	Threads  int
	FailFast bool
	UseCache bool
	SpillDir string
}

// ViewArgs points at saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow drives the refine commands.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Run(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ScenarioFSAdapter
	adapter.ScenarioLoader
	adapter.ReportStore
	controller.UI
	runner Runner
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.ScenarioFSAdapter,
	loader adapter.ScenarioLoader,
	reportStore adapter.ReportStore,
	ui controller.UI,
	runner Runner,
) Workflow {
	return &workflow{
		ScenarioFSAdapter: fsAdapter,
		ScenarioLoader:    loader,
		ReportStore:       reportStore,
		UI:                ui,
		runner:            runner,
	}
}

// job is a discovered scenario file, loaded or not.
type job struct {
	file     m.File
	scenario m.Scenario
	err      error
}

func (w *workflow) jobs(ctx context.Context, args ListArgs) ([]job, error) {
	files, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return nil, fmt.Errorf("find scenarios: %w", err)
	}

	slog.Debug("discovered scenarios", "count", len(files))

	jobs := make([]job, 0, len(files))

	for _, file := range files {
		scenario, err := w.Load(file)
		if err != nil {
			slog.Warn("failed to load scenario", "file", file.ShortPath, "error", err)
		}

		jobs = append(jobs, job{file: file, scenario: scenario, err: err})
	}

	return jobs, nil
}

// List implements Workflow.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	jobs, err := w.jobs(ctx, args)
	if err != nil {
		slog.Error("failed to list scenarios", "error", err)
		return err
	}

	summaries := make([]m.ScenarioSummary, 0, len(jobs))
	for _, j := range jobs {
		summaries = append(summaries, summarize(j))
	}

	return w.DisplayScenarios(ctx, summaries)
}

func summarize(j job) m.ScenarioSummary {
	if j.err != nil {
		return m.ScenarioSummary{File: j.file, Err: j.err.Error()}
	}

	steps, checks := countSteps(j.scenario.Script)

	for _, decl := range j.scenario.Overrides {
		if decl.ExpectError != "" {
			checks++
		}
	}

	return m.ScenarioSummary{
		File:      j.file,
		Name:      j.scenario.Name,
		Types:     len(j.scenario.Types),
		Objects:   len(j.scenario.Objects),
		Overrides: len(j.scenario.Overrides),
		Steps:     steps,
		Checks:    checks,
	}
}

func countSteps(steps []m.Step) (total, checks int) {
	for _, step := range steps {
		total++

		var nested []m.Step

		switch {
		case step.Region != nil:
			nested = step.Region.Do
		case step.Define != nil:
			nested = step.Define.Do
		case step.Reenter != nil:
			nested = step.Reenter.Do
		case step.Parallel != nil:
			nested = slices.Concat(step.Parallel...)
		case step.Dispatch != nil:
			if step.Dispatch.Expect != nil || step.Dispatch.ExpectError != "" {
				checks++
			}
		}

		t, c := countSteps(nested)
		total += t
		checks += c
	}

	return total, checks
}

// Run implements Workflow. Scenarios run concurrently; reports are
// spilled to disk as they complete, then saved in file order.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	jobs, err := w.jobs(ctx, args.ListArgs)
	if err != nil {
		slog.Error("failed to collect scenarios", "error", err)
		return err
	}

	cached := w.cachedReports(args)

	spill, err := pkg.NewFileSpill[m.Report](args.SpillDir)
	if err != nil {
		return fmt.Errorf("create report spill: %w", err)
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Warn("failed to close report spill", "path", spill.Path(), "error", err)
		}
	}()

	threads := normalizeThreads(args.Threads)
	w.DisplayRunInfo(ctx, len(jobs), threads)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, j := range jobs {
		group.Go(func() error {
			report := w.runJob(gctx, j, cached)

			if err := spill.Append(report); err != nil {
				return fmt.Errorf("spill report %s: %w", j.file.ShortPath, err)
			}

			if err := w.DisplayReport(gctx, report); err != nil {
				return err
			}

			if args.FailFast && !report.Passed() {
				return fmt.Errorf("%s: %w", j.file.ShortPath, ErrExpectationsFailed)
			}

			return nil
		})
	}

	runErr := group.Wait()

	reports, err := collectReports(spill)
	if err != nil {
		return err
	}

	if err := w.SaveReports(args.Reports, reports); err != nil {
		slog.Error("failed to save reports", "path", args.Reports, "error", err)
		return fmt.Errorf("save reports: %w", err)
	}

	passed, checked, score := scoreReports(reports)
	w.DisplayScore(ctx, passed, checked, score)

	if runErr != nil {
		return runErr
	}

	if failed := countFailed(reports); failed > 0 {
		return fmt.Errorf("%d of %d scenario(s) failed: %w", failed, len(reports), ErrExpectationsFailed)
	}

	return nil
}

func (w *workflow) runJob(ctx context.Context, j job, cached map[string]m.Report) m.Report {
	if j.err != nil {
		return m.Report{Scenario: scenarioLabel(j), File: j.file.ShortPath, Hash: j.file.Hash, Err: j.err.Error()}
	}

	if report, ok := cached[cacheKey(j.file.ShortPath, j.file.Hash)]; ok {
		slog.Debug("reusing cached report", "file", j.file.ShortPath)
		return report
	}

	slog.Debug("running scenario", "file", j.file.ShortPath, "scenario", j.scenario.Name)

	return w.runner.Run(ctx, j.scenario)
}

func scenarioLabel(j job) string {
	if j.scenario.Name != "" {
		return j.scenario.Name
	}

	return string(j.file.ShortPath)
}

func cacheKey(file m.Path, hash string) string {
	return string(file) + "@" + hash
}

// cachedReports returns the previous run's reports keyed by file and
// content hash. Scenario outcomes depend only on the file, so an unchanged
// file can reuse its report.
func (w *workflow) cachedReports(args RunArgs) map[string]m.Report {
	cached := map[string]m.Report{}

	if !args.UseCache || args.Reports == "" {
		return cached
	}

	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		slog.Debug("no cached reports", "path", args.Reports, "error", err)
		return cached
	}

	for _, report := range reports {
		if report.Err == "" && report.Hash != "" {
			cached[cacheKey(report.File, report.Hash)] = report
		}
	}

	return cached
}

func collectReports(spill pkg.FileSpill[m.Report]) ([]m.Report, error) {
	reports := make([]m.Report, 0, spill.Len())

	err := spill.Range(func(_ uint64, report m.Report) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read report spill: %w", err)
	}

	slices.SortStableFunc(reports, func(a, b m.Report) int {
		return cmp.Compare(a.File, b.File)
	})

	return reports, nil
}

func countFailed(reports []m.Report) int {
	failed := 0

	for _, report := range reports {
		if !report.Passed() {
			failed++
		}
	}

	return failed
}

func normalizeThreads(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}

// View implements Workflow.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		slog.Error("failed to load reports", "path", args.Reports, "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	return w.DisplayReports(ctx, reports)
}
