package domain

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	m "refine.dev/pkg/refine/internal/model"
	"refine.dev/pkg/refine/pkg/refinement"
)

// Runner executes one scenario and reports the outcome of its steps.
type Runner interface {
	Run(ctx context.Context, scenario m.Scenario) m.Report
}

type scenarioRunner struct{}

// NewRunner returns a Runner that executes scenarios against a fresh
// World and Resolver each time.
func NewRunner() Runner {
	return &scenarioRunner{}
}

// execution is the state of one scenario run.
type execution struct {
	world    *World
	resolver *refinement.Resolver
	manager  *refinement.ActivationManager
	sets     map[string]*refinement.OverrideSet

	mu       sync.Mutex
	captures map[string]*refinement.CapturedScope
}

func (r *scenarioRunner) Run(ctx context.Context, scenario m.Scenario) m.Report {
	report := m.Report{
		Scenario: scenario.Name,
		File:     scenario.File.ShortPath,
		Hash:     scenario.File.Hash,
	}

	world, err := NewWorld(scenario)
	if err != nil {
		slog.Error("invalid scenario", "file", scenario.File.ShortPath, "error", err)
		report.Err = err.Error()

		return report
	}

	logger := slog.Default().With("scenario", scenario.Name)
	resolver := refinement.NewResolver(world, world, refinement.WithLogger(logger))

	ex := &execution{
		world:    world,
		resolver: resolver,
		manager:  refinement.NewActivationManager(resolver),
		sets:     make(map[string]*refinement.OverrideSet, len(scenario.Overrides)),
		captures: make(map[string]*refinement.CapturedScope),
	}

	report.Results = append(report.Results, ex.defineSets(scenario.Overrides)...)

	ctx = refinement.WithExecContext(ctx, refinement.NewExecContext())

	err = ex.manager.Run(ctx, refinement.ScopeFile, scenario.Name, func(ctx context.Context, _ *refinement.Region) error {
		results, err := ex.steps(ctx, "script", scenario.Script)
		report.Results = append(report.Results, results...)

		return err
	})
	if err != nil {
		slog.Error("scenario aborted", "file", scenario.File.ShortPath, "error", err)
		report.Err = err.Error()
	}

	return report
}

func (ex *execution) defineSets(decls []m.OverrideSetDecl) []m.StepResult {
	var results []m.StepResult

	for _, decl := range decls {
		res := m.StepResult{Path: "overrides/" + decl.Name, Call: "define " + decl.Name}

		set, err := ex.defineSet(decl)
		if err == nil {
			ex.sets[decl.Name] = set
		}

		switch {
		case decl.ExpectError != "":
			results = append(results, checkError(res, decl.ExpectError, set, err))
		case err != nil:
			res.Error = err.Error()
			res.Status = m.Errored
			results = append(results, res)
		}
	}

	return results
}

func (ex *execution) defineSet(decl m.OverrideSetDecl) (*refinement.OverrideSet, error) {
	if _, dup := ex.sets[decl.Name]; dup {
		return nil, fmt.Errorf("%w: override set %q declared twice", ErrInvalidScenario, decl.Name)
	}

	var overrides []refinement.Override

	for _, target := range decl.Targets {
		ref := refinement.Type(target.Type)
		if target.Meta {
			ref = refinement.MetaOf(target.Type)
		}

		for _, method := range slices.Sorted(maps.Keys(target.Methods)) {
			overrides = append(overrides, refinement.Override{
				Target: ref,
				Method: method,
				Impl:   ex.world.Implementation(target.Methods[method]),
			})
		}
	}

	return refinement.Define(ex.world, decl.Name, overrides...)
}

func (ex *execution) steps(ctx context.Context, prefix string, steps []m.Step) ([]m.StepResult, error) {
	var results []m.StepResult

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := ex.step(ctx, prefix+"/"+strconv.Itoa(i), step)
		results = append(results, res...)

		if err != nil {
			return results, err
		}
	}

	return results, nil
}

func (ex *execution) step(ctx context.Context, path string, step m.Step) ([]m.StepResult, error) {
	switch {
	case step.Region != nil:
		return ex.region(ctx, path, step.Region)
	case step.Define != nil:
		return ex.define(ctx, path, step.Define)
	case step.Reenter != nil:
		return ex.reenter(ctx, path, step.Reenter)
	case step.Capture != nil:
		return ex.capture(ctx, path, step.Capture)
	case step.Parallel != nil:
		return ex.parallel(ctx, path, step.Parallel)
	case step.Dispatch != nil:
		return []m.StepResult{ex.dispatch(ctx, path, step.Dispatch)}, nil
	}

	return []m.StepResult{failure(path, "step", fmt.Errorf("%w: empty step", ErrInvalidScenario))}, nil
}

func (ex *execution) lookupSets(names []string) ([]*refinement.OverrideSet, error) {
	sets := make([]*refinement.OverrideSet, 0, len(names))

	for _, name := range names {
		set, ok := ex.sets[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownSet)
		}

		sets = append(sets, set)
	}

	return sets, nil
}

func activate(region *refinement.Region, sets []*refinement.OverrideSet) error {
	for _, set := range sets {
		if err := region.Activate(set); err != nil {
			return err
		}
	}

	return nil
}

func (ex *execution) region(ctx context.Context, path string, step *m.RegionStep) ([]m.StepResult, error) {
	name := step.Name
	if name == "" {
		name = path
	}

	call := "region " + name

	kind, err := refinement.ParseScopeKind(step.Kind)
	if err != nil {
		return []m.StepResult{failure(path, call, err)}, nil
	}

	sets, err := ex.lookupSets(step.Using)
	if err != nil {
		return []m.StepResult{failure(path, call, err)}, nil
	}

	var (
		results []m.StepResult
		runErr  error
	)

	err = ex.manager.Run(ctx, kind, name, func(ctx context.Context, region *refinement.Region) error {
		if err := activate(region, sets); err != nil {
			results = append(results, failure(path, call, err))
			return nil
		}

		results, runErr = ex.steps(ctx, path, step.Do)

		return nil
	})
	if err != nil {
		results = append(results, failure(path, call, err))
	}

	return results, runErr
}

func (ex *execution) define(ctx context.Context, path string, step *m.DefineStep) ([]m.StepResult, error) {
	call := "define " + step.Type

	sets, err := ex.lookupSets(step.Using)
	if err != nil {
		return []m.StepResult{failure(path, call, err)}, nil
	}

	var (
		results []m.StepResult
		runErr  error
	)

	t := refinement.Type(step.Type)

	err = ex.manager.DefineType(ctx, t, func(ctx context.Context, region *refinement.Region) error {
		if err := activate(region, sets); err != nil {
			return err
		}

		scope, err := refinement.Capture(ctx)
		if err != nil {
			return err
		}

		if err := ex.world.AddMethods(t, step.Methods, scope); err != nil {
			return err
		}

		if err := ex.world.AddMethods(refinement.MetaOf(step.Type), step.ClassMethods, scope); err != nil {
			return err
		}

		results, runErr = ex.steps(ctx, path, step.Do)

		return nil
	})
	if err != nil {
		results = append(results, failure(path, call, err))
	}

	return results, runErr
}

func (ex *execution) reenter(ctx context.Context, path string, step *m.ReenterStep) ([]m.StepResult, error) {
	var (
		results []m.StepResult
		runErr  error
	)

	body := func(ctx context.Context) error {
		results, runErr = ex.steps(ctx, path, step.Do)
		return nil
	}

	var (
		call string
		err  error
	)

	switch {
	case step.Captured != "":
		call = "reenter captured " + step.Captured

		ex.mu.Lock()
		captured, ok := ex.captures[step.Captured]
		ex.mu.Unlock()

		if !ok {
			return []m.StepResult{failure(path, call, fmt.Errorf("%q: %w", step.Captured, ErrUnknownCapture))}, nil
		}

		err = ex.manager.ReenterCaptured(ctx, captured, body)
	default:
		call = "reenter " + step.Type

		if ex.world.KindOf(refinement.Type(step.Type)) == refinement.KindUnknown {
			return []m.StepResult{failure(path, call, fmt.Errorf("%q: %w", step.Type, ErrUnknownType))}, nil
		}

		err = ex.manager.Reenter(ctx, refinement.Type(step.Type), body)
	}

	if err != nil {
		results = append(results, failure(path, call, err))
	}

	return results, runErr
}

func (ex *execution) capture(ctx context.Context, path string, step *m.CaptureStep) ([]m.StepResult, error) {
	scope, err := refinement.Capture(ctx)
	if err != nil {
		return []m.StepResult{failure(path, "capture "+step.Name, err)}, nil
	}

	ex.mu.Lock()
	ex.captures[step.Name] = scope
	ex.mu.Unlock()

	return nil, nil
}

// parallel runs each branch on its own goroutine with a forked execution
// context. Results are reported in branch order.
func (ex *execution) parallel(ctx context.Context, path string, branches [][]m.Step) ([]m.StepResult, error) {
	group, gctx := errgroup.WithContext(ctx)
	branchResults := make([][]m.StepResult, len(branches))

	for i, branch := range branches {
		child, err := refinement.Fork(gctx)
		if err != nil {
			return []m.StepResult{failure(path, "parallel", err)}, nil
		}

		branchPath := path + "/" + strconv.Itoa(i)

		group.Go(func() error {
			results, err := ex.steps(child, branchPath, branch)
			branchResults[i] = results

			return err
		})
	}

	err := group.Wait()

	return slices.Concat(branchResults...), err
}

func (ex *execution) receiver(step *m.DispatchStep) (refinement.Value, error) {
	if step.Class != "" {
		return ex.world.Class(step.Class)
	}

	return ex.world.Object(step.To)
}

func (ex *execution) dispatch(ctx context.Context, path string, step *m.DispatchStep) m.StepResult {
	res := m.StepResult{Path: path, Label: step.Label, Call: describeCall(step)}

	receiver, err := ex.receiver(step)
	if err != nil {
		return check(res, step, nil, err)
	}

	args, err := ex.world.evalArgs(nil, step.Args)
	if err != nil {
		return check(res, step, nil, err)
	}

	if resolution, err := ex.resolver.Resolve(ctx, receiver, step.Method); err == nil {
		res.Resolution = resolution.String()
	}

	value, err := ex.resolver.Dispatch(ctx, receiver, step.Method, args...)

	return check(res, step, value, err)
}

func describeCall(step *m.DispatchStep) string {
	recv := step.To
	sep := "."

	if step.Class != "" {
		recv = step.Class
		sep = "::"
	}

	if len(step.Args) == 0 {
		return recv + sep + step.Method
	}

	args := make([]string, 0, len(step.Args))
	for _, arg := range step.Args {
		if arg.Object != "" {
			args = append(args, arg.Object)
			continue
		}

		args = append(args, FormatValue(arg.Lit))
	}

	return fmt.Sprintf("%s%s%s(%s)", recv, sep, step.Method, strings.Join(args, ", "))
}

func check(res m.StepResult, step *m.DispatchStep, value refinement.Value, err error) m.StepResult {
	if step.ExpectError != "" {
		return checkError(res, step.ExpectError, value, err)
	}

	if err != nil {
		res.Error = err.Error()
		res.Status = m.Errored

		return res
	}

	res.Value = FormatValue(value)

	if step.Expect == nil {
		res.Status = m.Info
		return res
	}

	res.Expected = FormatValue(step.Expect)

	if ValuesMatch(step.Expect, value) {
		res.Status = m.Passed
		return res
	}

	res.Status = m.Failed
	res.Diff = diffValues(res.Expected, res.Value)

	return res
}

func checkError(res m.StepResult, code string, value any, err error) m.StepResult {
	res.Expected = "error " + code

	if err == nil {
		res.Status = m.Failed
		res.Value = FormatValue(value)

		return res
	}

	res.Error = err.Error()
	res.Status = m.Failed

	if ErrorCode(err) == code {
		res.Status = m.Passed
	}

	return res
}

func failure(path, call string, err error) m.StepResult {
	return m.StepResult{Path: path, Call: call, Error: err.Error(), Status: m.Errored}
}

// ValuesMatch compares an expected value from a scenario file with a
// dispatch result. Numbers compare by value; objects match their name.
func ValuesMatch(expected, got refinement.Value) bool {
	if name, ok := expected.(string); ok {
		switch g := got.(type) {
		case *Object:
			return g.Name == name
		case *ClassObject:
			return g.Name == name
		}
	}

	return FormatValue(expected) == FormatValue(got)
}

func diffValues(expected, got string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(got),
		FromFile: "expected",
		ToFile:   "got",
		Context:  1,
	})
	if err != nil {
		return ""
	}

	return diff
}
