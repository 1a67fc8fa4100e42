package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "refine.dev/pkg/refine/internal/adapter/mocks"
	controllermocks "refine.dev/pkg/refine/internal/controller/mocks"
	"refine.dev/pkg/refine/internal/domain"
	domainmocks "refine.dev/pkg/refine/internal/domain/mocks"
	m "refine.dev/pkg/refine/internal/model"
)

type workflowMocks struct {
	fs     *adaptermocks.MockScenarioFSAdapter
	loader *adaptermocks.MockScenarioLoader
	store  *adaptermocks.MockReportStore
	ui     *controllermocks.MockUI
	runner *domainmocks.MockRunner
}

func newWorkflowMocks(t *testing.T) (*workflowMocks, domain.Workflow) {
	t.Helper()

	mocks := &workflowMocks{
		fs:     adaptermocks.NewMockScenarioFSAdapter(t),
		loader: adaptermocks.NewMockScenarioLoader(t),
		store:  adaptermocks.NewMockReportStore(t),
		ui:     controllermocks.NewMockUI(t),
		runner: domainmocks.NewMockRunner(t),
	}

	return mocks, domain.NewWorkflow(mocks.fs, mocks.loader, mocks.store, mocks.ui, mocks.runner)
}

func scenarioFile(name, hash string) m.File {
	return m.File{FullPath: m.Path("/work/" + name), ShortPath: m.Path(name), Hash: hash}
}

func passingReport(file m.File) m.Report {
	return m.Report{
		Scenario: string(file.ShortPath),
		File:     file.ShortPath,
		Hash:     file.Hash,
		Results:  []m.StepResult{{Path: "script/0", Status: m.Passed}, {Path: "script/1", Status: m.Info}},
	}
}

func failingReport(file m.File) m.Report {
	report := passingReport(file)
	report.Results = append(report.Results, m.StepResult{Path: "script/2", Status: m.Failed})

	return report
}

func TestWorkflow_List(t *testing.T) {
	mocks, wf := newWorkflowMocks(t)

	good := scenarioFile("a.refine.yaml", "h1")
	bad := scenarioFile("b.refine.yaml", "h2")

	mocks.fs.EXPECT().Get(mock.Anything, []m.Path{"./..."}, "vendor").Return([]m.File{good, bad}, nil).Once()
	mocks.loader.EXPECT().Load(good).Return(m.Scenario{
		Name:      "a",
		Types:     []m.TypeDecl{{Name: "A"}},
		Objects:   []m.ObjectDecl{{Name: "x", Type: "A"}},
		Overrides: []m.OverrideSetDecl{{Name: "S"}, {Name: "T", ExpectError: "invalid_target"}},
		Script: []m.Step{
			{Region: &m.RegionStep{Do: []m.Step{
				{Dispatch: &m.DispatchStep{Expect: 1}},
				{Dispatch: &m.DispatchStep{}},
			}}},
			{Parallel: [][]m.Step{
				{{Dispatch: &m.DispatchStep{ExpectError: "no_method"}}},
				{{Capture: &m.CaptureStep{Name: "c"}}},
			}},
		},
	}, nil).Once()
	mocks.loader.EXPECT().Load(bad).Return(m.Scenario{}, errors.New("yaml: broken")).Once()

	var got []m.ScenarioSummary

	mocks.ui.EXPECT().DisplayScenarios(mock.Anything, mock.Anything).
		Run(func(_ context.Context, summaries []m.ScenarioSummary) { got = summaries }).
		Return(nil).Once()

	err := wf.List(context.Background(), domain.ListArgs{Paths: []m.Path{"./..."}, Exclude: []string{"vendor"}})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, m.ScenarioSummary{
		File:      good,
		Name:      "a",
		Types:     1,
		Objects:   1,
		Overrides: 2,
		Steps:     6,
		Checks:    3,
	}, got[0])

	assert.Equal(t, bad, got[1].File)
	assert.Equal(t, "yaml: broken", got[1].Err)
}

func TestWorkflow_List_GetError(t *testing.T) {
	mocks, wf := newWorkflowMocks(t)

	mocks.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	err := wf.List(context.Background(), domain.ListArgs{Paths: []m.Path{"missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestWorkflow_Run(t *testing.T) {
	a := scenarioFile("a.refine.yaml", "h1")
	b := scenarioFile("b.refine.yaml", "h2")

	expectLoads := func(mocks *workflowMocks) {
		mocks.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.File{b, a}, nil).Once()
		mocks.loader.EXPECT().Load(a).Return(m.Scenario{Name: "a", File: a}, nil).Once()
		mocks.loader.EXPECT().Load(b).Return(m.Scenario{Name: "b", File: b}, nil).Once()
	}

	t.Run("all scenarios pass", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)
		expectLoads(mocks)

		mocks.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s m.Scenario) bool { return s.Name == "a" })).
			Return(passingReport(a)).Once()
		mocks.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s m.Scenario) bool { return s.Name == "b" })).
			Return(passingReport(b)).Once()

		mocks.ui.EXPECT().DisplayRunInfo(mock.Anything, 2, 2).Return().Once()
		mocks.ui.EXPECT().DisplayReport(mock.Anything, mock.Anything).Return(nil).Twice()
		mocks.ui.EXPECT().DisplayScore(mock.Anything, 2, 2, 1.0).Return().Once()

		var saved []m.Report

		mocks.store.EXPECT().SaveReports(m.Path("reports"), mock.Anything).
			Run(func(_ m.Path, reports []m.Report) { saved = reports }).
			Return(nil).Once()

		err := wf.Run(context.Background(), domain.RunArgs{Reports: "reports", Threads: 2, SpillDir: t.TempDir()})
		require.NoError(t, err)

		require.Len(t, saved, 2)
		assert.Equal(t, a.ShortPath, saved[0].File)
		assert.Equal(t, b.ShortPath, saved[1].File)
	})

	t.Run("failing scenario", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)
		expectLoads(mocks)

		mocks.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s m.Scenario) bool { return s.Name == "a" })).
			Return(failingReport(a)).Once()
		mocks.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s m.Scenario) bool { return s.Name == "b" })).
			Return(passingReport(b)).Once()

		mocks.ui.EXPECT().DisplayRunInfo(mock.Anything, 2, 1).Return().Once()
		mocks.ui.EXPECT().DisplayReport(mock.Anything, mock.Anything).Return(nil).Twice()
		mocks.ui.EXPECT().DisplayScore(mock.Anything, 2, 3, mock.Anything).Return().Once()
		mocks.store.EXPECT().SaveReports(m.Path("reports"), mock.Anything).Return(nil).Once()

		err := wf.Run(context.Background(), domain.RunArgs{Reports: "reports", SpillDir: t.TempDir()})
		require.ErrorIs(t, err, domain.ErrExpectationsFailed)
		assert.Contains(t, err.Error(), "1 of 2")
	})

	t.Run("fail fast", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)

		mocks.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.File{a}, nil).Once()
		mocks.loader.EXPECT().Load(a).Return(m.Scenario{Name: "a", File: a}, nil).Once()
		mocks.runner.EXPECT().Run(mock.Anything, mock.Anything).Return(failingReport(a)).Once()

		mocks.ui.EXPECT().DisplayRunInfo(mock.Anything, 1, 1).Return().Once()
		mocks.ui.EXPECT().DisplayReport(mock.Anything, mock.Anything).Return(nil).Once()
		mocks.ui.EXPECT().DisplayScore(mock.Anything, 1, 2, 0.5).Return().Once()
		mocks.store.EXPECT().SaveReports(mock.Anything, mock.Anything).Return(nil).Once()

		err := wf.Run(context.Background(), domain.RunArgs{Reports: "reports", FailFast: true, SpillDir: t.TempDir()})
		require.ErrorIs(t, err, domain.ErrExpectationsFailed)
		assert.Contains(t, err.Error(), string(a.ShortPath))
	})

	t.Run("reuses cached reports of unchanged files", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)
		expectLoads(mocks)

		stale := passingReport(b)
		stale.Hash = "old"

		mocks.store.EXPECT().LoadReports(m.Path("reports")).Return([]m.Report{passingReport(a), stale}, nil).Once()
		mocks.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s m.Scenario) bool { return s.Name == "b" })).
			Return(passingReport(b)).Once()

		mocks.ui.EXPECT().DisplayRunInfo(mock.Anything, 2, 1).Return().Once()
		mocks.ui.EXPECT().DisplayReport(mock.Anything, mock.Anything).Return(nil).Twice()
		mocks.ui.EXPECT().DisplayScore(mock.Anything, 2, 2, 1.0).Return().Once()
		mocks.store.EXPECT().SaveReports(m.Path("reports"), mock.Anything).Return(nil).Once()

		err := wf.Run(context.Background(), domain.RunArgs{Reports: "reports", UseCache: true, SpillDir: t.TempDir()})
		require.NoError(t, err)
	})

	t.Run("load error becomes an aborted report", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)

		mocks.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.File{a}, nil).Once()
		mocks.loader.EXPECT().Load(a).Return(m.Scenario{}, errors.New("empty scenario")).Once()

		mocks.ui.EXPECT().DisplayRunInfo(mock.Anything, 1, 1).Return().Once()
		mocks.ui.EXPECT().DisplayReport(mock.Anything, mock.MatchedBy(func(r m.Report) bool {
			return r.Err == "empty scenario" && r.Scenario == string(a.ShortPath)
		})).Return(nil).Once()
		mocks.ui.EXPECT().DisplayScore(mock.Anything, 0, 1, 0.0).Return().Once()
		mocks.store.EXPECT().SaveReports(mock.Anything, mock.Anything).Return(nil).Once()

		err := wf.Run(context.Background(), domain.RunArgs{Reports: "reports", SpillDir: t.TempDir()})
		require.ErrorIs(t, err, domain.ErrExpectationsFailed)
	})

	t.Run("save error", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)

		mocks.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.File{a}, nil).Once()
		mocks.loader.EXPECT().Load(a).Return(m.Scenario{Name: "a", File: a}, nil).Once()
		mocks.runner.EXPECT().Run(mock.Anything, mock.Anything).Return(passingReport(a)).Once()

		mocks.ui.EXPECT().DisplayRunInfo(mock.Anything, 1, 1).Return().Once()
		mocks.ui.EXPECT().DisplayReport(mock.Anything, mock.Anything).Return(nil).Once()
		mocks.store.EXPECT().SaveReports(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		err := wf.Run(context.Background(), domain.RunArgs{Reports: "reports", SpillDir: t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save reports")
	})

	t.Run("display error stops the run", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)

		mocks.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.File{a}, nil).Once()
		mocks.loader.EXPECT().Load(a).Return(m.Scenario{Name: "a", File: a}, nil).Once()
		mocks.runner.EXPECT().Run(mock.Anything, mock.Anything).Return(passingReport(a)).Once()

		mocks.ui.EXPECT().DisplayRunInfo(mock.Anything, 1, 1).Return().Once()
		mocks.ui.EXPECT().DisplayReport(mock.Anything, mock.Anything).Return(errors.New("closed pipe")).Once()
		mocks.ui.EXPECT().DisplayScore(mock.Anything, 1, 1, 1.0).Return().Once()
		mocks.store.EXPECT().SaveReports(mock.Anything, mock.Anything).Return(nil).Once()

		err := wf.Run(context.Background(), domain.RunArgs{Reports: "reports", SpillDir: t.TempDir()})
		require.EqualError(t, err, "closed pipe")
	})
}

func TestWorkflow_View(t *testing.T) {
	t.Run("displays saved reports", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)

		reports := []m.Report{passingReport(scenarioFile("a.refine.yaml", "h"))}

		mocks.store.EXPECT().LoadReports(m.Path("reports")).Return(reports, nil).Once()
		mocks.ui.EXPECT().DisplayReports(mock.Anything, reports).Return(nil).Once()

		require.NoError(t, wf.View(context.Background(), domain.ViewArgs{Reports: "reports"}))
	})

	t.Run("load error", func(t *testing.T) {
		mocks, wf := newWorkflowMocks(t)

		mocks.store.EXPECT().LoadReports(m.Path("reports")).Return(nil, errors.New("missing")).Once()

		err := wf.View(context.Background(), domain.ViewArgs{Reports: "reports"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load reports")
	})
}
