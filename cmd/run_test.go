package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"refine.dev/pkg/refine/internal/domain"
	domainmocks "refine.dev/pkg/refine/internal/domain/mocks"
	m "refine.dev/pkg/refine/internal/model"
)

func newTestRootCmd(t *testing.T, sub *cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return cmd, mockWorkflow
}

func TestRunCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Threads == 2 &&
			args.Reports == m.Path(".refine-reports") &&
			!args.FailFast &&
			args.UseCache &&
			len(args.Paths) == 1 && args.Paths[0] == m.Path("./...")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"run", "--parallel", "2"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_MultiplePaths(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Paths) == 2 &&
			args.Paths[0] == m.Path("./examples") &&
			args.Paths[1] == m.Path("counter.refine.yaml")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"run", "./examples", "counter.refine.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_WithExcludePatterns(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == "^vendor/" &&
			args.Exclude[1] == `_wip\.refine\.yaml$`
	})).Return(nil).Once()

	cmd.SetArgs([]string{"run", "-x", "^vendor/", "-x", `_wip\.refine\.yaml$`, "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_FailFastAndNoCache(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.FailFast && !args.UseCache
	})).Return(nil).Once()

	cmd.SetArgs([]string{"--no-cache", "run", "--fail-fast", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_PropagatesFailure(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).Return(domain.ErrExpectationsFailed).Once()

	cmd.SetArgs([]string{"run"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrExpectationsFailed)
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, runLongDescription, cmd.Long)

	assert.NotNil(t, cmd.Flags().Lookup(runParallelFlagName))
	assert.NotNil(t, cmd.Flags().Lookup(runFailFastFlagName))
}

func TestListCmd(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newListCmd())

	mockWorkflow.EXPECT().List(mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Paths) == 1 && args.Paths[0] == m.Path("./examples/...")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"list", "./examples/..."})
	require.NoError(t, cmd.Execute())
}
