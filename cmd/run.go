package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refine.dev/pkg/refine/internal/domain"
	m "refine.dev/pkg/refine/internal/model"
)

var runParallelFlag int
var runFailFastFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run scenario files",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadRunSettings()

			return workflow.Run(cmd.Context(), domain.RunArgs{
				ListArgs: domain.ListArgs{
					Paths:   parsePaths(args),
					Exclude: settings.Exclude,
				},
				Reports:  m.Path(settings.Reports),
				Threads:  settings.Parallel,
				FailFast: settings.FailFast,
				UseCache: !settings.NoCache,
				SpillDir: settings.SpillDir,
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of scenarios run in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().BoolVar(&runFailFastFlag, runFailFastFlagName, viper.GetBool(runFailFastConfigKey), "stop after the first failing scenario")
	bindFlagToConfig(cmd.Flags().Lookup(runFailFastFlagName), runFailFastConfigKey)
}
