// Package cmd provides the root command and CLI setup for refine.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"refine.dev/pkg/refine/internal/adapter"
	"refine.dev/pkg/refine/internal/controller"
	"refine.dev/pkg/refine/internal/domain"
	m "refine.dev/pkg/refine/internal/model"
)

var scenarioFSAdapter adapter.ScenarioFSAdapter
var scenarioLoader adapter.ScenarioLoader
var reportStore adapter.ReportStore
var runner domain.Runner
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// noCacheFlag disables report reuse for unchanged scenario files.
var noCacheFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	scenarioFSAdapter = adapter.NewLocalScenarioFSAdapter()
	scenarioLoader = adapter.NewYAMLScenarioLoader(scenarioFSAdapter)
	reportStore = adapter.NewYAMLReportStore()
	runner = domain.NewRunner()
	workflow = domain.NewWorkflow(
		scenarioFSAdapter,
		scenarioLoader,
		reportStore,
		ui,
		runner,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...               recursively scan current directory
  - ./scenarios/...     recursively scan the scenarios directory
  - ./a ./b             scan multiple directories
  - x.refine.yaml       run a single scenario file

Directories are scanned for *.refine.yaml and *.refine.yml files.`

const rootLongDescription = `Refine runs scenario files against a scoped method-override resolver.

A scenario declares classes, modules and objects, groups method overrides
into named sets and activates them in nested lexical regions. Each
dispatch in the script is resolved through the active overrides and
checked against its expected value.

` + pathPatternsHelp

const runLongDescription = `Run scenario files and check every expectation (default: current directory).

` + pathPatternsHelp

const listLongDescription = `List scenario files with their type, override and check counts.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refine",
		Short: "Scoped method-override scenario runner",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a root command with its persistent flags registered.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for scenario reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, viper.GetBool(noCacheFlagName), "disable report reuse for unchanged scenario files")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Interrupts cancel the running command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{defaultScenarioPath}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
