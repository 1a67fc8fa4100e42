package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const exampleScenarioFileName = "example.refine.yaml"

const exampleScenario = `name: example
types:
  - name: Greeter
    methods:
      greet: {concat: ["hello, ", {field: name}]}
objects:
  - {name: g, type: Greeter, fields: {name: world}}
overrides:
  - name: Loud
    targets:
      - type: Greeter
        methods:
          greet: {concat: [{super: {}}, "!"]}
script:
  - dispatch: {to: g, method: greet, expect: "hello, world"}
  - region:
      using: [Loud]
      do:
        - dispatch: {to: g, method: greet, expect: "hello, world!"}
  - dispatch: {to: g, method: greet, expect: "hello, world"}
`

var initExampleFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default refine.yaml configuration file",
		Long: `Create a refine.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually. With --example a starter
scenario file is written next to it.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			if !initExampleFlag {
				return nil
			}

			return writeExampleScenario(filepath.Join(configFolderPath, exampleScenarioFileName))
		},
	}

	cmd.Flags().BoolVar(&initExampleFlag, "example", false, "also write "+exampleScenarioFileName)

	return cmd
}

func writeExampleScenario(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("example scenario %s: %w", path, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("example scenario %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(exampleScenario), 0o600); err != nil {
		return fmt.Errorf("failed to write example scenario: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
