// Package cmd provides the root command and CLI setup for jsinline.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"jsinline.dev/pkg/jsinline/internal/adapter"
	"jsinline.dev/pkg/jsinline/internal/controller"
	"jsinline.dev/pkg/jsinline/internal/domain"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

var jsFileAdapter adapter.JSFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var refactorer domain.Refactorer
var workflow domain.Workflow
var ui controller.UI

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var verboseFlag bool
var logFileFlag string
var colorFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	jsFileAdapter = adapter.NewLocalJSFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewYAMLReportStore()
	refactorer = domain.NewRefactorer(jsFileAdapter)
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui, refactorer)
}

const pathPatternsHelp = `Supports path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./lib    scan the files of several directories
Files listed in .gitignore and node_modules are skipped.`

const positionHelp = `Positions are one-based LINE:COLUMN, or LINE:COLUMN-LINE:COLUMN for a
selection, as shown by editors.`

const rootLongDescription = `jsinline inlines JavaScript and TypeScript code: it replaces a variable,
a destructured field, a type alias or a function by its value or body at
every use, then removes the dead declaration.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "jsinline",
		Short:         "Inline refactorings for JavaScript and TypeScript",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching gitignore pattern (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVar(&colorFlag, colorFlagName, viper.GetBool(colorConfigKey), "colour diffs")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(colorFlagName), colorConfigKey)
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
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// parseSelection reads LINE:COLUMN or LINE:COLUMN-LINE:COLUMN, one-based,
// into a zero-based selection.
func parseSelection(value string) (m.Selection, error) {
	startText, endText, ranged := strings.Cut(value, "-")

	start, err := parsePosition(startText)
	if err != nil {
		return m.Selection{}, fmt.Errorf("invalid position %q: %w", value, err)
	}

	end := start

	if ranged {
		end, err = parsePosition(endText)
		if err != nil {
			return m.Selection{}, fmt.Errorf("invalid position %q: %w", value, err)
		}
	}

	return m.SelectionFromPositions(start, end), nil
}

func parsePosition(value string) (m.Position, error) {
	lineText, charText, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return m.Position{}, errors.New("expected LINE:COLUMN")
	}

	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return m.Position{}, fmt.Errorf("invalid line %q", lineText)
	}

	character, err := strconv.Atoi(charText)
	if err != nil || character < 1 {
		return m.Position{}, fmt.Errorf("invalid column %q", charText)
	}

	return m.NewPosition(line-1, character-1), nil
}
