package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsinline.dev/pkg/jsinline/internal/domain"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

var batchParallelFlag int
var batchReportsFlag string
var batchWriteFlag bool

const batchLongDescription = `Run a YAML plan of refactorings.

A plan lists requests with a path, a refactoring (inline-variable,
inline-function or rename), a one-based line and character, and for
renames a new_name:

  requests:
    - path: src/app.js
      refactoring: inline-variable
      line: 3
      character: 7

Requests on the same file run in order; files run in parallel. A report of
every request is written to --reports.`

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <plan.yaml>",
		Short: "Run a plan of refactorings",
		Long:  batchLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Batch(cmd.Context(), domain.BatchArgs{
				Plan:     m.Path(args[0]),
				Reports:  m.Path(viper.GetString(reportsConfigKey)),
				Parallel: viper.GetInt(parallelConfigKey),
				Write:    batchWriteFlag || viper.GetBool(writeConfigKey),
			})
		},
	}

	cmd.Flags().IntVarP(&batchParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files processed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
	cmd.Flags().StringVarP(&batchReportsFlag, reportsFlagName, "r", viper.GetString(reportsConfigKey), "report file")
	bindFlagToConfig(cmd.Flags().Lookup(reportsFlagName), reportsConfigKey)
	cmd.Flags().BoolVarP(&batchWriteFlag, writeFlagName, "w", false, "write the results to the files")

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
