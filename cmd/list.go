package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsinline.dev/pkg/jsinline/internal/domain"
)

var inlinableOnlyFlag bool

const listLongDescription = `List the declarations of the given files that can be inlined, with the
number of references and the verdict the engine gives for each of them.

` + pathPatternsHelp

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List inline targets",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Paths:         parsePaths(args),
				Exclude:       viper.GetStringSlice(excludeConfigKey),
				InlinableOnly: inlinableOnlyFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&inlinableOnlyFlag, inlinableFlagName, false, "only show targets that can be inlined")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
