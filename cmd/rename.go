package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsinline.dev/pkg/jsinline/internal/domain"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

var renameToFlag string

// renameCmd represents the rename command.
var renameCmd = newRenameCmd()

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <file> <position>",
		Short: "Rename a binding and its references",
		Long: `Rename the binding under the given position and every reference to it.

Without --to the new name is asked interactively, with the current name as
default.

` + positionHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := parseSelection(args[1])
			if err != nil {
				return err
			}

			return workflow.Rename(cmd.Context(), domain.RenameArgs{
				Path:      m.Path(args[0]),
				Selection: selection,
				NewName:   renameToFlag,
				Write:     writeFlag || viper.GetBool(writeConfigKey),
				Color:     viper.GetBool(colorConfigKey),
			})
		},
	}

	cmd.Flags().StringVar(&renameToFlag, toFlagName, "", "new name (skips the prompt)")
	cmd.Flags().BoolVarP(&writeFlag, writeFlagName, "w", viper.GetBool(writeConfigKey), "write the result to the file instead of printing a diff")

	return cmd
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
