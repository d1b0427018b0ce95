package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsinline.dev/pkg/jsinline/internal/domain"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

var writeFlag bool

const inlineLongDescription = `Inline the declaration under the given position of a file.

By default the change is printed as a unified diff; use --write to update
the file in place.

` + positionHelp

// inlineCmd represents the inline command.
var inlineCmd = newInlineCmd()

func newInlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inline",
		Short: "Inline a variable, type alias or function",
		Long:  inlineLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&writeFlag, writeFlagName, "w", viper.GetBool(writeConfigKey), "write the result to the file instead of printing a diff")

	cmd.AddCommand(
		newInlineTargetCmd("variable", "Inline a variable, destructured field or type alias", m.RefactoringInlineVariable),
		newInlineTargetCmd("function", "Inline a function into its call sites", m.RefactoringInlineFunction),
	)

	return cmd
}

func newInlineTargetCmd(name, short string, refactoring m.Refactoring) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <file> <position>",
		Short: short,
		Long:  inlineLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := parseSelection(args[1])
			if err != nil {
				return err
			}

			return workflow.Inline(cmd.Context(), domain.InlineArgs{
				Path:        m.Path(args[0]),
				Refactoring: refactoring,
				Selection:   selection,
				Write:       writeFlag || viper.GetBool(writeConfigKey),
				Color:       viper.GetBool(colorConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(inlineCmd)
}
