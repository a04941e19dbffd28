package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/asdlc/internal/cppgen"
)

// EnumExportOptions holds flags for the enum-export command.
type EnumExportOptions struct {
	*RootOptions
	Output string // output file path, stdout if empty
}

// NewEnumExportCommand creates the enum-export command.
func NewEnumExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnumExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "enum-export <schema>",
		Aliases: []string{"c"},
		Short:   "Print the integer constants of every simple sum",
		Long: `Resolve a schema and print only its simple sums, as one
#define per constructor. Used when a schema exists to give a lexer
table its integer constants.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnumExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runEnumExport(opts *EnumExportOptions, schemaPath string, cmd *cobra.Command) error {
	mod, err := loadModule(opts.RootOptions, schemaPath)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), opts.Output, cppgen.EnumExport(mod))
}
