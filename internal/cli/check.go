package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/asdlc/internal/ir"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <schema>",
		Short: "Parse and resolve a schema without generating code",
		Long: `Parse and resolve a schema and report how its declarations were
classified, with the digest of the resolved module.

Exit codes:
  0 - Schema is valid
  1 - Schema was rejected (lex, parse or resolve error)
  2 - Command error (invalid arguments, config)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, schemaPath string, cmd *cobra.Command) error {
	mod, err := loadModule(opts, schemaPath)
	if err != nil {
		return err
	}

	summary, err := ir.Summarize(mod)
	if err != nil {
		return codedError(ExitFailure, ErrCodeGeneric, "failed to summarize module", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(summary)
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)
	fmt.Fprintln(cmd.OutOrStdout(), "\u2713 Schema is valid")
	return nil
}
