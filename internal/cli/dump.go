package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/asdlc/internal/ir"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Output string // output file path, stdout if empty
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <schema>",
		Short: "Print the resolved module as canonical JSON",
		Long: `Resolve a schema and print its intermediate representation as
canonical JSON (sorted keys, NFC strings, no insignificant space),
together with the module digest and the IR version.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runDump(opts *DumpOptions, schemaPath string, cmd *cobra.Command) error {
	mod, err := loadModule(opts.RootOptions, schemaPath)
	if err != nil {
		return err
	}

	digest, err := ir.Digest(mod)
	if err != nil {
		return codedError(ExitFailure, ErrCodeGeneric, "failed to digest module", err)
	}

	data, err := ir.MarshalCanonical(ir.Object{
		"digest":     ir.Str(digest),
		"ir_version": ir.Str(ir.IRVersion),
		"ir":         ir.Encode(mod),
	})
	if err != nil {
		return codedError(ExitFailure, ErrCodeGeneric, "failed to marshal module", err)
	}

	return writeOutput(cmd.OutOrStdout(), opts.Output, string(data)+"\n")
}
