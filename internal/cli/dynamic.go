package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/asdlc/internal/pygen"
)

// DynamicTargetOptions holds flags for the dynamic-target command.
type DynamicTargetOptions struct {
	*RootOptions
	Output string // output file path, stdout if empty
}

// NewDynamicTargetCommand creates the dynamic-target command.
func NewDynamicTargetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DynamicTargetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "dynamic-target <schema> [<companion-module>]",
		Aliases: []string{"mypy"},
		Short:   "Generate typed Python declarations",
		Long: `Generate one Python module for the schema. Imports of types from
"use" blocks are deferred behind TYPE_CHECKING.

A companion module name such as frontend.syntax_abbrev is resolved
under --companion-root; its source is appended verbatim after the
generated code and its _ClassName functions become abbreviation hooks.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			companion := ""
			if len(args) == 2 {
				companion = args[1]
			}
			return runDynamicTarget(opts, args[0], companion, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runDynamicTarget(opts *DynamicTargetOptions, schemaPath, companion string, cmd *cobra.Command) error {
	cfg := opts.settings()

	mod, err := loadModule(opts.RootOptions, schemaPath)
	if err != nil {
		return err
	}

	genOpts := pygen.Options{PrettyPrint: cfg.PrettyPrint, InitZero: cfg.InitZero, InitN: cfg.InitN}
	if companion != "" {
		abbrev, err := pygen.LoadCompanion(cfg.CompanionRoot, companion)
		if err != nil {
			return codedError(ExitFailure, ErrCodeCompanion, "", err)
		}
		opts.logger().Debugw("loaded companion", "module", companion, "path", abbrev.Path)
		genOpts.Abbrev = abbrev
	}

	return writeOutput(cmd.OutOrStdout(), opts.Output, pygen.Generate(mod, genOpts))
}
