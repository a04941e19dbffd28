package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/asdlc/internal/config"
	"github.com/roach88/asdlc/internal/cppgen"
)

// StaticTargetResult reports the files written by static-target.
type StaticTargetResult struct {
	Module    string   `json:"module"`
	Namespace string   `json:"namespace"`
	Files     []string `json:"files"`
}

// NewStaticTargetCommand creates the static-target command.
func NewStaticTargetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "static-target <schema> <output-prefix> [<debug-info-path>]",
		Aliases: []string{"cpp"},
		Short:   "Generate C++ declarations and definitions",
		Long: `Generate <output-prefix>.h and, when pretty-print methods are
enabled, <output-prefix>.cc. With a third argument, also write the
tag-to-type debug table there (JSON if the path ends in .json).

The namespace is the schema file name with dots replaced by
underscores (typed_arith.asdl becomes typed_arith_asdl).`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugPath := ""
			if len(args) == 3 {
				debugPath = args[2]
			}
			return runStaticTarget(rootOpts, args[0], args[1], debugPath, cmd)
		},
	}

	return cmd
}

func runStaticTarget(opts *RootOptions, schemaPath, prefix, debugPath string, cmd *cobra.Command) error {
	cfg := opts.settings()
	log := opts.logger()

	mod, err := loadModule(opts, schemaPath)
	if err != nil {
		return err
	}

	ns := config.NamespaceFor(schemaPath)
	genOpts := cppgen.Options{PrettyPrint: cfg.PrettyPrint, InitZero: cfg.InitZero, InitN: cfg.InitN}

	// Generate everything before the first file is created.
	type unit struct{ path, text string }
	units := []unit{{prefix + ".h", cppgen.Header(mod, ns, prefix, genOpts)}}
	if cfg.PrettyPrint {
		units = append(units, unit{prefix + ".cc", cppgen.Definitions(mod, ns, prefix, genOpts)})
	}
	table := cppgen.DebugTable(mod, ns)

	result := StaticTargetResult{Module: mod.Name, Namespace: ns}
	for _, u := range units {
		if err := writeOutput(cmd.OutOrStdout(), u.path, u.text); err != nil {
			return err
		}
		log.Debugw("wrote unit", "path", u.path, "bytes", len(u.text))
		result.Files = append(result.Files, u.path)
	}

	if debugPath != "" {
		asJSON := strings.HasSuffix(debugPath, ".json")
		err := writeFile(debugPath, func(w io.Writer) error {
			return cppgen.WriteDebugInfo(w, ns, table, asJSON)
		})
		if err != nil {
			return err
		}
		log.Debugw("wrote debug info", "path", debugPath, "sums", len(table.Sums()), "json", asJSON)
		result.Files = append(result.Files, debugPath)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(result)
	}
	opts.formatter(cmd).VerboseLog("%s: wrote %s", schemaPath, strings.Join(result.Files, ", "))
	return nil
}
