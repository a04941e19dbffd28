package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/asdlc/internal/config"
	"github.com/roach88/asdlc/internal/ir"
	"github.com/roach88/asdlc/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose       bool
	Format        string // "json" | "text"
	ConfigFile    string
	NoPrettyPrint bool

	// Config and Logger are filled in by the root's pre-run hook.
	Config *config.Config
	Logger *zap.SugaredLogger
}

// settings returns the merged configuration, or the defaults when the
// command runs without the root (as in tests).
func (o *RootOptions) settings() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	cfg := &config.Config{
		PrettyPrint:   !o.NoPrettyPrint,
		InitZero:      true,
		InitN:         true,
		Format:        o.Format,
		Verbose:       o.Verbose,
		CompanionRoot: ".",
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	return cfg
}

func (o *RootOptions) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop().Sugar()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// NewRootCommand creates the root command for the asdlc CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asdlc",
		Short: "asdlc - ASDL schema compiler",
		Long: `Compile ASDL schemas into C++ and typed Python declarations.

Each invocation reads one schema, resolves it and runs one action.
Options are layered from defaults, .asdlc.yaml (or --config), ASDLC_*
environment variables and flags.`,
		Version:       ir.CompilerVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(opts, cmd)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.ConfigFile, "config", "", "config file (default .asdlc.yaml if present)")
	addCodegenFlags(pf, opts)

	// Add subcommands
	cmd.AddCommand(NewEnumExportCommand(opts))
	cmd.AddCommand(NewStaticTargetCommand(opts))
	cmd.AddCommand(NewDynamicTargetCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// loadSettings merges config sources and builds the logger.
func loadSettings(opts *RootOptions, cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return codedError(ExitCommandError, ErrCodeConfig, "", err)
	}

	cfg, err := config.Load(v, opts.ConfigFile, ".")
	if err != nil {
		return codedError(ExitCommandError, ErrCodeConfig, "", err)
	}
	if opts.NoPrettyPrint {
		cfg.PrettyPrint = false
	}

	opts.Config = cfg
	opts.Format = cfg.Format
	opts.Verbose = cfg.Verbose
	opts.Logger = logging.New(cfg.Verbose, cfg.Format == "json", cmd.ErrOrStderr())
	opts.Logger.Debugw("configuration loaded",
		"pretty_print", cfg.PrettyPrint,
		"init_zero", cfg.InitZero,
		"init_n", cfg.InitN,
		"companion_root", cfg.CompanionRoot,
	)
	return nil
}

// Execute runs the CLI and returns the process exit status. A failure is
// reported as a single "asdlc: FATAL:" line on stderr and, with
// --format json, as an error response on stdout.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	fmt.Fprintf(stderr, "asdlc: FATAL: %s\n", msg)

	var exitErr *ExitError
	reported := errors.As(err, &exitErr) && exitErr.Reported
	if opts.Format == "json" && !reported {
		_ = json.NewEncoder(stdout).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: GetErrCode(err), Message: msg},
		})
	}
	return GetExitCode(err)
}
