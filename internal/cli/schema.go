package cli

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/roach88/asdlc/internal/ast"
	"github.com/roach88/asdlc/internal/compiler"
	"github.com/roach88/asdlc/internal/config"
	"github.com/roach88/asdlc/internal/ir"
)

// addCodegenFlags registers the code generation options shared by every
// action. They are bound onto config keys in the root's pre-run hook.
func addCodegenFlags(fs *pflag.FlagSet, opts *RootOptions) {
	fs.Bool("pretty-print-methods", true, "generate PrettyTree methods and tag-name functions")
	fs.BoolVar(&opts.NoPrettyPrint, "no-pretty-print-methods", false, "disable PrettyTree methods (overrides config)")
	fs.Bool("init-zero", true, "generate zero-argument constructors")
	fs.Bool("init-n", true, "generate all-fields constructors")
	fs.String("companion-root", ".", "directory companion modules are resolved against")
}

// loadModule opens, parses and resolves one schema file. The
// application types are chosen by the file's base name.
func loadModule(opts *RootOptions, path string) (*ir.Module, error) {
	log := opts.logger()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, codedError(ExitFailure, ErrCodeNotFound, "schema file not found", err)
		}
		return nil, codedError(ExitFailure, ErrCodeRead, "failed to open schema", err)
	}
	defer f.Close()

	known := config.AppTypesFor(path)
	log.Debugw("loading schema", "path", path, "app_types", len(known))

	mod, err := compiler.LoadSchema(f, known)
	if err != nil {
		if code := ast.Code(err); code != "" {
			return nil, codedError(ExitFailure, code, "", &SchemaError{Path: path, Err: err})
		}
		return nil, codedError(ExitFailure, ErrCodeRead, "failed to read schema", err)
	}

	log.Debugw("resolved schema", "module", mod.Name, "decls", len(mod.Decls), "uses", len(mod.Uses))
	return mod, nil
}

// writeOutput writes text to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path, text string) error {
	if path == "" || path == "-" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return codedError(ExitFailure, ErrCodeWrite, "failed to write output", err)
		}
		return nil
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

// writeFile creates path and hands it to fill. The file is closed on
// every path; a failed close is reported.
func writeFile(path string, fill func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return codedError(ExitFailure, ErrCodeWrite, "failed to create output", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = codedError(ExitFailure, ErrCodeWrite, "failed to close output", errors.Wrapf(cerr, "close %s", path))
		}
	}()

	if err := fill(f); err != nil {
		return codedError(ExitFailure, ErrCodeWrite, "failed to write output", errors.Wrapf(err, "write %s", path))
	}
	return nil
}
