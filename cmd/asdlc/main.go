// Command asdlc compiles ASDL schemas into C++ and typed Python.
//
//	asdlc static-target frontend/syntax.asdl _gen/frontend/syntax.asdl _devbuild/syntax_debug.py
//	asdlc dynamic-target frontend/syntax.asdl frontend.syntax_abbrev > _devbuild/gen/syntax_asdl.py
//	asdlc enum-export frontend/types.asdl
package main

import (
	"os"

	"github.com/roach88/asdlc/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
