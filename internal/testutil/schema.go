// Package testutil holds schema fixtures shared by the back-end and CLI
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/asdlc/internal/compiler"
	"github.com/roach88/asdlc/internal/config"
	"github.com/roach88/asdlc/internal/ir"
)

// DemoSchema exercises every declaration kind: a simple sum, two
// products, and a compound sum with a plain, an empty and a shared
// variant. The checked-in goldens of cppgen, pygen and harness are
// generated from it.
const DemoSchema = `
module demo {
  color = Red | Green
  point = (int x, string? label, color c)
  quoted = (string* parts, bool b)
  expr = Const(int i) | Nil | Quoted %quoted
}
`

// LoadSchema parses and resolves src, failing the test on any error.
func LoadSchema(t testing.TB, src string, known config.AppTypes) *ir.Module {
	t.Helper()
	mod, err := compiler.LoadSchema(strings.NewReader(src), known)
	require.NoError(t, err)
	return mod
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
