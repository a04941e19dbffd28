package pygen

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Companion is a hand-written Python module spliced after the generated
// code. Generated classes call its _ClassName functions to build
// abbreviated pretty-print trees.
type Companion struct {
	Module string
	Path   string
	Text   string
	funcs  map[string]bool
}

var abbrevFunc = regexp.MustCompile(`(?m)^def (_[A-Za-z0-9_]+)\(`)

// LoadCompanion reads the companion for a dotted module name, mapping
// a.b.c to root/a/b/c.py.
func LoadCompanion(root, module string) (*Companion, error) {
	path := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(module, ".", "/"))+".py")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read companion module %s", module)
	}
	return NewCompanion(module, path, string(data)), nil
}

// NewCompanion indexes the top-level underscore functions of text.
func NewCompanion(module, path, text string) *Companion {
	c := &Companion{Module: module, Path: path, Text: text, funcs: make(map[string]bool)}
	for _, m := range abbrevFunc.FindAllStringSubmatch(text, -1) {
		c.funcs[m[1]] = true
	}
	return c
}

// Abbreviates reports whether the companion defines _class.
func (c *Companion) Abbreviates(class string) bool {
	return c != nil && c.funcs["_"+class]
}
