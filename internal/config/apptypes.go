package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/roach88/asdlc/internal/ir"
)

// AppTypes maps an application type name, as written in a schema, to its
// generated-code bindings.
type AppTypes map[string]*ir.External

// Sorted returns the types ordered by name.
func (a AppTypes) Sorted() []*ir.External {
	out := make([]*ir.External, 0, len(a))
	for _, t := range a {
		out = append(out, t)
	}
	slices.SortFunc(out, func(x, y *ir.External) int {
		if x.Name < y.Name {
			return -1
		}
		if x.Name > y.Name {
			return 1
		}
		return 0
	})
	return out
}

var idKind = AppTypes{
	"id": {
		Name:      "id",
		CppType:   "id_kind_asdl::Id_t",
		CppHeader: "_gen/frontend/id_kind.asdl.h",
		CppStr:    "id_kind_asdl::Id_str",
		PyModule:  "id_kind_asdl",
		PyType:    "Id_t",
		PyStr:     "Id_str",
		Integer:   true,
	},
}

// DefaultAppTypes is keyed by schema file name. Only the two core schemas
// see the token id enum without a use block.
var DefaultAppTypes = map[string]AppTypes{
	"syntax.asdl":  idKind,
	"runtime.asdl": idKind,
}

// AppTypesFor returns the application types for the schema at path, or
// nil when the file name has none.
func AppTypesFor(path string) AppTypes {
	return DefaultAppTypes[filepath.Base(path)]
}

// NamespaceFor derives the generated namespace from a schema path by
// replacing every dot in the file name with an underscore, so
// typed_arith.asdl becomes typed_arith_asdl.
func NamespaceFor(path string) string {
	return strings.ReplaceAll(filepath.Base(path), ".", "_")
}
