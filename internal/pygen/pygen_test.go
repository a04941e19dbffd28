package pygen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asdlc/internal/config"
	"github.com/roach88/asdlc/internal/ir"
	"github.com/roach88/asdlc/internal/testutil"
)

var allOn = Options{PrettyPrint: true, InitZero: true, InitN: true}

func TestGolden(t *testing.T) {
	mod := testutil.LoadSchema(t, testutil.DemoSchema, nil)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "demo.py", []byte(Generate(mod, allOn)))
}

func TestDeferredImports(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module syntax {
  use frontend runtime { value, Cell }
  use core util { unused }
  token = (id id, string val)
  assign = (value rhs, Cell* cells)
}`, config.AppTypesFor("syntax.asdl"))

	out := Generate(mod, allOn)
	assert.Contains(t, out, "if TYPE_CHECKING:\n  from _devbuild.gen.runtime_asdl import value_t, Cell\n\n")
	assert.NotContains(t, out, "util_asdl")
	assert.Contains(t, out, "from _devbuild.gen.id_kind_asdl import Id_t\nfrom _devbuild.gen.id_kind_asdl import Id_str\n")
	assert.Contains(t, out, "    # type: (Id_t, str) -> None\n")
	assert.Contains(t, out, "    # type: (value_t, List[Cell]) -> None\n")
	assert.Contains(t, out, "x0 = NewLeaf(Id_str(self.id), hnode_asdl.color_e.UserType)")
	assert.Contains(t, out, "    return token(-1, '')\n")

	plain := Generate(mod, Options{InitN: true})
	assert.Contains(t, plain, "from _devbuild.gen.id_kind_asdl import Id_t\n")
	assert.NotContains(t, plain, "Id_str")
	assert.NotContains(t, plain, "PrettyTree")
	assert.NotContains(t, plain, "hnode")
}

func TestIntegerSums(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module hints {
  op = Plus | Minus generate [integers]
  binop = (op o)
}`, nil)

	out := Generate(mod, allOn)
	assert.Contains(t, out, "op_t = int  # type alias for integer\n\nclass op_i(object):\n  Plus = 0\n  Minus = 1\n  ARRAY_SIZE = 2\n")
	assert.Contains(t, out, "  # type: (op_t, bool) -> str\n")
	assert.Contains(t, out, "    return binop(op_i.Plus)\n")
	assert.NotContains(t, out, "class op_t")
}

func TestSharedAcrossSums(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module shared_variant {
  double_quoted = (int left, string* tokens)
  expr = Binary(expr left, expr right) | DoubleQuoted %double_quoted
  word_part = Literal(string s) | DoubleQuoted %double_quoted
}`, nil)

	out := Generate(mod, allOn)
	assert.Contains(t, out, "class double_quoted(expr_t, word_part_t):\n  _type_tag = 65\n")
	assert.Contains(t, out, "class expr_e(object):\n  Binary = 0\n  DoubleQuoted = 65\n")
	assert.Contains(t, out, "class word_part_e(object):\n  Literal = 0\n  DoubleQuoted = 65\n")
	assert.Contains(t, out, "class word_part(object):\n  Literal = word_part__Literal\n  DoubleQuoted = double_quoted\n")
	assert.NotContains(t, out, "expr__DoubleQuoted")

	// Base classes come before the product that subclasses them.
	assert.Less(t, strings.Index(out, "class word_part_t("), strings.Index(out, "class double_quoted("))
}

func TestNamespaceAfterLateProduct(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module late {
  expr = Lit(int v) | Quoted %quoted
  quoted = (string s)
}`, nil)

	out := Generate(mod, allOn)
	assert.Less(t, strings.Index(out, "class quoted("), strings.Index(out, "class expr(object):"))
}

func TestKeywordFields(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module kw {
  imp = (string from, string* import, int type)
}`, nil)

	out := Generate(mod, allOn)
	assert.Contains(t, out, "__slots__ = ('from_', 'import_', 'type')")
	assert.Contains(t, out, "def __init__(self, from_, import_, type):")
	assert.Contains(t, out, "self.from_ = from_")
	assert.Contains(t, out, "L.append(Field('from', x0))")
}

func TestKeywordVariants(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module m {
  point = (int x, int y)
  place = None | Two(point a, point b)
  flag = True | False
  holder = (flag f)
}`, nil)

	out := Generate(mod, allOn)
	assert.Contains(t, out, "class place_e(object):\n  None_ = 0\n  Two = 1\n")
	assert.Contains(t, out, "  None_ = place__None()\n")
	assert.Contains(t, out, "  Two = place__Two\n")
	assert.Contains(t, out, "class flag_e(object):\n  True_ = flag_t(0)\n  False_ = flag_t(1)\n")
	assert.Contains(t, out, "return holder(flag_e.True_)")

	// Display names keep the schema spelling.
	assert.Contains(t, out, "  0: 'None',\n")
	assert.Contains(t, out, "  0: 'True',\n")
	assert.Contains(t, out, "class place__None(place_t):")
	assert.NotContains(t, out, "  None = ")
	assert.NotContains(t, out, "  True = ")
}

func TestConstructorOptions(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module ctor {
  pair = (int a, string* bs)
}`, nil)

	zeroOnly := Generate(mod, Options{InitZero: true})
	assert.Contains(t, zeroOnly, "  def __init__(self):\n    # type: () -> None\n    self.a = -1  # type: int\n    self.bs = []  # type: List[str]\n")
	assert.NotContains(t, zeroOnly, "CreateNull")

	nOnly := Generate(mod, Options{InitN: true})
	assert.Contains(t, nOnly, "def __init__(self, a, bs):")
	assert.NotContains(t, nOnly, "CreateNull")

	none := Generate(mod, Options{})
	assert.NotContains(t, none, "__init__")
	assert.Contains(t, none, "class pair(pybase.CompoundObj):\n  __slots__ = ('a', 'bs')\n\n")
}

func TestNestedContainers(t *testing.T) {
	mod := testutil.LoadSchema(t, `
module nest {
  table = (Dict[string, List[int]] rows)
}`, nil)

	out := Generate(mod, allOn)
	assert.Contains(t, out, "      for k1, v2 in self.rows.items():\n"+
		"        x3 = NewLeaf(k1, hnode_asdl.color_e.StringConst)\n"+
		"        x4 = hnode.Array([])\n"+
		"        for i5 in v2:\n"+
		"          x6 = NewLeaf(str(i5), hnode_asdl.color_e.OtherConst)\n"+
		"          x4.children.append(x6)\n"+
		"        x0.children.append(x3)\n"+
		"        x0.children.append(x4)\n")
}

func TestAbbreviationSplice(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "frontend")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	companion := "def _point(obj):\n  # type: (point) -> hnode_t\n  return None\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo_abbrev.py"), []byte(companion), 0o644))

	abbrev, err := LoadCompanion(root, "frontend.demo_abbrev")
	require.NoError(t, err)
	assert.True(t, abbrev.Abbreviates("point"))
	assert.False(t, abbrev.Abbreviates("quoted"))

	mod := testutil.LoadSchema(t, testutil.DemoSchema, nil)
	opts := allOn
	opts.Abbrev = abbrev
	out := Generate(mod, opts)

	assert.Contains(t, out, "  def AbbreviatedTree(self):\n    # type: () -> hnode_t\n    p = _point(self)\n")
	assert.Equal(t, 1, strings.Count(out, "def AbbreviatedTree"))
	assert.True(t, strings.HasSuffix(out, "\n#\n# CONCATENATED FILE\n#\n\n"+companion))

	without := Generate(mod, allOn)
	assert.NotContains(t, without, "CONCATENATED")
	assert.NotContains(t, without, "AbbreviatedTree")
}

func TestLoadCompanionMissing(t *testing.T) {
	_, err := LoadCompanion(t.TempDir(), "no.such.module")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read companion module no.such.module")
}

func TestImportedWithoutUsePanics(t *testing.T) {
	orphan := &ir.Use{ModuleParts: []string{"frontend", "syntax"}, TypeNames: []string{"word"}}
	mod := &ir.Module{
		Name: "m",
		Decls: []ir.Decl{&ir.Product{
			Name:   "p",
			Fields: []*ir.Field{{Name: "w", Type: &ir.Imported{Name: "word", Use: orphan}}},
		}},
	}
	assert.Panics(t, func() { Generate(mod, allOn) })
}
