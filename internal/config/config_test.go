package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "", t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.PrettyPrint)
	assert.True(t, cfg.InitZero)
	assert.True(t, cfg.InitN)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, ".", cfg.CompanionRoot)
}

func TestLoadProjectConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "pretty_print: false\ninit_n: false\nformat: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0o644))

	cfg, err := Load(New(), "", dir)
	require.NoError(t, err)

	assert.False(t, cfg.PrettyPrint)
	assert.False(t, cfg.InitN)
	assert.True(t, cfg.InitZero)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asdlc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o644))

	_, err := Load(New(), path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("init_zero: true\n"), 0o644))
	t.Setenv("ASDLC_INIT_ZERO", "false")

	cfg, err := Load(New(), "", dir)
	require.NoError(t, err)
	assert.False(t, cfg.InitZero)
}

func TestFlagsOverrideEverything(t *testing.T) {
	t.Setenv("ASDLC_FORMAT", "text")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("format", "text", "")
	fs.Bool("init-n", true, "")
	require.NoError(t, fs.Parse([]string{"--format=json", "--init-n=false"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v, "", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.InitN)
	assert.True(t, cfg.PrettyPrint, "unbound keys keep defaults")
}

func TestAppTypesFor(t *testing.T) {
	syntax := AppTypesFor("frontend/syntax.asdl")
	require.NotNil(t, syntax)
	id, ok := syntax["id"]
	require.True(t, ok)
	assert.Equal(t, "id_kind_asdl::Id_t", id.CppType)
	assert.True(t, id.Integer)

	assert.NotNil(t, AppTypesFor("runtime.asdl"))
	assert.Nil(t, AppTypesFor("typed_arith.asdl"))
	assert.Nil(t, AppTypesFor("syntax.asdl.bak"))
}

func TestAppTypesSorted(t *testing.T) {
	a := AppTypes{
		"span": {Name: "span"},
		"id":   {Name: "id"},
	}
	sorted := a.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "id", sorted[0].Name)
	assert.Equal(t, "span", sorted[1].Name)
}

func TestNamespaceFor(t *testing.T) {
	assert.Equal(t, "typed_arith_asdl", NamespaceFor("demo/typed_arith.asdl"))
	assert.Equal(t, "syntax_asdl", NamespaceFor("syntax.asdl"))
	assert.Equal(t, "a_b_asdl", NamespaceFor("/x/a.b.asdl"))
}
