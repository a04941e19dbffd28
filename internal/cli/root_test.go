package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asdlc/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "asdlc", cmd.Use)
	assert.Contains(t, cmd.Long, "ASDL schemas")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"enum-export", "static-target", "dynamic-target", "check", "dump", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestCommandAliases(t *testing.T) {
	cmd := NewRootCommand()
	aliases := map[string]string{
		"c":    "enum-export",
		"cpp":  "static-target",
		"mypy": "dynamic-target",
	}

	for alias, name := range aliases {
		t.Run(alias, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{alias})
			require.NoError(t, err)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"pretty-print-methods", "init-zero", "init-n"} {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "true", f.DefValue, name)
	}

	noPretty := cmd.PersistentFlags().Lookup("no-pretty-print-methods")
	require.NotNil(t, noPretty)
	assert.Equal(t, "false", noPretty.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("companion-root"))
}

func TestOutputFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"enum-export", "dynamic-target", "dump"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		outputFlag := subCmd.Flags().Lookup("output")
		require.NotNil(t, outputFlag, name)
		assert.Equal(t, "o", outputFlag.Shorthand)
	}
}

func TestLoadSettingsLayers(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "asdlc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("init_zero: false\ncompanion_root: /abbrev\n"), 0644))
	schema := testutil.WriteFile(t, dir, "demo.asdl", testutil.DemoSchema)

	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "--init-n=false", "--no-pretty-print-methods", "check", schema})
	require.NoError(t, cmd.Execute())

	require.NotNil(t, opts.Config)
	assert.False(t, opts.Config.InitZero)
	assert.False(t, opts.Config.InitN)
	assert.False(t, opts.Config.PrettyPrint)
	assert.Equal(t, "/abbrev", opts.Config.CompanionRoot)
	assert.Equal(t, "text", opts.Format)
	assert.NotNil(t, opts.Logger)
}

func TestSettingsWithoutRoot(t *testing.T) {
	opts := &RootOptions{Format: "json", NoPrettyPrint: true}
	cfg := opts.settings()
	assert.False(t, cfg.PrettyPrint)
	assert.True(t, cfg.InitZero)
	assert.True(t, cfg.InitN)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, ".", cfg.CompanionRoot)
	assert.NotNil(t, opts.logger())
}
