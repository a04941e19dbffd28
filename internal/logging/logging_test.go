package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuietIsNop(t *testing.T) {
	var buf bytes.Buffer
	log := New(false, false, &buf)
	log.Debugw("resolved schema", "decls", 3)
	log.Infow("wrote header", "path", "out.h")
	assert.Empty(t, buf.String())
}

func TestNewVerboseConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(true, false, &buf)
	log.Debugw("resolved schema", "module", "arith", "decls", 3)
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "asdlc")
	assert.Contains(t, out, "resolved schema")
	assert.Contains(t, out, `"module": "arith"`)
}

func TestNewVerboseJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(true, true, &buf)
	log.Infow("wrote header", "path", "out.h")
	require.NoError(t, log.Sync())

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "info", entry["L"])
	assert.Equal(t, "wrote header", entry["M"])
	assert.Equal(t, "out.h", entry["path"])
	assert.Equal(t, "asdlc", entry["N"])
}
