// Package logging builds the zap logger used for --verbose diagnostics.
//
// Diagnostics always go to the writer passed in (stderr from the CLI) so
// generated code on stdout is never interleaved with log lines.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a debug-level logger writing to w when verbose is set, and
// a no-op logger otherwise. jsonOutput selects the JSON encoder.
func New(verbose, jsonOutput bool, w io.Writer) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""

	var enc zapcore.Encoder
	if jsonOutput {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core).Named("asdlc").Sugar()
}
