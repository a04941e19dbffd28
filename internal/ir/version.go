package ir

// Version constants for the IR encoding and the compiler.
const (
	// IRVersion is the version of the Encode output shape.
	IRVersion = "1"

	// CompilerVersion is the asdlc release.
	CompilerVersion = "0.1.0"
)
