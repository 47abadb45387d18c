package ir

// Version constants for the compiled query format and the compiler.
const (
	// QueryFormatVersion changes whenever the fixed projection or the base
	// joins change shape.
	QueryFormatVersion = "1"

	// CompilerVersion is the subsel compiler version.
	CompilerVersion = "0.3.0"
)
