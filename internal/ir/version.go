package ir

// Version constants for recorded traces and the engine.
const (
	// TraceVersion is the schema version of recorded sessions.
	TraceVersion = "1"

	// EngineVersion is the ymcalc engine version.
	EngineVersion = "0.1.0"
)
