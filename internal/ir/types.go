package ir

// CallKind distinguishes a method lookup from a method invocation.
type CallKind string

const (
	// CallKindGet is a property read that resolves a method.
	CallKindGet CallKind = "get"

	// CallKindCall is an invocation of a resolved method.
	CallKindCall CallKind = "call"
)

// Call is one observed interaction between the engine and a capability object.
type Call struct {
	ID        string   `json:"id"`         // Content-addressed hash
	SessionID string   `json:"session_id"`
	Seq       int64    `json:"seq"`        // Logical clock
	Receiver  string   `json:"receiver"`   // Capability object identifier
	Kind      CallKind `json:"kind"`
	Method    string   `json:"method"`
	Args      IRArray  `json:"args"`
	Result    IRValue  `json:"result,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Session is one top-level engine operation and the calls it made.
type Session struct {
	ID            string   `json:"id"`
	Operation     string   `json:"operation"` // "from", "add", "until", ...
	Input         IRObject `json:"input"`
	Output        string   `json:"output,omitempty"`
	ErrorKind     string   `json:"error_kind,omitempty"`
	Error         string   `json:"error,omitempty"`
	Calls         []Call   `json:"calls"`
	Digest        string   `json:"digest"`
	EngineVersion string   `json:"engine_version"`
	TraceVersion  string   `json:"trace_version"`
	StartedAt     int64    `json:"started_at"` // Logical clock at session start
}

// Methods returns the method names of every invocation, in order.
func (s Session) Methods() []string {
	out := make([]string, 0, len(s.Calls))
	for _, c := range s.Calls {
		if c.Kind == CallKindCall {
			out = append(out, c.Method)
		}
	}
	return out
}
