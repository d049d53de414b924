package verdict

// Result is the wire form of a verdict as emitted by a detector
// (`{"exitCode":2,"message":"...","primaryThreat":{...}}`).
type Result struct {
	ExitCode      int     `json:"exitCode" yaml:"exitCode"`
	Message       string  `json:"message,omitempty" yaml:"message,omitempty"`
	PrimaryThreat *Threat `json:"primaryThreat,omitempty" yaml:"primaryThreat,omitempty"`
}

// Verdict converts the wire form into the closed union. Unknown exit codes
// convert to Block.
func (r *Result) Verdict() Verdict {
	switch Code(r.ExitCode) {
	case CodeAllow:
		return Allow{Msg: r.Message}
	case CodeWarn:
		return Warn{Msg: r.Message, Threat: r.PrimaryThreat}
	default:
		return Block{Msg: r.Message, Threat: r.PrimaryThreat}
	}
}

// NewResult converts a verdict back into its wire form.
func NewResult(v Verdict) *Result {
	ret := &Result{ExitCode: int(v.Code()), Message: v.Message()}
	switch actual := v.(type) {
	case Warn:
		ret.PrimaryThreat = actual.Threat
	case Block:
		ret.PrimaryThreat = actual.Threat
	}
	return ret
}
