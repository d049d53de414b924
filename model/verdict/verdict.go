package verdict

// Code is the detector exit code carried by a verdict.
type Code int

const (
	CodeAllow Code = 0
	CodeBlock Code = 1
	CodeWarn  Code = 2
)

// String returns the string representation of the code.
func (c Code) String() string {
	switch c {
	case CodeAllow:
		return "allow"
	case CodeBlock:
		return "block"
	case CodeWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// Verdict is the risk assessment of a single item. It is a closed union:
// the only implementations are Allow, Warn and Block.
type Verdict interface {
	Code() Code
	Message() string
	verdict()
}

// Allow means the item is safe to run.
type Allow struct {
	Msg string
}

// Warn means the item needs human approval.
type Warn struct {
	Msg    string
	Threat *Threat
}

// Block means the item must not run.
type Block struct {
	Msg    string
	Threat *Threat
}

func (Allow) Code() Code { return CodeAllow }
func (Warn) Code() Code  { return CodeWarn }
func (Block) Code() Code { return CodeBlock }

func (v Allow) Message() string { return v.Msg }
func (v Warn) Message() string  { return v.Msg }
func (v Block) Message() string { return v.Msg }

func (Allow) verdict() {}
func (Warn) verdict()  {}
func (Block) verdict() {}

// ThreatName returns the threat name or fallback when no threat is attached.
func ThreatName(threat *Threat, fallback string) string {
	if threat == nil || threat.Name == "" {
		return fallback
	}
	return threat.Name
}
