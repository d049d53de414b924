package approval

import (
	"time"

	"github.com/viant/clawguard/internal/clock"
	"github.com/viant/clawguard/internal/idgen"
)

// Decision is the terminal outcome of an approval workflow run.
type Decision int

const (
	DecisionApproved Decision = iota + 1
	DecisionDenied
	DecisionTimedOut
	DecisionFailed
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionApproved:
		return "approved"
	case DecisionDenied:
		return "denied"
	case DecisionTimedOut:
		return "timedOut"
	case DecisionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request represents a request for approval
type Request struct {
	ID        string        `json:"id"`
	ChannelID string        `json:"channelId"`
	Message   string        `json:"message"`
	Timeout   time.Duration `json:"timeout"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewRequest creates a request with a fresh identifier
func NewRequest(channelID, message string, timeout time.Duration) *Request {
	return &Request{
		ID:        idgen.New(),
		ChannelID: channelID,
		Message:   message,
		Timeout:   timeout,
		CreatedAt: clock.Now(),
	}
}

// Result represents approval decision
type Result struct {
	ID        string    `json:"id"` // same as request.ID
	MessageID string    `json:"messageId,omitempty"`
	Decision  Decision  `json:"decision"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}

// Granted reports whether the action may proceed. Only an explicit
// approval grants; timeouts and failures are denials.
func (r *Result) Granted() bool {
	return r != nil && r.Decision == DecisionApproved
}
