package policy

import (
	"time"

	"github.com/viant/clawguard/service/approval"
	"github.com/viant/clawguard/service/event"
	"github.com/viant/clawguard/service/messaging"
	"go.uber.org/zap"
)

// Approval configures the human approval branch of the policy.
type Approval struct {
	Enabled      bool
	ChannelID    string
	Timeout      time.Duration
	PollInterval time.Duration
}

// Configured reports whether warn verdicts are routed to a human.
func (a Approval) Configured() bool {
	return a.Enabled && a.ChannelID != ""
}

// ApproverFactory binds an approver to the messaging capability supplied by
// the host for one evaluation.
type ApproverFactory func(messenger messaging.Messenger) approval.Approver

// Option customises a Policy
type Option func(p *Policy)

// WithApproval sets the approval settings
func WithApproval(settings Approval) Option {
	return func(p *Policy) { p.approval = settings }
}

// WithApproverFactory replaces the default approval workflow
func WithApproverFactory(factory ApproverFactory) Option {
	return func(p *Policy) { p.newApprover = factory }
}

// WithLogger sets the policy logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPublisher publishes every final decision
func WithPublisher(publisher *event.Publisher[Decision]) Option {
	return func(p *Policy) { p.publisher = publisher }
}
