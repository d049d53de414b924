package policy

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/viant/clawguard/internal/clock"
	"github.com/viant/clawguard/internal/idgen"
	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
	"github.com/viant/clawguard/service/approval"
	"github.com/viant/clawguard/service/assessor"
	"github.com/viant/clawguard/service/event"
	"github.com/viant/clawguard/service/extractor"
	"github.com/viant/clawguard/service/messaging"
	"github.com/viant/clawguard/tracing"
	"go.uber.org/zap"
)

// Block reasons returned to the host.
const (
	ReasonThreatPrefix = "Security threat detected: "
	ReasonURLPrefix    = "Malicious URL detected: "
	ReasonCheckFailed  = "Security check failed: "
	ReasonDenied       = "User denied or approval timeout"
	UnknownThreat      = "Unknown threat"
)

var (
	errNoAssessor     = errors.New("assessor not configured")
	errUnknownVerdict = errors.New("unknown verdict")
)

// Decision is the record published for every evaluated request.
type Decision struct {
	Tool     string        `json:"tool"`
	Items    []action.Item `json:"items,omitempty"`
	Item     *action.Item  `json:"item,omitempty"` // item that blocked, if any
	Allow    bool          `json:"allow"`
	Reason   string        `json:"reason,omitempty"`
	Approval string        `json:"approval,omitempty"`
}

// Policy resolves gate verdicts. It holds read-only settings only and is
// safe for concurrent use.
type Policy struct {
	assessor    assessor.Assessor
	approval    Approval
	newApprover ApproverFactory
	publisher   *event.Publisher[Decision]
	logger      *zap.Logger
}

// New creates a policy consulting assessor for every item
func New(assessor assessor.Assessor, options ...Option) *Policy {
	ret := &Policy{assessor: assessor, logger: zap.NewNop()}
	for _, option := range options {
		option(ret)
	}
	if ret.newApprover == nil {
		ret.newApprover = ret.defaultApprover
	}
	return ret
}

// Approval returns the approval settings
func (p *Policy) Approval() Approval {
	return p.approval
}

func (p *Policy) defaultApprover(messenger messaging.Messenger) approval.Approver {
	return approval.New(messenger,
		approval.WithPollInterval(p.approval.PollInterval),
		approval.WithLogger(p.logger))
}

// Evaluate resolves the verdict for request. Items are checked in
// extraction order and the first block wins. messenger is the host's
// messaging capability; it is only used for warn verdicts.
func (p *Policy) Evaluate(ctx context.Context, request *action.Request, messenger messaging.Messenger) *verdict.Gate {
	started := clock.Now()
	ctx, span := tracing.StartSpan(ctx, "policy.evaluate", tracing.KindInternal)
	record := &Decision{Items: extractor.Extract(request)}
	if request != nil {
		record.Tool = request.Tool
	}
	gate := verdict.Allowed()
	for i := range record.Items {
		item := record.Items[i]
		if blocked := p.evaluateItem(ctx, item, messenger, record); blocked != nil {
			gate = blocked
			record.Item = &item
			break
		}
	}
	record.Allow = gate.IsAllowed()
	record.Reason = gate.Reason

	span.WithAttributes(map[string]string{
		"gate.tool":   record.Tool,
		"gate.allow":  strconv.FormatBool(record.Allow),
		"gate.reason": record.Reason,
	})
	tracing.EndSpan(span, nil)
	p.publish(ctx, record, started)
	return gate
}

// evaluateItem returns a block verdict, or nil when the item passes.
func (p *Policy) evaluateItem(ctx context.Context, item action.Item, messenger messaging.Messenger, record *Decision) *verdict.Gate {
	logger := p.logger.With(zap.String("tool", record.Tool), zap.String("kind", string(item.Kind)))
	if p.assessor == nil {
		logger.Error("security check failed", zap.Error(errNoAssessor))
		return verdict.Blocked(ReasonCheckFailed + errNoAssessor.Error())
	}
	assessed, err := p.assessor.Assess(ctx, item)
	if err != nil {
		logger.Error("security check failed", zap.Error(err))
		return verdict.Blocked(ReasonCheckFailed + err.Error())
	}
	switch actual := assessed.(type) {
	case verdict.Allow:
		return nil
	case verdict.Block:
		logger.Warn("blocked", zap.String("message", actual.Message()), threatField(actual.Threat))
		return verdict.Blocked(blockReason(item.Kind, actual.Threat))
	case verdict.Warn:
		return p.warn(ctx, logger, item, actual, messenger, record)
	default:
		logger.Error("security check failed", zap.Error(errUnknownVerdict))
		return verdict.Blocked(ReasonCheckFailed + errUnknownVerdict.Error())
	}
}

func (p *Policy) warn(ctx context.Context, logger *zap.Logger, item action.Item, warning verdict.Warn, messenger messaging.Messenger, record *Decision) *verdict.Gate {
	if !p.approval.Configured() {
		// TODO: confirm with product whether unconfigured approval should block warn verdicts instead.
		logger.Warn("approval not configured, allowing warning",
			zap.String("message", warning.Message()), threatField(warning.Threat))
		return nil
	}
	logger.Info("requesting approval", threatField(warning.Threat))
	message := approval.Format(item.Value, item.Kind, warning.Threat, p.approval.Timeout)
	request := approval.NewRequest(p.approval.ChannelID, message, p.approval.Timeout)
	result := p.newApprover(messenger).RequestApproval(ctx, request)
	if result == nil {
		result = &approval.Result{ID: request.ID, Decision: approval.DecisionFailed}
	}
	record.Approval = result.Decision.String()
	if !result.Granted() {
		logger.Warn("approval denied or timed out",
			zap.String("approvalID", request.ID),
			zap.Stringer("decision", result.Decision))
		return verdict.Blocked(ReasonDenied)
	}
	logger.Info("approval granted", zap.String("approvalID", request.ID))
	return nil
}

func (p *Policy) publish(ctx context.Context, record *Decision, started time.Time) {
	if p.publisher == nil {
		return
	}
	eventContext := &event.Context{
		RequestID:   idgen.New(),
		Tool:        record.Tool,
		EventType:   event.TypeDecision,
		TimeTakenMs: int(clock.Now().Sub(started).Milliseconds()),
	}
	if err := p.publisher.Publish(ctx, event.NewEvent(eventContext, *record)); err != nil {
		p.logger.Warn("failed to publish decision event", zap.Error(err))
	}
}

func blockReason(kind action.ContentKind, threat *verdict.Threat) string {
	name := verdict.ThreatName(threat, UnknownThreat)
	if kind == action.ContentURL {
		return ReasonURLPrefix + name
	}
	return ReasonThreatPrefix + name
}

func threatField(threat *verdict.Threat) zap.Field {
	if threat == nil {
		return zap.Skip()
	}
	return zap.String("threat", threat.Name+" ("+threat.ID+")")
}
