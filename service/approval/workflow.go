package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/clawguard/internal/clock"
	"github.com/viant/clawguard/service/messaging"
	"github.com/viant/clawguard/tracing"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single approval request.
	DefaultTimeout = 60 * time.Second
	// DefaultPollInterval is the reaction polling cadence.
	DefaultPollInterval = time.Second

	// TimeoutNotice is posted when nobody reacted before the deadline.
	TimeoutNotice = "⏱️ Approval request timed out. Denying action for safety."
)

// Option customises a Workflow
type Option func(w *Workflow)

// WithPollInterval sets the reaction polling cadence
func WithPollInterval(interval time.Duration) Option {
	return func(w *Workflow) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithLogger sets the workflow logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Workflow runs the send/react/poll/timeout approval protocol against a
// messaging capability. Runs share no state, so a Workflow is safe for
// concurrent use.
type Workflow struct {
	messenger messaging.Messenger
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a workflow bound to messenger
func New(messenger messaging.Messenger, options ...Option) *Workflow {
	ret := &Workflow{
		messenger: messenger,
		interval:  DefaultPollInterval,
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// run holds the state of a single approval exchange.
type run struct {
	request   *Request
	stage     Stage
	timeout   time.Duration
	messageID string
	noticeID  string
	decision  Decision
}

// stateFn is one workflow state; it returns the next state, nil once a
// decision was reached, or a fault.
type stateFn func(ctx context.Context, r *run) (stateFn, error)

// RequestApproval runs the workflow for r. It never fails: any fault
// resolves to DecisionFailed.
func (w *Workflow) RequestApproval(ctx context.Context, request *Request) *Result {
	ctx, span := tracing.StartSpan(ctx, "approval.request", tracing.KindClient)
	result := w.execute(ctx, request)
	span.WithAttributes(map[string]string{
		"approval.id":       result.ID,
		"approval.decision": result.Decision.String(),
	})
	var err error
	if result.Decision == DecisionFailed {
		err = errors.New(result.Reason)
	}
	tracing.EndSpan(span, err)
	return result
}

func (w *Workflow) execute(ctx context.Context, request *Request) (result *Result) {
	if request == nil {
		return w.fail(&run{request: &Request{}, stage: StageInit}, newFault(StageInit, ErrNilRequest))
	}
	r := &run{request: request, stage: StageInit, timeout: request.Timeout}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	defer w.release(r)
	defer func() {
		if p := recover(); p != nil {
			result = w.fail(r, newFault(r.stage, fmt.Errorf("panic: %v", p)))
		}
	}()
	if w.messenger == nil {
		return w.fail(r, newFault(StageInit, ErrNoMessenger))
	}
	var err error
	for state := stateFn(w.send); state != nil; {
		if state, err = state(ctx, r); err != nil {
			return w.fail(r, err)
		}
	}
	w.logger.Info("approval resolved",
		zap.String("approvalID", request.ID),
		zap.String("messageID", r.messageID),
		zap.Stringer("decision", r.decision))
	return w.result(r, "")
}

// send posts the approval message.
func (w *Workflow) send(ctx context.Context, r *run) (stateFn, error) {
	r.stage = StageSend
	messageID, err := w.messenger.Send(ctx, r.request.ChannelID, r.request.Message)
	if err != nil {
		return nil, newFault(StageSend, err)
	}
	if messageID == "" {
		return nil, newFault(StageSend, ErrNoMessageID)
	}
	r.messageID = messageID
	return w.prompt, nil
}

// prompt offers the approve and deny reactions.
func (w *Workflow) prompt(ctx context.Context, r *run) (stateFn, error) {
	r.stage = StageReact
	for _, symbol := range []string{ApproveSymbol, DenySymbol} {
		if err := w.messenger.React(ctx, r.messageID, symbol); err != nil {
			return nil, newFault(StageReact, err)
		}
	}
	return w.poll, nil
}

// poll checks reactions immediately and on every tick until a decision or
// the deadline.
func (w *Workflow) poll(ctx context.Context, r *run) (stateFn, error) {
	r.stage = StagePoll
	deadline := clock.NewTimer(r.timeout)
	defer deadline.Stop()
	ticker := clock.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		decided, err := w.check(ctx, r)
		if err != nil {
			return nil, newFault(StagePoll, err)
		}
		if decided {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, newFault(StagePoll, ctx.Err())
		case <-deadline.C():
			return w.expire, nil
		case <-ticker.C():
		}
	}
}

// check applies the decision rule to the current reactions. Approval is
// checked first, so it wins when both reactions are present.
func (w *Workflow) check(ctx context.Context, r *run) (bool, error) {
	reactions, err := w.messenger.Reactions(ctx, r.messageID)
	if err != nil {
		return false, err
	}
	switch {
	case messaging.Count(reactions, ApproveSymbol) > 0:
		r.decision = DecisionApproved
	case messaging.Count(reactions, DenySymbol) > 0:
		r.decision = DecisionDenied
	default:
		return false, nil
	}
	return true, nil
}

// expire posts the timeout notice and resolves TimedOut.
func (w *Workflow) expire(ctx context.Context, r *run) (stateFn, error) {
	r.stage = StageNotify
	r.decision = DecisionTimedOut
	noticeID, err := w.messenger.Send(ctx, r.request.ChannelID, TimeoutNotice)
	r.noticeID = noticeID
	if err != nil {
		w.logger.Warn("failed to post approval timeout notice",
			zap.String("approvalID", r.request.ID),
			zap.Error(newFault(StageNotify, err)))
	}
	return nil, nil
}

// release lets a stateful messenger forget the messages of a resolved run.
func (w *Workflow) release(r *run) {
	releaser, ok := w.messenger.(messaging.Releaser)
	if !ok {
		return
	}
	for _, messageID := range []string{r.messageID, r.noticeID} {
		if messageID != "" {
			releaser.Release(messageID)
		}
	}
}

func (w *Workflow) fail(r *run, err error) *Result {
	w.logger.Error("approval failed, denying action",
		zap.String("approvalID", r.request.ID),
		zap.String("messageID", r.messageID),
		zap.Error(err))
	r.decision = DecisionFailed
	return w.result(r, err.Error())
}

func (w *Workflow) result(r *run, reason string) *Result {
	return &Result{
		ID:        r.request.ID,
		MessageID: r.messageID,
		Decision:  r.decision,
		Reason:    reason,
		DecidedAt: clock.Now(),
	}
}

var _ Approver = (*Workflow)(nil)
