package clawguard

import (
	"context"
	"fmt"

	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
	"github.com/viant/clawguard/policy"
	"github.com/viant/clawguard/service/assessor"
	"github.com/viant/clawguard/service/assessor/command"
	"github.com/viant/clawguard/service/event"
	"github.com/viant/clawguard/service/messaging"
	"github.com/viant/clawguard/service/messaging/discord"
	"github.com/viant/clawguard/service/messaging/memory"
	"github.com/viant/clawguard/tracing"
	"go.uber.org/zap"
)

// ServiceName identifies the gate in traces.
const ServiceName = "clawguard"

// AuditHandler receives published decisions
type AuditHandler func(e *event.Event[policy.Decision])

// Service is the gate facade
type Service struct {
	config          *Config
	logger          *zap.Logger
	assessor        assessor.Assessor
	messenger       messaging.Messenger
	approverFactory policy.ApproverFactory
	auditHandler    AuditHandler
	policy          *policy.Policy
	listener        *event.Listener[policy.Decision]
	closers         []func() error
}

// New creates the gate. The Discord messenger is created from the config
// unless one was supplied; the configured detector command backs the
// assessor unless one was supplied.
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init(ctx context.Context) error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	s.config.Init()
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.logger == nil {
		logger, err := NewLogger(&s.config.Log)
		if err != nil {
			return err
		}
		s.logger = logger
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(ServiceName, Version, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	if s.assessor == nil && s.config.Assessor.Command != "" {
		detector := command.New(s.config.Assessor.Command, command.WithTimeout(s.config.Assessor.Timeout()))
		s.assessor = detector
		s.closers = append(s.closers, detector.Close)
	}
	discordConfig := &s.config.Discord
	if s.messenger == nil && discordConfig.Configured() {
		token, err := discord.Token(ctx, discordConfig.Token, discordConfig.TokenURL, discordConfig.TokenKey)
		if err != nil {
			return err
		}
		if s.messenger, err = discord.New(token); err != nil {
			return err
		}
	}

	policyOptions := []policy.Option{
		policy.WithLogger(s.logger),
		policy.WithApproval(policy.Approval{
			Enabled:      discordConfig.Enabled,
			ChannelID:    discordConfig.ChannelID,
			Timeout:      discordConfig.Timeout(),
			PollInterval: discordConfig.PollInterval(),
		}),
	}
	if s.approverFactory != nil {
		policyOptions = append(policyOptions, policy.WithApproverFactory(s.approverFactory))
	}
	if s.config.Audit.Enabled {
		// audit events are dropped, not waited for, when the queue is full
		queueConfig := memory.DefaultConfig()
		queueConfig.DropOnFull = true
		queue := memory.NewQueue[event.Event[policy.Decision]](queueConfig)
		publisher := event.NewPublisher[policy.Decision](queue)
		policyOptions = append(policyOptions, policy.WithPublisher(publisher))
		handler := s.auditHandler
		if handler == nil {
			handler = s.logDecision
		}
		s.listener = event.NewListener[policy.Decision](publisher, handler, s.logger)
		s.listener.Start(context.Background())
	}
	s.policy = policy.New(s.assessor, policyOptions...)
	s.logStartup()
	return nil
}

func (s *Service) logStartup() {
	fields := []zap.Field{zap.String("version", Version)}
	if s.config.Discord.Configured() {
		fields = append(fields, zap.Bool("approval", true), zap.String("channelID", s.config.Discord.ChannelID))
	} else {
		fields = append(fields, zap.Bool("approval", false))
	}
	fields = append(fields, zap.Bool("audit", s.config.Audit.Enabled))
	s.logger.Info("clawguard security gate loaded", fields...)
	if !s.config.Discord.Configured() {
		s.logger.Info("discord approval disabled, warnings will be logged but allowed")
	}
}

func (s *Service) logDecision(e *event.Event[policy.Decision]) {
	fields := []zap.Field{
		zap.String("requestID", e.Context.RequestID),
		zap.String("tool", e.Data.Tool),
		zap.Bool("allow", e.Data.Allow),
		zap.Int("timeTakenMs", e.Context.TimeTakenMs),
	}
	if e.Data.Reason != "" {
		fields = append(fields, zap.String("reason", e.Data.Reason))
	}
	if e.Data.Approval != "" {
		fields = append(fields, zap.String("approval", e.Data.Approval))
	}
	s.logger.Info("audit", fields...)
}

// Evaluate resolves the gate verdict for request. messenger is the host's
// messaging capability; the configured one is used when it is nil.
func (s *Service) Evaluate(ctx context.Context, request *action.Request, messenger messaging.Messenger) *verdict.Gate {
	if messenger == nil {
		messenger = s.messenger
	}
	return s.policy.Evaluate(ctx, request, messenger)
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Logger returns the service logger
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Close stops the audit trail and releases the detector session
func (s *Service) Close(ctx context.Context) error {
	if s.listener != nil {
		s.listener.Stop()
	}
	var err error
	for _, closer := range s.closers {
		if cErr := closer(); cErr != nil && err == nil {
			err = cErr
		}
	}
	if s.config.Tracing.Enabled {
		if tErr := tracing.Shutdown(ctx); tErr != nil && err == nil {
			err = tErr
		}
	}
	_ = s.logger.Sync()
	return err
}
