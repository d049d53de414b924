package clawguard

import (
	"github.com/viant/clawguard/policy"
	"github.com/viant/clawguard/service/assessor"
	"github.com/viant/clawguard/service/messaging"
	"github.com/viant/clawguard/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service
type Option func(s *Service)

// WithConfig sets the configuration; DefaultConfig is used otherwise
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithLogger sets the logger; one is built from Config.Log otherwise
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAssessor sets the risk assessor, replacing the configured command
func WithAssessor(assessor assessor.Assessor) Option {
	return func(s *Service) { s.assessor = assessor }
}

// WithMessenger sets the messaging capability used when the host passes none
func WithMessenger(messenger messaging.Messenger) Option {
	return func(s *Service) { s.messenger = messenger }
}

// WithApproverFactory replaces the approval workflow
func WithApproverFactory(factory policy.ApproverFactory) Option {
	return func(s *Service) { s.approverFactory = factory }
}

// WithAuditHandler receives every decision event when audit is enabled
func WithAuditHandler(handler AuditHandler) Option {
	return func(s *Service) { s.auditHandler = handler }
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
