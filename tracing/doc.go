// Package tracing wraps OpenTelemetry so that gate evaluation and approval
// workflows can be traced without importing the SDK everywhere. Until Init is
// called spans go to the global no-op provider.
package tracing
