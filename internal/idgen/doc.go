// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Approval requests and in-memory messages take their identifiers from here;
// callers should treat identifiers as opaque strings.
package idgen
