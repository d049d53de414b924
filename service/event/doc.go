// Package event carries gate decisions to side-channel consumers such as an
// audit log. Publishing never affects the verdict returned to the host.
package event
