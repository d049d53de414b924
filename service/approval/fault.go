package approval

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMessenger is returned when no messaging capability was supplied.
	ErrNoMessenger = errors.New("message tool not available")

	// ErrNoMessageID is returned when the messenger accepted a message but
	// did not identify it.
	ErrNoMessageID = errors.New("failed to send approval message")

	// ErrNilRequest is returned when the workflow is started without a request.
	ErrNilRequest = errors.New("nil approval request")
)

// Stage names the workflow step a fault was raised in.
type Stage string

const (
	StageInit   Stage = "init"
	StageSend   Stage = "send"
	StageReact  Stage = "react"
	StagePoll   Stage = "poll"
	StageNotify Stage = "notify"
)

// Fault is a failure of a single workflow step.
type Fault struct {
	Stage Stage
	Err   error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("approval %s failed: %v", f.Stage, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

func newFault(stage Stage, err error) *Fault {
	return &Fault{Stage: stage, Err: err}
}
