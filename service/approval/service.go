package approval

import (
	"context"
)

// Approver obtains a human decision for a request. Implementations never
// return an error: every failure resolves to a denying Result.
type Approver interface {
	RequestApproval(ctx context.Context, r *Request) *Result
}

// ApproverFunc adapts a function to Approver.
type ApproverFunc func(ctx context.Context, r *Request) *Result

// RequestApproval calls fn.
func (fn ApproverFunc) RequestApproval(ctx context.Context, r *Request) *Result {
	return fn(ctx, r)
}
