// Package assessor is the client side of the external risk-assessment
// engine. The gate hands every extracted item to an Assessor and consumes
// the resulting verdict; classification itself happens elsewhere.
package assessor

import (
	"context"

	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
)

// Assessor classifies a single actionable item.
type Assessor interface {
	Assess(ctx context.Context, item action.Item) (verdict.Verdict, error)
}

// Func adapts a function to Assessor.
type Func func(ctx context.Context, item action.Item) (verdict.Verdict, error)

// Assess calls fn.
func (fn Func) Assess(ctx context.Context, item action.Item) (verdict.Verdict, error) {
	return fn(ctx, item)
}

// Static returns verdicts keyed by item value, falling back to Allow. It
// serves dry runs and tests.
type Static map[string]verdict.Verdict

// Assess looks item up by value.
func (s Static) Assess(_ context.Context, item action.Item) (verdict.Verdict, error) {
	if v, ok := s[item.Value]; ok {
		return v, nil
	}
	return verdict.Allow{}, nil
}
