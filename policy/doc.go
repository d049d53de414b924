// Package policy is the gate decision policy. For every intercepted action
// request it extracts the actionable content, obtains a verdict for each item
// and resolves a single allow or block verdict, running the human approval
// workflow for warn-level items when approval is configured.
//
// The gate fails closed: assessor errors, unknown verdicts, denied, timed out
// and failed approvals all block. The one open-fail branch is a warn verdict
// while approval is not configured, which is allowed and logged.
package policy
