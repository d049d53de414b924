// Package clawguard gates automated tool calls before they run.
//
// Every tool call is reduced to the commands and URLs it carries, each item
// is risk assessed, and medium-risk findings are put in front of a human over
// a messaging channel (Discord reactions). The gate fails closed: anything
// other than an explicit allow or an explicit human approval blocks the call.
//
// Hosts embed the gate through the Service facade:
//
//	cfg, _ := clawguard.Load(ctx, "clawguard.yaml")
//	srv, _ := clawguard.New(ctx, clawguard.WithConfig(cfg))
//	defer srv.Close(ctx)
//	gate := srv.Evaluate(ctx, &action.Request{Tool: "exec", Parameters: params}, nil)
//	if !gate.IsAllowed() {
//		return errors.New(gate.Reason)
//	}
package clawguard
