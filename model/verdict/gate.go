package verdict

// Gate is the single verdict returned to the host for an action request.
// Exactly one of Allow and Block is set.
type Gate struct {
	Allow  bool   `json:"allow,omitempty"`
	Block  bool   `json:"block,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Allowed returns a verdict permitting the action.
func Allowed() *Gate {
	return &Gate{Allow: true}
}

// Blocked returns a verdict preventing the action.
func Blocked(reason string) *Gate {
	return &Gate{Block: true, Reason: reason}
}

// IsAllowed reports whether the host may execute the action.
func (g *Gate) IsAllowed() bool {
	return g != nil && g.Allow && !g.Block
}
