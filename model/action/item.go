package action

// ContentKind tags the actionable content extracted from a request.
type ContentKind string

const (
	ContentCommand ContentKind = "command"
	ContentURL     ContentKind = "url"
	ContentSkill   ContentKind = "skill"
	ContentMessage ContentKind = "message"
)

// Item is a single piece of actionable content subject to risk assessment.
type Item struct {
	Kind  ContentKind `json:"kind"`
	Value string      `json:"value"`
}
