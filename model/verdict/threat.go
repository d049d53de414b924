package verdict

// Severity of a detected threat as reported by the assessor.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Threat describes the primary threat behind a warn or block verdict.
type Threat struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Severity       Severity `json:"severity" yaml:"severity"`
	TeachingPrompt string   `json:"teaching_prompt,omitempty" yaml:"teaching_prompt,omitempty"`
}
