package approval

import (
	"strconv"
	"strings"
	"time"

	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
)

const (
	// ApproveSymbol is the reaction granting approval.
	ApproveSymbol = "✅"
	// DenySymbol is the reaction denying approval.
	DenySymbol = "❌"

	maxInputLength    = 200
	maxTeachingLength = 300
	ellipsis          = "..."
	fallbackGlyph     = "🔍"
)

var glyphs = map[action.ContentKind]string{
	action.ContentURL:     "🔗",
	action.ContentCommand: "⚡",
	action.ContentSkill:   "🧩",
	action.ContentMessage: "💬",
}

// Format renders the approval message for content of the given kind. It
// performs no I/O; a non-positive timeout renders the default timeout.
func Format(content string, kind action.ContentKind, threat *verdict.Threat, timeout time.Duration) string {
	glyph, ok := glyphs[kind]
	if !ok {
		glyph = fallbackGlyph
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var b strings.Builder
	b.WriteString("⚠️ **ClawGuard Warning - Approval Required**\n\n")
	b.WriteString(glyph + " **Type:** " + strings.ToUpper(string(kind)) + "\n")
	b.WriteString("**Input:** `" + truncate(content, maxInputLength) + "`\n\n")
	if threat != nil {
		b.WriteString("**Threat Detected:** " + threat.Name + "\n")
		b.WriteString("**Severity:** " + strings.ToUpper(string(threat.Severity)) + "\n")
		b.WriteString("**ID:** " + threat.ID + "\n\n")
		if threat.TeachingPrompt != "" {
			b.WriteString("**Why this is flagged:**\n" + truncate(threat.TeachingPrompt, maxTeachingLength) + "\n\n")
		}
	}
	seconds := timeout.Milliseconds() / 1000
	b.WriteString("**Do you want to proceed?**\n")
	b.WriteString("React with " + ApproveSymbol + " to approve or " + DenySymbol + " to deny (timeout: " + strconv.FormatInt(seconds, 10) + "s)")
	return b.String()
}

// truncate keeps the first limit characters, appending an ellipsis when
// anything was cut.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + ellipsis
}
