package approval

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
)

func TestFormat(t *testing.T) {
	longTeaching := strings.Repeat("t", 400)
	testCases := []struct {
		name     string
		content  string
		kind     action.ContentKind
		threat   *verdict.Threat
		timeout  time.Duration
		expected string
	}{
		{
			name:    "long command without threat",
			content: strings.Repeat("a", 250),
			kind:    action.ContentCommand,
			timeout: 60 * time.Second,
			expected: "⚠️ **ClawGuard Warning - Approval Required**\n\n" +
				"⚡ **Type:** COMMAND\n" +
				"**Input:** `" + strings.Repeat("a", 200) + "...`\n\n" +
				"**Do you want to proceed?**\n" +
				"React with ✅ to approve or ❌ to deny (timeout: 60s)",
		},
		{
			name:    "url with threat and long teaching prompt",
			content: "https://paste.example/raw/x",
			kind:    action.ContentURL,
			threat: &verdict.Threat{
				ID:             "URL-042",
				Name:           "Paste site payload",
				Severity:       verdict.SeverityMedium,
				TeachingPrompt: longTeaching,
			},
			timeout: 2500 * time.Millisecond,
			expected: "⚠️ **ClawGuard Warning - Approval Required**\n\n" +
				"🔗 **Type:** URL\n" +
				"**Input:** `https://paste.example/raw/x`\n\n" +
				"**Threat Detected:** Paste site payload\n" +
				"**Severity:** MEDIUM\n" +
				"**ID:** URL-042\n\n" +
				"**Why this is flagged:**\n" + strings.Repeat("t", 300) + "...\n\n" +
				"**Do you want to proceed?**\n" +
				"React with ✅ to approve or ❌ to deny (timeout: 2s)",
		},
		{
			name:    "threat without teaching prompt and exact length input",
			content: strings.Repeat("b", 200),
			kind:    action.ContentSkill,
			threat:  &verdict.Threat{ID: "SK-1", Name: "Unsigned skill", Severity: verdict.SeverityLow},
			timeout: 0,
			expected: "⚠️ **ClawGuard Warning - Approval Required**\n\n" +
				"🧩 **Type:** SKILL\n" +
				"**Input:** `" + strings.Repeat("b", 200) + "`\n\n" +
				"**Threat Detected:** Unsigned skill\n" +
				"**Severity:** LOW\n" +
				"**ID:** SK-1\n\n" +
				"**Do you want to proceed?**\n" +
				"React with ✅ to approve or ❌ to deny (timeout: 60s)",
		},
		{
			name:    "unknown kind uses fallback glyph",
			content: "hi",
			kind:    action.ContentKind("prompt"),
			timeout: 999 * time.Millisecond,
			expected: "⚠️ **ClawGuard Warning - Approval Required**\n\n" +
				"🔍 **Type:** PROMPT\n" +
				"**Input:** `hi`\n\n" +
				"**Do you want to proceed?**\n" +
				"React with ✅ to approve or ❌ to deny (timeout: 0s)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(tc.content, tc.kind, tc.threat, tc.timeout))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "żó...", truncate("żółw", 2))
}
