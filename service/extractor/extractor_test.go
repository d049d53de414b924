package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/clawguard/model/action"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		name     string
		request  *action.Request
		expected []action.Item
	}{
		{
			name:     "nil request",
			request:  nil,
			expected: nil,
		},
		{
			name:     "exec command",
			request:  &action.Request{Tool: "exec", Parameters: map[string]interface{}{"command": "rm -rf /tmp/x"}},
			expected: []action.Item{{Kind: action.ContentCommand, Value: "rm -rf /tmp/x"}},
		},
		{
			name:     "execute alias",
			request:  &action.Request{Tool: "execute", Parameters: map[string]interface{}{"command": "ls"}},
			expected: []action.Item{{Kind: action.ContentCommand, Value: "ls"}},
		},
		{
			name:     "exec empty command",
			request:  &action.Request{Tool: "exec", Parameters: map[string]interface{}{"command": ""}},
			expected: nil,
		},
		{
			name:     "exec missing parameters",
			request:  &action.Request{Tool: "exec"},
			expected: nil,
		},
		{
			name:     "web fetch",
			request:  &action.Request{Tool: "web_fetch", Parameters: map[string]interface{}{"url": "https://example.com"}},
			expected: []action.Item{{Kind: action.ContentURL, Value: "https://example.com"}},
		},
		{
			name: "browser collects every url parameter in order",
			request: &action.Request{Tool: "browser", Parameters: map[string]interface{}{
				"url":       "https://b.example",
				"targetUrl": "https://a.example",
				"action":    "open",
			}},
			expected: []action.Item{
				{Kind: action.ContentURL, Value: "https://a.example"},
				{Kind: action.ContentURL, Value: "https://b.example"},
			},
		},
		{
			name: "browser keeps duplicates",
			request: &action.Request{Tool: "browse", Parameters: map[string]interface{}{
				"url":       "https://a.example",
				"targetUrl": "https://a.example",
			}},
			expected: []action.Item{
				{Kind: action.ContentURL, Value: "https://a.example"},
				{Kind: action.ContentURL, Value: "https://a.example"},
			},
		},
		{
			name:     "command parameter ignored for fetch",
			request:  &action.Request{Tool: "web_fetch", Parameters: map[string]interface{}{"command": "ls"}},
			expected: nil,
		},
		{
			name:     "unknown tool",
			request:  &action.Request{Tool: "write_file", Parameters: map[string]interface{}{"command": "ls", "url": "https://x"}},
			expected: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, tc.expected, Extract(tc.request))
		})
	}
}
