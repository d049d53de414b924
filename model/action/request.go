package action

import "strings"

// Tool identifies the host operation an action request asks for.
type Tool string

// Tools recognised by the gate. Anything else passes through unchecked.
const (
	ToolExec     Tool = "exec"      // run a shell command
	ToolWebFetch Tool = "web_fetch" // fetch a single URL
	ToolBrowser  Tool = "browser"   // drive a browser session
)

var toolAliases = map[string]Tool{
	"execute":   ToolExec,
	"fetch-url": ToolWebFetch,
	"browse":    ToolBrowser,
}

// Request represents a host action request intercepted before execution.
// The gate only reads it.
type Request struct {
	Tool       string                 `json:"tool" yaml:"tool"`
	Parameters map[string]interface{} `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Kind returns the normalised tool of the request.
func (r *Request) Kind() Tool {
	if r == nil {
		return ""
	}
	name := strings.ToLower(strings.TrimSpace(r.Tool))
	if alias, ok := toolAliases[name]; ok {
		return alias
	}
	return Tool(name)
}

// Param returns a string parameter, or "" when it is absent or not a string.
func (r *Request) Param(name string) string {
	if r == nil || r.Parameters == nil {
		return ""
	}
	value, ok := r.Parameters[name].(string)
	if !ok {
		return ""
	}
	return value
}
