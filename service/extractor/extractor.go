// Package extractor normalises an intercepted action request into the
// actionable content the gate must assess.
package extractor

import "github.com/viant/clawguard/model/action"

// Parameter names read from action requests.
const (
	ParamCommand   = "command"
	ParamURL       = "url"
	ParamTargetURL = "targetUrl"
)

// browserURLParams lists URL-bearing browser parameters in extraction order.
var browserURLParams = []string{ParamTargetURL, ParamURL}

// Extract returns at most one command item followed by zero or more URL
// items. Unknown tools and missing parameters yield no items.
func Extract(request *action.Request) []action.Item {
	if request == nil {
		return nil
	}
	var items []action.Item
	switch request.Kind() {
	case action.ToolExec:
		if command := request.Param(ParamCommand); command != "" {
			items = append(items, action.Item{Kind: action.ContentCommand, Value: command})
		}
	case action.ToolWebFetch:
		if URL := request.Param(ParamURL); URL != "" {
			items = append(items, action.Item{Kind: action.ContentURL, Value: URL})
		}
	case action.ToolBrowser:
		for _, name := range browserURLParams {
			if URL := request.Param(name); URL != "" {
				items = append(items, action.Item{Kind: action.ContentURL, Value: URL})
			}
		}
	}
	return items
}
