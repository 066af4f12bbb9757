package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/taskdeck/taskdeck/engine/core"
)

// Argument extraction helpers. Tool arguments arrive as a loose
// map[string]any; merge-patch semantics require telling "absent" apart
// from "present but empty", so everything goes through hasArg + typed
// readers instead of defaulted getters.

func args(req mcp.CallToolRequest) map[string]any {
	return req.GetArguments()
}

func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := args(req)[key]
	return ok
}

func argString(req mcp.CallToolRequest, key string) string {
	if v, ok := args(req)[key].(string); ok {
		return v
	}
	return ""
}

func argInt(req mcp.CallToolRequest, key string) int {
	switch v := args(req)[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func argStringSlice(req mcp.CallToolRequest, key string) []string {
	raw, ok := args(req)[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// argDate parses an optional timestamp argument. An empty string reads as
// nil, which on update means "clear the date".
func argDate(req mcp.CallToolRequest, key string) (*time.Time, error) {
	s := argString(req, key)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, core.Invalidf("invalid %s: %q is not an RFC 3339 timestamp or YYYY-MM-DD date", key, s)
		}
	}
	t = t.UTC()
	return &t, nil
}

func projectSearchFields(values []string) []core.ProjectSearchField {
	if values == nil {
		return nil
	}
	out := make([]core.ProjectSearchField, 0, len(values))
	for _, v := range values {
		out = append(out, core.ProjectSearchField(v))
	}
	return out
}

func taskSearchFields(values []string) []core.TaskSearchField {
	if values == nil {
		return nil
	}
	out := make([]core.TaskSearchField, 0, len(values))
	for _, v := range values {
		out = append(out, core.TaskSearchField(v))
	}
	return out
}
