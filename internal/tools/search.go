package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/peixotorms/component-index/internal/catalog"
)

// SearchComponentsInput is the input schema for the search_components tool.
type SearchComponentsInput struct {
	Query     string `json:"query"`
	Framework string `json:"framework,omitempty"`
}

// SearchComponentsTool finds component files by keywords in their path.
type SearchComponentsTool struct {
	cat *catalog.Catalog
}

// NewSearchComponentsTool creates the search_components tool.
func NewSearchComponentsTool(cat *catalog.Catalog) *SearchComponentsTool {
	return &SearchComponentsTool{cat: cat}
}

func (t *SearchComponentsTool) Name() string { return "search_components" }

func (t *SearchComponentsTool) Description() string {
	return fmt.Sprintf(`Search component files by keywords. Every whitespace-separated keyword must appear (case-insensitively) in the file's path. Returns at most %d paths; pass one to get_component_by_path.`, catalog.MaxResults)
}

func (t *SearchComponentsTool) InputSchema() json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Keywords, e.g. \"badge dark\""
    },
    "framework": {
      "type": "string",
      "enum": %s,
      "description": "Restrict the search to one framework. Defaults to \"all\"."
    }
  },
  "required": ["query"],
  "additionalProperties": false
}`, frameworkEnum(t.cat, catalog.AllFrameworks)))
}

func (t *SearchComponentsTool) Execute(_ context.Context, input json.RawMessage) (string, error) {
	var in SearchComponentsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("parsing search_components input: %w", err)
	}
	if strings.TrimSpace(in.Query) == "" {
		return "", fmt.Errorf("query is required")
	}

	// One extra match tells whether the list was cut off.
	matches, err := t.cat.SearchN(in.Query, in.Framework, catalog.MaxResults+1)
	if err != nil {
		return describeError(t.cat, err, in.Framework)
	}
	truncated := len(matches) > catalog.MaxResults
	if truncated {
		matches = matches[:catalog.MaxResults]
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No components matching %q.", in.Query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d component(s) matching %q:\n\n", len(matches), in.Query)
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	if truncated {
		fmt.Fprintf(&b, "\nShowing the first %d results; add keywords to narrow the search.\n", catalog.MaxResults)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
