package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/peixotorms/component-index/internal/catalog"
)

// ListFrameworksTool reports every indexed framework.
type ListFrameworksTool struct {
	cat *catalog.Catalog
}

// NewListFrameworksTool creates the list_frameworks tool.
func NewListFrameworksTool(cat *catalog.Catalog) *ListFrameworksTool {
	return &ListFrameworksTool{cat: cat}
}

func (t *ListFrameworksTool) Name() string { return "list_frameworks" }

func (t *ListFrameworksTool) Description() string {
	return `List the available UI component frameworks with their dependencies, component counts and categories.`
}

func (t *ListFrameworksTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {},
  "additionalProperties": false
}`)
}

func (t *ListFrameworksTool) Execute(_ context.Context, _ json.RawMessage) (string, error) {
	summaries := t.cat.Frameworks()
	if len(summaries) == 0 {
		return fmt.Sprintf("No component frameworks found in %s.", t.cat.Root()), nil
	}

	var b strings.Builder
	b.WriteString("# Available frameworks\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "\n## %s (`%s`)\n", s.Name, s.ID)
		fmt.Fprintf(&b, "- Dependencies: %s\n", s.Deps)
		fmt.Fprintf(&b, "- Components: %d\n", s.Variants)
		fmt.Fprintf(&b, "- Categories: %s\n", strings.Join(s.Categories, ", "))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ListComponentsInput is the input schema for the list_components tool.
type ListComponentsInput struct {
	Framework string `json:"framework"`
	Category  string `json:"category,omitempty"`
}

// ListComponentsTool lists the categories, types and variants of a framework.
type ListComponentsTool struct {
	cat *catalog.Catalog
}

// NewListComponentsTool creates the list_components tool.
func NewListComponentsTool(cat *catalog.Catalog) *ListComponentsTool {
	return &ListComponentsTool{cat: cat}
}

func (t *ListComponentsTool) Name() string { return "list_components" }

func (t *ListComponentsTool) Description() string {
	return `List the components of a framework, grouped by category and component type. Each type lists its variant names; pass them to get_component.`
}

func (t *ListComponentsTool) InputSchema() json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
  "type": "object",
  "properties": {
    "framework": {
      "type": "string",
      "enum": %s,
      "description": "Framework id"
    },
    "category": {
      "type": "string",
      "description": "Only list this category"
    }
  },
  "required": ["framework"],
  "additionalProperties": false
}`, frameworkEnum(t.cat)))
}

func (t *ListComponentsTool) Execute(_ context.Context, input json.RawMessage) (string, error) {
	var in ListComponentsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("parsing list_components input: %w", err)
	}
	if in.Framework == "" {
		return "", fmt.Errorf("framework is required")
	}

	fw, cats, err := t.cat.Components(in.Framework, in.Category)
	if err != nil {
		return describeError(t.cat, err, in.Framework)
	}

	if len(cats) == 0 {
		_, all, _ := t.cat.Components(in.Framework, "")
		return fmt.Sprintf("No category %q in %s. Categories: %s.", in.Category, fw.Name, strings.Join(all.Names(), ", ")), nil
	}
	if cats.VariantCount() == 0 {
		return fmt.Sprintf("%s has no components.", fw.Name), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s components\n\n", fw.Name)
	fmt.Fprintf(&b, "Dependencies: %s\n", fw.Deps)
	for _, c := range cats {
		fmt.Fprintf(&b, "\n## %s\n", c.Name)
		for _, typ := range c.Types {
			fmt.Fprintf(&b, "- **%s** (%d): %s\n", typ.Name, len(typ.Variants), strings.Join(typ.Variants, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
