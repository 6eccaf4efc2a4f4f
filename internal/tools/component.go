package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/peixotorms/component-index/internal/catalog"
)

// GetComponentInput is the input schema for the get_component tool.
type GetComponentInput struct {
	Framework string `json:"framework"`
	Category  string `json:"category"`
	Component string `json:"component"`
	Variant   string `json:"variant"`
}

// GetComponentTool reads a component by its catalogue coordinates.
type GetComponentTool struct {
	cat *catalog.Catalog
}

// NewGetComponentTool creates the get_component tool.
func NewGetComponentTool(cat *catalog.Catalog) *GetComponentTool {
	return &GetComponentTool{cat: cat}
}

func (t *GetComponentTool) Name() string { return "get_component" }

func (t *GetComponentTool) Description() string {
	return `Get the source of a component by framework, category, component type and variant as reported by list_components. If the exact file does not exist, similar components are suggested.`
}

func (t *GetComponentTool) InputSchema() json.RawMessage {
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
      "description": "Category name, e.g. \"application\", \"components\", \"css\" or \"plugins\""
    },
    "component": {
      "type": "string",
      "description": "Component type, e.g. \"badges\""
    },
    "variant": {
      "type": "string",
      "description": "Variant name, e.g. \"1\""
    }
  },
  "required": ["framework", "category", "component", "variant"],
  "additionalProperties": false
}`, frameworkEnum(t.cat)))
}

func (t *GetComponentTool) Execute(_ context.Context, input json.RawMessage) (string, error) {
	var in GetComponentInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("parsing get_component input: %w", err)
	}
	if in.Framework == "" || in.Category == "" || in.Component == "" || in.Variant == "" {
		return "", fmt.Errorf("framework, category, component and variant are required")
	}

	comp, err := t.cat.Get(in.Framework, in.Category, in.Component, in.Variant)
	if err != nil {
		subject := in.Framework
		if errors.Is(err, catalog.ErrInvalidPath) {
			subject = path.Join(in.Framework, in.Category, in.Component, in.Variant)
		}
		return describeError(t.cat, err, subject)
	}

	title := fmt.Sprintf("%s: %s / %s / %s", comp.Framework.Name, in.Category, in.Component, in.Variant)
	return renderComponent(title, comp), nil
}

// GetComponentByPathInput is the input schema for the get_component_by_path tool.
type GetComponentByPathInput struct {
	Path string `json:"path"`
}

// GetComponentByPathTool reads any file below the component root.
type GetComponentByPathTool struct {
	cat *catalog.Catalog
}

// NewGetComponentByPathTool creates the get_component_by_path tool.
func NewGetComponentByPathTool(cat *catalog.Catalog) *GetComponentByPathTool {
	return &GetComponentByPathTool{cat: cat}
}

func (t *GetComponentByPathTool) Name() string { return "get_component_by_path" }

func (t *GetComponentByPathTool) Description() string {
	return `Get a component file by its path relative to the component directory, as returned by search_components.`
}

func (t *GetComponentByPathTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "path": {
      "type": "string",
      "description": "Path relative to the component directory, e.g. \"hyperui/application/badges/1.html\""
    }
  },
  "required": ["path"],
  "additionalProperties": false
}`)
}

func (t *GetComponentByPathTool) Execute(_ context.Context, input json.RawMessage) (string, error) {
	var in GetComponentByPathInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("parsing get_component_by_path input: %w", err)
	}

	comp, err := t.cat.GetByPath(in.Path)
	if err != nil {
		return describeError(t.cat, err, in.Path)
	}
	return renderComponent(comp.RelPath, comp), nil
}
