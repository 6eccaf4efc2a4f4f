package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/peixotorms/component-index/internal/catalog"
)

// Register adds every component tool backed by cat to r.
func Register(r *Registry, cat *catalog.Catalog) {
	r.Register(NewListFrameworksTool(cat))
	r.Register(NewListComponentsTool(cat))
	r.Register(NewGetComponentTool(cat))
	r.Register(NewSearchComponentsTool(cat))
	r.Register(NewGetComponentByPathTool(cat))
}

// frameworkEnum returns the JSON array of known framework ids, optionally
// followed by extra values.
func frameworkEnum(cat *catalog.Catalog, extra ...string) string {
	ids := append(catalog.FrameworkIDs(cat.Known()), extra...)
	data, _ := json.Marshal(ids)
	return string(data)
}

// availableFrameworks lists indexed ids for error messages.
func availableFrameworks(cat *catalog.Catalog) string {
	var ids []string
	for _, s := range cat.Frameworks() {
		ids = append(ids, s.ID)
	}
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

// describeError turns a catalog error into a text result. subject is the
// framework id or path the caller asked for. Errors outside the catalog's
// taxonomy are returned unchanged.
func describeError(cat *catalog.Catalog, err error, subject string) (string, error) {
	var nf *catalog.NotFoundError
	switch {
	case errors.Is(err, catalog.ErrUnknownFramework):
		return fmt.Sprintf("Unknown framework: %q. Available frameworks: %s.", subject, availableFrameworks(cat)), nil
	case errors.Is(err, catalog.ErrInvalidPath):
		return fmt.Sprintf("Invalid path: %q. Paths are relative to the component directory and may not contain \"..\".", subject), nil
	case errors.As(err, &nf):
		if len(nf.Suggestions) == 0 {
			return fmt.Sprintf("Component not found: %s", nf.Path), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Component not found: %s\n\nSimilar components:\n", nf.Path)
		for _, s := range nf.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return "", err
}

// renderComponent formats a component with its metadata and a fenced body.
func renderComponent(title string, comp *catalog.Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if comp.Framework.ID != "" {
		fmt.Fprintf(&b, "Framework: %s\n", comp.Framework.Name)
		fmt.Fprintf(&b, "Dependencies: %s\n", comp.Framework.Deps)
	}
	fmt.Fprintf(&b, "Path: `%s`\n\n", comp.RelPath)
	fence := codeFence(comp.Content)
	fmt.Fprintf(&b, "%s%s\n%s\n%s", fence, comp.Syntax, strings.TrimRight(comp.Content, "\n"), fence)
	return b.String()
}

// codeFence returns a backtick fence longer than any run inside content.
func codeFence(content string) string {
	fence := "```"
	for strings.Contains(content, fence) {
		fence += "`"
	}
	return fence
}
