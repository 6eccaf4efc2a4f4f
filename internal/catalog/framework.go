// Package catalog builds and queries an in-memory index of UI component
// snippets stored on disk, grouped by framework.
//
// Each framework keeps its files in one of four directory layouts:
//   - nested:        <root>/<fw>/<category>/<type>/<variant><ext>
//   - component-dir: <root>/<fw>/<type>/<variant><ext>
//   - flat:          <root>/<fw>/<variant><ext>
//   - two-section:   <root>/<fw>/css/<variant>.css and
//     <root>/<fw>/plugins/<type>/<variant><ext>
//
// The catalogue is built once by Build and never modified afterwards, so a
// single *Catalog may be shared by any number of goroutines.
package catalog

// Framework describes one source of components.
type Framework struct {
	ID     string // directory name under the root, e.g. "hyperui"
	Name   string // display name
	Ext    string // file extension including the dot, e.g. ".html"
	Deps   string // what a page needs to load for the snippets to render
	Layout Layout
}

// DefaultFrameworks returns the fixed set of known frameworks, in display order.
func DefaultFrameworks() []Framework {
	return []Framework{
		{
			ID:     "html",
			Name:   "Plain HTML",
			Ext:    ".html",
			Deps:   "None (vanilla HTML and CSS)",
			Layout: LayoutFlat,
		},
		{
			ID:     "hyperui",
			Name:   "HyperUI",
			Ext:    ".html",
			Deps:   "Tailwind CSS",
			Layout: LayoutNested,
		},
		{
			ID:     "daisyui",
			Name:   "daisyUI",
			Ext:    ".html",
			Deps:   "Tailwind CSS + daisyUI plugin",
			Layout: LayoutComponentDir,
		},
		{
			ID:     "flowbite",
			Name:   "Flowbite",
			Ext:    ".html",
			Deps:   "Tailwind CSS + Flowbite JS",
			Layout: LayoutComponentDir,
		},
		{
			ID:     "tailwind",
			Name:   "Tailwind CSS",
			Ext:    ".js",
			Deps:   "Tailwind CSS v4",
			Layout: LayoutTwoSection,
		},
	}
}

// FrameworkIDs returns the ids of the given frameworks in order.
func FrameworkIDs(frameworks []Framework) []string {
	ids := make([]string, 0, len(frameworks))
	for _, f := range frameworks {
		ids = append(ids, f.ID)
	}
	return ids
}
