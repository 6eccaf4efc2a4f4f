package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Type is a component type and its variants in directory order.
type Type struct {
	Name     string
	Variants []string
}

// Category groups component types.
type Category struct {
	Name  string
	Types []Type
}

// Categories is an ordered list of categories.
type Categories []Category

// Find returns the named category, if present.
func (cs Categories) Find(name string) (Category, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Names returns the category names in order.
func (cs Categories) Names() []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return names
}

// VariantCount is the number of variants across all categories and types.
func (cs Categories) VariantCount() int {
	n := 0
	for _, c := range cs {
		for _, t := range c.Types {
			n += len(t.Variants)
		}
	}
	return n
}

// Catalog is the immutable index built by Build.
type Catalog struct {
	root       string
	frameworks []Framework           // every known descriptor
	indexed    []string              // ids present on disk, descriptor order
	entries    map[string]Categories // keyed by framework id
	log        *slog.Logger

	// suggest finds candidates for a missing component; Search by default.
	suggest func(query, framework string) ([]string, error)
}

// FrameworkSummary is one row of Frameworks.
type FrameworkSummary struct {
	Framework
	Variants   int
	Categories []string
}

// Build scans root once and returns the catalogue. Frameworks whose
// directory is missing are left out; unreadable directories count as empty.
func Build(root string, frameworks []Framework, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c := &Catalog{
		root:       root,
		frameworks: frameworks,
		entries:    make(map[string]Categories),
		log:        log,
	}
	c.suggest = c.Search

	for _, fw := range frameworks {
		dir := filepath.Join(root, fw.ID)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			log.Debug("framework directory not found", "framework", fw.ID, "dir", dir)
			continue
		}
		ops, ok := layouts[fw.Layout]
		if !ok {
			log.Warn("framework has unknown layout", "framework", fw.ID, "layout", fw.Layout)
			continue
		}
		cats := ops.index(dir, fw, log)
		c.entries[fw.ID] = cats
		c.indexed = append(c.indexed, fw.ID)
		log.Debug("indexed framework", "framework", fw.ID, "layout", fw.Layout, "variants", cats.VariantCount())
	}

	return c
}

// Root returns the component root directory.
func (c *Catalog) Root() string { return c.root }

// Known returns every framework descriptor, indexed or not.
func (c *Catalog) Known() []Framework { return c.frameworks }

// Framework returns the descriptor for id if it is present in the catalogue.
func (c *Catalog) Framework(id string) (Framework, bool) {
	if _, ok := c.entries[id]; !ok {
		return Framework{}, false
	}
	for _, fw := range c.frameworks {
		if fw.ID == id {
			return fw, true
		}
	}
	return Framework{}, false
}

// Frameworks summarises every indexed framework.
func (c *Catalog) Frameworks() []FrameworkSummary {
	out := make([]FrameworkSummary, 0, len(c.indexed))
	for _, id := range c.indexed {
		fw, _ := c.Framework(id)
		cats := c.entries[id]
		out = append(out, FrameworkSummary{
			Framework:  fw,
			Variants:   cats.VariantCount(),
			Categories: cats.Names(),
		})
	}
	return out
}

// Components returns the categories of framework id, optionally narrowed to
// one category. A category that does not exist yields an empty result.
func (c *Catalog) Components(id, category string) (Framework, Categories, error) {
	fw, ok := c.Framework(id)
	if !ok {
		return Framework{}, nil, unknownFramework(id)
	}
	cats := c.entries[id]
	if category == "" {
		return fw, cats, nil
	}
	if cat, ok := cats.Find(category); ok {
		return fw, Categories{cat}, nil
	}
	return fw, Categories{}, nil
}

// Resolve maps coordinates to an absolute file path using the framework's
// layout. It does not check that the file exists.
func (c *Catalog) Resolve(id, category, typ, variant string) (string, error) {
	fw, ok := c.Framework(id)
	if !ok {
		return "", unknownFramework(id)
	}
	return layouts[fw.Layout].resolve(filepath.Join(c.root, fw.ID), fw, category, typ, variant), nil
}
