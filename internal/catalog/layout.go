package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Layout identifies how a framework arranges its files on disk.
type Layout int

const (
	LayoutNested       Layout = iota // category/type/variant
	LayoutComponentDir               // type/variant
	LayoutFlat                       // variant
	LayoutTwoSection                 // css/variant + plugins/type/variant
)

// Synthetic category and type keys for layouts that have fewer directory
// levels than the catalogue shape.
const (
	CategoryComponents = "components"
	TypeSnippets       = "snippets"
	CategoryCSS        = "css"
	CategoryPlugins    = "plugins"
	TypeStyles         = "styles"
)

// pluginStylesVariant is the one plugin variant stored as a stylesheet.
// Plugin directories ship a script per variant and a shared variants.css;
// the name collides with the variant namespace, so it is special-cased here
// and must not be extended to other names.
const pluginStylesVariant = "variants"

func (l Layout) String() string {
	switch l {
	case LayoutNested:
		return "nested"
	case LayoutComponentDir:
		return "component-dir"
	case LayoutFlat:
		return "flat"
	case LayoutTwoSection:
		return "two-section"
	}
	return "unknown"
}

// layoutOps keeps the walker and the resolver of a layout side by side so
// that a variant found by index always resolves back to the file it came from.
type layoutOps struct {
	index   func(dir string, fw Framework, log *slog.Logger) Categories
	resolve func(dir string, fw Framework, category, typ, variant string) string
}

var layouts = map[Layout]layoutOps{
	LayoutNested:       {index: indexNested, resolve: resolveNested},
	LayoutComponentDir: {index: indexComponentDir, resolve: resolveComponentDir},
	LayoutFlat:         {index: indexFlat, resolve: resolveFlat},
	LayoutTwoSection:   {index: indexTwoSection, resolve: resolveTwoSection},
}

// --- nested ---

func indexNested(dir string, fw Framework, log *slog.Logger) Categories {
	var cats Categories
	for _, cat := range subdirs(dir, log) {
		catDir := filepath.Join(dir, cat)
		var types []Type
		for _, typ := range subdirs(catDir, log) {
			types = append(types, Type{
				Name:     typ,
				Variants: variantsWithExt(filepath.Join(catDir, typ), fw.Ext, log),
			})
		}
		cats = append(cats, Category{Name: cat, Types: types})
	}
	return cats
}

func resolveNested(dir string, fw Framework, category, typ, variant string) string {
	return filepath.Join(dir, category, typ, variant+fw.Ext)
}

// --- component-dir ---

func indexComponentDir(dir string, fw Framework, log *slog.Logger) Categories {
	var types []Type
	for _, typ := range subdirs(dir, log) {
		types = append(types, Type{
			Name:     typ,
			Variants: variantsWithExt(filepath.Join(dir, typ), fw.Ext, log),
		})
	}
	return Categories{{Name: CategoryComponents, Types: types}}
}

func resolveComponentDir(dir string, fw Framework, _, typ, variant string) string {
	return filepath.Join(dir, typ, variant+fw.Ext)
}

// --- flat ---

func indexFlat(dir string, fw Framework, log *slog.Logger) Categories {
	return Categories{{
		Name:  CategoryComponents,
		Types: []Type{{Name: TypeSnippets, Variants: variantsWithExt(dir, fw.Ext, log)}},
	}}
}

func resolveFlat(dir string, fw Framework, _, _, variant string) string {
	return filepath.Join(dir, variant+fw.Ext)
}

// --- two-section ---

func indexTwoSection(dir string, fw Framework, log *slog.Logger) Categories {
	css := Category{
		Name:  CategoryCSS,
		Types: []Type{{Name: TypeStyles, Variants: variantsWithExt(filepath.Join(dir, "css"), ".css", log)}},
	}

	pluginsDir := filepath.Join(dir, "plugins")
	var types []Type
	for _, typ := range subdirs(pluginsDir, log) {
		typDir := filepath.Join(pluginsDir, typ)
		var variants []string
		for _, v := range variantsWithExt(typDir, fw.Ext, log) {
			if v != pluginStylesVariant {
				variants = append(variants, v)
			}
		}
		if fileExists(filepath.Join(typDir, pluginStylesVariant+".css")) {
			variants = append(variants, pluginStylesVariant)
		}
		types = append(types, Type{Name: typ, Variants: variants})
	}

	return Categories{css, {Name: CategoryPlugins, Types: types}}
}

func resolveTwoSection(dir string, fw Framework, category, typ, variant string) string {
	if category == CategoryCSS {
		return filepath.Join(dir, "css", variant+".css")
	}
	ext := fw.Ext
	if variant == pluginStylesVariant {
		ext = ".css"
	}
	return filepath.Join(dir, "plugins", typ, variant+ext)
}

// --- directory helpers ---

// subdirs lists directory names inside dir. An unreadable directory yields nil.
func subdirs(dir string, log *slog.Logger) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// variantsWithExt lists the base names of regular files in dir ending in ext.
func variantsWithExt(dir, ext string, log *slog.Logger) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
