package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Component is a component file read from disk.
type Component struct {
	Framework Framework // zero when the path is outside any indexed framework
	Path      string    // absolute path
	RelPath   string    // slash-separated path relative to the root
	Syntax    string    // extension without the dot, "text" when there is none
	Content   string
}

// Get reads the component at the given coordinates. When the file does not
// exist, a search for "<typ> <variant>" within the framework supplies
// suggestions; the returned error is a *NotFoundError either way, without
// suggestions if that search fails.
func (c *Catalog) Get(id, category, typ, variant string) (*Component, error) {
	fw, ok := c.Framework(id)
	if !ok {
		return nil, unknownFramework(id)
	}
	for _, part := range []string{category, typ, variant} {
		if !safeSegment(part) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, part)
		}
	}

	path, err := c.Resolve(id, category, typ, variant)
	if err != nil {
		return nil, err
	}
	rel := c.relative(path)

	comp, err := c.read(path, rel)
	if err == nil {
		comp.Framework = fw
		return comp, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	suggestions, serr := c.suggest(typ+" "+variant, id)
	if serr != nil {
		c.log.Warn("suggestion search failed", "framework", id, "path", rel, "error", serr)
		return nil, &NotFoundError{Path: rel}
	}
	return nil, &NotFoundError{Path: rel, Suggestions: suggestions}
}

// GetByPath reads a component by its path relative to the root. Paths that
// are absolute, contain a ".." segment, or otherwise resolve outside the
// root are rejected with ErrInvalidPath before the filesystem is touched.
func (c *Catalog) GetByPath(rel string) (*Component, error) {
	full, err := c.join(rel)
	if err != nil {
		return nil, err
	}
	comp, err := c.read(full, filepath.ToSlash(filepath.Clean(rel)))
	if err != nil {
		return nil, err
	}
	if first, _, _ := strings.Cut(comp.RelPath, "/"); first != "" {
		if fw, ok := c.Framework(first); ok {
			comp.Framework = fw
		}
	}
	return comp, nil
}

// join validates rel and returns its absolute location under the root.
func (c *Catalog) join(rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, `\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	for _, seg := range strings.FieldsFunc(rel, isSeparator) {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
		}
	}

	root := filepath.Clean(c.root)
	full := filepath.Join(root, rel)
	back, err := filepath.Rel(root, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return full, nil
}

// read loads a whole file in one go.
func (c *Catalog) read(path, rel string) (*Component, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: rel}
		}
		return nil, fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: rel}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}

	return &Component{
		Path:    path,
		RelPath: rel,
		Syntax:  Syntax(path),
		Content: string(data),
	}, nil
}

func (c *Catalog) relative(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Syntax returns the code-fence tag for a file name.
func Syntax(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "text"
	}
	return ext
}

// safeSegment reports whether s can be used as a single path element.
func safeSegment(s string) bool {
	return s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func isSeparator(r rune) bool { return r == '/' || r == '\\' }
