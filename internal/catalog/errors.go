package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFramework is returned for a framework id that is not in the
	// descriptor set or whose directory was not found at build time.
	ErrUnknownFramework = errors.New("unknown framework")

	// ErrNotFound is returned when a component file does not exist.
	ErrNotFound = errors.New("component not found")

	// ErrInvalidPath is returned for relative paths that would leave the root.
	ErrInvalidPath = errors.New("invalid path")
)

// NotFoundError reports a missing component together with any paths that
// look like what the caller was after.
type NotFoundError struct {
	Path        string   // the requested path, relative to the root
	Suggestions []string // relative paths, at most MaxResults
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("%s: %s (%d similar)", ErrNotFound, e.Path, len(e.Suggestions))
	}
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Path)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func unknownFramework(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownFramework, id)
}
