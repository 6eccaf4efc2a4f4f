package catalog

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MaxResults caps Search results and Get suggestions. There is no paging.
const MaxResults = 30

// AllFrameworks selects the whole root in Search.
const AllFrameworks = "all"

var errEnoughResults = errors.New("enough results")

// Search returns relative paths of files whose path contains every
// whitespace-separated term of query, case-insensitively. framework is
// either empty, AllFrameworks, or the id of an indexed framework. Results
// follow the walk order (lexical, depth-first) and stop at MaxResults.
func (c *Catalog) Search(query, framework string) ([]string, error) {
	return c.SearchN(query, framework, MaxResults)
}

// SearchN is Search with a caller-chosen limit. Asking for one more than
// will be shown tells the caller whether results were cut off.
func (c *Catalog) SearchN(query, framework string, limit int) ([]string, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	pattern := "**"
	if framework != "" && framework != AllFrameworks {
		if _, ok := c.Framework(framework); !ok {
			return nil, unknownFramework(framework)
		}
		// Descriptor ids are plain directory names, free of glob syntax.
		pattern = framework + "/**"
	}

	var matches []string
	err := doublestar.GlobWalk(os.DirFS(c.root), pattern, func(p string, d fs.DirEntry) error {
		lower := strings.ToLower(p)
		for _, t := range terms {
			if !strings.Contains(lower, t) {
				return nil
			}
		}
		matches = append(matches, p)
		if len(matches) >= limit {
			return errEnoughResults
		}
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil && !errors.Is(err, errEnoughResults) {
		return matches, err
	}

	return matches, nil
}
