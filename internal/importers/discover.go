package importers

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns select every JSON and YAML file under the root.
var DefaultPatterns = []string{"**/*.json", "**/*.{yml,yaml}"}

// Discover finds export files under root matching any of patterns. The
// collection comes from the file's base name; files that name no known
// collection are returned in unknown.
func Discover(root string, patterns []string) (sources []Source, unknown []string, err error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	fsys := os.DirFS(root)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true

			collection, ok := CollectionFor(m)
			if !ok {
				unknown = append(unknown, filepath.Join(root, filepath.FromSlash(m)))
				continue
			}
			sources = append(sources, Source{Path: filepath.Join(root, filepath.FromSlash(m)), Collection: collection})
		}
	}

	SortSources(sources)
	sort.Strings(unknown)
	return sources, unknown, nil
}

// CollectionFor maps a file path onto a collection by its base name.
func CollectionFor(p string) (string, bool) {
	base := path.Base(filepath.ToSlash(p))
	base = strings.TrimSuffix(base, path.Ext(base))
	c, ok := aliases[base]
	return c, ok
}

// SortSources orders sources so referenced collections load first.
func SortSources(sources []Source) {
	sort.SliceStable(sources, func(i, j int) bool {
		oi, oj := order[sources[i].Collection], order[sources[j].Collection]
		if oi != oj {
			return oi < oj
		}
		return sources[i].Path < sources[j].Path
	})
}

// Resolve accepts either a single export file or a directory to search.
func Resolve(p string, patterns []string) (sources []Source, unknown []string, err error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return Discover(p, patterns)
	}
	collection, ok := CollectionFor(p)
	if !ok {
		return nil, []string{p}, nil
	}
	return []Source{{Path: p, Collection: collection}}, nil, nil
}
