package mapper

import (
	"fmt"
	"strings"
)

// Document is a decoded JSON object.
type Document = map[string]any

// Path is an ordered list of keys. A single-element path is a plain key lookup.
type Path []string

// Key returns a path that looks up a single key.
func Key(k string) Path {
	return Path{k}
}

// KeyPath returns a path that descends through nested documents, one key per level.
func KeyPath(keys ...string) Path {
	p := make(Path, len(keys))
	copy(p, keys)
	return p
}

// String renders the path in dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Mapping declares attribute name to source path for one record type.
type Mapping map[string]Path

// Validate rejects empty paths and empty keys.
func (m Mapping) Validate() error {
	for name, path := range m {
		if name == "" {
			return fmt.Errorf("mapper: empty attribute name")
		}
		if len(path) == 0 {
			return fmt.Errorf("mapper: attribute %q has an empty path", name)
		}
		for i, k := range path {
			if k == "" {
				return fmt.Errorf("mapper: attribute %q has an empty key at position %d", name, i)
			}
		}
	}
	return nil
}

// Resolve applies path to doc left to right. It reports false when a key is
// missing or when a non-terminal key resolves to something other than a document.
func Resolve(doc any, path Path) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := doc
	for _, k := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[k]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}
