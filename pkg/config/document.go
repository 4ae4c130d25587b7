package config

import (
	"sort"
	"strings"

	"github.com/knadh/koanf/maps"
)

// Document is a nested tree of configuration keys. Values are scalars,
// lists of numbers/strings, or nested sections. A Document is treated as
// immutable once resolution has finished; Merge never modifies its inputs.
type Document struct {
	data map[string]interface{}
}

// NewDocument wraps a nested key/value map in a Document. The map is copied,
// so later changes to the input do not leak into the document.
func NewDocument(data map[string]interface{}) *Document {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Document{data: maps.Copy(data)}
}

// Data returns a deep copy of the underlying tree
func (d *Document) Data() map[string]interface{} {
	return maps.Copy(d.data)
}

// Copy returns an independent copy of the document
func (d *Document) Copy() *Document {
	return &Document{data: maps.Copy(d.data)}
}

// Lookup walks the tree by dotted path and returns the value at that path.
// The second return reports whether the path exists (as a leaf or a section).
func (d *Document) Lookup(path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var curr interface{} = d.data
	for _, part := range parts {
		section, ok := curr.(map[string]interface{})
		if !ok {
			return nil, false
		}
		curr, ok = section[part]
		if !ok {
			return nil, false
		}
	}
	return curr, true
}

// Has reports whether a dotted path exists in the document
func (d *Document) Has(path string) bool {
	_, ok := d.Lookup(path)
	return ok
}

// Leaves returns the sorted dotted paths of every leaf value
func (d *Document) Leaves() []string {
	flat, _ := maps.Flatten(d.data, nil, ".")
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
