package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
	"github.com/jacobbieker/LOFAR-ML/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var log = logging.GetLogger("config")

// BaseKey names the parent template inside a document. The value is a path
// relative to the referring file; it never survives into the resolved tree.
const BaseKey = "_BASE_"

// LoadBase loads a base template: the built-in defaults, with the file at
// path (and its _BASE_ chain) merged on top. Every leaf in the file must
// exist in the defaults. An empty path returns the defaults alone.
func LoadBase(path string) (*Document, error) {
	defaults := DefaultDocument()
	if path == "" {
		return defaults, nil
	}
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Merge(defaults, doc)
}

// LoadDocument loads a single document, resolving its _BASE_ chain
// parent-first. Keys are not checked against any schema here; that happens
// when the document is merged onto a base.
func LoadDocument(path string) (*Document, error) {
	return loadChain(path, map[string]bool{})
}

func loadChain(path string, visited map[string]bool) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if visited[abs] {
		return nil, errors.Newf(errors.ErrBaseCycle, "_BASE_ chain revisits %s", path).
			WithDetail("path", abs)
	}
	visited[abs] = true

	raw, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	basePath, hasBase, err := popBaseRef(raw, path)
	if err != nil {
		return nil, err
	}
	if !hasBase {
		return &Document{data: raw}, nil
	}

	log.Debug().Str("file", path).Str("base", basePath).Msg("Resolving _BASE_ chain")
	parent, err := loadChain(basePath, visited)
	if err != nil {
		return nil, err
	}

	// The child refines its parent; within a chain unknown keys are fine,
	// the strict check runs against the defaults when the base is applied.
	merged := parent.Copy()
	overwriteInto(merged.data, raw)
	return merged, nil
}

// loadFile reads and parses one document, choosing the parser by extension
func loadFile(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "config file not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot access config file %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}
	return k.Raw(), nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Parser()
	}
	return yaml.Parser()
}

// popBaseRef removes the _BASE_ key from raw and returns the referenced
// path resolved relative to the referring file
func popBaseRef(raw map[string]interface{}, fromPath string) (string, bool, error) {
	ref, ok := raw[BaseKey]
	if !ok {
		return "", false, nil
	}
	delete(raw, BaseKey)

	refStr, ok := ref.(string)
	if !ok || refStr == "" {
		return "", false, errors.Newf(errors.ErrConfigParse, "%s in %s must be a non-empty path", BaseKey, fromPath).
			WithDetail("path", fromPath)
	}
	if !filepath.IsAbs(refStr) {
		refStr = filepath.Join(filepath.Dir(fromPath), refStr)
	}
	return refStr, true, nil
}

// overwriteInto is the unchecked merge used inside _BASE_ chains: sections
// merge recursively, everything else replaces
func overwriteInto(dest, src map[string]interface{}) {
	for key, srcVal := range src {
		if srcMap, srcOk := srcVal.(map[string]interface{}); srcOk {
			if destMap, destOk := dest[key].(map[string]interface{}); destOk {
				overwriteInto(destMap, srcMap)
				continue
			}
		}
		dest[key] = srcVal
	}
}
