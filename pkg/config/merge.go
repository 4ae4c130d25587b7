package config

import (
	"strings"

	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
)

// Merge applies overlays to base left-to-right and returns a new document;
// later overlays win on conflicting keys. Every leaf path in an overlay must
// already exist in base, otherwise the merge fails with UNKNOWN_KEY and no
// partial document is produced. Sections merge recursively; scalars and
// lists are replaced wholesale.
func Merge(base *Document, overlays ...*Document) (*Document, error) {
	out := base.Copy()
	for _, overlay := range overlays {
		if overlay == nil {
			continue
		}
		if err := mergeInto(out.data, overlay.data, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mergeInto(dest, src map[string]interface{}, path []string) error {
	for key, srcVal := range src {
		keyPath := append(path, key)
		destVal, ok := dest[key]
		if !ok {
			return errors.Newf(errors.ErrUnknownKey, "unknown key %q: overlays may only refine keys present in the base",
				strings.Join(keyPath, ".")).
				WithDetail("path", strings.Join(keyPath, "."))
		}

		if srcMap, srcOk := srcVal.(map[string]interface{}); srcOk {
			destMap, destOk := destVal.(map[string]interface{})
			if !destOk {
				return errors.Newf(errors.ErrUnknownKey, "key %q is a value in the base, not a section",
					strings.Join(keyPath, ".")).
					WithDetail("path", strings.Join(keyPath, "."))
			}
			if err := mergeInto(destMap, srcMap, keyPath); err != nil {
				return err
			}
			continue
		}

		if _, destIsMap := destVal.(map[string]interface{}); destIsMap {
			return errors.Newf(errors.ErrUnknownKey, "key %q is a section in the base and cannot be replaced by a value",
				strings.Join(keyPath, ".")).
				WithDetail("path", strings.Join(keyPath, "."))
		}

		// Scalars and tuples override, they never accumulate
		dest[key] = srcVal
	}
	return nil
}
