package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats for frozen configurations
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Encode serializes a resolved document for the external trainer
func Encode(doc *Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml", "":
		out, err := yaml.Marshal(doc.Data())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode configuration as YAML")
		}
		return out, nil
	case FormatTOML:
		out, err := gotoml.Marshal(doc.Data())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode configuration as TOML")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrConfigWrite, "unsupported output format %q", format)
	}
}

// WriteFile freezes a resolved document to disk, choosing the format from
// the file extension
func WriteFile(doc *Document, path string) error {
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = FormatTOML
	}

	out, err := Encode(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", path)
	}

	log.Info().Str("path", path).Str("format", format).Msg("Frozen configuration written")
	return nil
}
