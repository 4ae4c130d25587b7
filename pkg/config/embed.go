package config

import (
	_ "embed"
	"errors"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.yaml
var defaultConfig []byte

//go:embed embedded/schema.md
var schemaReference []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultDocument returns the built-in defaults. Every key a base template
// or overlay may set exists here; the defaults are the schema of record.
func DefaultDocument() *Document {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, yaml.Parser()); err != nil {
		return NewDocument(map[string]interface{}{})
	}
	return &Document{data: k.Raw()}
}

// SchemaReference returns the bundled markdown reference for the schema
func SchemaReference() string {
	return string(schemaReference)
}
