package config

import (
	"strings"
	"time"

	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
	"github.com/jacobbieker/LOFAR-ML/pkg/logging"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override configuration keys.
// A double underscore stands for the section separator, so that leaf names
// containing single underscores survive: LOFARCFG_SOLVER__BASE_LR sets
// SOLVER.BASE_LR.
const EnvPrefix = "LOFARCFG_"

// ResolveOptions selects the layers of one resolution
type ResolveOptions struct {
	// BasePath is the base template; empty means the built-in defaults
	BasePath string
	// OverlayPaths apply left-to-right after the base
	OverlayPaths []string
	// Set holds KEY=VALUE pairs applied after everything else
	Set []string
	// UseEnv enables the LOFARCFG_ environment layer
	UseEnv bool
}

// Resolve runs the full pipeline: defaults, base file, overlay files,
// environment, --set pairs, then validation. It returns the typed
// configuration together with the merged document it was projected from.
func Resolve(opts ResolveOptions) (*ResolvedConfig, *Document, error) {
	defer logging.LogDuration(time.Now(), "resolve")

	doc, err := LoadBase(opts.BasePath)
	if err != nil {
		return nil, nil, err
	}

	for _, path := range opts.OverlayPaths {
		overlay, err := LoadDocument(path)
		if err != nil {
			return nil, nil, err
		}
		if doc, err = Merge(doc, overlay); err != nil {
			return nil, nil, err
		}
	}

	if opts.UseEnv {
		overlay, err := envOverlay()
		if err != nil {
			return nil, nil, err
		}
		if doc, err = Merge(doc, overlay); err != nil {
			return nil, nil, err
		}
	}

	for _, pair := range opts.Set {
		overlay, err := setOverlay(pair)
		if err != nil {
			return nil, nil, err
		}
		if doc, err = Merge(doc, overlay); err != nil {
			return nil, nil, err
		}
	}

	resolved, err := Validate(doc)
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("base", opts.BasePath).
		Int("overlays", len(opts.OverlayPaths)).
		Int("sets", len(opts.Set)).
		Msg("Configuration resolved")
	return resolved, doc, nil
}

// envOverlay collects LOFARCFG_-prefixed variables into an overlay document
func envOverlay() (*Document, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read environment overrides")
	}
	return &Document{data: k.Raw()}, nil
}

// setOverlay turns one KEY=VALUE pair into a single-leaf overlay document.
// The value is parsed as YAML so numbers, booleans and lists come out typed.
func setOverlay(pair string) (*Document, error) {
	key, rawValue, found := strings.Cut(pair, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return nil, errors.Newf(errors.ErrConfigParse, "invalid --set %q, expected KEY=VALUE", pair)
	}

	var value interface{}
	if err := yaml.Unmarshal([]byte(rawValue), &value); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid value in --set %q", pair)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]interface{}{key: value}, "."), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to apply --set %q", pair)
	}
	return &Document{data: k.Raw()}, nil
}
