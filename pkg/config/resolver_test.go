package config

import (
	"path/filepath"
	"testing"

	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_DefaultsOnly(t *testing.T) {
	resolved, doc, err := Resolve(ResolveOptions{})
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, 2, resolved.Model.ROIHeads.NumClasses)
	assert.Equal(t, 0.0001, resolved.Solver.BaseLR)
	assert.Equal(t, 200000, resolved.Solver.MaxIter)
}

func TestResolve_OverlayFiles(t *testing.T) {
	dir := t.TempDir()
	base := writeConfig(t, dir, "base.yaml", `
SOLVER:
  MAX_ITER: 100000
`)
	first := writeConfig(t, dir, "first.yaml", `
SOLVER:
  BASE_LR: 0.01
  STEPS: [20000, 60000]
`)
	second := writeConfig(t, dir, "second.yaml", `
SOLVER:
  BASE_LR: 0.005
`)

	resolved, _, err := Resolve(ResolveOptions{
		BasePath:     base,
		OverlayPaths: []string{first, second},
	})
	require.NoError(t, err)

	// Last overlay wins on the conflicting key
	assert.Equal(t, 0.005, resolved.Solver.BaseLR)
	assert.Equal(t, []int{20000, 60000}, resolved.Solver.Steps)
	assert.Equal(t, 100000, resolved.Solver.MaxIter)
}

func TestResolve_OverlayWithUnknownKey(t *testing.T) {
	dir := t.TempDir()
	overlay := writeConfig(t, dir, "overlay.yaml", `
TRAINER:
  EPOCHS: 10
`)

	_, _, err := Resolve(ResolveOptions{OverlayPaths: []string{overlay}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownKey))
	assert.Contains(t, err.Error(), "TRAINER")
}

func TestResolve_EnvOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	overlay := writeConfig(t, dir, "overlay.yaml", `
SOLVER:
  MAX_ITER: 50000
  STEPS: [10000, 20000]
`)
	t.Setenv("LOFARCFG_SOLVER__MAX_ITER", "75000")

	resolved, _, err := Resolve(ResolveOptions{
		OverlayPaths: []string{overlay},
		UseEnv:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, 75000, resolved.Solver.MaxIter)
}

func TestResolve_EnvUnknownKeyFails(t *testing.T) {
	t.Setenv("LOFARCFG_SOLVER__TURBO", "yes")

	_, _, err := Resolve(ResolveOptions{UseEnv: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownKey))
}

func TestResolve_SetWinsOverEverything(t *testing.T) {
	dir := t.TempDir()
	overlay := writeConfig(t, dir, "overlay.yaml", `
SOLVER:
  BASE_LR: 0.01
`)
	t.Setenv("LOFARCFG_SOLVER__BASE_LR", "0.02")

	resolved, _, err := Resolve(ResolveOptions{
		OverlayPaths: []string{overlay},
		Set:          []string{"SOLVER.BASE_LR=0.03"},
		UseEnv:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.03, resolved.Solver.BaseLR)
}

func TestResolve_SetParsesTypedValues(t *testing.T) {
	resolved, doc, err := Resolve(ResolveOptions{
		Set: []string{
			"MODEL.MASK_ON=true",
			"SOLVER.STEPS=[100, 200]",
			"SOLVER.MAX_ITER=300",
			"OUTPUT_DIR=./run42",
		},
	})
	require.NoError(t, err)

	assert.True(t, resolved.Model.MaskOn)
	assert.Equal(t, []int{100, 200}, resolved.Solver.Steps)
	assert.Equal(t, "./run42", resolved.OutputDir)

	steps, _ := doc.Lookup("SOLVER.STEPS")
	assert.Equal(t, []interface{}{100, 200}, steps)
}

func TestResolve_MalformedSet(t *testing.T) {
	tests := []struct {
		name string
		pair string
	}{
		{name: "no_equals", pair: "SOLVER.BASE_LR"},
		{name: "empty_key", pair: "=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(ResolveOptions{Set: []string{tt.pair}})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		})
	}
}

func TestResolve_InvalidValueSurfacesAllViolations(t *testing.T) {
	_, _, err := Resolve(ResolveOptions{
		Set: []string{
			"SOLVER.IMS_PER_BATCH=-2",
			"MODEL.ROI_HEADS.NUM_CLASSES=0",
		},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	assert.Len(t, ViolationsFromError(err), 2)
}

func TestEncode_YAMLRoundTrip(t *testing.T) {
	_, doc, err := Resolve(ResolveOptions{})
	require.NoError(t, err)

	out, err := Encode(doc, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "MAX_ITER: 200000")
	assert.Contains(t, string(out), "BASE_LR: 0.0001")
}

func TestEncode_TOML(t *testing.T) {
	_, doc, err := Resolve(ResolveOptions{})
	require.NoError(t, err)

	out, err := Encode(doc, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "MAX_ITER = 200000")
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	_, doc, err := Resolve(ResolveOptions{})
	require.NoError(t, err)

	_, err = Encode(doc, "ini")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigWrite))
}

func TestWriteFile_FormatsByExtension(t *testing.T) {
	dir := t.TempDir()
	_, doc, err := Resolve(ResolveOptions{})
	require.NoError(t, err)

	yamlPath := filepath.Join(dir, "frozen.yaml")
	require.NoError(t, WriteFile(doc, yamlPath))
	reloaded, err := LoadDocument(yamlPath)
	require.NoError(t, err)
	maxIter, _ := reloaded.Lookup("SOLVER.MAX_ITER")
	assert.EqualValues(t, 200000, maxIter)

	tomlPath := filepath.Join(dir, "frozen.toml")
	require.NoError(t, WriteFile(doc, tomlPath))
	reloaded, err = LoadDocument(tomlPath)
	require.NoError(t, err)
	lr, _ := reloaded.Lookup("SOLVER.BASE_LR")
	assert.EqualValues(t, 0.0001, lr)
}
