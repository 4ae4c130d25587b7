package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Lookup(t *testing.T) {
	doc := baseFixture()

	tests := []struct {
		name     string
		path     string
		expected interface{}
		found    bool
	}{
		{name: "top_level_leaf", path: "OUTPUT_DIR", expected: "./output", found: true},
		{name: "nested_leaf", path: "SOLVER.BASE_LR", expected: 0.0001, found: true},
		{name: "deep_leaf", path: "MODEL.ROI_HEADS.NUM_CLASSES", expected: 2, found: true},
		{name: "missing_leaf", path: "SOLVER.MOMENTUM", found: false},
		{name: "missing_section", path: "OPTIMIZER.KIND", found: false},
		{name: "path_through_leaf", path: "OUTPUT_DIR.NOPE", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := doc.Lookup(tt.path)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestDocument_Section(t *testing.T) {
	doc := baseFixture()
	v, ok := doc.Lookup("SOLVER")
	require.True(t, ok)
	section, ok := v.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, section, "BASE_LR")
	assert.True(t, doc.Has("SOLVER"))
}

func TestDocument_Leaves(t *testing.T) {
	doc := NewDocument(map[string]interface{}{
		"B": map[string]interface{}{"Y": 1, "X": 2},
		"A": "v",
	})
	assert.Equal(t, []string{"A", "B.X", "B.Y"}, doc.Leaves())
}

func TestDocument_CopyIsIndependent(t *testing.T) {
	doc := baseFixture()
	dup := doc.Copy()

	// Mutating the copy's data must not reach the original
	data := dup.Data()
	data["OUTPUT_DIR"] = "./elsewhere"
	orig, _ := doc.Lookup("OUTPUT_DIR")
	assert.Equal(t, "./output", orig)
}

func TestNewDocument_CopiesInput(t *testing.T) {
	raw := map[string]interface{}{
		"SOLVER": map[string]interface{}{"MAX_ITER": 100},
	}
	doc := NewDocument(raw)
	raw["SOLVER"].(map[string]interface{})["MAX_ITER"] = 999

	v, _ := doc.Lookup("SOLVER.MAX_ITER")
	assert.Equal(t, 100, v)
}
