package jsondoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestLeftover(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Extra
	}{
		{"none", `{"x": 1, "y": 2}`, nil},
		{"empty object", `{}`, nil},
		{"one unknown", `{"x": 1, "label": "a"}`, Extra{"label": json.RawMessage(`"a"`)}},
		{"nested unknown", `{"meta": {"k": [1, 2]}}`, Extra{"meta": json.RawMessage(`{"k": [1, 2]}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Leftover([]byte(tt.in), "x", "y")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeftover_NotAnObject(t *testing.T) {
	_, err := Leftover([]byte(`[1, 2]`), "x")
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	out, err := Merge(point{X: 1, Y: 2}, Extra{
		"label": json.RawMessage(`"a"`),
		"x":     json.RawMessage(`99`),
	})
	require.NoError(t, err)
	// Declared fields win over stale extras with the same key.
	assert.JSONEq(t, `{"x": 1, "y": 2, "label": "a"}`, string(out))
}

func TestMerge_NoExtra(t *testing.T) {
	out, err := Merge(point{X: 3}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 3, "y": 0}`, string(out))
}
