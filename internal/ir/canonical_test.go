package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"zeta":  1,
		"alpha": "x",
		"mid":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"x","mid":true,"zeta":1}`, string(b))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	in := map[string]any{
		"kind":    "script",
		"payload": "bo1[] = BooleanFragments{ Surface{1}; Delete; } { Surface{2}; Delete;};",
		"seq":     int64(3),
	}

	first, err := MarshalCanonical(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) normalizes to U+00E9.
	decomposed := "café"
	composed := "café"

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(composed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMarshalCanonical_Forbidden(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(3.14)
	assert.Error(t, err, "floats are forbidden in identity payloads")

	_, err = MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)

	_, err = MarshalCanonical(struct{}{})
	assert.Error(t, err)
}

func TestMarshalCanonical_Nested(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"tags": []any{"(3,1)", "(3,2)"},
		"op":   "fuse",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"op":"fuse","tags":["(3,1)","(3,2)"]}`, string(b))
}
