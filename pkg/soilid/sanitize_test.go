package soilid

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	in := map[string]any{
		"a": math.NaN(),
		"b": "nan",
		"c": []any{"None", 1.0, "NaN", map[string]any{"d": math.NaN(), "e": "kept"}},
		"f": "none",
	}
	assert.Equal(t, map[string]any{
		"a": nil,
		"b": nil,
		"c": []any{nil, 1.0, nil, map[string]any{"d": nil, "e": "kept"}},
		"f": "none",
	}, Sanitize(in))
	assert.Nil(t, Sanitize(math.NaN()))
}

func TestDecodeBareNaN(t *testing.T) {
	var out map[string]any
	require.NoError(t, Decode([]byte(`{"x": NaN, "y": [Infinity, -Infinity, 2], "s": "NaN \"in\" text"}`), &out))
	assert.Nil(t, out["x"])
	assert.Equal(t, []any{nil, nil, 2.0}, out["y"])
	assert.Equal(t, `NaN "in" text`, out["s"])
}

func TestRound6(t *testing.T) {
	assert.Equal(t, 48.000001, Round6(48.000001234))
	assert.Equal(t, -123.380001, Round6(-123.380000987))
	assert.Equal(t, Round6(48.000001234), Round6(48.0000011))
	assert.Equal(t, Round6(-123.380000987), Round6(-123.3800012))
}

func TestRound6Idempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("rounding twice equals rounding once", prop.ForAll(
		func(x float64) bool { return Round6(Round6(x)) == Round6(x) },
		gen.Float64Range(-180, 180),
	))
	properties.Property("rounding moves a coordinate by at most half a micro degree", prop.ForAll(
		func(x float64) bool { return math.Abs(Round6(x)-x) <= 5e-7+1e-12 },
		gen.Float64Range(-180, 180),
	))
	properties.TestingRun(t)
}
