package math

import (
	"math"
	"testing"

	"github.com/drakos74/lifexp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTransform_MinScale(t *testing.T) {
	out, params, err := FitTransform("x", []float64{10, 20, 30}, model.MinScale)
	require.NoError(t, err)

	assert.Equal(t, model.ScaleParams{Column: "x", Mode: model.MinScale, Offset: 0, Divisor: 30}, params)
	assert.InDeltaSlice(t, []float64{1.0 / 3.0, 2.0 / 3.0, 1.0}, out, 1e-9)

	// test time reuses the train params
	test := Transform([]float64{15, 45}, params)
	assert.InDeltaSlice(t, []float64{0.5, 1.5}, test, 1e-9)
}

func TestFitTransform_Standardize(t *testing.T) {
	out, params, err := FitTransform("x", []float64{2, 4, 4, 4, 5, 5, 7, 9}, model.Standardize)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, params.Offset, 1e-12)
	assert.InDelta(t, 2.0, params.Divisor, 1e-12)
	assert.InDelta(t, -1.5, out[0], 1e-12)
	assert.InDelta(t, 2.0, out[7], 1e-12)
}

func TestFitTransform_Missing(t *testing.T) {
	out, params, err := FitTransform("x", []float64{math.NaN(), 4, math.NaN(), 8}, model.MinScale)
	require.NoError(t, err)

	assert.Equal(t, 8.0, params.Divisor)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[2]))
	assert.Equal(t, 0.5, out[1])
	assert.Equal(t, 1.0, out[3])
}

func TestFitTransform_Errors(t *testing.T) {

	type test struct {
		values []float64
		mode   model.Mode
	}

	tests := map[string]test{
		"all-missing": {
			values: []float64{math.NaN(), math.NaN()},
			mode:   model.MinScale,
		},
		"empty": {
			values: []float64{},
			mode:   model.MinScale,
		},
		"zero-max": {
			values: []float64{0, 0, math.NaN()},
			mode:   model.MinScale,
		},
		"constant": {
			values: []float64{3, 3, 3},
			mode:   model.Standardize,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := FitTransform(name, tt.values, tt.mode)
			assert.ErrorIs(t, err, model.InsufficientDataErr)
		})
	}
}

func TestInvert_RoundTrip(t *testing.T) {
	values := append(Series(-3, 0.7, 50), Wave(100, 50, 0.3)...)
	for _, mode := range []model.Mode{model.MinScale, model.Standardize} {
		t.Run(string(mode), func(t *testing.T) {
			out, params, err := FitTransform("x", values, mode)
			require.NoError(t, err)
			assert.InDeltaSlice(t, values, Invert(out, params), 1e-9)
		})
	}
}
