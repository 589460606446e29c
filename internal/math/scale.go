package math

import (
	"fmt"
	"math"

	"github.com/drakos74/lifexp/internal/buffer"
	"github.com/drakos74/lifexp/internal/model"
)

// FitTransform computes the scale params of the column for the given mode
// and returns the transformed copy of the values.
// Missing values are ignored for the statistics and stay missing.
func FitTransform(column string, values []float64, mode model.Mode) ([]float64, model.ScaleParams, error) {
	stats := buffer.StatsOf(values)
	if stats.Count() == 0 {
		return nil, model.ScaleParams{}, fmt.Errorf("column '%s' has no valid values: %w", column, model.InsufficientDataErr)
	}

	params := model.ScaleParams{
		Column: column,
		Mode:   mode,
	}
	switch mode {
	case model.MinScale:
		params.Divisor = stats.Max()
	case model.Standardize:
		params.Offset = stats.Avg()
		params.Divisor = stats.StDev()
	default:
		return nil, model.ScaleParams{}, fmt.Errorf("unknown scale mode '%s' for column '%s'", mode, column)
	}

	if params.Divisor == 0 || math.IsNaN(params.Divisor) || math.IsInf(params.Divisor, 0) {
		return nil, model.ScaleParams{}, fmt.Errorf("column '%s' has degenerate divisor %v for mode '%s': %w",
			column, params.Divisor, mode, model.InsufficientDataErr)
	}

	return Transform(values, params), params, nil
}

// Transform applies the given params to the values, regardless of the mode they were fitted with.
func Transform(values []float64, params model.ScaleParams) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = params.Apply(v)
	}
	return out
}

// Invert maps normalized values back to raw units.
func Invert(values []float64, params model.ScaleParams) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = params.Invert(v)
	}
	return out
}
