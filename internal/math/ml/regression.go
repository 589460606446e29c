package ml

import (
	"fmt"
	"math"

	xmath "github.com/drakos74/lifexp/internal/math"
	"github.com/drakos74/lifexp/internal/model"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// DefaultIntercept is the name of the constant column of the design matrix.
const DefaultIntercept = "const"

// Regression is an ordinary least squares model with an intercept.
// The intercept is the first coefficient, followed by one per feature in order.
type Regression struct {
	intercept    string
	features     []string
	coefficients []float64
	meta         Metadata
}

// NewRegression restores a fitted regression from its coefficients.
func NewRegression(intercept string, features []string, coefficients []float64) (*Regression, error) {
	if len(coefficients) != len(features)+1 {
		return nil, fmt.Errorf("expected %d coefficients for %d features, got %d: %w",
			len(features)+1, len(features), len(coefficients), model.SchemaMismatchErr)
	}
	return &Regression{
		intercept:    intercept,
		features:     append([]string{}, features...),
		coefficients: append([]float64{}, coefficients...),
	}, nil
}

// FitRegression fits y on all columns of x, with a leading constant column.
func FitRegression(x *model.Table, y []float64, intercept string) (*Regression, error) {
	if x.Len() != len(y) {
		return nil, fmt.Errorf("%d rows vs %d targets: %w", x.Len(), len(y), model.SchemaMismatchErr)
	}
	for i, v := range y {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("target missing at row %d: %w", i, model.UnresolvedMissingValueErr)
		}
	}

	a, err := designMatrix(x)
	if err != nil {
		return nil, err
	}

	c, rank, err := xmath.LeastSquares(a, y)
	if err != nil {
		return nil, fmt.Errorf("could not solve least squares: %w", err)
	}

	r := &Regression{
		intercept:    intercept,
		features:     x.Names(),
		coefficients: c,
	}
	r.meta = r.evaluate(a, y, rank)

	log.Info().
		Int("samples", r.meta.Samples).
		Int("parameters", r.meta.Parameters).
		Int("rank", r.meta.Rank).
		Float64("r2", r.meta.R2).
		Msg("fitted regression")

	return r, nil
}

// Predict computes the fitted values for x.
// The columns of x must match the fit-time features in name and order.
func (r *Regression) Predict(x *model.Table) ([]float64, error) {
	names := x.Names()
	if len(names) != len(r.features) {
		return nil, fmt.Errorf("expected %d features, got %d: %w", len(r.features), len(names), model.SchemaMismatchErr)
	}
	for i, n := range names {
		if n != r.features[i] {
			return nil, fmt.Errorf("feature %d is '%s', expected '%s': %w", i, n, r.features[i], model.SchemaMismatchErr)
		}
	}

	a, err := designMatrix(x)
	if err != nil {
		return nil, err
	}

	var y mat.VecDense
	y.MulVec(a, mat.NewVecDense(len(r.coefficients), r.coefficients))

	out := make([]float64, y.Len())
	for i := range out {
		out[i] = y.AtVec(i)
	}
	return out, nil
}

// Intercept returns the name of the constant column.
func (r *Regression) Intercept() string {
	return r.intercept
}

// Features returns the feature names, without the intercept.
func (r *Regression) Features() []string {
	return r.features
}

// Coefficients returns the intercept followed by the feature coefficients.
func (r *Regression) Coefficients() []float64 {
	return r.coefficients
}

// Metadata returns the fit statistics. It is empty for restored models.
func (r *Regression) Metadata() Metadata {
	return r.meta
}

func (r *Regression) evaluate(a *mat.Dense, y []float64, rank int) Metadata {
	var fitted mat.VecDense
	fitted.MulVec(a, mat.NewVecDense(len(r.coefficients), r.coefficients))

	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var sse, sst float64
	for i, v := range y {
		d := v - fitted.AtVec(i)
		sse += d * d
		sst += (v - mean) * (v - mean)
	}

	n := len(y)
	meta := Metadata{
		Samples:    n,
		Parameters: len(r.coefficients),
		Rank:       rank,
		SSE:        sse,
	}
	if sst > 0 {
		meta.R2 = 1 - sse/sst
		if n > rank {
			meta.AdjR2 = 1 - (1-meta.R2)*float64(n-1)/float64(n-rank)
		}
	}
	return meta
}

func designMatrix(x *model.Table) (*mat.Dense, error) {
	if x.Len() == 0 {
		return nil, fmt.Errorf("no rows to build the design matrix: %w", model.InsufficientDataErr)
	}
	cols := x.Columns()
	a := mat.NewDense(x.Len(), len(cols)+1, nil)
	for i := 0; i < x.Len(); i++ {
		a.Set(i, 0, 1)
	}
	for j, c := range cols {
		if c.Kind != model.Numeric {
			return nil, fmt.Errorf("feature '%s' is %s: %w", c.Name, c.Kind, model.SchemaMismatchErr)
		}
		for i, v := range c.Floats {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("feature '%s' missing at row %d: %w", c.Name, i, model.UnresolvedMissingValueErr)
			}
			a.Set(i, j+1, v)
		}
	}
	return a, nil
}
