package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func design(cols ...[]float64) *mat.Dense {
	n := len(cols[0])
	a := mat.NewDense(n, len(cols)+1, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, 1)
		for j, c := range cols {
			a.Set(i, j+1, c[i])
		}
	}
	return a
}

func TestLeastSquares_FullRank(t *testing.T) {
	x1 := Series(0, 1, 20)
	x2 := Wave(3, 20, 0.7)
	y := make([]float64, 20)
	for i := range y {
		y[i] = 2 + 0.5*x1[i] - 1.5*x2[i]
	}

	c, rank, err := LeastSquares(design(x1, x2), y)
	require.NoError(t, err)
	assert.Equal(t, 3, rank)
	assert.InDeltaSlice(t, []float64{2, 0.5, -1.5}, c, 1e-9)
}

func TestLeastSquares_RankDeficient(t *testing.T) {
	// two indicator columns that always sum to the intercept
	a := []float64{1, 0, 1, 0, 1, 0}
	b := []float64{0, 1, 0, 1, 0, 1}
	x := Series(0, 1, 6)
	y := make([]float64, 6)
	for i := range y {
		y[i] = 1 + 2*a[i] + 3*b[i] + 0.25*x[i]
	}

	m := design(a, b, x)
	c, rank, err := LeastSquares(m, y)
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	// the solution is not unique, but the fitted values are
	var fitted mat.VecDense
	fitted.MulVec(m, mat.NewVecDense(len(c), c))
	for i := range y {
		assert.InDelta(t, y[i], fitted.AtVec(i), 1e-9)
	}
	// minimum norm splits the intercept evenly between the indicators
	assert.InDelta(t, c[1]-c[2], -1.0, 1e-9)
	assert.InDelta(t, 0.25, c[3], 1e-9)
}

func TestLeastSquares_Errors(t *testing.T) {
	_, _, err := LeastSquares(mat.NewDense(3, 2, nil), []float64{1, 2})
	assert.Error(t, err)

	_, _, err = LeastSquares(mat.NewDense(3, 2, nil), []float64{1, 2, 3})
	assert.Error(t, err)
}
