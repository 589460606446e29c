package math

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LeastSquares finds the coefficients c minimising ||a*c - y||.
// Full rank systems are solved through a QR factorization. Rank deficient ones,
// e.g. one-hot columns next to an intercept, get the minimum norm solution
// through the pseudo-inverse.
// It returns the coefficients and the numerical rank of a.
func LeastSquares(a *mat.Dense, y []float64) ([]float64, int, error) {
	r, p := a.Dims()
	if r != len(y) {
		return nil, 0, fmt.Errorf("inconsistent dimensions %d rows vs %d targets", r, len(y))
	}
	if r == 0 || p == 0 {
		return nil, 0, errors.New("empty system")
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, 0, errors.New("could not factorize design matrix")
	}
	values := svd.Values(nil)
	rank := numericalRank(values, r, p)
	if rank == 0 {
		return nil, 0, errors.New("design matrix has rank 0")
	}

	if rank == p && r >= p {
		c, err := solveQR(a, y)
		if err == nil {
			return c, rank, nil
		}
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, rank, err
		}
		// ill-conditioned, continue with the pseudo-inverse
	}

	return solvePseudoInverse(&svd, values, rank, y), rank, nil
}

func solveQR(a *mat.Dense, y []float64) ([]float64, error) {
	r, p := a.Dims()
	b := mat.NewDense(r, 1, y)
	c := mat.NewDense(p, 1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)

	err := qr.SolveTo(c, false, b)
	if err != nil {
		return nil, err
	}

	v := c.ColView(0)
	cc := make([]float64, v.Len())
	for i := 0; i < v.Len(); i++ {
		cc[i] = v.AtVec(i)
	}
	return cc, nil
}

// solvePseudoInverse computes V * S^-1 * U^T * y over the first rank singular values.
func solvePseudoInverse(svd *mat.SVD, values []float64, rank int, y []float64) []float64 {
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	r, _ := u.Dims()
	p, _ := v.Dims()

	cc := make([]float64, p)
	for k := 0; k < rank; k++ {
		var uy float64
		for i := 0; i < r; i++ {
			uy += u.At(i, k) * y[i]
		}
		w := uy / values[k]
		for j := 0; j < p; j++ {
			cc[j] += w * v.At(j, k)
		}
	}
	return cc
}

// numericalRank counts the singular values above the tolerance numpy uses for matrix_rank.
func numericalRank(values []float64, r, p int) int {
	if len(values) == 0 {
		return 0
	}
	n := r
	if p > n {
		n = p
	}
	tol := values[0] * float64(n) * eps
	rank := 0
	for _, s := range values {
		if s > tol {
			rank++
		}
	}
	return rank
}

var eps = math.Nextafter(1, 2) - 1
