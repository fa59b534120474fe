package diffusion

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/diag"
)

// ErrDimensionMismatch indicates the kernel does not cover the points:
// an N-row point set needs an N×N kernel.
var ErrDimensionMismatch = errors.New("diffusion: kernel size does not match point count")

// rescalePercentile is the per-column percentile matched by the
// shrinkage correction.
const rescalePercentile = 95

// Operator builds the row-stochastic diffusion operator
// diag(rowsum(k))⁻¹ · k. A zero-degree row (zero row sum) becomes an
// all-zero row rather than NaN/Inf.
func Operator(k *mat.Dense) *mat.Dense {
	n, m := k.Dims()
	op := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < m; j++ {
			sum += k.At(i, j)
		}
		if sum == 0 {
			continue // leave the row zero
		}
		inv := 1 / sum
		for j := 0; j < m; j++ {
			op.Set(i, j, k.At(i, j)*inv)
		}
	}
	return op
}

// Magic smooths points (N×D) through the kernel (N×N): the diffusion
// operator is applied t times (t = 0 passes the points through
// untouched), then, if rescale is set, each output column is scaled so
// its 95th percentile matches the input column's — countering the norm
// shrinkage of repeated diffusion.
//
// Returns the smoothed points and the diffusion operator.
func Magic(points, k *mat.Dense, t int, rescale bool, log diag.Logger) (*mat.Dense, *mat.Dense, error) {
	log = diag.OrNop(log)
	n, d := points.Dims()
	kr, kc := k.Dims()
	if kr != n || kc != n {
		return nil, nil, fmt.Errorf("%w: %d points vs %d×%d kernel", ErrDimensionMismatch, n, kr, kc)
	}

	op := Operator(k)

	smoothed := mat.DenseCopyOf(points)
	for step := 0; step < t; step++ {
		next := mat.NewDense(n, d, nil)
		next.Mul(op, smoothed)
		smoothed = next
	}
	log.Infof("diffusion: applied operator %d time(s) to %d×%d points", t, n, d)

	if rescale {
		col := make([]float64, n)
		colOut := make([]float64, n)
		for j := 0; j < d; j++ {
			mat.Col(col, j, points)
			mat.Col(colOut, j, smoothed)
			want := Percentile(col, rescalePercentile)
			have := Percentile(colOut, rescalePercentile)
			if have == 0 || math.IsNaN(have) {
				// Nothing sane to rescale against; leave the column be.
				log.Warnf("diffusion: column %d has a degenerate %dth percentile, skipping rescale", j, rescalePercentile)
				continue
			}
			ratio := want / have
			for i := 0; i < n; i++ {
				smoothed.Set(i, j, colOut[i]*ratio)
			}
		}
	}
	return smoothed, op, nil
}
