package diffusion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/diag"
	"github.com/geomlab/sugar/kernel"
)

// MGCMagic corrects generated points y (M×D) against the source
// manifold x (N×D), weighted by the sparsity of x (length N).
//
// Two rectangular kernels are built with independently resolved
// bandwidths — y→x and x→y may therefore differ numerically under
// adaptive policies, which is intentional. The y→x kernel is weighted
// per-column by sparsity, multiplied by the x→y kernel into an M×M
// kernel over y, symmetrized, and handed to Magic for t diffusion
// steps.
//
// t = 0 returns y unchanged with nil kernel and operator, and warns
// that no correction was applied.
func MGCMagic(x, y *mat.Dense, sparsity []float64, spec kernel.Spec, opts kernel.Options, t int, rescale bool, log diag.Logger) (*mat.Dense, *mat.Dense, *mat.Dense, error) {
	log = diag.OrNop(log)
	if t == 0 {
		log.Warnf("diffusion: mgc-magic called with t=0, no correction applied")
		return mat.DenseCopyOf(y), nil, nil, nil
	}
	n, _ := x.Dims()
	if len(sparsity) != n {
		return nil, nil, nil, fmt.Errorf("%w: %d source points vs %d sparsity entries", ErrDimensionMismatch, n, len(sparsity))
	}

	opts.Log = log
	newToOld, _, err := kernel.Build(y, x, spec, opts) // M×N
	if err != nil {
		return nil, nil, nil, err
	}
	oldToNew, _, err := kernel.Build(x, y, spec, opts) // N×M
	if err != nil {
		return nil, nil, nil, err
	}

	// Weight the y→x affinities by the sparsity of the x point they
	// land on. Zero-degree source points carry infinite sparsity; the
	// resulting non-finite products are zeroed, consistent with the
	// kernel builder's NaN policy.
	m, _ := newToOld.Dims()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := newToOld.At(i, j) * sparsity[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			newToOld.Set(i, j, v)
		}
	}

	mgc := mat.NewDense(m, m, nil)
	mgc.Mul(newToOld, oldToNew)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			v := (mgc.At(i, j) + mgc.At(j, i)) / 2
			mgc.Set(i, j, v)
			mgc.Set(j, i, v)
		}
	}

	corrected, op, err := Magic(y, mgc, t, rescale, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return corrected, mgc, op, nil
}
