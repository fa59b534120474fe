package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/diag"
)

// Degrees estimates per-point degree and sparsity from the self-affinity
// kernel of data (N×D).
//
// The raw column mass p of the kernel is rescaled so the mean degree is
// 1 and total mass is preserved: d̂ = p·N/Σp, ŝ = 1/d̂. A point with
// zero kernel mass has degree 0 and sparsity +Inf; callers must guard
// against propagating the infinity.
func Degrees(data *mat.Dense, spec Spec, opts Options) (degree, sparsity []float64, bw Bandwidth, err error) {
	k, bw, err := Build(data, data, spec, opts)
	if err != nil {
		return nil, nil, Bandwidth{}, err
	}

	n, _ := data.Dims()
	_, cols := k.Dims()
	p := make([]float64, cols)
	colBuf := make([]float64, n)
	for j := 0; j < cols; j++ {
		mat.Col(colBuf, j, k)
		p[j] = floats.Sum(colBuf)
	}

	total := floats.Sum(p)
	degree = make([]float64, cols)
	sparsity = make([]float64, cols)
	if total == 0 {
		// Fully degenerate kernel (e.g. zero bandwidth on coincident
		// points): every degree is 0 and every sparsity +Inf, rather
		// than NaN from 0/0.
		diag.OrNop(opts.Log).Warnf("kernel: degree estimate degenerate, kernel has zero total mass")
		for j := range sparsity {
			sparsity[j] = math.Inf(1)
		}
		return degree, sparsity, bw, nil
	}
	for j := range p {
		degree[j] = p[j] * float64(n) / total
		sparsity[j] = 1 / degree[j]
	}
	return degree, sparsity, bw, nil
}
