package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/diag"
)

// minAffinity is the noise floor: kernel entries below it are zeroed.
const minAffinity = 1e-3

// Options configures kernel construction.
//
// Fields:
//   - K     — neighbor index for the KNN bandwidth heuristic.
//   - Alpha — decay exponent; Alpha=2 is the Gaussian kernel.
//   - Fac   — multiplicative rescale applied to the resolved bandwidth.
//   - Log   — optional diagnostic sink; nil disables logging.
type Options struct {
	K     int
	Alpha float64
	Fac   float64
	Log   diag.Logger
}

// DefaultOptions returns the canonical kernel parameters: k=5, Gaussian
// decay, no bandwidth rescale.
func DefaultOptions() Options {
	return Options{K: 5, Alpha: 2, Fac: 1}
}

// Distances computes the rectangular Euclidean distance matrix between
// set1 (N×D) and set2 (M×D): result is N×M with entry (i,j) the
// distance from set1 row i to set2 row j.
func Distances(set1, set2 *mat.Dense) (*mat.Dense, error) {
	n, d1 := set1.Dims()
	m, d2 := set2.Dims()
	if n == 0 || d1 == 0 || m == 0 || d2 == 0 {
		return nil, ErrEmptyInput
	}
	if d1 != d2 {
		return nil, ErrDimensionMismatch
	}
	dist := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		ri := set1.RawRowView(i)
		for j := 0; j < m; j++ {
			dist.Set(i, j, floats.Distance(ri, set2.RawRowView(j), 2))
		}
	}
	return dist, nil
}

// Build constructs the alpha-decay affinity kernel between set1 and
// set2 and returns it together with the resolved bandwidth.
//
// Stage 1 (Validate): the bandwidth Spec is checked before any distance
// computation; a bad spec fails fast with ErrInvalidBandwidthSpec.
// Stage 2 (Distances): Euclidean pairwise distances, N×M.
// Stage 3 (Bandwidth): Spec resolved against the distance matrix, then
// rescaled by opts.Fac.
// Stage 4 (Kernel): K = exp(-(D/σ)^α) with σ broadcast per column;
// NaN entries and entries below the 1e-3 floor are zeroed; square
// kernels are symmetrized by averaging with their transpose.
func Build(set1, set2 *mat.Dense, spec Spec, opts Options) (*mat.Dense, Bandwidth, error) {
	log := diag.OrNop(opts.Log)
	if err := spec.Validate(); err != nil {
		return nil, Bandwidth{}, err
	}

	dist, err := Distances(set1, set2)
	if err != nil {
		return nil, Bandwidth{}, err
	}

	bw, branch, err := spec.resolve(dist, opts.K)
	if err != nil {
		return nil, Bandwidth{}, err
	}
	bw = bw.scale(opts.Fac)
	if bw.Adaptive() {
		log.Infof("kernel: resolved adaptive bandwidth via %s (n=%d)", branch, len(bw.PerPoint))
	} else {
		log.Infof("kernel: resolved bandwidth via %s: %g", branch, bw.Scalar)
	}

	rows, cols := dist.Dims()
	k := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		sigma := bw.At(j)
		for i := 0; i < rows; i++ {
			// 0/0 yields NaN and d/0 yields +Inf; both collapse to a
			// zero affinity below, so degenerate bandwidths are safe.
			v := math.Exp(-math.Pow(dist.At(i, j)/sigma, opts.Alpha))
			if math.IsNaN(v) || v < minAffinity {
				v = 0
			}
			k.Set(i, j, v)
		}
	}

	if rows == cols {
		symmetrize(k)
	}
	return k, bw, nil
}

// symmetrize replaces k with (k + kᵀ)/2 in place.
func symmetrize(k *mat.Dense) {
	n, _ := k.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := (k.At(i, j) + k.At(j, i)) / 2
			k.Set(i, j, v)
			k.Set(j, i, v)
		}
	}
}
