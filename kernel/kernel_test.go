package kernel_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/kernel"
)

// randomCloud draws n deterministic 2-D points for property tests.
func randomCloud(n int, seed uint64) *mat.Dense {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	data := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		data.Set(i, 0, rng.NormFloat64())
		data.Set(i, 1, rng.NormFloat64())
	}
	return data
}

// TestBuild_SelfKernelSymmetricUnitRange: any self-affinity kernel is
// symmetric with all entries in [0,1].
func TestBuild_SelfKernelSymmetricUnitRange(t *testing.T) {
	data := randomCloud(40, 7)
	opts := kernel.DefaultOptions()
	opts.K = 3

	k, _, err := kernel.Build(data, data, kernel.ByHeuristic(kernel.KNN), opts)
	require.NoError(t, err)

	n, m := k.Dims()
	require.Equal(t, n, m)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := k.At(i, j)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			assert.Equal(t, v, k.At(j, i), "self kernel must be symmetric")
		}
	}
}

// TestBuild_NoiseFloor zeroes affinities below 1e-3: two far-apart
// points with a small fixed bandwidth produce an exactly-zero
// off-diagonal entry.
func TestBuild_NoiseFloor(t *testing.T) {
	data := mat.NewDense(2, 1, []float64{0, 100})
	k, _, err := kernel.Build(data, data, kernel.Fixed(1), kernel.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, k.At(0, 1))
	assert.Equal(t, 1.0, k.At(0, 0), "self affinity at zero distance is exp(0)")
}

// TestBuild_IdenticalPointsNoNaN: with all points coincident, min-max
// and median bandwidths degenerate to 0 — the division-by-zero NaNs
// must be zeroed, never returned.
func TestBuild_IdenticalPointsNoNaN(t *testing.T) {
	data := mat.NewDense(5, 2, nil) // five copies of the origin
	for _, h := range []kernel.Heuristic{kernel.MinMax, kernel.Median} {
		k, _, err := kernel.Build(data, data, kernel.ByHeuristic(h), kernel.DefaultOptions())
		require.NoError(t, err, "heuristic %s", h)
		r, c := k.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				assert.False(t, math.IsNaN(k.At(i, j)), "heuristic %s produced NaN at (%d,%d)", h, i, j)
			}
		}
	}
}

// TestBuild_RectangularNotSymmetrized: kernels between different-sized
// sets keep their rectangular shape untouched.
func TestBuild_RectangularNotSymmetrized(t *testing.T) {
	a := randomCloud(6, 1)
	b := randomCloud(4, 2)
	k, _, err := kernel.Build(a, b, kernel.Fixed(1), kernel.DefaultOptions())
	require.NoError(t, err)
	r, c := k.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 4, c)
}

// TestBuild_ShapeErrors rejects empty inputs and mismatched feature
// dimensionality.
func TestBuild_ShapeErrors(t *testing.T) {
	a := mat.NewDense(2, 1, []float64{0, 1})
	b := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	_, _, err := kernel.Build(a, b, kernel.Fixed(1), kernel.DefaultOptions())
	assert.ErrorIs(t, err, kernel.ErrDimensionMismatch)
}

// TestBuild_GaussianValue pins one kernel entry: distance 1, bandwidth
// 2, alpha 2 → exp(-(1/2)²) = exp(-0.25).
func TestBuild_GaussianValue(t *testing.T) {
	data := mat.NewDense(2, 1, []float64{0, 1})
	k, _, err := kernel.Build(data, data, kernel.Fixed(2), kernel.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.25), k.At(0, 1), 1e-12)
}

// TestDegrees_MassConservation: Σd̂ ≈ N, all entries non-negative, and
// sparsity is the elementwise reciprocal.
func TestDegrees_MassConservation(t *testing.T) {
	data := randomCloud(30, 3)
	degree, sparsity, bw, err := kernel.Degrees(data, kernel.ByHeuristic(kernel.StdDev), kernel.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, degree, 30)
	require.Len(t, sparsity, 30)
	assert.False(t, bw.Adaptive())

	sum := 0.0
	for i, d := range degree {
		assert.GreaterOrEqual(t, d, 0.0)
		if d > 0 {
			assert.InDelta(t, 1/d, sparsity[i], 1e-12)
		}
		sum += d
	}
	assert.InDelta(t, 30.0, sum, 1e-9, "degree mass must be preserved")
}

// TestDegrees_DegenerateKernel: a zero-total-mass kernel (coincident
// points under min-max) yields zero degrees and +Inf sparsity, not NaN.
func TestDegrees_DegenerateKernel(t *testing.T) {
	data := mat.NewDense(4, 2, nil)
	degree, sparsity, _, err := kernel.Degrees(data, kernel.ByHeuristic(kernel.MinMax), kernel.DefaultOptions())
	require.NoError(t, err)
	for i := range degree {
		assert.Equal(t, 0.0, degree[i])
		assert.True(t, math.IsInf(sparsity[i], 1))
	}
}
