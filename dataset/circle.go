package dataset

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ImbalancedCircle samples n points non-uniformly from the unit circle:
// a pool of `pool` evenly spaced circle points is drawn from with
// weights (weight + x), so the right-hand side of the circle is
// oversampled. weight=1 leaves almost nothing on the left-hand side;
// weight=2 is close to uniform.
//
// Returns an n×2 point set. src may be nil to use the process-wide
// generator.
func ImbalancedCircle(n, pool int, weight float64, src rand.Source) *mat.Dense {
	if n <= 0 {
		return nil
	}
	if pool < 2 {
		pool = 2
	}

	var rng *rand.Rand
	if src != nil {
		rng = rand.New(src)
	}
	uniform := func() float64 {
		if rng != nil {
			return rng.Float64()
		}
		return rand.Float64()
	}

	// Cumulative weights over the pool; negative weights clamp to 0.
	cum := make([]float64, pool)
	xs := make([]float64, pool)
	ys := make([]float64, pool)
	total := 0.0
	for i := 0; i < pool; i++ {
		theta := -math.Pi + 2*math.Pi*float64(i)/float64(pool-1)
		xs[i] = math.Cos(theta)
		ys[i] = math.Sin(theta)
		w := weight + xs[i]
		if w < 0 {
			w = 0
		}
		total += w
		cum[i] = total
	}

	points := mat.NewDense(n, 2, nil)
	for r := 0; r < n; r++ {
		i := 0
		if total > 0 {
			i = sort.SearchFloat64s(cum, uniform()*total)
			if i >= pool {
				i = pool - 1
			}
		}
		points.Set(r, 0, xs[i])
		points.Set(r, 1, ys[i])
	}
	return points
}

// FeatureScale min-max normalizes xs into [0,1]. A constant input
// (max == min) maps to all zeros rather than NaN.
func FeatureScale(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	lo, hi := xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return out
	}
	span := hi - lo
	for i, v := range xs {
		out[i] = (v - lo) / span
	}
	return out
}
