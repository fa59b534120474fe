package kernel

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// diagExclusion is added to self-distances before the min-max column
// minimum, so a point never counts as its own nearest neighbor.
const diagExclusion = 1e15

// Heuristic names a built-in bandwidth rule.
type Heuristic string

const (
	// MinMax: 2·(max over columns of the off-diagonal column minimum)².
	MinMax Heuristic = "minmax"
	// Median: median of the per-row median distances.
	Median Heuristic = "median"
	// StdDev: sample standard deviation of the column mean distances.
	StdDev Heuristic = "std"
	// KNN: adaptive — per column, the k-th smallest distance
	// (0-indexed, so effectively the (k+1)-th nearest neighbor).
	KNN Heuristic = "knn"
)

// Func is a user-supplied bandwidth rule: it receives the full distance
// matrix and returns a resolved Bandwidth (scalar or one value per
// column of d).
type Func func(d *mat.Dense) (Bandwidth, error)

// Bandwidth is a resolved kernel bandwidth: either one shared scale, or
// one scale per column of the distance matrix (adaptive).
type Bandwidth struct {
	Scalar   float64
	PerPoint []float64 // nil unless adaptive
}

// Adaptive reports whether the bandwidth carries one value per point.
func (bw Bandwidth) Adaptive() bool { return bw.PerPoint != nil }

// At returns the bandwidth that applies to column j.
func (bw Bandwidth) At(j int) float64 {
	if bw.PerPoint != nil {
		return bw.PerPoint[j]
	}
	return bw.Scalar
}

// scale returns bw with every value multiplied by fac.
func (bw Bandwidth) scale(fac float64) Bandwidth {
	if bw.PerPoint == nil {
		return Bandwidth{Scalar: bw.Scalar * fac}
	}
	scaled := make([]float64, len(bw.PerPoint))
	for i, v := range bw.PerPoint {
		scaled[i] = v * fac
	}
	return Bandwidth{PerPoint: scaled}
}

type specKind int

const (
	specUnset specKind = iota
	specHeuristic
	specFixed
	specFunc
)

// Spec selects how the bandwidth is obtained: a named heuristic, a
// fixed numeric value, or a user function. The zero Spec is invalid;
// construct via ByHeuristic, Fixed, or ByFunc.
type Spec struct {
	kind      specKind
	heuristic Heuristic
	fixed     float64
	fn        Func
}

// ByHeuristic selects a named bandwidth heuristic.
func ByHeuristic(h Heuristic) Spec { return Spec{kind: specHeuristic, heuristic: h} }

// Fixed uses v verbatim as the shared bandwidth.
func Fixed(v float64) Spec { return Spec{kind: specFixed, fixed: v} }

// ByFunc resolves the bandwidth through a user function.
func ByFunc(fn Func) Spec { return Spec{kind: specFunc, fn: fn} }

// Validate checks the Spec before any distance work is done.
// Returns ErrInvalidBandwidthSpec for the zero Spec, an unknown
// heuristic name, or a nil function.
func (s Spec) Validate() error {
	switch s.kind {
	case specFixed:
		return nil
	case specFunc:
		if s.fn == nil {
			return fmt.Errorf("%w: nil bandwidth func", ErrInvalidBandwidthSpec)
		}
		return nil
	case specHeuristic:
		switch s.heuristic {
		case MinMax, Median, StdDev, KNN:
			return nil
		}
		return fmt.Errorf("%w: unknown heuristic %q (known: minmax, median, std, knn)",
			ErrInvalidBandwidthSpec, string(s.heuristic))
	}
	return fmt.Errorf("%w: empty spec", ErrInvalidBandwidthSpec)
}

// resolve turns the Spec into a concrete Bandwidth against the distance
// matrix d, and reports which branch fired for logging.
func (s Spec) resolve(d *mat.Dense, k int) (Bandwidth, string, error) {
	if err := s.Validate(); err != nil {
		return Bandwidth{}, "", err
	}
	switch s.kind {
	case specFixed:
		return Bandwidth{Scalar: s.fixed}, "fixed", nil
	case specFunc:
		bw, err := s.fn(d)
		if err != nil {
			return Bandwidth{}, "", fmt.Errorf("kernel: bandwidth func: %w", err)
		}
		return bw, "func", nil
	}

	rows, cols := d.Dims()
	switch s.heuristic {
	case MinMax:
		// Exclude self-distances, take column minima, keep the largest.
		epsVal := math.Inf(-1)
		for j := 0; j < cols; j++ {
			colMin := math.Inf(1)
			for i := 0; i < rows; i++ {
				v := d.At(i, j)
				if i == j {
					v += diagExclusion
				}
				if v < colMin {
					colMin = v
				}
			}
			if colMin > epsVal {
				epsVal = colMin
			}
		}
		return Bandwidth{Scalar: 2 * epsVal * epsVal}, "minmax", nil

	case Median:
		rowMedians := make([]float64, rows)
		buf := make([]float64, cols)
		for i := 0; i < rows; i++ {
			copy(buf, d.RawRowView(i))
			rowMedians[i] = median(buf)
		}
		return Bandwidth{Scalar: median(rowMedians)}, "median", nil

	case StdDev:
		colMeans := make([]float64, cols)
		for j := 0; j < cols; j++ {
			sum := 0.0
			for i := 0; i < rows; i++ {
				sum += d.At(i, j)
			}
			colMeans[j] = sum / float64(rows)
		}
		return Bandwidth{Scalar: stat.StdDev(colMeans, nil)}, "std", nil

	case KNN:
		if k < 0 || k >= rows {
			return Bandwidth{}, "", fmt.Errorf(
				"%w: knn heuristic needs 0 <= k < %d rows, got k=%d",
				ErrInvalidBandwidthSpec, rows, k)
		}
		per := make([]float64, cols)
		col := make([]float64, rows)
		for j := 0; j < cols; j++ {
			mat.Col(col, j, d)
			sort.Float64s(col)
			per[j] = col[k] // deliberate: index k, not k+1
		}
		return Bandwidth{PerPoint: per}, "knn", nil
	}
	// Unreachable: Validate covered unknown heuristics.
	return Bandwidth{}, "", ErrInvalidBandwidthSpec
}

// median computes the numpy-style median: mean of the two middle values
// for even lengths. Reorders xs in place.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}
