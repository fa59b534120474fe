package noise

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/geomlab/sugar/diag"
)

// ErrInsufficientNeighbors is returned when k exceeds the available
// neighbors (k > N-1) or the data has fewer than 2 points.
var ErrInsufficientNeighbors = errors.New("noise: not enough points for neighborhood covariance")

// Model is the tagged noise variant consumed by the allocator and the
// sampler: a shared scalar variance when Local is nil, otherwise one
// D×D covariance per point.
type Model struct {
	Variance float64
	Local    []*mat.SymDense // nil for the scalar variant
}

// Scalar wraps a shared isotropic variance.
func Scalar(v float64) Model { return Model{Variance: v} }

// Adaptive reports whether the model carries per-point covariances.
func (m Model) Adaptive() bool { return m.Local != nil }

// Dim returns the feature dimensionality of the local covariances, or
// 0 for the scalar variant.
func (m Model) Dim() int {
	if len(m.Local) == 0 {
		return 0
	}
	return m.Local[0].SymmetricDim()
}

// Estimate computes a per-point local covariance Model from data (N×D):
// for each point, the sample covariance (N-1 denominator) over its k
// nearest neighbors, the point itself included.
//
// workers <= 0 selects "all but one available core". The pool is an
// optimization only; output is identical for any worker count.
func Estimate(data *mat.Dense, k, workers int, log diag.Logger) (Model, error) {
	log = diag.OrNop(log)
	n, d := data.Dims()
	if n < 2 {
		return Model{}, fmt.Errorf("%w: need at least 2 points, have %d", ErrInsufficientNeighbors, n)
	}
	if k > n-1 {
		return Model{}, fmt.Errorf("%w: k=%d exceeds N-1=%d", ErrInsufficientNeighbors, k, n-1)
	}
	if k < 2 {
		return Model{}, fmt.Errorf("%w: k=%d neighborhoods cannot support an unbiased covariance", ErrInsufficientNeighbors, k)
	}

	if workers <= 0 {
		workers = runtime.NumCPU() - 1
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	log.Infof("noise: estimating %d local covariances (k=%d, workers=%d)", n, k, workers)

	local := make([]*mat.SymDense, n)
	var wg sync.WaitGroup
	rowsCh := make(chan int, n)
	for i := 0; i < n; i++ {
		rowsCh <- i
	}
	close(rowsCh)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dist := make([]float64, n)
			order := make([]int, n)
			for i := range rowsCh {
				ri := data.RawRowView(i)
				for j := 0; j < n; j++ {
					dist[j] = floats.Distance(ri, data.RawRowView(j), 2)
					order[j] = j
				}
				// Self sits at distance 0 and is kept, per standard
				// k-NN query semantics.
				sort.SliceStable(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })

				hood := mat.NewDense(k, d, nil)
				for r := 0; r < k; r++ {
					hood.SetRow(r, data.RawRowView(order[r]))
				}
				var cov mat.SymDense
				stat.CovarianceMatrix(&cov, hood, nil)
				local[i] = &cov
			}
		}()
	}
	wg.Wait()

	return Model{Local: local}, nil
}
