package sample

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/geomlab/sugar/diag"
	"github.com/geomlab/sugar/noise"
)

// ErrSizeMismatch indicates budget, labels or the noise model disagree
// with the number of source points.
var ErrSizeMismatch = errors.New("sample: budget, labels and noise model sizes disagree")

// Draw generates sum(budget) points around data (N×D) according to the
// noise model, replicating labels (optional, length N) alongside.
//
// A zero total budget yields (nil, nil, nil): an empty point set.
// src may be nil, in which case the process-wide generator is used.
func Draw(data *mat.Dense, budget []int, model noise.Model, labels []int, src rand.Source, log diag.Logger) (*mat.Dense, []int, error) {
	log = diag.OrNop(log)
	n, d := data.Dims()
	if len(budget) != n {
		return nil, nil, fmt.Errorf("%w: %d points vs %d budget entries", ErrSizeMismatch, n, len(budget))
	}
	if labels != nil && len(labels) != n {
		return nil, nil, fmt.Errorf("%w: %d points vs %d labels", ErrSizeMismatch, n, len(labels))
	}
	if model.Adaptive() && len(model.Local) != n {
		return nil, nil, fmt.Errorf("%w: %d points vs %d local covariances", ErrSizeMismatch, n, len(model.Local))
	}

	total := 0
	for _, c := range budget {
		if c < 0 {
			return nil, nil, fmt.Errorf("%w: negative budget entry", ErrSizeMismatch)
		}
		total += c
	}
	if total == 0 {
		log.Warnf("sample: zero total budget, nothing to generate")
		return nil, nil, nil
	}

	out := mat.NewDense(total, d, nil)
	var outLabels []int
	if labels != nil {
		outLabels = make([]int, 0, total)
	}

	if !model.Adaptive() {
		if err := drawScalar(out, data, budget, model.Variance, src, log); err != nil {
			return nil, nil, err
		}
	} else {
		drawLocal(out, data, budget, model.Local, src)
	}

	if labels != nil {
		for i, c := range budget {
			for r := 0; r < c; r++ {
				outLabels = append(outLabels, labels[i])
			}
		}
	}
	return out, outLabels, nil
}

// drawScalar fills out with draws from N(center_i, variance·I), grouped
// by source index. A non-positive variance degenerates to replicating
// the centers unchanged.
func drawScalar(out, data *mat.Dense, budget []int, variance float64, src rand.Source, log diag.Logger) error {
	_, d := data.Dims()
	log.Infof("sample: constant covariance, sharing one noise distribution")

	var normal *distmv.Normal
	if variance > 0 {
		sigma := mat.NewSymDense(d, nil)
		for i := 0; i < d; i++ {
			sigma.SetSym(i, i, variance)
		}
		var ok bool
		normal, ok = distmv.NewNormal(make([]float64, d), sigma, src)
		if !ok {
			// Diagonal positive covariance always factorizes; treat a
			// failure as programmer error.
			return fmt.Errorf("sample: isotropic covariance failed to factorize (variance=%g)", variance)
		}
	} else {
		log.Warnf("sample: non-positive noise variance %g, replicating centers without noise", variance)
	}

	row := 0
	buf := make([]float64, d)
	for i, c := range budget {
		center := data.RawRowView(i)
		for r := 0; r < c; r++ {
			if normal != nil {
				normal.Rand(buf)
			} else {
				for j := range buf {
					buf[j] = 0
				}
			}
			for j := 0; j < d; j++ {
				out.Set(row, j, center[j]+buf[j])
			}
			row++
		}
	}
	return nil
}

// drawLocal fills out with draws from N(center_i, Σ_i), using a PSD
// eigen-sampler per point so singular local covariances stay valid.
func drawLocal(out, data *mat.Dense, budget []int, local []*mat.SymDense, src rand.Source) {
	_, d := data.Dims()
	var rng *rand.Rand
	if src != nil {
		rng = rand.New(src)
	}

	var es mat.EigenSym
	var vecs mat.Dense
	scaled := make([]float64, d)
	z := make([]float64, d)

	row := 0
	for i, c := range budget {
		if c == 0 {
			continue
		}
		if !es.Factorize(local[i], true) {
			// Symmetric real matrices always admit an eigendecomposition;
			// a failure here means non-finite covariance entries.
			for r := 0; r < c; r++ {
				out.SetRow(row, data.RawRowView(i))
				row++
			}
			continue
		}
		vals := es.Values(nil)
		es.VectorsTo(&vecs)

		center := data.RawRowView(i)
		for r := 0; r < c; r++ {
			for j := 0; j < d; j++ {
				if rng != nil {
					z[j] = rng.NormFloat64()
				} else {
					z[j] = rand.NormFloat64()
				}
				// Clamp tiny negative eigenvalues from roundoff.
				scaled[j] = z[j] * math.Sqrt(math.Max(vals[j], 0))
			}
			for j := 0; j < d; j++ {
				v := center[j]
				for q := 0; q < d; q++ {
					v += vecs.At(j, q) * scaled[q]
				}
				out.Set(row, j, v)
			}
			row++
		}
	}
}
