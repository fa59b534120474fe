package budget

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/diag"
	"github.com/geomlab/sugar/kernel"
	"github.com/geomlab/sugar/noise"
)

// massEpsilon guards the rescale division against an all-zero raw mass.
const massEpsilon = 1e-17

// overflowThreshold is the advisory ceiling on the total budget.
const overflowThreshold = 10000

// ErrSizeMismatch indicates the degree vector, adaptive bandwidth and
// local covariance model disagree on the number of points.
var ErrSizeMismatch = errors.New("budget: degree, bandwidth and noise model sizes disagree")

// Allocate computes the per-point generation budget.
//
// degree is the N-length degree estimate; model and kernelBW are the
// noise model and kernel bandwidth that will drive generation; dim is
// the feature dimensionality (used by the scalar equalization closed
// form); m is the requested total (see package doc); equalize selects
// the density-equalization policy.
func Allocate(degree []float64, model noise.Model, kernelBW kernel.Bandwidth, dim, m int, equalize bool, log diag.Logger) ([]int, error) {
	log = diag.OrNop(log)
	n := len(degree)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty degree vector", ErrSizeMismatch)
	}
	if kernelBW.Adaptive() && len(kernelBW.PerPoint) != n {
		return nil, fmt.Errorf("%w: %d degrees vs %d bandwidths", ErrSizeMismatch, n, len(kernelBW.PerPoint))
	}
	if model.Adaptive() && len(model.Local) != n {
		return nil, fmt.Errorf("%w: %d degrees vs %d local covariances", ErrSizeMismatch, n, len(model.Local))
	}

	maxDegree := floats.Max(degree)
	raw := make([]float64, n)

	if equalize {
		if !model.Adaptive() {
			log.Infof("budget: density equalization with scalar noise covariance")
			noiseVar := model.Variance
			for i := range raw {
				sigma := kernelBW.At(i)
				factor := math.Pow(
					(sigma*sigma+noiseVar*noiseVar)/(2*noiseVar*noiseVar),
					float64(dim)/2,
				)
				raw[i] = (maxDegree - degree[i]) * factor
			}
		} else {
			log.Infof("budget: density equalization with local noise covariance")
			for i := range raw {
				sigma := kernelBW.At(i)
				factor := math.Sqrt(inflationDet(model.Local[i], sigma))
				raw[i] = (maxDegree - degree[i]) * factor
			}
		}

		if m > 0 {
			log.Infof("budget: applying total generation constraint M=%d", m)
			rawSum := floats.Sum(raw)
			if ratio := float64(m) / rawSum; ratio < 1e-1 {
				log.Warnf("budget: M is %.1f%% of the equalized total; output will reflect equalization, increasing M is suggested",
					ratio*100)
			}
			floats.Scale(float64(m)/(rawSum+massEpsilon), raw)
		}
	} else {
		log.Infof("budget: generating without density equalization")
		if m <= 0 {
			log.Infof("budget: no M supplied, M = N = %d", n)
			m = n
		}
		for i := range raw {
			raw[i] = maxDegree - degree[i]
		}
		floats.Scale(float64(m)/(floats.Sum(raw)+massEpsilon), raw)
	}

	counts := make([]int, n)
	total := 0
	for i, v := range raw {
		c := int(math.Floor(v))
		if c < 0 {
			c = 0
		}
		counts[i] = c
		total += c
	}

	// Advisory post-conditions, never fatal.
	if total == 0 {
		log.Warnf("budget: point generation estimate is 0; provide/increase M or decrease the noise scale (falling back to 1 per point)")
		for i := range counts {
			counts[i] = 1
		}
	} else if total > overflowThreshold {
		log.Warnf("budget: point generation estimate %d exceeds %d; provide/decrease M or increase the noise scale", total, overflowThreshold)
	}
	return counts, nil
}

// inflationDet computes det(I + Σ/(2σ²)) for one local covariance.
func inflationDet(cov *mat.SymDense, sigma float64) float64 {
	d := cov.SymmetricDim()
	a := mat.NewDense(d, d, nil)
	scale := 1 / (2 * sigma * sigma)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			v := cov.At(i, j) * scale
			if i == j {
				v++
			}
			a.Set(i, j, v)
		}
	}
	var lu mat.LU
	lu.Factorize(a)
	return lu.Det()
}
