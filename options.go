package sugar

import (
	"math/rand/v2"

	"github.com/geomlab/sugar/diag"
	"github.com/geomlab/sugar/kernel"
)

// Options configures one Generate call. Start from DefaultOptions and
// override what you need.
type Options struct {
	// Labels optionally carries one class label per input point; they
	// are replicated onto the generated points. nil disables labels.
	Labels []int

	// NoiseKNN selects the adaptive noise model: a local covariance per
	// point over its NoiseK nearest neighbors. When false, NoiseCov is
	// used as a shared isotropic variance and the covariance estimation
	// stage is skipped entirely.
	NoiseKNN bool
	// NoiseCov is the shared noise variance (NoiseKNN=false only).
	NoiseCov float64
	// NoiseK is the neighborhood size for covariance estimation.
	NoiseK int

	// DegreeSpec is the bandwidth policy of the degree-estimate kernel.
	DegreeSpec kernel.Spec
	// DegreeK, DegreeAlpha, DegreeFac parameterize the degree kernel:
	// knn neighbor index, decay exponent (2 = Gaussian), bandwidth
	// rescale factor.
	DegreeK     int
	DegreeAlpha float64
	DegreeFac   float64

	// M is the requested number of points to generate; 0 lets the
	// allocator pick its default (≈N without equalization, the
	// unconstrained equalization mass with it).
	M int
	// Equalize switches the allocator to density equalization.
	Equalize bool

	// MGCT is the number of MGC-MAGIC diffusion steps; 0 skips the
	// correction and the generated points pass through raw.
	MGCT int
	// MGCSpec, MGCK, MGCAlpha, MGCFac parameterize the MGC kernels.
	MGCSpec  kernel.Spec
	MGCK     int
	MGCAlpha float64
	MGCFac   float64
	// MagicRescale re-matches the 95th percentile of the corrected
	// points to the raw ones after diffusion.
	MagicRescale bool

	// Workers sizes the covariance worker pool; <= 0 means all but one
	// available core. Never affects results.
	Workers int

	// Src seeds all randomness; nil uses the process-wide generator.
	Src rand.Source
	// Log receives stage diagnostics; nil disables logging.
	Log diag.Logger
}

// DefaultOptions returns the canonical pipeline configuration: adaptive
// k-NN noise with k=5, "std" degree bandwidth, Gaussian decay, one MGC
// diffusion step with "knn" bandwidth, percentile rescale on.
func DefaultOptions() Options {
	return Options{
		NoiseKNN:     true,
		NoiseK:       5,
		DegreeSpec:   kernel.ByHeuristic(kernel.StdDev),
		DegreeK:      5,
		DegreeAlpha:  2,
		DegreeFac:    1,
		MGCT:         1,
		MGCSpec:      kernel.ByHeuristic(kernel.KNN),
		MGCK:         5,
		MGCAlpha:     2,
		MGCFac:       1,
		MagicRescale: true,
	}
}
