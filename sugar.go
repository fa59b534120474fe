package sugar

import (
	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/budget"
	"github.com/geomlab/sugar/diag"
	"github.com/geomlab/sugar/diffusion"
	"github.com/geomlab/sugar/kernel"
	"github.com/geomlab/sugar/noise"
	"github.com/geomlab/sugar/sample"
)

// Result carries the generated points plus every intermediate artifact
// of the pipeline — downstream consumers may need any of them for
// visualization or further analysis.
type Result struct {
	// Points are the final synthetic points (MGC-corrected when
	// Options.MGCT > 0, raw otherwise). nil when nothing was generated.
	Points *mat.Dense
	// Labels are the class labels replicated onto Points; nil when the
	// input carried none.
	Labels []int

	// Degree and Sparsity are the per-source-point density estimates.
	Degree   []float64
	Sparsity []float64
	// Bandwidth is the resolved degree-kernel bandwidth.
	Bandwidth kernel.Bandwidth
	// Noise is the noise model that drove generation.
	Noise noise.Model
	// Budget is the per-source-point generation count.
	Budget []int
	// RawPoints are the draws before diffusion correction.
	RawPoints *mat.Dense
	// MGCKernel and MGCOperator are the cross-set kernel and its
	// row-stochastic operator; nil when the MGC step was skipped.
	MGCKernel   *mat.Dense
	MGCOperator *mat.Dense
}

// Generate runs the full SUGAR pipeline on data (N×D).
//
// Stage 1 (Degrees): degree/sparsity estimate through the degree kernel.
// Stage 2 (Noise): local covariance estimation, only in NoiseKNN mode.
// Stage 3 (Budget): per-point generation counts.
// Stage 4 (Sample): Gaussian draws around the source points.
// Stage 5 (MGC-MAGIC): diffusion correction, only when MGCT > 0.
//
// Inputs are never mutated; every Result field is freshly allocated.
func Generate(data *mat.Dense, opts Options) (*Result, error) {
	log := diag.OrNop(opts.Log)
	log.Infof("sugar: initializing")

	_, dim := data.Dims()

	log.Infof("sugar: obtaining degree estimate")
	kopts := kernel.Options{K: opts.DegreeK, Alpha: opts.DegreeAlpha, Fac: opts.DegreeFac, Log: log}
	degree, sparsity, bw, err := kernel.Degrees(data, opts.DegreeSpec, kopts)
	if err != nil {
		return nil, err
	}

	model := noise.Scalar(opts.NoiseCov)
	if opts.NoiseKNN {
		log.Infof("sugar: estimating local covariance")
		model, err = noise.Estimate(data, opts.NoiseK, opts.Workers, log)
		if err != nil {
			return nil, err
		}
	}

	log.Infof("sugar: estimating number of points to generate")
	counts, err := budget.Allocate(degree, model, bw, dim, opts.M, opts.Equalize, log)
	if err != nil {
		return nil, err
	}

	log.Infof("sugar: generating points")
	raw, labels, err := sample.Draw(data, counts, model, opts.Labels, opts.Src, log)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Labels:    labels,
		Degree:    degree,
		Sparsity:  sparsity,
		Bandwidth: bw,
		Noise:     model,
		Budget:    counts,
		RawPoints: raw,
	}
	if raw == nil {
		// All-zero budget: nothing to correct.
		return res, nil
	}

	if opts.MGCT > 0 {
		log.Infof("sugar: diffusing points via MGC-MAGIC (t=%d)", opts.MGCT)
		mgcOpts := kernel.Options{K: opts.MGCK, Alpha: opts.MGCAlpha, Fac: opts.MGCFac, Log: log}
		corrected, mgcKernel, mgcOp, err := diffusion.MGCMagic(
			data, raw, sparsity, opts.MGCSpec, mgcOpts, opts.MGCT, opts.MagicRescale, log)
		if err != nil {
			return nil, err
		}
		res.Points = corrected
		res.MGCKernel = mgcKernel
		res.MGCOperator = mgcOp
	} else {
		res.Points = mat.DenseCopyOf(raw)
	}
	return res, nil
}
