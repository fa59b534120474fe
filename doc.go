// Package sugar generates synthetic points that respect the geometry
// of an existing point cloud — SUGAR, Synthesis Using Geometrically
// Aligned Random-walks (https://arxiv.org/abs/1802.04927).
//
// 🚀 What does it do?
//
//	Given an N×D point set sampled from some underlying manifold, the
//	pipeline estimates where the data is under-sampled, synthesizes new
//	points there, and diffuses them back onto the manifold:
//		1. kernel.Degrees    — degree/sparsity estimate via an
//		   alpha-decay affinity kernel with a pluggable bandwidth policy
//		2. noise.Estimate    — per-point local covariance from k-NN
//		   neighborhoods (skipped for a fixed scalar noise)
//		3. budget.Allocate   — how many points to draw around each
//		   source point (density equalization or constant difference)
//		4. sample.Draw       — Gaussian draws around the sources
//		5. diffusion.MGCMagic — sparsity-weighted cross-set diffusion
//		   pulling the draws onto the source manifold (skipped at t=0)
//
// ✨ Why this library?
//
//   - Geometry-aware oversampling for imbalanced / under-sampled data,
//     where naive resampling ignores manifold structure
//   - Every stage returns its artifacts: degrees, bandwidths, noise
//     model, budgets, raw and corrected points — nothing is hidden
//   - No global state: randomness and logging are injected per call
//
// ⚙️ Usage:
//
//	import "github.com/geomlab/sugar"
//
//	opts := sugar.DefaultOptions()
//	opts.M = 500            // target number of new points
//	opts.Equalize = true    // fill sparse regions preferentially
//	res, err := sugar.Generate(data, opts)
//	// res.Points holds the corrected synthetic points
//
// Subpackages (usable on their own):
//
//	kernel/    — bandwidth policies, affinity kernels, degree estimates
//	noise/     — local covariance noise model
//	budget/    — per-point generation budgets
//	sample/    — multivariate normal point generation
//	diffusion/ — MAGIC and MGC-MAGIC correction
//	diag/      — injectable leveled logging (zap-compatible)
//	dataset/   — demo data for examples and tests
//
// The pipeline is single-threaded and synchronous (only the local
// covariance step may fan out over a worker pool, without affecting
// results), operates on in-memory dense data of moderate size, and
// never mutates its inputs.
package sugar
