// Package noise models the generation noise used by the SUGAR sampler:
// either a single isotropic variance shared by every point, or one
// local covariance matrix per point, estimated over each point's
// k-nearest-neighbor cloud (self included, unbiased estimator).
//
// Estimation may fan out across a worker pool, sized "all but one
// core" by default, but the pool only partitions independent per-point
// work, so results never depend on the worker count.
package noise
