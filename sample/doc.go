// Package sample draws the synthetic points: for each source point i
// with budget n_i, n_i independent multivariate-normal draws centered
// on that point.
//
// The two noise variants are two deliberately separate code paths
// (keeping the degenerate shape handling auditable):
//   - shared isotropic variance — a single zero-mean gonum distmv
//     Normal, centers added per draw
//   - per-point covariance — PSD sampling through an eigendecomposition
//     of each local covariance, so rank-deficient neighborhoods (e.g.
//     collinear points) sample on their degenerate subspace instead of
//     failing a Cholesky factorization
//
// Output rows are grouped by source index in source order; within a
// group the draw order is unspecified. Labels, when supplied, are
// replicated alongside.
package sample
