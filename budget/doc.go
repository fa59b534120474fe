// Package budget converts a degree estimate (plus the noise model that
// will drive generation) into the integer number of new points to
// synthesize around each source point.
//
// Two policies:
//   - plain difference-from-max-density, scaled to a requested total M
//     (M ≤ 0 defaults to N, "generate about as many points as we have")
//   - density equalization, where the difference from max density is
//     weighted by the ratio of kernel bandwidth to noise bandwidth:
//     ((σ_k²+σ_n²)/(2σ_n²))^(D/2) for scalar noise, or the per-point
//     determinant form det(I + Σ/(2σ_k²))^½ for local covariances
//
// Degenerate outcomes are advisory, never fatal: a zero-mass budget
// falls back to one point per source (with a warning), and totals above
// 10,000 are flagged but returned as computed.
package budget
