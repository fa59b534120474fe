// Package kernel builds alpha-decay affinity kernels over point sets
// and derives degree / sparsity estimates from them.
//
// 🚀 What lives here?
//
//	The first half of the SUGAR pipeline:
//	  • Spec / Bandwidth — how the kernel bandwidth σ is chosen:
//	    a named heuristic (min-max, median, std, knn), a fixed scalar,
//	    or a user function over the distance matrix.
//	  • Build — K = exp(-(D/σ)^α) over two (possibly different) point
//	    sets, with NaN zeroing, a 1e-3 affinity floor, and
//	    transpose-averaged symmetrization of square kernels.
//	  • Degrees — per-point degree d̂ (column mass rescaled so that
//	    Σd̂ = N) and sparsity ŝ = 1/d̂.
//
// ⚙️ Usage:
//
//	import "github.com/geomlab/sugar/kernel"
//
//	opts := kernel.DefaultOptions()
//	opts.Alpha = 2 // Gaussian decay
//	k, bw, err := kernel.Build(data, data, kernel.ByHeuristic(kernel.KNN), opts)
//
// Invariants:
//   - every kernel entry lies in [0,1]; square kernels are symmetric
//   - identical input points (zero distances) never produce NaNs
//   - Σ degree ≈ N; sparsity is +Inf where degree is exactly 0, and
//     downstream consumers must tolerate that
//
// The knn heuristic deliberately takes the k-th smallest distance per
// column in a 0-indexed sort, i.e. the (k+1)-th nearest neighbor.
// Changing the indexing would silently shift every knn bandwidth.
package kernel
