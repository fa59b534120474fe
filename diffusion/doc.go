// Package diffusion implements the MAGIC correction step and its
// cross-set MGC-MAGIC variant.
//
// 🚀 What is MAGIC here?
//
//	A kernel is normalized into a row-stochastic Markov operator
//	(zero-degree rows become all-zero rather than diverging) and
//	applied t times to the point coordinates, smoothing them along the
//	data's implicit graph. Repeated diffusion shrinks norms, so an
//	optional rescale matches each output column's 95th percentile to
//	the input's — computed with the MATLAB/IDL rank-based percentile
//	convention (see Percentile), not a library default.
//
// ✨ MGC-MAGIC pulls freshly generated points Y back onto the manifold
// of the source points X: two rectangular kernels Y→X and X→Y are
// built with independently resolved bandwidths (the asymmetry is
// intentional), the Y→X kernel is weighted per-column by the sparsity
// of X, their product over Y is symmetrized, and MAGIC runs on it.
//
// With t = 0 MGC-MAGIC is a warned no-op: Y is returned unchanged and
// both kernel outputs are nil.
package diffusion
