package diffusion

import "sort"

// Percentile computes the p-th percentile (p in [0,100]) of xs under
// the MATLAB/IDL convention: sorted values are ranked at
// 100·(i+0.5)/n, the result is linearly interpolated between ranks and
// clamped to the data extremes outside them.
//
// This deliberately differs from the common numpy/gonum conventions;
// the diffusion rescale step depends on this exact interpolation.
func Percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	data := make([]float64, n)
	copy(data, xs)
	sort.Float64s(data)

	if n == 1 {
		return data[0]
	}
	lo := 100 * 0.5 / float64(n)
	hi := 100 * (float64(n) - 0.5) / float64(n)
	if p <= lo {
		return data[0]
	}
	if p >= hi {
		return data[n-1]
	}
	// Find the surrounding ranks and interpolate.
	pos := p/100*float64(n) - 0.5
	i := int(pos)
	frac := pos - float64(i)
	return data[i] + frac*(data[i+1]-data[i])
}
