package budget_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/geomlab/sugar/budget"
	"github.com/geomlab/sugar/diag"
	"github.com/geomlab/sugar/kernel"
	"github.com/geomlab/sugar/noise"
)

// hasWarning reports whether any recorded warning contains substr.
func hasWarning(rec *diag.Recorder, substr string) bool {
	for _, w := range rec.Warnings() {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// TestAllocate_PlainSumsToM: without equalization the budget scales the
// difference-from-max-degree to the requested total exactly (the
// fixture has no fractional remainders to floor away).
func TestAllocate_PlainSumsToM(t *testing.T) {
	degree := []float64{2, 1, 1}
	counts, err := budget.Allocate(degree, noise.Scalar(1), kernel.Bandwidth{Scalar: 1}, 1, 50, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 25, 25}, counts)
}

// TestAllocate_PlainDefaultsToN: M <= 0 falls back to "generate about N
// points".
func TestAllocate_PlainDefaultsToN(t *testing.T) {
	degree := []float64{2, 1, 1}
	counts, err := budget.Allocate(degree, noise.Scalar(1), kernel.Bandwidth{Scalar: 1}, 1, 0, false, nil)
	require.NoError(t, err)
	// raw [0 1 1] scaled to 3 → [0 1.5 1.5] → floored.
	assert.Equal(t, []int{0, 1, 1}, counts)
}

// TestAllocate_ZeroMassFallsBackToOnes: uniform degrees leave no mass;
// the allocator warns and hands back one point per source.
func TestAllocate_ZeroMassFallsBackToOnes(t *testing.T) {
	rec := &diag.Recorder{}
	degree := []float64{1, 1, 1, 1}
	counts, err := budget.Allocate(degree, noise.Scalar(1), kernel.Bandwidth{Scalar: 1}, 1, 10, false, rec)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, counts)
	assert.True(t, hasWarning(rec, "falling back"), "degenerate mass must be warned about")
}

// TestAllocate_OverflowWarns: totals above 10,000 are advisory — the
// computed budget is still returned.
func TestAllocate_OverflowWarns(t *testing.T) {
	rec := &diag.Recorder{}
	degree := []float64{2, 1}
	counts, err := budget.Allocate(degree, noise.Scalar(1), kernel.Bandwidth{Scalar: 1}, 1, 20000, false, rec)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 20000}, counts)
	assert.True(t, hasWarning(rec, "exceeds"), "budget overflow must be warned about")
}

// TestAllocate_EqualizeScalarClosedForm pins the scalar equalization
// factor: σ_k=2, σ_n=1, dim=2 → ((4+1)/(2·1))^(2/2) = 2.5, floored.
func TestAllocate_EqualizeScalarClosedForm(t *testing.T) {
	degree := []float64{2, 1}
	bw := kernel.Bandwidth{Scalar: 2}
	counts, err := budget.Allocate(degree, noise.Scalar(1), bw, 2, 0, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, counts)
}

// TestAllocate_EqualizeLocalDeterminant pins the per-point determinant
// form: Σ = 2I, σ_k=1 → det(I + Σ/2)^½ = det(2I)^½ = 2.
func TestAllocate_EqualizeLocalDeterminant(t *testing.T) {
	cov := func() *mat.SymDense {
		c := mat.NewSymDense(2, nil)
		c.SetSym(0, 0, 2)
		c.SetSym(1, 1, 2)
		return c
	}
	model := noise.Model{Local: []*mat.SymDense{cov(), cov()}}
	degree := []float64{2, 1}
	counts, err := budget.Allocate(degree, model, kernel.Bandwidth{Scalar: 1}, 2, 0, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, counts)
}

// TestAllocate_UnderConstrainedWarns: M far below the unconstrained
// equalization mass is flagged but honored.
func TestAllocate_UnderConstrainedWarns(t *testing.T) {
	rec := &diag.Recorder{}
	degree := []float64{101, 1} // raw mass 100 with a unit factor
	counts, err := budget.Allocate(degree, noise.Scalar(1), kernel.Bandwidth{Scalar: 1}, 0, 5, true, rec)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5}, counts)
	assert.True(t, hasWarning(rec, "equaliz"), "under-constrained M must be warned about")
}

// TestAllocate_SizeMismatch validates vector lengths up front.
func TestAllocate_SizeMismatch(t *testing.T) {
	degree := []float64{2, 1, 1}
	bw := kernel.Bandwidth{PerPoint: []float64{1, 1}} // wrong length
	_, err := budget.Allocate(degree, noise.Scalar(1), bw, 1, 0, false, nil)
	assert.ErrorIs(t, err, budget.ErrSizeMismatch)

	model := noise.Model{Local: []*mat.SymDense{mat.NewSymDense(1, nil)}}
	_, err = budget.Allocate(degree, model, kernel.Bandwidth{Scalar: 1}, 1, 0, false, nil)
	assert.ErrorIs(t, err, budget.ErrSizeMismatch)

	_, err = budget.Allocate(nil, noise.Scalar(1), kernel.Bandwidth{Scalar: 1}, 1, 0, false, nil)
	assert.ErrorIs(t, err, budget.ErrSizeMismatch)
}
