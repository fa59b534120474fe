// Package kernel: sentinel error set.
// All exported functions return these sentinels (optionally wrapped with
// fmt.Errorf("...: %w", ErrX)); tests match them via errors.Is.

package kernel

import "errors"

var (
	// ErrInvalidBandwidthSpec is returned when a bandwidth Spec is none of:
	// a recognized heuristic, a fixed numeric value, or a user function.
	// It is raised before any distance computation.
	ErrInvalidBandwidthSpec = errors.New("kernel: invalid bandwidth spec")

	// ErrEmptyInput indicates a point set with no rows or no columns.
	ErrEmptyInput = errors.New("kernel: input point set is empty")

	// ErrDimensionMismatch indicates the two point sets disagree on
	// feature dimensionality.
	ErrDimensionMismatch = errors.New("kernel: point sets have different dimensionality")
)
