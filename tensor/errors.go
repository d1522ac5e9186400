package tensor

import "github.com/pkg/errors"

// Sentinel errors for the engine's failure classes. Operations wrap these
// with per-axis context; match with errors.Is.
var (
	// ErrDimensionMismatch reports a buffer or axis extent that does not
	// match the governing space.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrSpaceMismatch reports index spaces that fail the exact equality or
	// duality an operation requires.
	ErrSpaceMismatch = errors.New("tensor: space mismatch")

	// ErrLabelMismatch reports a label pattern that does not describe a
	// valid permutation, trace or contraction.
	ErrLabelMismatch = errors.New("tensor: label mismatch")

	// ErrIndexRange reports an axis index outside the tensor's axes or a
	// malformed bipartition.
	ErrIndexRange = errors.New("tensor: index out of range")

	// ErrComplexEigen reports an eigendecomposition whose spectrum is not
	// real to working precision.
	ErrComplexEigen = errors.New("tensor: complex eigenvalues")
)
