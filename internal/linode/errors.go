package linode

import "errors"

// Domain errors for solver calls. All validation happens before any
// parallel work launches, so a returned error implies the state vector
// was not touched.
var (
	// ErrUnknownMethod indicates an unrecognized integration method name.
	ErrUnknownMethod = errors.New("linode: unknown integration method")

	// ErrMatrixShape indicates a coefficient matrix whose leading dimension
	// matches none of the recognized structural cases (1, 2, or batch width).
	ErrMatrixShape = errors.New("linode: matrix shape matches no structural case")

	// ErrMatrixData indicates a matrix whose backing slice does not hold
	// rows*rows entries.
	ErrMatrixData = errors.New("linode: matrix data length does not match shape")

	// ErrDimensionMismatch indicates state and scale vectors of different length.
	ErrDimensionMismatch = errors.New("linode: state and scale length mismatch")

	// ErrOddPairing indicates a paired (skew) kernel asked to split an
	// odd-width batch into pairs.
	ErrOddPairing = errors.New("linode: paired kernel requires even batch width")

	// ErrNegativeSteps indicates a negative step count.
	ErrNegativeSteps = errors.New("linode: step count must be non-negative")
)
