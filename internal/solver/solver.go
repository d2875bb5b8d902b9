package solver

import (
	"fmt"

	"github.com/Zymrael/torchODE/internal/kernel"
	"github.com/Zymrael/torchODE/internal/linode"
)

// Options adjusts dispatch for the general (W×W) structural case.
type Options struct {
	// Diagonal treats a full-width matrix as uncoupled, reading only F[i][i]
	// per element instead of pairing the batch as (i, i+W/2).
	Diagonal bool
}

// Solve integrates dx/dt = F·x·g forward by steps timesteps of size dt using
// the named method, mutating x0 in place and returning it.
func Solve(F linode.Matrix, x0, g linode.State, dt float64, steps int, name string) (linode.State, error) {
	return SolveWith(kernel.GetBackend(), F, x0, g, dt, steps, name, Options{})
}

// SolveWith is Solve with an explicit backend and dispatch options.
// Validation happens before any parallel work: on error x0 is untouched.
func SolveWith(b kernel.Backend, F linode.Matrix, x0, g linode.State, dt float64, steps int, name string, opts Options) (linode.State, error) {
	method, err := linode.ParseMethod(name)
	if err != nil {
		return nil, err
	}
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d", linode.ErrNegativeSteps, steps)
	}
	if len(x0) != len(g) {
		return nil, fmt.Errorf("%w: state %d, scale %d",
			linode.ErrDimensionMismatch, len(x0), len(g))
	}
	if F.Rows < 1 || len(F.Data) != F.Rows*F.Rows {
		return nil, fmt.Errorf("%w: rows=%d, data=%d",
			linode.ErrMatrixData, F.Rows, len(F.Data))
	}

	variant, err := kernel.Select(F.Rows, len(x0), opts.Diagonal)
	if err != nil {
		return nil, err
	}

	if steps == 0 {
		return x0, nil
	}

	b.Run(kernel.Request{
		Variant: variant,
		Step:    method.Step(),
		F:       F,
		X:       x0,
		G:       g,
		Dt:      dt,
		Steps:   steps,
	})

	return x0, nil
}
