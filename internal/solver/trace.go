package solver

import (
	"github.com/Zymrael/torchODE/internal/kernel"
	"github.com/Zymrael/torchODE/internal/linode"
)

// Trajectory holds snapshots of the state vector over an integration run,
// including the initial state at t=0.
type Trajectory struct {
	Times  []float64
	States []linode.State
}

func (tr *Trajectory) Final() linode.State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Series extracts one element's value over time.
func (tr *Trajectory) Series(i int) []float64 {
	out := make([]float64, 0, len(tr.States))
	for _, s := range tr.States {
		if i < len(s) {
			out = append(out, s[i])
		}
	}
	return out
}

// Width returns the batch width of the traced run.
func (tr *Trajectory) Width() int {
	if len(tr.States) == 0 {
		return 0
	}
	return len(tr.States[0])
}

// Trace runs the solver in chunks of every steps, snapshotting the state
// after each chunk. The engine holds no state between calls, so chunked
// execution reproduces a single solve of the same total step count exactly.
func Trace(F linode.Matrix, x0, g linode.State, dt float64, steps int, name string, every int) (*Trajectory, error) {
	return TraceWith(kernel.GetBackend(), F, x0, g, dt, steps, name, every, Options{})
}

func TraceWith(b kernel.Backend, F linode.Matrix, x0, g linode.State, dt float64, steps int, name string, every int, opts Options) (*Trajectory, error) {
	if every < 1 {
		every = 1
	}

	// Validate once up front with a zero-step call so a bad configuration
	// never produces a partially recorded trajectory.
	if _, err := SolveWith(b, F, x0, g, dt, 0, name, opts); err != nil {
		return nil, err
	}

	tr := &Trajectory{
		Times:  []float64{0},
		States: []linode.State{x0.Clone()},
	}

	done := 0
	for done < steps {
		chunk := every
		if steps-done < chunk {
			chunk = steps - done
		}
		if _, err := SolveWith(b, F, x0, g, dt, chunk, name, opts); err != nil {
			return nil, err
		}
		done += chunk
		tr.Times = append(tr.Times, float64(done)*dt)
		tr.States = append(tr.States, x0.Clone())
	}

	return tr, nil
}
