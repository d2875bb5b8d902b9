package kernel

import (
	"runtime"
	"sync"
)

// serialThreshold is the batch width below which goroutine fan-out costs
// more than it saves.
const serialThreshold = 64

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) Run(req Request) {
	switch req.Variant {
	case CompactDiagonal:
		c.compactDiagonal(req)
	case GeneralDiagonal:
		c.generalDiagonal(req)
	case CompactSkew:
		c.compactSkew(req)
	case GeneralSkew:
		c.generalSkew(req)
	}
}

// parallel splits [0, n) units of work across workers and blocks until all
// finish. The join is the synchronization point of a run: no partial state
// is observable before it returns.
func (c *CPUBackend) parallel(n int, fn func(start, end int)) {
	if n < serialThreshold || c.workers <= 1 {
		fn(0, n)
		return
	}

	workers := c.workers
	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if start >= n {
			break
		}
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// compactDiagonal advances every element with the single shared coefficient
// F[0][0]. Elements are fully uncoupled.
func (c *CPUBackend) compactDiagonal(req Request) {
	coeff := req.F.At(0, 0)
	x, g := req.X, req.G
	step, dt := req.Step, req.Dt

	c.parallel(len(x), func(start, end int) {
		for i := start; i < end; i++ {
			xi := x[i]
			for t := 0; t < req.Steps; t++ {
				xi += step(coeff, xi, g[i], dt)
			}
			x[i] = xi
		}
	})
}

// generalDiagonal advances each element with its own diagonal coefficient
// F[i][i], ignoring off-diagonal entries.
func (c *CPUBackend) generalDiagonal(req Request) {
	x, g := req.X, req.G
	step, dt := req.Step, req.Dt

	c.parallel(len(x), func(start, end int) {
		for i := start; i < end; i++ {
			coeff := req.F.At(i, i)
			xi := x[i]
			for t := 0; t < req.Steps; t++ {
				xi += step(coeff, xi, g[i], dt)
			}
			x[i] = xi
		}
	})
}

// compactSkew advances pairs (i, i+W/2) with the four shared coefficients of
// a 2×2 matrix. Within a step the first element is updated before the second
// reads it; the pair belongs to a single unit of work, so the ordering needs
// no locking.
func (c *CPUBackend) compactSkew(req Request) {
	a, b := req.F.At(0, 0), req.F.At(0, 1)
	p, d := req.F.At(1, 0), req.F.At(1, 1)
	c.skew(req, func(i, j int) (float64, float64, float64, float64) {
		return a, b, p, d
	})
}

// generalSkew is the paired kernel with per-pair coefficients read from a
// full W×W matrix: F[i][i], F[i][j], F[j][i], F[j][j] for j = i+W/2.
func (c *CPUBackend) generalSkew(req Request) {
	c.skew(req, func(i, j int) (float64, float64, float64, float64) {
		return req.F.At(i, i), req.F.At(i, j), req.F.At(j, i), req.F.At(j, j)
	})
}

// skew is the shared pair loop. Self terms feed the scale input through the
// stepping function; cross terms feed the partner's state. The second
// element's cross term reads the first element's value updated in the same
// step, not its value from the previous step.
func (c *CPUBackend) skew(req Request, coeffs func(i, j int) (a, b, p, d float64)) {
	x, g := req.X, req.G
	step, dt := req.Step, req.Dt
	half := len(x) / 2

	c.parallel(half, func(start, end int) {
		for i := start; i < end; i++ {
			j := i + half
			a, b, p, d := coeffs(i, j)

			xi, xj := x[i], x[j]
			for t := 0; t < req.Steps; t++ {
				xi += step(a, xi, g[i], dt) + step(b, xi, xj, dt)
				xj += step(p, xj, xi, dt) + step(d, xj, g[j], dt)
			}
			x[i], x[j] = xi, xj
		}
	})
}
