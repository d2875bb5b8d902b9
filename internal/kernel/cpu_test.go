package kernel

import (
	"math"
	"testing"

	"github.com/Zymrael/torchODE/internal/linode"
)

func mustMatrix(t *testing.T, rows [][]float64) linode.Matrix {
	t.Helper()
	m, err := linode.FromRows(rows)
	if err != nil {
		t.Fatalf("bad test matrix: %v", err)
	}
	return m
}

func ones(n int) linode.State {
	s := make(linode.State, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

func run(b Backend, v Variant, m linode.Method, F linode.Matrix, x, g linode.State, dt float64, steps int) {
	b.Run(Request{Variant: v, Step: m.Step(), F: F, X: x, G: g, Dt: dt, Steps: steps})
}

func TestCompactDiagonalEulerOneStep(t *testing.T) {
	cpu := NewCPUBackend()
	F := mustMatrix(t, [][]float64{{2.0}})
	x := ones(4)
	g := ones(4)

	run(cpu, CompactDiagonal, linode.Euler, F, x, g, 0.1, 1)

	for i, v := range x {
		if math.Abs(v-1.2) > 1e-15 {
			t.Errorf("x[%d] = %v, want 1.2", i, v)
		}
	}
}

func TestCompactDiagonalEulerUnrolled(t *testing.T) {
	cpu := NewCPUBackend()
	F := mustMatrix(t, [][]float64{{-0.5}})
	x := linode.State{1, 2, 3, 4}
	g := linode.State{1, 0.5, -1, 2}
	dt := 0.01
	steps := 25

	expected := x.Clone()
	for i := range expected {
		for s := 0; s < steps; s++ {
			expected[i] += -0.5 * g[i] * dt
		}
	}

	run(cpu, CompactDiagonal, linode.Euler, F, x, g, dt, steps)

	for i := range x {
		if math.Abs(x[i]-expected[i]) > 1e-12 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], expected[i])
		}
	}
}

func TestGeneralDiagonalReadsOwnCoefficient(t *testing.T) {
	cpu := NewCPUBackend()
	// Off-diagonal entries are garbage on purpose: the kernel must not
	// read them.
	F := mustMatrix(t, [][]float64{
		{1.0, 99, 99, 99},
		{99, 2.0, 99, 99},
		{99, 99, 3.0, 99},
		{99, 99, 99, 4.0},
	})
	x := linode.State{0, 0, 0, 0}
	g := ones(4)

	run(cpu, GeneralDiagonal, linode.Euler, F, x, g, 0.1, 1)

	want := linode.State{0.1, 0.2, 0.3, 0.4}
	for i := range x {
		if math.Abs(x[i]-want[i]) > 1e-15 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

// The second element of a pair must see the first element's value as
// updated in the same step. A simultaneous update would give x[1] = 10.1
// here instead of 10.2.
func TestCompactSkewPairedUpdateOrder(t *testing.T) {
	cpu := NewCPUBackend()
	F := mustMatrix(t, [][]float64{{0, 1}, {1, 0}})
	x := linode.State{1, 10}
	g := linode.State{0, 0}

	run(cpu, CompactSkew, linode.Euler, F, x, g, 0.1, 1)

	if math.Abs(x[0]-2.0) > 1e-15 {
		t.Errorf("x[0] = %v, want 2.0", x[0])
	}
	if math.Abs(x[1]-10.2) > 1e-15 {
		t.Errorf("x[1] = %v, want 10.2 (sequential pair update)", x[1])
	}
}

func TestCompactSkewPairIndexing(t *testing.T) {
	cpu := NewCPUBackend()
	// Only the upper cross coefficient is set: x[i] += x[i+W/2]*dt.
	F := mustMatrix(t, [][]float64{{0, 1}, {0, 0}})
	x := linode.State{0, 0, 5, 7}
	g := linode.State{0, 0, 0, 0}

	run(cpu, CompactSkew, linode.Euler, F, x, g, 0.1, 1)

	want := linode.State{0.5, 0.7, 5, 7}
	for i := range x {
		if math.Abs(x[i]-want[i]) > 1e-15 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestGeneralSkewMatchesCompactOnReplicatedBlock(t *testing.T) {
	cpu := NewCPUBackend()
	block := [][]float64{{-0.1, -1.0}, {1.0, -0.1}}

	compact := mustMatrix(t, block)
	general := mustMatrix(t, [][]float64{
		{-0.1, 0, -1.0, 0},
		{0, -0.1, 0, -1.0},
		{1.0, 0, -0.1, 0},
		{0, 1.0, 0, -0.1},
	})

	g := linode.State{0.3, -0.2, 0.1, 0.5}
	xc := linode.State{1, 2, 3, 4}
	xg := xc.Clone()

	run(cpu, CompactSkew, linode.RK4, compact, xc, g, 0.01, 50)
	run(cpu, GeneralSkew, linode.RK4, general, xg, g, 0.01, 50)

	for i := range xc {
		if xc[i] != xg[i] {
			t.Errorf("x[%d]: compact %v != general %v", i, xc[i], xg[i])
		}
	}
}

func TestEulerZeroMatrixIdentity(t *testing.T) {
	cpu := NewCPUBackend()
	variants := []struct {
		v Variant
		F linode.Matrix
	}{
		{CompactDiagonal, mustMatrix(t, [][]float64{{0}})},
		{CompactSkew, mustMatrix(t, [][]float64{{0, 0}, {0, 0}})},
		{GeneralDiagonal, mustMatrix(t, [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})},
		{GeneralSkew, mustMatrix(t, [][]float64{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})},
	}

	for _, tt := range variants {
		x := linode.State{1.5, -2.5, 3.5, -4.5}
		g := ones(4)
		run(cpu, tt.v, linode.Euler, tt.F, x, g, 0.1, 500)

		want := linode.State{1.5, -2.5, 3.5, -4.5}
		for i := range x {
			if x[i] != want[i] {
				t.Errorf("%v: x[%d] = %v, want %v", tt.v, i, x[i], want[i])
			}
		}
	}
}

// A batch wide enough to cross the goroutine fan-out threshold must produce
// the same result as the serial path, with every element covered.
func TestParallelCoversAllElements(t *testing.T) {
	const width = 1000
	F := mustMatrix(t, [][]float64{{0.25}})
	g := make(linode.State, width)
	for i := range g {
		g[i] = float64(i%7) - 3
	}

	parallelX := make(linode.State, width)
	serialX := make(linode.State, width)

	run(NewCPUBackend(), CompactDiagonal, linode.Euler, F, parallelX, g, 0.1, 10)
	run(&CPUBackend{workers: 1}, CompactDiagonal, linode.Euler, F, serialX, g, 0.1, 10)

	for i := range parallelX {
		if parallelX[i] != serialX[i] {
			t.Fatalf("x[%d]: parallel %v != serial %v", i, parallelX[i], serialX[i])
		}
	}
}

func TestCUDABackendFallsBackToCPU(t *testing.T) {
	cuda := NewCUDABackend()
	if cuda.Available() {
		t.Fatal("placeholder CUDA backend must report unavailable")
	}

	F := mustMatrix(t, [][]float64{{2.0}})
	x := ones(4)
	run(cuda, CompactDiagonal, linode.Euler, F, x, ones(4), 0.1, 1)

	for i, v := range x {
		if math.Abs(v-1.2) > 1e-15 {
			t.Errorf("x[%d] = %v, want 1.2", i, v)
		}
	}
}

func TestAutoSelectPrefersAvailable(t *testing.T) {
	b := AutoSelect()
	if !b.Available() {
		t.Error("auto-selected backend must be available")
	}
	if b.Name() != "cpu" {
		t.Errorf("expected cpu backend without a device, got %s", b.Name())
	}
}
