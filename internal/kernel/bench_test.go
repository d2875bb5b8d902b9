package kernel

import (
	"testing"

	"github.com/Zymrael/torchODE/internal/linode"
)

func benchRun(b *testing.B, v Variant, m linode.Method, F linode.Matrix, width, steps int) {
	b.Helper()
	cpu := NewCPUBackend()
	x := make(linode.State, width)
	g := make(linode.State, width)
	for i := range g {
		g[i] = 1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cpu.Run(Request{Variant: v, Step: m.Step(), F: F, X: x, G: g, Dt: 0.001, Steps: steps})
	}
}

func BenchmarkCompactDiagonalEuler(b *testing.B) {
	F, _ := linode.NewMatrix(1, []float64{-0.5})
	benchRun(b, CompactDiagonal, linode.Euler, F, 4096, 100)
}

func BenchmarkCompactDiagonalRK4(b *testing.B) {
	F, _ := linode.NewMatrix(1, []float64{-0.5})
	benchRun(b, CompactDiagonal, linode.RK4, F, 4096, 100)
}

func BenchmarkCompactSkewRK4(b *testing.B) {
	F, _ := linode.NewMatrix(2, []float64{0, -1, 1, 0})
	benchRun(b, CompactSkew, linode.RK4, F, 4096, 100)
}

func BenchmarkGeneralSkewRK4(b *testing.B) {
	const width = 512
	data := make([]float64, width*width)
	for i := 0; i < width; i++ {
		data[i*width+i] = -0.1
	}
	F, _ := linode.NewMatrix(width, data)
	benchRun(b, GeneralSkew, linode.RK4, F, width, 100)
}
