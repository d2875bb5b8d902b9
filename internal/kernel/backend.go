package kernel

import "github.com/Zymrael/torchODE/internal/linode"

// Request carries one fully validated integration run. The solver resolves
// the stepping method and variant before building a Request, so backends
// perform no validation of their own.
type Request struct {
	Variant Variant
	Step    linode.StepFunc
	F       linode.Matrix
	X       linode.State
	G       linode.State
	Dt      float64
	Steps   int
}

// Backend runs a kernel variant over a batch. The CPU backend is always
// available; the CUDA backend exists as a placeholder for the original
// GPU build and delegates to the CPU when the device is absent.
type Backend interface {
	Name() string
	Available() bool
	Run(req Request)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelect()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelect() Backend {
	cuda := NewCUDABackend()
	if cuda.Available() {
		return cuda
	}
	return NewCPUBackend()
}
