package kernel

// CUDABackend is the placeholder for the original GPU build of the solver.
// Without a device it reports unavailable and every run falls back to the
// CPU kernels, which implement identical semantics.
type CUDABackend struct{}

func NewCUDABackend() *CUDABackend {
	return &CUDABackend{}
}

func (c *CUDABackend) Name() string    { return "cuda (not available)" }
func (c *CUDABackend) Available() bool { return false }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) Run(req Request) {
	NewCPUBackend().Run(req)
}
