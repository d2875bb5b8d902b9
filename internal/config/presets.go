package config

import "sort"

// Presets are canonical problems covering each structural kernel case.
var Presets = map[string]*Config{
	// Shared-coefficient exponential decay, one unit per element.
	"decay": {
		Method: "Euler", Dt: 0.01, Steps: 2000, TraceEvery: 20, Width: 8,
		Matrix: [][]float64{{-0.5}},
		State:  []float64{1.0},
		Scale:  []float64{1.0},
	},
	// Shared-coefficient growth; RK4 keeps the unrolled sum tighter.
	"growth": {
		Method: "RK4", Dt: 0.01, Steps: 1500, TraceEvery: 15, Width: 8,
		Matrix: [][]float64{{0.3}},
		State:  []float64{0.1},
		Scale:  []float64{1.0},
	},
	// Pure pairwise rotation: zero scale kills the self terms, the
	// off-diagonal block swaps energy between pair halves.
	"rotation": {
		Method: "RK4", Dt: 0.005, Steps: 4000, TraceEvery: 40, Width: 8,
		Matrix: [][]float64{{0.0, -1.0}, {1.0, 0.0}},
		State:  []float64{1.0},
		Scale:  []float64{0.0},
	},
	// Damped rotation with weak forcing through the diagonal.
	"spiral": {
		Method: "RK4", Dt: 0.005, Steps: 6000, TraceEvery: 60, Width: 8,
		Matrix: [][]float64{{-0.1, -1.0}, {1.0, -0.1}},
		State:  []float64{1.0},
		Scale:  []float64{0.2},
	},
	// Full-width matrix with distinct per-pair blocks.
	"mixture": {
		Method: "RK4", Dt: 0.01, Steps: 2000, TraceEvery: 20,
		Matrix: [][]float64{
			{-0.2, 0.0, -1.0, 0.0},
			{0.0, -0.3, 0.0, -0.5},
			{1.0, 0.0, -0.2, 0.0},
			{0.0, 0.5, 0.0, -0.3},
		},
		State: []float64{1.0, 0.5, 0.0, 0.0},
		Scale: []float64{0.1, 0.1, 0.1, 0.1},
	},
	// Full-width matrix read on the diagonal only: per-element decay rates.
	// Off-diagonal junk proves the kernel never touches it.
	"uncoupled": {
		Method: "Euler", Dt: 0.01, Steps: 2000, TraceEvery: 20, Diagonal: true,
		Matrix: [][]float64{
			{-0.1, 9.0, 9.0, 9.0},
			{9.0, -0.2, 9.0, 9.0},
			{9.0, 9.0, -0.4, 9.0},
			{9.0, 9.0, 9.0, -0.8},
		},
		State: []float64{1.0, 1.0, 1.0, 1.0},
		Scale: []float64{1.0, 1.0, 1.0, 1.0},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
