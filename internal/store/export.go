package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Zymrael/torchODE/internal/solver"
)

type ExportData struct {
	Method  string             `json:"method"`
	Variant string             `json:"variant"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Width   int                `json:"width"`
	Times   []float64          `json:"times"`
	States  [][]float64        `json:"states"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

func buildExport(method, variant string, dt float64, steps int, tr *solver.Trajectory, metricVals map[string]float64) ExportData {
	data := ExportData{
		Method:  method,
		Variant: variant,
		Dt:      dt,
		Steps:   steps,
		Width:   tr.Width(),
		Times:   tr.Times,
		States:  make([][]float64, len(tr.States)),
		Metrics: metricVals,
	}
	for i, s := range tr.States {
		data.States[i] = s
	}
	return data
}

func ExportJSON(w io.Writer, method, variant string, dt float64, steps int, tr *solver.Trajectory, metricVals map[string]float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(method, variant, dt, steps, tr, metricVals))
}

func ExportJSONFile(path, method, variant string, dt float64, steps int, tr *solver.Trajectory, metricVals map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, method, variant, dt, steps, tr, metricVals)
}
