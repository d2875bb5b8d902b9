package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Zymrael/torchODE/internal/config"
	"github.com/Zymrael/torchODE/internal/kernel"
	"github.com/Zymrael/torchODE/internal/linode"
	"github.com/Zymrael/torchODE/internal/metrics"
	"github.com/Zymrael/torchODE/internal/solver"
	"github.com/Zymrael/torchODE/internal/store"
	"github.com/Zymrael/torchODE/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	method     string
	dt         float64
	steps      int
	diagonal   bool
	traceEvery int
	elem       int
	jsonOut    bool
	saveRun    bool
	plotOut    bool
	frameRate  int
	stableMax  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "torchode",
		Short: "batched linear feedback ODE integrator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".torchode", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "integrate a problem and print a summary",
		RunE:  runSolve,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&jsonOut, "json", false, "emit trajectory as JSON to stdout")
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "persist run under the data directory")
	solveCmd.Flags().BoolVar(&plotOut, "plot", false, "plot one element's trajectory")
	solveCmd.Flags().IntVar(&elem, "elem", 0, "element index for --plot")
	solveCmd.Flags().Float64Var(&stableMax, "stable-below", 1e6, "stability metric threshold")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "integrate and replay the trajectory live",
		RunE:  runWatch,
	}
	addProblemFlags(watchCmd)
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&elem, "elem", 0, "element index to plot")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in problem presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMETHOD\tMATRIX\tWIDTH\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				width := p.Width
				if width == 0 || len(p.State) > 1 {
					width = len(p.State)
				}
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\n",
					name, p.Method, len(p.Matrix), len(p.Matrix), width, p.Steps)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(solveCmd, watchCmd, plotCmd, listCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "problem file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in problem preset")
	cmd.Flags().StringVar(&method, "method", "", fmt.Sprintf("integration method, one of %v", linode.Methods()))
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep size")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of timesteps")
	cmd.Flags().BoolVar(&diagonal, "diagonal", false, "treat a full-width matrix as uncoupled")
	cmd.Flags().IntVar(&traceEvery, "trace-every", 0, "steps between trajectory snapshots")
}

// buildConfig layers flag overrides over a preset or config file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		cfg = p
	}

	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("diagonal") {
		cfg.Diagonal = diagonal
	}
	if cmd.Flags().Changed("trace-every") {
		cfg.TraceEvery = traceEvery
	}
	return cfg, nil
}

func runProblem(cfg *config.Config) (*solver.Trajectory, string, error) {
	F, x0, g, err := cfg.Problem()
	if err != nil {
		return nil, "", err
	}

	variant, err := kernel.Select(F.Rows, len(x0), cfg.Diagonal)
	if err != nil {
		return nil, "", err
	}

	tr, err := solver.TraceWith(kernel.GetBackend(), F, x0, g, cfg.Dt, cfg.Steps,
		cfg.Method, cfg.TraceEvery, solver.Options{Diagonal: cfg.Diagonal})
	if err != nil {
		return nil, "", err
	}
	return tr, variant.String(), nil
}

func evalMetrics(tr *solver.Trajectory) map[string]float64 {
	ms := []metrics.Metric{
		metrics.NewStability(stableMax),
		metrics.NewPeak(),
		metrics.NewDrift(),
	}
	for i, s := range tr.States {
		for _, m := range ms {
			m.Observe(s, tr.Times[i])
		}
	}
	vals := make(map[string]float64, len(ms))
	for _, m := range ms {
		vals[m.Name()] = m.Value()
	}
	return vals
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	tr, variant, err := runProblem(cfg)
	if err != nil {
		return err
	}
	vals := evalMetrics(tr)

	if jsonOut {
		return store.ExportJSON(os.Stdout, cfg.Method, variant, cfg.Dt, cfg.Steps, tr, vals)
	}

	final := tr.Final()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "method\t%s\n", cfg.Method)
	fmt.Fprintf(w, "variant\t%s\n", variant)
	fmt.Fprintf(w, "backend\t%s\n", kernel.GetBackend().Name())
	fmt.Fprintf(w, "width\t%d\n", len(final))
	fmt.Fprintf(w, "steps\t%d  (dt=%g)\n", cfg.Steps, cfg.Dt)
	fmt.Fprintf(w, "final norm\t%.6g\n", final.Norm())
	fmt.Fprintf(w, "peak\t%.6g\n", vals["peak"])
	fmt.Fprintf(w, "drift\t%.6g\n", vals["drift"])
	fmt.Fprintf(w, "stability\t%.3f\n", vals["stability"])
	if err := w.Flush(); err != nil {
		return err
	}

	if n := len(final); n <= 16 {
		fmt.Print("final state: ")
		for i := 0; i < n; i++ {
			fmt.Printf("%+.5f ", final[i])
		}
		fmt.Println()
	}

	if plotOut {
		if elem < 0 || elem >= tr.Width() {
			return fmt.Errorf("element index %d out of range (width %d)", elem, tr.Width())
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(tr.Series(elem),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d over %d steps", elem, cfg.Steps))))
	}

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Method, variant, cfg.Dt, cfg.Steps, tr, vals)
		if err != nil {
			return err
		}
		fmt.Println("saved run:", runID)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	tr, _, err := runProblem(cfg)
	if err != nil {
		return err
	}
	return tui.RunLive(tr, cfg.Method, frameRate)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	tr, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if tr.Width() == 0 {
		return fmt.Errorf("run %s holds no states", args[0])
	}
	if elem < 0 || elem >= tr.Width() {
		return fmt.Errorf("element index %d out of range (width %d)", elem, tr.Width())
	}

	fmt.Println(asciigraph.Plot(tr.Series(elem),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s · x%d", args[0], elem))))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tVARIANT\tWIDTH\tSTEPS\tDT\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%s\n",
			r.ID, r.Method, r.Variant, r.Width, r.Steps, r.Dt,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta.Method, meta.Variant, meta.Dt, meta.Steps, tr, meta.Metrics)
}
