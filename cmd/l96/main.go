package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/feiyulu/L96-demo/internal/analysis"
	"github.com/feiyulu/L96-demo/internal/config"
	"github.com/feiyulu/L96-demo/internal/experiment"
	"github.com/feiyulu/L96-demo/internal/export"
	"github.com/feiyulu/L96-demo/internal/l96"
	"github.com/feiyulu/L96-demo/internal/ode"
	"github.com/feiyulu/L96-demo/internal/storage"
	"github.com/feiyulu/L96-demo/internal/tui"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	seed        int64
	integrator  string
	closureName string
	recordU     bool
	// physical parameters
	forcing  float64
	coupling float64
	cRatio   float64
	bRatio   float64
	numK     int
	numJ     int
	// sweep
	numRuns   int
	seedStart int64
	// plotting
	varIdx   int
	varList  string
	outFile  string
	phase    string
	// config file / preset
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "l96",
		Short: "Lorenz-96 two-time-scale simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".l96", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [twoscale|gcm]",
		Short: "run a simulation and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	sweepCmd := &cobra.Command{
		Use:   "sweep [twoscale|gcm]",
		Short: "run a seeded ensemble in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numRuns, "runs", 8, "ensemble size")
	sweepCmd.Flags().Int64Var(&seedStart, "seed-start", 1, "first member seed")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the reduced model against the two-scale truth",
		RunE:  runCompare,
	}
	addRunFlags(compareCmd)

	lyapCmd := &cobra.Command{
		Use:   "lyapunov [twoscale|gcm]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  runLyapunov,
	}
	addRunFlags(lyapCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "terminal plot of one state variable",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&varIdx, "var", 0, "state index to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "power spectrum of one state variable",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&varIdx, "var", 0, "state index to analyze")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a run to an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outFile, "out", "trajectory.png", "output file (png/svg/pdf)")
	renderCmd.Flags().StringVar(&varList, "vars", "0,1,2", "comma-separated state indices")
	renderCmd.Flags().StringVar(&phase, "phase", "", "phase plot as i,j instead of time series")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [twoscale|gcm]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, sweepCmd, compareCmd, lyapCmd, listCmd, plotCmd, analyzeCmd, renderCmd, exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = deterministic bump start)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler|rk2|rk4)")
	cmd.Flags().StringVar(&closureName, "closure", "none", "gcm closure (none|zero|wilks|linear|poly)")
	cmd.Flags().BoolVar(&recordU, "record-coupling", false, "record the fast-to-slow coupling term")
	cmd.Flags().Float64Var(&forcing, "F", config.DefaultF, "slow forcing")
	cmd.Flags().Float64Var(&coupling, "h", config.DefaultH, "coupling strength")
	cmd.Flags().Float64Var(&cRatio, "c", config.DefaultC, "fast timescale ratio")
	cmd.Flags().Float64Var(&bRatio, "b", config.DefaultB, "fast spatial scale ratio")
	cmd.Flags().IntVar(&numK, "K", config.DefaultK, "slow variable count")
	cmd.Flags().IntVar(&numJ, "J", config.DefaultJ, "fast variables per slow variable")
}

func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Model = model
	// CLI flags override file and preset values.
	if cmd.Flags().Changed("dt") || cfg.Dt == 0 {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") || cfg.Duration == 0 {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("closure") || cfg.Closure == "" {
		cfg.Closure = closureName
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("record-coupling") {
		cfg.Coupling = recordU
	}
	if cmd.Flags().Changed("F") || cfg.Params.F == 0 {
		cfg.Params.F = forcing
	}
	if cmd.Flags().Changed("h") {
		cfg.Params.H = coupling
	}
	if cmd.Flags().Changed("c") {
		cfg.Params.C = cRatio
	}
	if cmd.Flags().Changed("b") {
		cfg.Params.B = bRatio
	}
	if cmd.Flags().Changed("K") || cfg.Params.K == 0 {
		cfg.Params.K = numK
	}
	if cmd.Flags().Changed("J") {
		cfg.Params.J = numJ
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Model)
	start := time.Now()

	res, err := experiment.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Model:      cfg.Model,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Integrator: cfg.Integrator,
		Closure:    cfg.Closure,
		K:          res.Params.K,
		J:          res.Params.J,
		F:          res.Params.F,
	}, res.Trajectory)
	if err != nil {
		return err
	}

	tr := res.Trajectory
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d of %d\n", tr.StepsTaken, len(tr.Times)-1)
	if tr.Diverged {
		fmt.Printf("diverged at step %d (t=%.3f)\n", tr.DivergedAt, tr.Times[tr.DivergedAt])
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s: %d members, seeds %d..%d\n", cfg.Model, numRuns, seedStart, seedStart+int64(numRuns)-1)
	start := time.Now()

	trs, err := experiment.Sweep(context.Background(), cfg, numRuns, seedStart)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "member\tseed\tsteps\tstatus\tfinal |X|max")
	for i, tr := range trs {
		status := "ok"
		if tr.Diverged {
			status = fmt.Sprintf("diverged@%d", tr.DivergedAt)
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%.3f\n",
			i, seedStart+int64(i), tr.StepsTaken, status, tr.Final().MaxAbs())
	}
	return w.Flush()
}

// runCompare integrates the two-scale truth and the reduced model from
// the same slow initial condition and reports the RMS drift of the slow
// field, the notebooks' standard closure-skill figure.
func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, "twoscale")
	if err != nil {
		return err
	}

	p := l96.Params{
		F: cfg.Params.F, H: cfg.Params.H, C: cfg.Params.C, B: cfg.Params.B,
		K: cfg.Params.K, J: cfg.Params.J,
	}
	truthSys, err := l96.NewTwoScale(p)
	if err != nil {
		return err
	}

	x0 := l96.BumpInit(p)
	runCfg := ode.Config{Dt: cfg.Dt, Steps: cfg.Steps()}

	truthInteg, err := experiment.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	truth, err := ode.NewDriver(truthSys, truthInteg).Run(context.Background(), x0, runCfg)
	if err != nil {
		return err
	}

	cl, err := experiment.GetClosure(cfg.Closure, p.K, cfg.Poly)
	if err != nil {
		return err
	}
	gcmInteg, err := experiment.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	reduced, err := l96.NewGCM(p.F, gcmInteg, cl).Run(context.Background(), x0[:p.K].Clone(), runCfg)
	if err != nil {
		return err
	}

	n := truth.StepsTaken
	if reduced.StepsTaken < n {
		n = reduced.StepsTaken
	}

	drift := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		sum := 0.0
		for k := 0; k < p.K; k++ {
			d := truth.States[i][k] - reduced.States[i][k]
			sum += d * d
		}
		drift = append(drift, math.Sqrt(sum/float64(p.K)))
	}

	graph := asciigraph.Plot(drift,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("RMS slow-field drift, closure=%s", cfg.Closure)),
	)
	fmt.Println(graph)
	fmt.Printf("final RMS drift at t=%.2f: %.4f\n", truth.Times[n], drift[n])
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	p := l96.Params{
		F: cfg.Params.F, H: cfg.Params.H, C: cfg.Params.C, B: cfg.Params.B,
		K: cfg.Params.K, J: cfg.Params.J,
	}
	integ, err := experiment.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	var sys ode.System
	var x0 ode.State
	switch cfg.Model {
	case "twoscale":
		ts, err := l96.NewTwoScale(p)
		if err != nil {
			return err
		}
		sys = ts
		x0 = l96.BumpInit(p)
	case "gcm":
		cl, err := experiment.GetClosure(cfg.Closure, p.K, cfg.Poly)
		if err != nil {
			return err
		}
		sys = &l96.OneScale{K: p.K, F: p.F, Closure: cl}
		x0 = l96.BumpInit(l96.Params{F: p.F, K: p.K})
	default:
		return fmt.Errorf("unknown model: %s", cfg.Model)
	}

	lambda, err := analysis.LyapunovExponent(sys, integ, x0, cfg.Dt, cfg.Duration, 1e-8)
	if err != nil {
		return err
	}
	fmt.Printf("largest Lyapunov exponent estimate: %.4f\n", lambda)
	if lambda > 0 {
		fmt.Println("positive: chaotic regime")
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tmodel\tK\tJ\tF\tdt\tsteps\tstatus")
	for _, r := range runs {
		status := "ok"
		if r.Diverged {
			status = fmt.Sprintf("diverged@%d", r.DivergedAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.1f\t%.4f\t%d\t%s\n",
			r.ID, r.Model, r.K, r.J, r.F, r.Dt, r.Steps, status)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("run %s holds no states", args[0])
	}
	if varIdx < 0 || varIdx >= len(states[0]) {
		return fmt.Errorf("state index %d out of range (dim %d)", varIdx, len(states[0]))
	}

	data := make([]float64, len(states))
	for i, s := range states {
		data[i] = s[varIdx]
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s x%d", args[0], varIdx)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("run %s holds no states", args[0])
	}

	series := make([]float64, len(states))
	for i, s := range states {
		series[i] = s[varIdx]
	}

	power := analysis.PowerSpectrum(series)
	if len(power) == 0 {
		return fmt.Errorf("series too short for a spectrum")
	}

	graph := asciigraph.Plot(power,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (x%d)", varIdx)),
	)
	fmt.Println(graph)
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	if phase != "" {
		parts := strings.SplitN(phase, ",", 2)
		if len(parts) != 2 {
			return fmt.Errorf("phase wants i,j")
		}
		xi, err := strconv.Atoi(parts[0])
		if err != nil {
			return err
		}
		yi, err := strconv.Atoi(parts[1])
		if err != nil {
			return err
		}
		if err := export.PhasePlot(outFile, args[0], states, xi, yi); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	var indices []int
	for _, part := range strings.Split(varList, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("bad state index %q", part)
		}
		indices = append(indices, idx)
	}
	if err := export.SeriesPlot(outFile, args[0], times, states, indices); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	p := l96.Params{
		F: cfg.Params.F, H: cfg.Params.H, C: cfg.Params.C, B: cfg.Params.B,
		K: cfg.Params.K, J: cfg.Params.J,
	}
	integ, err := experiment.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	switch cfg.Model {
	case "twoscale":
		sys, err := l96.NewTwoScale(p)
		if err != nil {
			return err
		}
		return tui.Run(sys, integ, l96.BumpInit(p), cfg.Dt, p.K, "twoscale")
	case "gcm":
		cl, err := experiment.GetClosure(cfg.Closure, p.K, cfg.Poly)
		if err != nil {
			return err
		}
		sys := &l96.OneScale{K: p.K, F: p.F, Closure: cl}
		return tui.Run(sys, integ, l96.BumpInit(l96.Params{F: p.F, K: p.K}), cfg.Dt, p.K, "gcm")
	default:
		return fmt.Errorf("unknown model: %s", cfg.Model)
	}
}
