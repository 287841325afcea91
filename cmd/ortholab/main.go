package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"ortholab/internal/config"
	"ortholab/internal/export"
	"ortholab/internal/mat3"
	"ortholab/internal/store"
	"ortholab/internal/trajectory"
	"ortholab/internal/tui"
	"ortholab/internal/viz"
)

var (
	dataDir    string
	degree     int
	coeffs     []float64
	steps      int
	normalize  bool
	matrixFlag []float64
	configFile string
	preset     string
	chartOut   string
	plotWidth  int
	plotHeight int
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	rootCmd := &cobra.Command{
		Use:   "ortholab",
		Short: "newton-schulz matrix iteration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ortholab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an iteration and store the trajectory",
		RunE:  runIteration,
	}
	runCmd.Flags().IntVar(&degree, "degree", config.DefaultDegree, "polynomial degree (3 or 5)")
	runCmd.Flags().Float64SliceVar(&coeffs, "coeffs", nil, "polynomial coefficients ((degree+1)/2 values)")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "iteration count")
	runCmd.Flags().BoolVar(&normalize, "normalize", true, "divide by frobenius norm before iterating")
	runCmd.Flags().Float64SliceVar(&matrixFlag, "matrix", nil, "initial matrix, 9 row-major values (default identity)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot singular values of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "write a singular value chart image",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVar(&chartOut, "out", "sigma.png", "output file (.png, .svg, .pdf)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.Presets[name]
				fmt.Printf("%-10s degree %d, coeffs %v, %d steps\n",
					name, cfg.Degree, cfg.Coefficients, cfg.Steps)
			}
			return nil
		},
	}

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a stored run's snapshots",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark iteration throughput",
		RunE:  benchIterations,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, chartCmd, exportCmd, exportCSVCmd, presetsCmd, viewCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves precedence: preset, then config file, then any
// flag the user actually set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	out := *cfg
	if cmd.Flags().Changed("degree") {
		out.Degree = degree
		if !cmd.Flags().Changed("coeffs") && preset == "" && configFile == "" {
			out.Coefficients = config.DefaultCoefficients(degree)
		}
	}
	if cmd.Flags().Changed("coeffs") {
		out.Coefficients = coeffs
	}
	if cmd.Flags().Changed("steps") {
		out.Steps = steps
	}
	if cmd.Flags().Changed("normalize") {
		out.Normalize = normalize
	}
	if cmd.Flags().Changed("matrix") {
		out.Matrix = matrixFlag
	}

	return &out, nil
}

func runIteration(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	runCfg, err := cfg.RunConfig()
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := time.Now()
	result, err := trajectory.Run(runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runCfg, result)
	if err != nil {
		return err
	}

	slog.Info("run complete", "id", runID, "steps", result.Steps(), "elapsed", elapsed)

	fmt.Println(viz.SnapshotTable(result.Snapshots))
	fmt.Println(viz.Summary(result))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDEGREE\tCOEFFS\tSTEPS\tUNSTABLE AT")

	for _, run := range runs {
		unstable := "-"
		if run.FirstUnstable >= 0 {
			unstable = fmt.Sprintf("%d", run.FirstUnstable)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%d/%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Degree,
			run.Coefficients,
			run.StepsTaken,
			run.Steps,
			unstable,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, snapshots, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("degree %d, coeffs %v\n\n", meta.Degree, meta.Coefficients)
	fmt.Println(viz.SigmaPlot(snapshots, plotWidth, plotHeight))
	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	_, snapshots, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	if err := export.Chart(chartOut, snapshots); err != nil {
		return err
	}
	slog.Info("chart written", "path", chartOut)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, snapshots, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	cfg, result := reconstruct(meta, snapshots)
	return store.ExportJSON(os.Stdout, cfg, result)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, snapshots, err := loadRun(st, args[0])
	if err != nil {
		return err
	}

	_, result := reconstruct(meta, snapshots)
	return store.ExportCSV(os.Stdout, result)
}

func viewRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	_, snapshots, err := loadRun(st, args[0])
	if err != nil {
		return err
	}
	return tui.Run(snapshots)
}

func benchIterations(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEGREE\tSTEPS\tTIME\tSTEPS/SEC")

	for _, degree := range []int{3, 5} {
		for _, n := range []int{100, 1000, 10000} {
			cfg := trajectory.Config{
				Initial:      sampleMatrix(),
				Degree:       degree,
				Coefficients: config.DefaultCoefficients(degree),
				Steps:        n,
				Normalize:    true,
			}

			start := time.Now()
			result, err := trajectory.Run(cfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.Steps()) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", degree, n, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func sampleMatrix() mat3.Matrix {
	return mat3.Matrix{
		{0.9, 0.2, -0.1},
		{-0.3, 1.1, 0.4},
		{0.1, -0.2, 0.8},
	}
}

func loadRun(st *store.Store, runID string) (*store.RunMetadata, []trajectory.Snapshot, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	snapshots, err := st.LoadSnapshots(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil, fmt.Errorf("run %s has no snapshots", runID)
	}
	return meta, snapshots, nil
}

// reconstruct rebuilds the config/result pair of a stored run so the
// export helpers can reuse the in-memory encoding paths.
func reconstruct(meta *store.RunMetadata, snapshots []trajectory.Snapshot) (trajectory.Config, *trajectory.Result) {
	cfg := trajectory.Config{
		Initial:      snapshots[0].Matrix,
		Degree:       meta.Degree,
		Coefficients: meta.Coefficients,
		Steps:        meta.Steps,
		Normalize:    meta.Normalize,
	}
	result := &trajectory.Result{
		Snapshots:     snapshots,
		FirstUnstable: meta.FirstUnstable,
	}
	return cfg, result
}
