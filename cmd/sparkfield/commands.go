package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sparkfield/internal/analysis"
	"github.com/san-kum/sparkfield/internal/config"
	"github.com/san-kum/sparkfield/internal/export"
	"github.com/san-kum/sparkfield/internal/field"
	"github.com/san-kum/sparkfield/internal/metrics"
	"github.com/san-kum/sparkfield/internal/pointer"
	"github.com/san-kum/sparkfield/internal/storage"
	"github.com/san-kum/sparkfield/internal/viz"
	"github.com/spf13/cobra"
)

// loadConfig resolves preset, config file and flags, in that order. Flags
// only override when set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("driver") {
		cfg.Pointer.Driver = driver
	}
	if flags.Changed("script") {
		cfg.Pointer.Script = scriptFile
		if !flags.Changed("driver") {
			cfg.Pointer.Driver = "script"
		}
	}
	if flags.Changed("click-every") {
		cfg.Pointer.ClickEvery = clickEvery
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("config resolved", "preset", presetName(), "config", configFile, "driver", cfg.Pointer.Driver, "seed", cfg.Seed)
	return cfg, nil
}

func presetName() string {
	if preset != "" {
		return preset
	}
	if configFile != "" {
		return strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	return "default"
}

func newDriver(cfg *config.Config) (field.Driver, error) {
	return pointer.New(cfg.Pointer.Driver, pointer.Options{
		ClickEvery: cfg.Pointer.ClickEvery,
		Radius:     cfg.Pointer.Radius,
		Speed:      cfg.Pointer.Speed,
		Seed:       cfg.Seed,
		Script:     cfg.Pointer.Script,
	})
}

func runConfig(cfg *config.Config) (field.RunConfig, error) {
	params, err := cfg.Params()
	if err != nil {
		return field.RunConfig{}, err
	}
	drv, err := newDriver(cfg)
	if err != nil {
		return field.RunConfig{}, err
	}
	return field.RunConfig{
		Params: params,
		Width:  cfg.Width,
		Height: cfg.Height,
		Frames: cfg.Frames,
		Seed:   cfg.Seed,
		Driver: drv,
	}, nil
}

func svgSnapshot(f *field.Field, theme string) *export.SVGSurface {
	s := export.NewSVGSurface(string(viz.GetTheme(theme).Background))
	w, h := f.Bounds()
	s.Resize(int(w), int(h))
	f.Render(s)
	return s
}

func runLive(cmd *cobra.Command, args []string) error {
	opts := viz.Options{Scale: scale, GIFPath: gifPath}
	if cmd.Flags().Changed("seed") {
		opts.Seed = seed
	}
	if cmd.Flags().Changed("fps") {
		opts.FPS = fps
	}
	if preset == "" && configFile == "" {
		return viz.RunInteractive(opts)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Theme)
	opts.Title, opts.Seed, opts.FPS = presetName(), cfg.Seed, cfg.FPS
	return viz.Run(params, opts)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rc, err := runConfig(cfg)
	if err != nil {
		return err
	}
	rc.ValidateState = validate
	rc.Observers = metrics.Observers(metrics.Default())

	var snap *export.SVGSurface
	if svgPath != "" {
		rc.OnFinish = func(f *field.Field) { snap = svgSnapshot(f, cfg.Theme) }
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %d frames (driver %s)...\n", presetName(), cfg.Frames, cfg.Pointer.Driver)
	start := time.Now()

	result, err := field.Run(cmd.Context(), rc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset: presetName(),
		Driver: cfg.Pointer.Driver,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d rendered, %d skipped\n", result.FramesRendered, result.FramesSkipped)
	fmt.Printf("final population: %d\n", len(result.Final))
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if snap != nil {
		if err := snap.WriteFile(svgPath); err != nil {
			return err
		}
		fmt.Printf("\nsnapshot: %s (%d elements)\n", svgPath, snap.Elements())
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rc, err := runConfig(cfg)
	if err != nil {
		return err
	}

	var snap *export.SVGSurface
	var positions []field.Vec2
	rc.OnFinish = func(f *field.Field) {
		snap = svgSnapshot(f, cfg.Theme)
		positions = analysis.Positions(f.Particles())
	}
	if _, err := field.Run(cmd.Context(), rc); err != nil {
		return err
	}
	if err := snap.WriteFile(args[0]); err != nil {
		return err
	}

	fmt.Print(analysis.ScatterToASCII(positions, 80, 24))
	fmt.Printf("\nwrote %s: %d particles, %d elements\n", args[0], len(positions), snap.Elements())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tDRIVER\tTIME\tFRAMES\tSIZE\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dx%d\t%.0f\n",
			run.ID,
			run.Preset,
			run.Driver,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width, run.Height,
			run.Metrics["peak_population"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s, driver: %s\n", meta.Preset, meta.Driver)
	fmt.Printf("samples: %d\n\n", len(samples))

	columns := []string{"population", "links", "trail"}
	if column != "" {
		columns = []string{column}
	}

	for _, col := range columns {
		data, err := storage.Series(samples, col)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgPath != "" && col == columns[0] {
			svg := export.SeriesToSVG(data, 800, 300, string(viz.ThemeDark.Primary))
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", svgPath)
		}
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	data, err := storage.Series(samples, column)
	if err != nil {
		return err
	}
	if len(data) < 4 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", column)

	s := analysis.Summarize(data)
	fmt.Printf("samples: %d\n", s.N)
	fmt.Printf("min: %.3f  max: %.3f\n", s.Min, s.Max)
	fmt.Printf("mean: %.3f  stddev: %.3f\n\n", s.Mean, s.StdDev)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[1:max(len(ps)/4, 2)]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+column+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	period, power := analysis.DominantPeriod(data)
	if period == 0 {
		fmt.Println("no dominant period")
		return nil
	}
	fmt.Printf("dominant period: %.1f frames (power %.2f)\n", period, power)
	if meta.Frames > 0 {
		fmt.Printf("cycles in run: %.1f\n", float64(meta.Frames)/period)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.ExportCSV(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], args[1])
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := storage.ExportData{Run: *meta, Samples: samples}
	if len(args) == 1 {
		return storage.WriteJSON(os.Stdout, data)
	}
	if err := storage.ExportJSON(args[1], data); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, args[1])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSEEDS\tBURST\tSPAWN\tPULL\tLIFE")
	for _, name := range config.ListPresets() {
		f := config.GetPreset(name).Field
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\t%d-%d\n",
			name, f.SeedCount, f.BurstSize, f.SpawnProbability, f.AttractStrength, f.MinLife, f.MaxLife)
	}
	return w.Flush()
}

func listThemes(cmd *cobra.Command, args []string) error {
	for _, name := range viz.ThemeNames() {
		t := viz.GetTheme(name)
		fmt.Printf("  %-8s %s\n", name, t.Background)
	}
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base, err := runConfig(cfg)
	if err != nil {
		return err
	}

	ens := field.NewEnsemble(base, numRuns, cfg.Seed)
	ens.Setup = func(rc *field.RunConfig) {
		c := *cfg
		c.Seed = rc.Seed
		if drv, err := newDriver(&c); err == nil {
			rc.Driver = drv
		}
		rc.Observers = metrics.Observers(metrics.Default())
	}

	fmt.Printf("benchmarking %s: %d runs x %d frames\n\n", presetName(), numRuns, cfg.Frames)
	start := time.Now()
	results, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tPEAK\tMEAN\tLINKS\tFINAL")
	var peaks []float64
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.0f\t%.1f\t%.1f\t%d\n", r.Seed,
			r.Metrics["peak_population"], r.Metrics["mean_population"], r.Metrics["mean_links"], len(r.Final))
		peaks = append(peaks, r.Metrics["peak_population"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := analysis.Summarize(peaks)
	total := numRuns * cfg.Frames
	fmt.Printf("\npeak population: %.1f ± %.1f\n", s.Mean, s.StdDev)
	fmt.Printf("elapsed: %v (%.0f frames/sec)\n", elapsed, float64(total)/elapsed.Seconds())
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	param := args[0]
	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid start value: %w", err)
	}
	hi, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid end value: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base, err := runConfig(cfg)
	if err != nil {
		return err
	}

	points, err := analysis.Sweep(cmd.Context(), base, param, lo, hi, steps, func() field.Driver {
		drv, err := newDriver(cfg)
		if err != nil {
			return nil
		}
		return drv
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN\tPEAK\tLINKS\n", strings.ToUpper(param))
	means := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%.4f\t%.1f\t%d\t%.1f\n", p.Value, p.MeanPopulation, p.PeakPopulation, p.MeanLinks)
		means[i] = p.MeanPopulation
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(means, asciigraph.Height(10), asciigraph.Caption("mean population vs "+param)))
	return nil
}

func divergence(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	cursor := field.Vec2{X: w / 2, Y: h / 2}
	dist := analysis.Divergence(params, w, h, cfg.Seed, cursor, offset, cfg.Frames)
	if len(dist) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Println(asciigraph.Plot(dist,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("mean separation, offset %.2f px", offset)),
	))
	fmt.Printf("\nfinal separation: %.4f px\n", dist[len(dist)-1])
	return nil
}
