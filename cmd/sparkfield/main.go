package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/san-kum/sparkfield/internal/config"
	"github.com/san-kum/sparkfield/internal/gui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	width      int
	height     int
	fps        int
	frames     int
	seed       int64
	driver     string
	scriptFile string
	clickEvery int
	light      bool
	// live view
	scale   float64
	gifPath string
	// run / snapshot output
	svgPath  string
	validate bool
	// plot / analyze
	column string
	// bench
	numRuns int
	// sweep / divergence
	steps  int
	offset float64
)

// main registers the commands and opens the window when no subcommand is
// given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "sparkfield",
		Short: "interactive particle field",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sparkfield", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addFieldFlags(rootCmd)
	rootCmd.Flags().BoolVar(&light, "light", false, "start with the light background")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the particle field in a window",
		RunE:  runGUI,
	}
	addFieldFlags(guiCmd)
	guiCmd.Flags().BoolVar(&light, "light", false, "start with the light background")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the particle field in the terminal",
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)
	liveCmd.Flags().Float64Var(&scale, "scale", 0, "surface pixels per braille dot")
	liveCmd.Flags().StringVar(&gifPath, "gif", "sparkfield.gif", "gif recording path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless with a pointer driver and store the report",
		RunE:  runHeadless,
	}
	addFieldFlags(runCmd)
	addDriverFlags(runCmd)
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")
	runCmd.Flags().BoolVar(&validate, "validate", false, "stop at the first non-finite particle")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [output.svg]",
		Short: "render the final frame of a headless run to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	addFieldFlags(snapshotCmd)
	addDriverFlags(snapshotCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-frame statistics of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "statistic to plot (default: population, links, trail)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the series as svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary and spectrum of a run statistic",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "population", "statistic to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [path]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(2),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [path]",
		Short: "export run data to JSON (stdout without path)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list terminal themes",
		RunE:  listThemes,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of headless runs in parallel",
		RunE:  bench,
	}
	addFieldFlags(benchCmd)
	addDriverFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [from] [to]",
		Short: "sweep one field parameter across headless runs",
		Args:  cobra.ExactArgs(3),
		RunE:  sweep,
	}
	addFieldFlags(sweepCmd)
	addDriverFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&steps, "steps", 10, "number of values")

	divergenceCmd := &cobra.Command{
		Use:   "divergence",
		Short: "distance between two runs whose particles start offset",
		RunE:  divergence,
	}
	addFieldFlags(divergenceCmd)
	divergenceCmd.Flags().Float64Var(&offset, "offset", 1, "initial offset in pixels")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, snapshotCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, themesCmd, benchCmd, sweepCmd, divergenceCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "surface width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "surface height in pixels")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per headless run")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
}

func addDriverFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&driver, "driver", config.DefaultDriver, "pointer driver")
	cmd.Flags().StringVar(&scriptFile, "script", "", "pointer script for the script driver")
	cmd.Flags().IntVar(&clickEvery, "click-every", 45, "frames between driver clicks (0 never clicks)")
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	slog.Debug("opening window", "width", cfg.Width, "height", cfg.Height, "seed", cfg.Seed)
	gui.Run(params, gui.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Seed:   cfg.Seed,
		Light:  light || cfg.Theme == "light",
	})
	return nil
}
