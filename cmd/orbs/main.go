package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbs/internal/bench"
	"github.com/san-kum/orbs/internal/config"
	"github.com/san-kum/orbs/internal/display"
	"github.com/san-kum/orbs/internal/frame"
)

var (
	configFile string
	preset     string
	numOrbs    int
	orbRadius  int
	seed       uint64
	logLevel   string
	logFile    string
	// bench
	frames   int
	live     bool
	snapshot string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "orbs",
		Short:        "orbiting particle rendering benchmark",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&numOrbs, "orbs", config.DefaultOrbs, "number of orbs")
	rootCmd.PersistentFlags().IntVar(&orbRadius, "radius", config.DefaultOrbRadius, "orb radius in pixels")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file instead of stderr")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "render in a window",
		RunE:  runGUI,
	}

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "render in the terminal with braille cells",
		RunE:  runTerm,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "render offscreen and report frame rate",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 600, "frames to render")
	benchCmd.Flags().BoolVar(&live, "live", false, "show live progress")
	benchCmd.Flags().StringVar(&snapshot, "snapshot", "", "write the last frame to a png file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(guiCmd, termCmd, benchCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("orbs") {
		cfg.Orbs = numOrbs
	}
	if cmd.Flags().Changed("radius") {
		cfg.OrbRadius = orbRadius
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, cfg.Validate()
}

// newLogger builds the root logger. When quiet is set and no log file was
// given, logs are discarded.
func newLogger(quiet bool) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(logLevel)
	if level == hclog.NoLevel {
		return nil, nil, fmt.Errorf("unknown log level: %s", logLevel)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out, closer = f, f
	case quiet:
		out = io.Discard
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "orbs",
		Level:  level,
		Output: out,
	})
	return logger, closer, nil
}

// drive runs d until it stops. Interrupts count as a clean exit.
func drive(ctx context.Context, d *frame.Driver, logger hclog.Logger) error {
	err := d.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		logger.Error("run failed", "error", err)
	}
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	win, err := display.OpenWindow(cfg.Title, cfg.Width, cfg.Height, cfg.Font.Path, cfg.Font.Size, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	d, err := frame.Setup(cfg, win, logger.Named("frame"))
	if err != nil {
		return err
	}
	return drive(cmd.Context(), d, logger)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	term, err := display.OpenTerminal(cfg.Width, cfg.Height, logger.Named("terminal"))
	if err != nil {
		return err
	}
	defer term.Close()

	d, err := frame.Setup(cfg, term, logger.Named("frame"))
	if err != nil {
		return err
	}
	return drive(cmd.Context(), d, logger)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(live)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := bench.Options{
		Frames:  frames,
		Backend: display.NewHeadless(cfg.Width, cfg.Height),
		Logger:  logger.Named("bench"),
	}

	var rep *bench.Report
	if live {
		rep, err = bench.RunLive(cmd.Context(), cfg, opts, os.Stdin, os.Stdout)
	} else {
		rep, err = bench.Run(cmd.Context(), cfg, opts)
	}
	if errors.Is(err, context.Canceled) && rep == nil {
		return nil
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := rep.Table(os.Stdout); err != nil {
		return err
	}
	if plot := rep.Plot(); plot != "" {
		fmt.Println()
		fmt.Println(plot)
	}

	if snapshot != "" {
		f, err := os.Create(snapshot)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := opts.Backend.WritePNG(f); err != nil {
			return err
		}
		fmt.Printf("\nsnapshot written to %s\n", snapshot)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tORBS\tRADIUS\tSPEED")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%g\n", name, p.Width, p.Height, p.Orbs, p.OrbRadius, p.Speed)
	}
	return w.Flush()
}
