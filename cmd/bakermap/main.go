package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/bakermap/internal/config"
	"github.com/san-kum/bakermap/internal/experiment"
	"github.com/san-kum/bakermap/internal/input"
	"github.com/san-kum/bakermap/internal/viz"
)

var (
	outputFile string
	inputFile  string
	dimension  string
	nsteps     string
	random     bool
	folded     bool
	verbose    bool
	seed       int64
	delay      int
	palette    string
	dither     bool
	workers    int
	record     bool
	progress   bool
	dataDir    string
	configFile string
	preset     string
	theme      string

	log = logrus.New()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bakermap [input image]",
		Short: "render the baker's map as an animated gif",
		Long: "Applies the discrete baker's map to a square image again and again and\n" +
			"writes every iteration as one frame of an animated GIF.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runRender,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging()
		viz.SetTheme(theme)
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputFile, "output", "o", config.DefaultOutput, "output gif")
	pf.StringVarP(&inputFile, "input", "i", "", "seed image (png, jpeg or gif)")
	pf.Lookup("input").NoOptDefVal = input.DefaultName
	pf.StringVarP(&dimension, "dimension", "d", fmt.Sprint(config.DefaultDimension), "side of the square image")
	pf.StringVarP(&nsteps, "nsteps", "n", fmt.Sprint(config.DefaultSteps), "number of frames")
	pf.BoolVarP(&random, "random", "r", false, "start from random noise")
	pf.BoolVarP(&folded, "folded", "f", false, "use the folded map")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print diagnostics")
	pf.Int64Var(&seed, "seed", 0, "random seed, 0 picks one")
	pf.IntVar(&delay, "delay", 10, "frame delay in 1/100 s")
	pf.StringVar(&palette, "palette", "auto", "gif palette: auto, exact, kmeans, dominant, plan9")
	pf.BoolVar(&dither, "dither", false, "dither frames onto the palette")
	pf.IntVar(&workers, "workers", 0, "transform workers, 0 uses every cpu")
	pf.BoolVar(&record, "record", false, "record the run and its metrics")
	pf.BoolVar(&progress, "progress", false, "show a progress view while rendering")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for recorded runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&theme, "theme", viz.ThemeDough.Name, "terminal colour theme")

	renderCmd := &cobra.Command{
		Use:   "render [input image]",
		Short: "render the gif (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(renderCmd, presetsCmd)
	addToolCommands(rootCmd)
	addRunCommands(rootCmd)

	return rootCmd
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}

// resolveConfig layers a preset, a config file and the changed flags, in that
// order, over the defaults.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
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

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = outputFile
	}
	if flags.Changed("input") {
		cfg.Input = inputFile
	}
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if flags.Changed("dimension") {
		dim, ok := config.ParseDimension(dimension)
		if !ok {
			log.WithField("value", dimension).Debug("unparsable dimension, using default")
		}
		cfg.Dim = dim
	}
	if flags.Changed("nsteps") {
		n, ok := config.ParseSteps(nsteps)
		if !ok {
			log.WithField("value", nsteps).Debug("unparsable step count, using default")
		}
		cfg.Steps = n
	}
	if flags.Changed("random") {
		cfg.Random = random
	}
	if flags.Changed("folded") {
		cfg.Folded = folded
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("delay") {
		cfg.GIF.Delay = delay
	}
	if flags.Changed("palette") {
		cfg.GIF.Palette = palette
	}
	if flags.Changed("dither") {
		cfg.GIF.Dither = dither
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("record") {
		cfg.Record = record
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	if cfg.Verbose && !verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	log.WithFields(logrus.Fields{
		"output":  cfg.Output,
		"input":   cfg.Input,
		"dim":     cfg.Dim,
		"steps":   cfg.Steps,
		"random":  cfg.Random,
		"folded":  cfg.Folded,
		"palette": cfg.GIF.Palette,
	}).Debug("configuration")

	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry().DefaultMetrics()); err != nil {
		return err
	}

	ctx := cmd.Context()
	var out *experiment.Outcome
	if progress {
		out, err = renderWithProgress(ctx, exp, cfg.Steps)
	} else {
		out, err = exp.Run(ctx)
	}
	if err != nil {
		return err
	}
	if len(out.Result.Frames) == 0 {
		return nil
	}

	t := viz.CurrentTheme
	fmt.Printf("%s %s  %s\n",
		t.Ok().Render("wrote"),
		out.Output,
		t.Label().Render(fmt.Sprintf("%d frames, %dx%d, %s", len(out.Result.Frames), cfg.Dim, cfg.Dim, exp.Variant())))
	if out.RunID != "" {
		fmt.Printf("%s %s\n", t.Label().Render("run id:"), out.RunID)
	}
	if verbose || cfg.Verbose {
		fmt.Println(viz.MetricTable(out.Result.Metrics))
	}
	return nil
}

func renderWithProgress(ctx context.Context, exp *experiment.Experiment, steps int) (*experiment.Outcome, error) {
	prog := tea.NewProgram(viz.NewProgressModel(steps))
	exp.Generator().AddObserver(&viz.ProgressObserver{Target: prog})

	type runResult struct {
		out *experiment.Outcome
		err error
	}
	done := make(chan runResult, 1)
	go func() {
		out, err := exp.Run(ctx)
		msg := viz.DoneMsg{Err: err}
		if out != nil {
			msg.Output = out.Output
		}
		prog.Send(msg)
		done <- runResult{out, err}
	}()

	if _, err := prog.Run(); err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	r := <-done
	return r.out, r.err
}

func listPresets(cmd *cobra.Command, args []string) error {
	t := viz.CurrentTheme
	fmt.Println(t.Title().Render("presets"))
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		mode := "split"
		if p.Random {
			mode = "random"
		}
		variant := "unfolded"
		if p.Folded {
			variant = "folded"
		}
		fmt.Printf("  %-14s %s\n", name,
			t.Label().Render(fmt.Sprintf("%dx%d, %d frames, %s, %s, palette %s", p.Dim, p.Dim, p.Steps, mode, variant, p.GIF.Palette)))
	}
	return nil
}
