package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bakermap/internal/analysis"
	"github.com/san-kum/bakermap/internal/automation"
	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/compute"
	"github.com/san-kum/bakermap/internal/experiment"
	"github.com/san-kum/bakermap/internal/export"
	"github.com/san-kum/bakermap/internal/frame"
	"github.com/san-kum/bakermap/internal/initial"
	"github.com/san-kum/bakermap/internal/metrics"
	"github.com/san-kum/bakermap/internal/sim"
	"github.com/san-kum/bakermap/internal/viz"
)

var (
	maxSteps   int
	orbitX     int
	orbitY     int
	orbitLen   int
	step       int
	width      int
	svgScale   int
	benchSteps int
	sweepMin   int
	sweepMax   int
)

func addToolCommands(root *cobra.Command) {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "find the cycle of the frame sequence and follow one pixel",
		Args:  cobra.NoArgs,
		RunE:  analyzeMap,
	}
	analyzeCmd.Flags().IntVar(&maxSteps, "max-steps", 1000, "give up after this many transforms")
	analyzeCmd.Flags().IntVar(&orbitX, "x", 0, "orbit start column")
	analyzeCmd.Flags().IntVar(&orbitY, "y", 0, "orbit start row")
	analyzeCmd.Flags().IntVar(&orbitLen, "orbit", 16, "orbit length")

	previewCmd := &cobra.Command{
		Use:   "preview [input image]",
		Short: "draw one frame in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  previewFrame,
	}
	previewCmd.Flags().IntVar(&step, "step", 0, "frame index to draw")
	previewCmd.Flags().IntVar(&width, "width", 40, "preview width in cells")

	svgCmd := &cobra.Command{
		Use:   "export-svg [file.svg]",
		Short: "write one frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&step, "step", 0, "frame index to export")
	svgCmd.Flags().IntVar(&svgScale, "scale", 4, "svg units per pixel")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the transform on each backend",
		Args:  cobra.NoArgs,
		RunE:  benchTransform,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 20, "transforms per backend")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every entry of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [input image]",
		Short: "compare the unfolded and folded maps on the same image",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareVariants,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "cycle length and coverage over a range of dimensions",
		Args:  cobra.NoArgs,
		RunE:  sweepDimensions,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", 2, "smallest dimension")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 32, "largest dimension")
	sweepCmd.Flags().IntVar(&maxSteps, "max-steps", 1000, "give up after this many transforms")

	root.AddCommand(analyzeCmd, previewCmd, svgCmd, benchCmd, batchCmd, compareCmd, sweepCmd)
}

func startFrame(cmd *cobra.Command, args []string) (frame.Frame, baker.Variant, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return frame.Frame{}, baker.Unfolded, err
	}
	if err := cfg.Validate(); err != nil {
		return frame.Frame{}, baker.Unfolded, err
	}
	exp := experiment.New(cfg, log)
	f, err := exp.Initial()
	return f, exp.Variant(), err
}

// frameAt returns frame index n of the sequence starting at f.
func frameAt(f frame.Frame, v baker.Variant, n int) frame.Frame {
	if n < 0 {
		n = 0
	}
	frames := sim.Generate(f, n+1, v)
	return frames[len(frames)-1]
}

func analyzeMap(cmd *cobra.Command, args []string) error {
	start, v, err := startFrame(cmd, args)
	if err != nil {
		return err
	}
	dim := start.Dim()
	t := viz.CurrentTheme

	cycle, err := analysis.DetectCycle(start, v, maxSteps)
	if err != nil {
		return err
	}
	read, total := analysis.Coverage(v, dim)

	fmt.Println(t.Title().Render(fmt.Sprintf("%s map, %dx%d", v, dim, dim)))
	fmt.Printf("%s %s\n", t.Label().Render("cycle:"), t.Value().Render(cycle.String()))
	fmt.Printf("%s %s\n", t.Label().Render("pixels read per step:"),
		t.Value().Render(fmt.Sprintf("%d of %d (%.1f%%)", read, total, 100*float64(read)/float64(total))))

	counts := initial.ChannelCounts(start)
	pvals := make([]string, 0, 3)
	for i, ch := range []string{"r", "g", "b"} {
		pvals = append(pvals, fmt.Sprintf("%s=%.3f", ch, initial.UniformityPValue(counts[i][:])))
	}
	fmt.Printf("%s %s\n", t.Label().Render("channel uniformity p-values:"), t.Value().Render(strings.Join(pvals, " ")))

	n := cycle.Steps + 1
	if cycle.Found {
		n = cycle.Transient + 2*cycle.Period + 1
	}
	n = max(n, 2)
	distinct := metrics.NewDistinct()
	entropy := metrics.NewEntropy()
	colours := make([]float64, 0, n)
	bits := make([]float64, 0, n)
	for i, f := range sim.Generate(start, n, v) {
		distinct.Observe(i, f)
		entropy.Observe(i, f)
		colours = append(colours, distinct.Value())
		bits = append(bits, entropy.Value())
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(colours, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("distinct colours per frame")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(bits, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("colour entropy (bits) per frame")))

	pts, err := analysis.Orbit(v, dim, orbitX, orbitY, orbitLen)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(t.Title().Render(fmt.Sprintf("orbit of (%d, %d)", orbitX, orbitY)))
	for i, p := range pts {
		fmt.Printf("  %3d  (%d, %d)\n", i, p.X, p.Y)
	}
	canvas := viz.NewCanvas(30, 15)
	canvas.PlotOrbit(pts, dim)
	fmt.Println(t.Panel().Render(canvas.String()))
	return nil
}

func previewFrame(cmd *cobra.Command, args []string) error {
	start, v, err := startFrame(cmd, args)
	if err != nil {
		return err
	}
	f := frameAt(start, v, step)
	fmt.Println(viz.CurrentTheme.Title().Render(fmt.Sprintf("frame %d, %s", step, v)))
	fmt.Print(viz.Preview(f, width))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	start, v, err := startFrame(cmd, nil)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(args[0], frameAt(start, v, step), svgScale); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", viz.CurrentTheme.Ok().Render("wrote"), args[0])
	return nil
}

func benchTransform(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	f, err := initial.Create(cfg.Dim, initial.Random, initial.NewRand(cfg.Seed))
	if err != nil {
		return err
	}
	v := baker.VariantFromFolded(cfg.Folded)

	backends := []compute.Backend{
		compute.NewSerialBackend(),
		compute.ForWorkers(cfg.Workers),
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tDIM\tSTEPS\tTOTAL\tPER STEP")
	for _, b := range backends {
		cur := f
		start := time.Now()
		for i := 0; i < benchSteps; i++ {
			cur = baker.TransformWith(cur, v, baker.Options{Backend: b})
		}
		elapsed := time.Since(start)
		per := time.Duration(0)
		if benchSteps > 0 {
			per = elapsed / time.Duration(benchSteps)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%v\n", b.Name(), cfg.Dim, benchSteps, elapsed.Round(time.Microsecond), per.Round(time.Microsecond))
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	t := viz.CurrentTheme
	if sc.Name != "" {
		fmt.Println(t.Title().Render(sc.Name))
	}
	if sc.Description != "" {
		fmt.Println(t.Label().Render(sc.Description))
	}

	outs, err := automation.RunScenario(cmd.Context(), sc, log)
	for _, out := range outs {
		fmt.Printf("%s %s  %s\n", t.Ok().Render("wrote"), out.Output,
			t.Label().Render(fmt.Sprintf("%d frames", len(out.Result.Frames))))
	}
	return err
}

func compareVariants(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	start, err := experiment.New(cfg, log).Initial()
	if err != nil {
		return err
	}

	cmp, err := automation.CompareVariants(cmd.Context(), start, cfg.Steps, cfg.Workers)
	if err != nil {
		return err
	}

	t := viz.CurrentTheme
	for _, c := range cmp {
		fmt.Println(t.Title().Render(c.Variant.String()))
		fmt.Println(viz.MetricTable(c.Result.Metrics))
		for _, name := range sortedNames(c.Result.Series) {
			fmt.Printf("%-12s %s\n", name, viz.Sparkline(c.Result.Series[name], 30))
		}
		fmt.Println()
	}
	return nil
}

func sweepDimensions(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	v := baker.VariantFromFolded(cfg.Folded)
	mode := initial.ModeFromRandom(cfg.Random)
	create := func(dim int) (frame.Frame, error) {
		return initial.Create(dim, mode, initial.NewRand(cfg.Seed))
	}

	res, err := automation.SweepDimensions(cmd.Context(), sweepMin, sweepMax, v, maxSteps, create)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIM\tTRANSIENT\tPERIOD\tREAD\tTOTAL")
	for _, r := range res {
		transient, period := "-", "-"
		if r.Cycle.Found {
			transient, period = fmt.Sprint(r.Cycle.Transient), fmt.Sprint(r.Cycle.Period)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", r.Dim, transient, period, r.Read, r.Total)
	}
	return w.Flush()
}
