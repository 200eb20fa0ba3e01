package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bakermap/internal/storage"
	"github.com/san-kum/bakermap/internal/viz"
)

var showJSON bool

func addRunCommands(root *cobra.Command) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print metadata and series as json")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metrics of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	root.AddCommand(listCmd, showCmd, plotCmd)
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
	fmt.Fprintln(w, "ID\tTIME\tVARIANT\tMODE\tDIM\tFRAMES\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID[:min(8, len(run.ID))],
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Variant,
			run.Mode,
			run.Dim,
			run.Steps,
			run.Output,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := st.Resolve(args[0])
	if err != nil {
		return err
	}

	if showJSON {
		return st.ExportJSON(os.Stdout, runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	t := viz.CurrentTheme
	fmt.Println(t.Title().Render("run " + meta.ID))
	fmt.Printf("%s %s\n", t.Label().Render("recorded:"), meta.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("%s %s, %s, %dx%d, %d frames\n", t.Label().Render("map:"), meta.Variant, meta.Mode, meta.Dim, meta.Dim, meta.Steps)
	if meta.Input != "" {
		fmt.Printf("%s %s\n", t.Label().Render("input:"), meta.Input)
	}
	fmt.Printf("%s %s (palette %s)\n", t.Label().Render("output:"), meta.Output, meta.Palette)
	fmt.Println(viz.Separator(40))
	fmt.Println(viz.MetricTable(meta.Metrics))

	names := sortedNames(series)
	if len(names) > 0 {
		fmt.Println(viz.Separator(40))
	}
	for _, name := range names {
		fmt.Printf("%-12s %s\n", name, viz.Sparkline(series[name], 30))
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := st.Resolve(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	names := sortedNames(series)
	plotted := 0
	fmt.Printf("run: %s\n\n", runID)
	for _, name := range names {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(name+" per frame"),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}
	if plotted == 0 {
		return fmt.Errorf("no data to plot")
	}
	return nil
}

func sortedNames(series map[string][]float64) []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
