package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dynarray/internal/config"
	"github.com/san-kum/dynarray/internal/dynarray"
	"github.com/san-kum/dynarray/internal/export"
	"github.com/san-kum/dynarray/internal/script"
	"github.com/san-kum/dynarray/internal/storage"
	"github.com/san-kum/dynarray/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	save       bool
	plain      bool
	showSlots  bool
	plotArray  string
	startSize  int
	outFile    string
	svgDir     string
)

// main registers the dynarray commands and runs the atest walkthrough when
// no subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dynarray",
		Short: "dynamic array scenario lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, []string{"atest"})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynarray", "data directory")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable styled output")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "run the atest walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, []string{"atest"})
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "script file path (yaml)")
	runCmd.Flags().BoolVar(&save, "save", false, "record the run trace")
	runCmd.Flags().BoolVar(&showSlots, "slots", false, "draw every slot of every array afterwards")
	runCmd.Flags().StringVar(&svgDir, "svg", "", "write an svg of every array's slots to this directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scripts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-10s %s\n", name, config.Presets[name].Description)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot capacity and used count per step",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotArray, "array", "", "only plot steps on this array")

	growthCmd := &cobra.Command{
		Use:   "growth [n]",
		Short: "push n values and plot capacity after each push",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotGrowth,
	}
	growthCmd.Flags().IntVar(&startSize, "start", dynarray.MinCapacity, "initial capacity")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export capacity and used count per step as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&plotArray, "array", "", "only include steps on this array")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive array REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.AddCommand(demoCmd, runCmd, presetsCmd, listCmd, plotCmd, growthCmd, exportJSONCmd, exportSVGCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScript(args []string) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	name := "atest"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	return cfg, nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadScript(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	runner := script.NewRunner(out, cmd.ErrOrStderr())

	result, err := runner.Run(cfg)
	if err != nil {
		return err
	}

	if showSlots {
		names := runner.Names()
		sort.Strings(names)
		for _, name := range names {
			slots, _ := runner.Slots(name)
			fmt.Fprintf(out, "%s:\n%s\n", name, viz.RenderSlots(slots, usedOf(result, name)))
		}
	}

	if svgDir != "" {
		if err := writeSlotSVGs(runner, result, svgDir); err != nil {
			return err
		}
	}

	printMetrics(out, result.Metrics)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	return nil
}

func writeSlotSVGs(runner *script.Runner, result *script.Result, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range runner.Names() {
		slots, _ := runner.Slots(name)
		svg := export.SlotsToSVG(slots, usedOf(result, name), 40)
		if err := os.WriteFile(filepath.Join(dir, name+".svg"), []byte(svg), 0644); err != nil {
			return err
		}
	}
	return nil
}

// usedOf finds the used count of the array's last snapshot.
func usedOf(result *script.Result, name string) int {
	for i := len(result.Snapshots) - 1; i >= 0; i-- {
		if result.Snapshots[i].Array == name {
			return result.Snapshots[i].NumUsed
		}
	}
	return 0
}

func printMetrics(w io.Writer, metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		if plain {
			fmt.Fprintf(w, "  %s: %g\n", name, metrics[name])
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", viz.MetricLabel.Render(name+":"), viz.MetricValue.Render(fmt.Sprintf("%g", metrics[name])))
	}
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
	fmt.Fprintln(w, "ID\tSCRIPT\tTIME\tSTEPS\tPEAK\tREALLOCS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%.0f\n",
			run.ID,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Metrics["peak_capacity"],
			run.Metrics["reallocations"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	snaps, err := st.LoadTrace(runID)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	var capacity, used []float64
	for _, s := range snaps {
		if plotArray != "" && s.Array != plotArray {
			continue
		}
		capacity = append(capacity, float64(s.Capacity))
		used = append(used, float64(s.NumUsed))
	}

	if len(capacity) < 2 {
		return fmt.Errorf("not enough steps to plot (%d)", len(capacity))
	}

	caption := "capacity (blue) / used (green) per step"
	if plotArray != "" {
		caption = plotArray + ": " + caption
	}
	graph := asciigraph.PlotMany([][]float64{capacity, used},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
	)
	fmt.Println(graph)
	fmt.Println()

	return nil
}

func plotGrowth(cmd *cobra.Command, args []string) error {
	n := 32
	if len(args) > 0 {
		if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 2 {
			return fmt.Errorf("invalid push count: %s", args[0])
		}
	}

	stats := measureGrowth(startSize, n)

	graph := asciigraph.Plot(stats.capacity,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("capacity after each push"),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PUSHES\tSTART\tFINAL\tREALLOCS\tCOPIED")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", n, stats.start, stats.final, stats.reallocs, stats.copied)
	return w.Flush()
}

type growthStats struct {
	start, final     int
	reallocs, copied int
	capacity         []float64
}

// measureGrowth pushes n values into a fresh array and records the capacity
// after each push. copied counts elements moved by reallocations.
func measureGrowth(start, n int) growthStats {
	a := dynarray.NewSized[int](start)
	stats := growthStats{start: a.Capacity(), capacity: make([]float64, 0, n)}

	for i := 0; i < n; i++ {
		before := a.Capacity()
		moved := a.NumUsed()
		a.Push(i)
		if a.Capacity() != before {
			stats.reallocs++
			stats.copied += moved
		}
		stats.capacity = append(stats.capacity, float64(a.Capacity()))
	}

	stats.final = a.Capacity()
	return stats
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	if outFile != "" {
		if err := storage.ExportJSON(outFile, data); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", outFile)
		return nil
	}
	return storage.WriteJSON(os.Stdout, data)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	snaps, err := st.LoadTrace(runID)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	if plotArray != "" {
		filtered := snaps[:0]
		for _, s := range snaps {
			if s.Array == plotArray {
				filtered = append(filtered, s)
			}
		}
		snaps = filtered
	}

	svg := export.TraceToSVG(snaps, 800, 300)
	if svg == "" {
		return fmt.Errorf("not enough steps to export (%d)", len(snaps))
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}
