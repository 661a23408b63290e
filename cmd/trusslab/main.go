// trusslab is a 2D truss sketching and load-simulation lab.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/trusslab/internal/config"
	"github.com/san-kum/trusslab/internal/engine"
	"github.com/san-kum/trusslab/internal/joints"
	"github.com/san-kum/trusslab/internal/live"
	"github.com/san-kum/trusslab/internal/preset"
	"github.com/san-kum/trusslab/internal/session"
	"github.com/san-kum/trusslab/internal/store"
	"github.com/san-kum/trusslab/internal/structure"
	"github.com/san-kum/trusslab/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	duration   float64
	gravityY   float64
	noSave     bool
)

var logger *log.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "trusslab",
		Short: "2D truss sketching and load simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset|file]",
		Short: "run a headless simulation and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	runCmd.Flags().Float64Var(&gravityY, "gravity", config.DefaultGravityY, "vertical gravity")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset|file]",
		Short: "watch a simulation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	jointsCmd := &cobra.Command{
		Use:   "joints [preset|file]",
		Short: "print joint angle and torque analytics",
		Args:  cobra.ExactArgs(1),
		RunE:  printJoints,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [preset|file]",
		Short: "print structure statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  printStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in structures",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range preset.List() {
				fmt.Println(name)
			}
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's stress trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a stored run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, jointsCmd, statsCmd, presetsCmd, runsCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadStructure resolves arg as a preset name first, then as a file path.
func loadStructure(arg string) (*structure.Structure, error) {
	if st := preset.Get(arg); st != nil {
		return st, nil
	}
	if _, err := os.Stat(arg); err == nil {
		return structure.ReadFile(arg)
	}
	return nil, fmt.Errorf("no preset or file named %q (presets: %s)",
		arg, strings.Join(preset.List(), ", "))
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func newSession(cfg *config.Config) *session.Session {
	world := engine.NewWorld()
	world.Gravity.Y = cfg.GravityY
	world.GroundY = cfg.GroundY
	return session.New(world)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	st, err := loadStructure(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("gravity") {
		cfg.GravityY = gravityY
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sess := newSession(cfg)
	sess.Start(st)

	ticks := cfg.Ticks()
	trace := make([]float64, 0, ticks)
	logger.Debug("simulating", "ticks", ticks)
	for i := 0; i < ticks; i++ {
		sess.Step()
		sess.UpdateStress()
		trace = append(trace, sess.MaxStress())
	}
	sess.Stop()

	stats := st.Stats()
	peak := 0.0
	for _, v := range trace {
		peak = math.Max(peak, v)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "structure\t%s\n", args[0])
	fmt.Fprintf(w, "duration\t%.1fs (%d ticks)\n", cfg.Duration, ticks)
	fmt.Fprintf(w, "nodes\t%d\n", stats.NodeCount)
	fmt.Fprintf(w, "segments\t%d\n", stats.SegmentCount)
	fmt.Fprintf(w, "weights\t%d\n", stats.WeightCount)
	fmt.Fprintf(w, "peak stress\t%.3f\n", peak)
	w.Flush()

	if noSave {
		return nil
	}
	s := store.New(dataDir)
	if err := s.Init(); err != nil {
		return err
	}
	runID, err := s.Save(args[0], cfg.Duration, cfg.TicksPerSecond, st, trace)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	st, err := loadStructure(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return live.Run(args[0], st, newSession(cfg))
}

func printJoints(cmd *cobra.Command, args []string) error {
	st, err := loadStructure(args[0])
	if err != nil {
		return err
	}

	nodeIndex := make(map[*structure.Node]int, len(st.Nodes))
	for i, n := range st.Nodes {
		nodeIndex[n] = i
	}
	segIndex := make(map[*structure.Segment]int, len(st.Segments))
	for i, s := range st.Segments {
		segIndex[s] = i
	}

	data := joints.Compute(st, false)

	ordered := make([]*structure.Node, 0, len(data))
	for n := range data {
		ordered = append(ordered, n)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return nodeIndex[ordered[i]] < nodeIndex[ordered[j]]
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "joint\tpair\tangle\trest\ttorque")
	for _, n := range ordered {
		for _, p := range data[n] {
			fmt.Fprintf(w, "n%d\ts%d-s%d\t%.1f°\t%.1f°\t%.4f\n",
				nodeIndex[n], segIndex[p.SegmentA], segIndex[p.SegmentB],
				deg(p.Angle), deg(p.RestAngle), p.Torque)
		}
	}
	return w.Flush()
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

func printStats(cmd *cobra.Command, args []string) error {
	st, err := loadStructure(args[0])
	if err != nil {
		return err
	}
	r := viz.NewRenderer(70, 20, st)
	fmt.Println(viz.Title("trusslab · " + args[0]))
	fmt.Print(r.Render(st, false))
	fmt.Println(viz.Summary(st))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tname\twhen\tduration\tpeak stress")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%.3f\n",
			r.ID, r.Name, r.Timestamp.Format("2006-01-02 15:04"), r.Duration, r.MaxStress)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, values, err := store.New(dataDir).LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(values) < 2 {
		return fmt.Errorf("run %s has no trace to plot", args[0])
	}
	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(78),
		asciigraph.Caption("max stress over time"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
