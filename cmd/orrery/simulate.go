package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/orrery-viz/orrery"
	"github.com/spf13/cobra"
)

var (
	simFrames  int
	simStep    float64
	simSpeed   float64
	simReverse bool
	simPauseAt int
	simOut     string
	simSave    bool
	simEpoch   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <body> [<body>...]",
	Short: "Track bodies over a number of frames",
	Long: `Select each body in turn, replacing the previous orbit, and advance the
clock over --frames frames, printing the tracked position on each one.
With --save the last tracked orbit is saved as a Cosmographia catalog.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVarP(&simFrames, "frames", "n", 10, "number of frames per body")
	f.Float64Var(&simStep, "step", 0.01, "kernel time per frame")
	f.Float64Var(&simSpeed, "speed", 1, "speed multiplier")
	f.BoolVar(&simReverse, "reverse", false, "run the clock backwards")
	f.IntVar(&simPauseAt, "pause-at", -1, "toggle pause at this frame")
	f.BoolVar(&simSave, "save", false, "save the last tracked orbit as a Cosmographia catalog")
	f.StringVarP(&simOut, "out", "o", "", "directory of the export (implies --save, default general.output_path)")
	f.StringVar(&simEpoch, "epoch", "2000-01-01T12:00:00Z", "time of perihelion of the export (RFC3339)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	epoch, err := time.Parse(time.RFC3339, simEpoch)
	if err != nil {
		return fmt.Errorf("--epoch: %w", err)
	}
	prop := newPropagator()
	renderer := &memRenderer{}
	manager := orrery.NewOrbitManager(renderer,
		orrery.WithPolicies(cfg.Policies(prop)),
		orrery.WithCapacity(cfg.OrbitCapacity),
		orrery.WithManagerLogger(logger),
		orrery.WithManagerMetrics(metrics))
	scene := orrery.NewCosmoScene("orrery", cfg.Scaling)
	tracker := orrery.NewTracker(manager, prop, scene, logger)

	out := cmd.OutOrStdout()
	for _, name := range args {
		entry, err := resolveBody(name)
		if err != nil {
			return err
		}
		if err := tracker.SelectEntry(entry, orbitColor(entry)); err != nil {
			// Excluded bodies keep the previous selection.
			fmt.Fprintf(out, "%s excluded: %s\n", entry.Name, err)
			continue
		}
		clk := &clock{step: simStep, speed: simSpeed, reverse: simReverse}
		for frame := 0; frame < simFrames; frame++ {
			if frame == simPauseAt {
				clk.toggle()
			}
			t := clk.advance()
			pos, _ := tracker.Frame(t)
			fmt.Fprintf(out, "%s\t%d\t%.4f\t%s\n", entry.Name, frame, t, formatVec(pos))
		}
	}

	if simSave || simOut != "" {
		if manager.Current() == nil {
			return errors.New("nothing to export: every body was excluded")
		}
		files, err := scene.Save(outputDir(), epoch)
		if err != nil {
			return err
		}
		for _, f := range files {
			logger.Log("level", "info", "subsys", "cli", "status", "written", "file", f)
		}
	}
	tracker.Deselect()
	if renderer.live != 0 {
		logger.Log("level", "warning", "subsys", "cli", "status", "leaked buffers", "count", renderer.live)
	}
	return printMetrics(cmd)
}

func outputDir() string {
	if simOut != "" {
		return simOut
	}
	return filepath.Clean(cfg.OutputDir)
}

func printMetrics(cmd *cobra.Command) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	out := cmd.ErrOrStderr()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				v = float64(m.GetHistogram().GetSampleCount())
			}
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			fmt.Fprintf(out, "%s%s %g\n", mf.GetName(), labels, v)
		}
	}
	return nil
}
