package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rfielding/diagctl/config"
	"github.com/rfielding/diagctl/diagnosis"
	"github.com/rfielding/diagctl/ioformat"
	"github.com/rfielding/diagctl/render"
)

var checkFlags struct {
	configPath      string
	full            bool
	showCycleGraphs bool
	verify          bool
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Decide whether the automaton described by <file> is diagnosable",
	Long: `check parses an NFA description in the §6 text format, builds its
recognizer and observer, and reports whether the system is diagnosable.

Usage:
  diagctl check plant.nfa
  diagctl check --full --show-cycle-graphs plant.nfa
  diagctl check --verify plant.nfa`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	f := checkCmd.Flags()
	f.StringVar(&checkFlags.configPath, "config", "", "Path to a .diagctl.yaml config file")
	f.BoolVar(&checkFlags.full, "full", false, "Report every examined cycle instead of stopping at the first witness")
	f.BoolVar(&checkFlags.showCycleGraphs, "show-cycle-graphs", false, "Render each examined cycle's refinement trace")
	f.BoolVar(&checkFlags.verify, "verify", false, "Cross-check the verdict with an independent brute-force search")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if checkFlags.configPath != "" {
		loaded, err := config.Load(checkFlags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	showCycleGraphs := checkFlags.showCycleGraphs || cfg.ShowCycleGraphs
	render.SetColorEnabled(cfg.Color)

	slog.Debug("reading automaton file", "path", args[0])
	plant, err := ioformat.ReadFile(args[0])
	if err != nil {
		slog.Error("failed to read automaton file", "path", args[0], "err", err)
		return fmt.Errorf("check: %w", err)
	}

	report := diagnosis.Analyze(plant, diagnosis.Options{Full: checkFlags.full || showCycleGraphs})
	slog.Info("diagnosability analysis complete", "diagnosable", report.Diagnosable, "cycles_examined", len(report.Cycles))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Transitions(plant))
	fmt.Fprintln(out, render.ObserverTable(report.Observer))

	if showCycleGraphs {
		cycles := report.Cycles
		if cfg.MaxCyclesReported > 0 && len(cycles) > cfg.MaxCyclesReported {
			cycles = cycles[:cfg.MaxCyclesReported]
		}
		for _, c := range cycles {
			fmt.Fprintln(out, render.CycleReport(plant, report.Recognizer, c))
		}
	}

	fmt.Fprintln(out, render.VerdictBanner(report))

	if checkFlags.verify {
		bf := diagnosis.BruteForceCheck(report.Recognizer, report.Observer)
		if bf.Diagnosable != report.Diagnosable {
			return fmt.Errorf("verify: cycle-based verdict (%v) disagrees with brute-force verdict (%v)", report.Diagnosable, bf.Diagnosable)
		}
		fmt.Fprintln(out, "verify: brute-force cross-check agrees")
	}

	return nil
}
