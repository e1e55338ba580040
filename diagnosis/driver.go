// Package diagnosis implements C7, the driver that wires C1 through
// C6 together and produces the final report, plus the supplemented
// witness-trace and brute-force cross-check features described in
// SPEC_FULL.md.
package diagnosis

import (
	"github.com/rfielding/diagctl/automaton"
	"github.com/rfielding/diagctl/cycles"
	"github.com/rfielding/diagctl/observer"
	"github.com/rfielding/diagctl/recognizer"
)

// Options controls how much work Analyze does beyond the boolean
// verdict.
type Options struct {
	// Full requests every cycle's refinement report, per spec.md §5.
	// When false, Analyze short-circuits at the first indeterminate
	// cycle.
	Full bool
}

// Witness is the supplemented feature of SPEC_FULL.md: a concrete,
// human-readable account of why a NOT DIAGNOSABLE verdict holds,
// built from the first indeterminate cycle's macro-state sequence and
// event word.
type Witness struct {
	MacroStates []int
	Events      []string
	Explanation string
}

// Report is the final output of the pipeline: the diagnosability
// verdict, every examined cycle's refinement report, and — when not
// diagnosable — a witness.
type Report struct {
	Plant       *automaton.Automaton
	Recognizer  *recognizer.Recognizer
	Observer    *observer.Observer
	Diagnosable bool
	Cycles      []cycles.Report
	Witness     *Witness
}

// Analyze runs C3 through C6 on an already-validated plant automaton
// (C1) and returns the final report. Construction of C2..C6 has no
// failure modes (spec.md §4.3, §4.4, §4.6); only C1's construction —
// performed upstream by the automaton or ioformat packages — can fail.
func Analyze(plant *automaton.Automaton, opts Options) *Report {
	rec := recognizer.Build(plant)
	obs := observer.Build(rec)

	var verdict cycles.Verdict
	if opts.Full {
		verdict = cycles.FullReport(rec, obs)
	} else {
		verdict = cycles.Decide(rec, obs)
	}

	report := &Report{
		Plant:       plant,
		Recognizer:  rec,
		Observer:    obs,
		Diagnosable: verdict.Diagnosable,
		Cycles:      verdict.Reports,
	}

	if !verdict.Diagnosable {
		report.Witness = buildWitness(plant, verdict.Reports)
	}

	return report
}

func buildWitness(plant *automaton.Automaton, reports []cycles.Report) *Witness {
	for _, r := range reports {
		if !r.Indeterminate {
			continue
		}
		events := make([]string, len(r.Cycle.Events))
		for i, e := range r.Cycle.Events {
			sym, ok := plant.Alphabet().Symbol(e)
			if !ok {
				sym = "?"
			}
			events[i] = sym
		}
		return &Witness{
			MacroStates: append([]int(nil), r.Cycle.MacroStates...),
			Events:      events,
			Explanation: "this event sequence repeats indefinitely and stays ambiguous on every repetition: " +
				"the plant can run it both with and without the fault having occurred, and no observation ever tells them apart",
		}
	}
	return nil
}
