package cycles

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rfielding/diagctl/observer"
	"github.com/rfielding/diagctl/recognizer"
)

// Verdict is the outcome of the full decision procedure (spec.md
// §4.6 Steps 2–5).
type Verdict struct {
	Diagnosable bool
	// Reports holds every enumerated cycle's refinement report, in
	// deterministic discovery order. When Decide found an indeterminate
	// cycle and stopped early, Reports holds only the cycles discovered
	// up to and including the witness.
	Reports []Report
}

// Decide runs the boolean-only fast path of spec.md §5: it refines
// cycles as they are discovered and stops enumerating entirely as soon
// as one turns out indeterminate, rather than materializing the full
// cycle list first — enumeration itself is potentially exponential, so
// the short-circuit has to reach into VisitSimpleCycles, not just the
// refinement loop around a pre-built slice. An empty U-subgraph
// short-circuits to diagnosable with no cycle reports.
func Decide(rec *recognizer.Recognizer, obs *observer.Observer) Verdict {
	var reports []Report
	diagnosable := true

	VisitSimpleCycles(obs, func(cyc Cycle) bool {
		r := RefineCycle(rec, obs, cyc)
		reports = append(reports, r)
		if r.Indeterminate {
			diagnosable = false
			return false
		}
		return true
	})

	return Verdict{Diagnosable: diagnosable, Reports: reports}
}

// FullReport runs every simple cycle's refinement to completion,
// regardless of whether an earlier cycle already settled the verdict —
// spec.md §5: "when a full report is requested, all cycles are
// enumerated". Refinement of independent cycles is embarrassingly
// parallel (spec.md §5), so each cycle's RefineCycle call runs on its
// own goroutine via errgroup.Group, writing into a pre-sized slice
// indexed by discovery order; the result slice is returned in that
// same deterministic order regardless of completion order.
func FullReport(rec *recognizer.Recognizer, obs *observer.Observer) Verdict {
	cycleList := FindSimpleCycles(obs)
	if len(cycleList) == 0 {
		return Verdict{Diagnosable: true}
	}

	reports := make([]Report, len(cycleList))
	g, _ := errgroup.WithContext(context.Background())
	for i, cyc := range cycleList {
		i, cyc := i, cyc
		g.Go(func() error {
			reports[i] = RefineCycle(rec, obs, cyc)
			return nil
		})
	}
	_ = g.Wait()

	diagnosable := true
	for _, r := range reports {
		if r.Indeterminate {
			diagnosable = false
			break
		}
	}
	return Verdict{Diagnosable: diagnosable, Reports: reports}
}
