// Package monitor implements C2, the two-state fault monitor M that
// the synchronous composer products against the plant.
package monitor

import "github.com/rfielding/diagctl/alphabet"

// State is a monitor state. Encoded 1=Normal, 2=Faulty — this is part
// of the §6 on-the-wire display contract, so the concrete values are
// load-bearing, not an implementation detail.
type State int

const (
	Normal State = 1
	Faulty State = 2
)

func (s State) String() string {
	switch s {
	case Normal:
		return "N"
	case Faulty:
		return "F"
	default:
		return "?"
	}
}

// Monitor is M: deterministic, total over Σ. Once a fault event has
// fired it stays in Faulty forever — there is no transition out of F.
type Monitor struct {
	faults map[alphabet.ID]bool
}

// New builds M from the plant's fault event set.
func New(faultEvents []alphabet.ID) *Monitor {
	m := &Monitor{faults: make(map[alphabet.ID]bool, len(faultEvents))}
	for _, e := range faultEvents {
		m.faults[e] = true
	}
	return m
}

// Initial is M's initial state, N.
func (m *Monitor) Initial() State { return Normal }

// Step computes N —e→ F if e is a fault and current state is N, else
// stays put; F is absorbing. Total: defined for every (state, event).
func (m *Monitor) Step(state State, e alphabet.ID) State {
	if state == Faulty {
		return Faulty
	}
	if m.faults[e] {
		return Faulty
	}
	return Normal
}
