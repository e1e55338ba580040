// Package automaton is the read-only plant model, C1 of the
// diagnosability pipeline: a non-deterministic finite automaton with
// its alphabet partitioned into observable, unobservable, and fault
// events.
//
// Modelled on the teacher's KripkeStructure: build an adjacency
// structure incrementally, then freeze it. Unlike the teacher, this
// model indexes transitions twice — by source, and by (source, event)
// — because both the synchronous composer and the observer's subset
// construction need dense lookup on both.
package automaton

import (
	"fmt"
	"sort"

	"github.com/rfielding/diagctl/alphabet"
)

// StateID is a dense plant state identifier, 1..NumStates().
type StateID int

// Transition is one arc of the plant's transition relation.
type Transition struct {
	From  StateID
	Event alphabet.ID
	To    StateID
}

// MalformedInputError reports a structural defect in the constructed
// automaton: an out-of-range state reference, an unknown event symbol,
// an empty initial-state set, or a duplicate event classification.
// This is the only error class C1 can produce; spec.md classifies it
// as an input error, not an internal invariant violation.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed automaton input: %s", e.Reason)
}

// Automaton is the immutable plant model. Once Build returns, nothing
// about it changes; downstream stages hold a pointer to it and never
// copy or mutate its contents.
type Automaton struct {
	n        int
	alphabet *alphabet.Table

	observable   map[alphabet.ID]bool
	unobservable map[alphabet.ID]bool
	fault        map[alphabet.ID]bool

	initial []StateID
	marked  []StateID

	bySource      map[StateID][]Transition
	bySourceEvent map[StateID]map[alphabet.ID][]StateID
}

// NumStates returns |Q|.
func (a *Automaton) NumStates() int { return a.n }

// Alphabet returns the shared alphabet table. Callers must not mutate
// the returned value; none of its methods allow mutation.
func (a *Automaton) Alphabet() *alphabet.Table { return a.alphabet }

// Initial returns Q_0, the non-empty initial state set.
func (a *Automaton) Initial() []StateID {
	out := make([]StateID, len(a.initial))
	copy(out, a.initial)
	return out
}

// Marked returns Q_m. Unused by the diagnosability core; preserved for
// completeness of the plant model.
func (a *Automaton) Marked() []StateID {
	out := make([]StateID, len(a.marked))
	copy(out, a.marked)
	return out
}

// IsObservable reports whether e ∈ Σ_o.
func (a *Automaton) IsObservable(e alphabet.ID) bool { return a.observable[e] }

// IsUnobservable reports whether e ∈ Σ_uo.
func (a *Automaton) IsUnobservable(e alphabet.ID) bool { return a.unobservable[e] }

// IsFault reports whether e ∈ Σ_f. Spec.md's open question: a fault
// event may also be observable, so IsFault and IsObservable are not
// mutually exclusive.
func (a *Automaton) IsFault(e alphabet.ID) bool { return a.fault[e] }

// ObservableEvents returns Σ_o in ascending id order.
func (a *Automaton) ObservableEvents() []alphabet.ID { return sortedKeys(a.observable) }

// UnobservableEvents returns Σ_uo in ascending id order.
func (a *Automaton) UnobservableEvents() []alphabet.ID { return sortedKeys(a.unobservable) }

// FaultEvents returns Σ_f in ascending id order.
func (a *Automaton) FaultEvents() []alphabet.ID { return sortedKeys(a.fault) }

// Transitions returns every outgoing transition from q, in ascending
// (event, target) order.
func (a *Automaton) Transitions(q StateID) []Transition {
	ts := a.bySource[q]
	out := make([]Transition, len(ts))
	copy(out, ts)
	return out
}

// TransitionsOn returns every target reachable from q on event e, in
// ascending order, or nil if (q, e) has no outgoing transition.
func (a *Automaton) TransitionsOn(q StateID, e alphabet.ID) []StateID {
	targets := a.bySourceEvent[q][e]
	if len(targets) == 0 {
		return nil
	}
	out := make([]StateID, len(targets))
	copy(out, targets)
	return out
}

func sortedKeys(set map[alphabet.ID]bool) []alphabet.ID {
	out := make([]alphabet.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func validStateRange(q StateID, n int) bool {
	return int(q) >= 1 && int(q) <= n
}
