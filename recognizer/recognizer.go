// Package recognizer builds C3, Rec(G) = G ∥ M, the synchronous
// product of the plant and the fault monitor.
//
// Modelled on the teacher's frontier-exploration construction
// (kripke.go's incremental AddTransition-while-walking idiom),
// generalised to explore the compound state space (q, m) instead of a
// flat state space.
package recognizer

import (
	"sort"

	"github.com/rfielding/diagctl/alphabet"
	"github.com/rfielding/diagctl/automaton"
	"github.com/rfielding/diagctl/monitor"
)

// CompoundState is the tagged variant spec.md §9 calls for: a single
// representation instead of the source's mix of [q,m] pairs and
// "(q,N)" strings. Internal code holds these directly; strings are
// produced only at the render boundary.
type CompoundState struct {
	Plant  automaton.StateID
	Status monitor.State
}

// CanonicalID computes the stable integer id 2·(q-1) + (m-1) + 1 for
// a compound state, per spec.md §4.3.
func CanonicalID(cs CompoundState) int {
	return 2*(int(cs.Plant)-1) + (int(cs.Status) - 1) + 1
}

// Transition is one arc of Rec(G).
type Transition struct {
	From  int
	Event alphabet.ID
	To    int
}

// Recognizer is Rec(G): immutable once built.
type Recognizer struct {
	plant   *automaton.Automaton
	monitor *monitor.Monitor

	ids     []int           // reachable compound-state ids, ascending
	byID    map[int]CompoundState
	initial []int

	bySource map[int][]Transition
}

// Plant returns the underlying plant automaton.
func (r *Recognizer) Plant() *automaton.Automaton { return r.plant }

// Monitor returns the fault monitor M used to build this recognizer.
func (r *Recognizer) Monitor() *monitor.Monitor { return r.monitor }

// States returns every reachable compound-state id, ascending.
func (r *Recognizer) States() []int {
	out := make([]int, len(r.ids))
	copy(out, r.ids)
	return out
}

// Initial returns the ids of {(q0, N) | q0 ∈ Q_0}.
func (r *Recognizer) Initial() []int {
	out := make([]int, len(r.initial))
	copy(out, r.initial)
	return out
}

// StateAt returns the compound state for id, or ok=false if id is not
// reachable.
func (r *Recognizer) StateAt(id int) (CompoundState, bool) {
	cs, ok := r.byID[id]
	return cs, ok
}

// IsFault reports whether id's monitor component is Faulty.
func (r *Recognizer) IsFault(id int) bool {
	cs, ok := r.byID[id]
	return ok && cs.Status == monitor.Faulty
}

// Transitions returns every outgoing transition from id, ascending by
// (event, target).
func (r *Recognizer) Transitions(id int) []Transition {
	ts := r.bySource[id]
	out := make([]Transition, len(ts))
	copy(out, ts)
	return out
}

// TransitionsOn returns every target reachable from id on event e.
func (r *Recognizer) TransitionsOn(id int, e alphabet.ID) []int {
	var out []int
	for _, t := range r.bySource[id] {
		if t.Event == e {
			out = append(out, t.To)
		}
	}
	return out
}

// Build performs the frontier exploration of spec.md §4.3: reachable
// compound states from {(q0, N) | q0 ∈ Q_0}, with |Q_R| ≤ 2|Q|.
func Build(plant *automaton.Automaton) *Recognizer {
	mon := monitor.New(plant.FaultEvents())

	r := &Recognizer{
		plant:    plant,
		monitor:  mon,
		byID:     make(map[int]CompoundState),
		bySource: make(map[int][]Transition),
	}

	var frontier []int
	seenTrans := make(map[Transition]bool)

	enqueue := func(cs CompoundState) int {
		id := CanonicalID(cs)
		if _, ok := r.byID[id]; !ok {
			r.byID[id] = cs
			frontier = append(frontier, id)
		}
		return id
	}

	for _, q0 := range plant.Initial() {
		id := enqueue(CompoundState{Plant: q0, Status: mon.Initial()})
		r.initial = append(r.initial, id)
	}
	sort.Ints(r.initial)

	for i := 0; i < len(frontier); i++ {
		id := frontier[i]
		cs := r.byID[id]
		for _, pt := range plant.Transitions(cs.Plant) {
			nextStatus := mon.Step(cs.Status, pt.Event)
			toCS := CompoundState{Plant: pt.To, Status: nextStatus}
			toID := enqueue(toCS)
			tr := Transition{From: id, Event: pt.Event, To: toID}
			if !seenTrans[tr] {
				seenTrans[tr] = true
				r.bySource[id] = append(r.bySource[id], tr)
			}
		}
	}

	r.ids = make([]int, 0, len(r.byID))
	for id := range r.byID {
		r.ids = append(r.ids, id)
	}
	sort.Ints(r.ids)

	for id, ts := range r.bySource {
		sort.Slice(ts, func(i, j int) bool {
			if ts[i].Event != ts[j].Event {
				return ts[i].Event < ts[j].Event
			}
			return ts[i].To < ts[j].To
		})
		r.bySource[id] = ts
	}

	return r
}
