package automaton

import (
	"fmt"
	"sort"

	"github.com/rfielding/diagctl/alphabet"
)

// Builder accumulates a plant description before Build validates and
// freezes it into an Automaton. Mirrors the teacher's
// AddState/AddTransition incremental-construction idiom, generalised
// with explicit validation. Duplicate transitions, initial states and
// marked states are accepted and silently deduplicated by Build.
type Builder struct {
	n        int
	alphabet *alphabet.Table

	observable   map[alphabet.ID]bool
	unobservable map[alphabet.ID]bool
	fault        map[alphabet.ID]bool
	classified   map[alphabet.ID]string // event -> which set first claimed it

	faultClassified map[alphabet.ID]bool

	transitions []Transition
	initial     []StateID
	marked      []StateID

	err error
}

// NewBuilder starts building an automaton with n states over the given
// alphabet table.
func NewBuilder(n int, tbl *alphabet.Table) *Builder {
	return &Builder{
		n:            n,
		alphabet:     tbl,
		observable:   make(map[alphabet.ID]bool),
		unobservable: make(map[alphabet.ID]bool),
		fault:        make(map[alphabet.ID]bool),
		classified:   make(map[alphabet.ID]string),

		faultClassified: make(map[alphabet.ID]bool),
	}
}

func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
	}
}

func (b *Builder) checkEvent(e alphabet.ID) bool {
	if !b.alphabet.Valid(e) {
		b.fail("event id %d not in alphabet", e)
		return false
	}
	return true
}

// MarkObservable classifies e as observable (Σ_o).
func (b *Builder) MarkObservable(e alphabet.ID) *Builder {
	return b.classify(e, "observable", b.observable)
}

// MarkUnobservable classifies e as unobservable (Σ_uo).
func (b *Builder) MarkUnobservable(e alphabet.ID) *Builder {
	return b.classify(e, "unobservable", b.unobservable)
}

// MarkFault classifies e as a fault event (Σ_f). Per spec.md's open
// question, fault classification does not require e to be
// unobservable; Σ_f ⊆ Σ_o is permitted, so fault membership is tracked
// independently of the observable/unobservable partition.
func (b *Builder) MarkFault(e alphabet.ID) *Builder {
	if !b.checkEvent(e) {
		return b
	}
	if b.faultClassified[e] {
		b.fail("event %d already classified as fault", e)
		return b
	}
	b.faultClassified[e] = true
	b.fault[e] = true
	return b
}

// classify is shared by MarkObservable/MarkUnobservable: those two
// sets partition Σ, so an event may claim only one of them.
func (b *Builder) classify(e alphabet.ID, name string, into map[alphabet.ID]bool) *Builder {
	if !b.checkEvent(e) {
		return b
	}
	if prior, ok := b.classified[e]; ok {
		b.fail("event %d already classified as %s, cannot also be %s", e, prior, name)
		return b
	}
	b.classified[e] = name
	into[e] = true
	return b
}

// AddTransition records (from, event, to) ∈ δ.
func (b *Builder) AddTransition(from StateID, event alphabet.ID, to StateID) *Builder {
	if !validStateRange(from, b.n) {
		b.fail("transition source state %d out of range 1..%d", from, b.n)
		return b
	}
	if !validStateRange(to, b.n) {
		b.fail("transition target state %d out of range 1..%d", to, b.n)
		return b
	}
	if !b.checkEvent(event) {
		return b
	}
	b.transitions = append(b.transitions, Transition{From: from, Event: event, To: to})
	return b
}

// AddInitial adds q to Q_0.
func (b *Builder) AddInitial(q StateID) *Builder {
	if !validStateRange(q, b.n) {
		b.fail("initial state %d out of range 1..%d", q, b.n)
		return b
	}
	b.initial = append(b.initial, q)
	return b
}

// AddMarked adds q to Q_m.
func (b *Builder) AddMarked(q StateID) *Builder {
	if !validStateRange(q, b.n) {
		b.fail("marked state %d out of range 1..%d", q, b.n)
		return b
	}
	b.marked = append(b.marked, q)
	return b
}

// Build validates and freezes the automaton. Validation failures are
// input errors (spec.md §7.1): out-of-range state reference, unknown
// event symbol, empty initial-state set, duplicate event
// classification.
func (b *Builder) Build() (*Automaton, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.initial) == 0 {
		return nil, &MalformedInputError{Reason: "initial state set Q_0 must be non-empty"}
	}

	a := &Automaton{
		n:             b.n,
		alphabet:      b.alphabet,
		observable:    b.observable,
		unobservable:  b.unobservable,
		fault:         b.fault,
		initial:       dedupSortedStates(b.initial),
		marked:        dedupSortedStates(b.marked),
		bySource:      make(map[StateID][]Transition),
		bySourceEvent: make(map[StateID]map[alphabet.ID][]StateID),
	}

	seen := make(map[Transition]bool)
	for _, t := range b.transitions {
		if seen[t] {
			continue
		}
		seen[t] = true
		a.bySource[t.From] = append(a.bySource[t.From], t)
		if a.bySourceEvent[t.From] == nil {
			a.bySourceEvent[t.From] = make(map[alphabet.ID][]StateID)
		}
		a.bySourceEvent[t.From][t.Event] = append(a.bySourceEvent[t.From][t.Event], t.To)
	}
	for q, ts := range a.bySource {
		sort.Slice(ts, func(i, j int) bool {
			if ts[i].Event != ts[j].Event {
				return ts[i].Event < ts[j].Event
			}
			return ts[i].To < ts[j].To
		})
		a.bySource[q] = ts
	}
	for _, byEvent := range a.bySourceEvent {
		for e, targets := range byEvent {
			sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
			byEvent[e] = targets
		}
	}

	return a, nil
}

func dedupSortedStates(states []StateID) []StateID {
	seen := make(map[StateID]bool, len(states))
	out := make([]StateID, 0, len(states))
	for _, s := range states {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
