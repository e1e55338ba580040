// Package observer builds C4 (the subset-construction observer of
// Rec(G)) and C5 (the N/F/U diagnosis labeller).
//
// Modelled on the teacher's frontier/worklist construction idiom,
// extended with the interned canonical-id table a subset construction
// needs: macro-states are identified by their canonical sorted member
// tuple, not by insertion order, so equal sets always collapse to one
// id regardless of which path reached them first.
package observer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rfielding/diagctl"
	"github.com/rfielding/diagctl/alphabet"
	"github.com/rfielding/diagctl/recognizer"
)

// Label is a macro-state's diagnosis label.
type Label int

const (
	LabelN Label = iota + 1
	LabelF
	LabelU
)

func (l Label) String() string {
	switch l {
	case LabelN:
		return "N"
	case LabelF:
		return "F"
	case LabelU:
		return "U"
	default:
		return "?"
	}
}

// MacroState is a node of the observer: a non-empty set of recognizer
// state ids, stored as a canonical ascending slice so two macro-states
// with the same membership always compare equal.
type MacroState struct {
	ID      int
	Members []int
}

// Transition is one arc of the observer, labelled by an observable
// event.
type Transition struct {
	From  int
	Event alphabet.ID
	To    int
}

// Observer is the deterministic automaton Obs(Rec(G)).
type Observer struct {
	rec *recognizer.Recognizer

	states  []MacroState // index i holds the macro-state with ID i
	byKey   map[string]int
	labels  []Label // labels[i] is the label of states[i]
	initial int

	bySource map[int][]Transition
}

// Recognizer returns the underlying recognizer this observer was built
// from.
func (o *Observer) Recognizer() *recognizer.Recognizer { return o.rec }

// States returns every macro-state, indexed by id.
func (o *Observer) States() []MacroState {
	out := make([]MacroState, len(o.states))
	copy(out, o.states)
	return out
}

// MacroStateAt returns the macro-state with the given id.
func (o *Observer) MacroStateAt(id int) MacroState { return o.states[id] }

// Initial returns Y_0's id.
func (o *Observer) Initial() int { return o.initial }

// Label returns the diagnosis label of macro-state id.
func (o *Observer) Label(id int) Label { return o.labels[id] }

// Transitions returns every outgoing transition from macro-state id.
func (o *Observer) Transitions(id int) []Transition {
	ts := o.bySource[id]
	out := make([]Transition, len(ts))
	copy(out, ts)
	return out
}

// UnobservableReach computes UR(y): the smallest set containing y and
// closed under unobservable transitions in the recognizer. Always
// includes y itself (zero-length closure).
func UnobservableReach(rec *recognizer.Recognizer, y int) []int {
	reached := map[int]bool{y: true}
	frontier := []int{y}
	plant := rec.Plant()
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, tr := range rec.Transitions(cur) {
			if !plant.IsUnobservable(tr.Event) {
				continue
			}
			if !reached[tr.To] {
				reached[tr.To] = true
				frontier = append(frontier, tr.To)
			}
		}
	}
	return sortedSetKeys(reached)
}

// Beta computes β(Z) = ⋃_{y∈Z} UR(y).
func Beta(rec *recognizer.Recognizer, members []int) []int {
	union := make(map[int]bool, len(members))
	for _, y := range members {
		for _, r := range UnobservableReach(rec, y) {
			union[r] = true
		}
	}
	return sortedSetKeys(union)
}

// Alpha computes α(Y, e) = {y' | ∃y∈Y. y —e→ y' in Rec(G)}, for an
// observable event e.
func Alpha(rec *recognizer.Recognizer, members []int, e alphabet.ID) []int {
	union := make(map[int]bool)
	for _, y := range members {
		for _, to := range rec.TransitionsOn(y, e) {
			union[to] = true
		}
	}
	return sortedSetKeys(union)
}

// LabelOf computes label(Y) by scanning members once: N if every
// member is Normal, F if every member is Faulty, U otherwise. Depends
// only on the monitor component of each member, per spec.md §8.
func LabelOf(rec *recognizer.Recognizer, members []int) Label {
	anyN, anyF := false, false
	for _, y := range members {
		if rec.IsFault(y) {
			anyF = true
		} else {
			anyN = true
		}
	}
	switch {
	case anyN && anyF:
		return LabelU
	case anyF:
		return LabelF
	default:
		return LabelN
	}
}

// Build runs the subset construction of spec.md §4.4.
func Build(rec *recognizer.Recognizer) *Observer {
	o := &Observer{
		rec:      rec,
		byKey:    make(map[string]int),
		bySource: make(map[int][]Transition),
	}

	intern := func(members []int) int {
		key := canonicalKey(members)
		if id, ok := o.byKey[key]; ok {
			return id
		}
		id := len(o.states)
		o.states = append(o.states, MacroState{ID: id, Members: members})
		o.labels = append(o.labels, LabelOf(rec, members))
		o.byKey[key] = id
		return id
	}

	y0 := Beta(rec, rec.Initial())
	o.initial = intern(y0)

	observableEvents := rec.Plant().ObservableEvents()

	for i := 0; i < len(o.states); i++ {
		from := o.states[i]
		for _, e := range observableEvents {
			a := Alpha(rec, from.Members, e)
			if len(a) == 0 {
				continue
			}
			b := Beta(rec, a)
			to := intern(b)
			o.bySource[from.ID] = append(o.bySource[from.ID], Transition{From: from.ID, Event: e, To: to})
		}
	}

	if len(o.byKey) != len(o.states) {
		diagctl.Violate("duplicate macro-state id", "canonical-key table and state slice disagree on macro-state count")
	}

	return o
}

func sortedSetKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func canonicalKey(members []int) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(m))
	}
	return b.String()
}
