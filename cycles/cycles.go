// Package cycles implements C6, the indeterminate-cycle decision
// procedure: simple-cycle enumeration over the observer's U-subgraph,
// α/β refinement of each cycle, and the diagnosability verdict.
//
// Johnson's algorithm has no direct analog anywhere in the retrieval
// pack this repo is grounded on; FindSimpleCycles below reproduces its
// semantics (every simple directed cycle, each reported once up to
// rotation, canonicalised by minimum vertex id first, in deterministic
// order) with a plain depth-first search restricted to vertices no
// smaller than the current starting vertex, following the teacher's
// recursive adjacency-map traversal idiom rather than Johnson's
// strongly-connected-component/blocking-set speedup.
package cycles

import (
	"sort"

	"github.com/rfielding/diagctl"
	"github.com/rfielding/diagctl/alphabet"
	"github.com/rfielding/diagctl/observer"
)

// Cycle is one simple directed cycle of the observer's U-subgraph:
// MacroStates[0..k-1] are distinct macro-state ids, Events[i] is the
// event taken from MacroStates[i] to MacroStates[(i+1)%k].
// MacroStates[0] is always the smallest id on the cycle.
type Cycle struct {
	MacroStates []int
	Events      []alphabet.ID
}

type uEdge struct {
	Event alphabet.ID
	To    int
}

// uSubgraph restricts the observer to U-labelled macro-states and
// transitions whose source and target are both U, per spec.md §4.6
// Step 1.
func uSubgraph(obs *observer.Observer) map[int][]uEdge {
	adj := make(map[int][]uEdge)
	for _, ms := range obs.States() {
		if obs.Label(ms.ID) != observer.LabelU {
			continue
		}
		adj[ms.ID] = nil
		for _, tr := range obs.Transitions(ms.ID) {
			if obs.Label(tr.To) != observer.LabelU {
				continue
			}
			adj[ms.ID] = append(adj[ms.ID], uEdge{Event: tr.Event, To: tr.To})
		}
	}
	for id, edges := range adj {
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].To != edges[j].To {
				return edges[i].To < edges[j].To
			}
			return edges[i].Event < edges[j].Event
		})
		adj[id] = edges
	}
	return adj
}

// FindSimpleCycles enumerates every simple directed cycle in the
// observer's U-subgraph (spec.md §4.6 Step 2). Returns an empty slice
// (not an error) when the U-subgraph is empty — spec.md §4.6 "Empty
// U-subgraph ⇒ diagnosable".
func FindSimpleCycles(obs *observer.Observer) []Cycle {
	var cycles []Cycle
	VisitSimpleCycles(obs, func(cyc Cycle) bool {
		cycles = append(cycles, cyc)
		return true
	})
	return cycles
}

// VisitSimpleCycles enumerates the observer's U-subgraph cycles one at
// a time, calling visit as each is discovered. visit returning false
// stops the search immediately, leaving any remaining cycles
// unenumerated — spec.md §5's boolean-only fast path needs exactly
// this, since enumeration is itself potentially exponential and must
// not run to completion once a single indeterminate cycle has already
// settled the verdict.
func VisitSimpleCycles(obs *observer.Observer, visit func(Cycle) bool) {
	adj := uSubgraph(obs)
	if len(adj) == 0 {
		return
	}

	vertices := make([]int, 0, len(adj))
	for v := range adj {
		vertices = append(vertices, v)
	}
	sort.Ints(vertices)

	stopped := false

	for _, start := range vertices {
		if stopped {
			return
		}
		var path []int
		var events []alphabet.ID
		onPath := make(map[int]bool)

		var dfs func(cur int)
		dfs = func(cur int) {
			if stopped {
				return
			}
			path = append(path, cur)
			onPath[cur] = true
			for _, e := range adj[cur] {
				if stopped {
					break
				}
				if e.To == start {
					cyc := Cycle{
						MacroStates: append([]int(nil), path...),
						Events:      append(append([]alphabet.ID(nil), events...), e.Event),
					}
					if len(cyc.MacroStates) != len(cyc.Events) {
						diagctl.Violate("cycle event count matches edge count", "enumerated cycle has a different number of macro-states than events")
					}
					if !visit(cyc) {
						stopped = true
					}
					continue
				}
				if e.To < start || onPath[e.To] {
					continue
				}
				events = append(events, e.Event)
				dfs(e.To)
				events = events[:len(events)-1]
			}
			path = path[:len(path)-1]
			onPath[cur] = false
		}
		dfs(start)
	}
}
