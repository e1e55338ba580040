package diagnosis

import (
	"github.com/rfielding/diagctl/alphabet"
	"github.com/rfielding/diagctl/observer"
	"github.com/rfielding/diagctl/recognizer"
)

// BruteForceResult is the outcome of the independent cross-check
// described in SPEC_FULL.md's "brute-force cross-check mode": a second
// decision procedure, grounded directly on spec.md §8's
// "Property-based generator" reference check — enumerate observable
// words up to length 2·|Rec(G)| and look for a fault-ambiguous word
// that repeats a macro-state.
type BruteForceResult struct {
	Diagnosable bool
	// Word is the ambiguous, repeating observable word found, or nil
	// if none was found within the length bound.
	Word []string
}

// BruteForceCheck walks the observer with a depth-bounded, path-local
// depth-first search (bound 2·|Rec(G)|) looking for any word that
// revisits a U-labelled macro-state it has already passed through on
// the same path — since the observer is deterministic, such a repeat
// means the suffix between the two visits can be replayed forever
// while staying ambiguous, which is exactly spec.md §8's reference
// oracle for "not diagnosable". This intentionally uses a different
// algorithm family (bounded path search rather than exhaustive simple-
// cycle enumeration over the U-subgraph) so it is a genuine
// cross-check, not a restatement of cycles.Decide.
//
// The search only continues into U-labelled successors, mirroring
// cycles.uSubgraph's restriction to the U-subgraph: a detour through a
// pure-N or pure-F macro-state leaves the fault status momentarily
// certain, so revisiting a U ancestor after such a detour is not an
// indeterminate cycle and must not be reported as one. Every
// macro-state the observer built is reachable from the initial
// macro-state by construction, so it suffices to probe from every
// U-labelled macro-state in turn rather than only from the initial one.
func BruteForceCheck(rec *recognizer.Recognizer, obs *observer.Observer) BruteForceResult {
	bound := 2 * len(rec.States())

	onPath := make(map[int]bool)
	var word []alphabet.ID
	var witness []alphabet.ID

	var dfs func(cur int, depth int) bool
	dfs = func(cur int, depth int) bool {
		if depth >= bound {
			return false
		}
		onPath[cur] = true
		defer delete(onPath, cur)

		for _, tr := range obs.Transitions(cur) {
			if obs.Label(tr.To) != observer.LabelU {
				continue
			}
			word = append(word, tr.Event)
			if onPath[tr.To] {
				witness = append([]alphabet.ID(nil), word...)
				word = word[:len(word)-1]
				return true
			}
			if dfs(tr.To, depth+1) {
				word = word[:len(word)-1]
				return true
			}
			word = word[:len(word)-1]
		}
		return false
	}

	for _, ms := range obs.States() {
		if obs.Label(ms.ID) != observer.LabelU {
			continue
		}
		word = word[:0]
		if dfs(ms.ID, 0) {
			return BruteForceResult{Diagnosable: false, Word: renderWord(obs, witness)}
		}
	}
	return BruteForceResult{Diagnosable: true}
}

func renderWord(obs *observer.Observer, word []alphabet.ID) []string {
	tbl := obs.Recognizer().Plant().Alphabet()
	out := make([]string, len(word))
	for i, e := range word {
		sym, ok := tbl.Symbol(e)
		if !ok {
			sym = "?"
		}
		out[i] = sym
	}
	return out
}
