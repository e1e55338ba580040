package cycles

import (
	"strconv"
	"strings"

	"github.com/rfielding/diagctl/observer"
	"github.com/rfielding/diagctl/recognizer"
)

// RefinedSet is one α or β set recorded during refinement, with its
// own N/F/U label.
type RefinedSet struct {
	Members []int
	Label   observer.Label
}

// RefineStep is one unrolled event of a cycle's refinement: α_j then
// β_j = S_j.
type RefineStep struct {
	Alpha RefinedSet
	Beta  RefinedSet
}

// Report is the per-cycle output of spec.md §4.6's "Output": the
// cycle itself, its entry set S_0, the ordered α/β trace, and the
// determinate/indeterminate verdict.
type Report struct {
	Cycle         Cycle
	Entry         RefinedSet
	Steps         []RefineStep
	Indeterminate bool
}

// RefineCycle unrolls cyc's event word over the recognizer (not the
// observer), starting from S_0 = members(entry macro-state), per
// spec.md §4.6 Step 3.
//
// Termination follows spec.md §9's correction, not the naive
// "S_j == S_0" shortcut: the refinement keeps unrolling the event word
// cyclically until a (set, phase) pair it has already produced repeats.
// Because the plant has finitely many subsets of Q_R and a fixed-length
// cyclic driving word, this is guaranteed to terminate, and detecting
// an exact repeat of (S_j, j mod k) is a stronger, more precise
// criterion than "two full laps without a new β-set": the next step is
// a deterministic function of (S_j, phase), so any repeat already
// proves the tail is periodic.
func RefineCycle(rec *recognizer.Recognizer, obs *observer.Observer, cyc Cycle) Report {
	k := len(cyc.Events)
	entryMembers := obs.MacroStateAt(cyc.MacroStates[0]).Members

	entry := RefinedSet{Members: entryMembers, Label: observer.LabelOf(rec, entryMembers)}

	seen := map[string]bool{refinementKey(entryMembers, 0): true}

	current := entryMembers
	var steps []RefineStep

	maxSteps := (len(rec.States()) + 2) * k
	if maxSteps < k {
		maxSteps = k
	}

	for j := 0; j < maxSteps; j++ {
		e := cyc.Events[j%k]
		a := observer.Alpha(rec, current, e)
		b := observer.Beta(rec, a)
		steps = append(steps, RefineStep{
			Alpha: RefinedSet{Members: a, Label: observer.LabelOf(rec, a)},
			Beta:  RefinedSet{Members: b, Label: observer.LabelOf(rec, b)},
		})
		current = b

		phase := (j + 1) % k
		key := refinementKey(current, phase)
		if seen[key] {
			break
		}
		seen[key] = true
	}

	indeterminate := entry.Label == observer.LabelU
	for _, st := range steps {
		if st.Alpha.Label != observer.LabelU || st.Beta.Label != observer.LabelU {
			indeterminate = false
			break
		}
	}

	return Report{Cycle: cyc, Entry: entry, Steps: steps, Indeterminate: indeterminate}
}

func refinementKey(members []int, phase int) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(m))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(phase))
	return b.String()
}

func equalSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
