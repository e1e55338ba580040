package diagnosis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/diagctl/alphabet"
	"github.com/rfielding/diagctl/automaton"
)

func buildScenarioB(t *testing.T) *automaton.Automaton {
	t.Helper()
	tbl, err := alphabet.New([]string{"a", "f"})
	require.NoError(t, err)
	a, err := automaton.NewBuilder(2, tbl).
		MarkObservable(1).MarkUnobservable(2).MarkFault(2).
		AddTransition(1, 2, 2).
		AddTransition(1, 1, 1).
		AddTransition(2, 1, 2).
		AddInitial(1).
		Build()
	require.NoError(t, err)
	return a
}

func TestAnalyzeScenarioBProducesWitness(t *testing.T) {
	plant := buildScenarioB(t)
	report := Analyze(plant, Options{Full: false})

	require.False(t, report.Diagnosable, "expected NOT DIAGNOSABLE")
	require.NotNil(t, report.Witness, "expected a witness for a NOT DIAGNOSABLE verdict")

	// Scenario B's observer collapses to a single macro-state (Y0==Y1,
	// both {(1,N),(2,F)}), so the witness is the macro-state's own 'a'
	// self-loop.
	want := &Witness{
		MacroStates: []int{0},
		Events:      []string{"a"},
		Explanation: "this event sequence repeats indefinitely and stays ambiguous on every repetition: " +
			"the plant can run it both with and without the fault having occurred, and no observation ever tells them apart",
	}
	if diff := cmp.Diff(want, report.Witness); diff != "" {
		t.Errorf("unexpected witness (-want +got):\n%s", diff)
	}
}

func TestAnalyzeDiagnosableHasNoWitness(t *testing.T) {
	tbl, err := alphabet.New([]string{"a"})
	require.NoError(t, err)
	plant, err := automaton.NewBuilder(1, tbl).
		MarkObservable(1).
		AddTransition(1, 1, 1).
		AddInitial(1).
		Build()
	require.NoError(t, err)

	report := Analyze(plant, Options{Full: true})
	assert.True(t, report.Diagnosable)
	assert.Nil(t, report.Witness)
}

func TestBruteForceAgreesWithCycleDecision(t *testing.T) {
	plant := buildScenarioB(t)
	report := Analyze(plant, Options{Full: false})

	bf := BruteForceCheck(report.Recognizer, report.Observer)
	assert.Equal(t, report.Diagnosable, bf.Diagnosable, "expected brute-force cross-check to agree")
	if !bf.Diagnosable {
		assert.NotEmpty(t, bf.Word, "expected a non-empty witness word from the brute-force check")
	}
}
