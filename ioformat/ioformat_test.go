package ioformat

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/diagctl/automaton"
)

// scenarioBText is spec.md's Scenario B written in the §6 file format.
// The transitions block starts immediately after the fault-event
// line; a blank line anywhere inside the block terminates it, so no
// blank separator can appear before the first transition.
const scenarioBText = `2
a f
a
f
f
1 f 2
1 a 1
2 a 2

1
-
`

func TestParseScenarioB(t *testing.T) {
	a, err := Parse(strings.NewReader(scenarioBText))
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, []automaton.StateID{1}, a.Initial())
	assert.Empty(t, a.Marked())

	fID, ok := a.Alphabet().ID("f")
	require.True(t, ok)
	aID, ok := a.Alphabet().ID("a")
	require.True(t, ok)

	assert.True(t, a.IsObservable(aID))
	assert.True(t, a.IsUnobservable(fID))
	assert.True(t, a.IsFault(fID))

	want := []automaton.Transition{
		{From: 1, Event: aID, To: 1},
		{From: 1, Event: fID, To: 2},
	}
	got := a.Transitions(1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected transitions from state 1 (-want +got):\n%s", diff)
	}
}

func TestParseCommentsAndBlankHeaderLinesAreSkipped(t *testing.T) {
	text := `% two states, Scenario B
2

% alphabet
a f
a
f
f
1 f 2
% a fault observation would go here
1 a 1
2 a 2

1
-
`
	a, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 2, a.NumStates())
}

func TestParseDashMeansEmptySet(t *testing.T) {
	text := `1
a
a
-
-
1 a 1

1
-
`
	a, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Empty(t, a.UnobservableEvents())
	assert.Empty(t, a.FaultEvents())
}

func TestParseInitialStateMarkerTerminatesTransitionsBlock(t *testing.T) {
	text := `1
a
a
-
-
1 a 1
Initial state
1
-
`
	a, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []automaton.StateID{1}, a.Initial())
}

func TestParseRejectsMalformedTransitionLine(t *testing.T) {
	text := `1
a
a
-
-
1 a

1
-
`
	_, err := Parse(strings.NewReader(text))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition line")
}

func TestParseRejectsUnknownEvent(t *testing.T) {
	text := `1
a
a
-
-
1 z 1

1
-
`
	_, err := Parse(strings.NewReader(text))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event not in alphabet")
}

func TestParseRejectsOutOfRangeState(t *testing.T) {
	text := `1
a
a
-
-
1 a 5

1
-
`
	_, err := Parse(strings.NewReader(text))
	require.Error(t, err)
	var malformed *automaton.MalformedInputError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseRejectsEmptyInitialStateSet(t *testing.T) {
	text := `1
a
a
-
-
1 a 1

-
-
`
	_, err := Parse(strings.NewReader(text))
	require.Error(t, err)
}

func TestReadFileReportsCannotOpen(t *testing.T) {
	_, err := ReadFile("/nonexistent/does-not-exist.nfa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open file")
}
