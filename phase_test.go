package md5step

import (
	"gotest.tools/v3/assert"
	"testing"
)

func TestParsePhase(t *testing.T) {
	for _, s := range []string{"FinishedRound", "finished-round", "FINISHED_ROUND", " finished round "} {
		p, err := ParsePhase(s)
		assert.NilError(t, err, s)
		assert.Equal(t, p, FinishedRound)
	}
	_, err := ParsePhase("Halfway")
	assert.ErrorContains(t, err, `unknown phase "Halfway"`)

	ps, err := ParsePhases("starting-round-step, finished-round-step,,")
	assert.NilError(t, err)
	assert.DeepEqual(t, ps, []Phase{StartingRoundStep, FinishedRoundStep})
}

func TestPhaseText(t *testing.T) {
	for _, p := range Phases() {
		b, err := p.MarshalText()
		assert.NilError(t, err)
		var back Phase
		assert.NilError(t, back.UnmarshalText(b))
		assert.Equal(t, back, p)
	}
	assert.Equal(t, Phase(99).String(), "Phase(99)")
	_, err := Phase(99).MarshalText()
	assert.ErrorContains(t, err, "invalid phase")
}

func TestEveryLivePhaseHasTransition(t *testing.T) {
	for _, p := range Phases() {
		live := p != Uninitialized && p != Finished
		assert.Equal(t, transitions[p] != nil, live, p.String())
	}
}
