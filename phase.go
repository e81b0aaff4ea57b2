package md5step

import (
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

// Phase names the discrete point of the computation a State is in. The phase of the most recent
// state decides which transition is applied next.
type Phase uint8

const (
	Uninitialized Phase = iota
	Initialized
	ReadingData
	ReadData
	StartingPadding
	AddingPaddingBytes
	AddedPaddingBytes
	AddingLength
	AddedLength
	FinishedPadding
	StartingCompression
	StartingRound
	StartingRoundStep
	FinishedRoundStep
	FinishedRound
	FinishingCompression
	FinishedCompression
	Finished

	phaseCount = int(Finished) + 1
)

var phaseNames = [phaseCount]string{
	"Uninitialized",
	"Initialized",
	"ReadingData",
	"ReadData",
	"StartingPadding",
	"AddingPaddingBytes",
	"AddedPaddingBytes",
	"AddingLength",
	"AddedLength",
	"FinishedPadding",
	"StartingCompression",
	"StartingRound",
	"StartingRoundStep",
	"FinishedRoundStep",
	"FinishedRound",
	"FinishingCompression",
	"FinishedCompression",
	"Finished",
}

// Phases returns every phase in the order the algorithm can first reach them.
func Phases() []Phase {
	p := make([]Phase, phaseCount)
	for i := range p {
		p[i] = Phase(i)
	}
	return p
}

func (p Phase) String() string {
	if int(p) < phaseCount {
		return phaseNames[p]
	}
	return "Phase(" + strconv.Itoa(int(p)) + ")"
}

// Valid reports whether p is one of the declared phases.
func (p Phase) Valid() bool { return int(p) < phaseCount }

// ParsePhase accepts a phase name, ignoring case, dashes and underscores, so "finished-round",
// "FINISHED_ROUND" and "FinishedRound" are all the same phase.
func ParsePhase(s string) (Phase, error) {
	want := normalizePhase(s)
	for i, name := range phaseNames {
		if normalizePhase(name) == want {
			return Phase(i), nil
		}
	}
	return 0, errors.Errorf("md5step: unknown phase %q", s)
}

// ParsePhases parses a comma-separated list of phase names; empty elements are ignored.
func ParsePhases(s string) ([]Phase, error) {
	var out []Phase
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		p, err := ParsePhase(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func normalizePhase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.Errorf("md5step: invalid phase %d", uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	v, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
