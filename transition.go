package md5step

import (
	"encoding/binary"
	"io"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.
// The transition table: for every phase, the function that turns a copy of a state in that phase
// into its successor. Transitions only ever touch the new state; the previous one is read-only.

type transition func(f feeder, prev *State, next *State) error

// feeder supplies message bytes to the ReadingData transition and learns when the computation is
// finished. read has io.ReadFull semantics: a short read ends the message.
type feeder interface {
	read(p []byte) (int, error)
	finish()
}

var transitions [phaseCount]transition

func init() {
	transitions = [phaseCount]transition{
		Initialized:          to(ReadingData),
		ReadingData:          readData,
		ReadData:             afterRead,
		StartingPadding:      to(AddingPaddingBytes),
		AddingPaddingBytes:   addPaddingBytes,
		AddedPaddingBytes:    to(AddingLength),
		AddingLength:         addLength,
		AddedLength:          to(FinishedPadding),
		FinishedPadding:      to(StartingCompression),
		StartingCompression:  startCompression,
		StartingRound:        startRound,
		StartingRoundStep:    roundStep,
		FinishedRoundStep:    finishRoundStep,
		FinishedRound:        finishRound,
		FinishingCompression: finishCompression,
		FinishedCompression:  afterCompression,
		/* Uninitialized and Finished have no successor. */
	}
}

func to(p Phase) transition {
	return func(_ feeder, _, next *State) error {
		next.Phase = p
		return nil
	}
}

func readData(f feeder, prev, next *State) error {
	next.Data = [bufferSize]byte{}
	n, err := f.read(next.Data[:BlockSize])
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
		/* A short read marks the end of the message. */
	default:
		return &ReadError{Offset: prev.BytesHashed + uint64(n), Err: err}
	}
	next.DataLength, next.DataOffset = n, 0
	next.Phase = ReadData
	return nil
}

func afterRead(_ feeder, prev, next *State) error {
	if prev.DataLength < BlockSize {
		next.Phase = StartingPadding
	} else {
		next.Phase = StartingCompression
	}
	return nil
}

func addPaddingBytes(_ feeder, _, next *State) error {
	next.LengthInBit = (next.BytesHashed + uint64(next.DataLength)) << 3
	next.Data[next.DataLength] = 0x80
	next.DataLength++
	for next.DataLength%BlockSize != lengthOffset {
		next.Data[next.DataLength] = 0
		next.DataLength++
	}
	next.Phase = AddedPaddingBytes
	return nil
}

func addLength(_ feeder, _, next *State) error {
	binary.LittleEndian.PutUint64(next.Data[next.DataLength:], next.LengthInBit)
	next.IsPaddingDone = true
	next.DataLength += 8
	next.Phase = AddedLength
	return nil
}

func startCompression(_ feeder, _, next *State) error {
	w := next.Window()
	for i := range next.DataAsIntegers {
		next.DataAsIntegers[i] = binary.LittleEndian.Uint32(w[i<<2:])
	}
	next.RoundIndex = 0
	next.A, next.B, next.C, next.D = next.H1, next.H2, next.H3, next.H4
	next.Phase = StartingRound
	return nil
}

func startRound(_ feeder, _, next *State) error {
	next.RoundStepIndex = 0
	next.Phase = StartingRoundStep
	return nil
}

func roundStep(_ feeder, _, next *State) error {
	compressStep(next)
	next.Phase = FinishedRoundStep
	return nil
}

func finishRoundStep(_ feeder, prev, next *State) error {
	if prev.IsLastStepInRound() {
		next.Phase = FinishedRound
	} else {
		next.RoundStepIndex++
		next.Phase = StartingRoundStep
	}
	return nil
}

func finishRound(_ feeder, prev, next *State) error {
	if prev.IsLastRound() {
		next.Phase = FinishingCompression
	} else {
		next.RoundIndex++
		next.Phase = StartingRound
	}
	return nil
}

func finishCompression(_ feeder, _, next *State) error {
	next.H1 += next.A
	next.H2 += next.B
	next.H3 += next.C
	next.H4 += next.D
	next.BytesHashed += BlockSize
	next.Phase = FinishedCompression
	return nil
}

func afterCompression(f feeder, prev, next *State) error {
	switch {
	case prev.DataLength-prev.DataOffset > BlockSize:
		/* Padding spilled into a second block that still has to be compressed. */
		next.DataOffset += BlockSize
		next.Phase = StartingCompression
	case prev.IsPaddingDone:
		f.finish()
		next.Phase = Finished
	default:
		next.Phase = ReadingData
	}
	return nil
}

// apply advances s in place by one transition.
func apply(f feeder, s *State) error {
	fn := transitions[s.Phase]
	if fn == nil {
		return nil
	}
	prev := s.Clone()
	return fn(f, &prev, s)
}

// StepsFor returns the number of forward transitions a Stepper takes from Initialized to Finished
// for an n-byte message.
func StepsFor(n uint64) uint64 {
	const (
		compression = 1 + roundCount*(1+2*stepsInRound+1) + 2 /* StartingCompression..FinishedCompression */
		fullBlock   = 2 + compression                          /* ReadingData, ReadData */
		padding     = 8                                        /* ReadingData..FinishedPadding */
	)
	blocks := uint64(1)
	if n%BlockSize >= lengthOffset {
		blocks = 2
	}
	return n/BlockSize*fullBlock + padding + blocks*compression + 1
}
