package md5step

import (
	"encoding/binary"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

// State is one snapshot of the computation. States are plain values: every array is held inline,
// so a copy never aliases the history entry it was taken from.
type State struct {
	Phase Phase

	/* Running hash value and the compression scratch registers. */
	H1, H2, H3, H4 uint32
	A, B, C, D     uint32

	RoundIndex     int /* 0..3 */
	RoundStepIndex int /* 0..15 */

	/* One block plus the second block padding may append; DataOffset selects the active window. */
	Data       [bufferSize]byte
	DataLength int
	DataOffset int

	/* Little-endian words of the active window, refreshed when a compression starts. */
	DataAsIntegers [stepsInRound]uint32

	BytesHashed   uint64 /* bytes consumed by completed compressions */
	IsPaddingDone bool
	LengthInBit   uint64 /* message length in bits, captured when padding starts */
}

// Clone returns a full, independent copy of s.
func (s *State) Clone() State {
	return State{
		Phase:          s.Phase,
		H1:             s.H1,
		H2:             s.H2,
		H3:             s.H3,
		H4:             s.H4,
		A:              s.A,
		B:              s.B,
		C:              s.C,
		D:              s.D,
		RoundIndex:     s.RoundIndex,
		RoundStepIndex: s.RoundStepIndex,
		Data:           s.Data,
		DataLength:     s.DataLength,
		DataOffset:     s.DataOffset,
		DataAsIntegers: s.DataAsIntegers,
		BytesHashed:    s.BytesHashed,
		IsPaddingDone:  s.IsPaddingDone,
		LengthInBit:    s.LengthInBit,
	}
}

// Round is the 1-based round number.
func (s *State) Round() int { return s.RoundIndex + 1 }

// RoundStep is the 1-based step number inside the round.
func (s *State) RoundStep() int { return s.RoundStepIndex + 1 }

// AbsoluteStepIndex is the position of the current step inside the compression, 0..63.
func (s *State) AbsoluteStepIndex() int { return s.RoundIndex*stepsInRound + s.RoundStepIndex }

func (s *State) ShiftConstant() uint8 { return shiftTable[s.AbsoluteStepIndex()] }

func (s *State) AdditionConstant() uint32 { return additionTable[s.AbsoluteStepIndex()] }

// MessagePartIndex is the message word consumed by the current step.
func (s *State) MessagePartIndex() int { return WordIndex(s.RoundIndex, s.AbsoluteStepIndex()) }

func (s *State) IsLastStepInRound() bool { return s.RoundStep() == stepsInRound }

func (s *State) IsLastRound() bool { return s.Round() == roundCount }

// Window returns the 64-byte block the next (or running) compression works on.
func (s *State) Window() []byte { return s.Data[s.DataOffset : s.DataOffset+BlockSize] }

// Digest serializes H1..H4 little-endian. It is the MD5 digest only once Phase is Finished.
func (s *State) Digest() [Size]byte {
	var d [Size]byte
	binary.LittleEndian.PutUint32(d[0:], s.H1)
	binary.LittleEndian.PutUint32(d[4:], s.H2)
	binary.LittleEndian.PutUint32(d[8:], s.H3)
	binary.LittleEndian.PutUint32(d[12:], s.H4)
	return d
}

const (
	magic         = "md5s\x01"
	marshaledSize = len(magic) + 1 + 8*4 + 2 + bufferSize + 2 + stepsInRound*4 + 8 + 1 + 8
)

func (s *State) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, marshaledSize))
}

// AppendBinary appends the snapshot encoding of s to b.
func (s *State) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, magic...)
	b = append(b, byte(s.Phase))
	for _, v := range [8]uint32{s.H1, s.H2, s.H3, s.H4, s.A, s.B, s.C, s.D} {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = append(b, byte(s.RoundIndex), byte(s.RoundStepIndex))
	b = append(b, s.Data[:]...)
	b = append(b, byte(s.DataLength), byte(s.DataOffset))
	for _, v := range s.DataAsIntegers {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = binary.BigEndian.AppendUint64(b, s.BytesHashed)
	if s.IsPaddingDone {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	b = binary.BigEndian.AppendUint64(b, s.LengthInBit)
	return b, nil
}

func (s *State) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return errors.New("md5step: invalid state identifier")
	}
	if len(b) != marshaledSize {
		return errors.New("md5step: invalid state size")
	}
	b = b[len(magic):]

	var v State
	v.Phase, b = Phase(b[0]), b[1:]
	if !v.Phase.Valid() {
		return errors.Errorf("md5step: invalid phase %d", uint8(v.Phase))
	}
	regs := [8]*uint32{&v.H1, &v.H2, &v.H3, &v.H4, &v.A, &v.B, &v.C, &v.D}
	for _, r := range regs {
		*r, b = binary.BigEndian.Uint32(b), b[4:]
	}
	v.RoundIndex, v.RoundStepIndex, b = int(b[0]), int(b[1]), b[2:]
	b = b[copy(v.Data[:], b):]
	v.DataLength, v.DataOffset, b = int(b[0]), int(b[1]), b[2:]
	for i := range v.DataAsIntegers {
		v.DataAsIntegers[i], b = binary.BigEndian.Uint32(b), b[4:]
	}
	v.BytesHashed, b = binary.BigEndian.Uint64(b), b[8:]
	v.IsPaddingDone, b = b[0] == 1, b[1:]
	v.LengthInBit = binary.BigEndian.Uint64(b)

	switch {
	case v.RoundIndex >= roundCount || v.RoundStepIndex >= stepsInRound:
		return errors.New("md5step: round position out of range")
	case v.DataLength > bufferSize || (v.DataOffset != 0 && v.DataOffset != BlockSize):
		return errors.New("md5step: buffer position out of range")
	}
	*s = v
	return nil
}

// Fingerprint is a 64-bit xxh3 hash of the snapshot encoding; equal states have equal
// fingerprints.
func (s *State) Fingerprint() uint64 {
	var buf [marshaledSize]byte
	b, _ := s.AppendBinary(buf[:0])
	return xxh3.Hash(b)
}
