package main

import (
	"encoding/hex"
	. "fmt"
	md5step "github.com/CrypToolProject/CrypTool-2-sub034"
	"io"
	"strconv"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

// tracer prints the state a Stepper stopped on; it is subscribed to the Stepper as an observer.
type tracer struct {
	st    *md5step.Stepper
	w     io.Writer
	total string /* final state index, or "?" when the message size is unknown */
	last  int
}

func newTracer(st *md5step.Stepper, w io.Writer, size int64) *tracer {
	t := &tracer{st: st, w: w, total: "?", last: -1}
	if size >= 0 {
		t.total = strconv.FormatUint(md5step.StepsFor(uint64(size))+1, 10)
	}
	return t
}

func (t *tracer) print() {
	if i := t.st.CurrentIndex(); i != t.last {
		t.last = i
		s := t.st.Current()
		Fprint(t.w, traceLine(i, t.total, &s), n)
	}
}

func traceLine(i int, total string, s *md5step.State) string {
	head := Sprintf("%s[%*d/%s]%s %-20s", purp, len(total), i, total, zero, s.Phase)
	regs := Sprintf("A=%08x B=%08x C=%08x D=%08x", s.A, s.B, s.C, s.D)
	var detail string

	switch s.Phase {
	case md5step.ReadData:
		detail = Sprintf("read %d bytes", s.DataLength)
	case md5step.AddedPaddingBytes:
		detail = Sprintf("message is %d bits, buffer padded to %d bytes", s.LengthInBit, s.DataLength)
	case md5step.AddedLength, md5step.FinishedPadding:
		detail = Sprintf("%d bytes to compress", s.DataLength)
	case md5step.StartingCompression:
		detail = Sprintf("block at offset %d", s.BytesHashed)
	case md5step.StartingRound, md5step.FinishedRound:
		detail = Sprintf("round %d  %s", s.Round(), regs)
	case md5step.StartingRoundStep, md5step.FinishedRoundStep:
		detail = Sprintf("round %d step %2d  X[%2d]=%08x K=%08x S=%2d  %s", s.Round(), s.RoundStep(),
			s.MessagePartIndex(), s.DataAsIntegers[s.MessagePartIndex()], s.AdditionConstant(),
			s.ShiftConstant(), regs)
	case md5step.FinishingCompression, md5step.FinishedCompression, md5step.Initialized:
		detail = Sprintf("H=%08x %08x %08x %08x", s.H1, s.H2, s.H3, s.H4)
	case md5step.Finished:
		d := s.Digest()
		detail = yell + hex.EncodeToString(d[:]) + zero
	}
	return Sprintf("%s %s  %s#%016x%s", head, detail, und, s.Fingerprint(), zero)
}
