package md5step

import (
	"github.com/pkg/errors"
	"hash"
	"io"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.
// This file contains a Go-specific API implementing the standard hash.Hash interface. It runs the
// same transition table as Stepper on a single in-place state and keeps no history.

// Digest is a streaming MD5 computed through the step-wise state machine.
type Digest struct {
	state State
	carry []byte /* written bytes the state machine has not read yet, always < BlockSize after Write */
}

// New returns a hash.Hash computing MD5.
func New() hash.Hash { return NewDigest() }

func NewDigest() *Digest {
	d := &Digest{carry: make([]byte, 0, BlockSize)}
	d.Reset()
	return d
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

func (d *Digest) Reset() {
	d.state = State{Phase: Initialized, H1: init1, H2: init2, H3: init3, H4: init4}
	d.carry = d.carry[:0]
}

// State returns a copy of the in-place state; its phase is always ReadingData or Initialized
// between calls to Write.
func (d *Digest) State() State { return d.state }

func (d *Digest) Write(buf []byte) (int, error) {
	count := len(buf)
	if len(d.carry) > 0 {
		buf = append(d.carry, buf...)
		d.carry = d.carry[:0]
	}

	f := &carry{buf: buf}
	for !(d.state.Phase == ReadingData && len(f.buf) < BlockSize) {
		/* Only whole blocks are read here, so the message end is never reached. */
		mustApply(f, &d.state)
	}
	if len(f.buf) > 0 {
		d.carry = append(d.carry, f.buf...)
	}
	return count, nil
}

// Sum appends the digest to buf. The written data is left as it was, so writing may continue.
func (d *Digest) Sum(buf []byte) []byte {
	s, f := d.state.Clone(), &carry{buf: d.carry}
	for s.Phase != Finished {
		mustApply(f, &s)
	}
	sum := s.Digest()
	return append(buf, sum[:]...)
}

// Sum returns the MD5 digest of msg.
func Sum(msg []byte) [Size]byte {
	var out [Size]byte
	d := NewDigest()
	d.Write(msg)
	d.Sum(out[:0])
	return out
}

// mustApply is apply for feeders that cannot fail. hash.Hash has no way to report a failed
// transition, so one is a programming error.
func mustApply(f feeder, s *State) {
	if err := apply(f, s); err != nil {
		panic(errors.Wrapf(err, "md5step: in-memory transition from %s", s.Phase))
	}
}

// carry feeds the state machine from memory.
type carry struct{ buf []byte }

func (c *carry) read(p []byte) (int, error) {
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (*carry) finish() {}
