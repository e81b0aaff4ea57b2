package md5step

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"io"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

// Stepper drives the MD5 state machine one transition at a time. It owns a linear history of
// states and a cursor into it; moving forward inside the known history replays states, moving
// forward at the frontier computes and appends a new one. A Stepper is not safe for concurrent use.
type Stepper struct {
	history []State
	cursor  int
	src     io.ReadCloser
	closed  bool
	err     error /* sticky read failure, cleared by Initialize */
	skipped [phaseCount]bool

	observers []observer /* in registration order */
	nextObs   int
	log       logrus.FieldLogger
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// NewStepper returns a Stepper holding a single Uninitialized state.
func NewStepper() *Stepper {
	st := &Stepper{log: discard}
	st.reset()
	return st
}

// SetLogger routes the Stepper's debug output to l; nil restores the silent default.
func (st *Stepper) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discard
	}
	st.log = l
}

func (st *Stepper) reset() {
	st.history = append(st.history[:0:0], State{Phase: Uninitialized})
	st.cursor = 0
	st.err = nil
}

// Initialize binds src and restarts the history at a fresh Initialized state. Any source bound by
// an earlier call that has not been closed yet is closed first. A nil src is ignored.
func (st *Stepper) Initialize(src io.ReadCloser) {
	if src == nil {
		return
	}
	if err := st.Close(); err != nil {
		st.log.WithError(err).Debug("md5step: closing abandoned source")
	}
	st.src, st.closed = src, false
	st.reset()
	st.history = append(st.history, State{
		Phase: Initialized,
		H1:    init1, H2: init2, H3: init3, H4: init4,
	})
	st.cursor = 1
	st.log.Debug("md5step: initialized")
	st.notify()
}

// InitializeReader is Initialize for sources that need no closing.
func (st *Stepper) InitializeReader(r io.Reader) {
	if r == nil {
		return
	}
	if rc, ok := r.(io.ReadCloser); ok {
		st.Initialize(rc)
		return
	}
	st.Initialize(io.NopCloser(r))
}

// Close closes the bound source if it is still open. The source is otherwise closed exactly once,
// by the transition into Finished.
func (st *Stepper) Close() error {
	if st.src == nil || st.closed {
		return nil
	}
	st.closed = true
	return errors.Wrap(st.src.Close(), "md5step: closing source")
}

func (st *Stepper) read(p []byte) (int, error) { return io.ReadFull(st.src, p) }

func (st *Stepper) finish() {
	if err := st.Close(); err != nil {
		st.log.WithError(err).Warn("md5step: source did not close cleanly")
		return
	}
	st.log.WithField("bytes", st.history[len(st.history)-1].BytesHashed).Debug("md5step: source closed")
}

// AddSkipped adds phases the Stepper moves through without stopping. Finished is never skipped.
func (st *Stepper) AddSkipped(phases ...Phase) {
	for _, p := range phases {
		if p.Valid() && p != Finished {
			st.skipped[p] = true
		}
	}
}

func (st *Stepper) ResetSkipped() { st.skipped = [phaseCount]bool{} }

// Skips reports whether p is in the skip set.
func (st *Stepper) Skips(p Phase) bool { return p.Valid() && st.skipped[p] }

// Subscribe registers fn to run after every completed Step, StepUntil, RunToCompletion and
// Initialize call. The returned function removes it again.
func (st *Stepper) Subscribe(fn func()) (cancel func()) {
	id := st.nextObs
	st.nextObs++
	st.observers = append(st.observers, observer{id, fn})
	return func() {
		kept := make([]observer, 0, len(st.observers))
		for _, o := range st.observers {
			if o.id != id {
				kept = append(kept, o)
			}
		}
		st.observers = kept
	}
}

type observer struct {
	id int
	fn func()
}

func (st *Stepper) notify() {
	for _, o := range st.observers {
		o.fn()
	}
}

// Current returns a copy of the state under the cursor.
func (st *Stepper) Current() State { return st.history[st.cursor] }

// Last returns the state before the cursor; ok is false at the first state.
func (st *Stepper) Last() (s State, ok bool) {
	if st.cursor == 0 {
		return s, false
	}
	return st.history[st.cursor-1], true
}

// StateAt returns history entry i.
func (st *Stepper) StateAt(i int) (s State, ok bool) {
	if i < 0 || i >= len(st.history) {
		return s, false
	}
	return st.history[i], true
}

func (st *Stepper) CurrentIndex() int { return st.cursor }

// Len is the number of states in the history.
func (st *Stepper) Len() int { return len(st.history) }

func (st *Stepper) IsInitialized() bool { return st.src != nil && len(st.history) > 1 }

func (st *Stepper) IsFinished() bool { return st.history[st.cursor].Phase == Finished }

func (st *Stepper) IsFirst() bool { return st.cursor == 0 }

// HasMoreHistory reports whether a forward step would replay a known state.
func (st *Stepper) HasMoreHistory() bool {
	return st.IsInitialized() && st.cursor < len(st.history)-1
}

// Digest is the little-endian serialization of the current accumulators.
func (st *Stepper) Digest() [Size]byte { return st.history[st.cursor].Digest() }

// Err returns the read failure that stopped the Stepper, if any.
func (st *Stepper) Err() error { return st.err }

// advance computes the successor of the frontier state and appends it. Nothing is appended when
// the transition fails.
func (st *Stepper) advance() error {
	if st.err != nil {
		return st.err
	}
	prev := &st.history[len(st.history)-1]
	fn := transitions[prev.Phase]
	if fn == nil {
		return nil
	}
	next := prev.Clone()
	if err := fn(st, prev, &next); err != nil {
		st.err = errors.WithStack(err)
		st.log.WithError(err).Debug("md5step: transition failed")
		return st.err
	}
	st.history = append(st.history, next)
	return nil
}

// move shifts the cursor by one without regard to the skip set.
func (st *Stepper) move(forward bool) error {
	if !forward {
		if st.cursor > 0 {
			st.cursor--
		}
		return nil
	}
	if st.IsFinished() {
		return nil
	}
	if st.cursor == len(st.history)-1 {
		if err := st.advance(); err != nil {
			return err
		}
		if st.cursor == len(st.history)-1 {
			return nil /* no successor */
		}
	}
	st.cursor++
	return nil
}

// Step moves the cursor one state forward or backward, then keeps moving in the same direction
// while the state reached is in the skip set. Stepping before Initialize and stepping forward from
// Finished do nothing.
func (st *Stepper) Step(forward bool) error {
	if !st.IsInitialized() {
		return nil
	}
	err := st.step(forward)
	st.notify()
	return err
}

func (st *Stepper) step(forward bool) error {
	if forward && st.IsFinished() {
		return nil
	}
	for {
		before := st.cursor
		if err := st.move(forward); err != nil {
			return err
		}
		p := st.history[st.cursor].Phase
		if st.cursor == before || p == Finished || !st.skipped[p] {
			return nil
		}
	}
}

// Next is Step(true).
func (st *Stepper) Next() error { return st.Step(true) }

// Previous is Step(false).
func (st *Stepper) Previous() error { return st.Step(false) }

// StepUntil steps forward at least once, until the current phase is target or Finished.
func (st *Stepper) StepUntil(target Phase) error {
	if !st.IsInitialized() {
		return nil
	}
	defer st.notify()
	for {
		if err := st.step(true); err != nil {
			return err
		}
		if p := st.history[st.cursor].Phase; p == target || p == Finished {
			return nil
		}
	}
}

// NextRound steps to the end of the current round.
func (st *Stepper) NextRound() error { return st.StepUntil(FinishedRound) }

// NextBlock steps to the end of the current compression.
func (st *Stepper) NextBlock() error { return st.StepUntil(FinishedCompression) }

// RunToCompletion steps forward until Finished.
func (st *Stepper) RunToCompletion() error {
	if !st.IsInitialized() {
		return nil
	}
	defer st.notify()
	for !st.IsFinished() {
		if err := st.step(true); err != nil {
			return err
		}
	}
	return nil
}

// PeekNext returns the state a forward move would reach, computing it if it is not in the history
// yet, without moving the cursor or consulting the skip set. At Finished it returns the current
// state.
func (st *Stepper) PeekNext() (State, error) {
	if !st.IsInitialized() {
		return State{}, ErrNotInitialized
	}
	if st.IsFinished() {
		return st.Current(), nil
	}
	if st.cursor == len(st.history)-1 {
		if err := st.advance(); err != nil {
			return State{}, err
		}
	}
	return st.history[st.cursor+1], nil
}
