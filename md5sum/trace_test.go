package main

import (
	"bytes"
	"context"
	md5step "github.com/CrypToolProject/CrypTool-2-sub034"
	"gotest.tools/v3/assert"
	"io"
	"strings"
	"testing"
)

func TestTraceLine(t *testing.T) {
	st := md5step.NewStepper()
	st.InitializeReader(strings.NewReader("abc"))
	assert.NilError(t, st.StepUntil(md5step.StartingRoundStep))
	s := st.Current()

	line := traceLine(st.CurrentIndex(), "148", &s)
	assert.Assert(t, strings.Contains(line, "StartingRoundStep"), line)
	assert.Assert(t, strings.Contains(line, "round 1 step  1"), line)
	assert.Assert(t, strings.Contains(line, "K=d76aa478"), line)

	assert.NilError(t, st.RunToCompletion())
	s = st.Current()
	line = traceLine(st.CurrentIndex(), "148", &s)
	assert.Assert(t, strings.Contains(line, "900150983cd24fb0d6963f7d28e17f72"), line)
}

func TestTracerPrintsEveryStop(t *testing.T) {
	var out bytes.Buffer
	st := md5step.NewStepper()
	st.AddSkipped(md5step.StartingRoundStep, md5step.FinishedRoundStep)
	tr := newTracer(st, &out, 0)
	assert.Equal(t, tr.total, "149")
	defer st.Subscribe(tr.print)()

	assert.NilError(t, drive(context.Background(), st, io.NopCloser(strings.NewReader("")), st.Next))
	lines := strings.Split(strings.TrimSuffix(out.String(), n), n)
	assert.Equal(t, len(lines), 149-2*64)
	assert.Assert(t, strings.Contains(lines[0], "Initialized"))
	assert.Assert(t, strings.Contains(lines[len(lines)-1], "d41d8cd98f00b204e9800998ecf8427e"))
}

func TestDriveStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	st := md5step.NewStepper()
	moves := 0
	err := drive(ctx, st, io.NopCloser(strings.NewReader("abc")), func() error {
		if moves++; moves == 3 {
			cancel()
		}
		return st.Next()
	})
	assert.NilError(t, err)
	assert.Equal(t, moves, 3)
	assert.Equal(t, st.CurrentIndex(), 4)
	assert.Assert(t, !st.IsFinished())
}
