package md5step

import (
	"fmt"
	"github.com/pkg/errors"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

// ErrNotInitialized is returned by operations that need a bound source to report anything useful.
// Stepping before Initialize is not an error; it does nothing.
var ErrNotInitialized = errors.New("md5step: stepper is not initialized")

// ReadError reports a failed read from the byte source. The stepper keeps returning it for every
// forward step at the frontier until it is initialized again.
type ReadError struct {
	Offset uint64 /* first message byte the failed read should have returned */
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("md5step: reading source at byte %d: %v", e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Cause() error { return e.Err }
