//go:build windows

package main

import (
	. "golang.org/x/sys/windows"
	"os"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

/* Trace output is coloured; consoles that cannot be switched to VT processing get plain text. */
func init() {
	for _, f := range [2]*os.File{os.Stdout, os.Stderr} {
		var mode uint32
		h := Handle(f.Fd())
		if err := GetConsoleMode(h, &mode); err != nil {
			pNoCodesDefault = true
			break
		}
		if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
			continue
		}
		if err := SetConsoleMode(h, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			pNoCodesDefault = true
			break
		}
	}
}
