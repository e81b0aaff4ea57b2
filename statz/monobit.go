package main

import (
	"encoding/binary"
	md5step "github.com/CrypToolProject/CrypTool-2-sub034"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

const ints = 5e4

func integerDigests() [][md5step.Size]byte {
	out, in := make([][md5step.Size]byte, 0, ints), make([]byte, 4)
	for i := uint32(ints); i > 0; i-- {
		binary.BigEndian.PutUint32(in, i)
		out = append(out, md5step.Sum(in))
	}
	return out
}

func randomDigests() [][md5step.Size]byte {
	out, stream := make([][md5step.Size]byte, 0, ints), fill(ints*64)
	for i := 0; i < ints; i++ {
		out = append(out, md5step.Sum(stream[i*64:i*64+64]))
	}
	return out
}

// meanBias is the mean distance, as a percentage of the expected count, between how often each
// digest bit is set and half the number of digests.
func meanBias(digests [][md5step.Size]byte) float64 {
	const ln = md5step.Size * 8
	var tally [ln]int
	for _, d := range digests {
		for i, b := range d {
			for j := 0; j < 8; j++ {
				tally[i*8+j] += int(b>>j) & 1
			}
		}
	}
	half, total := len(digests)>>1, 0
	for _, t := range tally {
		if t -= half; t < 0 {
			total -= t
		} else {
			total += t
		}
	}
	return float64(total) / ln / float64(half) * 100
}
