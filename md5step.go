// Package md5step implements an MD5 computation (RFC 1321) that can be executed one micro-step at a
// time. Every intermediate state is kept in an append-only history, so a caller can pause, rewind,
// replay and fast-forward through padding, block compression, rounds and single round steps.
//
// MD5 is cryptographically broken; this package exists to make the algorithm inspectable.
package md5step

import "math/bits"

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.
// The following collection of tables and functions backend every compression step taken by the
// Stepper. The tables are the ones published in RFC 1321 and must be reproduced bit-exact.

const (
	// Size is the size of an MD5 digest in bytes.
	Size = 16
	// BlockSize is the number of message bytes consumed by one compression.
	BlockSize = 64

	bufferSize   = 2 * BlockSize /* one block plus the block padding may spill into */
	lengthOffset = BlockSize - 8 /* padding zero-fills until dataLength%64 == 56 */
	roundCount   = 4
	stepsInRound = 16
	stepCount    = roundCount * stepsInRound

	init1, init2, init3, init4 = 0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476
)

/* Left-rotate amounts, one per absolute step. */
var shiftTable = [stepCount]uint8{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

/* floor(2^32 * abs(sin(i+1))) for each absolute step i. */
var additionTable = [stepCount]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// ShiftConstant returns the left-rotate amount used in absolute step i (0..63).
func ShiftConstant(i int) uint8 { return shiftTable[i] }

// AdditionConstant returns the additive constant used in absolute step i (0..63).
func AdditionConstant(i int) uint32 { return additionTable[i] }

/* The argument a is unused by every round function; it is kept so all four share a signature. */
type roundFunc func(a, b, c, d uint32) uint32

var roundFuncs = [roundCount]roundFunc{funcF, funcG, funcH, funcI}

func funcF(_, b, c, d uint32) uint32 { return d ^ (b & (c ^ d)) }

func funcG(_, b, c, d uint32) uint32 { return c ^ (d & (b ^ c)) }

func funcH(_, b, c, d uint32) uint32 { return b ^ c ^ d }

func funcI(_, b, c, d uint32) uint32 { return c ^ (b | ^d) }

// WordIndex returns which of the 16 message words is consumed at absolute step i of round r.
func WordIndex(r, i int) int {
	switch r {
	case 1:
		i = 5*i + 1
	case 2:
		i = 3*i + 5
	case 3:
		i *= 7
	}
	return i & 15
}

// compressStep applies one of the 64 compression steps to s in place. The freshly computed value
// lands in B and the registers rotate right, so D's old value moves into A.
func compressStep(s *State) {
	i := s.AbsoluteStepIndex()
	f := roundFuncs[s.RoundIndex]
	w := s.DataAsIntegers[WordIndex(s.RoundIndex, i)]

	a := s.B + bits.RotateLeft32(s.A+f(s.A, s.B, s.C, s.D)+w+additionTable[i], int(shiftTable[i]))
	s.A, s.B, s.C, s.D = s.D, a, s.B, s.C
}
