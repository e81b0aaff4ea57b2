package main

import (
	"bytes"
	"crypto/md5"
	. "fmt"
	md5step "github.com/CrypToolProject/CrypTool-2-sub034"
	"github.com/aead/chacha20/chacha"
	"github.com/dterei/gotsc"
	md5simd "github.com/minio/md5-simd"
	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"sync"
	"testing"
	"time"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

var sizes = [...]int{64, 4 << 10, 256 << 10}
var msg, calltime = []byte(nil), gotsc.TSCOverhead()

/* Inputs are a ChaCha20 keystream so every run hashes the same bytes. */
func fill(size int) []byte {
	var key [32]byte
	var nonce [8]byte
	b := make([]byte, size)
	chacha.XORKeyStream(b, b, nonce[:], key[:], 20)
	return b
}

func BenchmarkStepper(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		st := md5step.NewStepper()
		st.InitializeReader(bytes.NewReader(msg))
		if err := st.RunToCompletion(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDigest(b *testing.B) {
	d := md5step.NewDigest()
	sum := make([]byte, md5step.Size)
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		d.Write(msg)
		d.Sum(sum[:0])
		d.Reset()
	}
}

func BenchmarkMD5(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		md5.Sum(msg)
	}
}

func BenchmarkMD5SIMD(b *testing.B) {
	server := md5simd.NewServer()
	defer server.Close()
	h := server.NewHash()
	defer h.Close()
	sum := make([]byte, md5.Size)
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		h.Write(msg)
		h.Sum(sum[:0])
		h.Reset()
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		sha256.Sum256(msg)
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		blake3.Sum256(msg)
	}
}

func BenchmarkXXH3(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		xxh3.Hash(msg)
	}
}

func benchAlg(alg func(b *testing.B)) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		msg = fill(v)

		totalHz, polls, mut, done := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-done:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(alg)
		close(done)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		mut.Unlock()
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

// transitionRate reports how many states per second a Stepper computes on the largest input.
func transitionRate() float64 {
	msg = fill(sizes[len(sizes)-1])
	st := md5step.NewStepper()
	start := time.Now()
	st.InitializeReader(bytes.NewReader(msg))
	if err := st.RunToCompletion(); err != nil {
		panic(err)
	}
	return float64(st.Len()) / time.Since(start).Seconds()
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}
