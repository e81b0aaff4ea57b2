package main

import (
	. "fmt"
	"runtime"
	"time"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s\n\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()

	Printf("Integer input Monobit test:  %5.3f%%\n", meanBias(integerDigests()))
	Printf("Random input Monobit test:   %5.3f%%\n", meanBias(randomDigests()))
	Printf("Stepper: %.4g transitions/s\n\n", transitionRate())

	Println("             64B      4KiB    256KiB")
	Println("md5step (Stepper)")
	benchAlg(BenchmarkStepper)

	Println("md5step (hash.Hash)")
	benchAlg(BenchmarkDigest)

	Println("crypto/md5")
	benchAlg(BenchmarkMD5)

	Println("github.com/minio/md5-simd")
	benchAlg(BenchmarkMD5SIMD)

	Println("github.com/minio/sha256-simd")
	benchAlg(BenchmarkSHA256)

	Println("github.com/zeebo/blake3")
	benchAlg(BenchmarkBlake3)

	Println("github.com/zeebo/xxh3")
	benchAlg(BenchmarkXXH3)

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
