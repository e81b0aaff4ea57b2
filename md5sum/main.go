package main

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	md5step "github.com/CrypToolProject/CrypTool-2-sub034"
	"github.com/p7r0x7/vainpath"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	. "github.com/spf13/pflag"
	"hash"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var warnings = 0
var newOracle = func() hash.Hash { return md5.New() }

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "md5sum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "MD5, one inspectable state at a time.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-btT] [-c FILE] [--skip|stop PHASE,...] [--verify] -|PATH..."+n,
		spaces, "[-btT] [-c FILE] [--skip|stop PHASE,...] [--verify] -s STRING..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Phases are named as in `", name, " -T` output, in any case, with `-` or `_`"+
		n+"between words. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

func program() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx)
}

// This program is a command-line interface for md5step: it hashes every argument through a
// Stepper, optionally printing each state the Stepper stops on. Once ctx ends, the Stepper stops
// between two steps and no further targets are opened.
func execute(ctx context.Context) int {
	CommandLine.Init(os.Args[0], ContinueOnError)
	if err := CommandLine.Parse(os.Args[1:]); err != nil {
		Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}
	if pConfig != "" {
		c, err := loadConfig(pConfig)
		if err != nil {
			Fprint(os.Stderr, purp, err, zero, n)
			return invalid
		}
		c.apply(CommandLine)
	}
	if pHelp || NArg() == 0 {
		help()
		return success
	}
	skips, err := skipSet(pSkip, pStop)
	if err != nil {
		Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: pNoCodes, DisableTimestamp: true})
	if pDebug {
		log.SetLevel(logrus.DebugLevel)
	}

	for _, target := range Args() {
		if ctx.Err() != nil {
			warn(errors.Wrap(ctx.Err(), "md5sum: interrupted"))
			break
		}
		start, delta := time.Now(), ""
		src, size, err := open(target)
		if err != nil {
			warn(err)
			continue
		}

		var oracle hash.Hash
		if pVerify {
			oracle = newOracle()
			src = teeCloser{io.TeeReader(src, oracle), src}
		}

		st := md5step.NewStepper()
		st.SetLogger(log.WithField("target", target))
		if pTrace {
			st.AddSkipped(skips...)
			cancel := st.Subscribe(newTracer(st, os.Stdout, size).print)
			err = drive(ctx, st, src, st.Next)
			cancel()
		} else {
			err = drive(ctx, st, src, st.NextBlock)
		}
		if err != nil {
			_ = st.Close()
			warn(err)
			continue
		}
		if !st.IsFinished() {
			_ = st.Close()
			warn(errors.Wrap(ctx.Err(), "md5sum: interrupted"))
			break
		}

		if pTime {
			d := time.Since(start)
			if d.Microseconds() > 99 {
				d = d.Truncate(10 * time.Microsecond)
			}
			delta = " (" + d.String() + ")"
		}

		sum := st.Digest()
		if oracle != nil && !bytes.Equal(oracle.Sum(nil), sum[:]) {
			warn(errors.Errorf("md5sum: %s: digest disagrees with crypto/md5", target))
			continue
		}
		if !pQuiet {
			Print(yell)
		}
		Print(encode(sum[:]))
		if pQuiet {
			os.Stdout.WriteString(n)
		} else if pString {
			Print(zero, `  "`, target, `"`, delta, n)
		} else if pNoCodes {
			Print(`  `, filepath.Clean(target), delta, n)
		} else {
			Print(zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
		}
	}

	if !pQuiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target could not be hashed or failed verification.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets could not be hashed or failed verification.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// open resolves a command-line argument to the source a Stepper reads, and that source's size in
// bytes when it is known ahead of time, or -1.
func open(target string) (io.ReadCloser, int64, error) {
	if pString {
		return io.NopCloser(strings.NewReader(target)), int64(len(target)), nil
	}
	if target == "-" || target == os.Stdin.Name() {
		return io.NopCloser(os.Stdin), -1, nil /* STDIN is never closed by the Stepper. */
	}
	file, err := os.Open(target)
	if err != nil {
		return nil, 0, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, errors.Errorf("md5sum: %s is a directory", target)
	}
	if !info.Mode().IsRegular() {
		return file, -1, nil
	}
	return file, info.Size(), nil
}

// drive binds src and calls move until st finishes or fails. ctx is checked before every move.
func drive(ctx context.Context, st *md5step.Stepper, src io.ReadCloser, move func() error) error {
	st.Initialize(src)
	for !st.IsFinished() && ctx.Err() == nil {
		if err := move(); err != nil {
			return err
		}
	}
	return nil
}

func encode(sum []byte) string {
	if pBase64 {
		return base64.StdEncoding.EncodeToString(sum)
	}
	return hex.EncodeToString(sum)
}

type teeCloser struct {
	io.Reader
	io.Closer
}

func warn(err error) {
	if pStrict {
		panic(err)
	}
	if !pQuiet {
		Fprint(os.Stderr, purp, err, zero, n)
	}
	warnings++
}
