package main

import (
	md5step "github.com/CrypToolProject/CrypTool-2-sub034"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	. "github.com/spf13/pflag"
	"os"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

// config mirrors the flags a TOML file may preset; flags given on the command line win.
type config struct {
	Skip   []string `toml:"skip"`
	Stop   []string `toml:"stop"`
	Base64 bool     `toml:"base64"`
	Trace  bool     `toml:"trace"`
	Verify bool     `toml:"verify"`
}

func loadConfig(path string) (config, error) {
	var c config
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "md5sum: reading config")
	}
	if err = toml.Unmarshal(raw, &c); err != nil {
		return c, errors.Wrapf(err, "md5sum: parsing %s", path)
	}
	return c, nil
}

// apply copies every setting of c whose flag was left at its default.
func (c config) apply(fs *FlagSet) {
	if !fs.Changed("skip") && len(c.Skip) > 0 {
		pSkip = c.Skip
	}
	if !fs.Changed("stop") && len(c.Stop) > 0 {
		pStop = c.Stop
	}
	if !fs.Changed("base64") {
		pBase64 = pBase64 || c.Base64
	}
	if !fs.Changed("trace") {
		pTrace = pTrace || c.Trace
	}
	if !fs.Changed("verify") {
		pVerify = pVerify || c.Verify
	}
}

// skipSet turns --skip and --stop into the phases a Stepper should not stop on. With --stop, every
// phase not listed is skipped; Finished is always a stop.
func skipSet(skip, stop []string) ([]md5step.Phase, error) {
	var out []md5step.Phase
	for _, s := range skip {
		p, err := md5step.ParsePhase(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(stop) == 0 {
		return out, nil
	}
	keep := map[md5step.Phase]bool{}
	for _, s := range stop {
		p, err := md5step.ParsePhase(s)
		if err != nil {
			return nil, err
		}
		keep[p] = true
	}
	for _, p := range md5step.Phases() {
		if !keep[p] {
			out = append(out, p)
		}
	}
	return out, nil
}
