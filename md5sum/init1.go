package main

import (
	. "github.com/spf13/pflag"
	"os"
)

// Copyright © 2026 CrypTool 2 Team. Licensed under the Apache-2.0 license.

var pConfig, pNoCodesDefault = "", false
var pSkip, pStop []string
var pHelp, pBase64, pNoCodes, pQuiet, pStrict, pString, pTime, pTrace, pVerify, pDebug bool
var star, yell, purp, und, zero = "", "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	pNoCodes = pNoCodesDefault
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	StringVarP(&pConfig, "config", "c", "",
		purp+"read defaults for skip, stop, base64, trace and verify from a"+zero+
			n+purp+"TOML file"+zero)

	BoolVar(&pDebug, "debug", false,
		purp+"log stepper internals to stderr"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	Bool("quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	StringSliceVar(&pSkip, "skip", nil,
		purp+"comma-separated phases the trace moves through without"+zero+
			n+purp+"stopping"+zero)

	StringSliceVar(&pStop, "stop", nil,
		purp+"comma-separated phases the trace stops on; every other"+zero+
			n+purp+"phase is skipped"+zero)

	BoolVar(&pStrict, "strict", false,
		purp+"cause md5sum to panic on any error"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and hash each message"+zero)

	BoolVarP(&pTrace, "trace", "T", false,
		purp+"print every state the stepper stops on"+zero)

	BoolVar(&pVerify, "verify", false,
		purp+"cross-check every digest against crypto/md5"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}

