// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command fmathtest exercises the fmath package end to end: integer and
// floor helpers, the round-trip conversion matrix, every half bit pattern,
// bit-range rescaling and interpolation, followed by conversion throughput
// benchmarks. It exits with status 1 if any check fails.
//
// Usage:
//
//	fmathtest [--iterations N] [--trials N] [--threads N] [-v]
//
// Setting FMATH_CI shortens the default benchmark sizes, and FMATH_NO_SIMD
// forces the scalar batch kernels.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-fmath/fmath"
	"github.com/ajroetker/go-fmath/fmath/contrib/workerpool"
)

type options struct {
	verbose    bool
	iterations int
	trials     int
	threads    int
}

func defaultOptions() options {
	opts := options{iterations: 1000000, trials: 5}
	// CI runs trade benchmark precision for time. Explicit flags still win.
	if os.Getenv("FMATH_CI") != "" {
		opts.iterations /= 10
		opts.trials = 1
	}
	return opts
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := defaultOptions()

	fs := pflag.NewFlagSet("fmathtest", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "fmathtest -- exercise fmath conversions and helpers\n\nUsage:  fmathtest [options]\n")
		fs.PrintDefaults()
	}

	help := fs.Bool("help", false, "Print help message")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose mode")
	fs.IntVar(&opts.iterations, "iterations", opts.iterations, "Number of values to convert for benchmarks")
	fs.IntVar(&opts.trials, "trials", opts.trials, "Number of trials")
	fs.IntVar(&opts.threads, "threads", 0, "Workers for the parallel benchmark (0 = GOMAXPROCS)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *help {
		fs.Usage()
		return opts, pflag.ErrHelp
	}
	return opts, nil
}

func setupLogging(w io.Writer, verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
}

// run executes every check and benchmark and returns the exit status.
// Benchmark results go to stdout, diagnostics to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 1
	}
	setupLogging(stderr, opts.verbose)

	log.Info().
		Str("level", fmath.CurrentName()).
		Int("width", fmath.CurrentWidth()).
		Int("threads", opts.threads).
		Bool("half_convert", fmath.HasHalfConvert()).
		Bool("no_simd", fmath.NoSimdEnv()).
		Msg("dispatch")

	pool := workerpool.New(opts.threads)
	defer pool.Close()

	c := newChecker(log.Logger)

	checkIntHelpers(c)
	checkMathFunctions(c, opts)
	checkConvertMatrix(c)
	checkHalfAccuracy(c)
	runBenchmarks(c, opts, stdout, pool)
	checkBitRange(c, pool)
	checkInterpolate(c)

	if c.failures > 0 {
		log.Error().Int("failures", c.failures).Int("checks", c.checks).Msg("FAILED")
		return 1
	}
	log.Info().Int("checks", c.checks).Msg("all checks passed")
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
