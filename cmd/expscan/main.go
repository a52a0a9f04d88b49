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

// Command expscan measures the exp kernels against a correctly rounded exp over ranges of
// input bit patterns and reports the maximum and mean ULP error.
//
// Usage:
//
//	expscan                                     # every kernel, sampled bit space
//	expscan --precision f32 --step 1            # exhaustive float32 scan
//	expscan --algo taylor --target avx512 --width 16
//	expscan --precision f32 --from 0xc2cf0000 --to 0xc2d00000
//
// The command exits non-zero when a kernel exceeds its ULP bound (or
// --max-ulp when given).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cexa-project/go-vexp/hwy"
	"github.com/cexa-project/go-vexp/hwy/contrib/math"
)

type options struct {
	precisions []string
	algos      []string
	targets    []string
	width      int
	from, to   string
	step       uint64
	workers    int
	maxULP     uint64
	verbose    bool
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.precisions, "precision", []string{"f32", "f64"}, "lane types to scan (f32, f64)")
	fs.StringSliceVar(&o.algos, "algo", []string{"table", "taylor"}, "algorithms to scan (table, taylor)")
	fs.StringSliceVar(&o.targets, "target", []string{"avx2", "avx512"}, "kernel targets to scan (avx2, avx512)")
	fs.IntVar(&o.width, "width", 0, "only scan kernels with this many lanes (0 for all)")
	fs.StringVar(&o.from, "from", "", "first input bit pattern, e.g. 0xc2cf0000 (default: start of the bit space)")
	fs.StringVar(&o.to, "to", "", "end of the input bit patterns, exclusive (default: end of the bit space)")
	fs.Uint64Var(&o.step, "step", 0, "distance between scanned bit patterns (default: 256 for f32, 2^40 for f64)")
	fs.IntVarP(&o.workers, "workers", "j", 0, "scan workers (default: GOMAXPROCS)")
	fs.Uint64Var(&o.maxULP, "max-ulp", 0, "fail when any kernel exceeds this many ULP (default: the kernel's own bound)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log per-batch progress and print histograms")
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "expscan",
		Short:        "Measure exp kernel accuracy in ULP against a correctly rounded exp",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
			s, err := newScanner(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Run(cmd.Context())
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

// parseList splits comma separated flag values, lower-cased and trimmed.
func parseList(values []string) []string {
	var result []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.ToLower(strings.TrimSpace(p))
			if p != "" {
				result = append(result, p)
			}
		}
	}
	return result
}

func parseAlgos(values []string) ([]math.Algo, error) {
	var algos []math.Algo
	for _, v := range parseList(values) {
		switch a := math.Algo(v); a {
		case math.AlgoTable, math.AlgoTaylor:
			algos = append(algos, a)
		default:
			return nil, fmt.Errorf("unknown --algo %q (want table or taylor)", v)
		}
	}
	return algos, nil
}

func parsePrecisions(values []string) ([]math.Precision, error) {
	var precisions []math.Precision
	for _, v := range parseList(values) {
		switch p := math.Precision(v); p {
		case math.F32, math.F64:
			precisions = append(precisions, p)
		default:
			return nil, fmt.Errorf("unknown --precision %q (want f32 or f64)", v)
		}
	}
	return precisions, nil
}

func parseTargets(values []string) ([]hwy.DispatchLevel, error) {
	var targets []hwy.DispatchLevel
	for _, v := range parseList(values) {
		level, ok := hwy.ParseDispatchLevel(v)
		if !ok || level == hwy.DispatchScalar {
			return nil, fmt.Errorf("unknown --target %q (want avx2 or avx512)", v)
		}
		targets = append(targets, level)
	}
	return targets, nil
}

// parseBits parses a bit pattern in any base strconv accepts (0x, 0o, 0b, with
// optional underscores).
func parseBits(name, s string) (uint64, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing --%s: %w", name, err)
	}
	return v, true, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
