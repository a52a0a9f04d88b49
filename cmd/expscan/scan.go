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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdmath "math"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cexa-project/go-vexp/hwy"
	"github.com/cexa-project/go-vexp/hwy/contrib/math"
	"github.com/cexa-project/go-vexp/hwy/contrib/workerpool"
	"github.com/cexa-project/go-vexp/internal/ulp"
)

// errBoundExceeded is returned when a kernel's max ULP error is over the limit.
var errBoundExceeded = errors.New("ULP bound exceeded")

const (
	defaultStep32 = 1 << 8
	defaultStep64 = 1 << 40
)

// result is the outcome of scanning one kernel variant.
type result struct {
	variant math.Variant
	rng     ulp.Range
	stats   ulp.Stats
	limit   uint64
	elapsed time.Duration
}

func (r result) failed() bool {
	return r.stats.Max > r.limit
}

type scanner struct {
	variants []math.Variant
	opts     *options
	from, to uint64
	hasFrom  bool
	hasTo    bool
	pool     *workerpool.Pool
	out      io.Writer
}

func newScanner(opts *options, out io.Writer) (*scanner, error) {
	algos, err := parseAlgos(opts.algos)
	if err != nil {
		return nil, err
	}
	precisions, err := parsePrecisions(opts.precisions)
	if err != nil {
		return nil, err
	}
	targets, err := parseTargets(opts.targets)
	if err != nil {
		return nil, err
	}
	s := &scanner{opts: opts, out: out}
	if s.from, s.hasFrom, err = parseBits("from", opts.from); err != nil {
		return nil, err
	}
	if s.to, s.hasTo, err = parseBits("to", opts.to); err != nil {
		return nil, err
	}

	s.variants = math.FilterVariants(func(v math.Variant) bool {
		return lo.Contains(algos, v.Algo) &&
			lo.Contains(precisions, v.Precision) &&
			lo.Contains(targets, v.Target) &&
			(opts.width == 0 || v.Lanes == opts.width)
	})
	if len(s.variants) == 0 {
		return nil, fmt.Errorf("no kernel matches --algo %v --precision %v --target %v --width %d: %w",
			algos, precisions, targets, opts.width, math.ErrUnsupportedShape)
	}

	s.pool = workerpool.New(opts.workers)
	return s, nil
}

// Close releases the scan workers.
func (s *scanner) Close() {
	s.pool.Close()
}

// rangeFor returns the bit patterns to scan for a precision.
func (s *scanner) rangeFor(p math.Precision) ulp.Range {
	r := ulp.Range{From: 0, To: 1 << 32, Step: s.opts.step}
	if p == math.F64 {
		r.To = stdmath.MaxUint64
	}
	if r.Step == 0 {
		r.Step = defaultStep32
		if p == math.F64 {
			r.Step = defaultStep64
		}
	}
	if s.hasFrom {
		r.From = s.from
	}
	if s.hasTo {
		r.To = s.to
	}
	return r
}

// limitFor is the ULP bound a variant is held to.
func (s *scanner) limitFor(v math.Variant) uint64 {
	if s.opts.maxULP > 0 {
		return s.opts.maxULP
	}
	return v.MaxULP()
}

// Run scans every selected variant concurrently, prints the report and
// fails if any variant is over its bound.
func (s *scanner) Run(ctx context.Context) error {
	log.WithFields(log.Fields{
		"level":    hwy.CurrentName(),
		"variants": len(s.variants),
		"workers":  s.pool.NumWorkers(),
		"fma":      hwy.HasFMA(),
	}).Info("starting exp accuracy scan")

	results := make([]result, len(s.variants))
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range s.variants {
		g.Go(func() error {
			res, err := s.scanVariant(ctx, v)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", v.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeReport(s.out, results, s.opts.verbose); err != nil {
		return err
	}

	failed := lo.Filter(results, func(r result, _ int) bool { return r.failed() })
	if len(failed) > 0 {
		names := lo.Map(failed, func(r result, _ int) string { return r.variant.Name })
		return fmt.Errorf("%w: %v", errBoundExceeded, names)
	}
	return nil
}

func (s *scanner) scanVariant(ctx context.Context, v math.Variant) (result, error) {
	rng := s.rangeFor(v.Precision)
	logger := log.WithFields(log.Fields{
		"variant": v.Name,
		"from":    fmt.Sprintf("%#x", rng.From),
		"to":      fmt.Sprintf("%#x", rng.To),
		"step":    rng.Step,
	})
	logger.Debugf("scanning %d inputs", rng.Count())

	start := time.Now()
	var st ulp.Stats
	var err error
	if v.Precision == math.F32 {
		st, err = ulp.Scan32(ctx, s.pool, v.Apply32, rng)
	} else {
		st, err = ulp.Scan64(ctx, s.pool, v.Apply64, rng)
	}
	if err != nil {
		return result{}, err
	}

	res := result{variant: v, rng: rng, stats: st, limit: s.limitFor(v), elapsed: time.Since(start)}
	logger = logger.WithFields(log.Fields{"max_ulp": st.Max, "worst_input": formatBits(v.Precision, st.MaxAt)})
	if res.failed() {
		logger.Warnf("max error %d ULP is over the %d ULP bound", st.Max, res.limit)
	} else {
		logger.Infof("done in %v", res.elapsed.Round(time.Millisecond))
	}
	return res, nil
}

// formatBits renders an input bit pattern with its float value.
func formatBits(p math.Precision, bits uint64) string {
	if p == math.F32 {
		return fmt.Sprintf("%#08x (%g)", bits, stdmath.Float32frombits(uint32(bits)))
	}
	return fmt.Sprintf("%#016x (%g)", bits, stdmath.Float64frombits(bits))
}
