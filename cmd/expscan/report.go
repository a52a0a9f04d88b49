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
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cexa-project/go-vexp/internal/ulp"
)

// writeReport prints one line per scanned variant, in registry order.
// Counts use English digit grouping.
func writeReport(w io.Writer, results []result, histograms bool) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "%-24s %16s %10s %12s %6s  %s\n",
		"KERNEL", "INPUTS", "MAX ULP", "MEAN ULP", "BOUND", "WORST INPUT"); err != nil {
		return err
	}
	for _, r := range results {
		status := "ok"
		if r.failed() {
			status = "FAIL"
		}
		if _, err := p.Fprintf(w, "%-24s %16d %10d %12.6f %6d  %s %s\n",
			r.variant.Name, r.stats.Count, r.stats.Max, r.stats.Mean(), r.limit,
			formatBits(r.variant.Precision, r.stats.MaxAt), status); err != nil {
			return err
		}
		if histograms {
			if err := writeHistogram(p, w, r.stats); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHistogram(p *message.Printer, w io.Writer, st ulp.Stats) error {
	for d, n := range st.Histogram {
		if n == 0 {
			continue
		}
		label := p.Sprintf("%d ULP", d)
		if d == ulp.HistogramBuckets-1 {
			label = p.Sprintf(">=%d ULP", d)
		}
		if _, err := p.Fprintf(w, "    %-10s %16d\n", label, n); err != nil {
			return err
		}
	}
	return nil
}
