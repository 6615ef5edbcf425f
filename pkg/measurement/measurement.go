// Copyright 2018 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package measurement

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/aerospike-workshop/exercises/pkg/util"
)

var header = []string{"Operation", "Takes(s)", "Count", "Avg(us)", "Min(us)", "Max(us)", "99th(us)"}

// Measurer collects latencies per operation name.
type Measurer struct {
	sync.Mutex

	opMeasurement map[string]*histogram
}

// New creates an empty Measurer.
func New() *Measurer {
	return &Measurer{opMeasurement: make(map[string]*histogram)}
}

// Measure records one execution of op.
func (m *Measurer) Measure(op string, latency time.Duration) {
	m.Lock()
	defer m.Unlock()
	h, ok := m.opMeasurement[op]
	if !ok {
		h = newHistogram()
		m.opMeasurement[op] = h
	}
	h.Measure(latency)
}

// Count returns how many times op was measured.
func (m *Measurer) Count(op string) int64 {
	m.Lock()
	defer m.Unlock()
	h, ok := m.opMeasurement[op]
	if !ok {
		return 0
	}
	return h.hist.TotalCount()
}

// Summary returns the header and one row per operation, sorted by name.
func (m *Measurer) Summary() ([]string, [][]string) {
	m.Lock()
	defer m.Unlock()

	ops := make([]string, 0, len(m.opMeasurement))
	for op := range m.opMeasurement {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	lines := make([][]string, 0, len(ops))
	for _, op := range ops {
		line := []string{op}
		line = append(line, m.opMeasurement[op].Summary()...)
		lines = append(lines, line)
	}
	return header, lines
}

// Output renders the summary in the given output style.
func (m *Measurer) Output(w io.Writer, style string) {
	headers, lines := m.Summary()
	util.Render(w, style, headers, lines)
}
