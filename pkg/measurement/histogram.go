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
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"

	"github.com/aerospike-workshop/exercises/pkg/util"
)

type histogram struct {
	startTime time.Time
	hist      *hdrhistogram.Histogram
}

// Metric name.
const (
	ELAPSED = "ELAPSED"
	COUNT   = "COUNT"
	AVG     = "AVG"
	MIN     = "MIN"
	MAX     = "MAX"
	PER99TH = "PER99TH"
)

func newHistogram() *histogram {
	h := new(histogram)
	h.startTime = time.Now()
	h.hist = hdrhistogram.New(1, 24*60*60*1000*1000, 3)
	return h
}

func (h *histogram) Measure(latency time.Duration) {
	h.hist.RecordValue(latency.Microseconds())
}

func (h *histogram) Summary() []string {
	res := h.getInfo()

	return []string{
		util.FloatToOneString(res[ELAPSED]),
		util.IntToString(res[COUNT]),
		util.IntToString(res[AVG]),
		util.IntToString(res[MIN]),
		util.IntToString(res[MAX]),
		util.IntToString(res[PER99TH]),
	}
}

func (h *histogram) getInfo() map[string]interface{} {
	res := make(map[string]interface{})
	res[ELAPSED] = time.Since(h.startTime).Seconds()
	res[COUNT] = h.hist.TotalCount()
	res[AVG] = int64(h.hist.Mean())
	res[MIN] = h.hist.Min()
	res[MAX] = h.hist.Max()
	res[PER99TH] = h.hist.ValueAtPercentile(99)
	return res
}
