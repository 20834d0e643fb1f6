// Package metrics aggregates per-test latencies for a run.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// histogram range: 1us to 60s, 3 significant digits
	minLatencyUs = 1
	maxLatencyUs = 60_000_000
)

// Recorder collects test durations, overall and per label.
type Recorder struct {
	mu         sync.RWMutex
	overall    *hdrhistogram.Histogram
	histograms map[string]*hdrhistogram.Histogram
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		overall:    hdrhistogram.New(minLatencyUs, maxLatencyUs, 3),
		histograms: make(map[string]*hdrhistogram.Histogram),
	}
}

// Record adds a duration under label and to the overall histogram.
func (r *Recorder) Record(label string, d time.Duration) {
	us := d.Microseconds()
	if us < minLatencyUs {
		us = minLatencyUs
	}
	if us > maxLatencyUs {
		us = maxLatencyUs
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.overall.RecordValue(us)
	if label != "" {
		h, ok := r.histograms[label]
		if !ok {
			h = hdrhistogram.New(minLatencyUs, maxLatencyUs, 3)
			r.histograms[label] = h
		}
		_ = h.RecordValue(us)
	}
}

// Count returns the number of recorded samples overall.
func (r *Recorder) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.overall.TotalCount()
}

// Percentile returns the overall latency at quantile q (e.g. 95.0).
func (r *Recorder) Percentile(q float64) time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return time.Duration(r.overall.ValueAtQuantile(q)) * time.Microsecond
}

// LabelPercentile returns the latency at quantile q for one label, or
// zero if the label has no samples.
func (r *Recorder) LabelPercentile(label string, q float64) time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.histograms[label]
	if !ok {
		return 0
	}
	return time.Duration(h.ValueAtQuantile(q)) * time.Microsecond
}

// Mean returns the overall mean latency.
func (r *Recorder) Mean() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return time.Duration(r.overall.Mean()) * time.Microsecond
}
