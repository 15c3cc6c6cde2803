package monitor

import (
	"sync"
	"time"
)

// NoData marks a missing measurement: a failed probe in the sample history,
// or a statistic that has no successful sample to draw from.
const NoData int64 = -1

// Tail fractions for the winsorized average: the fastest 5% and the slowest
// 10% of samples are clamped before the mean is taken.
const (
	lowerTail = 0.05
	upperTail = 0.10
)

// Region holds the sample history for a single probe target. Samples are
// appended by exactly one worker, reads may happen concurrently.
type Region struct {
	id   string
	name string
	url  string

	mu       sync.RWMutex
	samples  []int64 // RTT in ms per cycle, NoData for failed probes
	failures int
}

// NewRegion creates a region. The probe address is fixed for the lifetime of
// the region.
func NewRegion(id, name, url string) *Region {
	return &Region{id: id, name: name, url: url}
}

// ID returns the region identifier.
func (r *Region) ID() string { return r.id }

// Name returns the human readable region name.
func (r *Region) Name() string { return r.name }

// URL returns the base address probes are sent to.
func (r *Region) URL() string { return r.url }

// Observe appends a successful round trip measurement to the history.
func (r *Region) Observe(rtt time.Duration) {
	r.mu.Lock()
	r.samples = append(r.samples, rtt.Milliseconds())
	r.mu.Unlock()
}

// ObserveFailure appends the NoData sentinel, so one sample is recorded for
// every completed cycle even when the probe failed.
func (r *Region) ObserveFailure() {
	r.mu.Lock()
	r.samples = append(r.samples, NoData)
	r.failures++
	r.mu.Unlock()
}

// Current returns the last recorded sample, NoData before the first probe.
func (r *Region) Current() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current()
}

// Average returns the winsorized mean over all successful samples, NoData if
// none succeeded yet. It is recomputed from the full history on every call.
func (r *Region) Average() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.average()
}

// Count returns the number of recorded samples, failed probes included.
func (r *Region) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.samples)
}

// Snapshot derives all statistics in one consistent view.
func (r *Region) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Snapshot{
		ID:       r.id,
		Name:     r.name,
		Current:  r.current(),
		Average:  r.average(),
		Count:    len(r.samples),
		Failures: r.failures,
	}
}

func (r *Region) current() int64 {
	if len(r.samples) == 0 {
		return NoData
	}

	return r.samples[len(r.samples)-1]
}

func (r *Region) average() int64 {
	ok := make([]int64, 0, len(r.samples))
	for _, s := range r.samples {
		if s != NoData {
			ok = append(ok, s)
		}
	}
	if len(ok) == 0 {
		return NoData
	}

	var sum int64
	for _, v := range Winsorize(ok, lowerTail, upperTail) {
		sum += v
	}

	return sum / int64(len(ok))
}
