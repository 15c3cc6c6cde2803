package monitor

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Reporter renders the per-region statistics after each completed cycle.
type Reporter interface {
	Report(snapshots []Snapshot)
}

// Monitor manages the goroutines responsible for probing a fixed set of
// regions. All probes of a cycle are in flight at once, one worker per
// region, and the reporter only runs after the whole cycle has joined.
// Workers live for the duration of a Run.
type Monitor struct {
	prober   Prober
	reporter Reporter
	regions  []*Region
	interval time.Duration

	kicks   []chan struct{}
	cycle   sync.WaitGroup
	workers sync.WaitGroup
}

// New creates a monitor probing the given regions once per cycle.
func New(prober Prober, reporter Reporter, regions []*Region, interval time.Duration) *Monitor {
	return &Monitor{
		prober:   prober,
		reporter: reporter,
		regions:  regions,
		interval: interval,
	}
}

// Regions returns the monitored region set.
func (m *Monitor) Regions() []*Region {
	return m.regions
}

// Run probes all regions once per cycle and reports after every join. With
// cycles 0 it runs until ctx is cancelled. Cancellation is honoured between
// cycles, never while probes are in flight.
func (m *Monitor) Run(ctx context.Context, cycles int) {
	m.start()
	defer m.stop()

	for done := 0; ; {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m.runCycle()
		done++
		log.Debugf("cycle %d complete", done)

		m.reporter.Report(m.snapshots())

		if cycles > 0 && done >= cycles {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(m.interval):
		}
	}
}

func (m *Monitor) start() {
	m.kicks = make([]chan struct{}, len(m.regions))
	for i, r := range m.regions {
		kick := make(chan struct{})
		m.kicks[i] = kick
		m.workers.Add(1)
		go m.work(r, kick)
	}
}

func (m *Monitor) stop() {
	for _, kick := range m.kicks {
		close(kick)
	}
	m.workers.Wait()
}

// work is the per-region worker loop: one probe per kick, the result recorded
// in the region's own history, completion signalled to the cycle barrier.
func (m *Monitor) work(r *Region, kick <-chan struct{}) {
	defer m.workers.Done()

	for range kick {
		m.probe(r)
		m.cycle.Done()
	}
}

func (m *Monitor) runCycle() {
	m.cycle.Add(len(m.regions))
	for _, kick := range m.kicks {
		kick <- struct{}{}
	}
	m.cycle.Wait()
}

func (m *Monitor) probe(r *Region) {
	rtt, err := m.prober.Probe(r.URL())
	if err != nil {
		log.Errorf("probe of %s failed: %v", r.ID(), err)
		r.ObserveFailure()
		return
	}

	r.Observe(rtt)
}

func (m *Monitor) snapshots() []Snapshot {
	snaps := make([]Snapshot, len(m.regions))
	for i, r := range m.regions {
		snaps[i] = r.Snapshot()
	}

	return snaps
}
