package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/czerwonk/cloudping/monitor"
)

const prefix = "cloudping_"

var labelNames = []string{"region", "name"}

// regionCollector exposes the statistics of the probed regions. It reads
// live region state, so a scrape during a cycle sees the samples recorded so
// far.
type regionCollector struct {
	regions []*monitor.Region

	current  scaledMetrics
	mean     scaledMetrics
	probes   *prometheus.Desc
	failures *prometheus.Desc
}

func newRegionCollector(regions []*monitor.Region, scale rttUnit) *regionCollector {
	return &regionCollector{
		regions:  regions,
		current:  newScaledDesc("rtt_current", "Round trip time of the last probe", scale, labelNames),
		mean:     newScaledDesc("rtt_mean", "Winsorized mean round trip time", scale, labelNames),
		probes:   newDesc("probes_total", "Number of probes sent, failed ones included", labelNames, nil),
		failures: newDesc("failures_total", "Number of failed probes", labelNames, nil),
	}
}

func newDesc(name, help string, variableLabels []string, constLabels prometheus.Labels) *prometheus.Desc {
	return prometheus.NewDesc(prefix+name, help, variableLabels, constLabels)
}

func (c *regionCollector) Describe(ch chan<- *prometheus.Desc) {
	c.current.Describe(ch)
	c.mean.Describe(ch)
	ch <- c.probes
	ch <- c.failures
}

func (c *regionCollector) Collect(ch chan<- prometheus.Metric) {
	for _, r := range c.regions {
		s := r.Snapshot()
		l := []string{s.ID, s.Name}

		c.current.Collect(ch, s.Current, l...)
		c.mean.Collect(ch, s.Average, l...)
		ch <- prometheus.MustNewConstMetric(c.probes, prometheus.CounterValue, float64(s.Count), l...)
		ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures), l...)
	}
}
