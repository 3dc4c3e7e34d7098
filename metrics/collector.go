// Package metrics exports table occupancy and resize counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/theflywheel/dhash"
)

// StatsSource is implemented by dhash.Table, dhash.Locked and dhash.Sharded.
// A bare Table must not be collected while another goroutine mutates it.
type StatsSource interface {
	Stats() dhash.Stats
}

// Collector reads Stats on every scrape.
type Collector struct {
	src StatsSource

	entries    *prometheus.Desc
	capacity   *prometheus.Desc
	tombstones *prometheus.Desc
	grows      *prometheus.Desc
	shrinks    *prometheus.Desc
	rehashes   *prometheus.Desc
}

// NewCollector returns a collector whose metric names are prefixed with namespace.
func NewCollector(namespace string, src StatsSource) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		src:        src,
		entries:    desc("entries", "Number of live entries."),
		capacity:   desc("capacity", "Number of buckets."),
		tombstones: desc("tombstones", "Number of deleted buckets awaiting a rebuild."),
		grows:      desc("grows_total", "Total number of times the table grew."),
		shrinks:    desc("shrinks_total", "Total number of times the table shrank."),
		rehashes:   desc("rehashes_total", "Total number of same-size rebuilds to drop tombstones."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
	ch <- c.tombstones
	ch <- c.grows
	ch <- c.shrinks
	ch <- c.rehashes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(st.Count))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity))
	ch <- prometheus.MustNewConstMetric(c.tombstones, prometheus.GaugeValue, float64(st.Tombstones))
	ch <- prometheus.MustNewConstMetric(c.grows, prometheus.CounterValue, float64(st.Grows))
	ch <- prometheus.MustNewConstMetric(c.shrinks, prometheus.CounterValue, float64(st.Shrinks))
	ch <- prometheus.MustNewConstMetric(c.rehashes, prometheus.CounterValue, float64(st.Rehashes))
}
