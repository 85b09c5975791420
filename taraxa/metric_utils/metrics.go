// Package metric_utils collects execution and commit telemetry.
package metric_utils

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeCommitted = "committed"
	OutcomeAborted   = "aborted"
	OutcomeFault     = "commit_fault"
)

type Collector struct {
	registry        *prometheus.Registry
	invocations     *prometheus.CounterVec
	commitLatency   prometheus.Histogram
	stagedWrites    prometheus.Histogram
	committedHeight prometheus.Gauge
	openContexts    prometheus.Gauge
}

// NewCollector creates the collector and registers it in its own registry.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "runtime_state"
	}
	c := &Collector{registry: prometheus.NewRegistry()}
	c.invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "execution",
			Name:      "invocations_total",
			Help:      "Finalized execution contexts by outcome",
		},
		[]string{"outcome"},
	)
	c.commitLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "state_db",
			Name:      "commit_seconds",
			Help:      "Latency of state commits",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)
	c.stagedWrites = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "execution",
			Name:      "staged_writes",
			Help:      "Number of writes merged per commit",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
	c.committedHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "state_db",
			Name:      "committed_height",
			Help:      "Block height of the last commit",
		},
	)
	c.openContexts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "execution",
			Name:      "open_contexts",
			Help:      "Contexts begun and not yet finalized",
		},
	)
	c.registry.MustRegister(c)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.invocations.Describe(ch)
	c.commitLatency.Describe(ch)
	c.stagedWrites.Describe(ch)
	c.committedHeight.Describe(ch)
	c.openContexts.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.invocations.Collect(ch)
	c.commitLatency.Collect(ch)
	c.stagedWrites.Collect(ch)
	c.committedHeight.Collect(ch)
	c.openContexts.Collect(ch)
}

// The methods below are nil-safe so callers can run without metrics.

func (c *Collector) RecordOutcome(outcome string) {
	if c != nil {
		c.invocations.WithLabelValues(outcome).Inc()
	}
}

func (c *Collector) RecordCommit(started time.Time, writes int, height uint64) {
	if c == nil {
		return
	}
	c.commitLatency.Observe(time.Since(started).Seconds())
	c.stagedWrites.Observe(float64(writes))
	c.committedHeight.Set(float64(height))
}

func (c *Collector) ContextOpened() {
	if c != nil {
		c.openContexts.Inc()
	}
}

func (c *Collector) ContextClosed() {
	if c != nil {
		c.openContexts.Dec()
	}
}
