// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/juju/gamejolt/request"
)

const metricsNamespace = "gamejolt_client"

// Outcome labels recorded against requests_total.
const (
	OutcomeReceived  = "received"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Collector is a prometheus.Collector that collects metrics about
// calls dispatched by a Client. A nil Collector records nothing.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	batchSize       prometheus.Histogram
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "The number of calls by endpoint and terminal outcome.",
			}, []string{"endpoint", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "The time taken by the HTTP exchange of a call.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			}, []string{"endpoint"},
		),
		batchSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "batch_size",
				Help:      "The number of sub-requests in each batch call.",
				Buckets:   []float64{1, 2, 5, 10, 20, 50},
			},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.requestDuration.Describe(ch)
	c.batchSize.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.requestDuration.Collect(ch)
	c.batchSize.Collect(ch)
}

func (c *Collector) outcome(endpoint request.Endpoint, outcome string) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(endpoint.String(), outcome).Inc()
}

func (c *Collector) duration(endpoint request.Endpoint, d time.Duration) {
	if c == nil {
		return
	}
	c.requestDuration.WithLabelValues(endpoint.String()).Observe(d.Seconds())
}

func (c *Collector) batch(size int) {
	if c == nil {
		return
	}
	c.batchSize.Observe(float64(size))
}
