// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus instruments updated by the registry.
//
// Device errors are never shown to the operator, so these counters are the
// only record of how often writes and reads fail.
type Metrics struct {
	adjustments    *prometheus.CounterVec
	writeDuration  prometheus.Histogram
	reads          *prometheus.CounterVec
	drift          prometheus.Counter
	resyncDuration prometheus.Histogram
	devices        prometheus.Gauge
	controls       prometheus.Gauge
}

// NewMetrics creates the registry instruments and registers them with reg.
// A nil reg creates unregistered instruments.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		adjustments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "camctl_adjustments_total",
			Help: "Control adjustments by outcome (committed, failed, at_bound, no_control).",
		}, []string{"outcome"}),
		writeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "camctl_control_write_duration_seconds",
			Help:    "Duration of control writes issued by adjustments.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		reads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "camctl_resync_reads_total",
			Help: "Control reads performed by resync, by result.",
		}, []string{"result"}),
		drift: factory.NewCounter(prometheus.CounterOpts{
			Name: "camctl_resync_drift_total",
			Help: "Reads whose value differed from the last known value.",
		}),
		resyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "camctl_resync_duration_seconds",
			Help:    "Duration of a full resync pass.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		devices: factory.NewGauge(prometheus.GaugeOpts{
			Name: "camctl_devices",
			Help: "Devices bound at discovery.",
		}),
		controls: factory.NewGauge(prometheus.GaugeOpts{
			Name: "camctl_controls",
			Help: "Adjustable controls bound at discovery.",
		}),
	}
}
