// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the playground.
//
// Metrics cover generation throughput and latency, DNA engine
// operations, and voice synthesis including cache effectiveness.
// Exposed on /metrics; all operations are thread-safe via Prometheus's
// internal locking.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "triplocal"

const playgroundSubsystem = "playground"

// PlaygroundMetrics holds all Prometheus metrics for the playground
// service. Initialize once at startup via InitMetrics().
type PlaygroundMetrics struct {
	// GenerationsTotal counts generation requests.
	// Labels: model, status (success, error)
	GenerationsTotal *prometheus.CounterVec

	// GenerationDurationSeconds measures end-to-end generation latency,
	// including the model runtime round trip.
	// Labels: model
	GenerationDurationSeconds *prometheus.HistogramVec

	// DNAOperationsTotal counts fingerprint engine calls made through
	// the API. Labels: operation (generate, decode, remix, mutate,
	// compatibility), status (success, invalid)
	DNAOperationsTotal *prometheus.CounterVec

	// VoiceSynthesisTotal counts voice synthesis attempts.
	// Labels: status (success, error)
	VoiceSynthesisTotal *prometheus.CounterVec

	// VoiceCacheHitsTotal counts audio cache hits and misses.
	// Labels: result (hit, miss)
	VoiceCacheHitsTotal *prometheus.CounterVec

	// ActiveGenerations tracks in-flight generation requests.
	ActiveGenerations prometheus.Gauge
}

// DefaultMetrics is the singleton instance of PlaygroundMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *PlaygroundMetrics

var initOnce sync.Once

// InitMetrics creates and registers all playground metrics. Safe to
// call more than once; registration happens on the first call only.
func InitMetrics() *PlaygroundMetrics {
	initOnce.Do(registerMetrics)
	return DefaultMetrics
}

func registerMetrics() {
	DefaultMetrics = &PlaygroundMetrics{
		GenerationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: playgroundSubsystem,
				Name:      "generations_total",
				Help:      "Total generation requests by model and status",
			},
			[]string{"model", "status"},
		),

		GenerationDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: playgroundSubsystem,
				Name:      "generation_duration_seconds",
				Help:      "End-to-end generation latency in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"model"},
		),

		DNAOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: playgroundSubsystem,
				Name:      "dna_operations_total",
				Help:      "Total DNA engine operations by type and status",
			},
			[]string{"operation", "status"},
		),

		VoiceSynthesisTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: playgroundSubsystem,
				Name:      "voice_synthesis_total",
				Help:      "Total voice synthesis attempts by status",
			},
			[]string{"status"},
		),

		VoiceCacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: playgroundSubsystem,
				Name:      "voice_cache_total",
				Help:      "Audio cache lookups by result",
			},
			[]string{"result"},
		),

		ActiveGenerations: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: playgroundSubsystem,
				Name:      "active_generations",
				Help:      "Number of in-flight generation requests",
			},
		),
	}
}

// RecordGeneration records a completed generation request.
func (m *PlaygroundMetrics) RecordGeneration(model string, seconds float64, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.GenerationsTotal.WithLabelValues(model, status).Inc()
	if success {
		m.GenerationDurationSeconds.WithLabelValues(model).Observe(seconds)
	}
}

// RecordDNAOperation records one fingerprint engine call.
func (m *PlaygroundMetrics) RecordDNAOperation(operation string, valid bool) {
	if m == nil {
		return
	}
	status := "success"
	if !valid {
		status = "invalid"
	}
	m.DNAOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordVoiceSynthesis records a synthesis attempt.
func (m *PlaygroundMetrics) RecordVoiceSynthesis(success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.VoiceSynthesisTotal.WithLabelValues(status).Inc()
}

// RecordVoiceCache records an audio cache lookup result.
func (m *PlaygroundMetrics) RecordVoiceCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.VoiceCacheHitsTotal.WithLabelValues(result).Inc()
}

// GenerationStarted increments the in-flight gauge.
func (m *PlaygroundMetrics) GenerationStarted() {
	if m == nil {
		return
	}
	m.ActiveGenerations.Inc()
}

// GenerationEnded decrements the in-flight gauge.
func (m *PlaygroundMetrics) GenerationEnded() {
	if m == nil {
		return
	}
	m.ActiveGenerations.Dec()
}
