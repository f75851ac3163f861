/*
 * Copyright 2026 The Notebox Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/notebox-team/notebox/internal/version"
)

const (
	namespace          = "notebox"
	eventTypeLabel     = "event_type"
	serverVersionLabel = "server_version"
)

// Metrics manages the metric information that Notebox measures.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	draftsSavedTotal          prometheus.Counter
	heartbeatsTotal           prometheus.Counter
	presenceLeavesTotal       prometheus.Counter
	eventsPublishedTotal      *prometheus.CounterVec
	stalePresencesPurgedTotal prometheus.Counter
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{serverVersionLabel}),
		draftsSavedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "drafts",
			Name:      "saved_total",
			Help:      "Total number of draft versions written to the remote store.",
		}),
		heartbeatsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "presence",
			Name:      "heartbeats_total",
			Help:      "Total number of presence heartbeats received.",
		}),
		presenceLeavesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "presence",
			Name:      "leaves_total",
			Help:      "Total number of explicit presence leave calls.",
		}),
		eventsPublishedTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pubsub",
			Name:      "events_published_total",
			Help:      "Total number of draft events published, by event type.",
		}, []string{eventTypeLabel}),
		stalePresencesPurgedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "housekeeping",
			Name:      "stale_presences_purged_total",
			Help:      "Total number of stale presence records purged.",
		}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		serverVersionLabel: version.Version,
	}).Set(1)

	return metrics, nil
}

// AddDraftSaved increments the count of drafts written to the remote store.
func (m *Metrics) AddDraftSaved() {
	m.draftsSavedTotal.Inc()
}

// AddHeartbeat increments the count of received heartbeats.
func (m *Metrics) AddHeartbeat() {
	m.heartbeatsTotal.Inc()
}

// AddPresenceLeave increments the count of explicit leave calls.
func (m *Metrics) AddPresenceLeave() {
	m.presenceLeavesTotal.Inc()
}

// AddEventPublished increments the count of published events of the type.
func (m *Metrics) AddEventPublished(eventType string) {
	m.eventsPublishedTotal.With(prometheus.Labels{
		eventTypeLabel: eventType,
	}).Inc()
}

// AddStalePresencesPurged adds to the count of purged presence records.
func (m *Metrics) AddStalePresencesPurged(count int) {
	m.stalePresencesPurgedTotal.Add(float64(count))
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
