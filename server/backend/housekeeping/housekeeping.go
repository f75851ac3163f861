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

// Package housekeeping provides the housekeeping service. It periodically
// purges presence records whose editors stopped heartbeating without a
// leave call, which is the authoritative cleanup for fire-and-forget exits.
package housekeeping

import (
	"context"
	"time"

	"github.com/notebox-team/notebox/server/backend/database"
	"github.com/notebox-team/notebox/server/logging"
	"github.com/notebox-team/notebox/server/profiling/prometheus"
)

// Housekeeping is the housekeeping service.
type Housekeeping struct {
	database database.Database
	metrics  *prometheus.Metrics

	interval       time.Duration
	livenessWindow time.Duration

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a new housekeeping instance.
func New(
	conf *Config,
	database database.Database,
	metrics *prometheus.Metrics,
) (*Housekeeping, error) {
	interval, err := conf.ParseInterval()
	if err != nil {
		return nil, err
	}

	window, err := conf.ParseLivenessWindow()
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())

	return &Housekeeping{
		database: database,
		metrics:  metrics,

		interval:       interval,
		livenessWindow: window,

		ctx:        ctx,
		cancelFunc: cancelFunc,
	}, nil
}

// Start starts the housekeeping service.
func Start(
	conf *Config,
	database database.Database,
	metrics *prometheus.Metrics,
) (*Housekeeping, error) {
	h, err := New(conf, database, metrics)
	if err != nil {
		return nil, err
	}
	if err := h.Start(); err != nil {
		return nil, err
	}

	return h, nil
}

// Start starts the housekeeping loop.
func (h *Housekeeping) Start() error {
	go h.run()
	return nil
}

// Stop stops the housekeeping loop.
func (h *Housekeeping) Stop() error {
	h.cancelFunc()
	return nil
}

func (h *Housekeeping) run() {
	for {
		select {
		case <-time.After(h.interval):
		case <-h.ctx.Done():
			return
		}

		ctx := context.Background()
		if err := h.PurgeStalePresences(ctx); err != nil {
			logging.From(ctx).Error(err)
		}
	}
}

// PurgeStalePresences removes presence records that outlived the liveness
// window.
func (h *Housekeeping) PurgeStalePresences(ctx context.Context) error {
	purged, err := h.database.PurgeStalePresences(ctx, time.Now().Add(-h.livenessWindow))
	if err != nil {
		return err
	}

	if purged > 0 {
		if h.metrics != nil {
			h.metrics.AddStalePresencesPurged(purged)
		}
		logging.From(ctx).Infof("HSKP: purged %d stale presences", purged)
	}

	return nil
}
