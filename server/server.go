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

// Package server provides the Notebox collaboration backend. The backend is
// embedded in-process by the host application; it owns the stores, the
// change-event hub, housekeeping and the profiling endpoint.
package server

import (
	"github.com/notebox-team/notebox/server/backend"
	"github.com/notebox-team/notebox/server/drafts"
	"github.com/notebox-team/notebox/server/logging"
	"github.com/notebox-team/notebox/server/profiling"
	"github.com/notebox-team/notebox/server/profiling/prometheus"
)

// Notebox is the embeddable collaboration backend.
type Notebox struct {
	conf *Config

	backend         *backend.Backend
	drafts          *drafts.Service
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Notebox.
func New(conf *Config) (*Notebox, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(conf.Backend, conf.Mongo, conf.Housekeeping, metrics)
	if err != nil {
		return nil, err
	}

	return &Notebox{
		conf: conf,

		backend:         be,
		drafts:          drafts.New(be),
		profilingServer: profiling.NewServer(conf.Profiling, metrics),

		shutdownCh: make(chan struct{}),
	}, nil
}

// Start starts the server.
func (n *Notebox) Start() error {
	if err := n.profilingServer.Start(); err != nil {
		return err
	}

	logging.DefaultLogger().Info("server started")
	return nil
}

// Shutdown shuts down this server.
func (n *Notebox) Shutdown(graceful bool) error {
	if n.shutdown {
		return nil
	}
	n.shutdown = true

	n.profilingServer.Shutdown(graceful)

	if err := n.backend.Shutdown(); err != nil {
		return err
	}

	close(n.shutdownCh)
	logging.DefaultLogger().Info("server stopped")
	return nil
}

// ShutdownCh returns the channel closed on shutdown.
func (n *Notebox) ShutdownCh() <-chan struct{} {
	return n.shutdownCh
}

// Drafts returns the draft service. Editing sessions wire their remote
// stores to this service.
func (n *Notebox) Drafts() *drafts.Service {
	return n.drafts
}

// Backend returns the backend of this server.
func (n *Notebox) Backend() *backend.Backend {
	return n.backend
}
