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

// Package backend provides the collaborator stores of the Notebox server:
// the remote draft store, the presence store and the change-event hub.
package backend

import (
	"fmt"

	"github.com/notebox-team/notebox/server/backend/database"
	"github.com/notebox-team/notebox/server/backend/database/memory"
	"github.com/notebox-team/notebox/server/backend/database/mongo"
	"github.com/notebox-team/notebox/server/backend/housekeeping"
	"github.com/notebox-team/notebox/server/backend/pubsub"
	"github.com/notebox-team/notebox/server/logging"
	"github.com/notebox-team/notebox/server/profiling/prometheus"
)

// Backend bundles the resources used by the draft service. All its members
// are safe for concurrent use.
type Backend struct {
	Config  *Config
	DB      database.Database
	PubSub  *pubsub.PubSub
	Metrics *prometheus.Metrics

	housekeeping *housekeeping.Housekeeping
}

// New creates a new instance of Backend. When mongoConf is nil the backend
// runs on the in-memory database.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	housekeepingConf *housekeeping.Config,
	metrics *prometheus.Metrics,
) (*Backend, error) {
	var db database.Database
	var err error
	if mongoConf != nil {
		db, err = mongo.Dial(mongoConf)
		if err != nil {
			return nil, err
		}
	} else {
		db, err = memory.New()
		if err != nil {
			return nil, err
		}
	}

	keeping, err := housekeeping.Start(housekeepingConf, db, metrics)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.DefaultLogger().Error(closeErr)
		}
		return nil, err
	}

	return &Backend{
		Config:  conf,
		DB:      db,
		PubSub:  pubsub.New(),
		Metrics: metrics,

		housekeeping: keeping,
	}, nil
}

// Shutdown closes all resources of this backend.
func (b *Backend) Shutdown() error {
	if err := b.housekeeping.Stop(); err != nil {
		return err
	}

	if err := b.DB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	return nil
}

// Housekeeping returns the housekeeping service of this backend.
func (b *Backend) Housekeeping() *housekeeping.Housekeeping {
	return b.housekeeping
}
