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

package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/notebox-team/notebox/server"
)

func TestNewConfigFromFile(t *testing.T) {
	t.Run("fail read config file test", func(t *testing.T) {
		conf := server.NewConfig()
		_, err := server.NewConfigFromFile("nowhere.yml")
		assert.Error(t, err)

		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)
		assert.False(t, conf.Profiling.EnablePprof)

		interval, err := conf.Housekeeping.ParseInterval()
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultHousekeepingInterval, interval)

		window, err := conf.Housekeeping.ParseLivenessWindow()
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultPresenceLivenessWindow, window)

		assert.Equal(t, server.DefaultPresenceLivenessWindow, conf.Backend.ParseLivenessWindow())
		assert.Nil(t, conf.Mongo)
		assert.NoError(t, conf.Validate())
	})

	t.Run("read config file test", func(t *testing.T) {
		conf, err := server.NewConfigFromFile("../config.sample.yml")
		assert.NoError(t, err)
		assert.NoError(t, conf.Validate())

		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)

		interval, err := conf.Housekeeping.ParseInterval()
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultHousekeepingInterval, interval)

		assert.NotNil(t, conf.Mongo)
		connTimeout, err := time.ParseDuration(conf.Mongo.ConnectionTimeout)
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultMongoConnectionTimeout, connTimeout)
		assert.Equal(t, server.DefaultMongoConnectionURI, conf.Mongo.ConnectionURI)
		assert.Equal(t, server.DefaultMongoNoteboxDatabase, conf.Mongo.NoteboxDatabase)

		pingTimeout, err := time.ParseDuration(conf.Mongo.PingTimeout)
		assert.NoError(t, err)
		assert.Equal(t, server.DefaultMongoPingTimeout, pingTimeout)
	})

	t.Run("invalid config test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.Backend.PresenceLivenessWindow = "not-a-duration"
		assert.Error(t, conf.Validate())

		conf = server.NewConfig()
		conf.Profiling.Port = -1
		assert.Error(t, conf.Validate())
	})
}
