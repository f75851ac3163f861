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

package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/notebox-team/notebox/server/backend"
	"github.com/notebox-team/notebox/server/backend/database/mongo"
	"github.com/notebox-team/notebox/server/backend/housekeeping"
	"github.com/notebox-team/notebox/server/profiling"
)

// Below are the default values of the Notebox server config.
const (
	DefaultProfilingPort = 8081

	DefaultHousekeepingInterval   = time.Minute
	DefaultPresenceLivenessWindow = 30 * time.Second

	DefaultMongoConnectionURI     = "mongodb://localhost:27017"
	DefaultMongoConnectionTimeout = 5 * time.Second
	DefaultMongoPingTimeout       = 5 * time.Second
	DefaultMongoNoteboxDatabase   = "notebox-meta"
)

// Config is the configuration for creating a Notebox server instance.
type Config struct {
	Profiling    *profiling.Config    `yaml:"Profiling"`
	Housekeeping *housekeeping.Config `yaml:"Housekeeping"`
	Backend      *backend.Config      `yaml:"Backend"`
	Mongo        *mongo.Config        `yaml:"Mongo"`
}

// NewConfig returns a Config with reasonable defaults.
func NewConfig() *Config {
	conf := &Config{}
	conf.ensureDefaultValue()
	return conf
}

// NewConfigFromFile returns a Config loaded from the given yaml file.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// Validate returns an error if the given config is invalid.
func (c *Config) Validate() error {
	if err := c.Profiling.Validate(); err != nil {
		return err
	}

	if err := c.Housekeeping.Validate(); err != nil {
		return err
	}

	if err := c.Backend.Validate(); err != nil {
		return err
	}

	if c.Mongo != nil {
		if err := c.Mongo.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ensureDefaultValue fills empty fields with defaults. Fields set by flags
// or the config file win.
func (c *Config) ensureDefaultValue() {
	if c.Profiling == nil {
		c.Profiling = &profiling.Config{}
	}
	if c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}

	if c.Housekeeping == nil {
		c.Housekeeping = &housekeeping.Config{}
	}
	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = DefaultHousekeepingInterval.String()
	}
	if c.Housekeeping.PresenceLivenessWindow == "" {
		c.Housekeeping.PresenceLivenessWindow = DefaultPresenceLivenessWindow.String()
	}

	if c.Backend == nil {
		c.Backend = &backend.Config{}
	}
	if c.Backend.PresenceLivenessWindow == "" {
		c.Backend.PresenceLivenessWindow = DefaultPresenceLivenessWindow.String()
	}

	if c.Mongo != nil {
		if c.Mongo.ConnectionURI == "" {
			c.Mongo.ConnectionURI = DefaultMongoConnectionURI
		}
		if c.Mongo.ConnectionTimeout == "" {
			c.Mongo.ConnectionTimeout = DefaultMongoConnectionTimeout.String()
		}
		if c.Mongo.NoteboxDatabase == "" {
			c.Mongo.NoteboxDatabase = DefaultMongoNoteboxDatabase
		}
		if c.Mongo.PingTimeout == "" {
			c.Mongo.PingTimeout = DefaultMongoPingTimeout.String()
		}
	}
}
