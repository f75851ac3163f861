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

package housekeeping

import (
	"fmt"
	"time"
)

// Config is the configuration for the housekeeping service.
type Config struct {
	// Interval is the time between housekeeping runs.
	Interval string `yaml:"Interval"`

	// PresenceLivenessWindow is the age beyond which a presence record is
	// purged. Roster readers treat records older than this as stale before
	// housekeeping ever runs; purging is the eventual cleanup.
	PresenceLivenessWindow string `yaml:"PresenceLivenessWindow"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Interval); err != nil {
		return fmt.Errorf(
			`invalid argument %s for "--housekeeping-interval" flag: %w`,
			c.Interval,
			err,
		)
	}

	if _, err := time.ParseDuration(c.PresenceLivenessWindow); err != nil {
		return fmt.Errorf(
			`invalid argument %s for "--presence-liveness-window" flag: %w`,
			c.PresenceLivenessWindow,
			err,
		)
	}

	return nil
}

// ParseInterval returns the interval as a duration.
func (c *Config) ParseInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("parse interval %s: %w", c.Interval, err)
	}

	return interval, nil
}

// ParseLivenessWindow returns the liveness window as a duration.
func (c *Config) ParseLivenessWindow() (time.Duration, error) {
	window, err := time.ParseDuration(c.PresenceLivenessWindow)
	if err != nil {
		return 0, fmt.Errorf("parse liveness window %s: %w", c.PresenceLivenessWindow, err)
	}

	return window, nil
}
