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

package backend

import (
	"fmt"
	"time"
)

// Config is the configuration for creating a Backend instance.
type Config struct {
	// PresenceLivenessWindow is the age beyond which roster readers treat a
	// presence record as stale. Kept at 2-3x the clients' heartbeat interval
	// so presence does not flap.
	PresenceLivenessWindow string `yaml:"PresenceLivenessWindow"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.PresenceLivenessWindow); err != nil {
		return fmt.Errorf(
			`invalid argument %s for "--presence-liveness-window" flag: %w`,
			c.PresenceLivenessWindow,
			err,
		)
	}

	return nil
}

// ParseLivenessWindow returns the liveness window as a duration.
func (c *Config) ParseLivenessWindow() time.Duration {
	window, err := time.ParseDuration(c.PresenceLivenessWindow)
	if err != nil {
		panic(err)
	}

	return window
}
