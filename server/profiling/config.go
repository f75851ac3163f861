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

package profiling

import "fmt"

// Config is the configuration for the profiling server.
type Config struct {
	// Port is the port to serve metrics and pprof on.
	Port int `yaml:"Port"`

	// EnablePprof decides whether pprof handlers are exposed.
	EnablePprof bool `yaml:"EnablePprof"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf(
			`invalid argument %d for "--profiling-port" flag`,
			c.Port,
		)
	}

	return nil
}
