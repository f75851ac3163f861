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

package client

import (
	"sync"

	"github.com/notebox-team/notebox/api/types"
)

// Conflict holds at most one pending remote draft version until the local
// editor applies or discards it. A newer remote version replaces the
// pending one; no field-level merging is attempted.
type Conflict struct {
	mu      sync.Mutex
	pending *types.RemoteDraftRecord
}

// NewConflict creates an empty conflict slot.
func NewConflict() *Conflict {
	return &Conflict{}
}

// Put sets the pending record, superseding any previous one.
func (c *Conflict) Put(record types.RemoteDraftRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = &record
}

// Pending returns the pending record without clearing it.
func (c *Conflict) Pending() (types.RemoteDraftRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return types.RemoteDraftRecord{}, false
	}

	return *c.pending, true
}

// Take returns the pending record and clears the slot.
func (c *Conflict) Take() (types.RemoteDraftRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return types.RemoteDraftRecord{}, false
	}

	record := *c.pending
	c.pending = nil
	return record, true
}

// Dismiss clears the slot without applying the pending record.
func (c *Conflict) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = nil
}
