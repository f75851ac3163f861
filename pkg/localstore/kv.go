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

// Package localstore provides the local durability store of the editing
// session: the synchronous key-value storage the editor reopens against,
// and a bounded history of saved draft versions. All remote stores are
// best-effort mirrors of this one.
package localstore

import "sync"

// KV is a synchronous process-local key-value storage.
type KV interface {
	// Get returns the value of the given key and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set stores the value under the given key, overwriting any previous one.
	Set(key string, value []byte) error

	// Remove deletes the given key. Removing an absent key is not an error.
	Remove(key string) error
}

// MemoryKV is a map-backed KV for tests and ephemeral sessions.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryKV creates a new MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string][]byte)}
}

// Get returns the value of the given key.
func (kv *MemoryKV) Get(key string) ([]byte, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	v, ok := kv.items[key]
	if !ok {
		return nil, false, nil
	}

	clone := make([]byte, len(v))
	copy(clone, v)
	return clone, true, nil
}

// Set stores the value under the given key.
func (kv *MemoryKV) Set(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	clone := make([]byte, len(value))
	copy(clone, value)
	kv.items[key] = clone
	return nil
}

// Remove deletes the given key.
func (kv *MemoryKV) Remove(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.items, key)
	return nil
}
