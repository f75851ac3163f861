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

// Package cmap provides a concurrent map safe for multiple goroutines. It is
// sharded to reduce lock contention on hot keys.
package cmap

import (
	"fmt"
	"hash/fnv"
	"sync"
)

const numShards = 16

type shard[K comparable, V any] struct {
	sync.RWMutex
	items map[K]V
}

// Map is a sharded concurrent map.
type Map[K comparable, V any] struct {
	shards [numShards]shard[K, V]
}

// New creates a new Map.
func New[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{}
	for i := range m.shards {
		m.shards[i].items = make(map[K]V)
	}
	return m
}

func (m *Map[K, V]) shardFor(key K) *shard[K, V] {
	hash := fnv.New32a()
	switch k := any(key).(type) {
	case string:
		_, _ = hash.Write([]byte(k))
	default:
		_, _ = fmt.Fprintf(hash, "%v", key)
	}
	return &m.shards[hash.Sum32()%numShards]
}

// Set sets the value for the given key.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.shardFor(key)

	s.Lock()
	defer s.Unlock()

	s.items[key] = value
}

// Get returns the value for the given key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.shardFor(key)

	s.RLock()
	defer s.RUnlock()

	v, ok := s.items[key]
	return v, ok
}

// UpsertFunc receives the current value (zero value if absent) and whether
// the key exists, and returns the value to store.
type UpsertFunc[V any] func(value V, exists bool) V

// Upsert atomically inserts or updates the value for the given key.
func (m *Map[K, V]) Upsert(key K, fn UpsertFunc[V]) V {
	s := m.shardFor(key)

	s.Lock()
	defer s.Unlock()

	v, exists := s.items[key]
	res := fn(v, exists)
	s.items[key] = res
	return res
}

// DeleteFunc decides whether the key should be removed given its current
// value and whether it exists.
type DeleteFunc[V any] func(value V, exists bool) bool

// Delete removes the key if the given function returns true. It reports
// whether the key was removed.
func (m *Map[K, V]) Delete(key K, fn DeleteFunc[V]) bool {
	s := m.shardFor(key)

	s.Lock()
	defer s.Unlock()

	v, exists := s.items[key]
	if !fn(v, exists) {
		return false
	}

	delete(s.items, key)
	return exists
}

// Values returns a snapshot of all values in the map.
func (m *Map[K, V]) Values() []V {
	var values []V
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		for _, v := range s.items {
			values = append(values, v)
		}
		s.RUnlock()
	}
	return values
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	count := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		count += len(s.items)
		s.RUnlock()
	}
	return count
}
