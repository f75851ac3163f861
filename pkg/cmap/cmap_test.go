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

package cmap_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notebox-team/notebox/pkg/cmap"
)

func TestMap(t *testing.T) {
	t.Run("set get delete test", func(t *testing.T) {
		m := cmap.New[string, int]()

		m.Set("a", 1)
		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		_, ok = m.Get("b")
		assert.False(t, ok)

		removed := m.Delete("a", func(v int, exists bool) bool { return exists })
		assert.True(t, removed)
		_, ok = m.Get("a")
		assert.False(t, ok)

		removed = m.Delete("a", func(v int, exists bool) bool { return exists })
		assert.False(t, removed)
	})

	t.Run("upsert test", func(t *testing.T) {
		m := cmap.New[string, int]()

		v := m.Upsert("counter", func(v int, exists bool) int {
			assert.False(t, exists)
			return 1
		})
		assert.Equal(t, 1, v)

		v = m.Upsert("counter", func(v int, exists bool) int {
			assert.True(t, exists)
			return v + 1
		})
		assert.Equal(t, 2, v)
	})

	t.Run("conditional delete test", func(t *testing.T) {
		m := cmap.New[string, int]()
		m.Set("keep", 10)

		removed := m.Delete("keep", func(v int, exists bool) bool { return v == 0 })
		assert.False(t, removed)

		v, ok := m.Get("keep")
		assert.True(t, ok)
		assert.Equal(t, 10, v)
	})

	t.Run("concurrent access test", func(t *testing.T) {
		m := cmap.New[string, int]()

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("key-%d", i%10)
				m.Upsert(key, func(v int, exists bool) int { return v + 1 })
				m.Get(key)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, m.Len())

		total := 0
		for _, v := range m.Values() {
			total += v
		}
		assert.Equal(t, 100, total)
	})
}
