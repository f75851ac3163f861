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

package localstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/localstore"
)

func TestSQLiteKV(t *testing.T) {
	t.Run("set get remove test", func(t *testing.T) {
		kv, err := localstore.OpenSQLiteKV(filepath.Join(t.TempDir(), "notebox.db"))
		assert.NoError(t, err)
		defer func() { assert.NoError(t, kv.Close()) }()

		_, ok, err := kv.Get("missing")
		assert.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, kv.Set("k", []byte("v1")))
		raw, ok, err := kv.Get("k")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v1"), raw)

		// overwrite
		assert.NoError(t, kv.Set("k", []byte("v2")))
		raw, _, err = kv.Get("k")
		assert.NoError(t, err)
		assert.Equal(t, []byte("v2"), raw)

		assert.NoError(t, kv.Remove("k"))
		_, ok, err = kv.Get("k")
		assert.NoError(t, err)
		assert.False(t, ok)

		// removing an absent key is not an error.
		assert.NoError(t, kv.Remove("k"))
	})

	t.Run("store survives reopen test", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notebox.db")
		k := draftKey(t)

		kv, err := localstore.OpenSQLiteKV(path)
		assert.NoError(t, err)
		store := localstore.New(kv)
		saved, err := store.Save(k, types.DraftPayload{Title: "durable"})
		assert.NoError(t, err)
		assert.NoError(t, kv.Close())

		kv, err = localstore.OpenSQLiteKV(path)
		assert.NoError(t, err)
		defer func() { assert.NoError(t, kv.Close()) }()

		store = localstore.New(kv)
		loaded, err := store.Load(k)
		assert.NoError(t, err)
		assert.Equal(t, &saved, loaded)

		entries, err := store.History(k)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
