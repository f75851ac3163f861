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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/pkg/localstore"
)

func draftKey(t *testing.T) key.Key {
	t.Helper()

	k, err := key.New("biology", "term-2", "cell-division", "explanation")
	assert.NoError(t, err)
	return k
}

func TestStore(t *testing.T) {
	t.Run("load absent draft test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV())

		payload, err := store.Load(draftKey(t))
		assert.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("read after write test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV())
		k := draftKey(t)

		saved, err := store.Save(k, types.DraftPayload{
			Title:   "Mitosis",
			Body:    "Cells divide.",
			Bullets: []string{"prophase", "metaphase"},
		})
		assert.NoError(t, err)
		assert.Positive(t, saved.SavedAt)

		loaded, err := store.Load(k)
		assert.NoError(t, err)
		assert.Equal(t, &saved, loaded)
	})

	t.Run("saved at monotonic test", func(t *testing.T) {
		now := time.UnixMilli(1000)
		store := localstore.New(
			localstore.NewMemoryKV(),
			localstore.WithClock(func() time.Time { return now }),
		)
		k := draftKey(t)

		first, err := store.Save(k, types.DraftPayload{Title: "a"})
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), first.SavedAt)

		// a clock running backwards must not move savedAt back.
		now = time.UnixMilli(500)
		second, err := store.Save(k, first)
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), second.SavedAt)

		now = time.UnixMilli(2000)
		third, err := store.Save(k, second)
		assert.NoError(t, err)
		assert.Equal(t, int64(2000), third.SavedAt)
	})

	t.Run("history capacity test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV())
		k := draftKey(t)

		for i := 0; i < localstore.DefaultHistoryCapacity+3; i++ {
			_, err := store.Save(k, types.DraftPayload{Title: fmt.Sprintf("v%d", i)})
			assert.NoError(t, err)
		}

		entries, err := store.History(k)
		assert.NoError(t, err)
		assert.Len(t, entries, localstore.DefaultHistoryCapacity)

		// most recent first.
		assert.Equal(t, "v7", entries[0].Payload.Title)
		assert.Equal(t, "v3", entries[len(entries)-1].Payload.Title)
	})

	t.Run("history entry out of range test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV())
		k := draftKey(t)

		_, err := store.Save(k, types.DraftPayload{Title: "only"})
		assert.NoError(t, err)

		_, err = store.Entry(k, 1)
		assert.ErrorIs(t, err, localstore.ErrHistoryIndexOutOfRange)
		_, err = store.Entry(k, -1)
		assert.ErrorIs(t, err, localstore.ErrHistoryIndexOutOfRange)

		entry, err := store.Entry(k, 0)
		assert.NoError(t, err)
		assert.Equal(t, "only", entry.Payload.Title)
	})

	t.Run("restore then save round trip test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV())
		k := draftKey(t)

		_, err := store.Save(k, types.DraftPayload{Title: "old", Body: "keep me"})
		assert.NoError(t, err)
		_, err = store.Save(k, types.DraftPayload{Title: "new"})
		assert.NoError(t, err)

		entry, err := store.Entry(k, 1)
		assert.NoError(t, err)
		assert.Equal(t, "old", entry.Payload.Title)

		saved, err := store.Save(k, entry.Payload)
		assert.NoError(t, err)
		assert.Equal(t, "old", saved.Title)
		assert.Equal(t, "keep me", saved.Body)

		loaded, err := store.Load(k)
		assert.NoError(t, err)
		assert.Equal(t, "old", loaded.Title)
	})

	t.Run("clear retains history test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV())
		k := draftKey(t)

		_, err := store.Save(k, types.DraftPayload{Title: "draft"})
		assert.NoError(t, err)

		assert.NoError(t, store.Clear(k))

		payload, err := store.Load(k)
		assert.NoError(t, err)
		assert.Nil(t, payload)

		entries, err := store.History(k)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)

		assert.NoError(t, store.ClearHistory(k))
		entries, err = store.History(k)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("keys do not leak into each other test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV())
		k1 := draftKey(t)
		k2, err := key.New("biology", "term-2", "cell-division", "flashcard")
		assert.NoError(t, err)

		_, err = store.Save(k1, types.DraftPayload{Title: "explanation"})
		assert.NoError(t, err)

		payload, err := store.Load(k2)
		assert.NoError(t, err)
		assert.Nil(t, payload)

		entries, err := store.History(k2)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("history capacity option test", func(t *testing.T) {
		store := localstore.New(localstore.NewMemoryKV(), localstore.WithHistoryCapacity(2))
		k := draftKey(t)

		for i := 0; i < 4; i++ {
			_, err := store.Save(k, types.DraftPayload{Title: fmt.Sprintf("v%d", i)})
			assert.NoError(t, err)
		}

		entries, err := store.History(k)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "v3", entries[0].Payload.Title)
	})
}
