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

package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/client"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/pkg/localstore"
	"github.com/notebox-team/notebox/server/backend"
	"github.com/notebox-team/notebox/server/backend/housekeeping"
	"github.com/notebox-team/notebox/server/drafts"
)

func setUpBackend(t *testing.T) (*drafts.Service, *backend.Backend) {
	t.Helper()

	be, err := backend.New(
		&backend.Config{PresenceLivenessWindow: "30s"},
		nil,
		&housekeeping.Config{Interval: "1m", PresenceLivenessWindow: "30s"},
		nil,
	)
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, be.Shutdown()) })

	return drafts.New(be), be
}

func newBackedSession(
	t *testing.T,
	service *drafts.Service,
	k key.Key,
	opts ...client.Option,
) *client.Session {
	t.Helper()

	deps := client.Dependencies{
		KV:       localstore.NewMemoryKV(),
		Remote:   service,
		Presence: service,
		Watcher:  service,
	}

	session, err := client.New(k, deps, append(fastOptions(), opts...)...)
	assert.NoError(t, err)
	return session
}

func TestTwoSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("second editor surfaces the first editor's save test", func(t *testing.T) {
		service, be := setUpBackend(t)
		k := draftKey(t)

		editorA := newBackedSession(t, service, k, client.WithDisplayName("Ara"))
		editorB := newBackedSession(t, service, k, client.WithDisplayName("Bree"))
		assert.NotEqual(t, editorA.EditorID(), editorB.EditorID())

		assert.NoError(t, editorA.Start(ctx))
		defer func() { assert.NoError(t, editorA.Leave(ctx)) }()
		assert.NoError(t, editorB.Start(ctx))
		defer func() { assert.NoError(t, editorB.Leave(ctx)) }()

		assert.Eventually(t, func() bool {
			return len(be.PubSub.Subscribers(k)) == 2
		}, waitTimeout, 10*time.Millisecond)

		assert.NoError(t, editorA.Update(func(p *types.DraftPayload) {
			p.Title = "x"
		}))
		assert.NoError(t, editorA.Save(ctx))

		// editor B gets the conflict; editor A never sees its own echo.
		assert.Eventually(t, func() bool {
			pending, ok := editorB.PendingConflict()
			return ok && pending.Payload.Title == "x" &&
				pending.WriterID == editorA.EditorID()
		}, waitTimeout, 10*time.Millisecond)

		_, ok := editorA.PendingConflict()
		assert.False(t, ok)

		// applying makes B's payload match and leaves it dirty for autosave.
		assert.True(t, editorB.ApplyConflict())
		assert.Equal(t, "x", editorB.Payload().Title)
	})

	t.Run("both editors appear on the roster test", func(t *testing.T) {
		service, _ := setUpBackend(t)
		k := draftKey(t)

		editorA := newBackedSession(t, service, k, client.WithDisplayName("Ara"))
		editorB := newBackedSession(t, service, k, client.WithDisplayName("Bree"))

		assert.NoError(t, editorA.Start(ctx))
		defer func() { assert.NoError(t, editorA.Leave(ctx)) }()
		assert.NoError(t, editorB.Start(ctx))

		assert.Eventually(t, func() bool {
			others := editorA.Others()
			return len(others) == 1 && others[0].DisplayName == "Bree"
		}, waitTimeout, 10*time.Millisecond)

		// after B leaves, its record is gone from the shared store.
		assert.NoError(t, editorB.Leave(ctx))
		records, err := service.Presences(ctx, k)
		assert.NoError(t, err)
		for _, record := range records {
			assert.NotEqual(t, editorB.EditorID(), record.EditorID)
		}
	})

	t.Run("switching keys leaves one scoped subscription test", func(t *testing.T) {
		service, be := setUpBackend(t)
		kv := localstore.NewMemoryKV()

		k1 := draftKey(t)
		k2, err := key.New("biology", "term-2", "cell-division", "flashcard")
		assert.NoError(t, err)

		deps := client.Dependencies{
			KV:       kv,
			Remote:   service,
			Presence: service,
			Watcher:  service,
		}

		first, err := client.New(k1, deps, fastOptions()...)
		assert.NoError(t, err)
		assert.NoError(t, first.Start(ctx))

		assert.Eventually(t, func() bool {
			return len(be.PubSub.Subscribers(k1)) == 1
		}, waitTimeout, 10*time.Millisecond)

		// switching means leaving the old session and opening a new one.
		assert.NoError(t, first.Leave(ctx))
		assert.Empty(t, be.PubSub.Subscribers(k1))

		second, err := client.New(k2, deps, fastOptions()...)
		assert.NoError(t, err)
		assert.NoError(t, second.Start(ctx))
		defer func() { assert.NoError(t, second.Leave(ctx)) }()

		assert.Eventually(t, func() bool {
			return len(be.PubSub.Subscribers(k2)) == 1
		}, waitTimeout, 10*time.Millisecond)
		assert.Empty(t, be.PubSub.Subscribers(k1))

		// the editor identity is durable across the switch.
		assert.Equal(t, first.EditorID(), second.EditorID())
	})
}
