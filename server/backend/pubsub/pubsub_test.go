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

package pubsub_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/notebox-team/notebox/api/types/events"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/server/backend/pubsub"
)

func draftKey(t *testing.T, contentType string) key.Key {
	t.Helper()

	k, err := key.New("biology", "term-2", "cell-division", contentType)
	assert.NoError(t, err)
	return k
}

func receive(t *testing.T, ch <-chan events.DraftEvent) events.DraftEvent {
	t.Helper()

	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return events.DraftEvent{}
	}
}

func TestPubSub(t *testing.T) {
	ctx := context.Background()

	t.Run("publish to subscribers test", func(t *testing.T) {
		hub := pubsub.New()
		k := draftKey(t, "explanation")

		subA, err := hub.Subscribe(ctx, "editor-a", k)
		assert.NoError(t, err)
		subB, err := hub.Subscribe(ctx, "editor-b", k)
		assert.NoError(t, err)

		event := events.DraftEvent{
			Type:  events.DraftChanged,
			Key:   k,
			Actor: "editor-a",
		}
		hub.Publish(ctx, event)

		// delivery includes the writer; echo filtering is up to the consumer.
		assert.Equal(t, event, receive(t, subA.Events()))
		assert.Equal(t, event, receive(t, subB.Events()))
	})

	t.Run("events are scoped to the key test", func(t *testing.T) {
		hub := pubsub.New()
		explanation := draftKey(t, "explanation")
		flashcard := draftKey(t, "flashcard")

		sub, err := hub.Subscribe(ctx, "editor-a", flashcard)
		assert.NoError(t, err)

		hub.Publish(ctx, events.DraftEvent{
			Type:  events.DraftChanged,
			Key:   explanation,
			Actor: "editor-b",
		})

		select {
		case event := <-sub.Events():
			t.Fatalf("event for another key leaked: %v", event)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("unsubscribe closes the channel test", func(t *testing.T) {
		hub := pubsub.New()
		k := draftKey(t, "explanation")

		sub, err := hub.Subscribe(ctx, "editor-a", k)
		assert.NoError(t, err)
		assert.Equal(t, []string{"editor-a"}, hub.Subscribers(k))

		hub.Unsubscribe(ctx, k, sub)
		assert.Empty(t, hub.Subscribers(k))

		_, ok := <-sub.Events()
		assert.False(t, ok)

		// publishing to a key without subscribers is a no-op.
		hub.Publish(ctx, events.DraftEvent{Type: events.DraftChanged, Key: k})
	})

	t.Run("publish to closed subscription test", func(t *testing.T) {
		sub := pubsub.NewSubscription("editor-a")
		assert.True(t, sub.Publish(events.DraftEvent{Type: events.PresenceChanged}))

		sub.Close()
		sub.Close() // closing twice is fine
		assert.False(t, sub.Publish(events.DraftEvent{Type: events.PresenceChanged}))
	})

	t.Run("resubscribe after unsubscribe test", func(t *testing.T) {
		hub := pubsub.New()
		k := draftKey(t, "explanation")

		first, err := hub.Subscribe(ctx, "editor-a", k)
		assert.NoError(t, err)
		hub.Unsubscribe(ctx, k, first)

		second, err := hub.Subscribe(ctx, "editor-a", k)
		assert.NoError(t, err)
		assert.NotEqual(t, first.ID(), second.ID())
		assert.Equal(t, []string{"editor-a"}, hub.Subscribers(k))

		event := events.DraftEvent{Type: events.PresenceChanged, Key: k, Actor: "editor-b"}
		hub.Publish(ctx, event)
		assert.Equal(t, event, receive(t, second.Events()))
	})
}
