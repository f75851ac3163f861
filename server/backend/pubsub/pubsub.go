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

// Package pubsub provides an in-memory hub delivering draft events to the
// subscribers of each draft key. It is used for a single backend node.
package pubsub

import (
	"context"

	"go.uber.org/zap"

	"github.com/notebox-team/notebox/api/types/events"
	"github.com/notebox-team/notebox/pkg/cmap"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/server/logging"
)

// PubSub is the in-memory hub. Subscriptions are scoped strictly to one
// draft key; echo filtering of a writer's own events is the subscriber's
// responsibility.
type PubSub struct {
	subsMap *cmap.Map[string, *subscriptions]
}

// New creates an instance of PubSub.
func New() *PubSub {
	return &PubSub{
		subsMap: cmap.New[string, *subscriptions](),
	}
}

// Subscribe subscribes the given subscriber to the events of the given key.
func (m *PubSub) Subscribe(
	ctx context.Context,
	subscriber string,
	k key.Key,
) (*Subscription, error) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("Subscribe(%s,%s) Start", k, subscriber)
	}

	sub := NewSubscription(subscriber)
	m.subsMap.Upsert(k.Combined(), func(subs *subscriptions, exists bool) *subscriptions {
		if !exists {
			subs = newSubscriptions()
		}
		subs.Set(sub)
		return subs
	})

	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("Subscribe(%s,%s) End", k, subscriber)
	}

	return sub, nil
}

// Unsubscribe unsubscribes the given subscription from its key.
func (m *PubSub) Unsubscribe(ctx context.Context, k key.Key, sub *Subscription) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("Unsubscribe(%s,%s) Start", k, sub.Subscriber())
	}

	sub.Close()

	if subs, ok := m.subsMap.Get(k.Combined()); ok {
		subs.Delete(sub.ID())

		m.subsMap.Delete(k.Combined(), func(subs *subscriptions, exists bool) bool {
			return exists && subs.Len() == 0
		})
	}

	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("Unsubscribe(%s,%s) End", k, sub.Subscriber())
	}
}

// Publish delivers the given event to every subscriber of the event's key.
func (m *PubSub) Publish(ctx context.Context, event events.DraftEvent) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("Publish(%s,%s) Start", event.Key, event.Actor)
	}

	if subs, ok := m.subsMap.Get(event.Key.Combined()); ok {
		for _, sub := range subs.Values() {
			if ok := sub.Publish(event); !ok {
				logging.From(ctx).Warnf(
					"Publish(%s,%s) to %s timeout or closed",
					event.Key, event.Actor, sub.Subscriber(),
				)
			}
		}
	}

	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf("Publish(%s,%s) End", event.Key, event.Actor)
	}
}

// Subscribers returns the editor ids currently subscribed to the given key.
func (m *PubSub) Subscribers(k key.Key) []string {
	subs, ok := m.subsMap.Get(k.Combined())
	if !ok {
		return nil
	}

	var ids []string
	for _, sub := range subs.Values() {
		ids = append(ids, sub.Subscriber())
	}
	return ids
}
