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

package pubsub

import (
	"sync"
	gotime "time"

	"github.com/rs/xid"

	"github.com/notebox-team/notebox/api/types/events"
	"github.com/notebox-team/notebox/pkg/cmap"
)

// publishTimeout bounds how long a slow subscriber may stall delivery.
const publishTimeout = 100 * gotime.Millisecond

// subscriptionBufferSize is the size of a subscription's event buffer.
const subscriptionBufferSize = 8

// Subscription represents one subscriber listening to the events of a
// single draft key.
type Subscription struct {
	id         string
	subscriber string

	mu     sync.Mutex
	closed bool
	events chan events.DraftEvent
}

// NewSubscription creates a new instance of Subscription.
func NewSubscription(subscriber string) *Subscription {
	return &Subscription{
		id:         xid.New().String(),
		subscriber: subscriber,
		events:     make(chan events.DraftEvent, subscriptionBufferSize),
	}
}

// ID returns the id of this subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Subscriber returns the editor id of the subscriber.
func (s *Subscription) Subscriber() string {
	return s.subscriber
}

// Events returns the event channel of this subscription. The channel is
// closed when the subscription is closed.
func (s *Subscription) Events() <-chan events.DraftEvent {
	return s.events
}

// Close closes this subscription.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// Publish delivers the given event to the subscriber. It reports false when
// the subscription is closed or the subscriber is too slow to keep up.
func (s *Subscription) Publish(event events.DraftEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- event:
		return true
	case <-gotime.After(publishTimeout):
		return false
	}
}

// subscriptions is the set of subscriptions of one draft key.
type subscriptions struct {
	internalMap *cmap.Map[string, *Subscription]
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		internalMap: cmap.New[string, *Subscription](),
	}
}

func (s *subscriptions) Set(sub *Subscription) {
	s.internalMap.Set(sub.ID(), sub)
}

func (s *subscriptions) Delete(id string) {
	s.internalMap.Delete(id, func(sub *Subscription, exists bool) bool {
		if exists {
			sub.Close()
		}
		return exists
	})
}

func (s *subscriptions) Values() []*Subscription {
	return s.internalMap.Values()
}

func (s *subscriptions) Len() int {
	return s.internalMap.Len()
}

func (s *subscriptions) Close() {
	for _, sub := range s.Values() {
		sub.Close()
	}
}
