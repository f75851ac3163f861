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

// Package drafts provides the draft service of the backend: every store
// write goes through here so the matching change event is published to the
// subscribers of the draft key. The service's method set satisfies the
// client's DraftStore, PresenceStore and Watcher interfaces, so an editing
// session can wire directly to an embedded backend.
package drafts

import (
	"context"
	"time"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/api/types/events"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/server/backend"
	"github.com/notebox-team/notebox/server/backend/database"
)

// Service provides the operations of the remote draft store and the
// presence store, joined by the draft key.
type Service struct {
	backend *backend.Backend
}

// New creates a new draft service over the given backend.
func New(be *backend.Backend) *Service {
	return &Service{backend: be}
}

// UpsertDraft stores the given payload as the current version of the key
// and publishes a draft-changed event to the key's subscribers.
func (s *Service) UpsertDraft(
	ctx context.Context,
	k key.Key,
	writerID string,
	payload types.DraftPayload,
) error {
	info, err := s.backend.DB.UpsertDraft(ctx, k, writerID, payload)
	if err != nil {
		return err
	}

	if s.backend.Metrics != nil {
		s.backend.Metrics.AddDraftSaved()
	}
	s.publish(ctx, events.DraftEvent{
		Type:      events.DraftChanged,
		Key:       k,
		Actor:     writerID,
		Payload:   &info.Payload,
		UpdatedAt: info.UpdatedAt,
	})

	return nil
}

// Draft returns the current version of the given key.
func (s *Service) Draft(ctx context.Context, k key.Key) (*database.DraftInfo, error) {
	return s.backend.DB.FindDraft(ctx, k)
}

// UpsertPresence refreshes the presence record of the (key, editor) pair
// and publishes a presence-changed event.
func (s *Service) UpsertPresence(
	ctx context.Context,
	k key.Key,
	editorID string,
	displayName string,
	lastActiveAt time.Time,
) error {
	if _, err := s.backend.DB.UpsertPresence(ctx, k, editorID, displayName, lastActiveAt); err != nil {
		return err
	}

	if s.backend.Metrics != nil {
		s.backend.Metrics.AddHeartbeat()
	}
	s.publish(ctx, events.DraftEvent{
		Type:      events.PresenceChanged,
		Key:       k,
		Actor:     editorID,
		UpdatedAt: lastActiveAt,
	})

	return nil
}

// Presences returns the roster of the given key. Staleness is the
// consumer's call; records are returned as stored.
func (s *Service) Presences(ctx context.Context, k key.Key) ([]types.PresenceRecord, error) {
	infos, err := s.backend.DB.FindPresences(ctx, k)
	if err != nil {
		return nil, err
	}

	records := make([]types.PresenceRecord, 0, len(infos))
	for _, info := range infos {
		records = append(records, info.Record())
	}

	return records, nil
}

// DeletePresence removes the presence record of the (key, editor) pair and
// publishes a presence-changed event. It is idempotent.
func (s *Service) DeletePresence(ctx context.Context, k key.Key, editorID string) error {
	if err := s.backend.DB.DeletePresence(ctx, k, editorID); err != nil {
		return err
	}

	if s.backend.Metrics != nil {
		s.backend.Metrics.AddPresenceLeave()
	}
	s.publish(ctx, events.DraftEvent{
		Type:      events.PresenceChanged,
		Key:       k,
		Actor:     editorID,
		UpdatedAt: time.Now(),
	})

	return nil
}

// Watch opens a subscription to the events of the given key. The returned
// cancel function tears the subscription down; after cancel no further
// events for the key are delivered.
func (s *Service) Watch(
	ctx context.Context,
	k key.Key,
	subscriberID string,
) (<-chan events.DraftEvent, func(), error) {
	sub, err := s.backend.PubSub.Subscribe(ctx, subscriberID, k)
	if err != nil {
		return nil, nil, err
	}

	cancel := func() {
		s.backend.PubSub.Unsubscribe(context.Background(), k, sub)
	}

	return sub.Events(), cancel, nil
}

func (s *Service) publish(ctx context.Context, event events.DraftEvent) {
	if s.backend.Metrics != nil {
		s.backend.Metrics.AddEventPublished(string(event.Type))
	}
	s.backend.PubSub.Publish(ctx, event)
}
