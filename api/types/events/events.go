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

// Package events defines the change events delivered to draft subscribers.
package events

import (
	"time"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/draft/key"
)

// DraftEventType represents the kind of a draft event.
type DraftEventType string

const (
	// DraftChanged means a session wrote a new version of the draft.
	DraftChanged DraftEventType = "draft-changed"

	// PresenceChanged means the roster of the draft key changed: an editor
	// announced itself, refreshed its heartbeat, or left.
	PresenceChanged DraftEventType = "presence-changed"
)

// DraftEvent is an event that occurs on a draft key. One subscription
// receives both draft-changed and presence-changed events for its key.
type DraftEvent struct {
	// Type is the kind of this event.
	Type DraftEventType

	// Key is the draft key the event is scoped to.
	Key key.Key

	// Actor is the editor id that caused the event.
	Actor string

	// Payload is the written draft version. Only set for DraftChanged.
	Payload *types.DraftPayload

	// UpdatedAt is the server-side time of the write that caused the event.
	UpdatedAt time.Time
}
