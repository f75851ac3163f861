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

package client

import (
	"context"
	"time"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/api/types/events"
	"github.com/notebox-team/notebox/pkg/draft/key"
)

// DraftStore is the remote draft store the session mirrors its local saves
// to. The embedded drafts.Service satisfies this interface; so can any
// transport-backed implementation.
type DraftStore interface {
	// UpsertDraft writes the payload as the current remote version of the
	// key, attributed to the given writer.
	UpsertDraft(ctx context.Context, k key.Key, writerID string, payload types.DraftPayload) error
}

// PresenceStore is the shared store of who is editing which draft key.
type PresenceStore interface {
	// UpsertPresence announces the editor on the key with a fresh timestamp.
	UpsertPresence(ctx context.Context, k key.Key, editorID, displayName string, lastActiveAt time.Time) error

	// Presences returns the roster of the key.
	Presences(ctx context.Context, k key.Key) ([]types.PresenceRecord, error)

	// DeletePresence removes the editor's record from the key.
	DeletePresence(ctx context.Context, k key.Key, editorID string) error
}

// Watcher opens change subscriptions scoped to a single draft key. The
// returned channel carries both draft-changed and presence-changed events
// and is closed when the subscription drops; the cancel function tears the
// subscription down.
type Watcher interface {
	Watch(ctx context.Context, k key.Key, subscriberID string) (<-chan events.DraftEvent, func(), error)
}

// AuthGate reports the authentication state of the host application. A
// session never announces presence while the gate is not ready or the user
// is signed out; reading the roster is still allowed.
type AuthGate interface {
	IsReady() bool
	IsSignedIn() bool
}

// ExitHook registers best-effort callbacks fired on process teardown. The
// callback races teardown and may not complete; the presence liveness
// window is the authoritative cleanup.
type ExitHook interface {
	// OnExit registers fn and returns a function deregistering it.
	OnExit(fn func()) func()
}

// alwaysSignedIn is the gate used when the host passes none.
type alwaysSignedIn struct{}

func (alwaysSignedIn) IsReady() bool    { return true }
func (alwaysSignedIn) IsSignedIn() bool { return true }
