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

// Package database provides the database interface of the Notebox backend.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/draft/key"
)

var (
	// ErrDraftNotFound is returned when the draft could not be found.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrPresenceNotFound is returned when the presence could not be found.
	ErrPresenceNotFound = errors.New("presence not found")
)

// Database represents the persistent storage of the collaborator backend:
// the remote draft store and the presence store, joined by the draft key.
type Database interface {
	// Close closes the database.
	Close() error

	// UpsertDraft stores the given payload as the current version of the
	// draft key, attributed to the given writer.
	UpsertDraft(
		ctx context.Context,
		k key.Key,
		writerID string,
		payload types.DraftPayload,
	) (*DraftInfo, error)

	// FindDraft returns the current version of the draft key.
	FindDraft(ctx context.Context, k key.Key) (*DraftInfo, error)

	// UpsertPresence stores a presence record for the given (key, editor)
	// pair with a fresh lastActiveAt. At most one record exists per pair.
	UpsertPresence(
		ctx context.Context,
		k key.Key,
		editorID string,
		displayName string,
		lastActiveAt time.Time,
	) (*PresenceInfo, error)

	// FindPresences returns all presence records of the given draft key.
	FindPresences(ctx context.Context, k key.Key) ([]*PresenceInfo, error)

	// DeletePresence removes the presence record of the given (key, editor)
	// pair. Deleting an absent record is not an error.
	DeletePresence(ctx context.Context, k key.Key, editorID string) error

	// PurgeStalePresences removes all presence records whose lastActiveAt is
	// before the given time and returns how many were removed.
	PurgeStalePresences(ctx context.Context, before time.Time) (int, error)
}
