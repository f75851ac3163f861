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

package types

import "time"

// PresenceRecord represents one editor currently announcing itself on a
// draft key. At most one record exists per (key, editor) pair.
type PresenceRecord struct {
	// EditorID is the durable per-session writer id of the editor.
	EditorID string `json:"editorId" bson:"editor_id"`

	// DisplayName is the human-readable name of the editor, if known.
	DisplayName string `json:"displayName,omitempty" bson:"display_name,omitempty"`

	// LastActiveAt is the time of the editor's most recent heartbeat.
	LastActiveAt time.Time `json:"lastActiveAt" bson:"last_active_at"`
}

// Stale reports whether this record has outlived the given liveness window.
// Staleness is derived at read time; the record itself may still exist until
// housekeeping purges it.
func (p PresenceRecord) Stale(now time.Time, window time.Duration) bool {
	return now.Sub(p.LastActiveAt) > window
}
