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

package database

import (
	"time"

	"github.com/notebox-team/notebox/api/types"
)

// PresenceInfo is a presence record as stored in the database. One row per
// (key, editor) pair.
type PresenceInfo struct {
	// Key is the combined draft key.
	Key string `bson:"key"`

	// EditorID is the editor announcing itself.
	EditorID string `bson:"editor_id"`

	// DisplayName is the human-readable name of the editor, if any.
	DisplayName string `bson:"display_name,omitempty"`

	// LastActiveAt is the time of the editor's most recent heartbeat.
	LastActiveAt time.Time `bson:"last_active_at"`
}

// DeepCopy returns a copy of this PresenceInfo.
func (i *PresenceInfo) DeepCopy() *PresenceInfo {
	if i == nil {
		return nil
	}

	clone := *i
	return &clone
}

// Record converts this info into the record handed to roster consumers.
func (i *PresenceInfo) Record() types.PresenceRecord {
	return types.PresenceRecord{
		EditorID:     i.EditorID,
		DisplayName:  i.DisplayName,
		LastActiveAt: i.LastActiveAt,
	}
}
