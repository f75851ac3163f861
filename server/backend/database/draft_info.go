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
	"github.com/notebox-team/notebox/pkg/draft/key"
)

// DraftInfo is the current version of a draft as stored in the database.
type DraftInfo struct {
	// Key is the combined draft key.
	Key string `bson:"key"`

	// WriterID is the editor id of the session that wrote this version.
	WriterID string `bson:"writer_id"`

	// Payload is the written content.
	Payload types.DraftPayload `bson:"payload"`

	// UpdatedAt is the server-side time of the write.
	UpdatedAt time.Time `bson:"updated_at"`
}

// DeepCopy returns a deep copy of this DraftInfo.
func (i *DraftInfo) DeepCopy() *DraftInfo {
	if i == nil {
		return nil
	}

	clone := *i
	clone.Payload = i.Payload.DeepCopy()
	return &clone
}

// RemoteRecord converts this info into the record handed to subscribers.
func (i *DraftInfo) RemoteRecord() (types.RemoteDraftRecord, error) {
	k, err := key.FromCombined(i.Key)
	if err != nil {
		return types.RemoteDraftRecord{}, err
	}

	return types.RemoteDraftRecord{
		Key:       k,
		WriterID:  i.WriterID,
		Payload:   i.Payload.DeepCopy(),
		UpdatedAt: i.UpdatedAt,
	}, nil
}
