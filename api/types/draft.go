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

// Package types provides the types shared between the client and the server.
package types

import (
	"time"

	"github.com/notebox-team/notebox/pkg/draft/key"
)

// DraftPayload is the editable content of one draft slot. It is a flat,
// JSON-serializable structure; which fields are meaningful depends on the
// content type of the draft key (explanation, flashcard, mnemonic, quiz).
type DraftPayload struct {
	// Title is the heading of the note box.
	Title string `json:"title" bson:"title"`

	// Body is the main text of the note box.
	Body string `json:"body" bson:"body"`

	// Bullets are the bullet lines of list-style boxes.
	Bullets []string `json:"bullets,omitempty" bson:"bullets,omitempty"`

	// Cards are front/back lines of flashcard-style boxes.
	Cards []string `json:"cards,omitempty" bson:"cards,omitempty"`

	// SavedAt is the time the payload was last persisted, in milliseconds
	// since the epoch. Monotonically non-decreasing per writer.
	SavedAt int64 `json:"savedAt" bson:"saved_at"`
}

// IsEmpty returns whether this payload has no content.
func (p DraftPayload) IsEmpty() bool {
	return p.Title == "" && p.Body == "" && len(p.Bullets) == 0 && len(p.Cards) == 0
}

// DeepCopy returns a copy of this payload that shares no slices with the
// original.
func (p DraftPayload) DeepCopy() DraftPayload {
	clone := p
	if p.Bullets != nil {
		clone.Bullets = make([]string, len(p.Bullets))
		copy(clone.Bullets, p.Bullets)
	}
	if p.Cards != nil {
		clone.Cards = make([]string, len(p.Cards))
		copy(clone.Cards, p.Cards)
	}

	return clone
}

// RemoteDraftRecord is a draft version written by some session, as observed
// through a change subscription. The writer may differ from the local editor.
type RemoteDraftRecord struct {
	Key       key.Key      `json:"key"`
	WriterID  string       `json:"writerId"`
	Payload   DraftPayload `json:"payload"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
