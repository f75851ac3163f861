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

package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/draft/key"
)

const (
	// DefaultHistoryCapacity is the number of retained history entries per key.
	DefaultHistoryCapacity = 5

	draftPrefix   = "draft:"
	historyPrefix = "history:"
)

// ErrHistoryIndexOutOfRange is returned when a history index does not exist.
var ErrHistoryIndexOutOfRange = errors.New("history index out of range")

// HistoryEntry is an immutable snapshot of a draft payload.
type HistoryEntry struct {
	// Payload is the snapshotted payload.
	Payload types.DraftPayload `json:"payload"`

	// CapturedAt is the time the snapshot was taken, in milliseconds since
	// the epoch.
	CapturedAt int64 `json:"capturedAt"`
}

// Store persists draft payloads and their bounded history in a local KV.
type Store struct {
	kv       KV
	capacity int
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryCapacity overrides the history capacity.
func WithHistoryCapacity(capacity int) Option {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithClock overrides the clock used for savedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store over the given KV.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		capacity: DefaultHistoryCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the most recently saved payload of the given key, or nil when
// none has been saved.
func (s *Store) Load(k key.Key) (*types.DraftPayload, error) {
	raw, ok, err := s.kv.Get(draftPrefix + k.Combined())
	if err != nil {
		return nil, fmt.Errorf("load draft %s: %w", k, err)
	}
	if !ok {
		return nil, nil
	}

	payload := &types.DraftPayload{}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", k, err)
	}

	return payload, nil
}

// Save overwrites the payload of the given key, stamps savedAt, and appends
// a history entry, evicting the oldest beyond capacity. It returns the
// stamped payload. A returned error means the edits are NOT durable.
func (s *Store) Save(k key.Key, payload types.DraftPayload) (types.DraftPayload, error) {
	stamped := payload.DeepCopy()
	now := s.now().UnixMilli()
	if now > stamped.SavedAt {
		stamped.SavedAt = now
	}

	raw, err := json.Marshal(stamped)
	if err != nil {
		return types.DraftPayload{}, fmt.Errorf("encode draft %s: %w", k, err)
	}
	if err := s.kv.Set(draftPrefix+k.Combined(), raw); err != nil {
		return types.DraftPayload{}, fmt.Errorf("save draft %s: %w", k, err)
	}

	if err := s.appendHistory(k, stamped); err != nil {
		return types.DraftPayload{}, err
	}

	return stamped, nil
}

// Clear removes the payload of the given key. History is retained.
func (s *Store) Clear(k key.Key) error {
	if err := s.kv.Remove(draftPrefix + k.Combined()); err != nil {
		return fmt.Errorf("clear draft %s: %w", k, err)
	}

	return nil
}

// History returns the history entries of the given key, most recent first.
func (s *Store) History(k key.Key) ([]HistoryEntry, error) {
	raw, ok, err := s.kv.Get(historyPrefix + k.Combined())
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", k, err)
	}
	if !ok {
		return nil, nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", k, err)
	}

	return entries, nil
}

// Entry returns the history entry at the given index, most recent first.
// The caller decides whether to persist a restored payload.
func (s *Store) Entry(k key.Key, index int) (HistoryEntry, error) {
	entries, err := s.History(k)
	if err != nil {
		return HistoryEntry{}, err
	}
	if index < 0 || index >= len(entries) {
		return HistoryEntry{}, fmt.Errorf("%s[%d]: %w", k, index, ErrHistoryIndexOutOfRange)
	}

	return entries[index], nil
}

// ClearHistory removes all history entries of the given key.
func (s *Store) ClearHistory(k key.Key) error {
	if err := s.kv.Remove(historyPrefix + k.Combined()); err != nil {
		return fmt.Errorf("clear history %s: %w", k, err)
	}

	return nil
}

func (s *Store) appendHistory(k key.Key, payload types.DraftPayload) error {
	entries, err := s.History(k)
	if err != nil {
		return err
	}

	entries = append([]HistoryEntry{{
		Payload:    payload,
		CapturedAt: s.now().UnixMilli(),
	}}, entries...)
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history %s: %w", k, err)
	}
	if err := s.kv.Set(historyPrefix+k.Combined(), raw); err != nil {
		return fmt.Errorf("save history %s: %w", k, err)
	}

	return nil
}
