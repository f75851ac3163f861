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

// Package memory implements the database interface using an in-memory
// database. It is the default for single-node and development setups.
package memory

import (
	"context"
	"fmt"
	"sort"
	gotime "time"

	"github.com/hashicorp/go-memdb"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/server/backend/database"
)

// DB is an in-memory database backed by go-memdb.
type DB struct {
	db *memdb.MemDB
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{db: memDB}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// UpsertDraft stores the given payload as the current version of the key.
func (d *DB) UpsertDraft(
	_ context.Context,
	k key.Key,
	writerID string,
	payload types.DraftPayload,
) (*database.DraftInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := &database.DraftInfo{
		Key:       k.Combined(),
		WriterID:  writerID,
		Payload:   payload.DeepCopy(),
		UpdatedAt: gotime.Now(),
	}

	if err := txn.Insert(tblDrafts, info); err != nil {
		return nil, fmt.Errorf("upsert draft %s: %w", k, err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindDraft returns the current version of the given key.
func (d *DB) FindDraft(_ context.Context, k key.Key) (*database.DraftInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblDrafts, "id", k.Combined())
	if err != nil {
		return nil, fmt.Errorf("find draft %s: %w", k, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", k, database.ErrDraftNotFound)
	}

	return raw.(*database.DraftInfo).DeepCopy(), nil
}

// UpsertPresence stores a presence record for the (key, editor) pair.
func (d *DB) UpsertPresence(
	_ context.Context,
	k key.Key,
	editorID string,
	displayName string,
	lastActiveAt gotime.Time,
) (*database.PresenceInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := &database.PresenceInfo{
		Key:          k.Combined(),
		EditorID:     editorID,
		DisplayName:  displayName,
		LastActiveAt: lastActiveAt,
	}

	if err := txn.Insert(tblPresences, info); err != nil {
		return nil, fmt.Errorf("upsert presence %s/%s: %w", k, editorID, err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindPresences returns all presence records of the given key, ordered by
// editor id for stable rosters.
func (d *DB) FindPresences(_ context.Context, k key.Key) ([]*database.PresenceInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tblPresences, "key", k.Combined())
	if err != nil {
		return nil, fmt.Errorf("find presences %s: %w", k, err)
	}

	var infos []*database.PresenceInfo
	for raw := it.Next(); raw != nil; raw = it.Next() {
		infos = append(infos, raw.(*database.PresenceInfo).DeepCopy())
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].EditorID < infos[j].EditorID
	})

	return infos, nil
}

// DeletePresence removes the presence record of the (key, editor) pair.
func (d *DB) DeletePresence(_ context.Context, k key.Key, editorID string) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblPresences, "id", k.Combined(), editorID)
	if err != nil {
		return fmt.Errorf("find presence %s/%s: %w", k, editorID, err)
	}
	if raw == nil {
		return nil
	}

	if err := txn.Delete(tblPresences, raw); err != nil {
		return fmt.Errorf("delete presence %s/%s: %w", k, editorID, err)
	}
	txn.Commit()

	return nil
}

// PurgeStalePresences removes all presence records last active before the
// given time.
func (d *DB) PurgeStalePresences(_ context.Context, before gotime.Time) (int, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(tblPresences, "id")
	if err != nil {
		return 0, fmt.Errorf("fetch presences: %w", err)
	}

	var stale []*database.PresenceInfo
	for raw := it.Next(); raw != nil; raw = it.Next() {
		info := raw.(*database.PresenceInfo)
		if info.LastActiveAt.Before(before) {
			stale = append(stale, info)
		}
	}

	for _, info := range stale {
		if err := txn.Delete(tblPresences, info); err != nil {
			return 0, fmt.Errorf("purge presence %s/%s: %w", info.Key, info.EditorID, err)
		}
	}
	txn.Commit()

	return len(stale), nil
}
