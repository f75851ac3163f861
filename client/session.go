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

// Package client provides the collaborative editing session of one draft
// key. A session owns its own timers and in-memory state: it autosaves
// dirty edits locally and best-effort remotely, announces presence with
// heartbeats, watches for other sessions' writes and surfaces them as
// conflicts for a human to resolve. Switching draft keys means leaving the
// session and constructing a new one, so concurrent sessions for different
// keys are isolated by construction.
package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/api/types/events"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/pkg/localstore"
	"github.com/notebox-team/notebox/server/logging"
)

type status int

const (
	idle status = iota
	active
	left
)

var (
	// ErrSessionNotActive is returned when the session was not started or
	// has already left.
	ErrSessionNotActive = errors.New("session is not active")

	// ErrSessionAlreadyStarted is returned when Start is called twice.
	ErrSessionAlreadyStarted = errors.New("session is already started")

	// ErrInvalidOptions is returned when the given options are inconsistent.
	ErrInvalidOptions = errors.New("invalid session options")
)

// Dependencies are the collaborators of a session. KV, Remote, Presence
// and Watcher are required; AuthGate and ExitHook are optional (a nil gate
// counts as signed in, a nil hook skips exit registration).
type Dependencies struct {
	KV       localstore.KV
	Remote   DraftStore
	Presence PresenceStore
	Watcher  Watcher
	AuthGate AuthGate
	ExitHook ExitHook
}

// Session is one open editing surface on one draft key.
type Session struct {
	key      key.Key
	editorID string

	local    *localstore.Store
	remote   DraftStore
	presence PresenceStore
	watcher  Watcher
	gate     AuthGate
	exitHook ExitHook

	options  Options
	conflict *Conflict
	logger   logging.Logger

	// saveMu serializes writes to the local store so a discard can never
	// interleave with an in-flight save.
	saveMu sync.Mutex

	mu      sync.Mutex
	status  status
	payload types.DraftPayload
	dirty   bool
	saving  bool
	gen     uint64
	roster  []types.PresenceRecord

	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	deregisterExit func()
	leaveOnce      sync.Once
}

// New creates a session for the given draft key. The session is inert
// until Start is called.
func New(k key.Key, deps Dependencies, opts ...Option) (*Session, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	if deps.KV == nil || deps.Remote == nil || deps.Presence == nil || deps.Watcher == nil {
		return nil, errors.New("missing session dependencies")
	}

	options, err := buildOptions(opts...)
	if err != nil {
		return nil, err
	}

	editorID, err := LoadIdentity(deps.KV)
	if err != nil {
		return nil, err
	}

	gate := deps.AuthGate
	if gate == nil {
		gate = alwaysSignedIn{}
	}

	return &Session{
		key:      k,
		editorID: editorID,

		local:    localstore.New(deps.KV),
		remote:   deps.Remote,
		presence: deps.Presence,
		watcher:  deps.Watcher,
		gate:     gate,
		exitHook: deps.ExitHook,

		options:  options,
		conflict: NewConflict(),
		logger:   logging.New("session", logging.NewField("key", k.Combined())),
	}, nil
}

// EditorID returns the durable writer id of this session.
func (s *Session) EditorID() string {
	return s.editorID
}

// Key returns the draft key of this session.
func (s *Session) Key() key.Key {
	return s.key
}

// Start loads the locally persisted payload and starts the autosave loop,
// the heartbeat loop and the change subscription.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.status != idle {
		s.mu.Unlock()
		return ErrSessionAlreadyStarted
	}
	s.status = active
	s.mu.Unlock()

	payload, err := s.local.Load(s.key)
	if err != nil {
		// Nothing was started yet; the caller may retry.
		s.mu.Lock()
		s.status = idle
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if payload != nil {
		s.payload = payload.DeepCopy()
	}
	s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(context.Background())

	if s.exitHook != nil {
		s.deregisterExit = s.exitHook.OnExit(s.leavePresence)
	}

	s.wg.Add(3)
	go s.autosaveLoop()
	go s.heartbeatLoop()
	go s.watchLoop()

	return nil
}

// Update mutates the in-memory payload and marks the session dirty. The
// change stays in memory until the next autosave tick or explicit Save.
func (s *Session) Update(fn func(p *types.DraftPayload)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == left {
		return ErrSessionNotActive
	}

	fn(&s.payload)
	s.dirty = true
	s.gen++
	return nil
}

// Payload returns a copy of the in-memory payload.
func (s *Session) Payload() types.DraftPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.payload.DeepCopy()
}

// Dirty returns whether unsaved edits exist.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dirty
}

// Save flushes the in-memory payload now, regardless of the timer. The
// returned error is a local persistence failure; remote sync stays
// best-effort either way.
func (s *Session) Save(ctx context.Context) error {
	return s.flush(ctx, true)
}

// Discard clears the in-memory payload and the locally persisted one.
// History is retained.
func (s *Session) Discard() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := s.local.Clear(s.key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = types.DraftPayload{}
	s.dirty = false
	s.gen++
	return nil
}

// History returns the locally captured draft snapshots, most recent first.
func (s *Session) History() ([]localstore.HistoryEntry, error) {
	return s.local.History(s.key)
}

// Restore copies the history entry at the given index into the in-memory
// payload and marks it dirty. It does not persist by itself; the next
// autosave tick or an explicit Save does.
func (s *Session) Restore(index int) error {
	entry, err := s.local.Entry(s.key, index)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = entry.Payload.DeepCopy()
	s.dirty = true
	s.gen++
	return nil
}

// Roster returns the last fetched roster of the session's draft key.
// Entries older than the liveness window may already be gone.
func (s *Session) Roster() []types.PresenceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := make([]types.PresenceRecord, len(s.roster))
	copy(roster, s.roster)
	return roster
}

// Others returns the non-stale roster entries of other editors.
func (s *Session) Others() []types.PresenceRecord {
	now := time.Now()

	var others []types.PresenceRecord
	for _, record := range s.Roster() {
		if record.EditorID == s.editorID {
			continue
		}
		if record.Stale(now, s.options.LivenessWindow) {
			continue
		}
		others = append(others, record)
	}
	return others
}

// PendingConflict returns the remote version waiting for resolution.
func (s *Session) PendingConflict() (types.RemoteDraftRecord, bool) {
	return s.conflict.Pending()
}

// ApplyConflict copies the pending remote version into the in-memory
// payload, marks it dirty so the next autosave persists the choice, and
// clears the pending slot. It reports whether a conflict was applied.
func (s *Session) ApplyConflict() bool {
	record, ok := s.conflict.Take()
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = record.Payload.DeepCopy()
	s.dirty = true
	s.gen++
	return true
}

// DismissConflict drops the pending remote version without applying it.
func (s *Session) DismissConflict() {
	s.conflict.Dismiss()
}

// Leave tears the session down: stops the heartbeat and autosave loops,
// cancels the change subscription, and issues one best-effort presence
// leave. Calling it more than once is a no-op.
func (s *Session) Leave(ctx context.Context) error {
	s.mu.Lock()
	if s.status != active {
		s.mu.Unlock()
		return nil
	}
	s.status = left
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	if s.deregisterExit != nil {
		s.deregisterExit()
		s.deregisterExit = nil
	}

	s.leaveOnce.Do(s.leavePresence)
	return nil
}

// leavePresence issues the best-effort leave call. It is registered with
// the exit hook, so it must tolerate racing process teardown.
func (s *Session) leavePresence() {
	ctx, cancel := context.WithTimeout(context.Background(), s.options.RemoteTimeout)
	defer cancel()

	if err := s.presence.DeletePresence(ctx, s.key, s.editorID); err != nil {
		s.logger.Warnf("presence leave failed: %v", err)
	}
}

func (s *Session) autosaveLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.options.AutosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			// The tick runs off the loop so a slow remote write delays no
			// later tick; the in-flight guard skips overlapping saves. Leave
			// waits for ticks still in flight.
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				if err := s.flush(s.ctx, false); err != nil {
					s.logger.Errorf("autosave: %v", err)
				}
			}()
		}
	}
}

// flush persists the in-memory payload to the local store and mirrors it
// to the remote store. Local failure keeps the dirty flag set and is
// returned; remote failure is logged and swallowed.
func (s *Session) flush(ctx context.Context, force bool) error {
	s.mu.Lock()
	if (!s.dirty && !force) || s.saving {
		s.mu.Unlock()
		return nil
	}
	s.saving = true
	snapshot := s.payload.DeepCopy()
	snapshotGen := s.gen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
	}()

	s.saveMu.Lock()

	s.mu.Lock()
	superseded := s.gen != snapshotGen
	s.mu.Unlock()
	if superseded {
		// A newer edit or a discard owns the state now; persisting the old
		// snapshot could resurrect discarded content. The next dirty tick
		// saves the current state.
		s.saveMu.Unlock()
		return nil
	}

	stamped, err := s.local.Save(s.key, snapshot)
	if err != nil {
		s.saveMu.Unlock()
		if s.options.SaveErrorHandler != nil {
			s.options.SaveErrorHandler(err)
		}
		return err
	}

	s.mu.Lock()
	// Edits made while the save was in flight keep the dirty flag.
	if s.gen == snapshotGen {
		s.dirty = false
		s.payload.SavedAt = stamped.SavedAt
	}
	s.mu.Unlock()
	s.saveMu.Unlock()

	remoteCtx, cancel := context.WithTimeout(ctx, s.options.RemoteTimeout)
	defer cancel()

	if err := s.remote.UpsertDraft(remoteCtx, s.key, s.editorID, stamped); err != nil {
		// Local durability already succeeded; sync retries next tick.
		s.logger.Warnf("remote sync failed: %v", err)
	}

	return nil
}

func (s *Session) heartbeatLoop() {
	defer s.wg.Done()

	s.heartbeat()

	ticker := time.NewTicker(s.options.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.heartbeat()
		}
	}
}

// heartbeat announces this editor when authenticated, then refreshes the
// roster either way.
func (s *Session) heartbeat() {
	ctx, cancel := context.WithTimeout(s.ctx, s.options.RemoteTimeout)
	defer cancel()

	if s.gate.IsReady() && s.gate.IsSignedIn() {
		if err := s.presence.UpsertPresence(
			ctx,
			s.key,
			s.editorID,
			s.options.DisplayName,
			time.Now(),
		); err != nil {
			s.logger.Warnf("heartbeat failed: %v", err)
		}
	}

	s.refreshRoster(ctx)
}

func (s *Session) refreshRoster(ctx context.Context) {
	records, err := s.presence.Presences(ctx, s.key)
	if err != nil {
		// Keep the last known roster on failure.
		s.logger.Warnf("roster fetch failed: %v", err)
		return
	}

	s.mu.Lock()
	s.roster = records
	s.mu.Unlock()

	if s.options.RosterHandler != nil {
		s.options.RosterHandler(records)
	}
}

func (s *Session) watchLoop() {
	defer s.wg.Done()

	retries := 0
	for {
		if s.ctx.Err() != nil {
			return
		}

		eventCh, cancel, err := s.watcher.Watch(s.ctx, s.key, s.editorID)
		if err != nil {
			retries++
			if retries > s.options.MaxWatchRetries {
				s.logger.Warnf("watch degraded after %d retries: %v", retries-1, err)
				return
			}

			select {
			case <-s.ctx.Done():
				return
			case <-time.After(s.options.WatchRetryInterval):
			}
			continue
		}
		retries = 0

		s.consume(eventCh)
		cancel()
	}
}

// consume drains the subscription until it drops or the session leaves.
func (s *Session) consume(eventCh <-chan events.DraftEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			s.handleEvent(event)
		}
	}
}

func (s *Session) handleEvent(event events.DraftEvent) {
	switch event.Type {
	case events.PresenceChanged:
		// Re-fetch the full roster. This overlaps with the heartbeat's own
		// fetch; redundant reads are accepted over delta bookkeeping.
		ctx, cancel := context.WithTimeout(s.ctx, s.options.RemoteTimeout)
		s.refreshRoster(ctx)
		cancel()
	case events.DraftChanged:
		if event.Actor == s.editorID {
			// Echo of our own autosave.
			return
		}
		if event.Payload == nil {
			return
		}

		record := types.RemoteDraftRecord{
			Key:       event.Key,
			WriterID:  event.Actor,
			Payload:   event.Payload.DeepCopy(),
			UpdatedAt: event.UpdatedAt,
		}
		s.conflict.Put(record)

		if s.options.ConflictHandler != nil {
			s.options.ConflictHandler(record)
		}
	}
}
