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
	"fmt"
	"time"

	"github.com/notebox-team/notebox/api/types"
)

// Below are the default policy constants of a session. They are tunable,
// but the heartbeat interval must stay at or above twice the autosave
// interval so presence does not flap faster than content settles.
const (
	DefaultAutosaveInterval   = 5 * time.Second
	DefaultHeartbeatInterval  = 10 * time.Second
	DefaultLivenessWindow     = 30 * time.Second
	DefaultRemoteTimeout      = 3 * time.Second
	DefaultWatchRetryInterval = time.Second
	DefaultMaxWatchRetries    = 5
)

// Options configures a session.
type Options struct {
	// DisplayName is the human-readable name announced with heartbeats.
	DisplayName string

	// AutosaveInterval is the time between dirty-flag checks.
	AutosaveInterval time.Duration

	// HeartbeatInterval is the time between presence announcements.
	HeartbeatInterval time.Duration

	// LivenessWindow is the age beyond which roster entries count as stale.
	LivenessWindow time.Duration

	// RemoteTimeout bounds every remote store call.
	RemoteTimeout time.Duration

	// WatchRetryInterval is the wait between watch resubscribe attempts.
	WatchRetryInterval time.Duration

	// MaxWatchRetries is how often resubscribing is attempted before the
	// session silently degrades to its last known roster.
	MaxWatchRetries int

	// RosterHandler receives the roster after every refresh.
	RosterHandler func([]types.PresenceRecord)

	// ConflictHandler receives every remote version written by another
	// session, after it was placed in the conflict slot.
	ConflictHandler func(types.RemoteDraftRecord)

	// SaveErrorHandler receives local persistence failures. The in-memory
	// edits are NOT durable when this fires; the save is retried on the
	// next dirty tick.
	SaveErrorHandler func(error)
}

// Option configures Options.
type Option func(*Options)

// WithDisplayName sets the announced display name.
func WithDisplayName(name string) Option {
	return func(o *Options) { o.DisplayName = name }
}

// WithAutosaveInterval sets the autosave interval.
func WithAutosaveInterval(interval time.Duration) Option {
	return func(o *Options) { o.AutosaveInterval = interval }
}

// WithHeartbeatInterval sets the heartbeat interval.
func WithHeartbeatInterval(interval time.Duration) Option {
	return func(o *Options) { o.HeartbeatInterval = interval }
}

// WithLivenessWindow sets the staleness threshold for roster entries.
func WithLivenessWindow(window time.Duration) Option {
	return func(o *Options) { o.LivenessWindow = window }
}

// WithRemoteTimeout bounds remote store calls.
func WithRemoteTimeout(timeout time.Duration) Option {
	return func(o *Options) { o.RemoteTimeout = timeout }
}

// WithWatchRetry sets the resubscribe policy of the change subscription.
func WithWatchRetry(interval time.Duration, maxRetries int) Option {
	return func(o *Options) {
		o.WatchRetryInterval = interval
		o.MaxWatchRetries = maxRetries
	}
}

// WithRosterHandler sets the roster callback.
func WithRosterHandler(handler func([]types.PresenceRecord)) Option {
	return func(o *Options) { o.RosterHandler = handler }
}

// WithConflictHandler sets the conflict callback.
func WithConflictHandler(handler func(types.RemoteDraftRecord)) Option {
	return func(o *Options) { o.ConflictHandler = handler }
}

// WithSaveErrorHandler sets the local persistence failure callback.
func WithSaveErrorHandler(handler func(error)) Option {
	return func(o *Options) { o.SaveErrorHandler = handler }
}

func buildOptions(opts ...Option) (Options, error) {
	options := Options{
		AutosaveInterval:   DefaultAutosaveInterval,
		HeartbeatInterval:  DefaultHeartbeatInterval,
		LivenessWindow:     DefaultLivenessWindow,
		RemoteTimeout:      DefaultRemoteTimeout,
		WatchRetryInterval: DefaultWatchRetryInterval,
		MaxWatchRetries:    DefaultMaxWatchRetries,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.AutosaveInterval <= 0 {
		return Options{}, fmt.Errorf("autosave interval %s: %w", options.AutosaveInterval, ErrInvalidOptions)
	}
	if options.HeartbeatInterval < 2*options.AutosaveInterval {
		return Options{}, fmt.Errorf(
			"heartbeat interval %s should be at least twice the autosave interval %s: %w",
			options.HeartbeatInterval,
			options.AutosaveInterval,
			ErrInvalidOptions,
		)
	}
	if options.LivenessWindow < options.HeartbeatInterval {
		return Options{}, fmt.Errorf(
			"liveness window %s shorter than heartbeat interval %s: %w",
			options.LivenessWindow,
			options.HeartbeatInterval,
			ErrInvalidOptions,
		)
	}

	return options, nil
}
