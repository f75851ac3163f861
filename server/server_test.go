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

package server_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notebox-team/notebox/api/types"
	"github.com/notebox-team/notebox/pkg/draft/key"
	"github.com/notebox-team/notebox/server"
)

func TestServer(t *testing.T) {
	t.Run("start and shutdown test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.Profiling.Port = 11102

		notebox, err := server.New(conf)
		assert.NoError(t, err)
		assert.NoError(t, notebox.Start())

		assert.NoError(t, notebox.Shutdown(true))
		select {
		case <-notebox.ShutdownCh():
		default:
			t.Fatal("shutdown channel not closed")
		}

		// shutting down twice is a no-op.
		assert.NoError(t, notebox.Shutdown(true))
	})

	t.Run("draft service is usable without start test", func(t *testing.T) {
		conf := server.NewConfig()
		conf.Profiling.Port = 11103

		notebox, err := server.New(conf)
		assert.NoError(t, err)
		defer func() { assert.NoError(t, notebox.Shutdown(true)) }()

		k, err := key.New("biology", "term-2", "cell-division", "explanation")
		assert.NoError(t, err)

		ctx := context.Background()
		assert.NoError(t, notebox.Drafts().UpsertDraft(
			ctx, k, "editor-a", types.DraftPayload{Title: "embedded"},
		))

		info, err := notebox.Drafts().Draft(ctx, k)
		assert.NoError(t, err)
		assert.Equal(t, "embedded", info.Payload.Title)
	})
}
