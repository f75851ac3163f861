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

	"github.com/rs/xid"

	"github.com/notebox-team/notebox/pkg/localstore"
)

// identityKey is the reserved local KV key holding the editor identity.
const identityKey = "notebox:editor-id"

// LoadIdentity returns the durable editor identity of this installation,
// generating and persisting one on first use. The identity attributes
// heartbeats and autosave writes to the same writer across restarts and is
// independent of the authentication identity.
func LoadIdentity(kv localstore.KV) (string, error) {
	raw, ok, err := kv.Get(identityKey)
	if err != nil {
		return "", fmt.Errorf("load editor identity: %w", err)
	}
	if ok && len(raw) > 0 {
		return string(raw), nil
	}

	id := xid.New().String()
	if err := kv.Set(identityKey, []byte(id)); err != nil {
		return "", fmt.Errorf("persist editor identity: %w", err)
	}

	return id, nil
}
