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

// Package key provides the identity of a draft. A draft key joins the local
// store, the remote draft store and the presence store for one editable unit.
package key

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notebox-team/notebox/pkg/validation"
)

const (
	// Splitter is used to separate the parts of a combined key. It is not
	// allowed inside any single part, so distinct tuples never collide.
	Splitter = "$"

	tokenLen = 4
)

var (
	// ErrInvalidCombinedKey is returned when the given combined key is invalid.
	ErrInvalidCombinedKey = errors.New("invalid combined key")

	// ErrInvalidKeyPart is returned when a part of the key is empty or
	// contains characters outside the slug alphabet.
	ErrInvalidKeyPart = errors.New("invalid key part")
)

// Key represents the identity of a draft. Every store is keyed off the
// combined string of this key.
type Key struct {
	Collection  string
	Group       string
	Subgroup    string
	ContentType string
}

// New creates a validated Key from the given parts.
func New(collection, group, subgroup, contentType string) (Key, error) {
	k := Key{
		Collection:  collection,
		Group:       group,
		Subgroup:    subgroup,
		ContentType: contentType,
	}
	if err := k.Validate(); err != nil {
		return Key{}, err
	}

	return k, nil
}

// FromCombined creates an instance of Key from the given combined key.
func FromCombined(combined string) (Key, error) {
	splits := strings.Split(combined, Splitter)
	if len(splits) != tokenLen {
		return Key{}, fmt.Errorf("%s: %w", combined, ErrInvalidCombinedKey)
	}

	return New(splits[0], splits[1], splits[2], splits[3])
}

// Combined returns the string of this key. Identical keys always yield the
// identical string.
func (k Key) Combined() string {
	return k.Collection + Splitter + k.Group + Splitter + k.Subgroup + Splitter + k.ContentType
}

// String returns the combined string of this key.
func (k Key) String() string {
	return k.Combined()
}

// Validate checks whether every part of this key is a non-empty slug.
func (k Key) Validate() error {
	for _, part := range []string{k.Collection, k.Group, k.Subgroup, k.ContentType} {
		if part == "" {
			return fmt.Errorf("empty part in %q: %w", k.Combined(), ErrInvalidKeyPart)
		}
		if err := validation.ValidateValue(part, "slug"); err != nil {
			return fmt.Errorf("%q: %w", part, ErrInvalidKeyPart)
		}
	}

	return nil
}
