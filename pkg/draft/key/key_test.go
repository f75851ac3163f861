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

package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Run("combined key determinism test", func(t *testing.T) {
		k1, err := New("biology", "term-2", "cell-division", "explanation")
		assert.NoError(t, err)
		k2, err := New("biology", "term-2", "cell-division", "explanation")
		assert.NoError(t, err)

		assert.Equal(t, k1.Combined(), k2.Combined())
		assert.Equal(t, "biology$term-2$cell-division$explanation", k1.Combined())
	})

	t.Run("distinct tuples never collide test", func(t *testing.T) {
		keys := [][4]string{
			{"biology", "term-2", "cell-division", "explanation"},
			{"biology", "term-2", "cell-division", "flashcard"},
			{"biology", "term-2", "mitosis", "explanation"},
			{"biology", "term-3", "cell-division", "explanation"},
			{"chemistry", "term-2", "cell-division", "explanation"},
		}

		seen := make(map[string]bool)
		for _, parts := range keys {
			k, err := New(parts[0], parts[1], parts[2], parts[3])
			assert.NoError(t, err)
			assert.False(t, seen[k.Combined()], "collision on %s", k.Combined())
			seen[k.Combined()] = true
		}
	})

	t.Run("from combined round trip test", func(t *testing.T) {
		k, err := New("physics", "unit-1", "kinematics", "quiz")
		assert.NoError(t, err)

		parsed, err := FromCombined(k.Combined())
		assert.NoError(t, err)
		assert.Equal(t, k, parsed)
	})

	t.Run("invalid combined key test", func(t *testing.T) {
		_, err := FromCombined("only$three$parts")
		assert.ErrorIs(t, err, ErrInvalidCombinedKey)

		_, err = FromCombined("too$many$parts$in$here")
		assert.ErrorIs(t, err, ErrInvalidCombinedKey)

		_, err = FromCombined("has$an$empty$")
		assert.ErrorIs(t, err, ErrInvalidKeyPart)
	})

	t.Run("invalid key part test", func(t *testing.T) {
		_, err := New("", "term-2", "cell-division", "explanation")
		assert.ErrorIs(t, err, ErrInvalidKeyPart)

		_, err = New("bio logy", "term-2", "cell-division", "explanation")
		assert.ErrorIs(t, err, ErrInvalidKeyPart)

		_, err = New("Biology", "term-2", "cell-division", "explanation")
		assert.ErrorIs(t, err, ErrInvalidKeyPart)

		// the splitter is outside the slug alphabet, so a part can never
		// smuggle a separator in.
		_, err = New("bio$logy", "term-2", "cell-division", "explanation")
		assert.ErrorIs(t, err, ErrInvalidKeyPart)
	})

	t.Run("slug alphabet test", func(t *testing.T) {
		k, err := New("a-b.c_d~e", "0", "x", "explanation")
		assert.NoError(t, err)
		assert.NoError(t, k.Validate())
	})
}
