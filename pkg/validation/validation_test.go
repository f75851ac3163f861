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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	t.Run("valid slug test", func(t *testing.T) {
		for _, value := range []string{
			"biology",
			"term-2",
			"cell.division",
			"a_b~c",
			"0",
		} {
			assert.NoError(t, ValidateValue(value, "slug"), value)
		}
	})

	t.Run("invalid slug test", func(t *testing.T) {
		for _, value := range []string{
			"",
			"Biology",
			"has space",
			"has$splitter",
			"utf✓8",
		} {
			assert.Error(t, ValidateValue(value, "slug"), value)
		}
	})
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name string `validate:"required,slug"`
	}

	t.Run("struct validation test", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(form{Name: "valid-name"}))

		err := ValidateStruct(form{Name: "Invalid Name"})
		assert.Error(t, err)

		var structErr StructError
		assert.ErrorAs(t, err, &structErr)
		assert.Equal(t, "Name", structErr.Field)
	})
}
