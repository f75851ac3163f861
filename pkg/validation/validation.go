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

// Package validation provides tag-based validation of values and structs.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// slugRegexString is the rule for draft key parts. The key splitter `$` is
// deliberately outside this alphabet.
const slugRegexString = `^[a-z0-9\-._~]+$`

var (
	slugRegex = regexp.MustCompile(slugRegexString)

	// ErrInvalidSlug is returned when a value violates the slug rule.
	ErrInvalidSlug = errors.New("value should only contain a-z, 0-9, -, ., _, ~")

	defaultValidator = validator.New()
	defaultEn        = en.New()
	uni              = ut.New(defaultEn, defaultEn)
	trans, _         = uni.GetTranslator(defaultEn.Locale())
)

// StructError is the error returned when a struct field fails validation.
type StructError struct {
	Field string
	Err   error
}

func (e StructError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e StructError) Unwrap() error {
	return e.Err
}

func registerValidation(tag string, fn validator.Func) {
	if err := defaultValidator.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func registerTranslation(tag, msg string) {
	if err := defaultValidator.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		if err := ut.Add(tag, msg, true); err != nil {
			return fmt.Errorf("add translation: %w", err)
		}
		return nil
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, fe.Field())
		return t
	}); err != nil {
		panic(err)
	}
}

// ValidateValue validates a single value with the given tag.
func ValidateValue(v interface{}, tag string) error {
	if err := defaultValidator.Var(v, tag); err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			return StructError{Field: e.Field(), Err: errors.New(e.Translate(trans))}
		}
	}

	return nil
}

// ValidateStruct validates the given struct by its `validate` tags.
func ValidateStruct(s interface{}) error {
	if err := defaultValidator.Struct(s); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("validate struct: %w", invalid)
		}
		for _, e := range err.(validator.ValidationErrors) {
			return StructError{Field: e.Field(), Err: errors.New(e.Translate(trans))}
		}
	}

	return nil
}

func init() {
	registerValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	registerTranslation("slug", ErrInvalidSlug.Error())
}
