// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package borsh

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput is returned when decoding runs out of bytes
	ErrTruncatedInput = errors.New("truncated input")
	// ErrInvalidEncoding is returned for structurally impossible input, such as an
	// out-of-range union ordinal, a bool byte other than 0 or 1, or invalid UTF-8
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrSchemaMismatch is returned when a value does not conform to the schema it
	// is encoded with
	ErrSchemaMismatch = errors.New("value does not match schema")
	// ErrInvalidSchema is returned for malformed schema trees
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrTrailingBytes is returned by DecodeExact when input remains after the value
	ErrTrailingBytes = fmt.Errorf("%w: trailing bytes", ErrInvalidEncoding)
)

// DecodeError describes where in the input and in the schema a decode failed
type DecodeError struct {
	Path   string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode at offset %d: %s", e.Offset, e.Err)
	}
	return fmt.Sprintf("decode %s at offset %d: %s", e.Path, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MismatchError describes a value that does not conform to its schema
type MismatchError struct {
	Path   string
	Reason string
}

func (e *MismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrSchemaMismatch, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrSchemaMismatch, e.Path, e.Reason)
}

func (e *MismatchError) Unwrap() error {
	return ErrSchemaMismatch
}
