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

// Package common holds types shared by the codec and the address deriver
package common

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blinklabs-io/goborsh/cbor"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const IdentifierSize = 32

var ErrInvalidIdentifier = errors.New("invalid identifier")

// Identifier is an opaque 32-byte value, such as a program id or a derived address
type Identifier [IdentifierSize]byte

// NewIdentifier returns an Identifier from the provided bytes, which must be exactly 32 bytes long
func NewIdentifier(data []byte) (Identifier, error) {
	var ret Identifier
	if len(data) != IdentifierSize {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidIdentifier,
			IdentifierSize,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}

// ParseIdentifier decodes a base58 identifier string
func ParseIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, fmt.Errorf("%w: empty string", ErrInvalidIdentifier)
	}
	decoded := base58.Decode(s)
	// base58.Decode returns an empty slice for strings containing invalid characters
	if len(decoded) == 0 {
		return Identifier{}, fmt.Errorf(
			"%w: invalid base58 string %q",
			ErrInvalidIdentifier,
			s,
		)
	}
	return NewIdentifier(decoded)
}

// MustParseIdentifier is like ParseIdentifier but panics on error. It's intended for
// package-level constants
func MustParseIdentifier(s string) Identifier {
	ret, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return ret
}

func (i Identifier) String() string {
	return base58.Encode(i[:])
}

func (i Identifier) Bytes() []byte {
	return i[:]
}

func (i Identifier) IsZero() bool {
	return i == Identifier{}
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Identifier) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	parsed, err := ParseIdentifier(tmp)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

func (i Identifier) MarshalCBOR() ([]byte, error) {
	// Always encode a full-sized bytestring, even for the zero value
	idBytes := make([]byte, IdentifierSize)
	copy(idBytes, i[:])
	return cbor.Encode(idBytes)
}

func (i *Identifier) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	parsed, err := NewIdentifier(tmp)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
