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

package idl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/goborsh/borsh"
)

// AccountCoder encodes and decodes account data: an account discriminator followed
// by the borsh encoding of the account type
type AccountCoder struct {
	registry *Registry
}

func NewAccountCoder(r *Registry) *AccountCoder {
	return &AccountCoder{registry: r}
}

// Encode returns the account data for a value of the named account type
func (c *AccountCoder) Encode(name string, v borsh.Value) ([]byte, error) {
	s, err := c.registry.account(name)
	if err != nil {
		return nil, err
	}
	return encodePrefixed(c.registry.codec, AccountDiscriminator(name), v, s)
}

// Decode identifies the account type from the discriminator and decodes the data.
// Bytes after the value are ignored, since accounts are often allocated larger
// than their contents
func (c *AccountCoder) Decode(data []byte) (string, borsh.Value, error) {
	disc, err := splitDiscriminator(data)
	if err != nil {
		return "", borsh.Value{}, err
	}
	name, ok := c.registry.accountsByDisc[disc]
	if !ok {
		return "", borsh.Value{}, fmt.Errorf("%w: account %s", ErrUnknownDiscriminator, disc)
	}
	v, _, err := c.registry.codec.Decode(data[DiscriminatorSize:], c.registry.types[name])
	if err != nil {
		return "", borsh.Value{}, fmt.Errorf("decode account %s: %w", name, err)
	}
	return name, v, nil
}

// DecodeAs decodes data as the named account type, failing with
// ErrDiscriminatorMismatch when it holds some other account
func (c *AccountCoder) DecodeAs(name string, data []byte) (borsh.Value, error) {
	s, err := c.registry.account(name)
	if err != nil {
		return borsh.Value{}, err
	}
	disc, err := splitDiscriminator(data)
	if err != nil {
		return borsh.Value{}, err
	}
	if expected := AccountDiscriminator(name); disc != expected {
		return borsh.Value{}, fmt.Errorf(
			"%w: expected %s for %s, got %s",
			ErrDiscriminatorMismatch,
			expected,
			name,
			disc,
		)
	}
	v, _, err := c.registry.codec.Decode(data[DiscriminatorSize:], s)
	if err != nil {
		return borsh.Value{}, fmt.Errorf("decode account %s: %w", name, err)
	}
	return v, nil
}

// AccountSpace returns the number of bytes to allocate for an account of the named
// type: the discriminator plus the largest possible encoding
func (c *AccountCoder) AccountSpace(name string) (int, error) {
	s, err := c.registry.account(name)
	if err != nil {
		return 0, err
	}
	size, ok := borsh.MaxSize(s)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnboundedSize, name)
	}
	return DiscriminatorSize + size, nil
}

// InstructionCoder encodes and decodes instruction data: the instruction sighash
// followed by the borsh encoding of the arguments
type InstructionCoder struct {
	registry *Registry
}

func NewInstructionCoder(r *Registry) *InstructionCoder {
	return &InstructionCoder{registry: r}
}

// Encode returns the instruction data for the named instruction. args is a record
// holding the arguments in declaration order
func (c *InstructionCoder) Encode(name string, args borsh.Value) ([]byte, error) {
	s, ok := c.registry.instructions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstruction, name)
	}
	return encodePrefixed(c.registry.codec, InstructionDiscriminator(name), args, s)
}

// Decode identifies the instruction from its sighash and decodes its arguments
func (c *InstructionCoder) Decode(data []byte) (string, borsh.Value, error) {
	disc, err := splitDiscriminator(data)
	if err != nil {
		return "", borsh.Value{}, err
	}
	name, ok := c.registry.instrsByDisc[disc]
	if !ok {
		return "", borsh.Value{}, fmt.Errorf("%w: instruction %s", ErrUnknownDiscriminator, disc)
	}
	v, err := c.registry.codec.DecodeExact(data[DiscriminatorSize:], c.registry.instructions[name])
	if err != nil {
		return "", borsh.Value{}, fmt.Errorf("decode instruction %s: %w", name, err)
	}
	return name, v, nil
}

// EventCoder encodes and decodes events: the event discriminator followed by the
// borsh encoding of the event fields
type EventCoder struct {
	registry *Registry
}

func NewEventCoder(r *Registry) *EventCoder {
	return &EventCoder{registry: r}
}

// DecodedEvent is an event found in program logs
type DecodedEvent struct {
	Name string
	Data borsh.Value
}

// logDataPrefix marks the log lines that carry base64 event data
const logDataPrefix = "Program data: "

func (c *EventCoder) Encode(name string, v borsh.Value) ([]byte, error) {
	s, ok := c.registry.events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	return encodePrefixed(c.registry.codec, EventDiscriminator(name), v, s)
}

// Decode identifies the event from its discriminator and decodes its fields
func (c *EventCoder) Decode(data []byte) (string, borsh.Value, error) {
	disc, err := splitDiscriminator(data)
	if err != nil {
		return "", borsh.Value{}, err
	}
	name, ok := c.registry.eventsByDisc[disc]
	if !ok {
		return "", borsh.Value{}, fmt.Errorf("%w: event %s", ErrUnknownDiscriminator, disc)
	}
	v, err := c.registry.codec.DecodeExact(data[DiscriminatorSize:], c.registry.events[name])
	if err != nil {
		return "", borsh.Value{}, fmt.Errorf("decode event %s: %w", name, err)
	}
	return name, v, nil
}

// ParseLogs decodes the events of this program found in transaction log lines.
// Data lines with an unknown discriminator belong to other programs and are skipped
func (c *EventCoder) ParseLogs(logs []string) ([]DecodedEvent, error) {
	var ret []DecodedEvent
	for idx, line := range logs {
		encoded, ok := strings.CutPrefix(line, logDataPrefix)
		if !ok {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("log line %d: %w", idx, err)
		}
		if len(data) < DiscriminatorSize {
			continue
		}
		name, v, err := c.Decode(data)
		if err != nil {
			if errors.Is(err, ErrUnknownDiscriminator) {
				continue
			}
			return nil, fmt.Errorf("log line %d: %w", idx, err)
		}
		ret = append(ret, DecodedEvent{Name: name, Data: v})
	}
	return ret, nil
}

func encodePrefixed(codec *borsh.Codec, disc Discriminator, v borsh.Value, s *borsh.Schema) ([]byte, error) {
	data, err := codec.Encode(v, s)
	if err != nil {
		return nil, err
	}
	ret := make([]byte, 0, DiscriminatorSize+len(data))
	ret = append(ret, disc[:]...)
	return append(ret, data...), nil
}

func splitDiscriminator(data []byte) (Discriminator, error) {
	var ret Discriminator
	if len(data) < DiscriminatorSize {
		return ret, fmt.Errorf(
			"%w: need %d discriminator bytes, have %d",
			borsh.ErrTruncatedInput,
			DiscriminatorSize,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}
