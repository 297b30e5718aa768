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
	"crypto/sha256"
	"encoding/hex"
)

// DiscriminatorSize is the length of the prefix that identifies accounts,
// instructions and events
const DiscriminatorSize = 8

// Discriminator is the 8-byte prefix written before account data, instruction
// arguments and event payloads
type Discriminator [DiscriminatorSize]byte

func (d Discriminator) String() string {
	return hex.EncodeToString(d[:])
}

func (d Discriminator) Bytes() []byte {
	return d[:]
}

// AccountDiscriminator returns the prefix of accounts of the named type
func AccountDiscriminator(name string) Discriminator {
	return namespacedHash("account", name)
}

// InstructionDiscriminator returns the prefix of the named instruction. The name
// is converted to snake_case first
func InstructionDiscriminator(name string) Discriminator {
	return namespacedHash("global", SnakeCase(name))
}

// EventDiscriminator returns the prefix of the named event
func EventDiscriminator(name string) Discriminator {
	return namespacedHash("event", name)
}

func namespacedHash(namespace string, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var ret Discriminator
	copy(ret[:], sum[:DiscriminatorSize])
	return ret
}
