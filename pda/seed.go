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

package pda

import (
	"encoding/binary"

	"github.com/blinklabs-io/goborsh/common"
)

// Seed is one component of the derivation input
type Seed []byte

// Bytes returns a seed holding a copy of b
func Bytes(b []byte) Seed {
	ret := make(Seed, len(b))
	copy(ret, b)
	return ret
}

// String returns a seed holding the UTF-8 bytes of s
func String(s string) Seed {
	return Seed(s)
}

func Uint8(v uint8) Seed {
	return Seed{v}
}

func Uint16(v uint16) Seed {
	return binary.LittleEndian.AppendUint16(nil, v)
}

func Uint32(v uint32) Seed {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func Uint64(v uint64) Seed {
	return binary.LittleEndian.AppendUint64(nil, v)
}

func Int8(v int8) Seed {
	return Seed{byte(v)}
}

func Int16(v int16) Seed {
	return Uint16(uint16(v))
}

func Int32(v int32) Seed {
	return Uint32(uint32(v))
}

func Int64(v int64) Seed {
	return Uint64(uint64(v))
}

// Key returns a seed holding the 32 bytes of an identifier
func Key(id common.Identifier) Seed {
	return id.Bytes()
}
