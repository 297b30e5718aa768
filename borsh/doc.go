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

// Package borsh implements a schema-driven binary codec for account and
// instruction data.
//
// Values are encoded without any self-description: the reader must supply
// the same Schema the writer used. All integers are little-endian, there is
// no padding, and every variable-length item carries a u32 length prefix.
//
// # Key Types
//
//   - Schema: compile-time type description (primitives, fixed arrays,
//     sequences, options, records, unions, identifiers)
//   - Value: runtime data tree matching a Schema
//   - Codec: encoder/decoder with configurable limits
//
// # Wire Layout
//
//	Bool           1 byte (0x00 or 0x01)
//	U8..U128       1..16 bytes, little-endian
//	I8..I128       1..16 bytes, two's complement little-endian
//	F32/F64        IEEE-754 bit pattern, little-endian
//	Bytes/Text     u32 byte count + bytes
//	FixedArray     N element encodings
//	Sequence       u32 element count + elements
//	Option         0x00, or 0x01 + element
//	Record         field encodings in schema order
//	Union          u8 variant ordinal + variant payload
//	Identifier     32 raw bytes
//
// # Usage
//
//	schema := borsh.RecordOf("BarStruct",
//	    borsh.NamedField("some_field", borsh.BoolType),
//	    borsh.NamedField("other_field", borsh.U8Type),
//	)
//	data, err := borsh.Encode(value, schema)
//	...
//	decoded, n, err := borsh.Decode(data, schema)
//
// Schemas are treated as immutable once built. Use Schema.Clone to derive a
// modified copy.
package borsh
