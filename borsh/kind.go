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

import "fmt"

// Kind identifies the shape of a Schema node and of the Value built for it
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindF32
	KindF64
	KindBytes
	KindText
	KindFixedArray
	KindSequence
	KindOption
	KindRecord
	KindUnion
	KindIdentifier
)

var kindNames = map[Kind]string{
	KindBool:       "bool",
	KindU8:         "u8",
	KindU16:        "u16",
	KindU32:        "u32",
	KindU64:        "u64",
	KindU128:       "u128",
	KindI8:         "i8",
	KindI16:        "i16",
	KindI32:        "i32",
	KindI64:        "i64",
	KindI128:       "i128",
	KindF32:        "f32",
	KindF64:        "f64",
	KindBytes:      "bytes",
	KindText:       "string",
	KindFixedArray: "array",
	KindSequence:   "vec",
	KindOption:     "option",
	KindRecord:     "struct",
	KindUnion:      "enum",
	KindIdentifier: "publicKey",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindByName returns the primitive Kind for a type name as it appears in an IDL
func KindByName(name string) (Kind, bool) {
	for k, v := range kindNames {
		if v == name && k.IsPrimitive() {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsPrimitive returns true for kinds that have no child schema
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindFixedArray, KindSequence, KindOption, KindRecord, KindUnion, KindInvalid:
		return false
	}
	_, ok := kindNames[k]
	return ok
}

// fixedWidth returns the encoded width of integer, float, bool and identifier kinds
func (k Kind) fixedWidth() int {
	switch k {
	case KindBool, KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32:
		return 4
	case KindU64, KindI64, KindF64:
		return 8
	case KindU128, KindI128:
		return 16
	case KindIdentifier:
		return 32
	}
	return 0
}
