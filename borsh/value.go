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
	"bytes"
	"math"
	"math/big"

	"github.com/blinklabs-io/goborsh/common"
)

// Value is a runtime data tree that matches a Schema. Only the members
// relevant to Kind are meaningful:
//
//	Bool                     Bool
//	U8, U16, U32, U64        Uint
//	I8, I16, I32, I64        Int
//	U128, I128               Big (nil is zero)
//	F32                      F32
//	F64                      F64
//	Bytes                    Bytes
//	Text                     Text
//	Identifier               Ident
//	FixedArray, Sequence     Items
//	Option                   Elem (nil when absent)
//	Record                   Fields
//	Union                    Variant, plus Items (single/tuple) or Fields (named)
type Value struct {
	Kind    Kind
	Bool    bool
	Uint    uint64
	Int     int64
	Big     *big.Int
	F32     float32
	F64     float64
	Bytes   []byte
	Text    string
	Ident   common.Identifier
	Variant int
	Items   []Value
	Fields  []FieldValue
	Elem    *Value
}

// FieldValue is a named member of a record or of a named union payload
type FieldValue struct {
	Name  string
	Value Value
}

func NewBool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

func NewU8(v uint8) Value { return Value{Kind: KindU8, Uint: uint64(v)} }

func NewU16(v uint16) Value { return Value{Kind: KindU16, Uint: uint64(v)} }

func NewU32(v uint32) Value { return Value{Kind: KindU32, Uint: uint64(v)} }

func NewU64(v uint64) Value { return Value{Kind: KindU64, Uint: v} }

func NewU128(v *big.Int) Value { return Value{Kind: KindU128, Big: v} }

func NewI8(v int8) Value { return Value{Kind: KindI8, Int: int64(v)} }

func NewI16(v int16) Value { return Value{Kind: KindI16, Int: int64(v)} }

func NewI32(v int32) Value { return Value{Kind: KindI32, Int: int64(v)} }

func NewI64(v int64) Value { return Value{Kind: KindI64, Int: v} }

func NewI128(v *big.Int) Value { return Value{Kind: KindI128, Big: v} }

func NewF32(v float32) Value { return Value{Kind: KindF32, F32: v} }

func NewF64(v float64) Value { return Value{Kind: KindF64, F64: v} }

func NewBytes(v []byte) Value { return Value{Kind: KindBytes, Bytes: v} }

func NewText(v string) Value { return Value{Kind: KindText, Text: v} }

func NewIdentifier(v common.Identifier) Value {
	return Value{Kind: KindIdentifier, Ident: v}
}

func NewFixedArray(items ...Value) Value {
	return Value{Kind: KindFixedArray, Items: items}
}

func NewSequence(items ...Value) Value {
	return Value{Kind: KindSequence, Items: items}
}

// Some returns a present option holding v
func Some(v Value) Value {
	return Value{Kind: KindOption, Elem: &v}
}

// None returns an absent option
func None() Value {
	return Value{Kind: KindOption}
}

func NewRecord(fields ...FieldValue) Value {
	return Value{Kind: KindRecord, Fields: fields}
}

func Named(name string, v Value) FieldValue {
	return FieldValue{Name: name, Value: v}
}

// NewUnit returns a union value for a variant without payload
func NewUnit(variant int) Value {
	return Value{Kind: KindUnion, Variant: variant}
}

// NewTuple returns a union value for a single or tuple variant
func NewTuple(variant int, items ...Value) Value {
	return Value{Kind: KindUnion, Variant: variant, Items: items}
}

// NewStructVariant returns a union value for a variant with named fields
func NewStructVariant(variant int, fields ...FieldValue) Value {
	return Value{Kind: KindUnion, Variant: variant, Fields: fields}
}

// IsPresent reports whether an option value holds an element
func (v Value) IsPresent() bool {
	return v.Kind == KindOption && v.Elem != nil
}

// Field returns the named member of a record or named union payload
func (v Value) Field(name string) (Value, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether two values are identical. Floats are compared by bit
// pattern, so NaN equals NaN with the same payload, and a nil byte slice equals
// an empty one
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == other.Bool
	case KindU8, KindU16, KindU32, KindU64:
		return v.Uint == other.Uint
	case KindI8, KindI16, KindI32, KindI64:
		return v.Int == other.Int
	case KindU128, KindI128:
		return bigOrZero(v.Big).Cmp(bigOrZero(other.Big)) == 0
	case KindF32:
		return math.Float32bits(v.F32) == math.Float32bits(other.F32)
	case KindF64:
		return math.Float64bits(v.F64) == math.Float64bits(other.F64)
	case KindBytes:
		return bytes.Equal(v.Bytes, other.Bytes)
	case KindText:
		return v.Text == other.Text
	case KindIdentifier:
		return v.Ident == other.Ident
	case KindFixedArray, KindSequence:
		return itemsEqual(v.Items, other.Items)
	case KindOption:
		if v.Elem == nil || other.Elem == nil {
			return v.Elem == nil && other.Elem == nil
		}
		return v.Elem.Equal(*other.Elem)
	case KindRecord:
		return fieldsEqual(v.Fields, other.Fields)
	case KindUnion:
		return v.Variant == other.Variant &&
			itemsEqual(v.Items, other.Items) &&
			fieldsEqual(v.Fields, other.Fields)
	}
	return true
}

func itemsEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !a[idx].Equal(b[idx]) {
			return false
		}
	}
	return true
}

func fieldsEqual(a, b []FieldValue) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx].Name != b[idx].Name || !a[idx].Value.Equal(b[idx].Value) {
			return false
		}
	}
	return true
}

func bigOrZero(b *big.Int) *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return b
}
