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
	"fmt"

	"github.com/jinzhu/copier"
)

// MaxVariants is the number of variants addressable by the 1-byte union ordinal
const MaxVariants = 256

// Shape describes the payload layout of a union variant
type Shape uint8

const (
	ShapeNone   Shape = iota // no payload
	ShapeSingle              // one unnamed value
	ShapeTuple               // ordered list of unnamed values
	ShapeNamed               // ordered set of named values
)

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeSingle:
		return "single"
	case ShapeTuple:
		return "tuple"
	case ShapeNamed:
		return "named"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// Schema is the type description used to encode and decode a Value
type Schema struct {
	Kind Kind `cbor:"0,keyasint"`
	// Name is the declared type name for records and unions
	Name string `cbor:"1,keyasint,omitempty"`
	// Length is the element count of a fixed array
	Length int `cbor:"2,keyasint,omitempty"`
	// Elem is the element type of fixed arrays, sequences and options
	Elem     *Schema   `cbor:"3,keyasint,omitempty"`
	Fields   []Field   `cbor:"4,keyasint,omitempty"`
	Variants []Variant `cbor:"5,keyasint,omitempty"`
}

// Field is a record field, or a member of a union variant payload. Members of
// single and tuple payloads have an empty name
type Field struct {
	Name string  `cbor:"0,keyasint,omitempty"`
	Type *Schema `cbor:"1,keyasint"`
}

type Variant struct {
	Name   string  `cbor:"0,keyasint"`
	Shape  Shape   `cbor:"1,keyasint,omitempty"`
	Fields []Field `cbor:"2,keyasint,omitempty"`
}

// Primitive schemas. These are shared and must not be modified
var (
	BoolType       = &Schema{Kind: KindBool}
	U8Type         = &Schema{Kind: KindU8}
	U16Type        = &Schema{Kind: KindU16}
	U32Type        = &Schema{Kind: KindU32}
	U64Type        = &Schema{Kind: KindU64}
	U128Type       = &Schema{Kind: KindU128}
	I8Type         = &Schema{Kind: KindI8}
	I16Type        = &Schema{Kind: KindI16}
	I32Type        = &Schema{Kind: KindI32}
	I64Type        = &Schema{Kind: KindI64}
	I128Type       = &Schema{Kind: KindI128}
	F32Type        = &Schema{Kind: KindF32}
	F64Type        = &Schema{Kind: KindF64}
	BytesType      = &Schema{Kind: KindBytes}
	TextType       = &Schema{Kind: KindText}
	IdentifierType = &Schema{Kind: KindIdentifier}
)

// PrimitiveType returns the shared schema for a primitive kind
func PrimitiveType(k Kind) (*Schema, error) {
	switch k {
	case KindBool:
		return BoolType, nil
	case KindU8:
		return U8Type, nil
	case KindU16:
		return U16Type, nil
	case KindU32:
		return U32Type, nil
	case KindU64:
		return U64Type, nil
	case KindU128:
		return U128Type, nil
	case KindI8:
		return I8Type, nil
	case KindI16:
		return I16Type, nil
	case KindI32:
		return I32Type, nil
	case KindI64:
		return I64Type, nil
	case KindI128:
		return I128Type, nil
	case KindF32:
		return F32Type, nil
	case KindF64:
		return F64Type, nil
	case KindBytes:
		return BytesType, nil
	case KindText:
		return TextType, nil
	case KindIdentifier:
		return IdentifierType, nil
	}
	return nil, fmt.Errorf("%w: %s is not a primitive kind", ErrInvalidSchema, k)
}

func ArrayOf(length int, elem *Schema) *Schema {
	return &Schema{Kind: KindFixedArray, Length: length, Elem: elem}
}

func SequenceOf(elem *Schema) *Schema {
	return &Schema{Kind: KindSequence, Elem: elem}
}

func OptionOf(elem *Schema) *Schema {
	return &Schema{Kind: KindOption, Elem: elem}
}

func RecordOf(name string, fields ...Field) *Schema {
	return &Schema{Kind: KindRecord, Name: name, Fields: fields}
}

func UnionOf(name string, variants ...Variant) *Schema {
	return &Schema{Kind: KindUnion, Name: name, Variants: variants}
}

func NamedField(name string, s *Schema) Field {
	return Field{Name: name, Type: s}
}

func UnitVariant(name string) Variant {
	return Variant{Name: name, Shape: ShapeNone}
}

func SingleVariant(name string, s *Schema) Variant {
	return Variant{Name: name, Shape: ShapeSingle, Fields: []Field{{Type: s}}}
}

func TupleVariant(name string, elems ...*Schema) Variant {
	fields := make([]Field, 0, len(elems))
	for _, elem := range elems {
		fields = append(fields, Field{Type: elem})
	}
	return Variant{Name: name, Shape: ShapeTuple, Fields: fields}
}

func StructVariant(name string, fields ...Field) Variant {
	return Variant{Name: name, Shape: ShapeNamed, Fields: fields}
}

// VariantIndex returns the ordinal of the named union variant
func (s *Schema) VariantIndex(name string) (int, bool) {
	for idx, variant := range s.Variants {
		if variant.Name == name {
			return idx, true
		}
	}
	return 0, false
}

// FieldIndex returns the position of the named record field
func (s *Schema) FieldIndex(name string) (int, bool) {
	for idx, field := range s.Fields {
		if field.Name == name {
			return idx, true
		}
	}
	return 0, false
}

// Clone returns a deep copy of the schema
func (s *Schema) Clone() (*Schema, error) {
	if s == nil {
		return nil, nil
	}
	ret := &Schema{}
	if err := copier.CopyWithOption(ret, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone schema: %w", err)
	}
	return ret, nil
}

func (s *Schema) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case KindFixedArray:
		return fmt.Sprintf("[%s; %d]", s.Elem, s.Length)
	case KindSequence:
		return fmt.Sprintf("vec<%s>", s.Elem)
	case KindOption:
		return fmt.Sprintf("option<%s>", s.Elem)
	case KindRecord, KindUnion:
		if s.Name != "" {
			return s.Name
		}
	}
	return s.Kind.String()
}

// Validate checks that the schema tree is well formed
func (s *Schema) Validate() error {
	return s.validate(s.String())
}

func (s *Schema) validate(path string) error {
	if s == nil {
		return fmt.Errorf("%w: %s: nil schema", ErrInvalidSchema, path)
	}
	switch s.Kind {
	case KindFixedArray:
		if s.Length < 0 {
			return fmt.Errorf("%w: %s: negative array length %d", ErrInvalidSchema, path, s.Length)
		}
		return s.Elem.validate(path + "[]")
	case KindSequence:
		if err := s.Elem.validate(path + "[]"); err != nil {
			return err
		}
		if minSize(s.Elem) == 0 {
			return fmt.Errorf("%w: %s: sequence of zero-sized %s", ErrInvalidSchema, path, s.Elem)
		}
		return nil
	case KindOption:
		return s.Elem.validate(path + "[]")
	case KindRecord:
		for _, field := range s.Fields {
			if field.Name == "" {
				return fmt.Errorf("%w: %s: unnamed record field", ErrInvalidSchema, path)
			}
			if err := field.Type.validate(path + "." + field.Name); err != nil {
				return err
			}
		}
		return nil
	case KindUnion:
		if len(s.Variants) > MaxVariants {
			return fmt.Errorf(
				"%w: %s: %d variants exceed the maximum of %d",
				ErrInvalidSchema,
				path,
				len(s.Variants),
				MaxVariants,
			)
		}
		for _, variant := range s.Variants {
			if err := variant.validate(path + "::" + variant.Name); err != nil {
				return err
			}
		}
		return nil
	}
	if !s.Kind.IsPrimitive() {
		return fmt.Errorf("%w: %s: unknown kind %s", ErrInvalidSchema, path, s.Kind)
	}
	return nil
}

func (v Variant) validate(path string) error {
	switch v.Shape {
	case ShapeNone:
		if len(v.Fields) != 0 {
			return fmt.Errorf("%w: %s: unit variant declares fields", ErrInvalidSchema, path)
		}
		return nil
	case ShapeSingle:
		if len(v.Fields) != 1 {
			return fmt.Errorf("%w: %s: single variant must declare one field", ErrInvalidSchema, path)
		}
	case ShapeTuple, ShapeNamed:
	default:
		return fmt.Errorf("%w: %s: unknown shape %s", ErrInvalidSchema, path, v.Shape)
	}
	for idx, field := range v.Fields {
		if v.Shape == ShapeNamed && field.Name == "" {
			return fmt.Errorf("%w: %s: unnamed field in named variant", ErrInvalidSchema, path)
		}
		if err := field.Type.validate(fmt.Sprintf("%s.%d", path, idx)); err != nil {
			return err
		}
	}
	return nil
}
