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
	"math/big"
	"unicode/utf8"
)

const lengthPrefixSize = 4

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// EncodedSize returns the exact number of bytes Encode produces for v. It performs
// the same conformance checks as Encode
func EncodedSize(v Value, s *Schema) (int, error) {
	return defaultCodec.EncodedSize(v, s)
}

// EncodedSize is like the package-level EncodedSize but applies the codec's length limit
func (c *Codec) EncodedSize(v Value, s *Schema) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	return c.encodedSize(v, s, rootPath(s))
}

// checkLength rejects length prefixes the codec would refuse to decode
func (c *Codec) checkLength(p *path, length int) error {
	if uint64(length) > uint64(c.maxSequenceLength) {
		return mismatch(p, "length %d exceeds limit %d", length, c.maxSequenceLength)
	}
	return nil
}

func mismatch(p *path, format string, args ...any) error {
	return &MismatchError{Path: p.String(), Reason: fmt.Sprintf(format, args...)}
}

func (c *Codec) encodedSize(v Value, s *Schema, p *path) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("%w: %s: nil schema", ErrInvalidSchema, p)
	}
	if v.Kind != s.Kind {
		return 0, mismatch(p, "expected %s, got %s", s.Kind, v.Kind)
	}
	switch s.Kind {
	case KindBool, KindF32, KindF64, KindIdentifier:
		return s.Kind.fixedWidth(), nil
	case KindU8, KindU16, KindU32:
		width := s.Kind.fixedWidth()
		if v.Uint > uint64(1)<<(8*width)-1 {
			return 0, mismatch(p, "value %d overflows %s", v.Uint, s.Kind)
		}
		return width, nil
	case KindU64:
		return 8, nil
	case KindI8, KindI16, KindI32:
		width := s.Kind.fixedWidth()
		limit := int64(1) << (8*width - 1)
		if v.Int < -limit || v.Int >= limit {
			return 0, mismatch(p, "value %d overflows %s", v.Int, s.Kind)
		}
		return width, nil
	case KindI64:
		return 8, nil
	case KindU128:
		b := bigOrZero(v.Big)
		if b.Sign() < 0 || b.Cmp(maxU128) > 0 {
			return 0, mismatch(p, "value %s overflows u128", b)
		}
		return 16, nil
	case KindI128:
		b := bigOrZero(v.Big)
		if b.Cmp(minI128) < 0 || b.Cmp(maxI128) > 0 {
			return 0, mismatch(p, "value %s overflows i128", b)
		}
		return 16, nil
	case KindBytes:
		if err := c.checkLength(p, len(v.Bytes)); err != nil {
			return 0, err
		}
		return lengthPrefixSize + len(v.Bytes), nil
	case KindText:
		if err := c.checkLength(p, len(v.Text)); err != nil {
			return 0, err
		}
		if !utf8.ValidString(v.Text) {
			return 0, mismatch(p, "text is not valid UTF-8")
		}
		return lengthPrefixSize + len(v.Text), nil
	case KindFixedArray:
		if len(v.Items) != s.Length {
			return 0, mismatch(p, "expected %d array items, got %d", s.Length, len(v.Items))
		}
		return c.itemsSize(v.Items, s.Elem, p, 0)
	case KindSequence:
		if err := c.checkLength(p, len(v.Items)); err != nil {
			return 0, err
		}
		if len(v.Items) > 0 && s.Elem != nil && minSize(s.Elem) == 0 {
			return 0, mismatch(p, "sequence of zero-sized %s must be empty", s.Elem)
		}
		return c.itemsSize(v.Items, s.Elem, p, lengthPrefixSize)
	case KindOption:
		if s.Elem == nil {
			return 0, fmt.Errorf("%w: %s: option without element type", ErrInvalidSchema, p)
		}
		if v.Elem == nil {
			return 1, nil
		}
		n, err := c.encodedSize(*v.Elem, s.Elem, p)
		if err != nil {
			return 0, err
		}
		return 1 + n, nil
	case KindRecord:
		return c.namedFieldsSize(v.Fields, s.Fields, p, 0)
	case KindUnion:
		if v.Variant < 0 || v.Variant >= len(s.Variants) || v.Variant >= MaxVariants {
			return 0, mismatch(p, "variant %d out of range for %d variants", v.Variant, len(s.Variants))
		}
		variant := s.Variants[v.Variant]
		vp := p.field(variant.Name)
		switch variant.Shape {
		case ShapeNone:
			if len(v.Items) != 0 || len(v.Fields) != 0 {
				return 0, mismatch(vp, "unit variant carries a payload")
			}
			return 1, nil
		case ShapeSingle, ShapeTuple:
			if len(v.Fields) != 0 {
				return 0, mismatch(vp, "positional variant carries named fields")
			}
			if len(v.Items) != len(variant.Fields) {
				return 0, mismatch(vp, "expected %d payload items, got %d", len(variant.Fields), len(v.Items))
			}
			size := 1
			for idx, item := range v.Items {
				n, err := c.encodedSize(item, variant.Fields[idx].Type, vp.item(idx))
				if err != nil {
					return 0, err
				}
				size += n
			}
			return size, nil
		case ShapeNamed:
			if len(v.Items) != 0 {
				return 0, mismatch(vp, "named variant carries positional items")
			}
			return c.namedFieldsSize(v.Fields, variant.Fields, vp, 1)
		}
		return 0, fmt.Errorf("%w: %s: unknown shape %s", ErrInvalidSchema, vp, variant.Shape)
	}
	return 0, fmt.Errorf("%w: %s: unknown kind %s", ErrInvalidSchema, p, s.Kind)
}

func (c *Codec) itemsSize(items []Value, elem *Schema, p *path, size int) (int, error) {
	if elem == nil {
		return 0, fmt.Errorf("%w: %s: missing element type", ErrInvalidSchema, p)
	}
	// Elements without a range check don't need to be visited one by one
	if width := uncheckedWidth(elem.Kind); width > 0 {
		for idx, item := range items {
			if item.Kind != elem.Kind {
				return 0, mismatch(p.item(idx), "expected %s, got %s", elem.Kind, item.Kind)
			}
		}
		return size + len(items)*width, nil
	}
	for idx, item := range items {
		n, err := c.encodedSize(item, elem, p.item(idx))
		if err != nil {
			return 0, err
		}
		size += n
	}
	return size, nil
}

// uncheckedWidth returns the width of kinds where every value of the matching Go
// type is encodable, and 0 for everything else
func uncheckedWidth(k Kind) int {
	switch k {
	case KindBool, KindU64, KindI64, KindF32, KindF64, KindIdentifier:
		return k.fixedWidth()
	}
	return 0
}

func (c *Codec) namedFieldsSize(values []FieldValue, fields []Field, p *path, size int) (int, error) {
	if len(values) != len(fields) {
		return 0, mismatch(p, "expected %d fields, got %d", len(fields), len(values))
	}
	for idx, field := range fields {
		if values[idx].Name != field.Name {
			return 0, mismatch(p, "expected field %q at position %d, got %q", field.Name, idx, values[idx].Name)
		}
		n, err := c.encodedSize(values[idx].Value, field.Type, p.field(field.Name))
		if err != nil {
			return 0, err
		}
		size += n
	}
	return size, nil
}

// StaticSize returns the encoded size shared by every value of s. The second return
// value is false when the size depends on the value
func StaticSize(s *Schema) (int, bool) {
	if s == nil {
		return 0, false
	}
	if width := s.Kind.fixedWidth(); width > 0 {
		return width, true
	}
	switch s.Kind {
	case KindFixedArray:
		if s.Length == 0 {
			return 0, true
		}
		n, ok := StaticSize(s.Elem)
		return n * s.Length, ok
	case KindRecord:
		return fieldsStaticSize(s.Fields, StaticSize)
	case KindUnion:
		if len(s.Variants) == 0 {
			return 0, false
		}
		size := -1
		for _, variant := range s.Variants {
			n, ok := fieldsStaticSize(variant.Fields, StaticSize)
			if !ok || (size >= 0 && n != size) {
				return 0, false
			}
			size = n
		}
		return 1 + size, true
	}
	return 0, false
}

// MaxSize returns an upper bound on the encoded size of any value of s, counting
// options as present and unions as their largest variant. The second return value
// is false when s contains bytes, text or sequences
func MaxSize(s *Schema) (int, bool) {
	if s == nil {
		return 0, false
	}
	if width := s.Kind.fixedWidth(); width > 0 {
		return width, true
	}
	switch s.Kind {
	case KindFixedArray:
		if s.Length == 0 {
			return 0, true
		}
		n, ok := MaxSize(s.Elem)
		return n * s.Length, ok
	case KindOption:
		n, ok := MaxSize(s.Elem)
		return 1 + n, ok
	case KindRecord:
		return fieldsStaticSize(s.Fields, MaxSize)
	case KindUnion:
		if len(s.Variants) == 0 {
			return 0, false
		}
		largest := 0
		for _, variant := range s.Variants {
			n, ok := fieldsStaticSize(variant.Fields, MaxSize)
			if !ok {
				return 0, false
			}
			largest = max(largest, n)
		}
		return 1 + largest, true
	}
	return 0, false
}

func fieldsStaticSize(fields []Field, sizeFunc func(*Schema) (int, bool)) (int, bool) {
	size := 0
	for _, field := range fields {
		n, ok := sizeFunc(field.Type)
		if !ok {
			return 0, false
		}
		size += n
	}
	return size, true
}

// minSize returns the smallest possible encoding of s. It's used to reject length
// prefixes that can't possibly be satisfied by the remaining input. A result of 0
// means every value of s encodes to nothing
func minSize(s *Schema) int {
	if s == nil {
		return 0
	}
	if width := s.Kind.fixedWidth(); width > 0 {
		return width
	}
	switch s.Kind {
	case KindBytes, KindText, KindSequence:
		return lengthPrefixSize
	case KindOption:
		return 1
	case KindFixedArray:
		return s.Length * minSize(s.Elem)
	case KindRecord:
		size := 0
		for _, field := range s.Fields {
			size += minSize(field.Type)
		}
		return size
	case KindUnion:
		smallest := -1
		for _, variant := range s.Variants {
			size := 0
			for _, field := range variant.Fields {
				size += minSize(field.Type)
			}
			if smallest < 0 || size < smallest {
				smallest = size
			}
		}
		return 1 + max(smallest, 0)
	}
	return 0
}
