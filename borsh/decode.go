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
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/blinklabs-io/goborsh/common"
)

// Decode decodes a value of schema s from the start of data. It returns the value
// and the number of bytes consumed. Bytes after the value are ignored
func (c *Codec) Decode(data []byte, s *Schema) (Value, int, error) {
	if s == nil {
		return Value{}, 0, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	d := &decoder{
		data:              data,
		maxSequenceLength: c.maxSequenceLength,
	}
	v, err := d.decode(s, rootPath(s))
	if err != nil {
		return Value{}, 0, err
	}
	return v, d.pos, nil
}

// DecodeExact is like Decode but fails with ErrTrailingBytes unless the value
// occupies all of data
func (c *Codec) DecodeExact(data []byte, s *Schema) (Value, error) {
	v, n, err := c.Decode(data, s)
	if err != nil {
		return Value{}, err
	}
	if n != len(data) {
		return Value{}, &DecodeError{
			Path:   s.String(),
			Offset: n,
			Err:    fmt.Errorf("%w: %d bytes remain", ErrTrailingBytes, len(data)-n),
		}
	}
	return v, nil
}

type decoder struct {
	data              []byte
	pos               int
	maxSequenceLength uint32
}

func (d *decoder) fail(p *path, err error) error {
	return &DecodeError{Path: p.String(), Offset: d.pos, Err: err}
}

func (d *decoder) remaining() int {
	return len(d.data) - d.pos
}

func (d *decoder) read(p *path, n int) ([]byte, error) {
	if n > d.remaining() {
		return nil, d.fail(
			p,
			fmt.Errorf("%w: need %d bytes, %d remaining", ErrTruncatedInput, n, d.remaining()),
		)
	}
	ret := d.data[d.pos : d.pos+n]
	d.pos += n
	return ret, nil
}

func (d *decoder) readByte(p *path) (byte, error) {
	b, err := d.read(p, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) readLength(p *path) (uint32, error) {
	b, err := d.read(p, lengthPrefixSize)
	if err != nil {
		return 0, err
	}
	length := binary.LittleEndian.Uint32(b)
	if length > d.maxSequenceLength {
		d.pos -= lengthPrefixSize
		return 0, d.fail(
			p,
			fmt.Errorf("%w: length %d exceeds limit %d", ErrInvalidEncoding, length, d.maxSequenceLength),
		)
	}
	return length, nil
}

// readFlag reads a bool or option discriminant byte
func (d *decoder) readFlag(p *path, what string) (bool, error) {
	b, err := d.readByte(p)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	d.pos--
	return false, d.fail(p, fmt.Errorf("%w: %s byte 0x%02x", ErrInvalidEncoding, what, b))
}

func (d *decoder) decode(s *Schema, p *path) (Value, error) {
	if s == nil {
		return Value{}, fmt.Errorf("%w: %s: nil schema", ErrInvalidSchema, p)
	}
	ret := Value{Kind: s.Kind}
	switch s.Kind {
	case KindBool:
		b, err := d.readFlag(p, "bool")
		if err != nil {
			return Value{}, err
		}
		ret.Bool = b
	case KindU8, KindU16, KindU32, KindU64, KindI8, KindI16, KindI32, KindI64:
		b, err := d.read(p, s.Kind.fixedWidth())
		if err != nil {
			return Value{}, err
		}
		switch s.Kind {
		case KindU8:
			ret.Uint = uint64(b[0])
		case KindU16:
			ret.Uint = uint64(binary.LittleEndian.Uint16(b))
		case KindU32:
			ret.Uint = uint64(binary.LittleEndian.Uint32(b))
		case KindU64:
			ret.Uint = binary.LittleEndian.Uint64(b)
		case KindI8:
			ret.Int = int64(int8(b[0]))
		case KindI16:
			ret.Int = int64(int16(binary.LittleEndian.Uint16(b)))
		case KindI32:
			ret.Int = int64(int32(binary.LittleEndian.Uint32(b)))
		case KindI64:
			ret.Int = int64(binary.LittleEndian.Uint64(b))
		}
	case KindU128, KindI128:
		b, err := d.read(p, 16)
		if err != nil {
			return Value{}, err
		}
		ret.Big = readInt128(b, s.Kind == KindI128)
	case KindF32:
		b, err := d.read(p, 4)
		if err != nil {
			return Value{}, err
		}
		ret.F32 = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case KindF64:
		b, err := d.read(p, 8)
		if err != nil {
			return Value{}, err
		}
		ret.F64 = math.Float64frombits(binary.LittleEndian.Uint64(b))
	case KindBytes, KindText:
		length, err := d.readLength(p)
		if err != nil {
			return Value{}, err
		}
		b, err := d.read(p, int(length))
		if err != nil {
			return Value{}, err
		}
		if s.Kind == KindText {
			if !utf8.Valid(b) {
				d.pos -= int(length)
				return Value{}, d.fail(p, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidEncoding))
			}
			ret.Text = string(b)
		} else {
			// The result must not alias the caller's buffer
			ret.Bytes = make([]byte, length)
			copy(ret.Bytes, b)
		}
	case KindIdentifier:
		b, err := d.read(p, common.IdentifierSize)
		if err != nil {
			return Value{}, err
		}
		copy(ret.Ident[:], b)
	case KindFixedArray:
		if s.Elem == nil || s.Length < 0 {
			return Value{}, fmt.Errorf("%w: %s: malformed array", ErrInvalidSchema, p)
		}
		items, err := d.decodeItems(s.Elem, s.Length, p)
		if err != nil {
			return Value{}, err
		}
		ret.Items = items
	case KindSequence:
		if s.Elem == nil {
			return Value{}, fmt.Errorf("%w: %s: sequence without element type", ErrInvalidSchema, p)
		}
		count, err := d.readLength(p)
		if err != nil {
			return Value{}, err
		}
		// Zero-sized elements consume no input, so nothing else bounds the count
		if count > 0 && minSize(s.Elem) == 0 {
			d.pos -= lengthPrefixSize
			return Value{}, d.fail(
				p,
				fmt.Errorf("%w: %d zero-sized %s elements", ErrInvalidEncoding, count, s.Elem),
			)
		}
		items, err := d.decodeItems(s.Elem, int(count), p)
		if err != nil {
			return Value{}, err
		}
		ret.Items = items
	case KindOption:
		if s.Elem == nil {
			return Value{}, fmt.Errorf("%w: %s: option without element type", ErrInvalidSchema, p)
		}
		present, err := d.readFlag(p, "option")
		if err != nil {
			return Value{}, err
		}
		if present {
			elem, err := d.decode(s.Elem, p)
			if err != nil {
				return Value{}, err
			}
			ret.Elem = &elem
		}
	case KindRecord:
		fields, err := d.decodeFields(s.Fields, p)
		if err != nil {
			return Value{}, err
		}
		ret.Fields = fields
	case KindUnion:
		ordinal, err := d.readByte(p)
		if err != nil {
			return Value{}, err
		}
		if int(ordinal) >= len(s.Variants) {
			d.pos--
			return Value{}, d.fail(
				p,
				fmt.Errorf(
					"%w: variant ordinal %d out of range for %d variants",
					ErrInvalidEncoding,
					ordinal,
					len(s.Variants),
				),
			)
		}
		ret.Variant = int(ordinal)
		variant := s.Variants[ordinal]
		vp := p.field(variant.Name)
		switch variant.Shape {
		case ShapeNone:
		case ShapeSingle, ShapeTuple:
			items := make([]Value, 0, len(variant.Fields))
			for idx, field := range variant.Fields {
				item, err := d.decode(field.Type, vp.item(idx))
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			ret.Items = items
		case ShapeNamed:
			fields, err := d.decodeFields(variant.Fields, vp)
			if err != nil {
				return Value{}, err
			}
			ret.Fields = fields
		default:
			return Value{}, fmt.Errorf("%w: %s: unknown shape %s", ErrInvalidSchema, vp, variant.Shape)
		}
	default:
		return Value{}, fmt.Errorf("%w: %s: unknown kind %s", ErrInvalidSchema, p, s.Kind)
	}
	return ret, nil
}

func (d *decoder) decodeItems(elem *Schema, count int, p *path) ([]Value, error) {
	// Reject counts the remaining input can't possibly satisfy before allocating
	if minElem := minSize(elem); minElem > 0 {
		if uint64(count)*uint64(minElem) > uint64(d.remaining()) {
			return nil, d.fail(
				p,
				fmt.Errorf(
					"%w: %d items need at least %d bytes, %d remaining",
					ErrTruncatedInput,
					count,
					uint64(count)*uint64(minElem),
					d.remaining(),
				),
			)
		}
	}
	items := make([]Value, 0, min(count, 1024))
	for idx := 0; idx < count; idx++ {
		item, err := d.decode(elem, p.item(idx))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) decodeFields(fields []Field, p *path) ([]FieldValue, error) {
	ret := make([]FieldValue, 0, len(fields))
	for _, field := range fields {
		v, err := d.decode(field.Type, p.field(field.Name))
		if err != nil {
			return nil, err
		}
		ret = append(ret, FieldValue{Name: field.Name, Value: v})
	}
	return ret, nil
}

// readInt128 reads a 128-bit little-endian integer, interpreting it as two's
// complement when signed is set
func readInt128(b []byte, signed bool) *big.Int {
	var be [16]byte
	for idx := 0; idx < 16; idx++ {
		be[15-idx] = b[idx]
	}
	ret := new(big.Int).SetBytes(be[:])
	if signed && be[0]&0x80 != 0 {
		ret.Sub(ret, twoPow128)
	}
	return ret
}
