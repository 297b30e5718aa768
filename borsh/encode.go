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
)

// Encode encodes v according to s. The value is checked against the schema before
// any output is produced, so a mismatch never yields partial data
func (c *Codec) Encode(v Value, s *Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	size, err := c.encodedSize(v, s, rootPath(s))
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, size)
	return appendValue(buf, v, s), nil
}

// appendValue assumes v has already been checked against s by encodedSize
func appendValue(buf []byte, v Value, s *Schema) []byte {
	switch s.Kind {
	case KindBool:
		if v.Bool {
			return append(buf, 1)
		}
		return append(buf, 0)
	case KindU8:
		return append(buf, uint8(v.Uint))
	case KindU16:
		return binary.LittleEndian.AppendUint16(buf, uint16(v.Uint))
	case KindU32:
		return binary.LittleEndian.AppendUint32(buf, uint32(v.Uint))
	case KindU64:
		return binary.LittleEndian.AppendUint64(buf, v.Uint)
	case KindI8:
		return append(buf, uint8(int8(v.Int)))
	case KindI16:
		return binary.LittleEndian.AppendUint16(buf, uint16(int16(v.Int)))
	case KindI32:
		return binary.LittleEndian.AppendUint32(buf, uint32(int32(v.Int)))
	case KindI64:
		return binary.LittleEndian.AppendUint64(buf, uint64(v.Int))
	case KindU128, KindI128:
		return appendInt128(buf, bigOrZero(v.Big))
	case KindF32:
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.F32))
	case KindF64:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.F64))
	case KindBytes:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(v.Bytes)))
		return append(buf, v.Bytes...)
	case KindText:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(v.Text)))
		return append(buf, v.Text...)
	case KindIdentifier:
		return append(buf, v.Ident[:]...)
	case KindFixedArray:
		for _, item := range v.Items {
			buf = appendValue(buf, item, s.Elem)
		}
		return buf
	case KindSequence:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(v.Items)))
		for _, item := range v.Items {
			buf = appendValue(buf, item, s.Elem)
		}
		return buf
	case KindOption:
		if v.Elem == nil {
			return append(buf, 0)
		}
		buf = append(buf, 1)
		return appendValue(buf, *v.Elem, s.Elem)
	case KindRecord:
		for idx, field := range s.Fields {
			buf = appendValue(buf, v.Fields[idx].Value, field.Type)
		}
		return buf
	case KindUnion:
		buf = append(buf, uint8(v.Variant))
		variant := s.Variants[v.Variant]
		switch variant.Shape {
		case ShapeSingle, ShapeTuple:
			for idx, item := range v.Items {
				buf = appendValue(buf, item, variant.Fields[idx].Type)
			}
		case ShapeNamed:
			for idx, field := range variant.Fields {
				buf = appendValue(buf, v.Fields[idx].Value, field.Type)
			}
		}
		return buf
	}
	return buf
}

var twoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)

// appendInt128 writes a 128-bit two's complement little-endian integer
func appendInt128(buf []byte, b *big.Int) []byte {
	tmp := b
	if b.Sign() < 0 {
		tmp = new(big.Int).Add(b, twoPow128)
	}
	var be [16]byte
	tmp.FillBytes(be[:])
	for idx := 15; idx >= 0; idx-- {
		buf = append(buf, be[idx])
	}
	return buf
}
