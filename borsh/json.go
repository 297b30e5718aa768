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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MarshalJSONValue renders v as JSON using the names from s. 64-bit and 128-bit
// integers are rendered as decimal strings, byte strings as arrays of numbers,
// identifiers as base58, absent options as null, and union values as
// {"kind": <variant name>, "value": <payload>}. NaN and infinite floats have no
// JSON form and are rendered as null, as JavaScript's JSON.stringify does
func MarshalJSONValue(v Value, s *Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	if _, err := defaultCodec.encodedSize(v, s, rootPath(s)); err != nil {
		return nil, err
	}
	return json.Marshal(toJSON(v, s))
}

// jsonObject is a JSON object that keeps its keys in schema order
type jsonObject []jsonMember

type jsonMember struct {
	key   string
	value any
}

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, member := range o {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(member.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(member.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// toJSON assumes v has already been checked against s
func toJSON(v Value, s *Schema) any {
	switch s.Kind {
	case KindBool:
		return v.Bool
	case KindU8, KindU16, KindU32:
		return v.Uint
	case KindU64:
		return strconv.FormatUint(v.Uint, 10)
	case KindI8, KindI16, KindI32:
		return v.Int
	case KindI64:
		return strconv.FormatInt(v.Int, 10)
	case KindU128, KindI128:
		return bigOrZero(v.Big).String()
	case KindF32:
		if !isFinite(float64(v.F32)) {
			return nil
		}
		return v.F32
	case KindF64:
		if !isFinite(v.F64) {
			return nil
		}
		return v.F64
	case KindBytes:
		ret := make([]int, len(v.Bytes))
		for idx, b := range v.Bytes {
			ret[idx] = int(b)
		}
		return ret
	case KindText:
		return v.Text
	case KindIdentifier:
		return v.Ident.String()
	case KindFixedArray, KindSequence:
		ret := make([]any, len(v.Items))
		for idx, item := range v.Items {
			ret[idx] = toJSON(item, s.Elem)
		}
		return ret
	case KindOption:
		if v.Elem == nil {
			return nil
		}
		return toJSON(*v.Elem, s.Elem)
	case KindRecord:
		return fieldsToJSON(v.Fields, s.Fields)
	case KindUnion:
		variant := s.Variants[v.Variant]
		ret := jsonObject{{key: "kind", value: variant.Name}}
		switch variant.Shape {
		case ShapeSingle, ShapeTuple:
			items := make([]any, len(v.Items))
			for idx, item := range v.Items {
				items[idx] = toJSON(item, variant.Fields[idx].Type)
			}
			ret = append(ret, jsonMember{key: "value", value: items})
		case ShapeNamed:
			ret = append(ret, jsonMember{key: "value", value: fieldsToJSON(v.Fields, variant.Fields)})
		}
		return ret
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func fieldsToJSON(values []FieldValue, fields []Field) jsonObject {
	ret := make(jsonObject, 0, len(fields))
	for idx, field := range fields {
		ret = append(ret, jsonMember{key: field.Name, value: toJSON(values[idx].Value, field.Type)})
	}
	return ret
}
