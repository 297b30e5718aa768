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

// Package idl reads Anchor interface description documents and turns them into
// borsh schemas, discriminators and PDA seed lists.
package idl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/tidwall/jsonc"
)

// IDL is an Anchor interface description document
type IDL struct {
	Version      string        `json:"version"`
	Name         string        `json:"name"`
	Instructions []Instruction `json:"instructions"`
	Accounts     []TypeDef     `json:"accounts,omitempty"`
	Types        []TypeDef     `json:"types,omitempty"`
	Events       []Event       `json:"events,omitempty"`
	Errors       []ErrorDef    `json:"errors,omitempty"`
	Metadata     Metadata      `json:"metadata"`
}

type Metadata struct {
	Address string `json:"address,omitempty"`
}

type Instruction struct {
	Name     string        `json:"name"`
	Accounts []AccountItem `json:"accounts"`
	Args     []FieldDef    `json:"args"`
}

// AccountItem is either a single account or, when Accounts is set, a named group
// of accounts
type AccountItem struct {
	Name     string        `json:"name"`
	IsMut    bool          `json:"isMut,omitempty"`
	IsSigner bool          `json:"isSigner,omitempty"`
	Accounts []AccountItem `json:"accounts,omitempty"`
	PDA      *PDA          `json:"pda,omitempty"`
}

// IsGroup reports whether the item is a nested group of accounts
func (a AccountItem) IsGroup() bool {
	return a.Accounts != nil
}

type PDA struct {
	Seeds     []SeedDef `json:"seeds"`
	ProgramID *SeedDef  `json:"programId,omitempty"`
}

// Seed kinds
const (
	SeedKindConst   = "const"
	SeedKindArg     = "arg"
	SeedKindAccount = "account"
)

type SeedDef struct {
	Kind  string          `json:"kind"`
	Type  Type            `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
	Path  string          `json:"path,omitempty"`
}

type TypeDef struct {
	Name string      `json:"name"`
	Type TypeDefBody `json:"type"`
}

// Type definition kinds
const (
	TypeKindStruct = "struct"
	TypeKindEnum   = "enum"
	TypeKindAlias  = "alias"
)

type TypeDefBody struct {
	Kind     string       `json:"kind"`
	Fields   []FieldDef   `json:"fields,omitempty"`
	Variants []VariantDef `json:"variants,omitempty"`
	// Value is the aliased type
	Value *Type `json:"value,omitempty"`
}

type FieldDef struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// VariantDef is an enum variant. A variant has either named fields, unnamed
// fields or neither
type VariantDef struct {
	Name        string
	NamedFields []FieldDef
	TupleFields []Type
}

func (v *VariantDef) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Name   string            `json:"name"`
		Fields []json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	v.Name = tmp.Name
	v.NamedFields = nil
	v.TupleFields = nil
	for _, raw := range tmp.Fields {
		if isNamedField(raw) {
			var field FieldDef
			if err := json.Unmarshal(raw, &field); err != nil {
				return fmt.Errorf("variant %s: %w", v.Name, err)
			}
			v.NamedFields = append(v.NamedFields, field)
			continue
		}
		var typ Type
		if err := json.Unmarshal(raw, &typ); err != nil {
			return fmt.Errorf("variant %s: %w", v.Name, err)
		}
		v.TupleFields = append(v.TupleFields, typ)
	}
	if v.NamedFields != nil && v.TupleFields != nil {
		return fmt.Errorf("variant %s mixes named and unnamed fields", v.Name)
	}
	return nil
}

func (v VariantDef) MarshalJSON() ([]byte, error) {
	tmp := struct {
		Name   string `json:"name"`
		Fields any    `json:"fields,omitempty"`
	}{Name: v.Name}
	if v.NamedFields != nil {
		tmp.Fields = v.NamedFields
	} else if v.TupleFields != nil {
		tmp.Fields = v.TupleFields
	}
	return json.Marshal(tmp)
}

// isNamedField distinguishes {"name": ..., "type": ...} from a type object
func isNamedField(raw json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, hasName := probe["name"]
	_, hasType := probe["type"]
	return hasName && hasType
}

type Event struct {
	Name   string          `json:"name"`
	Fields []EventFieldDef `json:"fields"`
}

type EventFieldDef struct {
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Index bool   `json:"index"`
}

type ErrorDef struct {
	Code uint32 `json:"code" cbor:"0,keyasint"`
	Name string `json:"name" cbor:"1,keyasint"`
	Msg  string `json:"msg,omitempty" cbor:"2,keyasint,omitempty"`
}

// Type is a reference to a type. Exactly one of Primitive, Defined, Vec, Option
// and Array is set
type Type struct {
	// Primitive is the name of a built-in type such as "u64" or "publicKey"
	Primitive string
	// Defined is the name of a type from the types or accounts section
	Defined string
	Vec     *Type
	Option  *Type
	Array   *Type
	Len     int
}

func (t *Type) UnmarshalJSON(data []byte) error {
	*t = Type{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Primitive)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid type: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, string(data))
	}
	for key, raw := range obj {
		switch key {
		case "defined":
			// Newer documents wrap the name in an object
			if err := json.Unmarshal(raw, &t.Defined); err != nil {
				var named struct {
					Name string `json:"name"`
				}
				if err := json.Unmarshal(raw, &named); err != nil {
					return fmt.Errorf("invalid defined type: %w", err)
				}
				t.Defined = named.Name
			}
		case "vec":
			t.Vec = &Type{}
			return json.Unmarshal(raw, t.Vec)
		case "option":
			t.Option = &Type{}
			return json.Unmarshal(raw, t.Option)
		case "array":
			var pair []json.RawMessage
			if err := json.Unmarshal(raw, &pair); err != nil {
				return fmt.Errorf("invalid array type: %w", err)
			}
			if len(pair) != 2 {
				return fmt.Errorf("invalid array type: expected [type, length], got %d elements", len(pair))
			}
			t.Array = &Type{}
			if err := json.Unmarshal(pair[0], t.Array); err != nil {
				return err
			}
			if err := json.Unmarshal(pair[1], &t.Len); err != nil {
				return fmt.Errorf("invalid array length: %w", err)
			}
			if t.Len < 0 {
				return fmt.Errorf("invalid array length %d", t.Len)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedType, key)
		}
	}
	return nil
}

func (t Type) MarshalJSON() ([]byte, error) {
	switch {
	case t.Defined != "":
		return json.Marshal(map[string]string{"defined": t.Defined})
	case t.Vec != nil:
		return json.Marshal(map[string]*Type{"vec": t.Vec})
	case t.Option != nil:
		return json.Marshal(map[string]*Type{"option": t.Option})
	case t.Array != nil:
		return json.Marshal(map[string][]any{"array": {t.Array, t.Len}})
	}
	return json.Marshal(t.Primitive)
}

func (t Type) String() string {
	switch {
	case t.Defined != "":
		return t.Defined
	case t.Vec != nil:
		return "vec<" + t.Vec.String() + ">"
	case t.Option != nil:
		return "option<" + t.Option.String() + ">"
	case t.Array != nil:
		return fmt.Sprintf("[%s; %d]", t.Array, t.Len)
	}
	return t.Primitive
}

// Parse strips JSONC comments and trailing commas from data, then unmarshals
// the result into an IDL
func Parse(data []byte) (*IDL, error) {
	stripped := jsonc.ToJSON(data)
	var ret IDL
	if err := json.Unmarshal(stripped, &ret); err != nil {
		return nil, fmt.Errorf("parsing IDL: %w", err)
	}
	if ret.Name == "" {
		return nil, errors.New("parsing IDL: missing program name")
	}
	return &ret, nil
}

// ReadFile reads and parses an IDL document from disk
func ReadFile(path string) (*IDL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ret, nil
}

// SnakeCase converts a camelCase IDL name to the snake_case form used for field
// names and instruction sighashes
func SnakeCase(name string) string {
	var sb strings.Builder
	for idx, r := range name {
		if unicode.IsUpper(r) {
			if idx > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
