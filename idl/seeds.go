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

package idl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/common"
	"github.com/blinklabs-io/goborsh/pda"
)

// ResolveSeeds returns the PDA seeds declared for an account of an instruction.
// Constant seeds come from the IDL, argument seeds from args (the instruction's
// argument record) and account seeds from keys, which maps account names to
// addresses
func (r *Registry) ResolveSeeds(
	instruction string,
	account string,
	args borsh.Value,
	keys map[string]common.Identifier,
) ([]pda.Seed, error) {
	item, err := r.pdaAccount(instruction, account)
	if err != nil {
		return nil, err
	}
	ret := make([]pda.Seed, 0, len(item.PDA.Seeds))
	for idx, seedDef := range item.PDA.Seeds {
		seed, err := r.resolveSeed(seedDef, instruction, args, keys)
		if err != nil {
			return nil, fmt.Errorf("account %s seed %d: %w", account, idx, err)
		}
		ret = append(ret, seed)
	}
	return ret, nil
}

// FindAccountAddress derives the address of a PDA account of an instruction along
// with its bump. The seeds are resolved as in ResolveSeeds
func (r *Registry) FindAccountAddress(
	instruction string,
	account string,
	args borsh.Value,
	keys map[string]common.Identifier,
) (common.Identifier, uint8, error) {
	seeds, err := r.ResolveSeeds(instruction, account, args, keys)
	if err != nil {
		return common.Identifier{}, 0, err
	}
	// pdaAccount can't fail here since ResolveSeeds succeeded
	item, _ := r.pdaAccount(instruction, account)
	programID, hasProgramID := r.programID, r.hasProgramID
	if item.PDA.ProgramID != nil {
		seed, err := r.resolveSeed(*item.PDA.ProgramID, instruction, args, keys)
		if err != nil {
			return common.Identifier{}, 0, fmt.Errorf("account %s program: %w", account, err)
		}
		programID, err = common.NewIdentifier(seed)
		if err != nil {
			return common.Identifier{}, 0, fmt.Errorf("account %s program: %w", account, err)
		}
		hasProgramID = true
	}
	if !hasProgramID {
		return common.Identifier{}, 0, ErrMissingProgramID
	}
	return pda.FindAddress(programID, seeds...)
}

func (r *Registry) pdaAccount(instruction string, account string) (AccountItem, error) {
	inst, ok := r.instructionDefs[instruction]
	if !ok {
		return AccountItem{}, fmt.Errorf("%w: %s", ErrUnknownInstruction, instruction)
	}
	item, ok := findAccountItem(inst.Accounts, account)
	if !ok {
		return AccountItem{}, fmt.Errorf("%w: %s in instruction %s", ErrUnknownAccount, account, instruction)
	}
	if item.PDA == nil {
		return AccountItem{}, fmt.Errorf(
			"%w: account %s of instruction %s declares no seeds",
			ErrUnsupportedSeed,
			account,
			instruction,
		)
	}
	return item, nil
}

// findAccountItem searches nested account groups depth first
func findAccountItem(items []AccountItem, name string) (AccountItem, bool) {
	for _, item := range items {
		if item.IsGroup() {
			if found, ok := findAccountItem(item.Accounts, name); ok {
				return found, true
			}
			continue
		}
		if item.Name == name {
			return item, true
		}
	}
	return AccountItem{}, false
}

func (r *Registry) resolveSeed(
	seedDef SeedDef,
	instruction string,
	args borsh.Value,
	keys map[string]common.Identifier,
) (pda.Seed, error) {
	switch seedDef.Kind {
	case SeedKindConst:
		s, err := r.lookupResolver().resolve(seedDef.Type, "seed")
		if err != nil {
			return nil, err
		}
		v, err := valueFromJSON(seedDef.Value, s)
		if err != nil {
			return nil, err
		}
		return seedFromValue(v, s)
	case SeedKindArg:
		if strings.Contains(seedDef.Path, ".") {
			return nil, fmt.Errorf("%w: argument path %s", ErrUnsupportedSeed, seedDef.Path)
		}
		argsSchema := r.instructions[instruction]
		name := SnakeCase(seedDef.Path)
		idx, ok := argsSchema.FieldIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: instruction %s has no argument %s", ErrUnsupportedSeed, instruction, name)
		}
		v, ok := args.Field(name)
		if !ok {
			return nil, fmt.Errorf("missing argument %s", name)
		}
		return seedFromValue(v, argsSchema.Fields[idx].Type)
	case SeedKindAccount:
		if strings.Contains(seedDef.Path, ".") {
			return nil, fmt.Errorf("%w: account data path %s", ErrUnsupportedSeed, seedDef.Path)
		}
		key, ok := keys[seedDef.Path]
		if !ok {
			return nil, fmt.Errorf("missing address of account %s", seedDef.Path)
		}
		return pda.Key(key), nil
	}
	return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedSeed, seedDef.Kind)
}

// lookupResolver resolves type references against the finished registry. It never
// writes to the registry since every defined type is already resolved
func (r *Registry) lookupResolver() *resolver {
	return &resolver{done: r.types}
}

// seedFromValue returns the raw bytes of a value as used in a seed. Text and byte
// strings are used without their length prefix
func seedFromValue(v borsh.Value, s *borsh.Schema) (pda.Seed, error) {
	switch s.Kind {
	case borsh.KindText:
		if v.Kind != borsh.KindText {
			return nil, fmt.Errorf("%w: expected string, got %s", borsh.ErrSchemaMismatch, v.Kind)
		}
		return pda.String(v.Text), nil
	case borsh.KindBytes:
		if v.Kind != borsh.KindBytes {
			return nil, fmt.Errorf("%w: expected bytes, got %s", borsh.ErrSchemaMismatch, v.Kind)
		}
		return pda.Bytes(v.Bytes), nil
	case borsh.KindSequence, borsh.KindOption, borsh.KindRecord, borsh.KindUnion:
		return nil, fmt.Errorf("%w: %s values", ErrUnsupportedSeed, s)
	}
	data, err := borsh.Encode(v, s)
	if err != nil {
		return nil, err
	}
	return pda.Seed(data), nil
}

// valueFromJSON converts a constant from the IDL into a value of schema s
func valueFromJSON(raw json.RawMessage, s *borsh.Schema) (borsh.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tmp any
	if err := dec.Decode(&tmp); err != nil {
		return borsh.Value{}, fmt.Errorf("invalid constant: %w", err)
	}
	return valueFromAny(tmp, s)
}

func valueFromAny(src any, s *borsh.Schema) (borsh.Value, error) {
	ret := borsh.Value{Kind: s.Kind}
	switch s.Kind {
	case borsh.KindBool:
		b, ok := src.(bool)
		if !ok {
			return borsh.Value{}, constantError(src, s)
		}
		ret.Bool = b
	case borsh.KindU8, borsh.KindU16, borsh.KindU32, borsh.KindU64:
		num, ok := src.(json.Number)
		if !ok {
			return borsh.Value{}, constantError(src, s)
		}
		u, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return borsh.Value{}, fmt.Errorf("invalid constant %s: %w", num, err)
		}
		ret.Uint = u
	case borsh.KindI8, borsh.KindI16, borsh.KindI32, borsh.KindI64:
		num, ok := src.(json.Number)
		if !ok {
			return borsh.Value{}, constantError(src, s)
		}
		i, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return borsh.Value{}, fmt.Errorf("invalid constant %s: %w", num, err)
		}
		ret.Int = i
	case borsh.KindU128, borsh.KindI128:
		var text string
		switch tmp := src.(type) {
		case json.Number:
			text = tmp.String()
		case string:
			text = tmp
		default:
			return borsh.Value{}, constantError(src, s)
		}
		b, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return borsh.Value{}, fmt.Errorf("invalid constant %s", text)
		}
		ret.Big = b
	case borsh.KindText:
		text, ok := src.(string)
		if !ok {
			return borsh.Value{}, constantError(src, s)
		}
		ret.Text = text
	case borsh.KindIdentifier:
		text, ok := src.(string)
		if !ok {
			return borsh.Value{}, constantError(src, s)
		}
		id, err := common.ParseIdentifier(text)
		if err != nil {
			return borsh.Value{}, err
		}
		ret.Ident = id
	case borsh.KindBytes:
		items, ok := src.([]any)
		if !ok {
			return borsh.Value{}, constantError(src, s)
		}
		ret.Bytes = make([]byte, len(items))
		for idx, item := range items {
			v, err := valueFromAny(item, borsh.U8Type)
			if err != nil {
				return borsh.Value{}, err
			}
			if v.Uint > 0xff {
				return borsh.Value{}, fmt.Errorf("invalid constant: byte %d out of range", v.Uint)
			}
			ret.Bytes[idx] = byte(v.Uint)
		}
	case borsh.KindFixedArray:
		items, ok := src.([]any)
		if !ok {
			return borsh.Value{}, constantError(src, s)
		}
		ret.Items = make([]borsh.Value, len(items))
		for idx, item := range items {
			v, err := valueFromAny(item, s.Elem)
			if err != nil {
				return borsh.Value{}, err
			}
			ret.Items[idx] = v
		}
	default:
		return borsh.Value{}, fmt.Errorf("%w: constant of type %s", ErrUnsupportedSeed, s)
	}
	return ret, nil
}

func constantError(src any, s *borsh.Schema) error {
	return fmt.Errorf("%w: constant %v is not a valid %s", borsh.ErrSchemaMismatch, src, s)
}
