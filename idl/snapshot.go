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
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/cbor"
	"github.com/blinklabs-io/goborsh/common"
)

// snapshotVersion is bumped whenever the snapshot layout changes
const snapshotVersion = 1

type snapshot struct {
	cbor.StructAsArray
	Version      uint
	Name         string
	ProgramID    *common.Identifier
	Types        map[string]*borsh.Schema
	Accounts     []string
	Instructions []*borsh.Schema
	Events       []*borsh.Schema
	Errors       []ErrorDef
}

// Snapshot serializes the resolved schemas as CBOR. It lets a host ship schemas
// without the IDL document
func (r *Registry) Snapshot() ([]byte, error) {
	tmp := snapshot{
		Version:  snapshotVersion,
		Name:     r.name,
		Types:    r.types,
		Accounts: r.accountNames,
	}
	if r.hasProgramID {
		programID := r.programID
		tmp.ProgramID = &programID
	}
	for _, s := range r.instructions {
		tmp.Instructions = append(tmp.Instructions, s)
	}
	for _, s := range r.events {
		tmp.Events = append(tmp.Events, s)
	}
	for _, errDef := range r.errors {
		tmp.Errors = append(tmp.Errors, errDef)
	}
	// Map iteration order is random and the output should be reproducible
	slices.SortFunc(tmp.Instructions, compareSchemaNames)
	slices.SortFunc(tmp.Events, compareSchemaNames)
	slices.SortFunc(tmp.Errors, func(a, b ErrorDef) int {
		return cmp.Compare(a.Code, b.Code)
	})
	data, err := cbor.Encode(&tmp)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func compareSchemaNames(a, b *borsh.Schema) int {
	return strings.Compare(a.Name, b.Name)
}

// LoadSnapshot rebuilds a registry from the output of Snapshot. The result has no
// instruction account metadata, so PDA seeds can't be resolved from it
func LoadSnapshot(data []byte, opts ...RegistryOptionFunc) (*Registry, error) {
	if cbor.MajorType(data) != cbor.CborTypeArray {
		return nil, errors.New("decode snapshot: not a CBOR array")
	}
	var tmp snapshot
	if err := cbor.DecodeFull(data, &tmp); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if tmp.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", tmp.Version)
	}
	r := newRegistry(tmp.Name, opts...)
	if !r.hasProgramID && tmp.ProgramID != nil {
		r.programID = *tmp.ProgramID
		r.hasProgramID = true
	}
	for name, s := range tmp.Types {
		if s == nil {
			return nil, fmt.Errorf("%w: snapshot type %s is empty", borsh.ErrInvalidSchema, name)
		}
		r.types[name] = s
	}
	r.accountNames = tmp.Accounts
	for _, s := range tmp.Instructions {
		if s == nil || s.Name == "" {
			return nil, fmt.Errorf("%w: unnamed instruction in snapshot", borsh.ErrInvalidSchema)
		}
		r.instructions[s.Name] = s
	}
	for _, s := range tmp.Events {
		if s == nil || s.Name == "" {
			return nil, fmt.Errorf("%w: unnamed event in snapshot", borsh.ErrInvalidSchema)
		}
		r.events[s.Name] = s
	}
	for _, errDef := range tmp.Errors {
		r.errors[errDef.Code] = errDef
	}
	if err := r.index(); err != nil {
		return nil, err
	}
	r.logger.Debug(
		"loaded schema snapshot",
		"program",
		r.name,
		"types",
		len(r.types),
		"snapshot_size",
		len(data),
	)
	return r, nil
}
