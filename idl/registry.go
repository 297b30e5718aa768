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
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/goborsh/borsh"
	"github.com/blinklabs-io/goborsh/common"
)

// Registry holds the resolved schemas of a program. It is immutable once built and
// safe for concurrent use. Schemas handed out by Registry are copies
type Registry struct {
	name         string
	logger       *slog.Logger
	codec        *borsh.Codec
	programID    common.Identifier
	hasProgramID bool
	types        map[string]*borsh.Schema
	accountNames []string
	instructions map[string]*borsh.Schema
	events       map[string]*borsh.Schema
	errors       map[uint32]ErrorDef
	// instructionDefs is empty for registries loaded from a snapshot
	instructionDefs map[string]Instruction
	accountsByDisc  map[Discriminator]string
	instrsByDisc    map[Discriminator]string
	eventsByDisc    map[Discriminator]string
}

// RegistryOptionFunc is a type that represents functions that modify the Registry config
type RegistryOptionFunc func(*Registry)

// WithLogger specifies the logger to use. The default is slog.Default()
func WithLogger(logger *slog.Logger) RegistryOptionFunc {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithCodec specifies the codec used by the account, instruction and event coders
func WithCodec(codec *borsh.Codec) RegistryOptionFunc {
	return func(r *Registry) {
		r.codec = codec
	}
}

// WithProgramID overrides the program address from the IDL metadata
func WithProgramID(programID common.Identifier) RegistryOptionFunc {
	return func(r *Registry) {
		r.programID = programID
		r.hasProgramID = true
	}
}

func newRegistry(name string, opts ...RegistryOptionFunc) *Registry {
	r := &Registry{
		name:            name,
		types:           make(map[string]*borsh.Schema),
		instructions:    make(map[string]*borsh.Schema),
		events:          make(map[string]*borsh.Schema),
		errors:          make(map[uint32]ErrorDef),
		instructionDefs: make(map[string]Instruction),
		accountsByDisc:  make(map[Discriminator]string),
		instrsByDisc:    make(map[Discriminator]string),
		eventsByDisc:    make(map[Discriminator]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.codec == nil {
		r.codec = borsh.NewCodec()
	}
	return r
}

// NewRegistry resolves every type, account, instruction and event of an IDL into
// borsh schemas. Field names are converted to snake_case
func NewRegistry(doc *IDL, opts ...RegistryOptionFunc) (*Registry, error) {
	if doc == nil {
		return nil, errors.New("nil IDL document")
	}
	r := newRegistry(doc.Name, opts...)
	if !r.hasProgramID && doc.Metadata.Address != "" {
		programID, err := common.ParseIdentifier(doc.Metadata.Address)
		if err != nil {
			return nil, fmt.Errorf("program address: %w", err)
		}
		r.programID = programID
		r.hasProgramID = true
	}
	res := &resolver{
		defs:     make(map[string]TypeDef),
		done:     r.types,
		visiting: make(map[string]bool),
	}
	for _, def := range doc.Types {
		if _, ok := res.defs[def.Name]; ok {
			return nil, fmt.Errorf("%w: type %s", ErrDuplicateName, def.Name)
		}
		res.defs[def.Name] = def
	}
	for _, def := range doc.Accounts {
		if _, ok := res.defs[def.Name]; ok {
			return nil, fmt.Errorf("%w: account %s", ErrDuplicateName, def.Name)
		}
		res.defs[def.Name] = def
		r.accountNames = append(r.accountNames, def.Name)
	}
	// Resolve in declaration order so unused types are checked too
	for _, def := range doc.Types {
		if _, err := res.resolveDefined(def.Name); err != nil {
			return nil, err
		}
	}
	for _, def := range doc.Accounts {
		if _, err := res.resolveDefined(def.Name); err != nil {
			return nil, err
		}
	}
	for _, inst := range doc.Instructions {
		if _, ok := r.instructionDefs[inst.Name]; ok {
			return nil, fmt.Errorf("%w: instruction %s", ErrDuplicateName, inst.Name)
		}
		fields, err := res.resolveFields(inst.Args, inst.Name)
		if err != nil {
			return nil, fmt.Errorf("instruction %s: %w", inst.Name, err)
		}
		r.instructions[inst.Name] = borsh.RecordOf(inst.Name, fields...)
		r.instructionDefs[inst.Name] = inst
	}
	for _, event := range doc.Events {
		if _, ok := r.events[event.Name]; ok {
			return nil, fmt.Errorf("%w: event %s", ErrDuplicateName, event.Name)
		}
		fields := make([]borsh.Field, 0, len(event.Fields))
		for _, field := range event.Fields {
			s, err := res.resolve(field.Type, event.Name+"."+field.Name)
			if err != nil {
				return nil, fmt.Errorf("event %s: %w", event.Name, err)
			}
			fields = append(fields, borsh.NamedField(SnakeCase(field.Name), s))
		}
		r.events[event.Name] = borsh.RecordOf(event.Name, fields...)
	}
	for _, errDef := range doc.Errors {
		if _, ok := r.errors[errDef.Code]; ok {
			return nil, fmt.Errorf("%w: error code %d", ErrDuplicateName, errDef.Code)
		}
		r.errors[errDef.Code] = errDef
	}
	if err := r.index(); err != nil {
		return nil, err
	}
	r.logger.Debug(
		"resolved program interface",
		"program",
		r.name,
		"types",
		len(r.types),
		"accounts",
		len(r.accountNames),
		"instructions",
		len(r.instructions),
		"events",
		len(r.events),
	)
	return r, nil
}

// index validates the resolved schemas and builds the discriminator lookups
func (r *Registry) index() error {
	for name, s := range r.types {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("type %s: %w", name, err)
		}
	}
	for _, name := range r.accountNames {
		if _, ok := r.types[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, name)
		}
		if err := addDiscriminator(r.accountsByDisc, AccountDiscriminator(name), name); err != nil {
			return err
		}
	}
	for name, s := range r.instructions {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("instruction %s: %w", name, err)
		}
		if err := addDiscriminator(r.instrsByDisc, InstructionDiscriminator(name), name); err != nil {
			return err
		}
	}
	for name, s := range r.events {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("event %s: %w", name, err)
		}
		if err := addDiscriminator(r.eventsByDisc, EventDiscriminator(name), name); err != nil {
			return err
		}
	}
	return nil
}

func addDiscriminator(m map[Discriminator]string, disc Discriminator, name string) error {
	if other, ok := m[disc]; ok {
		return fmt.Errorf("%w: %s and %s share discriminator %s", ErrDuplicateName, other, name, disc)
	}
	m[disc] = name
	return nil
}

// Name returns the program name
func (r *Registry) Name() string {
	return r.name
}

// ProgramID returns the program address, if known
func (r *Registry) ProgramID() (common.Identifier, bool) {
	return r.programID, r.hasProgramID
}

// AccountNames returns the account types in declaration order
func (r *Registry) AccountNames() []string {
	ret := make([]string, len(r.accountNames))
	copy(ret, r.accountNames)
	return ret
}

// Type returns the schema of a type or account
func (r *Registry) Type(name string) (*borsh.Schema, error) {
	s, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return s.Clone()
}

// Account returns the schema of an account type
func (r *Registry) Account(name string) (*borsh.Schema, error) {
	s, err := r.account(name)
	if err != nil {
		return nil, err
	}
	return s.Clone()
}

// Instruction returns the schema of the arguments of an instruction, as a record
// named after the instruction
func (r *Registry) Instruction(name string) (*borsh.Schema, error) {
	s, ok := r.instructions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstruction, name)
	}
	return s.Clone()
}

// Event returns the schema of an event
func (r *Registry) Event(name string) (*borsh.Schema, error) {
	s, ok := r.events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	return s.Clone()
}

// ProgramError looks up a custom program error by code
func (r *Registry) ProgramError(code uint32) (*ProgramError, bool) {
	errDef, ok := r.errors[code]
	if !ok {
		return nil, false
	}
	return &ProgramError{Code: errDef.Code, Name: errDef.Name, Msg: errDef.Msg}, true
}

func (r *Registry) account(name string) (*borsh.Schema, error) {
	for _, accountName := range r.accountNames {
		if accountName == name {
			return r.types[name], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, name)
}

// resolver turns IDL type references into schemas. Each defined type is resolved
// once and shared by every reference to it
type resolver struct {
	defs     map[string]TypeDef
	done     map[string]*borsh.Schema
	visiting map[string]bool
}

func (res *resolver) resolve(t Type, path string) (*borsh.Schema, error) {
	switch {
	case t.Defined != "":
		return res.resolveDefined(t.Defined)
	case t.Vec != nil:
		elem, err := res.resolve(*t.Vec, path+"[]")
		if err != nil {
			return nil, err
		}
		return borsh.SequenceOf(elem), nil
	case t.Option != nil:
		elem, err := res.resolve(*t.Option, path)
		if err != nil {
			return nil, err
		}
		return borsh.OptionOf(elem), nil
	case t.Array != nil:
		elem, err := res.resolve(*t.Array, path+"[]")
		if err != nil {
			return nil, err
		}
		return borsh.ArrayOf(t.Len, elem), nil
	case t.Primitive != "":
		return primitiveSchema(t.Primitive, path)
	}
	return nil, fmt.Errorf("%w: %s: empty type", ErrUnsupportedType, path)
}

func primitiveSchema(name string, path string) (*borsh.Schema, error) {
	// Newer documents spell the key type in lower case
	if name == "pubkey" {
		return borsh.IdentifierType, nil
	}
	k, ok := borsh.KindByName(name)
	if !ok || !k.IsPrimitive() {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnsupportedType, path, name)
	}
	return borsh.PrimitiveType(k)
}

func (res *resolver) resolveDefined(name string) (*borsh.Schema, error) {
	if s, ok := res.done[name]; ok {
		return s, nil
	}
	def, ok := res.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	if res.visiting[name] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicType, name)
	}
	res.visiting[name] = true
	defer delete(res.visiting, name)
	var ret *borsh.Schema
	switch def.Type.Kind {
	case TypeKindStruct:
		fields, err := res.resolveFields(def.Type.Fields, name)
		if err != nil {
			return nil, err
		}
		ret = borsh.RecordOf(name, fields...)
	case TypeKindEnum:
		if len(def.Type.Variants) > borsh.MaxVariants {
			return nil, fmt.Errorf(
				"%w: %s has %d variants",
				ErrUnsupportedType,
				name,
				len(def.Type.Variants),
			)
		}
		variants := make([]borsh.Variant, 0, len(def.Type.Variants))
		for _, variantDef := range def.Type.Variants {
			variant, err := res.resolveVariant(variantDef, name)
			if err != nil {
				return nil, err
			}
			variants = append(variants, variant)
		}
		ret = borsh.UnionOf(name, variants...)
	case TypeKindAlias:
		if def.Type.Value == nil {
			return nil, fmt.Errorf("%w: alias %s has no value", ErrUnsupportedType, name)
		}
		s, err := res.resolve(*def.Type.Value, name)
		if err != nil {
			return nil, err
		}
		ret = s
	default:
		return nil, fmt.Errorf("%w: %s has kind %q", ErrUnsupportedType, name, def.Type.Kind)
	}
	res.done[name] = ret
	return ret, nil
}

func (res *resolver) resolveFields(defs []FieldDef, path string) ([]borsh.Field, error) {
	ret := make([]borsh.Field, 0, len(defs))
	for _, def := range defs {
		s, err := res.resolve(def.Type, path+"."+def.Name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, borsh.NamedField(SnakeCase(def.Name), s))
	}
	return ret, nil
}

func (res *resolver) resolveVariant(def VariantDef, path string) (borsh.Variant, error) {
	path = path + "::" + def.Name
	switch {
	case def.NamedFields != nil:
		fields, err := res.resolveFields(def.NamedFields, path)
		if err != nil {
			return borsh.Variant{}, err
		}
		return borsh.StructVariant(def.Name, fields...), nil
	case len(def.TupleFields) == 1:
		s, err := res.resolve(def.TupleFields[0], path)
		if err != nil {
			return borsh.Variant{}, err
		}
		return borsh.SingleVariant(def.Name, s), nil
	case len(def.TupleFields) > 1:
		elems := make([]*borsh.Schema, 0, len(def.TupleFields))
		for idx, t := range def.TupleFields {
			s, err := res.resolve(t, fmt.Sprintf("%s.%d", path, idx))
			if err != nil {
				return borsh.Variant{}, err
			}
			elems = append(elems, s)
		}
		return borsh.TupleVariant(def.Name, elems...), nil
	}
	return borsh.UnitVariant(def.Name), nil
}
